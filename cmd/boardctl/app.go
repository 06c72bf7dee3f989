package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/sashafierce98/TGPTaskflow/internal/api"
	"github.com/sashafierce98/TGPTaskflow/internal/boardstate"
	"github.com/sashafierce98/TGPTaskflow/internal/session"
)

var errSignedOut = errors.New("not signed in: run `boardctl login --session-id <id>`")

// app is the per-invocation wiring: profile, API client and session.
type app struct {
	profilePath string
	profile     *Profile
	client      *api.Client
	session     *session.Manager
	out         io.Writer
	errOut      io.Writer
	in          io.Reader
	json        bool
}

func newApp(cmd *cobra.Command) (*app, error) {
	flags := cmd.Flags()
	profilePath, _ := flags.GetString("profile")
	server, _ := flags.GetString("server")
	jsonOutput, _ := flags.GetBool("json")

	profile, err := loadProfile(profilePath)
	if err != nil {
		return nil, err
	}
	if server != "" {
		profile.Server = server
	}

	client, err := api.New(profile.Server)
	if err != nil {
		return nil, err
	}
	if profile.Token != "" {
		client.SetToken(profile.Token)
	}

	return &app{
		profilePath: profilePath,
		profile:     profile,
		client:      client,
		session:     session.NewManager(client),
		out:         cmd.OutOrStdout(),
		errOut:      cmd.ErrOrStderr(),
		in:          cmd.InOrStdin(),
		json:        jsonOutput,
	}, nil
}

// gate restores the saved session and checks it may open view.
func (a *app) gate(ctx context.Context, view session.View) error {
	if a.profile.Token == "" {
		return errSignedOut
	}
	if _, err := a.session.Restore(ctx); err != nil {
		if errors.Is(err, session.ErrNotSignedIn) {
			a.forgetToken()
			return errSignedOut
		}
		return err
	}

	decision, err := a.session.Gate(ctx, view)
	if err != nil {
		return err
	}
	switch decision {
	case session.Allow:
		return nil
	case session.Entry:
		a.forgetToken()
		return errSignedOut
	case session.Pending:
		return errors.New("your account is waiting for admin approval")
	case session.Dashboard:
		return errors.New("admin only")
	}
	return fmt.Errorf("unexpected gate decision %s", decision)
}

func (a *app) rememberToken() error {
	a.profile.Token = a.client.Token()
	return a.profile.save(a.profilePath)
}

func (a *app) forgetToken() {
	a.profile.Token = ""
	if err := a.profile.save(a.profilePath); err != nil {
		slog.Warn("clear saved session", "err", err)
	}
}

// board loads a board store wired to this app's session and output.
func (a *app) board(ctx context.Context, boardID uuid.UUID) (*boardstate.Store, error) {
	store := boardstate.New(a.client, boardID,
		boardstate.WithNotifier(a),
		boardstate.WithErrorObserver(a.session.Observe),
		boardstate.WithMoveObserver(func(cardID uuid.UUID, state boardstate.MoveState) {
			slog.Debug("move", "card_id", cardID, "state", state)
		}),
	)
	if err := store.Load(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

func (a *app) Success(msg string) {
	if !a.json {
		fmt.Fprintf(a.errOut, "✓ %s\n", msg)
	}
}

func (a *app) Error(msg string) {
	fmt.Fprintf(a.errOut, "✗ %s\n", msg)
}

func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// confirm asks a yes/no question on stdin.
func (a *app) confirm(question string) bool {
	fmt.Fprintf(a.errOut, "%s [y/N] ", question)
	line, _ := bufio.NewReader(a.in).ReadString('\n')
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func parseID(raw, label string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s ID %q", label, raw)
	}
	return id, nil
}
