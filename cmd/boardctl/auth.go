package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sashafierce98/TGPTaskflow/internal/api"
	"github.com/sashafierce98/TGPTaskflow/internal/session"
)

func loginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Exchange an identity provider session for a boardctl session",
		Long: `Exchange the session_id handed out by the identity provider for an app
session and remember it in the profile.

Examples:
  boardctl login --session-id=abc123
  boardctl login --session-id=abc123 --server=https://taskflow.example/api
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			sessionID, _ := cmd.Flags().GetString("session-id")

			user, err := a.session.Login(cmd.Context(), sessionID)
			if err != nil {
				a.Error("Authentication failed")
				return err
			}
			if err := a.rememberToken(); err != nil {
				return err
			}

			if a.json {
				return a.printJSON(user)
			}
			decision, err := a.session.Gate(cmd.Context(), session.ViewDashboard)
			if err != nil {
				return err
			}
			if decision == session.Pending {
				fmt.Fprintf(a.out, "Signed in as %s. Your account is waiting for admin approval.\n", user.Email)
				return nil
			}
			fmt.Fprintf(a.out, "Welcome, %s!\n", user.Name)
			return nil
		},
	}
	cmd.Flags().String("session-id", "", "Identity provider session id (required)")
	_ = cmd.MarkFlagRequired("session-id")
	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			err = a.session.Logout(cmd.Context())
			a.forgetToken()
			if err != nil && !api.IsUnauthorized(err) {
				return err
			}
			fmt.Fprintln(a.out, "Logged out")
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			if a.profile.Token == "" {
				return errSignedOut
			}
			user, err := a.session.Restore(cmd.Context())
			if err != nil {
				return err
			}
			if a.json {
				return a.printJSON(user)
			}
			status := "approved"
			if !user.Approved {
				status = "pending approval"
			}
			fmt.Fprintf(a.out, "%s <%s>\nrole: %s, %s\n", user.Name, user.Email, user.Role, status)
			return nil
		},
	}
}
