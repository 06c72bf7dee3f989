// Package boardstate keeps a client-side copy of one board (the board, its
// columns and its cards) and applies user actions to it. Every mutation is
// sent to the backend and followed by a full reload; the backend is the only
// source of truth.
package boardstate

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/sashafierce98/TGPTaskflow/internal/api"
)

var (
	ErrNotLoaded         = errors.New("board not loaded")
	ErrUnknownColumn     = errors.New("unknown column")
	ErrUnknownCard       = errors.New("unknown card")
	ErrTitleRequired     = errors.New("card title is required")
	ErrInvalidPriority   = errors.New("priority must be one of: low medium high")
	ErrWIPLimitReached   = errors.New("wip limit reached")
	ErrQuestionsLocked   = errors.New("questions cannot be moved to other columns")
	ErrQuestionsColumn   = errors.New("questions are asked, not added as cards")
	ErrNoQuestionsColumn = errors.New("questions column not found")
	ErrQuestionEmpty     = errors.New("question cannot be empty")
	ErrAnswerEmpty       = errors.New("answer cannot be empty")
	ErrNotQuestion       = errors.New("card is not a question")
	ErrNotConfirmed      = errors.New("deletion not confirmed")
)

// Backend is the part of the API client a board store drives.
type Backend interface {
	GetBoard(ctx context.Context, boardID uuid.UUID) (*api.Board, error)
	ListColumns(ctx context.Context, boardID uuid.UUID) ([]api.Column, error)
	ListCards(ctx context.Context, boardID uuid.UUID) ([]api.Card, error)
	CreateCard(ctx context.Context, boardID, columnID uuid.UUID, req api.CreateCardRequest) (*api.Card, error)
	UpdateCard(ctx context.Context, cardID uuid.UUID, patch api.CardPatch) (*api.Card, error)
	DeleteCard(ctx context.Context, cardID uuid.UUID) error
	ListComments(ctx context.Context, cardID uuid.UUID) ([]api.Comment, error)
	CreateComment(ctx context.Context, cardID uuid.UUID, text string) (*api.Comment, error)
}

// Notifier shows short-lived messages to the user.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

type nopNotifier struct{}

func (nopNotifier) Success(string) {}
func (nopNotifier) Error(string)   {}

// Aggregate is a board with its columns and cards, as last loaded.
type Aggregate struct {
	Board   api.Board
	Columns []api.Column
	Cards   []api.Card
}

func (a *Aggregate) clone() *Aggregate {
	if a == nil {
		return nil
	}
	return &Aggregate{
		Board:   a.Board,
		Columns: append([]api.Column(nil), a.Columns...),
		Cards:   append([]api.Card(nil), a.Cards...),
	}
}

func (a *Aggregate) column(id uuid.UUID) (api.Column, bool) {
	for _, c := range a.Columns {
		if c.ID == id {
			return c, true
		}
	}
	return api.Column{}, false
}

func (a *Aggregate) card(id uuid.UUID) (int, bool) {
	for i, c := range a.Cards {
		if c.ID == id {
			return i, true
		}
	}
	return -1, false
}

func (a *Aggregate) questionsColumn() (api.Column, bool) {
	for _, c := range a.Columns {
		if c.IsQuestions() {
			return c, true
		}
	}
	return api.Column{}, false
}

func (a *Aggregate) count(columnID uuid.UUID) int {
	n := 0
	for _, c := range a.Cards {
		if c.ColumnID == columnID {
			n++
		}
	}
	return n
}

// ColumnView is one lane ready for display.
type ColumnView struct {
	Column api.Column
	Cards  []api.Card
	// AddDisabled is set for the questions column and for full columns.
	AddDisabled bool
}

func (v ColumnView) WIPReached() bool {
	return v.Column.WIPReached(len(v.Cards))
}

type Option func(*Store)

func WithNotifier(n Notifier) Option {
	return func(s *Store) { s.notifier = n }
}

// WithMoveObserver reports every state a move passes through.
func WithMoveObserver(fn func(cardID uuid.UUID, state MoveState)) Option {
	return func(s *Store) { s.onMove = fn }
}

// WithErrorObserver receives every backend error, e.g. to sign the session
// out on 401.
func WithErrorObserver(fn func(error)) Option {
	return func(s *Store) { s.onError = fn }
}

// Store is the board state container. Its methods are safe to call from
// several goroutines, though a board client issues one action at a time.
type Store struct {
	backend  Backend
	boardID  uuid.UUID
	notifier Notifier
	onMove   func(uuid.UUID, MoveState)
	onError  func(error)

	mu  sync.RWMutex
	agg *Aggregate
}

func New(backend Backend, boardID uuid.UUID, opts ...Option) *Store {
	s := &Store{
		backend:  backend,
		boardID:  boardID,
		notifier: nopNotifier{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) BoardID() uuid.UUID {
	return s.boardID
}

// Load fetches the board, its columns and its cards concurrently. If any of
// the three fails the load fails and the previous state is kept.
func (s *Store) Load(ctx context.Context) error {
	var (
		board   *api.Board
		columns []api.Column
		cards   []api.Card
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		board, err = s.backend.GetBoard(gctx, s.boardID)
		return err
	})
	g.Go(func() error {
		var err error
		columns, err = s.backend.ListColumns(gctx, s.boardID)
		return err
	})
	g.Go(func() error {
		var err error
		cards, err = s.backend.ListCards(gctx, s.boardID)
		return err
	})
	if err := g.Wait(); err != nil {
		s.observe(err)
		s.notifier.Error("Failed to load board")
		return fmt.Errorf("load board %s: %w", s.boardID, err)
	}

	s.mu.Lock()
	s.agg = &Aggregate{Board: *board, Columns: columns, Cards: cards}
	s.mu.Unlock()
	return nil
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() (Aggregate, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.agg == nil {
		return Aggregate{}, false
	}
	return *s.agg.clone(), true
}

// View returns the columns in order, each with its cards.
func (s *Store) View() []ColumnView {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.agg == nil {
		return nil
	}

	views := make([]ColumnView, len(s.agg.Columns))
	for i, column := range s.agg.Columns {
		views[i].Column = column
		for _, card := range s.agg.Cards {
			if card.ColumnID == column.ID {
				views[i].Cards = append(views[i].Cards, card)
			}
		}
		views[i].AddDisabled = column.IsQuestions() || column.WIPReached(len(views[i].Cards))
	}
	return views
}

// CanAddCard reports whether the add-card action is open for a column.
func (s *Store) CanAddCard(columnID uuid.UUID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.agg == nil {
		return false
	}
	column, ok := s.agg.column(columnID)
	if !ok || column.IsQuestions() {
		return false
	}
	return !column.WIPReached(s.agg.count(columnID))
}

// current returns a private copy of the state for validation.
func (s *Store) current() (*Aggregate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.agg == nil {
		return nil, ErrNotLoaded
	}
	return s.agg.clone(), nil
}

func (s *Store) observe(err error) {
	if s.onError != nil && err != nil {
		s.onError(err)
	}
}
