package boardstate

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/sashafierce98/TGPTaskflow/internal/api"
)

// MoveState is the phase of one drag-and-drop move.
type MoveState int

const (
	Idle MoveState = iota
	Optimistic
	Reconciling
	Committed
	RolledBack
)

func (s MoveState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Optimistic:
		return "optimistic"
	case Reconciling:
		return "reconciling"
	case Committed:
		return "committed"
	case RolledBack:
		return "rolled_back"
	}
	return "unknown"
}

// Location is a slot in a column. Index is accepted but not persisted; only
// column membership survives a reload.
type Location struct {
	ColumnID uuid.UUID
	Index    int
}

// Drag is a finished drag gesture. To is nil when the card was dropped
// outside any column. From.ColumnID is informational: moves are checked
// against the column the store holds the card in.
type Drag struct {
	CardID uuid.UUID
	From   Location
	To     *Location
}

// MoveOutcome reports how a move ended.
type MoveOutcome struct {
	State MoveState
	// Path lists every state the move went through, starting at Idle.
	Path []MoveState
	// ReloadErr is set when the reconciling reload failed.
	ReloadErr error
}

// Move applies a drag. The card is placed in the destination column locally
// before the backend is asked, then the whole board is reloaded whatever the
// answer. On failure the reload discards the local placement; if the reload
// fails too, the state from before the move is restored.
func (s *Store) Move(ctx context.Context, drag Drag) (MoveOutcome, error) {
	outcome := MoveOutcome{State: Idle, Path: []MoveState{Idle}}

	if drag.To == nil || *drag.To == drag.From {
		return outcome, nil
	}

	agg, err := s.current()
	if err != nil {
		return outcome, err
	}
	i, ok := agg.card(drag.CardID)
	if !ok {
		return outcome, ErrUnknownCard
	}
	// The card's stored column is the source; the drag's From may be stale.
	source, ok := agg.column(agg.Cards[i].ColumnID)
	if !ok {
		return outcome, ErrUnknownColumn
	}
	dest, ok := agg.column(drag.To.ColumnID)
	if !ok {
		return outcome, ErrUnknownColumn
	}
	if source.ID == dest.ID && drag.To.Index == drag.From.Index {
		return outcome, nil
	}

	if source.IsQuestions() || dest.IsQuestions() {
		s.notifier.Error("Questions cannot be moved to other columns")
		return outcome, ErrQuestionsLocked
	}
	if source.ID != dest.ID && dest.WIPReached(agg.count(dest.ID)) {
		s.notifier.Error(fmt.Sprintf("WIP limit reached for %s", dest.Name))
		return outcome, fmt.Errorf("%w: %s", ErrWIPLimitReached, dest.Name)
	}

	before, ok := s.place(drag.CardID, dest.ID)
	if !ok {
		// the card vanished in a concurrent reload
		return outcome, ErrUnknownCard
	}
	s.advance(&outcome, drag.CardID, Optimistic)

	s.advance(&outcome, drag.CardID, Reconciling)
	destID := dest.ID
	_, moveErr := s.backend.UpdateCard(ctx, drag.CardID, api.CardPatch{ColumnID: &destID})

	if moveErr == nil {
		if err := s.Load(ctx); err != nil {
			outcome.ReloadErr = err
		}
		s.advance(&outcome, drag.CardID, Committed)
		return outcome, nil
	}

	s.observe(moveErr)
	if err := s.Load(ctx); err != nil {
		outcome.ReloadErr = err
		s.restore(before)
	}
	s.notifier.Error("Failed to move card")
	s.advance(&outcome, drag.CardID, RolledBack)
	return outcome, fmt.Errorf("move card: %w", moveErr)
}

// place sets a card's column locally and returns the state before the change.
func (s *Store) place(cardID, columnID uuid.UUID) (*Aggregate, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.agg == nil {
		return nil, false
	}
	i, ok := s.agg.card(cardID)
	if !ok {
		return nil, false
	}
	before := s.agg.clone()
	s.agg.Cards[i].ColumnID = columnID
	return before, true
}

func (s *Store) restore(agg *Aggregate) {
	s.mu.Lock()
	s.agg = agg
	s.mu.Unlock()
}

func (s *Store) advance(o *MoveOutcome, cardID uuid.UUID, state MoveState) {
	o.State = state
	o.Path = append(o.Path, state)
	if s.onMove != nil {
		s.onMove(cardID, state)
	}
}

// IsRejection reports whether err refused a move before anything was sent.
func IsRejection(err error) bool {
	return errors.Is(err, ErrQuestionsLocked) || errors.Is(err, ErrWIPLimitReached)
}
