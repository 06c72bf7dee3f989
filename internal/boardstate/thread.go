package boardstate

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/sashafierce98/TGPTaskflow/internal/api"
)

// Thread is the answer list of one question, fetched when it is opened.
type Thread struct {
	store    *Store
	question api.Card

	mu       sync.RWMutex
	comments []api.Comment
}

// OpenThread loads the answers of a question card. Answers are not part of
// the board load.
func (s *Store) OpenThread(ctx context.Context, cardID uuid.UUID) (*Thread, error) {
	agg, err := s.current()
	if err != nil {
		return nil, err
	}
	i, ok := agg.card(cardID)
	if !ok {
		return nil, ErrUnknownCard
	}
	column, ok := agg.column(agg.Cards[i].ColumnID)
	if !ok || !column.IsQuestions() {
		return nil, ErrNotQuestion
	}

	t := &Thread{store: s, question: agg.Cards[i]}
	if err := t.Refresh(ctx); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Thread) Question() api.Card {
	return t.question
}

// Comments returns the answers oldest first.
func (t *Thread) Comments() []api.Comment {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]api.Comment(nil), t.comments...)
}

// Refresh refetches this thread only.
func (t *Thread) Refresh(ctx context.Context) error {
	comments, err := t.store.backend.ListComments(ctx, t.question.ID)
	if err != nil {
		t.store.observe(err)
		t.store.notifier.Error("Failed to load answers")
		return fmt.Errorf("load answers: %w", err)
	}

	t.mu.Lock()
	t.comments = comments
	t.mu.Unlock()
	return nil
}

// Answer appends an answer and refreshes the thread in place. The board is
// not reloaded.
func (t *Thread) Answer(ctx context.Context, text string) (*api.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		t.store.notifier.Error("Answer cannot be empty")
		return nil, ErrAnswerEmpty
	}

	comment, err := t.store.backend.CreateComment(ctx, t.question.ID, text)
	if err != nil {
		t.store.observe(err)
		t.store.notifier.Error("Failed to post answer")
		return nil, fmt.Errorf("post answer: %w", err)
	}

	t.store.notifier.Success("Answer posted")
	_ = t.Refresh(ctx)
	return comment, nil
}
