package boardstate

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/sashafierce98/TGPTaskflow/internal/api"
	"github.com/sashafierce98/TGPTaskflow/internal/model"
)

// CardDraft is the add-card form.
type CardDraft struct {
	Title       string
	Description string
	// Priority defaults to medium when empty.
	Priority   model.Priority
	DueDate    string
	AssignedTo string
}

// CardEdit changes the fields that are set. A set ColumnID moves the card
// under the same rules as a drag, without the optimistic step.
type CardEdit struct {
	Title       *string
	Description *string
	Priority    *model.Priority
	DueDate     *string
	AssignedTo  *string
	ColumnID    *uuid.UUID
}

// Confirm asks the user to confirm deleting card.
type Confirm func(card api.Card) bool

// AddCard creates a card in a standard column. Validation failures never
// reach the backend.
func (s *Store) AddCard(ctx context.Context, columnID uuid.UUID, draft CardDraft) (*api.Card, error) {
	title := strings.TrimSpace(draft.Title)
	if title == "" {
		s.notifier.Error("Card title is required")
		return nil, ErrTitleRequired
	}
	priority, ok := model.ParsePriority(string(draft.Priority))
	if !ok {
		s.notifier.Error("Priority must be low, medium or high")
		return nil, ErrInvalidPriority
	}

	agg, err := s.current()
	if err != nil {
		return nil, err
	}
	column, ok := agg.column(columnID)
	if !ok {
		return nil, ErrUnknownColumn
	}
	if column.IsQuestions() {
		s.notifier.Error("Use Ask Question for the Questions column")
		return nil, ErrQuestionsColumn
	}
	if column.WIPReached(agg.count(columnID)) {
		s.notifier.Error(fmt.Sprintf("WIP limit reached for %s", column.Name))
		return nil, fmt.Errorf("%w: %s", ErrWIPLimitReached, column.Name)
	}

	card, err := s.backend.CreateCard(ctx, s.boardID, columnID, api.CreateCardRequest{
		Title:       title,
		Description: draft.Description,
		Priority:    priority,
		DueDate:     strings.TrimSpace(draft.DueDate),
		AssignedTo:  strings.TrimSpace(draft.AssignedTo),
	})
	if err != nil {
		s.observe(err)
		s.notifier.Error("Failed to create card")
		_ = s.Load(ctx)
		return nil, fmt.Errorf("create card: %w", err)
	}

	s.notifier.Success("Card created")
	_ = s.Load(ctx)
	return card, nil
}

// UpdateCard sends an edit. An empty title is refused locally.
func (s *Store) UpdateCard(ctx context.Context, cardID uuid.UUID, edit CardEdit) (*api.Card, error) {
	patch := api.CardPatch{
		Description: edit.Description,
		DueDate:     edit.DueDate,
		AssignedTo:  edit.AssignedTo,
	}
	if edit.Title != nil {
		title := strings.TrimSpace(*edit.Title)
		if title == "" {
			s.notifier.Error("Card title is required")
			return nil, ErrTitleRequired
		}
		patch.Title = &title
	}
	if edit.Priority != nil {
		if _, ok := model.ParsePriority(string(*edit.Priority)); !ok || *edit.Priority == "" {
			s.notifier.Error("Priority must be low, medium or high")
			return nil, ErrInvalidPriority
		}
		patch.Priority = edit.Priority
	}

	agg, err := s.current()
	if err != nil {
		return nil, err
	}
	i, ok := agg.card(cardID)
	if !ok {
		return nil, ErrUnknownCard
	}

	if edit.ColumnID != nil && *edit.ColumnID != agg.Cards[i].ColumnID {
		source, _ := agg.column(agg.Cards[i].ColumnID)
		dest, ok := agg.column(*edit.ColumnID)
		if !ok {
			return nil, ErrUnknownColumn
		}
		if source.IsQuestions() || dest.IsQuestions() {
			s.notifier.Error("Questions cannot be moved to other columns")
			return nil, ErrQuestionsLocked
		}
		if dest.WIPReached(agg.count(dest.ID)) {
			s.notifier.Error(fmt.Sprintf("WIP limit reached for %s", dest.Name))
			return nil, fmt.Errorf("%w: %s", ErrWIPLimitReached, dest.Name)
		}
		patch.ColumnID = edit.ColumnID
	}

	card, err := s.backend.UpdateCard(ctx, cardID, patch)
	if err != nil {
		s.observe(err)
		s.notifier.Error("Failed to update card")
		_ = s.Load(ctx)
		return nil, fmt.Errorf("update card: %w", err)
	}

	s.notifier.Success("Card updated")
	_ = s.Load(ctx)
	return card, nil
}

// DeleteCard removes a card once confirm agrees. Without confirmation
// nothing is sent.
func (s *Store) DeleteCard(ctx context.Context, cardID uuid.UUID, confirm Confirm) error {
	agg, err := s.current()
	if err != nil {
		return err
	}
	i, ok := agg.card(cardID)
	if !ok {
		return ErrUnknownCard
	}
	if confirm == nil || !confirm(agg.Cards[i]) {
		return ErrNotConfirmed
	}

	if err := s.backend.DeleteCard(ctx, cardID); err != nil {
		s.observe(err)
		s.notifier.Error("Failed to delete card")
		_ = s.Load(ctx)
		return fmt.Errorf("delete card: %w", err)
	}

	s.notifier.Success("Card deleted")
	_ = s.Load(ctx)
	return nil
}

// AskQuestion posts a question to the board's questions column.
func (s *Store) AskQuestion(ctx context.Context, text string) (*api.Card, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		s.notifier.Error("Question cannot be empty")
		return nil, ErrQuestionEmpty
	}

	agg, err := s.current()
	if err != nil {
		return nil, err
	}
	column, ok := agg.questionsColumn()
	if !ok {
		s.notifier.Error("Questions column not found")
		return nil, ErrNoQuestionsColumn
	}

	card, err := s.backend.CreateCard(ctx, s.boardID, column.ID, api.CreateCardRequest{
		Title:    text,
		Priority: model.PriorityMedium,
	})
	if err != nil {
		s.observe(err)
		s.notifier.Error("Failed to post question")
		_ = s.Load(ctx)
		return nil, fmt.Errorf("ask question: %w", err)
	}

	s.notifier.Success("Question posted")
	_ = s.Load(ctx)
	return card, nil
}
