package boardstate_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sashafierce98/TGPTaskflow/internal/api"
	"github.com/sashafierce98/TGPTaskflow/internal/boardstate"
)

func drag(card api.Card, from api.Column, to api.Column) boardstate.Drag {
	return boardstate.Drag{
		CardID: card.ID,
		From:   boardstate.Location{ColumnID: from.ID},
		To:     &boardstate.Location{ColumnID: to.ID},
	}
}

func cardColumn(t *testing.T, s *boardstate.Store, cardID uuid.UUID) uuid.UUID {
	t.Helper()
	agg, ok := s.Snapshot()
	require.True(t, ok)
	for _, c := range agg.Cards {
		if c.ID == cardID {
			return c.ColumnID
		}
	}
	t.Fatalf("card %s not in store", cardID)
	return uuid.Nil
}

func TestMove_LineAScenario(t *testing.T) {
	l := setupLineA(t)
	l.backend.addCard(l.inProgress, "Calibrate die")
	l.backend.addCard(l.inProgress, "Check moulds")
	third := l.backend.addCard(l.backlog, "Mix resin batch")
	l.load(t)

	// In Progress is full: the drag is refused before anything is sent
	outcome, err := l.store.Move(context.Background(), drag(third, l.backlog, l.inProgress))

	assert.ErrorIs(t, err, boardstate.ErrWIPLimitReached)
	assert.True(t, boardstate.IsRejection(err))
	assert.Equal(t, boardstate.Idle, outcome.State)
	assert.Equal(t, 0, l.backend.count("UpdateCard"))
	assert.Equal(t, l.backlog.ID, cardColumn(t, l.store, third.ID))
	assert.Equal(t, "WIP limit reached for In Progress", l.toasts.lastError())

	// Done is unlimited: the move commits
	outcome, err = l.store.Move(context.Background(), drag(third, l.backlog, l.done))

	require.NoError(t, err)
	assert.Equal(t, boardstate.Committed, outcome.State)
	assert.Equal(t, []boardstate.MoveState{
		boardstate.Idle, boardstate.Optimistic, boardstate.Reconciling, boardstate.Committed,
	}, outcome.Path)
	assert.NoError(t, outcome.ReloadErr)
	assert.Equal(t, l.done.ID, cardColumn(t, l.store, third.ID))
	assert.Equal(t, l.done.ID, l.backend.columnOf(third.ID))
	assert.Empty(t, l.toasts.successes, "a committed move is silent")
}

func TestMove_QuestionsLocked(t *testing.T) {
	l := setupLineA(t)
	task := l.backend.addCard(l.backlog, "Mix resin batch")
	question := l.backend.addCard(l.questions, "Which resin?")
	l.load(t)

	tests := []struct {
		name string
		drag boardstate.Drag
		card api.Card
		home api.Column
	}{
		{"into questions", drag(task, l.backlog, l.questions), task, l.backlog},
		{"out of questions", drag(question, l.questions, l.done), question, l.questions},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome, err := l.store.Move(context.Background(), tt.drag)

			assert.ErrorIs(t, err, boardstate.ErrQuestionsLocked)
			assert.Equal(t, []boardstate.MoveState{boardstate.Idle}, outcome.Path)
			assert.Equal(t, tt.home.ID, cardColumn(t, l.store, tt.card.ID))
			assert.Equal(t, "Questions cannot be moved to other columns", l.toasts.lastError())
		})
	}
	assert.Equal(t, 0, l.backend.count("UpdateCard"))
}

func TestMove_SourceComesFromStore(t *testing.T) {
	l := setupLineA(t)
	question := l.backend.addCard(l.questions, "Which resin?")
	l.backend.addCard(l.inProgress, "Calibrate die")
	l.backend.addCard(l.inProgress, "Check moulds")
	l.load(t)

	t.Run("question dragged with a stale source", func(t *testing.T) {
		outcome, err := l.store.Move(context.Background(), drag(question, l.backlog, l.done))

		assert.ErrorIs(t, err, boardstate.ErrQuestionsLocked)
		assert.Equal(t, []boardstate.MoveState{boardstate.Idle}, outcome.Path)
		assert.Equal(t, l.questions.ID, cardColumn(t, l.store, question.ID))
		assert.Equal(t, 0, l.backend.count("UpdateCard"))
	})

	t.Run("card already in a full column", func(t *testing.T) {
		agg, _ := l.store.Snapshot()
		var inside api.Card
		for _, c := range agg.Cards {
			if c.ColumnID == l.inProgress.ID {
				inside = c
				break
			}
		}

		outcome, err := l.store.Move(context.Background(), boardstate.Drag{
			CardID: inside.ID,
			From:   boardstate.Location{ColumnID: l.backlog.ID, Index: 0},
			To:     &boardstate.Location{ColumnID: l.inProgress.ID, Index: 1},
		})

		require.NoError(t, err)
		assert.Equal(t, boardstate.Committed, outcome.State)
		assert.Equal(t, l.inProgress.ID, cardColumn(t, l.store, inside.ID))
	})
}

func TestMove_ServerRefusesQuestionsMove(t *testing.T) {
	l := setupLineA(t)
	question := l.backend.addCard(l.questions, "Which resin?")

	_, err := l.backend.UpdateCard(context.Background(), question.ID, api.CardPatch{ColumnID: &l.done.ID})

	assert.True(t, api.IsConflict(err))
	assert.Equal(t, l.questions.ID, l.backend.columnOf(question.ID))
}

func TestMove_NoOps(t *testing.T) {
	l := setupLineA(t)
	card := l.backend.addCard(l.backlog, "Mix resin batch")
	l.load(t)

	t.Run("dropped outside", func(t *testing.T) {
		outcome, err := l.store.Move(context.Background(), boardstate.Drag{
			CardID: card.ID,
			From:   boardstate.Location{ColumnID: l.backlog.ID},
		})
		require.NoError(t, err)
		assert.Equal(t, boardstate.Idle, outcome.State)
	})

	t.Run("same slot", func(t *testing.T) {
		outcome, err := l.store.Move(context.Background(), drag(card, l.backlog, l.backlog))
		require.NoError(t, err)
		assert.Equal(t, boardstate.Idle, outcome.State)
	})

	assert.Equal(t, 0, l.backend.count("UpdateCard"))
}

func TestMove_ReorderWithinColumnIgnoresWIP(t *testing.T) {
	l := setupLineA(t)
	first := l.backend.addCard(l.inProgress, "Calibrate die")
	l.backend.addCard(l.inProgress, "Check moulds")
	l.load(t)

	outcome, err := l.store.Move(context.Background(), boardstate.Drag{
		CardID: first.ID,
		From:   boardstate.Location{ColumnID: l.inProgress.ID, Index: 0},
		To:     &boardstate.Location{ColumnID: l.inProgress.ID, Index: 1},
	})

	require.NoError(t, err)
	assert.Equal(t, boardstate.Committed, outcome.State)
	assert.Equal(t, l.inProgress.ID, cardColumn(t, l.store, first.ID))
}

func TestMove_OptimisticBeforeConfirmation(t *testing.T) {
	var l *lineA
	var seen []uuid.UUID
	l = setupLineA(t, boardstate.WithMoveObserver(func(cardID uuid.UUID, state boardstate.MoveState) {
		if state == boardstate.Optimistic || state == boardstate.Reconciling {
			seen = append(seen, cardColumn(t, l.store, cardID))
		}
	}))
	card := l.backend.addCard(l.backlog, "Mix resin batch")
	l.load(t)

	var serverBefore uuid.UUID
	l.backend.set(func(f *fakeBackend) {
		f.onUpdate = func() { serverBefore = l.backend.columnOf(card.ID) }
	})

	_, err := l.store.Move(context.Background(), drag(card, l.backlog, l.done))

	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{l.done.ID, l.done.ID}, seen)
	assert.Equal(t, l.backlog.ID, serverBefore, "the local placement precedes the write")
}

func TestMove_FailureRollsBackToServerTruth(t *testing.T) {
	var seen []error
	l := setupLineA(t, boardstate.WithErrorObserver(func(err error) { seen = append(seen, err) }))
	card := l.backend.addCard(l.backlog, "Mix resin batch")
	l.load(t)
	l.backend.set(func(f *fakeBackend) { f.failUpdate = &api.Error{Status: http.StatusForbidden, Message: "Account pending approval"} })
	loadsBefore := l.backend.count("ListCards")

	outcome, err := l.store.Move(context.Background(), drag(card, l.backlog, l.done))

	require.Error(t, err)
	assert.True(t, api.IsForbidden(err))
	assert.Equal(t, boardstate.RolledBack, outcome.State)
	assert.Equal(t, []boardstate.MoveState{
		boardstate.Idle, boardstate.Optimistic, boardstate.Reconciling, boardstate.RolledBack,
	}, outcome.Path)
	assert.Equal(t, l.backlog.ID, cardColumn(t, l.store, card.ID))
	assert.Equal(t, loadsBefore+1, l.backend.count("ListCards"), "exactly one reconciling reload")
	assert.Equal(t, "Failed to move card", l.toasts.lastError())
	require.Len(t, seen, 1)
}

func TestMove_FailureAndReloadFailureRestoresSnapshot(t *testing.T) {
	l := setupLineA(t)
	card := l.backend.addCard(l.backlog, "Mix resin batch")
	l.load(t)
	l.backend.set(func(f *fakeBackend) {
		f.failUpdate = assert.AnError
		f.failCards = assert.AnError
	})

	outcome, err := l.store.Move(context.Background(), drag(card, l.backlog, l.done))

	require.Error(t, err)
	assert.Equal(t, boardstate.RolledBack, outcome.State)
	assert.Error(t, outcome.ReloadErr)
	assert.Equal(t, l.backlog.ID, cardColumn(t, l.store, card.ID))
	assert.Contains(t, l.toasts.errors, "Failed to load board")
	assert.Equal(t, "Failed to move card", l.toasts.lastError())
}

func TestMove_CommitWithReloadFailureKeepsPlacement(t *testing.T) {
	l := setupLineA(t)
	card := l.backend.addCard(l.backlog, "Mix resin batch")
	l.load(t)
	l.backend.set(func(f *fakeBackend) { f.failColumns = assert.AnError })

	outcome, err := l.store.Move(context.Background(), drag(card, l.backlog, l.done))

	require.NoError(t, err)
	assert.Equal(t, boardstate.Committed, outcome.State)
	assert.ErrorIs(t, outcome.ReloadErr, assert.AnError)
	assert.Equal(t, l.done.ID, cardColumn(t, l.store, card.ID))
	assert.Equal(t, l.done.ID, l.backend.columnOf(card.ID))
}

func TestMove_UnknownCardOrColumn(t *testing.T) {
	l := setupLineA(t)
	card := l.backend.addCard(l.backlog, "Mix resin batch")

	_, err := l.store.Move(context.Background(), drag(card, l.backlog, l.done))
	assert.ErrorIs(t, err, boardstate.ErrNotLoaded)

	l.load(t)

	_, err = l.store.Move(context.Background(), drag(api.Card{ID: uuid.New()}, l.backlog, l.done))
	assert.ErrorIs(t, err, boardstate.ErrUnknownCard)

	_, err = l.store.Move(context.Background(), drag(card, l.backlog, api.Column{ID: uuid.New()}))
	assert.ErrorIs(t, err, boardstate.ErrUnknownColumn)
}

func TestMove_ReconciledStateMatchesServer(t *testing.T) {
	l := setupLineA(t)
	card := l.backend.addCard(l.backlog, "Mix resin batch")
	l.load(t)

	// another client moved a card meanwhile
	other := l.backend.addCard(l.done, "Ship pallet")

	_, err := l.store.Move(context.Background(), drag(card, l.backlog, l.done))
	require.NoError(t, err)

	agg, _ := l.store.Snapshot()
	require.Len(t, agg.Cards, 2)
	for _, c := range agg.Cards {
		assert.Equal(t, l.backend.columnOf(c.ID), c.ColumnID)
	}
	assert.Equal(t, l.done.ID, cardColumn(t, l.store, other.ID))
}
