package boardstate_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sashafierce98/TGPTaskflow/internal/boardstate"
)

func TestThread_LazyLoad(t *testing.T) {
	l := setupLineA(t)
	question := l.backend.addCard(l.questions, "Which resin?")
	l.load(t)

	assert.Equal(t, 0, l.backend.count("ListComments"), "answers are not part of the board load")

	thread, err := l.store.OpenThread(context.Background(), question.ID)

	require.NoError(t, err)
	assert.Equal(t, question.ID, thread.Question().ID)
	assert.Empty(t, thread.Comments())
	assert.Equal(t, 1, l.backend.count("ListComments"))
}

func TestThread_OnlyQuestions(t *testing.T) {
	l := setupLineA(t)
	task := l.backend.addCard(l.backlog, "Mix resin")
	l.load(t)

	_, err := l.store.OpenThread(context.Background(), task.ID)

	assert.ErrorIs(t, err, boardstate.ErrNotQuestion)
}

func TestThread_Answer(t *testing.T) {
	l := setupLineA(t)
	question := l.backend.addCard(l.questions, "Which resin?")
	task := l.backend.addCard(l.backlog, "Mix resin")
	l.load(t)
	before, _ := l.store.Snapshot()
	boardLoads := l.backend.count("GetBoard")

	thread, err := l.store.OpenThread(context.Background(), question.ID)
	require.NoError(t, err)

	comment, err := thread.Answer(context.Background(), "  The grey one ")

	require.NoError(t, err)
	assert.Equal(t, "The grey one", comment.Text)
	require.Len(t, thread.Comments(), 1)
	assert.Equal(t, "The grey one", thread.Comments()[0].Text)
	assert.Equal(t, 1, l.backend.count("CreateComment"))
	assert.Equal(t, []string{"Answer posted"}, l.toasts.successes)

	// the thread refreshed in place; the board was left alone
	assert.Equal(t, boardLoads, l.backend.count("GetBoard"))
	after, _ := l.store.Snapshot()
	assert.Equal(t, before, after)
	assert.Equal(t, l.backlog.ID, cardColumn(t, l.store, task.ID))
}

func TestThread_AnswerEmpty(t *testing.T) {
	l := setupLineA(t)
	question := l.backend.addCard(l.questions, "Which resin?")
	l.load(t)
	thread, err := l.store.OpenThread(context.Background(), question.ID)
	require.NoError(t, err)

	_, err = thread.Answer(context.Background(), "\n ")

	assert.ErrorIs(t, err, boardstate.ErrAnswerEmpty)
	assert.Equal(t, "Answer cannot be empty", l.toasts.lastError())
	assert.Equal(t, 0, l.backend.count("CreateComment"))
}

func TestThread_AnswerFailure(t *testing.T) {
	l := setupLineA(t)
	question := l.backend.addCard(l.questions, "Which resin?")
	l.load(t)
	thread, err := l.store.OpenThread(context.Background(), question.ID)
	require.NoError(t, err)
	l.backend.set(func(f *fakeBackend) { f.failComment = assert.AnError })

	_, err = thread.Answer(context.Background(), "The grey one")

	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, "Failed to post answer", l.toasts.lastError())
	assert.Empty(t, thread.Comments())
}
