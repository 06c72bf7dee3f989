package boardstate_test

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sashafierce98/TGPTaskflow/internal/api"
	"github.com/sashafierce98/TGPTaskflow/internal/model"
)

// fakeBackend is an in-memory backend with call counters and injectable
// failures.
type fakeBackend struct {
	mu       sync.Mutex
	board    api.Board
	columns  []api.Column
	cards    []api.Card
	comments map[uuid.UUID][]api.Comment
	calls    map[string]int

	failBoard   error
	failColumns error
	failCards   error
	failCreate  error
	failUpdate  error
	failDelete  error
	failComment error

	// onUpdate runs before an update is applied.
	onUpdate func()
}

func newFakeBackend(name string) *fakeBackend {
	return &fakeBackend{
		board:    api.Board{ID: uuid.New(), Name: name, OwnerID: uuid.New()},
		comments: make(map[uuid.UUID][]api.Comment),
		calls:    make(map[string]int),
	}
}

func (f *fakeBackend) addColumn(name string, kind model.ColumnKind, limit *int) api.Column {
	f.mu.Lock()
	defer f.mu.Unlock()
	column := api.Column{ID: uuid.New(), BoardID: f.board.ID, Name: name, Kind: kind, Order: len(f.columns), WIPLimit: limit}
	f.columns = append(f.columns, column)
	return column
}

func (f *fakeBackend) addCard(column api.Column, title string) api.Card {
	f.mu.Lock()
	defer f.mu.Unlock()
	card := api.Card{ID: uuid.New(), BoardID: f.board.ID, ColumnID: column.ID, Title: title, Priority: model.PriorityMedium}
	if column.IsQuestions() {
		zero := 0
		card.AnswerCount = &zero
	}
	f.cards = append(f.cards, card)
	return card
}

func (f *fakeBackend) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeBackend) columnOf(cardID uuid.UUID) uuid.UUID {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.cards {
		if c.ID == cardID {
			return c.ColumnID
		}
	}
	return uuid.Nil
}

func (f *fakeBackend) set(fn func(f *fakeBackend)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f)
}

func (f *fakeBackend) GetBoard(_ context.Context, boardID uuid.UUID) (*api.Board, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["GetBoard"]++
	if f.failBoard != nil {
		return nil, f.failBoard
	}
	if boardID != f.board.ID {
		return nil, &api.Error{Status: http.StatusNotFound, Message: "Board not found"}
	}
	board := f.board
	return &board, nil
}

func (f *fakeBackend) ListColumns(context.Context, uuid.UUID) ([]api.Column, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["ListColumns"]++
	if f.failColumns != nil {
		return nil, f.failColumns
	}
	return append([]api.Column(nil), f.columns...), nil
}

func (f *fakeBackend) ListCards(context.Context, uuid.UUID) ([]api.Card, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["ListCards"]++
	if f.failCards != nil {
		return nil, f.failCards
	}
	return append([]api.Card(nil), f.cards...), nil
}

func (f *fakeBackend) CreateCard(_ context.Context, boardID, columnID uuid.UUID, req api.CreateCardRequest) (*api.Card, error) {
	f.mu.Lock()
	f.calls["CreateCard"]++
	failure := f.failCreate
	var column api.Column
	for _, c := range f.columns {
		if c.ID == columnID {
			column = c
		}
	}
	f.mu.Unlock()

	if failure != nil {
		return nil, failure
	}
	card := f.addCard(column, req.Title)
	f.set(func(f *fakeBackend) {
		for i := range f.cards {
			if f.cards[i].ID == card.ID {
				f.cards[i].Priority = req.Priority
				f.cards[i].Description = req.Description
				card = f.cards[i]
			}
		}
	})
	return &card, nil
}

func (f *fakeBackend) UpdateCard(_ context.Context, cardID uuid.UUID, patch api.CardPatch) (*api.Card, error) {
	f.mu.Lock()
	hook := f.onUpdate
	f.mu.Unlock()
	if hook != nil {
		hook()
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["UpdateCard"]++
	if f.failUpdate != nil {
		return nil, f.failUpdate
	}
	for i := range f.cards {
		if f.cards[i].ID != cardID {
			continue
		}
		if patch.ColumnID != nil && *patch.ColumnID != f.cards[i].ColumnID {
			if f.isQuestions(f.cards[i].ColumnID) || f.isQuestions(*patch.ColumnID) {
				return nil, &api.Error{Status: http.StatusConflict, Message: "Questions cannot be moved to other columns"}
			}
			f.cards[i].ColumnID = *patch.ColumnID
		}
		if patch.Title != nil {
			f.cards[i].Title = *patch.Title
		}
		if patch.Priority != nil {
			f.cards[i].Priority = *patch.Priority
		}
		card := f.cards[i]
		return &card, nil
	}
	return nil, &api.Error{Status: http.StatusNotFound, Message: "Card not found"}
}

// isQuestions must be called with mu held.
func (f *fakeBackend) isQuestions(columnID uuid.UUID) bool {
	for _, c := range f.columns {
		if c.ID == columnID {
			return c.IsQuestions()
		}
	}
	return false
}

func (f *fakeBackend) DeleteCard(_ context.Context, cardID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["DeleteCard"]++
	if f.failDelete != nil {
		return f.failDelete
	}
	for i := range f.cards {
		if f.cards[i].ID == cardID {
			f.cards = append(f.cards[:i], f.cards[i+1:]...)
			delete(f.comments, cardID)
			return nil
		}
	}
	return &api.Error{Status: http.StatusNotFound, Message: "Card not found"}
}

func (f *fakeBackend) ListComments(_ context.Context, cardID uuid.UUID) ([]api.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["ListComments"]++
	return append([]api.Comment(nil), f.comments[cardID]...), nil
}

func (f *fakeBackend) CreateComment(_ context.Context, cardID uuid.UUID, text string) (*api.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["CreateComment"]++
	if f.failComment != nil {
		return nil, f.failComment
	}
	comment := api.Comment{ID: uuid.New(), CardID: cardID, Text: text, CreatedAt: time.Now()}
	f.comments[cardID] = append(f.comments[cardID], comment)
	for i := range f.cards {
		if f.cards[i].ID == cardID && f.cards[i].AnswerCount != nil {
			n := *f.cards[i].AnswerCount + 1
			f.cards[i].AnswerCount = &n
		}
	}
	return &comment, nil
}

// toasts records notifications.
type toasts struct {
	mu        sync.Mutex
	successes []string
	errors    []string
}

func (t *toasts) Success(msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.successes = append(t.successes, msg)
}

func (t *toasts) Error(msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.errors = append(t.errors, msg)
}

func (t *toasts) lastError() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.errors) == 0 {
		return ""
	}
	return t.errors[len(t.errors)-1]
}
