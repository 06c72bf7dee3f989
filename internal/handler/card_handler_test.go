package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/sashafierce98/TGPTaskflow/internal/handler"
	"github.com/sashafierce98/TGPTaskflow/internal/model"
	"github.com/sashafierce98/TGPTaskflow/internal/repository"
	"github.com/sashafierce98/TGPTaskflow/internal/repository/mocks"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type cardFixture struct {
	router    *gin.Engine
	cards     *mocks.CardRepository
	columns   *mocks.ColumnRepository
	boards    *mocks.BoardRepository
	comments  *mocks.CommentRepository
	users     *mocks.UserRepository
	user      *model.User
	board     *model.Board
	todo      *model.Column
	doing     *model.Column
	questions *model.Column
}

func setupCards() *cardFixture {
	user := approvedUser()
	board := &model.Board{ID: uuid.New(), Name: "Line A", OwnerID: user.ID}
	f := &cardFixture{
		router:    newRouter(user),
		cards:     new(mocks.CardRepository),
		columns:   new(mocks.ColumnRepository),
		boards:    new(mocks.BoardRepository),
		comments:  new(mocks.CommentRepository),
		users:     new(mocks.UserRepository),
		user:      user,
		board:     board,
		todo:      &model.Column{ID: uuid.New(), BoardID: board.ID, Name: "To Do", Kind: model.ColumnStandard, Position: 1, WIPLimit: intPtr(15)},
		doing:     &model.Column{ID: uuid.New(), BoardID: board.ID, Name: "In Progress", Kind: model.ColumnStandard, Position: 2, WIPLimit: intPtr(5)},
		questions: &model.Column{ID: uuid.New(), BoardID: board.ID, Name: "Questions", Kind: model.ColumnQuestions, Position: 4},
	}
	f.boards.On("GetByID", mock.Anything, board.ID).Return(board, nil)
	for _, column := range []*model.Column{f.todo, f.doing, f.questions} {
		f.columns.On("GetByID", mock.Anything, column.ID).Return(column, nil)
	}

	h := handler.NewCardHandler(f.cards, f.columns, f.boards, f.comments, f.users)
	f.router.GET("/boards/:id/cards", h.GetAll)
	f.router.POST("/boards/:id/columns/:column_id/cards", h.Create)
	f.router.PUT("/cards/:id", h.Update)
	f.router.DELETE("/cards/:id", h.Delete)
	return f
}

func (f *cardFixture) cardIn(column *model.Column, title string) *model.Card {
	return &model.Card{ID: uuid.New(), BoardID: f.board.ID, ColumnID: column.ID, Title: title, Priority: model.PriorityMedium, CreatedBy: f.user.ID}
}

func (f *cardFixture) createPath(column *model.Column) string {
	return "/boards/" + f.board.ID.String() + "/columns/" + column.ID.String() + "/cards"
}

func TestCreateCard_DefaultsAndDueDate(t *testing.T) {
	// Arrange
	f := setupCards()
	f.cards.On("Create", mock.Anything, mock.MatchedBy(func(c *model.Card) bool {
		return c.Title == "Calibrate die" &&
			c.Priority == model.PriorityMedium &&
			c.DueDate != nil && c.DueDate.Equal(time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)) &&
			c.CreatedBy == f.user.ID && c.ColumnID == f.todo.ID
	})).Return(nil)

	// Act
	resp := doJSON(f.router, "POST", f.createPath(f.todo), map[string]any{"title": "Calibrate die", "due_date": "2026-03-14"})

	// Assert
	assert.Equal(t, http.StatusCreated, resp.Code)

	var card handler.CardResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &card))
	assert.Equal(t, "medium", card.Priority)
	require.NotNil(t, card.DueDate)
	assert.Equal(t, "2026-03-14", *card.DueDate)
	assert.Nil(t, card.AnswerCount)
	f.cards.AssertExpectations(t)
}

func TestCreateCard_QuestionStartsWithZeroAnswers(t *testing.T) {
	f := setupCards()
	f.cards.On("Create", mock.Anything, mock.Anything).Return(nil)

	resp := doJSON(f.router, "POST", f.createPath(f.questions), map[string]any{"title": "Which resin for run 14?", "priority": "medium", "description": ""})

	assert.Equal(t, http.StatusCreated, resp.Code)
	assert.Contains(t, resp.Body.String(), `"answer_count":0`)
}

func TestCreateCard_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"blank title", `{"title":"  "}`, "title is required"},
		{"bad priority", `{"title":"x","priority":"urgent"}`, "priority must be one of: low medium high"},
		{"bad due date", `{"title":"x","due_date":"14/03/2026"}`, "due_date must be YYYY-MM-DD"},
		{"bad assignee", `{"title":"x","assigned_to":"bob"}`, "assigned_to must be a user ID"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setupCards()

			resp := doJSON(f.router, "POST", f.createPath(f.todo), tt.body)

			assert.Equal(t, http.StatusBadRequest, resp.Code)
			assert.Equal(t, tt.want, decodeError(resp))
			f.cards.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateCard_ColumnOfAnotherBoard(t *testing.T) {
	f := setupCards()
	foreign := &model.Column{ID: uuid.New(), BoardID: uuid.New(), Name: "To Do"}
	f.columns.On("GetByID", mock.Anything, foreign.ID).Return(foreign, nil)

	resp := doJSON(f.router, "POST", f.createPath(foreign), map[string]any{"title": "x"})

	assert.Equal(t, http.StatusNotFound, resp.Code)
	f.cards.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateCard_UnknownAssignee(t *testing.T) {
	f := setupCards()
	ghost := uuid.New()
	f.users.On("GetByID", mock.Anything, ghost).Return(nil, repository.ErrUserNotFound)

	resp := doJSON(f.router, "POST", f.createPath(f.todo), map[string]any{"title": "x", "assigned_to": ghost.String()})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "Assignee not found", decodeError(resp))
}

func TestGetCards_AnswerCountsOnQuestionsOnly(t *testing.T) {
	f := setupCards()
	task := f.cardIn(f.todo, "Calibrate die")
	question := f.cardIn(f.questions, "Which resin?")

	f.columns.On("GetByBoardID", mock.Anything, f.board.ID).Return([]model.Column{*f.todo, *f.doing, *f.questions}, nil)
	f.cards.On("GetByBoardID", mock.Anything, f.board.ID).Return([]model.Card{*task, *question}, nil)
	f.comments.On("CountByCards", mock.Anything, []uuid.UUID{question.ID}).Return(map[uuid.UUID]int{question.ID: 2}, nil)

	resp := doJSON(f.router, "GET", "/boards/"+f.board.ID.String()+"/cards", nil)

	assert.Equal(t, http.StatusOK, resp.Code)
	var cards []handler.CardResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &cards))
	require.Len(t, cards, 2)
	assert.Nil(t, cards[0].AnswerCount)
	require.NotNil(t, cards[1].AnswerCount)
	assert.Equal(t, 2, *cards[1].AnswerCount)
	f.comments.AssertExpectations(t)
}

func TestUpdateCard_MoveBetweenStandardColumns(t *testing.T) {
	f := setupCards()
	card := f.cardIn(f.todo, "Calibrate die")
	f.cards.On("GetByID", mock.Anything, card.ID).Return(card, nil)
	f.cards.On("Update", mock.Anything, mock.MatchedBy(func(c *model.Card) bool {
		return c.ColumnID == f.doing.ID
	}), true).Return(nil)

	resp := doJSON(f.router, "PUT", "/cards/"+card.ID.String(), map[string]any{"column_id": f.doing.ID.String()})

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), f.doing.ID.String())
	f.cards.AssertExpectations(t)
}

func TestUpdateCard_EditWithoutMove(t *testing.T) {
	f := setupCards()
	due := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	card := f.cardIn(f.todo, "Calibrate die")
	card.DueDate = &due
	card.AssignedTo = &f.user.ID

	f.cards.On("GetByID", mock.Anything, card.ID).Return(card, nil)
	f.cards.On("Update", mock.Anything, mock.MatchedBy(func(c *model.Card) bool {
		return c.Title == "Calibrate die #2" && c.Priority == model.PriorityHigh && c.DueDate == nil && c.AssignedTo == nil
	}), false).Return(nil)

	resp := doJSON(f.router, "PUT", "/cards/"+card.ID.String(), map[string]any{
		"title": "Calibrate die #2", "priority": "high", "due_date": "", "assigned_to": "", "column_id": f.todo.ID.String(),
	})

	assert.Equal(t, http.StatusOK, resp.Code)
	f.cards.AssertExpectations(t)
}

func TestUpdateCard_QuestionsLocked(t *testing.T) {
	tests := []struct {
		name     string
		from, to func(f *cardFixture) *model.Column
	}{
		{"into questions", func(f *cardFixture) *model.Column { return f.todo }, func(f *cardFixture) *model.Column { return f.questions }},
		{"out of questions", func(f *cardFixture) *model.Column { return f.questions }, func(f *cardFixture) *model.Column { return f.doing }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setupCards()
			card := f.cardIn(tt.from(f), "x")
			f.cards.On("GetByID", mock.Anything, card.ID).Return(card, nil)

			resp := doJSON(f.router, "PUT", "/cards/"+card.ID.String(), map[string]any{"column_id": tt.to(f).ID.String()})

			assert.Equal(t, http.StatusConflict, resp.Code)
			assert.Equal(t, "Questions cannot be moved to other columns", decodeError(resp))
			f.cards.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestUpdateCard_CrossBoardRefused(t *testing.T) {
	f := setupCards()
	card := f.cardIn(f.todo, "x")
	foreign := &model.Column{ID: uuid.New(), BoardID: uuid.New(), Name: "To Do"}
	f.cards.On("GetByID", mock.Anything, card.ID).Return(card, nil)
	f.columns.On("GetByID", mock.Anything, foreign.ID).Return(foreign, nil)

	resp := doJSON(f.router, "PUT", "/cards/"+card.ID.String(), map[string]any{"column_id": foreign.ID.String()})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	f.cards.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateCard_BlankTitle(t *testing.T) {
	f := setupCards()
	card := f.cardIn(f.todo, "x")
	f.cards.On("GetByID", mock.Anything, card.ID).Return(card, nil)

	resp := doJSON(f.router, "PUT", "/cards/"+card.ID.String(), map[string]any{"title": " "})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestDeleteCard_NotFound(t *testing.T) {
	f := setupCards()
	cardID := uuid.New()
	f.cards.On("Delete", mock.Anything, cardID).Return(repository.ErrCardNotFound)

	resp := doJSON(f.router, "DELETE", "/cards/"+cardID.String(), nil)

	assert.Equal(t, http.StatusNotFound, resp.Code)
}
