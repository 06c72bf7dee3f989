package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"

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

func setupBoards(user *model.User) (*gin.Engine, *mocks.BoardRepository) {
	r := newRouter(user)
	boardRepo := new(mocks.BoardRepository)
	h := handler.NewBoardHandler(boardRepo)

	r.GET("/boards", h.GetAll)
	r.POST("/boards", h.Create)
	r.GET("/boards/:id", h.GetByID)
	r.PUT("/boards/:id", h.Update)
	r.DELETE("/boards/:id", h.Delete)
	return r, boardRepo
}

// provisioned is what the repository hands back for a set of templates.
func provisioned(boardID uuid.UUID, templates []model.ColumnTemplate) []model.Column {
	columns := make([]model.Column, len(templates))
	for i, tpl := range templates {
		columns[i] = model.Column{ID: uuid.New(), BoardID: boardID, Name: tpl.Name, Kind: tpl.Kind, Position: i, WIPLimit: tpl.WIPLimit, Color: tpl.Color}
	}
	return columns
}

func TestCreateBoard_ProvisionsDefaultColumns(t *testing.T) {
	// Arrange
	user := approvedUser()
	router, boardRepo := setupBoards(user)

	templates := model.DefaultColumns(nil)
	boardRepo.On("CreateWithColumns", mock.Anything, mock.MatchedBy(func(b *model.Board) bool {
		return b.Name == "Extrusion Line A" && b.OwnerID == user.ID
	}), templates).Return(provisioned(uuid.New(), templates), nil)

	// Act
	resp := doJSON(router, "POST", "/boards", map[string]any{"name": "  Extrusion Line A ", "description": "Main line"})

	// Assert
	assert.Equal(t, http.StatusCreated, resp.Code)

	var body handler.CreateBoardResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "Extrusion Line A", body.Name)
	assert.Equal(t, user.ID.String(), body.OwnerID)
	require.Len(t, body.Columns, 5)
	assert.Equal(t, "To Do", body.Columns[1].Name)
	assert.Equal(t, 15, *body.Columns[1].WIPLimit)
	assert.Equal(t, 5, *body.Columns[2].WIPLimit)
	assert.Nil(t, body.Columns[0].WIPLimit)
	assert.Equal(t, "questions", body.Columns[4].Kind)
	assert.Equal(t, 4, body.Columns[4].Order)

	boardRepo.AssertExpectations(t)
}

func TestCreateBoard_CustomLimits(t *testing.T) {
	router, boardRepo := setupBoards(approvedUser())

	boardRepo.On("CreateWithColumns", mock.Anything, mock.Anything, mock.MatchedBy(func(templates []model.ColumnTemplate) bool {
		return templates[1].WIPLimit != nil && *templates[1].WIPLimit == 8 && templates[2].WIPLimit == nil
	})).Return([]model.Column{}, nil)

	resp := doJSON(router, "POST", "/boards", `{"name":"Line B","custom_limits":{"todo_limit":8,"wip_limit":null}}`)

	assert.Equal(t, http.StatusCreated, resp.Code)
	boardRepo.AssertExpectations(t)
}

func TestCreateBoard_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"missing name", `{"description":"x"}`, "name is required"},
		{"blank name", `{"name":"   "}`, "name is required"},
		{"negative limit", `{"name":"Line","custom_limits":{"todo_limit":-1}}`, "todo_limit must be at least 0"},
		{"malformed", `{"name":`, "Invalid request"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, boardRepo := setupBoards(approvedUser())

			resp := doJSON(router, "POST", "/boards", tt.body)

			assert.Equal(t, http.StatusBadRequest, resp.Code)
			assert.Equal(t, tt.want, decodeError(resp))
			boardRepo.AssertNotCalled(t, "CreateWithColumns", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestGetBoards_ListsEveryBoard(t *testing.T) {
	router, boardRepo := setupBoards(approvedUser())

	boardRepo.On("List", mock.Anything).Return([]model.Board{
		{ID: uuid.New(), Name: "Line A", OwnerID: uuid.New()},
		{ID: uuid.New(), Name: "Line B", OwnerID: uuid.New()},
	}, nil)

	resp := doJSON(router, "GET", "/boards", nil)

	assert.Equal(t, http.StatusOK, resp.Code)
	var boards []handler.BoardResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &boards))
	assert.Len(t, boards, 2)
}

func TestGetBoard_NotFound(t *testing.T) {
	router, boardRepo := setupBoards(approvedUser())
	boardID := uuid.New()
	boardRepo.On("GetByID", mock.Anything, boardID).Return(nil, repository.ErrBoardNotFound)

	resp := doJSON(router, "GET", "/boards/"+boardID.String(), nil)

	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Equal(t, "Board not found", decodeError(resp))
}

func TestGetBoard_InvalidID(t *testing.T) {
	router, _ := setupBoards(approvedUser())

	resp := doJSON(router, "GET", "/boards/not-a-uuid", nil)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "Invalid board ID format", decodeError(resp))
}

func TestDeleteBoard_OnlyOwner(t *testing.T) {
	user := approvedUser()
	router, boardRepo := setupBoards(user)
	board := &model.Board{ID: uuid.New(), Name: "Line A", OwnerID: uuid.New()}
	boardRepo.On("GetByID", mock.Anything, board.ID).Return(board, nil)

	resp := doJSON(router, "DELETE", "/boards/"+board.ID.String(), nil)

	assert.Equal(t, http.StatusForbidden, resp.Code)
	assert.Equal(t, "Only owner can delete", decodeError(resp))
	boardRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)

	boardRepo.On("List", mock.Anything).Return([]model.Board{*board}, nil)
	resp = doJSON(router, "GET", "/boards", nil)

	require.Equal(t, http.StatusOK, resp.Code)
	var boards []handler.BoardResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &boards))
	require.Len(t, boards, 1)
	assert.Equal(t, board.ID.String(), boards[0].ID)
}

func TestDeleteBoard_Owner(t *testing.T) {
	user := approvedUser()
	router, boardRepo := setupBoards(user)
	board := &model.Board{ID: uuid.New(), Name: "Line A", OwnerID: user.ID}
	boardRepo.On("GetByID", mock.Anything, board.ID).Return(board, nil)
	boardRepo.On("Delete", mock.Anything, board.ID).Return(nil)

	resp := doJSON(router, "DELETE", "/boards/"+board.ID.String(), nil)

	assert.Equal(t, http.StatusOK, resp.Code)
	boardRepo.AssertExpectations(t)
}

func TestUpdateBoard(t *testing.T) {
	user := approvedUser()
	router, boardRepo := setupBoards(user)
	board := &model.Board{ID: uuid.New(), Name: "Line A", OwnerID: user.ID}
	boardRepo.On("GetByID", mock.Anything, board.ID).Return(board, nil)
	boardRepo.On("Update", mock.Anything, mock.MatchedBy(func(b *model.Board) bool {
		return b.Name == "Line A (night)" && b.Description == "Night shift"
	})).Return(nil)

	resp := doJSON(router, "PUT", "/boards/"+board.ID.String(), map[string]string{"name": "Line A (night)", "description": "Night shift"})

	assert.Equal(t, http.StatusOK, resp.Code)
	boardRepo.AssertExpectations(t)
}
