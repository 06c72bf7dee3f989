package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sashafierce98/TGPTaskflow/internal/model"
	"github.com/sashafierce98/TGPTaskflow/internal/repository"
)

type BoardHandler struct {
	boardRepo repository.BoardRepositoryInterface
}

func NewBoardHandler(boardRepo repository.BoardRepositoryInterface) *BoardHandler {
	return &BoardHandler{
		boardRepo: boardRepo,
	}
}

type CustomLimitsRequest struct {
	TodoLimit *int `json:"todo_limit" binding:"omitempty,min=0"`
	WIPLimit  *int `json:"wip_limit" binding:"omitempty,min=0"`
}

type CreateBoardRequest struct {
	Name         string               `json:"name" binding:"required,notblank,max=100"`
	Description  string               `json:"description"`
	CustomLimits *CustomLimitsRequest `json:"custom_limits"`
}

type UpdateBoardRequest struct {
	Name        string `json:"name" binding:"required,notblank,max=100"`
	Description string `json:"description"`
}

// CreateBoardResponse is the new board plus the lanes it was provisioned with.
type CreateBoardResponse struct {
	BoardResponse
	Columns []ColumnResponse `json:"columns"`
}

// Create provisions a board with the default lanes. custom_limits replaces
// the To Do and In Progress limits; a null limit means unlimited.
func (h *BoardHandler) Create(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingMessage(err)})
		return
	}

	var limits *model.CustomLimits
	if req.CustomLimits != nil {
		limits = &model.CustomLimits{
			TodoLimit: req.CustomLimits.TodoLimit,
			WIPLimit:  req.CustomLimits.WIPLimit,
		}
	}

	board := &model.Board{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		OwnerID:     ownerID,
	}

	columns, err := h.boardRepo.CreateWithColumns(c.Request.Context(), board, model.DefaultColumns(limits))
	if err != nil {
		slog.Error("create board", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create board"})
		return
	}

	resp := CreateBoardResponse{
		BoardResponse: newBoardResponse(board),
		Columns:       make([]ColumnResponse, len(columns)),
	}
	for i := range columns {
		resp.Columns[i] = newColumnResponse(&columns[i])
	}
	c.JSON(http.StatusCreated, resp)
}

// GetAll lists every board; boards are shared across the organization.
func (h *BoardHandler) GetAll(c *gin.Context) {
	boards, err := h.boardRepo.List(c.Request.Context())
	if err != nil {
		slog.Error("list boards", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve boards"})
		return
	}

	response := make([]BoardResponse, len(boards))
	for i := range boards {
		response[i] = newBoardResponse(&boards[i])
	}
	c.JSON(http.StatusOK, response)
}

func (h *BoardHandler) GetByID(c *gin.Context) {
	boardID, ok := uuidParam(c, "id", "board")
	if !ok {
		return
	}

	board, ok := h.loadBoard(c, boardID)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, newBoardResponse(board))
}

func (h *BoardHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	boardID, ok := uuidParam(c, "id", "board")
	if !ok {
		return
	}

	var req UpdateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingMessage(err)})
		return
	}

	board, ok := h.loadBoard(c, boardID)
	if !ok {
		return
	}
	if !board.IsOwnedBy(userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only owner can update"})
		return
	}

	board.Name = strings.TrimSpace(req.Name)
	board.Description = req.Description
	if err := h.boardRepo.Update(c.Request.Context(), board); err != nil {
		if errors.Is(err, repository.ErrBoardNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Board not found"})
			return
		}
		slog.Error("update board", "board_id", boardID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update board"})
		return
	}
	c.JSON(http.StatusOK, newBoardResponse(board))
}

// Delete removes a board with its columns, cards and answers. Owner only.
func (h *BoardHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	boardID, ok := uuidParam(c, "id", "board")
	if !ok {
		return
	}

	board, ok := h.loadBoard(c, boardID)
	if !ok {
		return
	}
	if !board.IsOwnedBy(userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only owner can delete"})
		return
	}

	if err := h.boardRepo.Delete(c.Request.Context(), boardID); err != nil {
		if errors.Is(err, repository.ErrBoardNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Board not found"})
			return
		}
		slog.Error("delete board", "board_id", boardID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete board"})
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Board deleted"})
}

func (h *BoardHandler) loadBoard(c *gin.Context, boardID uuid.UUID) (*model.Board, bool) {
	return findBoard(c, h.boardRepo, boardID)
}

// findBoard answers 404 or 500 itself when the board cannot be loaded.
func findBoard(c *gin.Context, boardRepo repository.BoardRepositoryInterface, boardID uuid.UUID) (*model.Board, bool) {
	board, err := boardRepo.GetByID(c.Request.Context(), boardID)
	if err != nil {
		if errors.Is(err, repository.ErrBoardNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Board not found"})
			return nil, false
		}
		slog.Error("load board", "board_id", boardID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve board"})
		return nil, false
	}
	return board, true
}
