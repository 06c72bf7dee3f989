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

type ColumnHandler struct {
	columnRepo repository.ColumnRepositoryInterface
	boardRepo  repository.BoardRepositoryInterface
}

func NewColumnHandler(columnRepo repository.ColumnRepositoryInterface, boardRepo repository.BoardRepositoryInterface) *ColumnHandler {
	return &ColumnHandler{
		columnRepo: columnRepo,
		boardRepo:  boardRepo,
	}
}

// ColumnRequest is used for both create and update. A missing or null
// wip_limit means unlimited.
type ColumnRequest struct {
	Name     string `json:"name" binding:"required,notblank,max=50"`
	WIPLimit *int   `json:"wip_limit" binding:"omitempty,min=0"`
	Color    string `json:"color" binding:"omitempty,hexcolor"`
}

// checkBoardOwner answers the request itself unless userID owns the board.
func (h *ColumnHandler) checkBoardOwner(c *gin.Context, boardID, userID uuid.UUID) bool {
	board, ok := findBoard(c, h.boardRepo, boardID)
	if !ok {
		return false
	}
	if !board.IsOwnedBy(userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the board owner can manage columns"})
		return false
	}
	return true
}

func (h *ColumnHandler) GetAll(c *gin.Context) {
	boardID, ok := uuidParam(c, "id", "board")
	if !ok {
		return
	}
	if _, ok := findBoard(c, h.boardRepo, boardID); !ok {
		return
	}

	columns, err := h.columnRepo.GetByBoardID(c.Request.Context(), boardID)
	if err != nil {
		slog.Error("list columns", "board_id", boardID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve columns"})
		return
	}

	response := make([]ColumnResponse, len(columns))
	for i := range columns {
		response[i] = newColumnResponse(&columns[i])
	}
	c.JSON(http.StatusOK, response)
}

// Create appends a standard column. The questions column only comes from
// board provisioning.
func (h *ColumnHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	boardID, ok := uuidParam(c, "id", "board")
	if !ok {
		return
	}

	var req ColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingMessage(err)})
		return
	}

	if !h.checkBoardOwner(c, boardID, userID) {
		return
	}

	column := &model.Column{
		BoardID:  boardID,
		Name:     strings.TrimSpace(req.Name),
		Kind:     model.ColumnStandard,
		WIPLimit: req.WIPLimit,
		Color:    req.Color,
	}
	if err := column.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.columnRepo.Create(c.Request.Context(), column); err != nil {
		h.writeStoreError(c, "create column", err)
		return
	}
	c.JSON(http.StatusCreated, newColumnResponse(column))
}

// Update rewrites name, limit and color. The kind of a column never changes.
func (h *ColumnHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	columnID, ok := uuidParam(c, "id", "column")
	if !ok {
		return
	}

	var req ColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingMessage(err)})
		return
	}

	column, ok := h.loadColumn(c, columnID)
	if !ok {
		return
	}
	if !h.checkBoardOwner(c, column.BoardID, userID) {
		return
	}

	column.Name = strings.TrimSpace(req.Name)
	column.WIPLimit = req.WIPLimit
	if req.Color != "" {
		column.Color = req.Color
	}
	if err := column.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.columnRepo.Update(c.Request.Context(), column); err != nil {
		h.writeStoreError(c, "update column", err)
		return
	}
	c.JSON(http.StatusOK, newColumnResponse(column))
}

func (h *ColumnHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	columnID, ok := uuidParam(c, "id", "column")
	if !ok {
		return
	}

	column, ok := h.loadColumn(c, columnID)
	if !ok {
		return
	}
	if !h.checkBoardOwner(c, column.BoardID, userID) {
		return
	}
	if column.IsQuestions() {
		c.JSON(http.StatusConflict, gin.H{"error": "The Questions column cannot be deleted"})
		return
	}

	if err := h.columnRepo.Delete(c.Request.Context(), columnID); err != nil {
		h.writeStoreError(c, "delete column", err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Column deleted"})
}

func (h *ColumnHandler) loadColumn(c *gin.Context, columnID uuid.UUID) (*model.Column, bool) {
	return findColumn(c, h.columnRepo, columnID)
}

func (h *ColumnHandler) writeStoreError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, repository.ErrColumnNameTaken):
		c.JSON(http.StatusConflict, gin.H{"error": "A column with this name already exists on the board"})
	case errors.Is(err, repository.ErrColumnNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Column not found"})
	default:
		slog.Error(op, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save column"})
	}
}

// findColumn answers 404 or 500 itself when the column cannot be loaded.
func findColumn(c *gin.Context, columnRepo repository.ColumnRepositoryInterface, columnID uuid.UUID) (*model.Column, bool) {
	column, err := columnRepo.GetByID(c.Request.Context(), columnID)
	if err != nil {
		if errors.Is(err, repository.ErrColumnNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Column not found"})
			return nil, false
		}
		slog.Error("load column", "column_id", columnID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve column"})
		return nil, false
	}
	return column, true
}
