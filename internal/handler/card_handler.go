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

type CardHandler struct {
	cardRepo    repository.CardRepositoryInterface
	columnRepo  repository.ColumnRepositoryInterface
	boardRepo   repository.BoardRepositoryInterface
	commentRepo repository.CommentRepositoryInterface
	userRepo    repository.UserRepositoryInterface
}

func NewCardHandler(
	cardRepo repository.CardRepositoryInterface,
	columnRepo repository.ColumnRepositoryInterface,
	boardRepo repository.BoardRepositoryInterface,
	commentRepo repository.CommentRepositoryInterface,
	userRepo repository.UserRepositoryInterface,
) *CardHandler {
	return &CardHandler{
		cardRepo:    cardRepo,
		columnRepo:  columnRepo,
		boardRepo:   boardRepo,
		commentRepo: commentRepo,
		userRepo:    userRepo,
	}
}

type CreateCardRequest struct {
	Title       string `json:"title" binding:"required,notblank,max=200"`
	Description string `json:"description"`
	Priority    string `json:"priority" binding:"omitempty,oneof=low medium high"`
	DueDate     string `json:"due_date"`
	AssignedTo  string `json:"assigned_to"`
}

// UpdateCardRequest is a partial update. Absent fields are left alone; an
// empty due_date or assigned_to clears the value. column_id moves the card.
type UpdateCardRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Priority    *string `json:"priority"`
	DueDate     *string `json:"due_date"`
	AssignedTo  *string `json:"assigned_to"`
	ColumnID    *string `json:"column_id"`
}

// GetAll lists a board's cards. Cards in the questions column carry their
// answer count.
func (h *CardHandler) GetAll(c *gin.Context) {
	boardID, ok := uuidParam(c, "id", "board")
	if !ok {
		return
	}
	if _, ok := findBoard(c, h.boardRepo, boardID); !ok {
		return
	}

	ctx := c.Request.Context()
	columns, err := h.columnRepo.GetByBoardID(ctx, boardID)
	if err != nil {
		slog.Error("list columns", "board_id", boardID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve cards"})
		return
	}
	cards, err := h.cardRepo.GetByBoardID(ctx, boardID)
	if err != nil {
		slog.Error("list cards", "board_id", boardID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve cards"})
		return
	}

	questionColumns := make(map[uuid.UUID]bool)
	for _, column := range columns {
		if column.IsQuestions() {
			questionColumns[column.ID] = true
		}
	}

	var questionIDs []uuid.UUID
	for _, card := range cards {
		if questionColumns[card.ColumnID] {
			questionIDs = append(questionIDs, card.ID)
		}
	}
	counts, err := h.commentRepo.CountByCards(ctx, questionIDs)
	if err != nil {
		slog.Error("count answers", "board_id", boardID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve cards"})
		return
	}

	response := make([]CardResponse, len(cards))
	for i := range cards {
		response[i] = newCardResponse(&cards[i])
		if questionColumns[cards[i].ColumnID] {
			response[i].withAnswers(counts[cards[i].ID])
		}
	}
	c.JSON(http.StatusOK, response)
}

// Create adds a card to a column of the board. Asking a question is the same
// call against the questions column.
func (h *CardHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	boardID, ok := uuidParam(c, "id", "board")
	if !ok {
		return
	}
	columnID, ok := uuidParam(c, "column_id", "column")
	if !ok {
		return
	}

	var req CreateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingMessage(err)})
		return
	}

	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	assignee, err := parseAssignee(req.AssignedTo)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	priority, _ := model.ParsePriority(req.Priority)

	column, ok := findColumn(c, h.columnRepo, columnID)
	if !ok {
		return
	}
	if column.BoardID != boardID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Column not found"})
		return
	}
	if assignee != nil && !h.checkAssignee(c, *assignee) {
		return
	}

	card := &model.Card{
		BoardID:     boardID,
		ColumnID:    columnID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Priority:    priority,
		DueDate:     dueDate,
		AssignedTo:  assignee,
		CreatedBy:   userID,
	}
	if err := h.cardRepo.Create(c.Request.Context(), card); err != nil {
		slog.Error("create card", "column_id", columnID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create card"})
		return
	}

	resp := newCardResponse(card)
	if column.IsQuestions() {
		resp.withAnswers(0)
	}
	c.JSON(http.StatusCreated, resp)
}

// Update applies a partial update. Cards move only within their board, and
// never into or out of the questions column.
func (h *CardHandler) Update(c *gin.Context) {
	cardID, ok := uuidParam(c, "id", "card")
	if !ok {
		return
	}

	var req UpdateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	card, ok := h.loadCard(c, cardID)
	if !ok {
		return
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
			return
		}
		card.Title = title
	}
	if req.Description != nil {
		card.Description = *req.Description
	}
	if req.Priority != nil {
		priority, valid := model.ParsePriority(*req.Priority)
		if !valid {
			c.JSON(http.StatusBadRequest, gin.H{"error": "priority must be one of: low medium high"})
			return
		}
		card.Priority = priority
	}
	if req.DueDate != nil {
		dueDate, err := parseDueDate(*req.DueDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		card.DueDate = dueDate
	}
	if req.AssignedTo != nil {
		assignee, err := parseAssignee(*req.AssignedTo)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if assignee != nil && !h.checkAssignee(c, *assignee) {
			return
		}
		card.AssignedTo = assignee
	}

	current, ok := findColumn(c, h.columnRepo, card.ColumnID)
	if !ok {
		return
	}
	target := current

	if req.ColumnID != nil {
		columnID, err := uuid.Parse(*req.ColumnID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid column ID format"})
			return
		}
		if columnID != card.ColumnID {
			if target, ok = findColumn(c, h.columnRepo, columnID); !ok {
				return
			}
			if target.BoardID != card.BoardID {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Cards cannot move between boards"})
				return
			}
			if current.IsQuestions() || target.IsQuestions() {
				c.JSON(http.StatusConflict, gin.H{"error": "Questions cannot be moved to other columns"})
				return
			}
		}
	}
	moved := target.ID != card.ColumnID
	card.ColumnID = target.ID

	if err := h.cardRepo.Update(c.Request.Context(), card, moved); err != nil {
		if errors.Is(err, repository.ErrCardNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Card not found"})
			return
		}
		slog.Error("update card", "card_id", cardID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update card"})
		return
	}

	resp := newCardResponse(card)
	if target.IsQuestions() {
		counts, err := h.commentRepo.CountByCards(c.Request.Context(), []uuid.UUID{card.ID})
		if err != nil {
			slog.Error("count answers", "card_id", cardID, "err", err)
		}
		resp.withAnswers(counts[card.ID])
	}
	c.JSON(http.StatusOK, resp)
}

// Delete removes a card and its answers.
func (h *CardHandler) Delete(c *gin.Context) {
	cardID, ok := uuidParam(c, "id", "card")
	if !ok {
		return
	}

	if err := h.cardRepo.Delete(c.Request.Context(), cardID); err != nil {
		if errors.Is(err, repository.ErrCardNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Card not found"})
			return
		}
		slog.Error("delete card", "card_id", cardID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete card"})
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Card deleted"})
}

func (h *CardHandler) loadCard(c *gin.Context, cardID uuid.UUID) (*model.Card, bool) {
	return findCard(c, h.cardRepo, cardID)
}

func (h *CardHandler) checkAssignee(c *gin.Context, userID uuid.UUID) bool {
	if _, err := h.userRepo.GetByID(c.Request.Context(), userID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Assignee not found"})
			return false
		}
		slog.Error("load assignee", "user_id", userID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user"})
		return false
	}
	return true
}

// findCard answers 404 or 500 itself when the card cannot be loaded.
func findCard(c *gin.Context, cardRepo repository.CardRepositoryInterface, cardID uuid.UUID) (*model.Card, bool) {
	card, err := cardRepo.GetByID(c.Request.Context(), cardID)
	if err != nil {
		if errors.Is(err, repository.ErrCardNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Card not found"})
			return nil, false
		}
		slog.Error("load card", "card_id", cardID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve card"})
		return nil, false
	}
	return card, true
}
