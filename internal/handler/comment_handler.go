package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sashafierce98/TGPTaskflow/internal/model"
	"github.com/sashafierce98/TGPTaskflow/internal/repository"
)

// CommentHandler serves answer threads of question cards.
type CommentHandler struct {
	commentRepo repository.CommentRepositoryInterface
	cardRepo    repository.CardRepositoryInterface
	columnRepo  repository.ColumnRepositoryInterface
}

func NewCommentHandler(
	commentRepo repository.CommentRepositoryInterface,
	cardRepo repository.CardRepositoryInterface,
	columnRepo repository.ColumnRepositoryInterface,
) *CommentHandler {
	return &CommentHandler{
		commentRepo: commentRepo,
		cardRepo:    cardRepo,
		columnRepo:  columnRepo,
	}
}

type CreateCommentRequest struct {
	Text string `json:"text" binding:"required,notblank,max=5000"`
}

// GetAll returns a card's thread, oldest first.
func (h *CommentHandler) GetAll(c *gin.Context) {
	cardID, ok := uuidParam(c, "id", "card")
	if !ok {
		return
	}
	if _, ok := findCard(c, h.cardRepo, cardID); !ok {
		return
	}

	comments, err := h.commentRepo.GetByCardID(c.Request.Context(), cardID)
	if err != nil {
		slog.Error("list comments", "card_id", cardID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve answers"})
		return
	}

	response := make([]CommentResponse, len(comments))
	for i := range comments {
		response[i] = newCommentResponse(&comments[i])
	}
	c.JSON(http.StatusOK, response)
}

// Create appends an answer. Only question cards take answers.
func (h *CommentHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	cardID, ok := uuidParam(c, "id", "card")
	if !ok {
		return
	}

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingMessage(err)})
		return
	}

	card, ok := findCard(c, h.cardRepo, cardID)
	if !ok {
		return
	}
	column, ok := findColumn(c, h.columnRepo, card.ColumnID)
	if !ok {
		return
	}
	if !column.IsQuestions() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only questions can be answered"})
		return
	}

	comment := &model.Comment{
		CardID: cardID,
		UserID: userID,
		Text:   strings.TrimSpace(req.Text),
	}
	if err := h.commentRepo.Create(c.Request.Context(), comment); err != nil {
		slog.Error("create comment", "card_id", cardID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to post answer"})
		return
	}
	c.JSON(http.StatusCreated, newCommentResponse(comment))
}
