package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sashafierce98/TGPTaskflow/internal/model"
	"github.com/sashafierce98/TGPTaskflow/internal/repository"
)

type AdminHandler struct {
	userRepo  repository.UserRepositoryInterface
	boardRepo repository.BoardRepositoryInterface
	cardRepo  repository.CardRepositoryInterface
}

func NewAdminHandler(
	userRepo repository.UserRepositoryInterface,
	boardRepo repository.BoardRepositoryInterface,
	cardRepo repository.CardRepositoryInterface,
) *AdminHandler {
	return &AdminHandler{
		userRepo:  userRepo,
		boardRepo: boardRepo,
		cardRepo:  cardRepo,
	}
}

type AnalyticsResponse struct {
	TotalUsers  int64 `json:"total_users"`
	TotalBoards int64 `json:"total_boards"`
	TotalCards  int64 `json:"total_cards"`
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.userRepo.List(c.Request.Context())
	if err != nil {
		slog.Error("list users", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve users"})
		return
	}

	response := make([]UserResponse, len(users))
	for i := range users {
		response[i] = newUserResponse(&users[i])
	}
	c.JSON(http.StatusOK, response)
}

// UpdateRole sets the role given in the role query parameter. Admins cannot
// change their own role.
func (h *AdminHandler) UpdateRole(c *gin.Context) {
	adminID, ok := currentUserID(c)
	if !ok {
		return
	}
	targetID, ok := uuidParam(c, "id", "user")
	if !ok {
		return
	}

	role := model.Role(c.Query("role"))
	if !role.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "role must be one of: user admin"})
		return
	}
	if targetID == adminID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot change your own role"})
		return
	}

	if err := h.userRepo.UpdateRole(c.Request.Context(), targetID, role); err != nil {
		h.writeUserError(c, "update role", err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Role updated"})
}

func (h *AdminHandler) Approve(c *gin.Context) {
	targetID, ok := uuidParam(c, "id", "user")
	if !ok {
		return
	}

	if err := h.userRepo.Approve(c.Request.Context(), targetID); err != nil {
		h.writeUserError(c, "approve user", err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "User approved"})
}

// DeleteUser rejects a pending account or removes an existing one.
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	adminID, ok := currentUserID(c)
	if !ok {
		return
	}
	targetID, ok := uuidParam(c, "id", "user")
	if !ok {
		return
	}
	if targetID == adminID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot delete yourself"})
		return
	}

	if err := h.userRepo.Delete(c.Request.Context(), targetID); err != nil {
		h.writeUserError(c, "delete user", err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "User deleted"})
}

func (h *AdminHandler) Analytics(c *gin.Context) {
	ctx := c.Request.Context()

	var resp AnalyticsResponse
	var err error
	if resp.TotalUsers, err = h.userRepo.Count(ctx); err == nil {
		if resp.TotalBoards, err = h.boardRepo.Count(ctx); err == nil {
			resp.TotalCards, err = h.cardRepo.Count(ctx)
		}
	}
	if err != nil {
		slog.Error("analytics", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute analytics"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AdminHandler) writeUserError(c *gin.Context, op string, err error) {
	if errors.Is(err, repository.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	slog.Error(op, "err", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
}
