package handler

import (
	"time"

	"github.com/sashafierce98/TGPTaskflow/internal/model"
)

type UserResponse struct {
	ID        string    `json:"user_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Picture   string    `json:"picture"`
	Role      string    `json:"role"`
	Approved  bool      `json:"approved"`
	CreatedAt time.Time `json:"created_at"`
}

func newUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:        u.ID.String(),
		Email:     u.Email,
		Name:      u.Name,
		Picture:   u.Picture,
		Role:      string(u.Role),
		Approved:  u.Approved,
		CreatedAt: u.CreatedAt,
	}
}

type BoardResponse struct {
	ID          string    `json:"board_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	OwnerID     string    `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func newBoardResponse(b *model.Board) BoardResponse {
	return BoardResponse{
		ID:          b.ID.String(),
		Name:        b.Name,
		Description: b.Description,
		OwnerID:     b.OwnerID.String(),
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

type ColumnResponse struct {
	ID       string `json:"column_id"`
	BoardID  string `json:"board_id"`
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	Order    int    `json:"order"`
	WIPLimit *int   `json:"wip_limit"`
	Color    string `json:"color"`
}

func newColumnResponse(c *model.Column) ColumnResponse {
	return ColumnResponse{
		ID:       c.ID.String(),
		BoardID:  c.BoardID.String(),
		Name:     c.Name,
		Kind:     string(c.Kind),
		Order:    c.Position,
		WIPLimit: c.WIPLimit,
		Color:    c.Color,
	}
}

// CardResponse is a task or, in the questions column, a question. Only
// questions carry answer_count.
type CardResponse struct {
	ID          string    `json:"card_id"`
	BoardID     string    `json:"board_id"`
	ColumnID    string    `json:"column_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Priority    string    `json:"priority"`
	DueDate     *string   `json:"due_date"`
	AssignedTo  *string   `json:"assigned_to"`
	CreatedBy   string    `json:"created_by"`
	Order       int       `json:"order"`
	AnswerCount *int      `json:"answer_count,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func newCardResponse(c *model.Card) CardResponse {
	resp := CardResponse{
		ID:          c.ID.String(),
		BoardID:     c.BoardID.String(),
		ColumnID:    c.ColumnID.String(),
		Title:       c.Title,
		Description: c.Description,
		Priority:    string(c.Priority),
		CreatedBy:   c.CreatedBy.String(),
		Order:       c.Position,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
	if c.DueDate != nil {
		dueDate := c.DueDate.Format(model.DateLayout)
		resp.DueDate = &dueDate
	}
	if c.AssignedTo != nil {
		assignedTo := c.AssignedTo.String()
		resp.AssignedTo = &assignedTo
	}
	return resp
}

func (r *CardResponse) withAnswers(count int) {
	r.AnswerCount = &count
}

type CommentResponse struct {
	ID        string    `json:"comment_id"`
	CardID    string    `json:"card_id"`
	UserID    string    `json:"user_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

func newCommentResponse(c *model.Comment) CommentResponse {
	return CommentResponse{
		ID:        c.ID.String(),
		CardID:    c.CardID.String(),
		UserID:    c.UserID.String(),
		Text:      c.Text,
		CreatedAt: c.CreatedAt,
	}
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
