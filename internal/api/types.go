package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/sashafierce98/TGPTaskflow/internal/model"
)

type User struct {
	ID        uuid.UUID  `json:"user_id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	Picture   string     `json:"picture"`
	Role      model.Role `json:"role"`
	Approved  bool       `json:"approved"`
	CreatedAt time.Time  `json:"created_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == model.RoleAdmin
}

type Board struct {
	ID          uuid.UUID `json:"board_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	OwnerID     uuid.UUID `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreatedBoard is a new board together with its provisioned columns.
type CreatedBoard struct {
	Board
	Columns []Column `json:"columns"`
}

type Column struct {
	ID       uuid.UUID        `json:"column_id"`
	BoardID  uuid.UUID        `json:"board_id"`
	Name     string           `json:"name"`
	Kind     model.ColumnKind `json:"kind"`
	Order    int              `json:"order"`
	WIPLimit *int             `json:"wip_limit"`
	Color    string           `json:"color"`
}

func (c *Column) IsQuestions() bool {
	return c.Kind == model.ColumnQuestions
}

// WIPReached reports whether count cards fill the column. The questions
// column never fills.
func (c *Column) WIPReached(count int) bool {
	if c.IsQuestions() || c.WIPLimit == nil {
		return false
	}
	return count >= *c.WIPLimit
}

type Card struct {
	ID          uuid.UUID      `json:"card_id"`
	BoardID     uuid.UUID      `json:"board_id"`
	ColumnID    uuid.UUID      `json:"column_id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Priority    model.Priority `json:"priority"`
	DueDate     *string        `json:"due_date"`
	AssignedTo  *string        `json:"assigned_to"`
	CreatedBy   uuid.UUID      `json:"created_by"`
	Order       int            `json:"order"`
	AnswerCount *int           `json:"answer_count,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

type Comment struct {
	ID        uuid.UUID `json:"comment_id"`
	CardID    uuid.UUID `json:"card_id"`
	UserID    uuid.UUID `json:"user_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

type Notification struct {
	Type    string    `json:"type"`
	CardID  uuid.UUID `json:"card_id"`
	Title   string    `json:"title"`
	Message string    `json:"message"`
	DueDate string    `json:"due_date"`
}

type Analytics struct {
	TotalUsers  int64 `json:"total_users"`
	TotalBoards int64 `json:"total_boards"`
	TotalCards  int64 `json:"total_cards"`
}

type CustomLimits struct {
	TodoLimit *int `json:"todo_limit,omitempty"`
	WIPLimit  *int `json:"wip_limit,omitempty"`
}

type CreateBoardRequest struct {
	Name         string        `json:"name"`
	Description  string        `json:"description"`
	CustomLimits *CustomLimits `json:"custom_limits,omitempty"`
}

type UpdateBoardRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ColumnRequest sends wip_limit as null for an unlimited column.
type ColumnRequest struct {
	Name     string `json:"name"`
	WIPLimit *int   `json:"wip_limit"`
	Color    string `json:"color,omitempty"`
}

type CreateCardRequest struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Priority    model.Priority `json:"priority,omitempty"`
	DueDate     string         `json:"due_date,omitempty"`
	AssignedTo  string         `json:"assigned_to,omitempty"`
}

// CardPatch carries only the fields to change. An empty DueDate or
// AssignedTo clears the value.
type CardPatch struct {
	Title       *string         `json:"title,omitempty"`
	Description *string         `json:"description,omitempty"`
	Priority    *model.Priority `json:"priority,omitempty"`
	DueDate     *string         `json:"due_date,omitempty"`
	AssignedTo  *string         `json:"assigned_to,omitempty"`
	ColumnID    *uuid.UUID      `json:"column_id,omitempty"`
}

type errorBody struct {
	Error string `json:"error"`
}
