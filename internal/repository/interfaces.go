package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/sashafierce98/TGPTaskflow/internal/model"
)

type BoardRepositoryInterface interface {
	CreateWithColumns(ctx context.Context, board *model.Board, templates []model.ColumnTemplate) ([]model.Column, error)
	List(ctx context.Context) ([]model.Board, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Board, error)
	Update(ctx context.Context, board *model.Board) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

type ColumnRepositoryInterface interface {
	Create(ctx context.Context, column *model.Column) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Column, error)
	GetByBoardID(ctx context.Context, boardID uuid.UUID) ([]model.Column, error)
	Update(ctx context.Context, column *model.Column) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type CardRepositoryInterface interface {
	Create(ctx context.Context, card *model.Card) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Card, error)
	GetByBoardID(ctx context.Context, boardID uuid.UUID) ([]model.Card, error)
	CountByColumn(ctx context.Context, columnID uuid.UUID) (int64, error)
	Update(ctx context.Context, card *model.Card, moved bool) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListAssignedWithDueDate(ctx context.Context, userID uuid.UUID) ([]model.Card, error)
	Count(ctx context.Context) (int64, error)
}

type CommentRepositoryInterface interface {
	Create(ctx context.Context, comment *model.Comment) error
	GetByCardID(ctx context.Context, cardID uuid.UUID) ([]model.Comment, error)
	CountByCards(ctx context.Context, cardIDs []uuid.UUID) (map[uuid.UUID]int, error)
}

type UserRepositoryInterface interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, name, picture string) error
	UpdateRole(ctx context.Context, id uuid.UUID, role model.Role) error
	Approve(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

type SessionRepositoryInterface interface {
	Create(ctx context.Context, session *model.Session) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

var (
	_ BoardRepositoryInterface   = (*BoardRepository)(nil)
	_ ColumnRepositoryInterface  = (*ColumnRepository)(nil)
	_ CardRepositoryInterface    = (*CardRepository)(nil)
	_ CommentRepositoryInterface = (*CommentRepository)(nil)
	_ UserRepositoryInterface    = (*UserRepository)(nil)
	_ SessionRepositoryInterface = (*SessionRepository)(nil)
)
