// Package mocks holds testify mocks of the repository interfaces shared by
// the middleware, handler and service tests.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/sashafierce98/TGPTaskflow/internal/model"
	"github.com/sashafierce98/TGPTaskflow/internal/repository"
)

var (
	_ repository.BoardRepositoryInterface   = (*BoardRepository)(nil)
	_ repository.ColumnRepositoryInterface  = (*ColumnRepository)(nil)
	_ repository.CardRepositoryInterface    = (*CardRepository)(nil)
	_ repository.CommentRepositoryInterface = (*CommentRepository)(nil)
	_ repository.UserRepositoryInterface    = (*UserRepository)(nil)
	_ repository.SessionRepositoryInterface = (*SessionRepository)(nil)
)

type BoardRepository struct {
	mock.Mock
}

func (m *BoardRepository) CreateWithColumns(ctx context.Context, board *model.Board, templates []model.ColumnTemplate) ([]model.Column, error) {
	args := m.Called(ctx, board, templates)
	columns, _ := args.Get(0).([]model.Column)
	return columns, args.Error(1)
}

func (m *BoardRepository) List(ctx context.Context) ([]model.Board, error) {
	args := m.Called(ctx)
	boards, _ := args.Get(0).([]model.Board)
	return boards, args.Error(1)
}

func (m *BoardRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Board, error) {
	args := m.Called(ctx, id)
	board, _ := args.Get(0).(*model.Board)
	return board, args.Error(1)
}

func (m *BoardRepository) Update(ctx context.Context, board *model.Board) error {
	return m.Called(ctx, board).Error(0)
}

func (m *BoardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *BoardRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type ColumnRepository struct {
	mock.Mock
}

func (m *ColumnRepository) Create(ctx context.Context, column *model.Column) error {
	return m.Called(ctx, column).Error(0)
}

func (m *ColumnRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Column, error) {
	args := m.Called(ctx, id)
	column, _ := args.Get(0).(*model.Column)
	return column, args.Error(1)
}

func (m *ColumnRepository) GetByBoardID(ctx context.Context, boardID uuid.UUID) ([]model.Column, error) {
	args := m.Called(ctx, boardID)
	columns, _ := args.Get(0).([]model.Column)
	return columns, args.Error(1)
}

func (m *ColumnRepository) Update(ctx context.Context, column *model.Column) error {
	return m.Called(ctx, column).Error(0)
}

func (m *ColumnRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type CardRepository struct {
	mock.Mock
}

func (m *CardRepository) Create(ctx context.Context, card *model.Card) error {
	return m.Called(ctx, card).Error(0)
}

func (m *CardRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Card, error) {
	args := m.Called(ctx, id)
	card, _ := args.Get(0).(*model.Card)
	return card, args.Error(1)
}

func (m *CardRepository) GetByBoardID(ctx context.Context, boardID uuid.UUID) ([]model.Card, error) {
	args := m.Called(ctx, boardID)
	cards, _ := args.Get(0).([]model.Card)
	return cards, args.Error(1)
}

func (m *CardRepository) CountByColumn(ctx context.Context, columnID uuid.UUID) (int64, error) {
	args := m.Called(ctx, columnID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *CardRepository) Update(ctx context.Context, card *model.Card, moved bool) error {
	return m.Called(ctx, card, moved).Error(0)
}

func (m *CardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *CardRepository) ListAssignedWithDueDate(ctx context.Context, userID uuid.UUID) ([]model.Card, error) {
	args := m.Called(ctx, userID)
	cards, _ := args.Get(0).([]model.Card)
	return cards, args.Error(1)
}

func (m *CardRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type CommentRepository struct {
	mock.Mock
}

func (m *CommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	return m.Called(ctx, comment).Error(0)
}

func (m *CommentRepository) GetByCardID(ctx context.Context, cardID uuid.UUID) ([]model.Comment, error) {
	args := m.Called(ctx, cardID)
	comments, _ := args.Get(0).([]model.Comment)
	return comments, args.Error(1)
}

func (m *CommentRepository) CountByCards(ctx context.Context, cardIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	args := m.Called(ctx, cardIDs)
	counts, _ := args.Get(0).(map[uuid.UUID]int)
	return counts, args.Error(1)
}

type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Create(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *UserRepository) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]model.User)
	return users, args.Error(1)
}

func (m *UserRepository) UpdateProfile(ctx context.Context, id uuid.UUID, name, picture string) error {
	return m.Called(ctx, id, name, picture).Error(0)
}

func (m *UserRepository) UpdateRole(ctx context.Context, id uuid.UUID, role model.Role) error {
	return m.Called(ctx, id, role).Error(0)
}

func (m *UserRepository) Approve(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *UserRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type SessionRepository struct {
	mock.Mock
}

func (m *SessionRepository) Create(ctx context.Context, session *model.Session) error {
	return m.Called(ctx, session).Error(0)
}

func (m *SessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Session, error) {
	args := m.Called(ctx, id)
	session, _ := args.Get(0).(*model.Session)
	return session, args.Error(1)
}

func (m *SessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *SessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}
