package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sashafierce98/TGPTaskflow/internal/model"
)

type BoardRepository struct {
	db *gorm.DB
}

func NewBoardRepository(db *gorm.DB) *BoardRepository {
	return &BoardRepository{db: db}
}

// CreateWithColumns stores a board together with its provisioned columns in
// one transaction. Columns are positioned in template order.
func (r *BoardRepository) CreateWithColumns(ctx context.Context, board *model.Board, templates []model.ColumnTemplate) ([]model.Column, error) {
	columns := make([]model.Column, 0, len(templates))
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(board).Error; err != nil {
			return err
		}
		for i, tpl := range templates {
			column := model.Column{
				BoardID:  board.ID,
				Name:     tpl.Name,
				Kind:     tpl.Kind,
				Position: i,
				WIPLimit: tpl.WIPLimit,
				Color:    tpl.Color,
			}
			if err := tx.Create(&column).Error; err != nil {
				return err
			}
			columns = append(columns, column)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return columns, nil
}

func (r *BoardRepository) List(ctx context.Context) ([]model.Board, error) {
	var boards []model.Board
	err := r.db.WithContext(ctx).Order("created_at").Find(&boards).Error
	return boards, err
}

func (r *BoardRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Board, error) {
	var board model.Board
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&board).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBoardNotFound
		}
		return nil, err
	}
	return &board, nil
}

func (r *BoardRepository) Update(ctx context.Context, board *model.Board) error {
	result := r.db.WithContext(ctx).Model(board).Select("Name", "Description", "UpdatedAt").Updates(board)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBoardNotFound
	}
	return nil
}

// Delete removes a board and everything hanging off it: comments, cards and
// columns.
func (r *BoardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cardIDs := tx.Model(&model.Card{}).Select("id").Where("board_id = ?", id)
		if err := tx.Where("card_id IN (?)", cardIDs).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("board_id = ?", id).Delete(&model.Card{}).Error; err != nil {
			return err
		}
		if err := tx.Where("board_id = ?", id).Delete(&model.Column{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&model.Board{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrBoardNotFound
		}
		return nil
	})
}

func (r *BoardRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Board{}).Count(&count).Error
	return count, err
}
