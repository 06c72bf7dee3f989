package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sashafierce98/TGPTaskflow/internal/model"
)

type ColumnRepository struct {
	db *gorm.DB
}

func NewColumnRepository(db *gorm.DB) *ColumnRepository {
	return &ColumnRepository{db: db}
}

// Create appends a column after the board's last one.
func (r *ColumnRepository) Create(ctx context.Context, column *model.Column) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxPosition struct {
			Max int
		}
		if err := tx.Model(&model.Column{}).
			Select("COALESCE(MAX(position), -1) as max").
			Where("board_id = ?", column.BoardID).
			Scan(&maxPosition).Error; err != nil {
			return err
		}
		column.Position = maxPosition.Max + 1
		return tx.Create(column).Error
	})
	return translateColumnErr(err)
}

func (r *ColumnRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Column, error) {
	var column model.Column
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&column).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrColumnNotFound
		}
		return nil, err
	}
	return &column, nil
}

func (r *ColumnRepository) GetByBoardID(ctx context.Context, boardID uuid.UUID) ([]model.Column, error) {
	var columns []model.Column
	err := r.db.WithContext(ctx).Where("board_id = ?", boardID).Order("position").Find(&columns).Error
	return columns, err
}

// Update rewrites the editable fields. Kind and position are never touched.
func (r *ColumnRepository) Update(ctx context.Context, column *model.Column) error {
	result := r.db.WithContext(ctx).Model(column).Select("Name", "WIPLimit", "Color").Updates(column)
	if result.Error != nil {
		return translateColumnErr(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrColumnNotFound
	}
	return nil
}

// Delete removes a column with its cards and their comments.
func (r *ColumnRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cardIDs := tx.Model(&model.Card{}).Select("id").Where("column_id = ?", id)
		if err := tx.Where("card_id IN (?)", cardIDs).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("column_id = ?", id).Delete(&model.Card{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&model.Column{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrColumnNotFound
		}
		return nil
	})
}

func translateColumnErr(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrColumnNameTaken
	}
	return err
}
