package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sashafierce98/TGPTaskflow/internal/model"
)

type CardRepository struct {
	db *gorm.DB
}

func NewCardRepository(db *gorm.DB) *CardRepository {
	return &CardRepository{db: db}
}

// Create adds a card at the bottom of its column
func (r *CardRepository) Create(ctx context.Context, card *model.Card) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		position, err := nextCardPosition(tx, card.ColumnID)
		if err != nil {
			return err
		}
		card.Position = position
		return tx.Create(card).Error
	})
}

// GetByID retrieves a card by its ID
func (r *CardRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Card, error) {
	var card model.Card
	result := r.db.WithContext(ctx).First(&card, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, result.Error
	}
	return &card, nil
}

// GetByBoardID retrieves every card of a board, column by column
func (r *CardRepository) GetByBoardID(ctx context.Context, boardID uuid.UUID) ([]model.Card, error) {
	var cards []model.Card
	result := r.db.WithContext(ctx).Where("board_id = ?", boardID).Order("position").Order("created_at").Find(&cards)
	if result.Error != nil {
		return nil, result.Error
	}
	return cards, nil
}

// CountByColumn returns how many cards currently sit in a column
func (r *CardRepository) CountByColumn(ctx context.Context, columnID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Card{}).Where("column_id = ?", columnID).Count(&count).Error
	return count, err
}

// Update saves the editable fields of a card. When moved is set the card is
// re-homed at the bottom of its new column; intra-column order is not kept
// across moves.
func (r *CardRepository) Update(ctx context.Context, card *model.Card, moved bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if moved {
			position, err := nextCardPosition(tx, card.ColumnID)
			if err != nil {
				return err
			}
			card.Position = position
		}

		result := tx.Model(card).
			Select("ColumnID", "Title", "Description", "Priority", "DueDate", "AssignedTo", "Position", "UpdatedAt").
			Updates(card)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrCardNotFound
		}
		return nil
	})
}

// Delete removes a card and its comments
func (r *CardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("card_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&model.Card{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrCardNotFound
		}
		return nil
	})
}

// ListAssignedWithDueDate returns the cards assigned to a user that carry a
// due date.
func (r *CardRepository) ListAssignedWithDueDate(ctx context.Context, userID uuid.UUID) ([]model.Card, error) {
	var cards []model.Card
	err := r.db.WithContext(ctx).
		Where("assigned_to = ? AND due_date IS NOT NULL", userID).
		Order("due_date").
		Find(&cards).Error
	return cards, err
}

func (r *CardRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Card{}).Count(&count).Error
	return count, err
}

func nextCardPosition(tx *gorm.DB, columnID uuid.UUID) (int, error) {
	var maxPosition struct {
		Max int
	}
	err := tx.Model(&model.Card{}).
		Select("COALESCE(MAX(position), -1) as max").
		Where("column_id = ?", columnID).
		Scan(&maxPosition).Error
	return maxPosition.Max + 1, err
}
