package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sashafierce98/TGPTaskflow/internal/model"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

// GetByCardID returns a card's thread, oldest first.
func (r *CommentRepository) GetByCardID(ctx context.Context, cardID uuid.UUID) ([]model.Comment, error) {
	var comments []model.Comment
	err := r.db.WithContext(ctx).Where("card_id = ?", cardID).Order("created_at").Find(&comments).Error
	return comments, err
}

// CountByCards returns the thread length of each card that has at least one
// comment.
func (r *CommentRepository) CountByCards(ctx context.Context, cardIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	counts := make(map[uuid.UUID]int, len(cardIDs))
	if len(cardIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		CardID uuid.UUID
		Total  int
	}
	err := r.db.WithContext(ctx).Model(&model.Comment{}).
		Select("card_id, COUNT(*) as total").
		Where("card_id IN ?", cardIDs).
		Group("card_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.CardID] = row.Total
	}
	return counts, nil
}
