package repositories

import (
	"context"
	"fmt"

	gormModels "dream-analyzer/backend/internal/models/gorm"

	"gorm.io/gorm"
)

type DreamRepository struct {
	db *gorm.DB
}

func NewDreamRepository(db *gorm.DB) *DreamRepository {
	return &DreamRepository{db: db}
}

// ListByUser returns one page of a user's dreams, newest first, and the total count
func (r *DreamRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]gormModels.Dream, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&gormModels.Dream{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count dreams: %w", err)
	}

	var dreams []gormModels.Dream
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&dreams).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch dreams: %w", err)
	}

	return dreams, total, nil
}
