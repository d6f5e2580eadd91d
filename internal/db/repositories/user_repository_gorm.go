package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dream-analyzer/backend/internal/constants"
	gormModels "dream-analyzer/backend/internal/models/gorm"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepositoryGORM struct {
	db *gorm.DB
}

// NewUserRepositoryGORM creates a new GORM-based user repository
func NewUserRepositoryGORM(db *gorm.DB) *UserRepositoryGORM {
	return &UserRepositoryGORM{db: db}
}

// GetUserByTelegramID retrieves a user by Telegram ID without relationships
func (r *UserRepositoryGORM) GetUserByTelegramID(ctx context.Context, telegramID int64) (*gormModels.User, error) {
	var user gormModels.User

	err := r.db.WithContext(ctx).
		Where("telegram_id = ?", telegramID).
		First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	return &user, nil
}

// GetOrCreateUser returns the account for telegramID, inserting it with seedTokens on first contact.
// Concurrent first requests race on the telegram_id unique index; the loser re-reads the winner's row.
func (r *UserRepositoryGORM) GetOrCreateUser(ctx context.Context, telegramID int64, username, firstName string, seedTokens int) (*gormModels.User, bool, error) {
	user := gormModels.User{
		TelegramID: telegramID,
		Balance:    seedTokens,
		PlanTier:   constants.PlanFree,
	}
	if username != "" {
		user.Username = &username
	}
	if firstName != "" {
		user.FirstName = &firstName
	}

	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "telegram_id"}},
			DoNothing: true,
		}).
		Create(&user)
	if res.Error != nil {
		return nil, false, fmt.Errorf("failed to create user: %w", res.Error)
	}

	if res.RowsAffected == 1 {
		return &user, true, nil
	}

	existing, err := r.GetUserByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

// ExpirePlans downgrades every paid or trial plan whose subscription ended before now
func (r *UserRepositoryGORM) ExpirePlans(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&gormModels.User{}).
		Where("plan_tier <> ? AND subscription_expires_at IS NOT NULL AND subscription_expires_at < ?", constants.PlanFree, now).
		Updates(map[string]interface{}{
			"plan_tier":               constants.PlanFree,
			"subscription_expires_at": nil,
		})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to expire plans: %w", res.Error)
	}
	return res.RowsAffected, nil
}
