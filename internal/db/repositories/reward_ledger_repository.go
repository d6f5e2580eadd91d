package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"dream-analyzer/backend/internal/constants"
	"dream-analyzer/backend/internal/models/entities"

	"github.com/jmoiron/sqlx"
)

// RewardLedgerRepository holds the raw SQL of the channel reward transition
type RewardLedgerRepository struct {
	db *sqlx.DB
}

func NewRewardLedgerRepository(db *sqlx.DB) *RewardLedgerRepository {
	return &RewardLedgerRepository{db}
}

func (r *RewardLedgerRepository) GetRewardState(ctx context.Context, userID string) (*entities.RewardState, error) {
	var state entities.RewardState

	err := r.db.QueryRowxContext(ctx, constants.GetRewardStateByUserId, userID).StructScan(&state)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to read reward state: %w", err)
	}

	return &state, nil
}

// ApplyChannelReward adds amount to the balance and sets the claimed flag in one conditional UPDATE.
// applied is false when the flag was already set, in which case nothing changed.
func (r *RewardLedgerRepository) ApplyChannelReward(ctx context.Context, userID string, amount int) (newBalance int, applied bool, err error) {
	err = r.db.QueryRowxContext(ctx, constants.ApplyChannelReward, amount, userID).Scan(&newBalance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to apply channel reward: %w", err)
	}

	return newBalance, true, nil
}
