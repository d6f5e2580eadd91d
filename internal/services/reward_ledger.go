package services

import (
	"context"
	"errors"
	"fmt"

	"dream-analyzer/backend/internal/constants"
	"dream-analyzer/backend/internal/db/repositories"
	"dream-analyzer/backend/internal/models/entities"
)

type ClaimResult int

const (
	ClaimGranted ClaimResult = iota + 1
	ClaimAlreadyClaimed
	ClaimUserNotFound
	ClaimNotSubscribed
)

func (r ClaimResult) String() string {
	switch r {
	case ClaimGranted:
		return "granted"
	case ClaimAlreadyClaimed:
		return "already_claimed"
	case ClaimUserNotFound:
		return "user_not_found"
	case ClaimNotSubscribed:
		return "not_subscribed"
	default:
		return "unknown"
	}
}

// ClaimOutcome is what the ledger did. NewBalance is set only for ClaimGranted.
type ClaimOutcome struct {
	Result     ClaimResult
	NewBalance int
}

// LedgerStore is implemented by repositories.RewardLedgerRepository
type LedgerStore interface {
	GetRewardState(ctx context.Context, userID string) (*entities.RewardState, error)
	ApplyChannelReward(ctx context.Context, userID string, amount int) (newBalance int, applied bool, err error)
}

// RewardLedger grants the channel reward at most once per account.
// The claimed flag sits in the WHERE clause of the update, so among concurrent
// callers exactly one sees its row change; the rest get ClaimAlreadyClaimed.
type RewardLedger struct {
	store  LedgerStore
	amount int
}

func NewRewardLedger(store LedgerStore) *RewardLedger {
	return &RewardLedger{
		store:  store,
		amount: constants.ChannelRewardTokens,
	}
}

func (l *RewardLedger) ClaimReward(ctx context.Context, accountID string) (ClaimOutcome, error) {
	state, err := l.store.GetRewardState(ctx, accountID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return ClaimOutcome{Result: ClaimUserNotFound}, nil
		}
		return ClaimOutcome{}, fmt.Errorf("reading reward state: %w", err)
	}

	if state.ChannelRewardClaimed {
		return ClaimOutcome{Result: ClaimAlreadyClaimed}, nil
	}

	newBalance, applied, err := l.store.ApplyChannelReward(ctx, accountID, l.amount)
	if err != nil {
		return ClaimOutcome{}, fmt.Errorf("applying reward: %w", err)
	}
	if !applied {
		return ClaimOutcome{Result: ClaimAlreadyClaimed}, nil
	}

	return ClaimOutcome{Result: ClaimGranted, NewBalance: newBalance}, nil
}
