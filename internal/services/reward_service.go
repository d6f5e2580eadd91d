package services

import (
	"context"
	"errors"
	"fmt"

	"dream-analyzer/backend/internal/auth"
	"dream-analyzer/backend/internal/constants"
	"dream-analyzer/backend/internal/db/repositories"
	"dream-analyzer/backend/internal/logging"
	"dream-analyzer/backend/internal/metrics"
	gormModels "dream-analyzer/backend/internal/models/gorm"
)

type AccountFinder interface {
	GetUserByTelegramID(ctx context.Context, telegramID int64) (*gormModels.User, error)
}

type MembershipChecker interface {
	CheckMembership(ctx context.Context, userID int64, channelID string) (*MembershipClaim, error)
}

type RewardClaimer interface {
	ClaimReward(ctx context.Context, accountID string) (ClaimOutcome, error)
}

// ChannelRewardResult is the terminal state of one claim attempt
type ChannelRewardResult struct {
	Result       ClaimResult
	NewBalance   int
	MemberStatus constants.ChatMemberStatus
}

// RewardService runs the channel reward claim: account lookup, membership check, ledger transition
type RewardService struct {
	accounts   AccountFinder
	membership MembershipChecker
	ledger     RewardClaimer
	channelID  string
	metrics    *metrics.MetricsRegistry
}

func NewRewardService(
	accounts AccountFinder,
	membership MembershipChecker,
	ledger RewardClaimer,
	channelID string,
	metricsReg *metrics.MetricsRegistry,
) *RewardService {
	return &RewardService{
		accounts:   accounts,
		membership: membership,
		ledger:     ledger,
		channelID:  channelID,
		metrics:    metricsReg,
	}
}

// ClaimChannelReward expects a principal that was already verified.
// Membership failures are returned as *AuthorityError; other errors are storage failures.
func (s *RewardService) ClaimChannelReward(ctx context.Context, principal *auth.Principal) (*ChannelRewardResult, error) {
	log := logging.GetLogger().With("telegram_id", principal.ExternalID, "channel_id", s.channelID)

	account, err := s.accounts.GetUserByTelegramID(ctx, principal.ExternalID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return s.finish(&ChannelRewardResult{Result: ClaimUserNotFound}), nil
		}
		s.observe("error")
		return nil, fmt.Errorf("looking up account: %w", err)
	}

	if account.ChannelRewardClaimed {
		return s.finish(&ChannelRewardResult{Result: ClaimAlreadyClaimed}), nil
	}

	claim, err := s.membership.CheckMembership(ctx, principal.ExternalID, s.channelID)
	if err != nil {
		var authErr *AuthorityError
		if errors.As(err, &authErr) {
			s.observe(authErr.Kind.String())
		} else {
			s.observe("error")
		}
		return nil, err
	}

	if !claim.Entitled() {
		log.Infow("Channel reward denied", "status", claim.Status)
		return s.finish(&ChannelRewardResult{Result: ClaimNotSubscribed, MemberStatus: claim.Status}), nil
	}

	outcome, err := s.ledger.ClaimReward(ctx, account.ID)
	if err != nil {
		s.observe("error")
		return nil, err
	}

	if outcome.Result == ClaimGranted {
		log.Infow("Channel reward granted", "user_id", account.ID, "new_balance", outcome.NewBalance)
	}

	return s.finish(&ChannelRewardResult{
		Result:       outcome.Result,
		NewBalance:   outcome.NewBalance,
		MemberStatus: claim.Status,
	}), nil
}

func (s *RewardService) finish(res *ChannelRewardResult) *ChannelRewardResult {
	s.observe(res.Result.String())
	return res
}

func (s *RewardService) observe(outcome string) {
	if s.metrics == nil {
		return
	}
	s.metrics.RewardClaimsTotal.WithLabelValues(outcome).Inc()
}
