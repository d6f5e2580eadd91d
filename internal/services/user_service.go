package services

import (
	"context"
	"fmt"
	"time"

	"dream-analyzer/backend/internal/auth"
	"dream-analyzer/backend/internal/db/repositories"
	"dream-analyzer/backend/internal/logging"
	"dream-analyzer/backend/internal/metrics"
	"dream-analyzer/backend/internal/models/dtos"
)

type UserService struct {
	userRepoGorm *repositories.UserRepositoryGORM
	seedTokens   int
	channelURL   string
	metrics      *metrics.MetricsRegistry
}

func NewUserService(repoGorm *repositories.UserRepositoryGORM, seedTokens int, channelURL string, metricsReg *metrics.MetricsRegistry) *UserService {
	return &UserService{
		userRepoGorm: repoGorm,
		seedTokens:   seedTokens,
		channelURL:   channelURL,
		metrics:      metricsReg,
	}
}

// GetProfile returns the caller's account, creating it with the seed balance on first contact
func (s *UserService) GetProfile(ctx context.Context, principal *auth.Principal) (*dtos.UserProfileResponse, error) {
	user, created, err := s.userRepoGorm.GetOrCreateUser(
		ctx,
		principal.ExternalID,
		principal.User.Username,
		principal.User.FirstName,
		s.seedTokens,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get user profile: %w", err)
	}

	if created {
		logging.Info("User account created",
			"telegram_id", principal.ExternalID,
			"name", principal.User.DisplayName(),
			"user_id", user.ID,
			"seed_tokens", s.seedTokens,
		)
	}

	return &dtos.UserProfileResponse{
		ID:                    user.ID,
		TelegramID:            user.TelegramID,
		Username:              user.Username,
		FirstName:             user.FirstName,
		Tokens:                user.Balance,
		PlanTier:              user.PlanTier.String(),
		SubscriptionExpiresAt: user.SubscriptionExpiresAt,
		ChannelRewardClaimed:  user.ChannelRewardClaimed,
		ChannelURL:            s.channelURL,
		CreatedAt:             user.CreatedAt,
	}, nil
}

// ExpireLapsedPlans moves every account whose paid or trial plan ended before now back to free
func (s *UserService) ExpireLapsedPlans(ctx context.Context, now time.Time) (int64, error) {
	n, err := s.userRepoGorm.ExpirePlans(ctx, now)
	if err != nil {
		return 0, err
	}
	if s.metrics != nil && n > 0 {
		s.metrics.PlansExpiredTotal.Add(float64(n))
	}
	return n, nil
}
