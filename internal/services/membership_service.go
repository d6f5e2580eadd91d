package services

import (
	"context"
	"errors"
	"fmt"

	"dream-analyzer/backend/internal/constants"
	"dream-analyzer/backend/internal/logging"
	"dream-analyzer/backend/internal/metrics"
	"dream-analyzer/backend/internal/models/dtos"
	"dream-analyzer/backend/internal/providers"
)

// ChatMemberProvider is the part of the Telegram provider the membership check needs
type ChatMemberProvider interface {
	GetChatMember(ctx context.Context, chatID string, userID int64) (*dtos.ChatMember, int, error)
}

type AuthorityErrorKind int

const (
	// AuthorityQueryDenied: the query itself was refused (unknown chat, unknown user, bot lacks rights)
	AuthorityQueryDenied AuthorityErrorKind = iota + 1
	// AuthorityUnavailable: Telegram could not answer (network, timeout, 429, 5xx, malformed reply)
	AuthorityUnavailable
)

func (k AuthorityErrorKind) String() string {
	switch k {
	case AuthorityQueryDenied:
		return "query_denied"
	case AuthorityUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// AuthorityError is the single classification of a failed membership check
type AuthorityError struct {
	Kind   AuthorityErrorKind
	Reason string
	Err    error
}

func (e *AuthorityError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("membership check %s: %s: %v", e.Kind, e.Reason, e.Err)
	}
	return fmt.Sprintf("membership check %s: %s", e.Kind, e.Reason)
}

func (e *AuthorityError) Unwrap() error {
	return e.Err
}

// MembershipClaim is the answer of one membership check. It is never persisted.
type MembershipClaim struct {
	UserID    int64
	ChannelID string
	Status    constants.ChatMemberStatus
}

// Entitled reports whether the status earns the channel reward
func (c *MembershipClaim) Entitled() bool {
	switch c.Status {
	case constants.MemberStatusMember, constants.MemberStatusAdministrator, constants.MemberStatusCreator:
		return true
	default:
		return false
	}
}

type MembershipService struct {
	provider ChatMemberProvider
	metrics  *metrics.MetricsRegistry
}

func NewMembershipService(provider ChatMemberProvider, metricsReg *metrics.MetricsRegistry) *MembershipService {
	return &MembershipService{
		provider: provider,
		metrics:  metricsReg,
	}
}

// CheckMembership asks Telegram for the user's status in channelID. Failures are returned as *AuthorityError.
func (s *MembershipService) CheckMembership(ctx context.Context, userID int64, channelID string) (*MembershipClaim, error) {
	member, _, err := s.provider.GetChatMember(ctx, channelID, userID)
	if err != nil {
		authErr := classifyAuthorityError(err)
		s.observe(authErr.Kind.String())
		logging.Warn("Membership check failed",
			"telegram_id", userID,
			"channel_id", channelID,
			"kind", authErr.Kind.String(),
			"error", err,
		)
		return nil, authErr
	}

	claim := &MembershipClaim{
		UserID:    userID,
		ChannelID: channelID,
		Status:    normalizeMemberStatus(member.Status),
	}
	s.observe(string(claim.Status))

	return claim, nil
}

func (s *MembershipService) observe(result string) {
	if s.metrics == nil {
		return
	}
	s.metrics.MembershipChecksTotal.WithLabelValues(result).Inc()
}

func normalizeMemberStatus(raw string) constants.ChatMemberStatus {
	switch status := constants.ChatMemberStatus(raw); status {
	case constants.MemberStatusCreator,
		constants.MemberStatusAdministrator,
		constants.MemberStatusMember,
		constants.MemberStatusRestricted,
		constants.MemberStatusLeft,
		constants.MemberStatusKicked:
		return status
	default:
		return constants.MemberStatusUnknown
	}
}

// classifyAuthorityError maps a provider failure to QueryDenied or Unavailable.
// Anything that is not a recognised client-side refusal counts as Unavailable.
func classifyAuthorityError(err error) *AuthorityError {
	var provErr *providers.ProviderError
	if !errors.As(err, &provErr) {
		return &AuthorityError{Kind: AuthorityUnavailable, Reason: constants.ErrMsgCheckUnavailable, Err: err}
	}

	switch provErr.Code {
	case constants.ErrCodeUserNotFound:
		return &AuthorityError{Kind: AuthorityQueryDenied, Reason: constants.ErrMsgUserNotInChannel, Err: err}
	case constants.ErrCodeChatNotFound:
		return &AuthorityError{Kind: AuthorityQueryDenied, Reason: constants.ErrMsgChannelNotFound, Err: err}
	case constants.ErrCodeForbidden, constants.ErrCodeInvalidBotToken:
		return &AuthorityError{Kind: AuthorityQueryDenied, Reason: constants.ErrMsgBotNoPermission, Err: err}
	case constants.ErrCodeBadRequest:
		return &AuthorityError{Kind: AuthorityQueryDenied, Reason: constants.GetErrorMessage(provErr.Code), Err: err}
	default:
		return &AuthorityError{Kind: AuthorityUnavailable, Reason: constants.ErrMsgCheckUnavailable, Err: err}
	}
}
