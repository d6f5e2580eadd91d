package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"dream-analyzer/backend/internal/auth"
	"dream-analyzer/backend/internal/constants"
	"dream-analyzer/backend/internal/models/dtos"
	"dream-analyzer/backend/internal/services"
)

type ChannelRewardClaimer interface {
	ClaimChannelReward(ctx context.Context, principal *auth.Principal) (*services.ChannelRewardResult, error)
}

// ClaimChannelRewardHandler handles POST /api/v1/rewards/claim-channel-token
//
// @Summary      Claim the channel subscription bonus
// @Description  Grants one token, once, to a user who is subscribed to the configured channel
// @Tags         Rewards
// @Produce      json
// @Param        X-Telegram-Init-Data  header  string  true  "Telegram Mini App init data"
// @Success      200  {object}  dtos.ClaimChannelRewardResponse
// @Failure      400  {object}  dtos.ClaimChannelRewardResponse
// @Failure      401  {object}  dtos.ErrorResponse
// @Failure      403  {object}  dtos.ErrorResponse
// @Failure      404  {object}  dtos.ClaimChannelRewardResponse
// @Failure      500  {object}  dtos.ClaimChannelRewardResponse
// @Router       /api/v1/rewards/claim-channel-token [post]
func ClaimChannelRewardHandler(claimer ChannelRewardClaimer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal := requirePrincipal(w, r)
		if principal == nil {
			return
		}
		log := requestLogger(r, principal)

		res, err := claimer.ClaimChannelReward(r.Context(), principal)
		if err != nil {
			var authErr *services.AuthorityError
			if errors.As(err, &authErr) {
				if authErr.Kind == services.AuthorityQueryDenied {
					log.Warnw("Membership query denied", "reason", authErr.Reason, "error", err)
					respondClaimError(w, http.StatusBadRequest, authErr.Reason)
					return
				}
				log.Errorw("Membership check unavailable", "error", err)
				respondClaimError(w, http.StatusInternalServerError, constants.ErrMsgCheckUnavailable)
				return
			}

			log.Errorw("Channel reward claim failed", "error", err)
			respondClaimError(w, http.StatusInternalServerError, constants.ErrMsgInternal)
			return
		}

		switch res.Result {
		case services.ClaimGranted:
			newTokens := res.NewBalance
			respondClaim(w, http.StatusOK, dtos.ClaimChannelRewardResponse{
				Success:   true,
				Message:   constants.MsgRewardGranted,
				NewTokens: &newTokens,
			})

		case services.ClaimAlreadyClaimed:
			respondClaim(w, http.StatusOK, dtos.ClaimChannelRewardResponse{
				Success:        false,
				AlreadyClaimed: true,
				Message:        constants.MsgRewardAlreadyClaimed,
			})

		case services.ClaimNotSubscribed:
			subscribed := false
			respondClaim(w, http.StatusOK, dtos.ClaimChannelRewardResponse{
				Success:    false,
				Subscribed: &subscribed,
				Status:     string(res.MemberStatus),
				Message:    fmt.Sprintf(constants.MsgNotSubscribedFormat, res.MemberStatus),
			})

		case services.ClaimUserNotFound:
			respondClaimError(w, http.StatusNotFound, constants.ErrMsgUserNotFound)

		default:
			log.Errorw("Unexpected claim result", "result", res.Result.String())
			respondClaimError(w, http.StatusInternalServerError, constants.ErrMsgInternal)
		}
	}
}
