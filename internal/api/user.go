package api

import (
	"context"
	"net/http"
	"time"

	"dream-analyzer/backend/internal/auth"
	"dream-analyzer/backend/internal/common"
	"dream-analyzer/backend/internal/constants"
	"dream-analyzer/backend/internal/models/dtos"
)

type ProfileGetter interface {
	GetProfile(ctx context.Context, principal *auth.Principal) (*dtos.UserProfileResponse, error)
}

// GetUserProfileHandler handles GET /api/v1/user/profile
//
// @Summary      Get the caller's profile
// @Description  Returns token balance, plan and reward state. The account is created on first call.
// @Tags         Users
// @Produce      json
// @Param        X-Telegram-Init-Data  header  string  true  "Telegram Mini App init data"
// @Success      200  {object}  dtos.APIResponse
// @Failure      401  {object}  dtos.ErrorResponse
// @Failure      403  {object}  dtos.ErrorResponse
// @Failure      500  {object}  dtos.APIResponse
// @Router       /api/v1/user/profile [get]
func GetUserProfileHandler(profiles ProfileGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		principal := requirePrincipal(w, r)
		if principal == nil {
			return
		}

		profile, err := profiles.GetProfile(r.Context(), principal)
		if err != nil {
			requestLogger(r, principal).Errorw("Failed to load profile", "error", err)
			common.RespondError(w, initTime, constants.ErrMsgInternal, http.StatusInternalServerError)
			return
		}

		common.RespondSuccess(w, initTime, "Profile fetched successfully", profile)
	}
}
