package middleware

import (
	"errors"
	"net/http"
	"time"

	"dream-analyzer/backend/internal/auth"
	"dream-analyzer/backend/internal/common"
	"dream-analyzer/backend/internal/constants"
	"dream-analyzer/backend/internal/logging"
	"dream-analyzer/backend/internal/models/dtos"
)

// InitDataAuth verifies the Telegram init data header and stores the principal in the request context.
// A missing header is 401; any verification failure is 403.
func InitDataAuth(botToken string, maxAge time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			if botToken == "" {
				logging.Error("BOT_TOKEN is not configured", "endpoint", r.URL.Path)
				common.WriteJSON(w, http.StatusOK, dtos.APIResponse{Success: false, Error: constants.ErrMsgServerConfig})
				return
			}

			raw := r.Header.Get(constants.InitDataHeader)
			if raw == "" {
				common.WriteJSON(w, http.StatusUnauthorized, dtos.ErrorResponse{Error: constants.ErrMsgMissingInitData})
				return
			}

			principal, err := auth.VerifyInitData(raw, botToken, auth.VerifyOptions{MaxAge: maxAge})
			if err != nil {
				status, msg := http.StatusForbidden, constants.ErrMsgInvalidInitData
				switch {
				case errors.Is(err, auth.ErrMissingToken):
					status, msg = http.StatusUnauthorized, constants.ErrMsgMissingInitData
				case errors.Is(err, auth.ErrSessionExpired):
					msg = constants.ErrMsgExpiredInitData
				}

				logging.Warn("Rejected init data",
					"request_id", GetRequestID(r.Context()),
					"endpoint", r.URL.Path,
					"error", err,
				)
				common.WriteJSON(w, status, dtos.ErrorResponse{Error: msg})
				return
			}

			ctx := auth.SetPrincipal(r.Context(), principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
