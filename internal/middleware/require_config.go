package middleware

import (
	"net/http"
	"strings"

	"dream-analyzer/backend/internal/common"
	"dream-analyzer/backend/internal/constants"
	"dream-analyzer/backend/internal/logging"
	"dream-analyzer/backend/internal/models/dtos"
)

// RequireSettings answers 200 {success:false,error} while any of the named settings is unset.
// It runs before session verification so a misconfigured deploy is reported as such.
func RequireSettings(missing func() []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			if names := missing(); len(names) > 0 {
				logging.Error("Missing required configuration",
					"settings", strings.Join(names, ","),
					"endpoint", r.URL.Path,
				)
				common.WriteJSON(w, http.StatusOK, dtos.ClaimChannelRewardResponse{
					Success: false,
					Error:   constants.ErrMsgServerConfig,
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
