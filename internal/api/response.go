package api

import (
	"net/http"

	"dream-analyzer/backend/internal/auth"
	"dream-analyzer/backend/internal/common"
	"dream-analyzer/backend/internal/constants"
	"dream-analyzer/backend/internal/logging"
	"dream-analyzer/backend/internal/middleware"
	"dream-analyzer/backend/internal/models/dtos"

	"go.uber.org/zap"
)

func respondClaim(w http.ResponseWriter, statusCode int, resp dtos.ClaimChannelRewardResponse) {
	common.WriteJSON(w, statusCode, resp)
}

func respondClaimError(w http.ResponseWriter, statusCode int, message string) {
	respondClaim(w, statusCode, dtos.ClaimChannelRewardResponse{Success: false, Error: message})
}

// requirePrincipal returns the verified principal, answering 401 when the route was mounted without InitDataAuth
func requirePrincipal(w http.ResponseWriter, r *http.Request) *auth.Principal {
	principal := auth.GetPrincipal(r.Context())
	if principal == nil {
		common.WriteJSON(w, http.StatusUnauthorized, dtos.ErrorResponse{Error: constants.ErrMsgMissingInitData})
	}
	return principal
}

func requestLogger(r *http.Request, principal *auth.Principal) *zap.SugaredLogger {
	return logging.WithRequest(middleware.GetRequestID(r.Context()), principal.ExternalID, r.URL.Path)
}
