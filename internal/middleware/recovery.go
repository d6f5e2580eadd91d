package middleware

import (
	"net/http"
	"runtime/debug"

	"dream-analyzer/backend/internal/common"
	"dream-analyzer/backend/internal/constants"
	"dream-analyzer/backend/internal/logging"
	"dream-analyzer/backend/internal/models/dtos"
)

// Recoverer turns a handler panic into a logged 500
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			logging.Error("Panic while serving request",
				"request_id", GetRequestID(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"panic", rec,
				"stack", string(debug.Stack()),
			)
			common.WriteJSON(w, http.StatusInternalServerError, dtos.APIResponse{Success: false, Error: constants.ErrMsgInternal})
		}()

		next.ServeHTTP(w, r)
	})
}
