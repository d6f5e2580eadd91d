package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"dream-analyzer/backend/internal/common"
	"dream-analyzer/backend/internal/constants"
	"dream-analyzer/backend/internal/db/repositories"
	"dream-analyzer/backend/internal/models/dtos"
	"dream-analyzer/backend/internal/services"
)

type HistoryGetter interface {
	GetHistory(ctx context.Context, telegramID int64, page, pageSize int) (*dtos.DreamHistoryResponse, error)
}

// GetDreamHistoryHandler handles GET /api/v1/dreams
//
// @Summary      List the caller's dreams
// @Description  Newest first, paginated
// @Tags         Dreams
// @Produce      json
// @Param        X-Telegram-Init-Data  header  string  true   "Telegram Mini App init data"
// @Param        page                  query   int     false  "Page number (1-based)"
// @Param        pageSize              query   int     false  "Page size (1-50)"
// @Success      200  {object}  dtos.APIResponse
// @Failure      400  {object}  dtos.APIResponse
// @Failure      404  {object}  dtos.APIResponse
// @Router       /api/v1/dreams [get]
func GetDreamHistoryHandler(history HistoryGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		principal := requirePrincipal(w, r)
		if principal == nil {
			return
		}

		page, err := common.ParseIntParam(r, "page", 1)
		if err != nil {
			common.RespondError(w, initTime, constants.ErrMsgInvalidPagination, http.StatusBadRequest)
			return
		}
		pageSize, err := common.ParseIntParam(r, "pageSize", constants.DefaultHistoryPageSize)
		if err != nil {
			common.RespondError(w, initTime, constants.ErrMsgInvalidPagination, http.StatusBadRequest)
			return
		}

		resp, err := history.GetHistory(r.Context(), principal.ExternalID, page, pageSize)
		switch {
		case err == nil:
			common.RespondSuccess(w, initTime, "Dreams fetched successfully", resp)
		case errors.Is(err, services.ErrInvalidPagination):
			common.RespondError(w, initTime, constants.ErrMsgInvalidPagination, http.StatusBadRequest)
		case errors.Is(err, repositories.ErrUserNotFound):
			common.RespondError(w, initTime, constants.ErrMsgUserNotFound, http.StatusNotFound)
		default:
			requestLogger(r, principal).Errorw("Failed to load dream history", "error", err)
			common.RespondError(w, initTime, constants.ErrMsgInternal, http.StatusInternalServerError)
		}
	}
}
