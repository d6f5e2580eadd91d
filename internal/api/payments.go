package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"dream-analyzer/backend/internal/common"
	"dream-analyzer/backend/internal/constants"
	"dream-analyzer/backend/internal/models/dtos"
	"dream-analyzer/backend/internal/services"
)

type InvoiceService interface {
	CreateInvoice(ctx context.Context, telegramID int64, plan string) (*dtos.InvoiceResponse, error)
}

// CreateInvoiceHandler handles POST /api/v1/payments/invoice
//
// @Summary      Create a Telegram Stars invoice link
// @Tags         Payments
// @Accept       json
// @Produce      json
// @Param        X-Telegram-Init-Data  header  string                 true  "Telegram Mini App init data"
// @Param        input                 body    dtos.CreateInvoiceReq  true  "Plan"
// @Success      200  {object}  dtos.APIResponse
// @Failure      400  {object}  dtos.APIResponse
// @Failure      502  {object}  dtos.APIResponse
// @Router       /api/v1/payments/invoice [post]
func CreateInvoiceHandler(invoices InvoiceService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		principal := requirePrincipal(w, r)
		if principal == nil {
			return
		}

		var req dtos.CreateInvoiceReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, constants.ErrMsgUnknownPlan, http.StatusBadRequest)
			return
		}

		resp, err := invoices.CreateInvoice(r.Context(), principal.ExternalID, req.Plan)
		if err != nil {
			if errors.Is(err, services.ErrUnknownPlan) {
				common.RespondError(w, initTime, constants.ErrMsgUnknownPlan, http.StatusBadRequest)
				return
			}
			requestLogger(r, principal).Errorw("Failed to create invoice", "plan", req.Plan, "error", err)
			common.RespondError(w, initTime, constants.ErrMsgInvoiceFailed, http.StatusBadGateway)
			return
		}

		common.RespondSuccess(w, initTime, "Invoice created", resp)
	}
}
