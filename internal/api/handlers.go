package api

import (
	"net/http"
	"time"
)

type Handlers struct {
	deps    *Dependencies
	upSince time.Time
}

// NewHandlers creates a new handlers instance with injected dependencies
func NewHandlers(deps *Dependencies, upSince time.Time) *Handlers {
	return &Handlers{
		deps:    deps,
		upSince: upSince,
	}
}

func (h *Handlers) HealthCheck() http.HandlerFunc {
	return HealthCheckHandler(h.deps.DB, h.deps.Services.Cache, h.upSince)
}

func (h *Handlers) ClaimChannelReward() http.HandlerFunc {
	return ClaimChannelRewardHandler(h.deps.Services.Rewards)
}

func (h *Handlers) GetUserProfile() http.HandlerFunc {
	return GetUserProfileHandler(h.deps.Services.User)
}

func (h *Handlers) GetDreamHistory() http.HandlerFunc {
	return GetDreamHistoryHandler(h.deps.Services.Dreams)
}

func (h *Handlers) CreateInvoice() http.HandlerFunc {
	return CreateInvoiceHandler(h.deps.Services.Payments)
}
