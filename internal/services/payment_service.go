package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dream-analyzer/backend/internal/constants"
	"dream-analyzer/backend/internal/logging"
	"dream-analyzer/backend/internal/metrics"
	"dream-analyzer/backend/internal/models/dtos"
)

var ErrUnknownPlan = errors.New("unknown plan")

// Telegram Stars
const invoiceCurrency = "XTR"

type Plan struct {
	Tier        constants.PlanTier
	Title       string
	Description string
	Stars       int
	Tokens      int
	Duration    time.Duration
}

// PlanCatalog lists the plans that can be bought from the mini-app
var PlanCatalog = map[constants.PlanTier]Plan{
	constants.PlanBasic: {
		Tier:        constants.PlanBasic,
		Title:       "Basic plan",
		Description: "30 dream interpretations for 30 days",
		Stars:       100,
		Tokens:      30,
		Duration:    30 * 24 * time.Hour,
	},
	constants.PlanPremium: {
		Tier:        constants.PlanPremium,
		Title:       "Premium plan",
		Description: "100 dream interpretations for 30 days",
		Stars:       250,
		Tokens:      100,
		Duration:    30 * 24 * time.Hour,
	},
}

type InvoiceCreator interface {
	CreateInvoiceLink(ctx context.Context, req dtos.CreateInvoiceLinkReq) (string, int, error)
}

type PaymentService struct {
	invoices InvoiceCreator
	metrics  *metrics.MetricsRegistry
}

func NewPaymentService(invoices InvoiceCreator, metricsReg *metrics.MetricsRegistry) *PaymentService {
	return &PaymentService{
		invoices: invoices,
		metrics:  metricsReg,
	}
}

// InvoicePayload is echoed back by Telegram on successful payment
func InvoicePayload(tier constants.PlanTier, telegramID int64) string {
	return fmt.Sprintf("plan:%s:%d", tier, telegramID)
}

// CreateInvoice asks Telegram for a Stars invoice link for plan
func (s *PaymentService) CreateInvoice(ctx context.Context, telegramID int64, plan string) (*dtos.InvoiceResponse, error) {
	p, ok := PlanCatalog[constants.PlanTier(plan)]
	if !ok {
		return nil, ErrUnknownPlan
	}

	link, _, err := s.invoices.CreateInvoiceLink(ctx, dtos.CreateInvoiceLinkReq{
		Title:       p.Title,
		Description: p.Description,
		Payload:     InvoicePayload(p.Tier, telegramID),
		Currency:    invoiceCurrency,
		Prices:      []dtos.LabeledPrice{{Label: p.Title, Amount: p.Stars}},
	})
	if err != nil {
		logging.Error("Failed to create invoice link", "telegram_id", telegramID, "plan", plan, "error", err)
		return nil, fmt.Errorf("creating invoice link: %w", err)
	}

	if s.metrics != nil {
		s.metrics.InvoicesCreatedTotal.WithLabelValues(plan).Inc()
	}

	return &dtos.InvoiceResponse{
		Plan:        plan,
		InvoiceLink: link,
		Stars:       p.Stars,
		Tokens:      p.Tokens,
	}, nil
}
