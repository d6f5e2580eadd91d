package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"dream-analyzer/backend/internal/constants"
	"dream-analyzer/backend/internal/metrics"
	"dream-analyzer/backend/internal/models/dtos"
)

// TelegramProvider talks to the Telegram Bot API
type TelegramProvider struct {
	BaseURL  string
	BotToken string
	Client   *http.Client
	Metrics  *metrics.MetricsRegistry
}

// NewTelegramProvider creates a Bot API client with a bounded request timeout
func NewTelegramProvider(baseURL, botToken string, metricsReg *metrics.MetricsRegistry) *TelegramProvider {
	if baseURL == "" {
		baseURL = "https://api.telegram.org"
	}

	return &TelegramProvider{
		BaseURL:  strings.TrimRight(baseURL, "/"),
		BotToken: botToken,
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
		Metrics: metricsReg,
	}
}

// ============================================================================
// Bot API Methods
// ============================================================================

// GetChatMember fetches the membership of a user in a chat or channel
func (p *TelegramProvider) GetChatMember(ctx context.Context, chatID string, userID int64) (*dtos.ChatMember, int, error) {
	if chatID == "" || userID == 0 {
		return nil, 0, &ProviderError{
			Code:    constants.ErrCodeInvalidDataFormat,
			Message: "chat id and user id are required",
		}
	}

	var member dtos.ChatMember
	status, err := p.doPost(ctx, "getChatMember", dtos.GetChatMemberReq{
		ChatID: chatID,
		UserID: userID,
	}, &member)
	if err != nil {
		return nil, status, err
	}

	return &member, status, nil
}

// CreateInvoiceLink creates a payment link that opens the invoice inside Telegram
func (p *TelegramProvider) CreateInvoiceLink(ctx context.Context, req dtos.CreateInvoiceLinkReq) (string, int, error) {
	if req.Payload == "" || len(req.Prices) == 0 {
		return "", 0, &ProviderError{
			Code:    constants.ErrCodeInvalidDataFormat,
			Message: "invoice payload and prices are required",
		}
	}

	var link string
	status, err := p.doPost(ctx, "createInvoiceLink", req, &link)
	if err != nil {
		return "", status, err
	}

	return link, status, nil
}

// ============================================================================
// HTTP Helper Methods
// ============================================================================

// doPost calls a Bot API method with a JSON body and decodes the result field
func (p *TelegramProvider) doPost(ctx context.Context, method string, payload interface{}, result interface{}) (status int, err error) {
	defer func() {
		p.observe(method, err)
	}()

	if p.BotToken == "" {
		return 0, &ProviderError{
			Code:    constants.ErrCodeInvalidBotToken,
			Message: "BOT_TOKEN is not set",
		}
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return 0, &ProviderError{
			Code:    constants.ErrCodeInvalidDataFormat,
			Message: "Failed to marshal request body",
			Err:     err,
		}
	}

	url := fmt.Sprintf("%s/bot%s/%s", p.BaseURL, p.BotToken, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payloadBytes))
	if err != nil {
		return 0, &ProviderError{
			Code:    constants.ErrCodeNetworkError,
			Message: "Failed to create request",
			Err:     err,
		}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.Client.Do(req)
	if err != nil {
		return 0, &ProviderError{
			Code:    constants.ErrCodeNetworkError,
			Message: constants.GetErrorMessage(constants.ErrCodeNetworkError),
			Err:     err,
		}
	}
	defer resp.Body.Close()

	bodyBytes, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return resp.StatusCode, &ProviderError{
			Code:       constants.ErrCodeNetworkError,
			Message:    "Failed to read response body",
			StatusCode: resp.StatusCode,
			Err:        readErr,
		}
	}

	var envelope dtos.TelegramResponse[json.RawMessage]
	if err := json.Unmarshal(bodyBytes, &envelope); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return resp.StatusCode, p.buildHTTPError(resp.StatusCode, 0, method, string(bodyBytes))
		}
		return resp.StatusCode, &ProviderError{
			Code:       constants.ErrCodeInvalidDataFormat,
			Message:    "Failed to decode response",
			Details:    string(bodyBytes),
			StatusCode: resp.StatusCode,
			Err:        err,
		}
	}

	if !envelope.Ok || resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.StatusCode, p.buildHTTPError(resp.StatusCode, envelope.ErrorCode, method, envelope.Description)
	}

	if err := json.Unmarshal(envelope.Result, result); err != nil {
		return resp.StatusCode, &ProviderError{
			Code:       constants.ErrCodeInvalidDataFormat,
			Message:    "Failed to decode result",
			Details:    string(envelope.Result),
			StatusCode: resp.StatusCode,
			Err:        err,
		}
	}

	return resp.StatusCode, nil
}

// buildHTTPError creates appropriate error based on the Bot API error_code (falling back to the HTTP status)
func (p *TelegramProvider) buildHTTPError(statusCode int, errorCode int, method string, description string) error {
	code := errorCode
	if code == 0 {
		code = statusCode
	}

	perr := &ProviderError{
		Details:    description,
		StatusCode: statusCode,
	}

	switch {
	case code == http.StatusUnauthorized:
		perr.Code = constants.ErrCodeInvalidBotToken
		perr.Message = fmt.Sprintf("Bot token rejected calling %s", method)
	case code == http.StatusForbidden:
		perr.Code = constants.ErrCodeForbidden
		perr.Message = fmt.Sprintf("Forbidden calling %s: %s", method, description)
	case code == http.StatusBadRequest && isUserNotFound(description):
		perr.Code = constants.ErrCodeUserNotFound
		perr.Message = fmt.Sprintf("User not found calling %s: %s", method, description)
	case code == http.StatusBadRequest && strings.Contains(strings.ToLower(description), "chat not found"):
		perr.Code = constants.ErrCodeChatNotFound
		perr.Message = fmt.Sprintf("Chat not found calling %s: %s", method, description)
	case code == http.StatusBadRequest:
		perr.Code = constants.ErrCodeBadRequest
		perr.Message = fmt.Sprintf("Bad request to %s: %s", method, description)
	case code == http.StatusTooManyRequests:
		perr.Code = constants.ErrCodeRateLimited
		perr.Message = constants.GetErrorMessage(constants.ErrCodeRateLimited)
	default:
		perr.Code = constants.ErrCodeUpstreamError
		perr.Message = fmt.Sprintf("HTTP %d from %s: %s", code, method, description)
	}

	return perr
}

func isUserNotFound(description string) bool {
	d := strings.ToLower(description)
	return strings.Contains(d, "user not found") ||
		strings.Contains(d, "participant_id_invalid") ||
		strings.Contains(d, "member not found")
}

func (p *TelegramProvider) observe(method string, err error) {
	if p.Metrics == nil {
		return
	}
	result := "ok"
	if perr, ok := err.(*ProviderError); ok {
		result = perr.Code
	} else if err != nil {
		result = "error"
	}
	p.Metrics.TelegramRequestsTotal.WithLabelValues(method, result).Inc()
}
