package dtos

import "time"

// APIResponse is the envelope of every mini-app endpoint except the reward claim
type APIResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message,omitempty"`
	Error        string `json:"error,omitempty"`
	ResponseTime string `json:"responseTime"`
	Data         any    `json:"data,omitempty"`
}

// ErrorResponse is returned when the session itself is rejected
type ErrorResponse struct {
	Error string `json:"error"`
}

// ClaimChannelRewardResponse is the reply of POST /api/v1/rewards/claim-channel-token
type ClaimChannelRewardResponse struct {
	Success        bool   `json:"success"`
	Message        string `json:"message,omitempty"`
	Error          string `json:"error,omitempty"`
	AlreadyClaimed bool   `json:"alreadyClaimed,omitempty"`
	Subscribed     *bool  `json:"subscribed,omitempty"`
	Status         string `json:"status,omitempty"`
	NewTokens      *int   `json:"newTokens,omitempty"`
}

type UserProfileResponse struct {
	ID                    string     `json:"id"`
	TelegramID            int64      `json:"telegramId"`
	Username              *string    `json:"username,omitempty"`
	FirstName             *string    `json:"firstName,omitempty"`
	Tokens                int        `json:"tokens"`
	PlanTier              string     `json:"planTier"`
	SubscriptionExpiresAt *time.Time `json:"subscriptionExpiresAt,omitempty"`
	ChannelRewardClaimed  bool       `json:"channelRewardClaimed"`
	ChannelURL            string     `json:"channelUrl,omitempty"`
	CreatedAt             time.Time  `json:"createdAt"`
}

type DreamEntry struct {
	ID             string    `json:"id"`
	DreamText      string    `json:"dreamText"`
	Interpretation *string   `json:"interpretation,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

type DreamHistoryResponse struct {
	Dreams   []DreamEntry `json:"dreams"`
	Page     int          `json:"page"`
	PageSize int          `json:"pageSize"`
	Total    int64        `json:"total"`
	HasMore  bool         `json:"hasMore"`
}

type InvoiceResponse struct {
	Plan        string `json:"plan"`
	InvoiceLink string `json:"invoiceLink"`
	Stars       int    `json:"stars"`
	Tokens      int    `json:"tokens"`
}
