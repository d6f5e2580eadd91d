package dtos

// TelegramResponse is the envelope every Bot API method replies with
type TelegramResponse[T any] struct {
	Ok          bool                `json:"ok"`
	Result      T                   `json:"result"`
	ErrorCode   int                 `json:"error_code,omitempty"`
	Description string              `json:"description,omitempty"`
	Parameters  *ResponseParameters `json:"parameters,omitempty"`
}

type ResponseParameters struct {
	RetryAfter      int   `json:"retry_after,omitempty"`
	MigrateToChatID int64 `json:"migrate_to_chat_id,omitempty"`
}

// ---- getChatMember ----
type GetChatMemberReq struct {
	ChatID string `json:"chat_id"`
	UserID int64  `json:"user_id"`
}

type ChatMember struct {
	Status   string       `json:"status"`
	User     TelegramUser `json:"user"`
	IsMember *bool        `json:"is_member,omitempty"` // restricted members only
}

type TelegramUser struct {
	ID        int64  `json:"id"`
	IsBot     bool   `json:"is_bot"`
	FirstName string `json:"first_name"`
	Username  string `json:"username,omitempty"`
}

// ---- createInvoiceLink ----
type LabeledPrice struct {
	Label  string `json:"label"`
	Amount int    `json:"amount"`
}

type CreateInvoiceLinkReq struct {
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	Payload       string         `json:"payload"`
	ProviderToken string         `json:"provider_token,omitempty"` // empty for Telegram Stars
	Currency      string         `json:"currency"`
	Prices        []LabeledPrice `json:"prices"`
}
