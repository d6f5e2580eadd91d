package constants

// Telegram Bot API error codes
// Assigned once at the provider boundary from the HTTP status and error_code/description of the reply

const (
	ErrCodeInvalidBotToken   = "INVALID_BOT_TOKEN"
	ErrCodeChatNotFound      = "CHAT_NOT_FOUND"
	ErrCodeUserNotFound      = "USER_NOT_FOUND"
	ErrCodeForbidden         = "FORBIDDEN"
	ErrCodeBadRequest        = "BAD_REQUEST"
	ErrCodeRateLimited       = "RATE_LIMITED"
	ErrCodeNetworkError      = "NETWORK_ERROR"
	ErrCodeUpstreamError     = "UPSTREAM_ERROR"
	ErrCodeInvalidDataFormat = "INVALID_DATA_FORMAT"
)

var ProviderErrorMessages = map[string]string{
	ErrCodeInvalidBotToken:   "The bot token is invalid or has been revoked",
	ErrCodeChatNotFound:      "The chat was not found or the bot cannot access it",
	ErrCodeUserNotFound:      "The user was not found in the chat",
	ErrCodeForbidden:         "The bot is not allowed to perform this request",
	ErrCodeBadRequest:        "Telegram rejected the request",
	ErrCodeRateLimited:       "Rate limit exceeded. Please try again later",
	ErrCodeNetworkError:      "Unable to connect to Telegram",
	ErrCodeUpstreamError:     "Telegram returned a server error",
	ErrCodeInvalidDataFormat: "The data format is invalid",
}

// GetErrorMessage returns the human-readable message for an error code
func GetErrorMessage(code string) string {
	if msg, exists := ProviderErrorMessages[code]; exists {
		return msg
	}
	return "An unknown error occurred"
}
