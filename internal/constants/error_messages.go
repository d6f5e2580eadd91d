package constants

// Errors surfaced to the mini-app
const (
	ErrMsgServerConfig      = "Server configuration error"
	ErrMsgMissingInitData   = "Missing Telegram init data"
	ErrMsgInvalidInitData   = "Invalid Telegram init data"
	ErrMsgExpiredInitData   = "Telegram session expired, reopen the app"
	ErrMsgUserNotFound      = "User not found. Start the bot first"
	ErrMsgChannelNotFound   = "Channel not found or the bot cannot see it. Check CHANNEL_ID"
	ErrMsgBotNoPermission   = "The bot has no permission to check channel members. Make it a channel administrator"
	ErrMsgUserNotInChannel  = "User not found in channel"
	ErrMsgCheckUnavailable  = "Could not verify the subscription right now. Please try again later"
	ErrMsgInternal          = "Internal server error"
	ErrMsgUnknownPlan       = "Unknown plan"
	ErrMsgInvoiceFailed     = "Failed to create invoice"
	ErrMsgTooManyRequests   = "Too many requests"
	ErrMsgInvalidPagination = "Invalid pagination parameters"
)

// Reward claim messages
const (
	MsgRewardGranted        = "Thanks for subscribing! 1 token added to your balance"
	MsgRewardAlreadyClaimed = "You have already received the subscription bonus"
	MsgNotSubscribedFormat  = "Subscribe to the channel first (current status: %s)"
)
