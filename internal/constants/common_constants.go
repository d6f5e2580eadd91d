package constants

type CachePrefix string

const CachePrefixDreamHistory CachePrefix = "DREAMS_"

// Header carrying the raw Telegram Mini App init data
const InitDataHeader = "X-Telegram-Init-Data"

// ChatMemberStatus is the status string reported by the Bot API getChatMember method
type ChatMemberStatus string

const (
	MemberStatusCreator       ChatMemberStatus = "creator"
	MemberStatusAdministrator ChatMemberStatus = "administrator"
	MemberStatusMember        ChatMemberStatus = "member"
	MemberStatusRestricted    ChatMemberStatus = "restricted"
	MemberStatusLeft          ChatMemberStatus = "left"
	MemberStatusKicked        ChatMemberStatus = "kicked"
	MemberStatusUnknown       ChatMemberStatus = "unknown"
)

// ChannelRewardTokens is the one-time bonus for subscribing to the channel
const ChannelRewardTokens = 1

const (
	DefaultHistoryPageSize = 10
	MaxHistoryPageSize     = 50
	MaxHistoryPage         = 10000
)
