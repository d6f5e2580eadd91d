package entities

// RewardState is the subset of a users row the reward ledger reads
type RewardState struct {
	ID                   string `db:"id"`
	Balance              int    `db:"balance"`
	ChannelRewardClaimed bool   `db:"channel_reward_claimed"`
}
