package constants

const (
	GetRewardStateByUserId = `
	SELECT id, balance, channel_reward_claimed FROM users WHERE id = $1
	`

	// The claimed flag is part of the predicate so only one concurrent caller can match the row.
	// Placeholders are numbered in textual order; SQLite binds $N by first appearance.
	ApplyChannelReward = `
	UPDATE users
	SET balance = balance + $1, channel_reward_claimed = TRUE, updated_at = CURRENT_TIMESTAMP
	WHERE id = $2 AND channel_reward_claimed = FALSE
	RETURNING balance
	`
)
