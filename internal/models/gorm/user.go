package gorm

import (
	"time"

	"dream-analyzer/backend/internal/constants"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID                    string             `gorm:"column:id;primaryKey;type:uuid"`
	TelegramID            int64              `gorm:"column:telegram_id;uniqueIndex;not null"`
	Username              *string            `gorm:"column:username"`
	FirstName             *string            `gorm:"column:first_name"`
	Balance               int                `gorm:"column:balance;not null;default:0;check:balance >= 0"`
	PlanTier              constants.PlanTier `gorm:"column:plan_tier;type:text;not null;default:free"`
	ChannelRewardClaimed  bool               `gorm:"column:channel_reward_claimed;not null;default:false"`
	SubscriptionExpiresAt *time.Time         `gorm:"column:subscription_expires_at"`
	CreatedAt             time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt             time.Time          `gorm:"column:updated_at;autoUpdateTime"`

	// Relationships
	Dreams []Dream `gorm:"foreignKey:UserID"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}

// BeforeCreate assigns the internal id; it never changes afterwards.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
