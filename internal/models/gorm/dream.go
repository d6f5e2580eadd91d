package gorm

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Dream is a dream submitted through the bot together with its interpretation
type Dream struct {
	ID             string    `gorm:"column:id;primaryKey;type:uuid"`
	UserID         string    `gorm:"column:user_id;type:uuid;index;not null"`
	DreamText      string    `gorm:"column:dream_text;not null"`
	Interpretation *string   `gorm:"column:interpretation"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime;index"`
}

// TableName specifies the table name for GORM
func (Dream) TableName() string {
	return "dreams"
}

func (d *Dream) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}
