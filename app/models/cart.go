package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Cart is the per-user staging area before checkout. One row per user,
// created lazily on first access and drained when an order is placed.
// ItemsCount and TotalAmount are derived at read time, never persisted.
type Cart struct {
	ID          string          `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	UserID      string          `gorm:"size:36;not null;uniqueIndex" json:"user_id"`
	User        User            `gorm:"foreignKey:UserID" json:"-"`
	CartItems   []CartItem      `json:"items"`
	ItemsCount  int             `gorm:"-" json:"items_count"`
	TotalAmount decimal.Decimal `gorm:"-" json:"total_amount"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (c *Cart) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return
}
