package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CartItem holds one product line in a cart. At most one line exists per
// (cart, product) pair; duplicate adds merge into the existing line.
// Prices are not stored here — they are read live from the product so the
// cart always reflects the current price and discount.
type CartItem struct {
	ID        string    `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	CartID    string    `gorm:"size:36;not null;index:idx_cart_product,unique" json:"-"`
	Cart      *Cart     `gorm:"foreignKey:CartID" json:"-"`
	ProductID string    `gorm:"size:36;not null;index:idx_cart_product,unique" json:"product_id"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `json:"added_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ci *CartItem) BeforeCreate(tx *gorm.DB) (err error) {
	if ci.ID == "" {
		ci.ID = uuid.New().String()
	}
	return
}
