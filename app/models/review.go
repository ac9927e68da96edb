package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review is one user's rating of one product; the (product, user) pair is
// unique. IsVerifiedPurchase is set when the reviewer has a non-cancelled
// order containing the product.
type Review struct {
	ID                 string    `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	ProductID          string    `gorm:"size:36;not null;index:idx_product_user,unique" json:"product_id"`
	Product            *Product  `gorm:"foreignKey:ProductID" json:"-"`
	UserID             string    `gorm:"size:36;not null;index:idx_product_user,unique" json:"user_id"`
	User               User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Rating             int       `gorm:"not null" json:"rating"`
	Title              string    `gorm:"size:255;not null" json:"title"`
	Comment            string    `gorm:"type:text;not null" json:"comment"`
	IsVerifiedPurchase bool      `gorm:"not null;default:false" json:"is_verified_purchase"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func (rv *Review) BeforeCreate(tx *gorm.DB) (err error) {
	if rv.ID == "" {
		rv.ID = uuid.New().String()
	}
	return
}
