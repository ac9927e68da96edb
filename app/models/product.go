package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	ID                 string          `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	Name               string          `gorm:"size:255;not null" json:"name"`
	Slug               string          `gorm:"size:255;not null;uniqueIndex" json:"slug"`
	Description        string          `gorm:"type:text" json:"description"`
	Price              decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"price"`
	DiscountPercentage int             `gorm:"not null;default:0" json:"discount_percentage"`
	StockQuantity      int             `gorm:"not null;default:0" json:"stock_quantity"`
	IsActive           bool            `gorm:"not null;default:true" json:"is_active"`
	IsFeatured         bool            `gorm:"not null;default:false" json:"is_featured"`
	Categories         []Category      `gorm:"many2many:product_categories;" json:"categories,omitempty"`
	ProductImages      []ProductImage  `json:"images,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
	DeletedAt          gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return
}

func (p *Product) InStock() bool {
	return p.StockQuantity > 0
}
