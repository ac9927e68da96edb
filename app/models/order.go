package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// CanCancel reports whether the order may still transition to cancelled.
// Shipped and later statuses are terminal for the cancellation path.
func (s OrderStatus) CanCancel() bool {
	return s == OrderStatusPending || s == OrderStatusProcessing
}

// Order is the immutable, audit-grade record produced by checkout. The
// header never changes after creation except for the status column, and
// TotalAmount stays frozen even if product prices move later.
type Order struct {
	ID              string          `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	UserID          string          `gorm:"size:36;not null;index" json:"user_id"`
	User            User            `gorm:"foreignKey:UserID" json:"user,omitempty"`
	OrderNumber     string          `gorm:"size:64;not null;uniqueIndex" json:"order_number"`
	ShippingAddress string          `gorm:"type:text;not null" json:"shipping_address"`
	Phone           string          `gorm:"size:13;not null" json:"phone"`
	Notes           string          `gorm:"type:text" json:"notes,omitempty"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"total_amount"`
	Status          OrderStatus     `gorm:"size:20;not null;default:pending" json:"status"`
	OrderItems      []OrderItem     `json:"items,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return
}
