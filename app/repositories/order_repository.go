package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/ozodbek-dev/go-storefront/app/models"
	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(ctx context.Context, tx *gorm.DB, order *models.Order) error
	GetByIDForUser(ctx context.Context, db *gorm.DB, orderID, userID string) (*models.Order, error)
	FindByUserID(ctx context.Context, userID string) ([]models.Order, error)
	UpdateStatus(ctx context.Context, db *gorm.DB, orderID string, status models.OrderStatus) error
	UserPurchasedProduct(ctx context.Context, userID, productID string) (bool, error)
}

type gormOrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &gormOrderRepository{db: db}
}

func (r *gormOrderRepository) Create(ctx context.Context, tx *gorm.DB, order *models.Order) error {
	return tx.WithContext(ctx).Create(order).Error
}

// GetByIDForUser scopes the lookup to the owning user, so one customer can
// never read or cancel another's order. The db handle may be a transaction.
func (r *gormOrderRepository) GetByIDForUser(ctx context.Context, db *gorm.DB, orderID, userID string) (*models.Order, error) {
	if db == nil {
		db = r.db
	}
	var order models.Order
	err := db.WithContext(ctx).
		Preload("User").
		Preload("OrderItems").
		Preload("OrderItems.Product").
		Preload("OrderItems.Product.ProductImages").
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *gormOrderRepository) FindByUserID(ctx context.Context, userID string) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Preload("OrderItems").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *gormOrderRepository) UpdateStatus(ctx context.Context, db *gorm.DB, orderID string, status models.OrderStatus) error {
	if db == nil {
		db = r.db
	}
	return db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", orderID).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		}).Error
}

// UserPurchasedProduct reports whether the user has a non-cancelled order
// containing the product; reviews use it for the verified-purchase flag.
func (r *gormOrderRepository) UserPurchasedProduct(ctx context.Context, userID, productID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("order_items").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.user_id = ? AND order_items.product_id = ? AND orders.status <> ?",
			userID, productID, models.OrderStatusCancelled).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
