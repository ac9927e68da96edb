package repositories

import (
	"context"
	"errors"

	"github.com/ozodbek-dev/go-storefront/app/models"
	"gorm.io/gorm"
)

type CartRepositoryImpl interface {
	GetOrCreateCartByUserID(ctx context.Context, userID string) (*models.Cart, error)
	GetCartWithItems(ctx context.Context, cartID string) (*models.Cart, error)
	GetCartWithItemsForUpdate(ctx context.Context, tx *gorm.DB, userID string) (*models.Cart, error)
	DeleteCart(ctx context.Context, cartID string) error
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepositoryImpl {
	return &cartRepository{db}
}

func (r *cartRepository) GetOrCreateCartByUserID(ctx context.Context, userID string) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.WithContext(ctx).
		Where(models.Cart{UserID: userID}).
		FirstOrCreate(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *cartRepository) GetCartWithItems(ctx context.Context, cartID string) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.WithContext(ctx).
		Preload("CartItems").
		Preload("CartItems.Product").
		Where("id = ?", cartID).
		First(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

// GetCartWithItemsForUpdate reads the user's cart inside the caller's
// transaction; checkout uses it so the lines it snapshots are the lines
// it drains.
func (r *cartRepository) GetCartWithItemsForUpdate(ctx context.Context, tx *gorm.DB, userID string) (*models.Cart, error) {
	var cart models.Cart
	err := tx.WithContext(ctx).
		Preload("CartItems").
		Preload("CartItems.Product").
		Where("user_id = ?", userID).
		First(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

func (r *cartRepository) DeleteCart(ctx context.Context, cartID string) error {
	return r.db.WithContext(ctx).Where("id = ?", cartID).Delete(&models.Cart{}).Error
}
