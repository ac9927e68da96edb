package repositories

import (
	"context"
	"time"

	"github.com/ozodbek-dev/go-storefront/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartItemRepositoryImpl interface {
	UpsertAdd(ctx context.Context, tx *gorm.DB, item *models.CartItem) error
	Update(ctx context.Context, db *gorm.DB, item *models.CartItem) error
	Delete(ctx context.Context, db *gorm.DB, itemID string) error
	GetByID(ctx context.Context, itemID string) (*models.CartItem, error)
	GetByIDForUpdate(ctx context.Context, tx *gorm.DB, itemID string) (*models.CartItem, error)
	GetByCartAndProductForUpdate(ctx context.Context, tx *gorm.DB, cartID, productID string) (*models.CartItem, error)
	ClearCartItems(ctx context.Context, tx *gorm.DB, cartID string) error
}

type cartItemRepository struct {
	db *gorm.DB
}

func NewCartItemRepository(db *gorm.DB) CartItemRepositoryImpl {
	return &cartItemRepository{db}
}

// UpsertAdd merges the quantity into the (cart, product) line in one
// statement. The increment happens in SQL, so a concurrent add can never
// overwrite another's read, and two concurrent first adds land on the same
// row through the unique pair index instead of tripping it.
func (r *cartItemRepository) UpsertAdd(ctx context.Context, tx *gorm.DB, item *models.CartItem) error {
	return tx.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity":   gorm.Expr("quantity + ?", item.Quantity),
				"updated_at": time.Now(),
			}),
		}).
		Create(item).Error
}

func (r *cartItemRepository) Update(ctx context.Context, db *gorm.DB, item *models.CartItem) error {
	if db == nil {
		db = r.db
	}
	return db.WithContext(ctx).Save(item).Error
}

func (r *cartItemRepository) Delete(ctx context.Context, db *gorm.DB, itemID string) error {
	if db == nil {
		db = r.db
	}
	return db.WithContext(ctx).Where("id = ?", itemID).Delete(&models.CartItem{}).Error
}

func (r *cartItemRepository) GetByID(ctx context.Context, itemID string) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("id = ?", itemID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// GetByIDForUpdate reads the line under FOR UPDATE so concurrent writes to
// the same cart line serialize behind the caller's transaction.
func (r *cartItemRepository) GetByIDForUpdate(ctx context.Context, tx *gorm.DB, itemID string) (*models.CartItem, error) {
	var item models.CartItem
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", itemID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *cartItemRepository) GetByCartAndProductForUpdate(ctx context.Context, tx *gorm.DB, cartID, productID string) (*models.CartItem, error) {
	var item models.CartItem
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *cartItemRepository) ClearCartItems(ctx context.Context, tx *gorm.DB, cartID string) error {
	return tx.WithContext(ctx).Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error
}
