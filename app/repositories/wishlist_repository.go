package repositories

import (
	"context"

	"github.com/ozodbek-dev/go-storefront/app/models"
	"gorm.io/gorm"
)

type WishlistRepositoryImpl interface {
	GetOrCreateByUserID(ctx context.Context, userID string) (*models.Wishlist, error)
	GetWithProducts(ctx context.Context, userID string) (*models.Wishlist, error)
	HasProduct(ctx context.Context, wishlistID, productID string) (bool, error)
	AddProduct(ctx context.Context, wishlist *models.Wishlist, product *models.Product) error
	RemoveProduct(ctx context.Context, wishlist *models.Wishlist, product *models.Product) error
}

type wishlistRepository struct {
	db *gorm.DB
}

func NewWishlistRepository(db *gorm.DB) WishlistRepositoryImpl {
	return &wishlistRepository{db}
}

func (r *wishlistRepository) GetOrCreateByUserID(ctx context.Context, userID string) (*models.Wishlist, error) {
	var wishlist models.Wishlist
	err := r.db.WithContext(ctx).
		Where(models.Wishlist{UserID: userID}).
		FirstOrCreate(&wishlist).Error
	if err != nil {
		return nil, err
	}
	return &wishlist, nil
}

func (r *wishlistRepository) GetWithProducts(ctx context.Context, userID string) (*models.Wishlist, error) {
	wishlist, err := r.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	err = r.db.WithContext(ctx).
		Preload("Products").
		Preload("Products.ProductImages").
		Where("id = ?", wishlist.ID).
		First(wishlist).Error
	if err != nil {
		return nil, err
	}
	return wishlist, nil
}

func (r *wishlistRepository) HasProduct(ctx context.Context, wishlistID, productID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("wishlist_products").
		Where("wishlist_id = ? AND product_id = ?", wishlistID, productID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *wishlistRepository) AddProduct(ctx context.Context, wishlist *models.Wishlist, product *models.Product) error {
	return r.db.WithContext(ctx).Model(wishlist).Association("Products").Append(product)
}

func (r *wishlistRepository) RemoveProduct(ctx context.Context, wishlist *models.Wishlist, product *models.Product) error {
	return r.db.WithContext(ctx).Model(wishlist).Association("Products").Delete(product)
}
