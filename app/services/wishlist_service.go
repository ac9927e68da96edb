package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/ozodbek-dev/go-storefront/app/apperrors"
	"github.com/ozodbek-dev/go-storefront/app/models"
	"github.com/ozodbek-dev/go-storefront/app/repositories"
	"gorm.io/gorm"
)

type WishlistService struct {
	wishlistRepo repositories.WishlistRepositoryImpl
	productRepo  repositories.ProductRepositoryImpl
	cartSvc      *CartService
}

func NewWishlistService(
	wishlistRepo repositories.WishlistRepositoryImpl,
	productRepo repositories.ProductRepositoryImpl,
	cartSvc *CartService,
) *WishlistService {
	return &WishlistService{
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
		cartSvc:      cartSvc,
	}
}

func (s *WishlistService) GetUserWishlist(ctx context.Context, userID string) (*models.Wishlist, error) {
	wishlist, err := s.wishlistRepo.GetWithProducts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get wishlist: %w", err)
	}
	return wishlist, nil
}

// AddProduct saves an active product to the wishlist. Adding a product that
// is already there is a no-op, reported via the bool return.
func (s *WishlistService) AddProduct(ctx context.Context, userID, productID string) (added bool, err error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, apperrors.ErrNotFound
		}
		return false, fmt.Errorf("failed to get product %s: %w", productID, err)
	}
	if !product.IsActive {
		return false, apperrors.ErrNotFound
	}

	wishlist, err := s.wishlistRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("failed to get wishlist: %w", err)
	}

	has, err := s.wishlistRepo.HasProduct(ctx, wishlist.ID, productID)
	if err != nil {
		return false, fmt.Errorf("failed to check wishlist: %w", err)
	}
	if has {
		return false, nil
	}

	if err := s.wishlistRepo.AddProduct(ctx, wishlist, product); err != nil {
		return false, fmt.Errorf("failed to add product to wishlist: %w", err)
	}
	return true, nil
}

func (s *WishlistService) RemoveProduct(ctx context.Context, userID, productID string) error {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to get product %s: %w", productID, err)
	}

	wishlist, err := s.wishlistRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get wishlist: %w", err)
	}

	if err := s.wishlistRepo.RemoveProduct(ctx, wishlist, product); err != nil {
		return fmt.Errorf("failed to remove product from wishlist: %w", err)
	}
	return nil
}

// MoveToCart adds the wishlisted product to the cart through the cart
// aggregate (so all stock rules apply) and removes it from the wishlist
// only when the add succeeded.
func (s *WishlistService) MoveToCart(ctx context.Context, userID, productID string) (*models.Cart, error) {
	cart, err := s.cartSvc.AddItemToCart(ctx, userID, productID, 1)
	if err != nil {
		return nil, err
	}
	if err := s.RemoveProduct(ctx, userID, productID); err != nil {
		return nil, err
	}
	return cart, nil
}
