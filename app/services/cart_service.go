package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/ozodbek-dev/go-storefront/app/apperrors"
	"github.com/ozodbek-dev/go-storefront/app/models"
	"github.com/ozodbek-dev/go-storefront/app/repositories"
	"github.com/ozodbek-dev/go-storefront/app/utils/calc"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CartService struct {
	db           *gorm.DB
	cartRepo     repositories.CartRepositoryImpl
	cartItemRepo repositories.CartItemRepositoryImpl
	productRepo  repositories.ProductRepositoryImpl
}

func NewCartService(
	db *gorm.DB,
	cartRepo repositories.CartRepositoryImpl,
	cartItemRepo repositories.CartItemRepositoryImpl,
	productRepo repositories.ProductRepositoryImpl,
) *CartService {
	return &CartService{
		db:           db,
		cartRepo:     cartRepo,
		cartItemRepo: cartItemRepo,
		productRepo:  productRepo,
	}
}

// AddItemToCart merges the requested quantity into any existing line for the
// product and validates the combined quantity against live stock. Writes to
// one cart line serialize: the merge is an atomic SQL increment on the
// (cart, product) unique pair, done under the product's row lock, so
// concurrent adds never lose an increment and concurrent first adds share
// one line instead of tripping the unique index.
func (s *CartService) AddItemToCart(ctx context.Context, userID, productID string, qty int) (*models.Cart, error) {
	if qty <= 0 {
		return nil, apperrors.NewValidationError("quantity", "quantity must be a positive integer")
	}

	cart, err := s.cartRepo.GetOrCreateCartByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create cart: %w", err)
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	defer func() {
		if r := recover(); r != nil {
			log.Printf("CartService: rolling back after panic: %v", r)
			tx.Rollback()
			panic(r)
		}
	}()

	product, err := s.productRepo.LockForUpdate(ctx, tx, productID)
	if err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product %s: %w", productID, err)
	}

	if !product.IsActive {
		tx.Rollback()
		return nil, apperrors.ErrProductInactive
	}
	if product.StockQuantity <= 0 {
		tx.Rollback()
		return nil, apperrors.ErrOutOfStock
	}

	if err := s.cartItemRepo.UpsertAdd(ctx, tx, &models.CartItem{
		CartID:    cart.ID,
		ProductID: productID,
		Quantity:  qty,
	}); err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to add cart item: %w", err)
	}

	// Validate the combined quantity, not the increment alone; a failed check
	// rolls the merge back so the cart is untouched.
	line, err := s.cartItemRepo.GetByCartAndProductForUpdate(ctx, tx, cart.ID, productID)
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to read cart line: %w", err)
	}
	if line.Quantity > product.StockQuantity {
		tx.Rollback()
		return nil, &apperrors.InsufficientStockError{
			ProductID:   product.ID,
			ProductName: product.Name,
			Available:   product.StockQuantity,
			Requested:   line.Quantity,
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit cart update: %w", err)
	}

	return s.loadCartWithSummary(ctx, cart.ID)
}

// UpdateCartItemQty sets a line's quantity. Zero is a valid input that
// removes the line; a negative value is rejected. The line is read under
// FOR UPDATE so concurrent writes to it serialize.
func (s *CartService) UpdateCartItemQty(ctx context.Context, userID, itemID string, newQty int) (*models.Cart, error) {
	if newQty < 0 {
		return nil, apperrors.NewValidationError("quantity", "quantity cannot be negative")
	}

	cart, err := s.cartRepo.GetOrCreateCartByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	defer func() {
		if r := recover(); r != nil {
			log.Printf("CartService: rolling back after panic: %v", r)
			tx.Rollback()
			panic(r)
		}
	}()

	item, err := s.cartItemRepo.GetByIDForUpdate(ctx, tx, itemID)
	if err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get cart item: %w", err)
	}
	if item.CartID != cart.ID {
		tx.Rollback()
		return nil, apperrors.ErrNotFound
	}

	if newQty == 0 {
		if err := s.cartItemRepo.Delete(ctx, tx, item.ID); err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("failed to remove cart item: %w", err)
		}
		if err := tx.Commit().Error; err != nil {
			return nil, fmt.Errorf("failed to commit cart update: %w", err)
		}
		return s.loadCartWithSummary(ctx, cart.ID)
	}

	product, err := s.productRepo.LockForUpdate(ctx, tx, item.ProductID)
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to get product for cart item: %w", err)
	}
	if newQty > product.StockQuantity {
		tx.Rollback()
		return nil, &apperrors.InsufficientStockError{
			ProductID:   product.ID,
			ProductName: product.Name,
			Available:   product.StockQuantity,
			Requested:   newQty,
		}
	}

	item.Quantity = newQty
	item.UpdatedAt = time.Now()
	if err := s.cartItemRepo.Update(ctx, tx, item); err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to update cart item quantity: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit cart update: %w", err)
	}

	return s.loadCartWithSummary(ctx, cart.ID)
}

func (s *CartService) RemoveItemFromCart(ctx context.Context, userID, itemID string) (*models.Cart, error) {
	cart, err := s.cartRepo.GetOrCreateCartByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	item, err := s.cartItemRepo.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get cart item: %w", err)
	}
	if item.CartID != cart.ID {
		return nil, apperrors.ErrNotFound
	}

	if err := s.cartItemRepo.Delete(ctx, nil, item.ID); err != nil {
		return nil, fmt.Errorf("failed to remove item from cart: %w", err)
	}

	return s.loadCartWithSummary(ctx, cart.ID)
}

func (s *CartService) GetUserCart(ctx context.Context, userID string) (*models.Cart, error) {
	cart, err := s.cartRepo.GetOrCreateCartByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create user cart: %w", err)
	}
	return s.loadCartWithSummary(ctx, cart.ID)
}

func (s *CartService) loadCartWithSummary(ctx context.Context, cartID string) (*models.Cart, error) {
	cart, err := s.cartRepo.GetCartWithItems(ctx, cartID)
	if err != nil {
		log.Printf("CartService: failed to load cart %s: %v", cartID, err)
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if cart == nil {
		return nil, apperrors.ErrNotFound
	}
	ComputeCartSummary(cart)
	return cart, nil
}

// ComputeCartSummary derives items_count and total_amount from the lines,
// pricing every line at the product's current effective price.
func ComputeCartSummary(cart *models.Cart) {
	subtotals := make([]decimal.Decimal, 0, len(cart.CartItems))
	count := 0
	for _, item := range cart.CartItems {
		count += item.Quantity
		if item.Product == nil {
			continue
		}
		unit := calc.EffectiveUnitPrice(item.Product.Price, item.Product.DiscountPercentage)
		subtotals = append(subtotals, calc.LineSubtotal(unit, item.Quantity))
	}
	cart.ItemsCount = count
	cart.TotalAmount = calc.AggregateTotal(subtotals)
}
