package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/ozodbek-dev/go-storefront/app/apperrors"
	"github.com/ozodbek-dev/go-storefront/app/models"
	"github.com/ozodbek-dev/go-storefront/app/repositories"
	"github.com/ozodbek-dev/go-storefront/app/utils/calc"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CheckoutService struct {
	db            *gorm.DB
	cartRepo      repositories.CartRepositoryImpl
	cartItemRepo  repositories.CartItemRepositoryImpl
	productRepo   repositories.ProductRepositoryImpl
	orderRepo     repositories.OrderRepository
	orderItemRepo repositories.OrderItemRepository
}

func NewCheckoutService(
	db *gorm.DB,
	cartRepo repositories.CartRepositoryImpl,
	cartItemRepo repositories.CartItemRepositoryImpl,
	productRepo repositories.ProductRepositoryImpl,
	orderRepo repositories.OrderRepository,
	orderItemRepo repositories.OrderItemRepository,
) *CheckoutService {
	return &CheckoutService{
		db:            db,
		cartRepo:      cartRepo,
		cartItemRepo:  cartItemRepo,
		productRepo:   productRepo,
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
	}
}

// Checkout converts the user's cart into a pending order: it re-validates
// every line against live stock under row locks, freezes effective unit
// prices into order items, decrements stock and drains the cart. The whole
// sequence runs in one transaction; any failure leaves no trace.
func (s *CheckoutService) Checkout(ctx context.Context, userID, shippingAddress, phone, notes string) (*models.Order, error) {
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	defer func() {
		if r := recover(); r != nil {
			log.Printf("CheckoutService: rolling back after panic: %v", r)
			tx.Rollback()
			panic(r)
		}
	}()

	cart, err := s.cartRepo.GetCartWithItemsForUpdate(ctx, tx, userID)
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to get cart with items: %w", err)
	}
	if cart == nil || len(cart.CartItems) == 0 {
		tx.Rollback()
		return nil, apperrors.ErrCartEmpty
	}

	// Stock may have moved since the lines were added; re-check every line
	// against the locked row, not the cart-time read.
	orderItems := make([]models.OrderItem, 0, len(cart.CartItems))
	subtotals := make([]decimal.Decimal, 0, len(cart.CartItems))

	for _, cartItem := range cart.CartItems {
		product, err := s.productRepo.LockForUpdate(ctx, tx, cartItem.ProductID)
		if err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("failed to lock product %s: %w", cartItem.ProductID, err)
		}

		if cartItem.Quantity > product.StockQuantity {
			tx.Rollback()
			return nil, &apperrors.InsufficientStockError{
				ProductID:   product.ID,
				ProductName: product.Name,
				Available:   product.StockQuantity,
				Requested:   cartItem.Quantity,
			}
		}

		unitPrice := calc.EffectiveUnitPrice(product.Price, product.DiscountPercentage)
		subtotal := calc.LineSubtotal(unitPrice, cartItem.Quantity)
		subtotals = append(subtotals, subtotal)

		orderItems = append(orderItems, models.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    cartItem.Quantity,
			Price:       unitPrice,
			Subtotal:    subtotal,
		})
	}

	order := &models.Order{
		UserID:          userID,
		OrderNumber:     generateOrderNumber(),
		ShippingAddress: shippingAddress,
		Phone:           phone,
		Notes:           notes,
		TotalAmount:     calc.AggregateTotal(subtotals),
		Status:          models.OrderStatusPending,
	}

	if err := s.orderRepo.Create(ctx, tx, order); err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	for i := range orderItems {
		orderItems[i].OrderID = order.ID
	}
	if err := s.orderItemRepo.BulkCreate(ctx, tx, orderItems); err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to create order items: %w", err)
	}

	for _, item := range orderItems {
		if err := s.productRepo.DecrementStock(ctx, tx, item.ProductID, item.Quantity); err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("failed to decrement stock for product %s: %w", item.ProductID, err)
		}
	}

	if err := s.cartItemRepo.ClearCartItems(ctx, tx, cart.ID); err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to clear cart: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit checkout transaction: %w", err)
	}

	order.OrderItems = orderItems
	log.Printf("CheckoutService: order %s created for user %s, total %s", order.OrderNumber, userID, order.TotalAmount)
	return order, nil
}

// generateOrderNumber builds a human-readable, collision-safe code. The date
// keeps it scannable; the uuid fragment makes same-second double submits by
// one user produce distinct numbers, backed by a unique index on the column.
func generateOrderNumber() string {
	return fmt.Sprintf("ORD-%s-%s", time.Now().Format("20060102"), uuid.New().String()[:8])
}
