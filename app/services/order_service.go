package services

import (
	"context"
	"fmt"
	"log"

	"github.com/ozodbek-dev/go-storefront/app/apperrors"
	"github.com/ozodbek-dev/go-storefront/app/models"
	"github.com/ozodbek-dev/go-storefront/app/repositories"
	"gorm.io/gorm"
)

type OrderService struct {
	db          *gorm.DB
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepositoryImpl
}

func NewOrderService(
	db *gorm.DB,
	orderRepo repositories.OrderRepository,
	productRepo repositories.ProductRepositoryImpl,
) *OrderService {
	return &OrderService{
		db:          db,
		orderRepo:   orderRepo,
		productRepo: productRepo,
	}
}

func (s *OrderService) ListOrders(ctx context.Context, userID string) ([]models.Order, error) {
	orders, err := s.orderRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders for user %s: %w", userID, err)
	}
	return orders, nil
}

func (s *OrderService) GetOrder(ctx context.Context, userID, orderID string) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDForUser(ctx, nil, orderID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order %s: %w", orderID, err)
	}
	if order == nil {
		return nil, apperrors.ErrNotFound
	}
	return order, nil
}

// CancelOrder flips a pending or processing order to cancelled and puts
// every item's quantity back on the product's stock. The restoration and the
// status change commit together or not at all; stock increments run inside
// the same transaction so they serialize with concurrent checkouts.
func (s *OrderService) CancelOrder(ctx context.Context, userID, orderID string) (*models.Order, error) {
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	defer func() {
		if r := recover(); r != nil {
			log.Printf("OrderService: rolling back after panic: %v", r)
			tx.Rollback()
			panic(r)
		}
	}()

	order, err := s.orderRepo.GetByIDForUser(ctx, tx, orderID, userID)
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to get order %s: %w", orderID, err)
	}
	if order == nil {
		tx.Rollback()
		return nil, apperrors.ErrNotFound
	}

	if !order.Status.CanCancel() {
		tx.Rollback()
		return nil, &apperrors.InvalidTransitionError{
			OrderNumber: order.OrderNumber,
			From:        order.Status,
		}
	}

	for _, item := range order.OrderItems {
		if err := s.productRepo.IncrementStock(ctx, tx, item.ProductID, item.Quantity); err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("failed to restore stock for product %s: %w", item.ProductID, err)
		}
	}

	if err := s.orderRepo.UpdateStatus(ctx, tx, order.ID, models.OrderStatusCancelled); err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit cancellation: %w", err)
	}

	order.Status = models.OrderStatusCancelled
	log.Printf("OrderService: order %s cancelled, stock restored for %d items", order.OrderNumber, len(order.OrderItems))
	return order, nil
}
