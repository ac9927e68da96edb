package apperrors

import (
	"errors"
	"fmt"

	"github.com/ozodbek-dev/go-storefront/app/models"
)

var (
	ErrNotFound        = errors.New("resource not found")
	ErrCartEmpty       = errors.New("cart is empty")
	ErrProductInactive = errors.New("product is not active")
	ErrOutOfStock      = errors.New("product is out of stock")
	ErrDuplicateReview = errors.New("product already reviewed by this user")
)

// ValidationError reports malformed or out-of-range input on a named field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// InsufficientStockError names the offending product and how much stock is
// actually available, so callers can render a useful message.
type InsufficientStockError struct {
	ProductID   string
	ProductName string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("not enough stock for %s: only %d available, %d requested", e.ProductName, e.Available, e.Requested)
}

// InvalidTransitionError reports an illegal order-status change.
type InvalidTransitionError struct {
	OrderNumber string
	From        models.OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("order %s cannot be cancelled from status %q", e.OrderNumber, e.From)
}
