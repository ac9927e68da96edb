package helpers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/ozodbek-dev/go-storefront/app/apperrors"
	"github.com/unrolled/render"
	"gorm.io/gorm"
)

type contextKey string

const ContextKeyUserID contextKey = "userID"

// Phone numbers are Uzbek mobile numbers: the +998 country prefix, 13
// characters total, digits only after the prefix.
const phonePrefix = "+998"

func ValidPhone(value string) bool {
	if !strings.HasPrefix(value, phonePrefix) {
		return false
	}
	if len(value) != 13 {
		return false
	}
	for _, r := range value[len(phonePrefix):] {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// NewValidator builds the shared validator with the custom uzphone rule.
func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("uzphone", func(fl validator.FieldLevel) bool {
		return ValidPhone(fl.Field().String())
	})
	return v
}

func FormatValidationErrors(errs validator.ValidationErrors) map[string]string {
	out := make(map[string]string, len(errs))
	for _, fe := range errs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			out[field] = fmt.Sprintf("%s is required", field)
		case "min":
			out[field] = fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		case "max":
			out[field] = fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		case "uzphone":
			out[field] = "phone must start with +998, be 13 characters long and contain only digits after the prefix"
		default:
			out[field] = fmt.Sprintf("%s is invalid", field)
		}
	}
	return out
}

// RespondError maps the error taxonomy onto HTTP statuses and renders a
// JSON body with enough context for a user-facing message.
func RespondError(rnd *render.Render, w http.ResponseWriter, err error) {
	var validationErr *apperrors.ValidationError
	var stockErr *apperrors.InsufficientStockError
	var transitionErr *apperrors.InvalidTransitionError

	switch {
	case errors.As(err, &validationErr):
		_ = rnd.JSON(w, http.StatusBadRequest, map[string]interface{}{
			"error": validationErr.Error(),
			"field": validationErr.Field,
		})
	case errors.As(err, &stockErr):
		_ = rnd.JSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":      stockErr.Error(),
			"product_id": stockErr.ProductID,
			"available":  stockErr.Available,
			"requested":  stockErr.Requested,
		})
	case errors.As(err, &transitionErr):
		_ = rnd.JSON(w, http.StatusBadRequest, map[string]interface{}{
			"error": "Order cannot be cancelled",
		})
	case errors.Is(err, apperrors.ErrCartEmpty):
		_ = rnd.JSON(w, http.StatusBadRequest, map[string]interface{}{
			"error": "Your cart is empty.",
		})
	case errors.Is(err, apperrors.ErrProductInactive):
		_ = rnd.JSON(w, http.StatusBadRequest, map[string]interface{}{
			"error": "This product is not active.",
		})
	case errors.Is(err, apperrors.ErrOutOfStock):
		_ = rnd.JSON(w, http.StatusBadRequest, map[string]interface{}{
			"error": "This product is out of stock.",
		})
	case errors.Is(err, apperrors.ErrDuplicateReview):
		_ = rnd.JSON(w, http.StatusBadRequest, map[string]interface{}{
			"error": "You have already reviewed this product",
		})
	case errors.Is(err, apperrors.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		_ = rnd.JSON(w, http.StatusNotFound, map[string]interface{}{
			"error": "Not found",
		})
	default:
		_ = rnd.JSON(w, http.StatusInternalServerError, map[string]interface{}{
			"error": "Internal server error",
		})
	}
}
