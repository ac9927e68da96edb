package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ozodbek-dev/go-storefront/app/apperrors"
	"github.com/ozodbek-dev/go-storefront/app/helpers"
	"github.com/ozodbek-dev/go-storefront/app/models"
	"github.com/unrolled/render"
)

type CheckoutServicer interface {
	Checkout(ctx context.Context, userID, shippingAddress, phone, notes string) (*models.Order, error)
}

type CheckoutHandler struct {
	checkoutSvc CheckoutServicer
	render      *render.Render
	validator   *validator.Validate
}

func NewCheckoutHandler(checkoutSvc CheckoutServicer, rnd *render.Render, v *validator.Validate) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutSvc: checkoutSvc,
		render:      rnd,
		validator:   v,
	}
}

type checkoutRequest struct {
	ShippingAddress string `json:"shipping_address" validate:"required,min=10"`
	Phone           string `json:"phone" validate:"required,uzphone"`
	Notes           string `json:"notes"`
}

func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	userID, _ := r.Context().Value(helpers.ContextKeyUserID).(string)

	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		helpers.RespondError(h.render, w, apperrors.NewValidationError("body", "invalid JSON payload"))
		return
	}
	req.ShippingAddress = strings.TrimSpace(req.ShippingAddress)

	if err := h.validator.Struct(&req); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		_ = h.render.JSON(w, http.StatusBadRequest, map[string]interface{}{
			"errors": helpers.FormatValidationErrors(validationErrors),
		})
		return
	}

	order, err := h.checkoutSvc.Checkout(r.Context(), userID, req.ShippingAddress, req.Phone, req.Notes)
	if err != nil {
		helpers.RespondError(h.render, w, err)
		return
	}
	_ = h.render.JSON(w, http.StatusCreated, order)
}
