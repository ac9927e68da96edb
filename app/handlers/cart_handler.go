package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/ozodbek-dev/go-storefront/app/apperrors"
	"github.com/ozodbek-dev/go-storefront/app/helpers"
	"github.com/ozodbek-dev/go-storefront/app/models"
	"github.com/unrolled/render"
)

type CartServicer interface {
	GetUserCart(ctx context.Context, userID string) (*models.Cart, error)
	AddItemToCart(ctx context.Context, userID, productID string, qty int) (*models.Cart, error)
	UpdateCartItemQty(ctx context.Context, userID, itemID string, newQty int) (*models.Cart, error)
	RemoveItemFromCart(ctx context.Context, userID, itemID string) (*models.Cart, error)
}

type CartHandler struct {
	cartSvc CartServicer
	render  *render.Render
}

func NewCartHandler(cartSvc CartServicer, rnd *render.Render) *CartHandler {
	return &CartHandler{cartSvc: cartSvc, render: rnd}
}

type addCartItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type updateCartItemRequest struct {
	Quantity *int `json:"quantity"`
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID, _ := r.Context().Value(helpers.ContextKeyUserID).(string)

	cart, err := h.cartSvc.GetUserCart(r.Context(), userID)
	if err != nil {
		helpers.RespondError(h.render, w, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, cart)
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	userID, _ := r.Context().Value(helpers.ContextKeyUserID).(string)

	var req addCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		helpers.RespondError(h.render, w, apperrors.NewValidationError("body", "invalid JSON payload"))
		return
	}
	if req.ProductID == "" {
		helpers.RespondError(h.render, w, apperrors.NewValidationError("product_id", "product_id is required"))
		return
	}

	cart, err := h.cartSvc.AddItemToCart(r.Context(), userID, req.ProductID, req.Quantity)
	if err != nil {
		helpers.RespondError(h.render, w, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, cart)
}

func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	userID, _ := r.Context().Value(helpers.ContextKeyUserID).(string)
	itemID := mux.Vars(r)["id"]

	var req updateCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		helpers.RespondError(h.render, w, apperrors.NewValidationError("body", "invalid JSON payload"))
		return
	}
	if req.Quantity == nil {
		helpers.RespondError(h.render, w, apperrors.NewValidationError("quantity", "quantity is required"))
		return
	}

	cart, err := h.cartSvc.UpdateCartItemQty(r.Context(), userID, itemID, *req.Quantity)
	if err != nil {
		helpers.RespondError(h.render, w, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, cart)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID, _ := r.Context().Value(helpers.ContextKeyUserID).(string)
	itemID := mux.Vars(r)["id"]

	if _, err := h.cartSvc.RemoveItemFromCart(r.Context(), userID, itemID); err != nil {
		helpers.RespondError(h.render, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
