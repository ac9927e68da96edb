package handlers

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/ozodbek-dev/go-storefront/app/helpers"
	"github.com/ozodbek-dev/go-storefront/app/models"
	"github.com/unrolled/render"
)

type WishlistServicer interface {
	GetUserWishlist(ctx context.Context, userID string) (*models.Wishlist, error)
	AddProduct(ctx context.Context, userID, productID string) (bool, error)
	RemoveProduct(ctx context.Context, userID, productID string) error
	MoveToCart(ctx context.Context, userID, productID string) (*models.Cart, error)
}

type WishlistHandler struct {
	wishlistSvc WishlistServicer
	render      *render.Render
}

func NewWishlistHandler(wishlistSvc WishlistServicer, rnd *render.Render) *WishlistHandler {
	return &WishlistHandler{wishlistSvc: wishlistSvc, render: rnd}
}

func (h *WishlistHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	userID, _ := r.Context().Value(helpers.ContextKeyUserID).(string)

	wishlist, err := h.wishlistSvc.GetUserWishlist(r.Context(), userID)
	if err != nil {
		helpers.RespondError(h.render, w, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, wishlist)
}

func (h *WishlistHandler) AddProduct(w http.ResponseWriter, r *http.Request) {
	userID, _ := r.Context().Value(helpers.ContextKeyUserID).(string)
	productID := mux.Vars(r)["product_id"]

	added, err := h.wishlistSvc.AddProduct(r.Context(), userID, productID)
	if err != nil {
		helpers.RespondError(h.render, w, err)
		return
	}
	if !added {
		_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{
			"message": "Product already in wishlist.",
		})
		return
	}
	_ = h.render.JSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Product added to wishlist.",
	})
}

func (h *WishlistHandler) RemoveProduct(w http.ResponseWriter, r *http.Request) {
	userID, _ := r.Context().Value(helpers.ContextKeyUserID).(string)
	productID := mux.Vars(r)["product_id"]

	if err := h.wishlistSvc.RemoveProduct(r.Context(), userID, productID); err != nil {
		helpers.RespondError(h.render, w, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{
		"message": "Product removed from wishlist.",
	})
}

func (h *WishlistHandler) MoveToCart(w http.ResponseWriter, r *http.Request) {
	userID, _ := r.Context().Value(helpers.ContextKeyUserID).(string)
	productID := mux.Vars(r)["product_id"]

	cart, err := h.wishlistSvc.MoveToCart(r.Context(), userID, productID)
	if err != nil {
		helpers.RespondError(h.render, w, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{
		"message": "Product moved to cart.",
		"cart":    cart,
	})
}
