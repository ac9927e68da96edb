package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/ozodbek-dev/go-storefront/app/helpers"
	"github.com/ozodbek-dev/go-storefront/app/models"
	"github.com/ozodbek-dev/go-storefront/app/repositories"
	"github.com/ozodbek-dev/go-storefront/app/services"
	"github.com/shopspring/decimal"
	"github.com/unrolled/render"
)

type CatalogServicer interface {
	ListProducts(ctx context.Context, filter repositories.ProductFilter) ([]models.Product, int64, error)
	GetProductDetail(ctx context.Context, productID string) (*services.ProductDetail, error)
}

type ProductHandler struct {
	catalogSvc CatalogServicer
	render     *render.Render
}

func NewProductHandler(catalogSvc CatalogServicer, rnd *render.Render) *ProductHandler {
	return &ProductHandler{catalogSvc: catalogSvc, render: rnd}
}

func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := repositories.ProductFilter{
		CategorySlug: query.Get("category"),
		Search:       query.Get("search"),
		FeaturedOnly: query.Get("featured") == "true",
	}
	if v := query.Get("min_price"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			filter.MinPrice = d
		}
	}
	if v := query.Get("max_price"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			filter.MaxPrice = d
		}
	}
	if v := query.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Limit = n
		}
	}
	if v := query.Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Offset = n
		}
	}

	products, total, err := h.catalogSvc.ListProducts(r.Context(), filter)
	if err != nil {
		helpers.RespondError(h.render, w, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{
		"count":   total,
		"results": products,
	})
}

func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID := mux.Vars(r)["id"]

	detail, err := h.catalogSvc.GetProductDetail(r.Context(), productID)
	if err != nil {
		helpers.RespondError(h.render, w, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, detail)
}
