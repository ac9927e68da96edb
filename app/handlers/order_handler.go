package handlers

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/ozodbek-dev/go-storefront/app/helpers"
	"github.com/ozodbek-dev/go-storefront/app/models"
	"github.com/ozodbek-dev/go-storefront/app/utils/format"
	"github.com/unrolled/render"
)

type OrderServicer interface {
	ListOrders(ctx context.Context, userID string) ([]models.Order, error)
	GetOrder(ctx context.Context, userID, orderID string) (*models.Order, error)
	CancelOrder(ctx context.Context, userID, orderID string) (*models.Order, error)
}

type OrderHandler struct {
	orderSvc OrderServicer
	render   *render.Render
}

func NewOrderHandler(orderSvc OrderServicer, rnd *render.Render) *OrderHandler {
	return &OrderHandler{orderSvc: orderSvc, render: rnd}
}

type orderSummary struct {
	ID           string             `json:"id"`
	OrderNumber  string             `json:"order_number"`
	TotalAmount  string             `json:"total_amount"`
	TotalDisplay string             `json:"total_display"`
	Status       models.OrderStatus `json:"status"`
	ItemsCount   int                `json:"items_count"`
	CanCancel    bool               `json:"can_cancel"`
	CreatedAt    string             `json:"created_at"`
}

func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	userID, _ := r.Context().Value(helpers.ContextKeyUserID).(string)

	orders, err := h.orderSvc.ListOrders(r.Context(), userID)
	if err != nil {
		helpers.RespondError(h.render, w, err)
		return
	}

	summaries := make([]orderSummary, 0, len(orders))
	for _, o := range orders {
		count := 0
		for _, item := range o.OrderItems {
			count += item.Quantity
		}
		summaries = append(summaries, orderSummary{
			ID:           o.ID,
			OrderNumber:  o.OrderNumber,
			TotalAmount:  o.TotalAmount.StringFixed(2),
			TotalDisplay: format.FormatUZS(o.TotalAmount),
			Status:       o.Status,
			ItemsCount:   count,
			CanCancel:    o.Status.CanCancel(),
			CreatedAt:    o.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{
		"count":   len(summaries),
		"results": summaries,
	})
}

func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	userID, _ := r.Context().Value(helpers.ContextKeyUserID).(string)
	orderID := mux.Vars(r)["id"]

	order, err := h.orderSvc.GetOrder(r.Context(), userID, orderID)
	if err != nil {
		helpers.RespondError(h.render, w, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, order)
}

func (h *OrderHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	userID, _ := r.Context().Value(helpers.ContextKeyUserID).(string)
	orderID := mux.Vars(r)["id"]

	order, err := h.orderSvc.CancelOrder(r.Context(), userID, orderID)
	if err != nil {
		helpers.RespondError(h.render, w, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{
		"message": "Order cancelled successfully",
		"order":   order,
	})
}
