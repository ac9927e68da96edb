package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/ozodbek-dev/go-storefront/app/apperrors"
	"github.com/ozodbek-dev/go-storefront/app/helpers"
	"github.com/ozodbek-dev/go-storefront/app/models"
	"github.com/ozodbek-dev/go-storefront/app/repositories"
	"github.com/unrolled/render"
)

type ReviewServicer interface {
	CreateReview(ctx context.Context, userID, productID string, rating int, title, comment string) (*models.Review, error)
	ListReviews(ctx context.Context, productID string, filter repositories.ReviewFilter) ([]models.Review, error)
	UpdateReview(ctx context.Context, userID, reviewID string, rating int, title, comment string) (*models.Review, error)
	DeleteReview(ctx context.Context, userID, reviewID string) error
}

type ReviewHandler struct {
	reviewSvc ReviewServicer
	render    *render.Render
}

func NewReviewHandler(reviewSvc ReviewServicer, rnd *render.Render) *ReviewHandler {
	return &ReviewHandler{reviewSvc: reviewSvc, render: rnd}
}

type reviewRequest struct {
	Rating  int    `json:"rating"`
	Title   string `json:"title"`
	Comment string `json:"comment"`
}

func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	userID, _ := r.Context().Value(helpers.ContextKeyUserID).(string)
	productID := mux.Vars(r)["id"]

	var req reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		helpers.RespondError(h.render, w, apperrors.NewValidationError("body", "invalid JSON payload"))
		return
	}

	review, err := h.reviewSvc.CreateReview(r.Context(), userID, productID, req.Rating, req.Title, req.Comment)
	if err != nil {
		helpers.RespondError(h.render, w, err)
		return
	}
	_ = h.render.JSON(w, http.StatusCreated, review)
}

func (h *ReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	productID := mux.Vars(r)["id"]
	query := r.URL.Query()

	filter := repositories.ReviewFilter{
		Ordering: query.Get("ordering"),
	}
	if v := query.Get("rating"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Rating = n
		}
	}

	reviews, err := h.reviewSvc.ListReviews(r.Context(), productID, filter)
	if err != nil {
		helpers.RespondError(h.render, w, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{
		"count":   len(reviews),
		"results": reviews,
	})
}

func (h *ReviewHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	userID, _ := r.Context().Value(helpers.ContextKeyUserID).(string)
	reviewID := mux.Vars(r)["id"]

	var req reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		helpers.RespondError(h.render, w, apperrors.NewValidationError("body", "invalid JSON payload"))
		return
	}

	review, err := h.reviewSvc.UpdateReview(r.Context(), userID, reviewID, req.Rating, req.Title, req.Comment)
	if err != nil {
		helpers.RespondError(h.render, w, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, review)
}

func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	userID, _ := r.Context().Value(helpers.ContextKeyUserID).(string)
	reviewID := mux.Vars(r)["id"]

	if err := h.reviewSvc.DeleteReview(r.Context(), userID, reviewID); err != nil {
		helpers.RespondError(h.render, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
