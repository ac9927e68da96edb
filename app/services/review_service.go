package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ozodbek-dev/go-storefront/app/apperrors"
	"github.com/ozodbek-dev/go-storefront/app/models"
	"github.com/ozodbek-dev/go-storefront/app/repositories"
	"gorm.io/gorm"
)

type ReviewService struct {
	reviewRepo  repositories.ReviewRepositoryImpl
	productRepo repositories.ProductRepositoryImpl
	orderRepo   repositories.OrderRepository
}

func NewReviewService(
	reviewRepo repositories.ReviewRepositoryImpl,
	productRepo repositories.ProductRepositoryImpl,
	orderRepo repositories.OrderRepository,
) *ReviewService {
	return &ReviewService{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
	}
}

func validateReviewInput(rating int, title, comment string) error {
	if rating < 1 || rating > 5 {
		return apperrors.NewValidationError("rating", "rating must be between 1 and 5")
	}
	if len(strings.TrimSpace(title)) < 5 {
		return apperrors.NewValidationError("title", "title must be at least 5 characters")
	}
	if len(strings.TrimSpace(comment)) < 10 {
		return apperrors.NewValidationError("comment", "comment must be at least 10 characters")
	}
	return nil
}

// CreateReview adds the user's single review for a product. The verified
// purchase flag is set from the user's non-cancelled order history.
func (s *ReviewService) CreateReview(ctx context.Context, userID, productID string, rating int, title, comment string) (*models.Review, error) {
	if err := validateReviewInput(rating, title, comment); err != nil {
		return nil, err
	}

	if _, err := s.productRepo.GetByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product %s: %w", productID, err)
	}

	existing, err := s.reviewRepo.GetByProductAndUser(ctx, productID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing review: %w", err)
	}
	if existing != nil {
		return nil, apperrors.ErrDuplicateReview
	}

	verified, err := s.orderRepo.UserPurchasedProduct(ctx, userID, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to check purchase history: %w", err)
	}

	review := &models.Review{
		ProductID:          productID,
		UserID:             userID,
		Rating:             rating,
		Title:              strings.TrimSpace(title),
		Comment:            strings.TrimSpace(comment),
		IsVerifiedPurchase: verified,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	return review, nil
}

func (s *ReviewService) ListReviews(ctx context.Context, productID string, filter repositories.ReviewFilter) ([]models.Review, error) {
	reviews, err := s.reviewRepo.ListByProduct(ctx, productID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews for product %s: %w", productID, err)
	}
	return reviews, nil
}

// UpdateReview edits the caller's own review; other users' reviews look
// like they do not exist.
func (s *ReviewService) UpdateReview(ctx context.Context, userID, reviewID string, rating int, title, comment string) (*models.Review, error) {
	if err := validateReviewInput(rating, title, comment); err != nil {
		return nil, err
	}

	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get review %s: %w", reviewID, err)
	}
	if review.UserID != userID {
		return nil, apperrors.ErrNotFound
	}

	review.Rating = rating
	review.Title = strings.TrimSpace(title)
	review.Comment = strings.TrimSpace(comment)
	if err := s.reviewRepo.Update(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to update review: %w", err)
	}
	return review, nil
}

func (s *ReviewService) DeleteReview(ctx context.Context, userID, reviewID string) error {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to get review %s: %w", reviewID, err)
	}
	if review.UserID != userID {
		return apperrors.ErrNotFound
	}
	if err := s.reviewRepo.Delete(ctx, review.ID); err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	return nil
}
