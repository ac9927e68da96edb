package repositories

import (
	"context"
	"errors"

	"github.com/ozodbek-dev/go-storefront/app/models"
	"gorm.io/gorm"
)

// ReviewFilter narrows review listings; Ordering accepts created_at or
// rating columns, optionally prefixed with "-" for descending.
type ReviewFilter struct {
	Rating   int
	Ordering string
}

type ReviewRepositoryImpl interface {
	Create(ctx context.Context, review *models.Review) error
	Update(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, reviewID string) error
	GetByID(ctx context.Context, reviewID string) (*models.Review, error)
	GetByProductAndUser(ctx context.Context, productID, userID string) (*models.Review, error)
	ListByProduct(ctx context.Context, productID string, filter ReviewFilter) ([]models.Review, error)
	AggregateByProduct(ctx context.Context, productID string) (count int64, average float64, err error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepositoryImpl {
	return &reviewRepository{db}
}

func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *reviewRepository) Update(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Save(review).Error
}

func (r *reviewRepository) Delete(ctx context.Context, reviewID string) error {
	return r.db.WithContext(ctx).Where("id = ?", reviewID).Delete(&models.Review{}).Error
}

func (r *reviewRepository) GetByID(ctx context.Context, reviewID string) (*models.Review, error) {
	var review models.Review
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("id = ?", reviewID).
		First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) GetByProductAndUser(ctx context.Context, productID, userID string) (*models.Review, error) {
	var review models.Review
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND user_id = ?", productID, userID).
		First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) ListByProduct(ctx context.Context, productID string, filter ReviewFilter) ([]models.Review, error) {
	query := r.db.WithContext(ctx).
		Preload("User").
		Where("product_id = ?", productID)

	if filter.Rating > 0 {
		query = query.Where("rating = ?", filter.Rating)
	}

	order := "created_at DESC"
	switch filter.Ordering {
	case "created_at":
		order = "created_at ASC"
	case "-created_at":
		order = "created_at DESC"
	case "rating":
		order = "rating ASC"
	case "-rating":
		order = "rating DESC"
	}

	var reviews []models.Review
	err := query.Order(order).Find(&reviews).Error
	return reviews, err
}

func (r *reviewRepository) AggregateByProduct(ctx context.Context, productID string) (int64, float64, error) {
	var result struct {
		Count   int64
		Average float64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Select("COUNT(*) AS count, COALESCE(AVG(rating), 0) AS average").
		Where("product_id = ?", productID).
		Scan(&result).Error
	if err != nil {
		return 0, 0, err
	}
	return result.Count, result.Average, nil
}
