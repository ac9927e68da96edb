package services_test

import (
	"context"
	"testing"

	"github.com/ozodbek-dev/go-storefront/app/apperrors"
	"github.com/ozodbek-dev/go-storefront/app/models"
	"github.com/ozodbek-dev/go-storefront/app/repositories"
	"github.com/ozodbek-dev/go-storefront/app/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeReviewRepo struct {
	s       *storeState
	reviews map[string]*models.Review
}

var _ repositories.ReviewRepositoryImpl = (*fakeReviewRepo)(nil)

func newFakeReviewRepo(s *storeState) *fakeReviewRepo {
	return &fakeReviewRepo{s: s, reviews: make(map[string]*models.Review)}
}

func (f *fakeReviewRepo) Create(ctx context.Context, review *models.Review) error {
	if review.ID == "" {
		review.ID = f.s.nextID("review")
	}
	copied := *review
	f.reviews[review.ID] = &copied
	return nil
}

func (f *fakeReviewRepo) Update(ctx context.Context, review *models.Review) error {
	copied := *review
	f.reviews[review.ID] = &copied
	return nil
}

func (f *fakeReviewRepo) Delete(ctx context.Context, reviewID string) error {
	delete(f.reviews, reviewID)
	return nil
}

func (f *fakeReviewRepo) GetByID(ctx context.Context, reviewID string) (*models.Review, error) {
	r, ok := f.reviews[reviewID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *r
	return &copied, nil
}

func (f *fakeReviewRepo) GetByProductAndUser(ctx context.Context, productID, userID string) (*models.Review, error) {
	for _, r := range f.reviews {
		if r.ProductID == productID && r.UserID == userID {
			copied := *r
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeReviewRepo) ListByProduct(ctx context.Context, productID string, filter repositories.ReviewFilter) ([]models.Review, error) {
	var out []models.Review
	for _, r := range f.reviews {
		if r.ProductID != productID {
			continue
		}
		if filter.Rating > 0 && r.Rating != filter.Rating {
			continue
		}
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeReviewRepo) AggregateByProduct(ctx context.Context, productID string) (int64, float64, error) {
	var count int64
	var sum int
	for _, r := range f.reviews {
		if r.ProductID == productID {
			count++
			sum += r.Rating
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	return count, float64(sum) / float64(count), nil
}

func newReviewFixture() (*services.ReviewService, *storeState, *fakeReviewRepo, *fakeOrderRepo) {
	s := newStoreState()
	reviews := newFakeReviewRepo(s)
	orders := &fakeOrderRepo{s: s, purchased: map[string]bool{}}
	svc := services.NewReviewService(reviews, &fakeProductRepo{s: s}, orders)
	return svc, s, reviews, orders
}

func TestCreateReview_MarksVerifiedPurchase(t *testing.T) {
	svc, s, _, orders := newReviewFixture()
	product := s.addProduct(models.Product{
		Name:  "Teapot",
		Price: decimal.RequireFromString("10.00"),
	})
	orders.purchased["user-1|"+product.ID] = true

	review, err := svc.CreateReview(context.Background(), "user-1", product.ID, 5, "Great teapot", "Pours cleanly and keeps the heat.")
	require.NoError(t, err)
	assert.True(t, review.IsVerifiedPurchase)
	assert.Equal(t, 5, review.Rating)
}

func TestCreateReview_UnverifiedWithoutPurchase(t *testing.T) {
	svc, s, _, _ := newReviewFixture()
	product := s.addProduct(models.Product{Name: "Teapot"})

	review, err := svc.CreateReview(context.Background(), "user-1", product.ID, 3, "Decent teapot", "Fine, though the lid rattles a bit.")
	require.NoError(t, err)
	assert.False(t, review.IsVerifiedPurchase)
}

func TestCreateReview_DuplicateRejected(t *testing.T) {
	svc, s, _, _ := newReviewFixture()
	product := s.addProduct(models.Product{Name: "Teapot"})

	_, err := svc.CreateReview(context.Background(), "user-1", product.ID, 4, "Good teapot", "Does what a teapot should do.")
	require.NoError(t, err)

	_, err = svc.CreateReview(context.Background(), "user-1", product.ID, 2, "Changed my mind", "The handle came loose after a week.")
	assert.ErrorIs(t, err, apperrors.ErrDuplicateReview)
}

func TestCreateReview_InputValidation(t *testing.T) {
	svc, s, _, _ := newReviewFixture()
	product := s.addProduct(models.Product{Name: "Teapot"})

	var validationErr *apperrors.ValidationError

	_, err := svc.CreateReview(context.Background(), "user-1", product.ID, 0, "Good teapot", "Does what a teapot should do.")
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "rating", validationErr.Field)

	_, err = svc.CreateReview(context.Background(), "user-1", product.ID, 6, "Good teapot", "Does what a teapot should do.")
	assert.ErrorAs(t, err, &validationErr)

	_, err = svc.CreateReview(context.Background(), "user-1", product.ID, 4, "   ok   ", "Does what a teapot should do.")
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "title", validationErr.Field)

	_, err = svc.CreateReview(context.Background(), "user-1", product.ID, 4, "Good teapot", "short")
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "comment", validationErr.Field)
}

func TestCreateReview_UnknownProduct(t *testing.T) {
	svc, _, _, _ := newReviewFixture()

	_, err := svc.CreateReview(context.Background(), "user-1", "missing", 4, "Good teapot", "Does what a teapot should do.")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUpdateReview_OwnerOnly(t *testing.T) {
	svc, s, _, _ := newReviewFixture()
	product := s.addProduct(models.Product{Name: "Teapot"})

	review, err := svc.CreateReview(context.Background(), "user-1", product.ID, 4, "Good teapot", "Does what a teapot should do.")
	require.NoError(t, err)

	_, err = svc.UpdateReview(context.Background(), "user-2", review.ID, 1, "Hijacked title", "Someone else's review, hands off.")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	updated, err := svc.UpdateReview(context.Background(), "user-1", review.ID, 2, "Revised take", "The handle came loose after a week.")
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Rating)
	assert.Equal(t, "Revised take", updated.Title)
}

func TestDeleteReview_OwnerOnly(t *testing.T) {
	svc, s, reviews, _ := newReviewFixture()
	product := s.addProduct(models.Product{Name: "Teapot"})

	review, err := svc.CreateReview(context.Background(), "user-1", product.ID, 4, "Good teapot", "Does what a teapot should do.")
	require.NoError(t, err)

	err = svc.DeleteReview(context.Background(), "user-2", review.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	require.NoError(t, svc.DeleteReview(context.Background(), "user-1", review.ID))
	assert.Empty(t, reviews.reviews)

	err = svc.DeleteReview(context.Background(), "user-1", review.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
