package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/ozodbek-dev/go-storefront/app/apperrors"
	"github.com/ozodbek-dev/go-storefront/app/models"
	"github.com/ozodbek-dev/go-storefront/app/repositories"
	"github.com/ozodbek-dev/go-storefront/app/utils/calc"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductDetail is the full storefront view of one product: the record plus
// its computed final price, review aggregate and related products.
type ProductDetail struct {
	Product       *models.Product  `json:"product"`
	FinalPrice    decimal.Decimal  `json:"final_price"`
	InStock       bool             `json:"in_stock"`
	ReviewsCount  int64            `json:"reviews_count"`
	AverageRating float64          `json:"average_rating"`
	Related       []models.Product `json:"related_products"`
}

type CatalogService struct {
	productRepo repositories.ProductRepositoryImpl
	reviewRepo  repositories.ReviewRepositoryImpl
}

func NewCatalogService(
	productRepo repositories.ProductRepositoryImpl,
	reviewRepo repositories.ReviewRepositoryImpl,
) *CatalogService {
	return &CatalogService{
		productRepo: productRepo,
		reviewRepo:  reviewRepo,
	}
}

func (s *CatalogService) ListProducts(ctx context.Context, filter repositories.ProductFilter) ([]models.Product, int64, error) {
	products, total, err := s.productRepo.GetProducts(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	return products, total, nil
}

func (s *CatalogService) GetProductDetail(ctx context.Context, productID string) (*ProductDetail, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product %s: %w", productID, err)
	}
	if !product.IsActive {
		return nil, apperrors.ErrNotFound
	}

	count, average, err := s.reviewRepo.AggregateByProduct(ctx, product.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate reviews: %w", err)
	}

	related, err := s.productRepo.GetRelated(ctx, product, 4)
	if err != nil {
		return nil, fmt.Errorf("failed to load related products: %w", err)
	}

	return &ProductDetail{
		Product:       product,
		FinalPrice:    calc.EffectiveUnitPrice(product.Price, product.DiscountPercentage),
		InStock:       product.InStock(),
		ReviewsCount:  count,
		AverageRating: average,
		Related:       related,
	}, nil
}
