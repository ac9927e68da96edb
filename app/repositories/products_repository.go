package repositories

import (
	"context"
	"errors"
	"strings"

	"github.com/ozodbek-dev/go-storefront/app/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductFilter narrows catalog listings. Zero values mean "no filter".
type ProductFilter struct {
	CategorySlug string
	Search       string
	MinPrice     decimal.Decimal
	MaxPrice     decimal.Decimal
	FeaturedOnly bool
	Limit        int
	Offset       int
}

type ProductRepositoryImpl interface {
	GetProducts(ctx context.Context, filter ProductFilter) ([]models.Product, int64, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	GetBySlug(ctx context.Context, slug string) (*models.Product, error)
	GetRelated(ctx context.Context, product *models.Product, limit int) ([]models.Product, error)
	LockForUpdate(ctx context.Context, tx *gorm.DB, id string) (*models.Product, error)
	DecrementStock(ctx context.Context, tx *gorm.DB, id string, qty int) error
	IncrementStock(ctx context.Context, tx *gorm.DB, id string, qty int) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepositoryImpl {
	return &productRepository{db}
}

func (p *productRepository) GetProducts(ctx context.Context, filter ProductFilter) ([]models.Product, int64, error) {
	query := p.db.WithContext(ctx).Model(&models.Product{}).Where("is_active = ?", true)

	if filter.CategorySlug != "" {
		query = query.
			Joins("JOIN product_categories pc ON pc.product_id = products.id").
			Joins("JOIN categories c ON c.id = pc.category_id").
			Where("c.slug = ?", filter.CategorySlug)
	}
	if filter.Search != "" {
		keyword := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", keyword, keyword)
	}
	if filter.MinPrice.IsPositive() {
		query = query.Where("price >= ?", filter.MinPrice)
	}
	if filter.MaxPrice.IsPositive() {
		query = query.Where("price <= ?", filter.MaxPrice)
	}
	if filter.FeaturedOnly {
		query = query.Where("is_featured = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}

	var products []models.Product
	err := query.
		Preload("Categories").
		Preload("ProductImages").
		Order("created_at DESC").
		Limit(limit).
		Offset(filter.Offset).
		Find(&products).Error

	return products, total, err
}

func (p *productRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := p.db.WithContext(ctx).
		Preload("Categories").
		Preload("ProductImages").
		Where("id = ?", id).
		First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (p *productRepository) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	if err := p.db.WithContext(ctx).
		Preload("Categories").
		Preload("ProductImages").
		Where("slug = ?", slug).
		First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (p *productRepository) GetRelated(ctx context.Context, product *models.Product, limit int) ([]models.Product, error) {
	if len(product.Categories) == 0 {
		return nil, nil
	}

	categoryIDs := make([]string, 0, len(product.Categories))
	for _, c := range product.Categories {
		categoryIDs = append(categoryIDs, c.ID)
	}

	var products []models.Product
	err := p.db.WithContext(ctx).
		Joins("JOIN product_categories pc ON pc.product_id = products.id").
		Where("pc.category_id IN ?", categoryIDs).
		Where("products.id <> ?", product.ID).
		Where("is_active = ?", true).
		Preload("ProductImages").
		Distinct().
		Limit(limit).
		Find(&products).Error
	return products, err
}

// LockForUpdate reads the product row under FOR UPDATE so a concurrent
// checkout or cancellation on the same product serializes behind this
// transaction.
func (p *productRepository) LockForUpdate(ctx context.Context, tx *gorm.DB, id string) (*models.Product, error) {
	var product models.Product
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// DecrementStock is a guarded compare-and-decrement: the WHERE clause
// refuses to take the stock below zero even if the caller's validation
// raced. Zero affected rows means the stock moved underneath us.
func (p *productRepository) DecrementStock(ctx context.Context, tx *gorm.DB, id string, qty int) error {
	res := tx.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ? AND stock_quantity >= ?", id, qty).
		UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.New("stock changed concurrently")
	}
	return nil
}

func (p *productRepository) IncrementStock(ctx context.Context, tx *gorm.DB, id string, qty int) error {
	return tx.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		UpdateColumn("stock_quantity", gorm.Expr("stock_quantity + ?", qty)).Error
}
