package fakers

import (
	"math/rand"
	"time"

	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/ozodbek-dev/go-storefront/app/models"
	"github.com/shopspring/decimal"
)

func CategoryFaker() *models.Category {
	name := faker.Word()
	return &models.Category{
		ID:   uuid.New().String(),
		Name: name,
		Slug: slug.Make(name + "-" + uuid.NewString()[:6]),
	}
}

func ProductFaker(category *models.Category) *models.Product {
	name := faker.Name()
	productID := uuid.New().String()

	imagePaths := []string{
		"/images/products/sample.jpg",
		"/images/products/sample1.jpg",
		"/images/products/sample2.jpg",
	}

	numImages := rand.Intn(3) + 1
	productImages := make([]models.ProductImage, numImages)
	for i := 0; i < numImages; i++ {
		productImages[i] = models.ProductImage{
			ID:        uuid.New().String(),
			ProductID: productID,
			ImageURL:  imagePaths[rand.Intn(len(imagePaths))],
			IsPrimary: i == 0,
			SortOrder: i,
		}
	}

	return &models.Product{
		ID:                 productID,
		Name:               name,
		Slug:               slug.Make(name + "-" + uuid.NewString()[:6]),
		Description:        faker.Paragraph(),
		Price:              decimal.NewFromInt(int64(rand.Intn(900)+100) * 1000),
		DiscountPercentage: []int{0, 0, 5, 10, 15, 20}[rand.Intn(6)],
		StockQuantity:      rand.Intn(20) + 1,
		IsActive:           true,
		IsFeatured:         rand.Intn(5) == 0,
		Categories:         []models.Category{*category},
		ProductImages:      productImages,
		CreatedAt:          time.Now(),
		UpdatedAt:          time.Now(),
	}
}

func UserFaker() *models.User {
	return &models.User{
		ID:        uuid.New().String(),
		Username:  faker.Username(),
		Email:     faker.Email(),
		FirstName: faker.FirstName(),
		LastName:  faker.LastName(),
	}
}
