package seeders

import (
	"github.com/ozodbek-dev/go-storefront/app/db/fakers"
	"gorm.io/gorm"
)

const productsPerCategory = 10

func DBSeed(db *gorm.DB) error {
	for i := 0; i < 3; i++ {
		category := fakers.CategoryFaker()
		if err := db.Create(category).Error; err != nil {
			return err
		}
		for j := 0; j < productsPerCategory; j++ {
			if err := db.Create(fakers.ProductFaker(category)).Error; err != nil {
				return err
			}
		}
	}

	for i := 0; i < 5; i++ {
		if err := db.Create(fakers.UserFaker()).Error; err != nil {
			return err
		}
	}
	return nil
}
