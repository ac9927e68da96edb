package repositories_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ozodbek-dev/go-storefront/app/models"
	"github.com/ozodbek-dev/go-storefront/app/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertAdd_MergesInSQL(t *testing.T) {
	db, mock := newRepoDB(t)
	repo := repositories.NewCartItemRepository(db)

	// The merge is a single statement: the database adds the incoming
	// quantity onto the existing line, so no read-modify-write window exists.
	mock.ExpectExec("INSERT INTO `cart_items` .+ ON DUPLICATE KEY UPDATE .*`quantity`=quantity \\+ \\?").
		WillReturnResult(sqlmock.NewResult(0, 1))

	item := &models.CartItem{CartID: "cart-1", ProductID: "product-1", Quantity: 2}
	err := repo.UpsertAdd(context.Background(), db, item)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDForUpdate_UsesRowLock(t *testing.T) {
	db, mock := newRepoDB(t)
	repo := repositories.NewCartItemRepository(db)

	rows := sqlmock.NewRows([]string{"id", "cart_id", "product_id", "quantity"}).
		AddRow("item-1", "cart-1", "product-1", 3)
	mock.ExpectQuery("SELECT .+ FROM `cart_items` WHERE id = \\?.+FOR UPDATE").
		WithArgs("item-1", 1).
		WillReturnRows(rows)

	item, err := repo.GetByIDForUpdate(context.Background(), db, "item-1")
	require.NoError(t, err)
	assert.Equal(t, "cart-1", item.CartID)
	assert.Equal(t, 3, item.Quantity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByCartAndProductForUpdate_UsesRowLock(t *testing.T) {
	db, mock := newRepoDB(t)
	repo := repositories.NewCartItemRepository(db)

	rows := sqlmock.NewRows([]string{"id", "cart_id", "product_id", "quantity"}).
		AddRow("item-1", "cart-1", "product-1", 5)
	mock.ExpectQuery("SELECT .+ FROM `cart_items` WHERE cart_id = \\? AND product_id = \\?.+FOR UPDATE").
		WithArgs("cart-1", "product-1", 1).
		WillReturnRows(rows)

	item, err := repo.GetByCartAndProductForUpdate(context.Background(), db, "cart-1", "product-1")
	require.NoError(t, err)
	assert.Equal(t, 5, item.Quantity)
	assert.NoError(t, mock.ExpectationsWereMet())
}
