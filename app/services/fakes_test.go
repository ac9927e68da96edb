package services_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ozodbek-dev/go-storefront/app/models"
	"github.com/ozodbek-dev/go-storefront/app/repositories"
	"github.com/stretchr/testify/require"
	mysqldriver "gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// storeState is shared in-memory backing for the fake repositories, so a
// cart repo and a cart-item repo in the same test see the same lines. The
// mutex keeps the fakes usable from concurrent test goroutines.
type storeState struct {
	mu          sync.Mutex
	products    map[string]*models.Product
	carts       map[string]*models.Cart
	cartsByUser map[string]string
	items       map[string]*models.CartItem
	orders      []*models.Order
	orderItems  []models.OrderItem
	seq         int
}

func newStoreState() *storeState {
	return &storeState{
		products:    make(map[string]*models.Product),
		carts:       make(map[string]*models.Cart),
		cartsByUser: make(map[string]string),
		items:       make(map[string]*models.CartItem),
	}
}

func (s *storeState) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s-%d", prefix, s.seq)
}

func (s *storeState) addProduct(p models.Product) *models.Product {
	if p.ID == "" {
		p.ID = s.nextID("product")
	}
	s.products[p.ID] = &p
	return &p
}

// itemsForCart expects s.mu to be held by the caller.
func (s *storeState) itemsForCart(cartID string) []models.CartItem {
	var out []models.CartItem
	for _, item := range s.items {
		if item.CartID == cartID {
			copied := *item
			if p, ok := s.products[item.ProductID]; ok {
				copied.Product = p
			}
			out = append(out, copied)
		}
	}
	return out
}

// cartWithItems expects s.mu to be held by the caller.
func (s *storeState) cartWithItems(cartID string) *models.Cart {
	cart, ok := s.carts[cartID]
	if !ok {
		return nil
	}
	copied := *cart
	copied.CartItems = s.itemsForCart(cartID)
	return &copied
}

type fakeProductRepo struct {
	s *storeState

	// failDecrementFor injects a decrement failure for one product, to
	// exercise the rollback path of multi-line checkouts.
	failDecrementFor string
}

var _ repositories.ProductRepositoryImpl = (*fakeProductRepo)(nil)

func (f *fakeProductRepo) GetProducts(ctx context.Context, filter repositories.ProductFilter) ([]models.Product, int64, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []models.Product
	for _, p := range f.s.products {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (f *fakeProductRepo) GetByID(ctx context.Context, id string) (*models.Product, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	p, ok := f.s.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (f *fakeProductRepo) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, p := range f.s.products {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeProductRepo) GetRelated(ctx context.Context, product *models.Product, limit int) ([]models.Product, error) {
	return nil, nil
}

func (f *fakeProductRepo) LockForUpdate(ctx context.Context, tx *gorm.DB, id string) (*models.Product, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeProductRepo) DecrementStock(ctx context.Context, tx *gorm.DB, id string, qty int) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.failDecrementFor == id {
		return fmt.Errorf("induced decrement failure for %s", id)
	}
	p, ok := f.s.products[id]
	if !ok || p.StockQuantity < qty {
		return fmt.Errorf("stock changed concurrently")
	}
	p.StockQuantity -= qty
	return nil
}

func (f *fakeProductRepo) IncrementStock(ctx context.Context, tx *gorm.DB, id string, qty int) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	p, ok := f.s.products[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.StockQuantity += qty
	return nil
}

type fakeCartRepo struct {
	s *storeState
}

var _ repositories.CartRepositoryImpl = (*fakeCartRepo)(nil)

func (f *fakeCartRepo) GetOrCreateCartByUserID(ctx context.Context, userID string) (*models.Cart, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if id, ok := f.s.cartsByUser[userID]; ok {
		return f.s.carts[id], nil
	}
	cart := &models.Cart{ID: f.s.nextID("cart"), UserID: userID}
	f.s.carts[cart.ID] = cart
	f.s.cartsByUser[userID] = cart.ID
	return cart, nil
}

func (f *fakeCartRepo) GetCartWithItems(ctx context.Context, cartID string) (*models.Cart, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	return f.s.cartWithItems(cartID), nil
}

func (f *fakeCartRepo) GetCartWithItemsForUpdate(ctx context.Context, tx *gorm.DB, userID string) (*models.Cart, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	id, ok := f.s.cartsByUser[userID]
	if !ok {
		return nil, nil
	}
	return f.s.cartWithItems(id), nil
}

func (f *fakeCartRepo) DeleteCart(ctx context.Context, cartID string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	delete(f.s.carts, cartID)
	return nil
}

type fakeCartItemRepo struct {
	s *storeState
}

var _ repositories.CartItemRepositoryImpl = (*fakeCartItemRepo)(nil)

// UpsertAdd mirrors the atomic merge: the increment happens under the store
// lock, never as a read-then-write in the caller.
func (f *fakeCartItemRepo) UpsertAdd(ctx context.Context, tx *gorm.DB, item *models.CartItem) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, existing := range f.s.items {
		if existing.CartID == item.CartID && existing.ProductID == item.ProductID {
			existing.Quantity += item.Quantity
			return nil
		}
	}
	if item.ID == "" {
		item.ID = f.s.nextID("item")
	}
	copied := *item
	f.s.items[item.ID] = &copied
	return nil
}

func (f *fakeCartItemRepo) Update(ctx context.Context, db *gorm.DB, item *models.CartItem) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	copied := *item
	f.s.items[item.ID] = &copied
	return nil
}

func (f *fakeCartItemRepo) Delete(ctx context.Context, db *gorm.DB, itemID string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	delete(f.s.items, itemID)
	return nil
}

func (f *fakeCartItemRepo) GetByID(ctx context.Context, itemID string) (*models.CartItem, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	item, ok := f.s.items[itemID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *item
	if p, ok := f.s.products[item.ProductID]; ok {
		copied.Product = p
	}
	return &copied, nil
}

func (f *fakeCartItemRepo) GetByIDForUpdate(ctx context.Context, tx *gorm.DB, itemID string) (*models.CartItem, error) {
	return f.GetByID(ctx, itemID)
}

func (f *fakeCartItemRepo) GetByCartAndProductForUpdate(ctx context.Context, tx *gorm.DB, cartID, productID string) (*models.CartItem, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, item := range f.s.items {
		if item.CartID == cartID && item.ProductID == productID {
			copied := *item
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCartItemRepo) ClearCartItems(ctx context.Context, tx *gorm.DB, cartID string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for id, item := range f.s.items {
		if item.CartID == cartID {
			delete(f.s.items, id)
		}
	}
	return nil
}

type fakeOrderRepo struct {
	s         *storeState
	purchased map[string]bool
}

var _ repositories.OrderRepository = (*fakeOrderRepo)(nil)

func (f *fakeOrderRepo) Create(ctx context.Context, tx *gorm.DB, order *models.Order) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if order.ID == "" {
		order.ID = f.s.nextID("order")
	}
	f.s.orders = append(f.s.orders, order)
	return nil
}

func (f *fakeOrderRepo) GetByIDForUser(ctx context.Context, db *gorm.DB, orderID, userID string) (*models.Order, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, o := range f.s.orders {
		if o.ID == orderID && o.UserID == userID {
			copied := *o
			copied.OrderItems = nil
			for _, item := range f.s.orderItems {
				if item.OrderID == o.ID {
					copied.OrderItems = append(copied.OrderItems, item)
				}
			}
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeOrderRepo) FindByUserID(ctx context.Context, userID string) ([]models.Order, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []models.Order
	for _, o := range f.s.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) UpdateStatus(ctx context.Context, db *gorm.DB, orderID string, status models.OrderStatus) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, o := range f.s.orders {
		if o.ID == orderID {
			o.Status = status
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeOrderRepo) UserPurchasedProduct(ctx context.Context, userID, productID string) (bool, error) {
	return f.purchased[userID+"|"+productID], nil
}

type fakeOrderItemRepo struct {
	s *storeState
}

var _ repositories.OrderItemRepository = (*fakeOrderItemRepo)(nil)

func (f *fakeOrderItemRepo) BulkCreate(ctx context.Context, tx *gorm.DB, items []models.OrderItem) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for i := range items {
		if items[i].ID == "" {
			items[i].ID = f.s.nextID("order-item")
		}
		f.s.orderItems = append(f.s.orderItems, items[i])
	}
	return nil
}

// newTestDB opens gorm over sqlmock so transactional services can Begin,
// Commit and Rollback against verifiable expectations while the repositories
// stay in memory.
func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(mysqldriver.New(mysqldriver.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)
	return db, mock
}

// expectCommits queues n begin/commit pairs, one per expected successful
// cart or checkout transaction.
func expectCommits(mock sqlmock.Sqlmock, n int) {
	for i := 0; i < n; i++ {
		mock.ExpectBegin()
		mock.ExpectCommit()
	}
}
