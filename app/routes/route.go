package routes

import (
	"github.com/gorilla/mux"
	"github.com/ozodbek-dev/go-storefront/app/handlers"
	"github.com/ozodbek-dev/go-storefront/app/helpers"
	"github.com/ozodbek-dev/go-storefront/app/middlewares"
	"github.com/ozodbek-dev/go-storefront/app/repositories"
	"github.com/ozodbek-dev/go-storefront/app/services"
	"github.com/unrolled/render"
	"gorm.io/gorm"
)

func NewRouter(db *gorm.DB) *mux.Router {
	rnd := render.New()
	validate := helpers.NewValidator()

	productRepo := repositories.NewProductRepository(db)
	cartRepo := repositories.NewCartRepository(db)
	cartItemRepo := repositories.NewCartItemRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	orderItemRepo := repositories.NewOrderItemRepository(db)
	reviewRepo := repositories.NewReviewRepository(db)
	wishlistRepo := repositories.NewWishlistRepository(db)

	cartSvc := services.NewCartService(db, cartRepo, cartItemRepo, productRepo)
	checkoutSvc := services.NewCheckoutService(db, cartRepo, cartItemRepo, productRepo, orderRepo, orderItemRepo)
	orderSvc := services.NewOrderService(db, orderRepo, productRepo)
	catalogSvc := services.NewCatalogService(productRepo, reviewRepo)
	reviewSvc := services.NewReviewService(reviewRepo, productRepo, orderRepo)
	wishlistSvc := services.NewWishlistService(wishlistRepo, productRepo, cartSvc)

	productHandler := handlers.NewProductHandler(catalogSvc, rnd)
	cartHandler := handlers.NewCartHandler(cartSvc, rnd)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutSvc, rnd, validate)
	orderHandler := handlers.NewOrderHandler(orderSvc, rnd)
	reviewHandler := handlers.NewReviewHandler(reviewSvc, rnd)
	wishlistHandler := handlers.NewWishlistHandler(wishlistSvc, rnd)

	router := mux.NewRouter()
	router.Use(middlewares.RequestLogger)

	api := router.PathPrefix("/api").Subrouter()

	// Catalog reads are public.
	api.HandleFunc("/products", productHandler.ListProducts).Methods("GET")
	api.HandleFunc("/products/{id}", productHandler.GetProduct).Methods("GET")
	api.HandleFunc("/products/{id}/reviews", reviewHandler.ListReviews).Methods("GET")

	// Everything below needs the caller's identity.
	authed := api.NewRoute().Subrouter()
	authed.Use(middlewares.UserID)

	authed.HandleFunc("/cart", cartHandler.GetCart).Methods("GET")
	authed.HandleFunc("/cart/items", cartHandler.AddItem).Methods("POST")
	authed.HandleFunc("/cart/items/{id}", cartHandler.UpdateItem).Methods("PATCH")
	authed.HandleFunc("/cart/items/{id}", cartHandler.RemoveItem).Methods("DELETE")

	authed.HandleFunc("/orders", checkoutHandler.Checkout).Methods("POST")
	authed.HandleFunc("/orders", orderHandler.ListOrders).Methods("GET")
	authed.HandleFunc("/orders/{id}", orderHandler.GetOrder).Methods("GET")
	authed.HandleFunc("/orders/{id}/cancel", orderHandler.CancelOrder).Methods("POST")

	authed.HandleFunc("/products/{id}/reviews", reviewHandler.CreateReview).Methods("POST")
	authed.HandleFunc("/reviews/{id}", reviewHandler.UpdateReview).Methods("PUT")
	authed.HandleFunc("/reviews/{id}", reviewHandler.DeleteReview).Methods("DELETE")

	authed.HandleFunc("/wishlist", wishlistHandler.GetWishlist).Methods("GET")
	authed.HandleFunc("/wishlist/{product_id}", wishlistHandler.AddProduct).Methods("POST")
	authed.HandleFunc("/wishlist/{product_id}", wishlistHandler.RemoveProduct).Methods("DELETE")
	authed.HandleFunc("/wishlist/{product_id}/move-to-cart", wishlistHandler.MoveToCart).Methods("POST")

	return router
}
