package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"ecommerce-api/internal/cache"
	"ecommerce-api/internal/handlers"
	"ecommerce-api/internal/repository"
	"ecommerce-api/internal/services"
)

// RegisterRoutes wires repositories, services and handlers onto the
// router. Everything is constructed here and passed down explicitly.
func RegisterRoutes(router *gin.Engine, db *mongo.Database) {
	productRepo := repository.NewProductRepository(db.Collection("products"))
	cartRepo := repository.NewCartRepository(db.Collection("carts"))
	orderRepo := repository.NewOrderRepository(db.Collection("orders"))

	productService := services.NewProductService(productRepo)
	cartService := services.NewCartService(cartRepo, productRepo)
	orderService := services.NewOrderService(orderRepo, cartRepo, productRepo)

	readCache := cache.New(5 * time.Minute)

	productHandler := handlers.NewProductHandler(productService, readCache)
	cartHandler := handlers.NewCartHandler(cartService)
	orderHandler := handlers.NewOrderHandler(orderService, readCache)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"message":   "Server is running!",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	api := router.Group("/api")
	{
		products := api.Group("/products")
		{
			products.GET("", productHandler.GetProducts)
			products.GET("/featured", productHandler.GetFeaturedProducts)
			products.GET("/search", productHandler.SearchProducts)
			products.GET("/category/:category", productHandler.GetProductsByCategory)
			products.GET("/:id", productHandler.GetProduct)
			products.POST("", productHandler.CreateProduct)
			products.PUT("/:id", productHandler.UpdateProduct)
			products.DELETE("/:id", productHandler.DeleteProduct)
		}

		cart := api.Group("/cart")
		{
			cart.GET("", cartHandler.GetCart)
			cart.POST("/add", cartHandler.AddToCart)
			cart.PUT("/item/:productId", cartHandler.UpdateCartItem)
			cart.DELETE("/item/:productId", cartHandler.RemoveFromCart)
			cart.DELETE("", cartHandler.ClearCart)
		}

		orders := api.Group("/orders")
		{
			orders.POST("", orderHandler.CreateOrder)
			orders.POST("/direct", orderHandler.CreateDirectOrder)
			orders.GET("", orderHandler.GetOrders)
			orders.GET("/email/:email", orderHandler.GetOrdersByEmail)
			orders.GET("/number/:orderNumber", orderHandler.GetOrderByNumber)
			orders.GET("/:id", orderHandler.GetOrder)
			orders.PATCH("/:id/status", orderHandler.UpdateOrderStatus)
		}
	}
}
