package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	addressControllers "github.com/Monil7828/Ecommerce/controllers/address"
	cartControllers "github.com/Monil7828/Ecommerce/controllers/cart"
	orderControllers "github.com/Monil7828/Ecommerce/controllers/order"
	productcontroller "github.com/Monil7828/Ecommerce/controllers/product"
	"github.com/Monil7828/Ecommerce/middleware"
)

// SetupUserRoutes registers the public catalog endpoints and all
// JWT-protected customer endpoints.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB) {
	// ──────────────── Browse Products (public) ────────────────
	products := r.Group("/products")
	{
		products.GET("", productcontroller.GetProducts(db))
		products.GET("/sales", productcontroller.GetSaleProducts(db))
		products.GET("/:id", productcontroller.GetProductByID(db))
	}

	protected := r.Group("/")
	protected.Use(middleware.ValidateToken)
	{
		// ──────────────── Shopping Cart ────────────────
		cartGroup := protected.Group("/cart")
		{
			cartGroup.GET("", cartControllers.GetCart(db))
			cartGroup.POST("", cartControllers.AddToCart(db))
			cartGroup.DELETE("/:id", cartControllers.RemoveFromCart(db))
		}

		// ──────────────── Address Book ────────────────
		addressGroup := protected.Group("/addresses")
		{
			addressGroup.GET("", addressControllers.GetAddresses(db))
			addressGroup.POST("", addressControllers.CreateAddress(db))
			addressGroup.PUT("/:id", addressControllers.UpdateAddress(db))
			addressGroup.DELETE("/:id", addressControllers.DeleteAddress(db))
		}

		// ──────────────── Checkout & Orders ────────────────
		protected.POST("/checkout/session", orderControllers.CreateCheckoutSession(db))
		protected.POST("/orders", orderControllers.FinalizeOrder(db))
		protected.GET("/orders", orderControllers.GetUserOrders(db))
		protected.GET("/orders/:id", orderControllers.GetOrderByID(db))
	}
}
