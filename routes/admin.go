package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	orderControllers "github.com/Monil7828/Ecommerce/controllers/order"
	productcontroller "github.com/Monil7828/Ecommerce/controllers/product"
	"github.com/Monil7828/Ecommerce/middleware"
)

// SetupAdminRoutes registers all "/admin/*" endpoints. The role guard runs
// after token validation, so every handler in here sees a verified admin.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateToken, middleware.RequireAdmin)
	{
		// ─────────── Product Management ───────────
		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.POST("", productcontroller.CreateProduct(db))
			productAdmin.PUT("/:id", productcontroller.UpdateProduct(db))
			productAdmin.DELETE("/:id", productcontroller.DeleteProduct(db))
			productAdmin.GET("/export-excel", productcontroller.ExportProductsToExcel(db))
		}

		// ─────────── Order Management ───────────
		orderAdmin := adminGroup.Group("/orders")
		{
			orderAdmin.GET("", orderControllers.GetAllOrders(db))
			orderAdmin.GET("/ws", orderControllers.OrderWebSocketHandler)
			orderAdmin.GET("/:id", orderControllers.GetAdminOrderByID(db))
			orderAdmin.PUT("/:id/status", orderControllers.UpdateOrderStatus(db))
		}
	}
}
