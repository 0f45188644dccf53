package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry-point that wires up the public, customer
// and admin route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	// Public auth routes (no middleware)
	SetupAuthRoutes(r, db)

	// Customer routes (JWT-protected) + public catalog
	SetupUserRoutes(r, db)

	// Admin routes (JWT + role guard)
	SetupAdminRoutes(r, db)
}
