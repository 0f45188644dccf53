package cartControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Monil7828/Ecommerce/middleware"
	"github.com/Monil7828/Ecommerce/models"
)

type AddToCartInput struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// CartLineView is a cart line with the sale-adjusted display price attached.
// The adjustment happens here at read time; the stored product price is
// never modified.
type CartLineView struct {
	models.CartLine
	FinalPrice float64 `json:"final_price"`
}

// GET /cart
func GetCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var lines []models.CartLine
		if err := db.Preload("Product").Preload("Product.Sizes").
			Where("user_id = ?", userID).
			Order("created_at ASC").
			Find(&lines).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		views := make([]CartLineView, 0, len(lines))
		for _, line := range lines {
			views = append(views, CartLineView{
				CartLine:   line,
				FinalPrice: line.Product.FinalPrice(),
			})
		}

		c.JSON(http.StatusOK, views)
	}
}

// POST /cart
func AddToCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var input AddToCartInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var product models.Product
		if err := db.First(&product, "id = ?", input.ProductID).Error; err != nil {
			status := http.StatusInternalServerError
			errMsg := "Failed to validate product"
			if errors.Is(err, gorm.ErrRecordNotFound) {
				status = http.StatusBadRequest
				errMsg = "Product does not exist"
			}
			c.JSON(status, gin.H{"error": errMsg})
			return
		}

		// No existence pre-check: the composite unique index on
		// (user_id, product_id) decides. Concurrent adds for the same pair
		// race on the constraint and the loser gets the conflict outcome.
		line := models.CartLine{
			UserID:    userID,
			ProductID: product.ID,
			Quantity:  1,
		}
		if err := db.Create(&line).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				c.JSON(http.StatusConflict, gin.H{"error": "Product is already in the cart"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
			return
		}

		line.Product = product
		c.JSON(http.StatusCreated, line)
	}
}

// DELETE /cart/:id
func RemoveFromCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		lineID := c.Param("id")

		result := db.Where("id = ? AND user_id = ?", lineID, userID).Delete(&models.CartLine{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete cart item"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Cart item deleted"})
	}
}
