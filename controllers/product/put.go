package productcontroller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Monil7828/Ecommerce/models"
)

// UpdateProduct replaces the mutable attributes of an existing product.
// Admin only. The size list is replaced wholesale.
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID := c.Param("id")

		var product models.Product
		if err := db.Preload("Sizes").First(&product, "id = ?", productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
			return
		}

		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		priceDrop := input.PriceDrop
		if input.OnSale != "yes" {
			priceDrop = 0
		}

		sizes := make([]models.ProductSize, 0, len(input.Sizes))
		for _, s := range input.Sizes {
			sizes = append(sizes, models.ProductSize{ProductID: product.ID, SizeID: s.ID, Label: s.Label})
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("product_id = ?", product.ID).Delete(&models.ProductSize{}).Error; err != nil {
				return err
			}

			product.Name = input.Name
			product.Description = input.Description
			product.Price = input.Price
			product.Category = input.Category
			product.Sizes = sizes
			product.DeliveryInfo = input.DeliveryInfo
			product.OnSale = input.OnSale
			product.PriceDrop = priceDrop
			product.ImageURL = input.ImageURL

			return tx.Save(&product).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}

		c.JSON(http.StatusOK, product)
	}
}
