package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Monil7828/Ecommerce/models"
)

type SizeInput struct {
	ID    string `json:"id" binding:"required"`
	Label string `json:"label" binding:"required"`
}

type ProductInput struct {
	Name         string      `json:"name" binding:"required"`
	Description  string      `json:"description" binding:"required"`
	Price        float64     `json:"price" binding:"required,gt=0"`
	Category     string      `json:"category" binding:"required"`
	Sizes        []SizeInput `json:"sizes" binding:"required,dive"`
	DeliveryInfo string      `json:"delivery_info" binding:"required"`
	OnSale       string      `json:"on_sale" binding:"required,oneof=yes no"`
	PriceDrop    float64     `json:"price_drop" binding:"min=0,max=100"`
	ImageURL     string      `json:"image_url" binding:"required,url"`
}

// CreateProduct creates a new catalog product. Admin only.
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		// A discount only means something while the product is on sale.
		priceDrop := input.PriceDrop
		if input.OnSale != "yes" {
			priceDrop = 0
		}

		sizes := make([]models.ProductSize, 0, len(input.Sizes))
		for _, s := range input.Sizes {
			sizes = append(sizes, models.ProductSize{SizeID: s.ID, Label: s.Label})
		}

		product := models.Product{
			Name:         input.Name,
			Description:  input.Description,
			Price:        input.Price,
			Category:     input.Category,
			Sizes:        sizes,
			DeliveryInfo: input.DeliveryInfo,
			OnSale:       input.OnSale,
			PriceDrop:    priceDrop,
			ImageURL:     input.ImageURL,
		}

		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}

		c.JSON(http.StatusCreated, product)
	}
}
