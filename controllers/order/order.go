package orderControllers

import (
	"errors"
	"log"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	stripeControllers "github.com/Monil7828/Ecommerce/controllers/stripe"
	"github.com/Monil7828/Ecommerce/middleware"
	"github.com/Monil7828/Ecommerce/models"
)

// -------- Request Structs --------

type CheckoutSessionRequest struct {
	AddressID uint `json:"address_id" binding:"required"`
}

type UpdateOrderStatusRequest struct {
	IsProcessing *bool `json:"is_processing" binding:"required"`
}

// -------- Helpers --------

// Generate unique order reference, e.g. 20250908130500-<uuid4>
func generateOrderRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// -------- Checkout Orchestration --------

// CreateCheckoutSession starts a checkout attempt: it turns the caller's cart
// into payment line items, opens a session with the payment provider and
// persists the checkout intent (address snapshot + session id) so the flow
// can be resumed after the external redirect.
//
// POST /checkout/session
func CreateCheckoutSession(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var req CheckoutSessionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var address models.Address
		if err := db.Where("id = ? AND user_id = ?", req.AddressID, userID).
			First(&address).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Address not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch address"})
			return
		}

		var lines []models.CartLine
		if err := db.Preload("Product").Where("user_id = ?", userID).
			Order("created_at ASC").Find(&lines).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		if len(lines) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
			return
		}

		items := make([]stripeControllers.LineItem, 0, len(lines))
		for _, line := range lines {
			items = append(items, stripeControllers.LineItem{
				Name:       line.Product.Name,
				ImageURL:   line.Product.ImageURL,
				UnitAmount: int64(math.Round(line.Product.FinalPrice() * 100)),
				Quantity:   1,
			})
		}

		session, err := stripeControllers.CreateCheckoutSession(items)
		if err != nil {
			// Recoverable: the intent is untouched, the caller can retry.
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}

		// One intent per user; starting a new checkout replaces the old one.
		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("user_id = ?", userID).
				Delete(&models.CheckoutIntent{}).Error; err != nil {
				return err
			}
			intent := models.CheckoutIntent{
				UserID:          userID,
				ShippingAddress: address.Snapshot(),
				SessionID:       session.ID,
			}
			return tx.Create(&intent).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save checkout intent"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"session_id":  session.ID,
			"payment_url": session.URL,
		})
	}
}

// FinalizeOrder completes a checkout attempt after the caller returns from
// the payment redirect. The session is verified against the payment provider
// server-side; the redirect query string alone is never trusted. On success
// the order is persisted and the cart and intent are cleared in the same
// transaction.
//
// POST /orders
func FinalizeOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var intent models.CheckoutIntent
		if err := db.Where("user_id = ?", userID).First(&intent).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "No checkout in progress"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load checkout intent"})
			return
		}

		session, err := stripeControllers.RetrieveCheckoutSession(intent.SessionID)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		if session.PaymentStatus != "paid" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Payment has not been completed"})
			return
		}

		var lines []models.CartLine
		if err := db.Preload("Product").Where("user_id = ?", userID).
			Order("created_at ASC").Find(&lines).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		if len(lines) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
			return
		}

		// Total is the sum of sale-adjusted prices at this moment. It is
		// frozen on the order; later product price changes never touch it.
		var total float64
		orderItems := make([]models.OrderItem, 0, len(lines))
		for _, line := range lines {
			total += line.Product.FinalPrice()
			orderItems = append(orderItems, models.OrderItem{
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
			})
		}

		order := models.Order{
			OrderRef:        generateOrderRef(),
			UserID:          userID,
			Items:           orderItems,
			ShippingAddress: intent.ShippingAddress,
			PaymentMethod:   "Stripe",
			TotalPrice:      round2(total),
			IsPaid:          true,
			PaidAt:          time.Now(),
			IsProcessing:    true,
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&order).Error; err != nil {
				return err
			}
			if err := tx.Where("user_id = ?", userID).
				Delete(&models.CartLine{}).Error; err != nil {
				return err
			}
			return tx.Delete(&intent).Error
		})
		if err != nil {
			// Payment was already captured upstream; the intent is kept so
			// the failure is visible and the attempt can be retried.
			log.Println("order creation failed after captured payment:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
			return
		}

		broadcastNewOrder(order)

		c.JSON(http.StatusCreated, order)
	}
}

// -------- Order Queries --------

// GET /orders
func GetUserOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var orders []models.Order
		if err := db.
			Where("user_id = ?", userID).
			Preload("Items").
			Preload("Items.Product").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}

		c.JSON(http.StatusOK, orders)
	}
}

// GET /orders/:id
func GetOrderByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		orderID := c.Param("id")

		var order models.Order
		// Scoped to the caller: someone else's order id looks the same as a
		// missing one.
		if err := db.
			Where("id = ? AND user_id = ?", orderID, userID).
			Preload("Items").
			Preload("Items.Product").
			First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			return
		}

		c.JSON(http.StatusOK, order)
	}
}

// -------- Admin --------

// GET /admin/orders
func GetAllOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.
			Preload("User").
			Preload("Items").
			Preload("Items.Product").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}

		c.JSON(http.StatusOK, orders)
	}
}

// GET /admin/orders/:id
func GetAdminOrderByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("id")

		var order models.Order
		if err := db.
			Preload("User").
			Preload("Items").
			Preload("Items.Product").
			First(&order, "id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			return
		}

		c.JSON(http.StatusOK, order)
	}
}

// UpdateOrderStatus marks an order delivered. The processing flag moves one
// way only: a delivered order can never be pushed back to processing.
//
// PUT /admin/orders/:id/status
func UpdateOrderStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("id")

		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if *req.IsProcessing {
			c.JSON(http.StatusConflict, gin.H{"error": "An order cannot be moved back to processing"})
			return
		}

		var order models.Order
		if err := db.First(&order, "id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			return
		}

		if err := db.Model(&order).Update("is_processing", false).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Order marked as delivered"})
	}
}
