package models

import "time"

type Order struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	OrderRef        string          `gorm:"uniqueIndex;not null" json:"order_ref"`
	UserID          uint            `gorm:"index;not null" json:"user_id"`
	User            User            `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	ShippingAddress ShippingAddress `gorm:"embedded;embeddedPrefix:ship_" json:"shipping_address"`
	PaymentMethod   string          `json:"payment_method"`
	TotalPrice      float64         `json:"total_price"` // fixed at creation, never recomputed
	IsPaid          bool            `json:"is_paid"`
	PaidAt          time.Time       `json:"paid_at"`
	IsProcessing    bool            `json:"is_processing"` // true = awaiting fulfilment, false = delivered
	CreatedAt       time.Time       `json:"created_at"`
}

// OrderItem keeps only the product reference and quantity. Prices are
// resolved from the live Product at read time; TotalPrice on the Order is
// the value that is frozen at purchase.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	OrderID   uint    `gorm:"index" json:"order_id"`
	ProductID uint    `gorm:"not null" json:"product_id"`
	Product   Product `gorm:"foreignKey:ProductID" json:"product"`
	Quantity  int     `gorm:"not null;default:1" json:"quantity"`
}
