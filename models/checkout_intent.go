package models

import "time"

// CheckoutIntent is the durable record that lets a checkout survive the
// redirect to the external payment page: the chosen shipping address plus the
// payment session it was sent to. One intent per user; starting a new
// checkout replaces the previous one.
type CheckoutIntent struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	UserID          uint            `gorm:"uniqueIndex;not null" json:"user_id"`
	ShippingAddress ShippingAddress `gorm:"embedded;embeddedPrefix:ship_" json:"shipping_address"`
	SessionID       string          `gorm:"not null" json:"session_id"`
	CreatedAt       time.Time       `json:"created_at"`
}
