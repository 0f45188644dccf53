package models

import (
	"math"
	"time"
)

type Product struct {
	ID           uint          `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string        `gorm:"not null" json:"name"`
	Description  string        `json:"description"`
	Price        float64       `gorm:"not null" json:"price"` // must be > 0
	Category     string        `gorm:"index" json:"category"`
	Sizes        []ProductSize `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"sizes"`
	DeliveryInfo string        `json:"delivery_info"`
	OnSale       string        `gorm:"type:VARCHAR(3);default:'no'" json:"on_sale"` // "yes" | "no"
	PriceDrop    float64       `json:"price_drop"`                                  // percentage, 0-100, only meaningful when OnSale == "yes"
	ImageURL     string        `json:"image_url"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// ProductSize is one selectable size label for a product (e.g. "S", "M").
type ProductSize struct {
	ID        uint   `gorm:"primaryKey" json:"-"`
	ProductID uint   `gorm:"index" json:"-"`
	SizeID    string `gorm:"not null" json:"id"`
	Label     string `gorm:"not null" json:"label"`
}

// FinalPrice returns the sale-adjusted display price, rounded to 2 decimal
// places. The discount is applied at read time and never persisted; a product
// that is not on sale keeps its stored price regardless of PriceDrop.
func (p Product) FinalPrice() float64 {
	if p.OnSale != "yes" {
		return p.Price
	}
	discounted := p.Price - p.Price*(p.PriceDrop/100)
	return math.Round(discounted*100) / 100
}
