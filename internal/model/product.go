package model

import (
	"time"

	"github.com/google/uuid"
)

// Product is a stocked item. Stock is a float because tingi (per-piece)
// sales deduct fractional pack-equivalents: selling 3 pieces of a 12-piece
// pack removes 0.25 from stock.
type Product struct {
	BaseModel
	Name        string     `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Barcode     string     `gorm:"type:varchar(50);index" json:"barcode"`
	CategoryID  *uuid.UUID `gorm:"type:uuid;index" json:"category_id"`
	Category    *Category  `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Brand       string     `gorm:"type:varchar(100)" json:"brand"`
	Description string     `gorm:"type:text" json:"description"`

	UnitPrice float64 `gorm:"not null;default:0" json:"unit_price" validate:"gte=0"`
	CostPrice float64 `gorm:"default:0" json:"cost_price" validate:"gte=0"`

	// Tingi (per piece) pricing
	TingiPrice   float64 `gorm:"default:0" json:"tingi_price" validate:"gte=0"`
	TingiPerPack float64 `gorm:"default:1" json:"tingi_per_pack" validate:"gte=1"`
	TingiUnit    string  `gorm:"type:varchar(20);default:'piraso'" json:"tingi_unit"`

	Stock        float64    `gorm:"not null;default:0" json:"stock" validate:"gte=0"`
	ReorderLevel float64    `gorm:"default:5" json:"reorder_level" validate:"gte=0"`
	MaxStock     float64    `gorm:"default:100" json:"max_stock"` // Informational only, never enforced
	Unit         string     `gorm:"type:varchar(20);default:'pcs'" json:"unit"`
	ExpiryDate   *time.Time `json:"expiry_date,omitempty"`
	IsActive     bool       `gorm:"default:true" json:"is_active"`
}

// IsLowStock reports whether the product is at or below its reorder level
func (p *Product) IsLowStock() bool {
	return p.Stock <= p.ReorderLevel
}

// IsNearExpiry reports whether the product expires within 30 days
func (p *Product) IsNearExpiry() bool {
	if p.ExpiryDate == nil {
		return false
	}
	return !p.ExpiryDate.After(time.Now().AddDate(0, 0, 30))
}

// IsExpired reports whether the product is past its expiry date
func (p *Product) IsExpired() bool {
	if p.ExpiryDate == nil {
		return false
	}
	return p.ExpiryDate.Before(time.Now())
}

// ProfitMargin returns the margin percentage over cost, 0 when cost is unset
func (p *Product) ProfitMargin() float64 {
	if p.CostPrice == 0 {
		return 0
	}
	return (p.UnitPrice - p.CostPrice) / p.CostPrice * 100
}

// PackEquivalent converts a sold quantity into the stock units to deduct.
// Tingi quantities are divided by TingiPerPack; whole-pack sales deduct 1:1.
func (p *Product) PackEquivalent(quantity float64, isTingi bool) float64 {
	if !isTingi {
		return quantity
	}
	perPack := p.TingiPerPack
	if perPack <= 0 {
		perPack = 1
	}
	return quantity / perPack
}

// StockAdjustmentRequest is the payload for PUT /products/:id/adjust-stock
type StockAdjustmentRequest struct {
	Adjustment float64 `json:"adjustment" validate:"required"`
	Reason     string  `json:"reason"`
}
