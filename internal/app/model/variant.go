package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Variant is a purchasable SKU of a product: one color/price/stock
// combination with its own ordered image list.
type Variant struct {
	ID            string    `gorm:"primarykey;size:36" json:"id"`
	ProductID     string    `gorm:"index;size:36;not null" json:"product_id"`
	SKU           string    `json:"sku,omitempty"`
	Price         float64   `gorm:"not null" json:"price"`
	PromoPrice    *float64  `json:"promo_price,omitempty"`
	Color         string    `gorm:"index" json:"color"` // Color.name, not Color.id
	StockQuantity int       `gorm:"default:0" json:"stock_quantity"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Relationships
	Product Product        `gorm:"foreignKey:ProductID" json:"-"`
	Images  []VariantImage `gorm:"foreignKey:VariantID" json:"images"`

	// Derived fields, recomputed on every read and never persisted.
	Availability     bool   `gorm:"-" json:"availability"`
	ColorDisplayName string `gorm:"->;-:migration" json:"color_display_name,omitempty"`
}

func (Variant) TableName() string {
	return "variants"
}

func (v *Variant) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	return nil
}

// AfterFind recomputes availability from stock on every read.
func (v *Variant) AfterFind(tx *gorm.DB) error {
	v.Refresh()
	return nil
}

// Refresh recomputes the derived availability flag.
func (v *Variant) Refresh() {
	v.Availability = v.StockQuantity > 0
}

// EffectivePrice returns the promo price when set, else the price.
func (v *Variant) EffectivePrice() float64 {
	if v.PromoPrice != nil {
		return *v.PromoPrice
	}
	return v.Price
}
