package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductType int

const (
	TypeNatural   ProductType = 1
	TypeSynthetic ProductType = 2
)

type ProductCategory int

const (
	CategoryWigs    ProductCategory = 1
	CategoryTails   ProductCategory = 2
	CategoryToppers ProductCategory = 3
)

type Product struct {
	ID               string          `gorm:"primarykey;size:36" json:"id"`
	Name             string          `gorm:"uniqueIndex;not null" json:"name"`
	DisplayName      string          `json:"display_name"`
	Description      string          `gorm:"type:text" json:"description"`
	ShortDescription string          `json:"short_description"`
	Type             ProductType     `gorm:"not null" json:"type"`
	Length           int             `json:"length"` // hair length in cm
	BasePrice        float64         `json:"base_price"`
	BasePromoPrice   *float64        `json:"base_promo_price,omitempty"`
	CategoryID       ProductCategory `gorm:"index;not null" json:"category_id"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`

	// Relationships
	Variants []Variant `gorm:"foreignKey:ProductID" json:"variants,omitempty"`

	// MinEffectivePrice is populated by the catalog query; never persisted.
	MinEffectivePrice float64 `gorm:"->;-:migration" json:"-"`
}

func (Product) TableName() string {
	return "products"
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}
