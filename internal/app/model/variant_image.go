package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VariantImage is one entry of a variant's ordered image list.
// URL holds the object-store key; SortOrder values need not be
// contiguous but define a strict display order among siblings.
type VariantImage struct {
	ID        string `gorm:"primarykey;size:36" json:"id"`
	VariantID string `gorm:"index;size:36;not null" json:"variant_id"`
	URL       string `gorm:"not null" json:"url"`
	SortOrder int    `gorm:"not null" json:"sort_order"`

	Variant Variant `gorm:"foreignKey:VariantID" json:"-"`
}

func (VariantImage) TableName() string {
	return "variant_images"
}

func (i *VariantImage) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	return nil
}
