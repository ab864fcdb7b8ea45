package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Color is a shared, independently lifecycled color definition.
// Variants reference it by name rather than by id.
type Color struct {
	ID            string    `gorm:"primarykey;size:36" json:"id"`
	Name          string    `gorm:"uniqueIndex;not null" json:"name"`
	DisplayName   string    `json:"display_name"`
	ColorCategory *int      `json:"color_category,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (Color) TableName() string {
	return "colors"
}

func (c *Color) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}
