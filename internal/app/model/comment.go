package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const DefaultCommentAuthor = "Anonymous"

// Comment is a customer review on a product. Immutable after creation.
type Comment struct {
	ID        string    `gorm:"primarykey;size:36" json:"id"`
	ProductID string    `gorm:"index;size:36;not null" json:"product_id"`
	Author    string    `gorm:"not null" json:"author"`
	Text      string    `gorm:"type:text" json:"text,omitempty"`
	Rating    int       `gorm:"not null" json:"rating"`
	CreatedAt time.Time `json:"created_at"`

	Product Product `gorm:"foreignKey:ProductID" json:"-"`
}

func (Comment) TableName() string {
	return "comments"
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.Author == "" {
		c.Author = DefaultCommentAuthor
	}
	return nil
}

// RatingSummary is the aggregate rating of a product. Average is nil
// when the product has no reviews; callers must handle that.
type RatingSummary struct {
	Average *float64 `json:"average"`
	Count   int64    `json:"count"`
}
