package repository

import (
	"github.com/princesss/catalog-backend/internal/app/model"
	"gorm.io/gorm"
)

type ImageRepository interface {
	FindByID(id string) (*model.VariantImage, error)
	FindByVariantID(variantID string) ([]model.VariantImage, error)
}

type imageRepository struct {
	db *gorm.DB
}

func NewImageRepository(db *gorm.DB) ImageRepository {
	return &imageRepository{db: db}
}

func (r *imageRepository) FindByID(id string) (*model.VariantImage, error) {
	var image model.VariantImage
	if err := r.db.First(&image, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &image, nil
}

// FindByVariantID returns the variant's images in display order
func (r *imageRepository) FindByVariantID(variantID string) ([]model.VariantImage, error) {
	var images []model.VariantImage
	err := r.db.
		Where("variant_id = ?", variantID).
		Order("sort_order ASC").
		Find(&images).Error
	if err != nil {
		return nil, err
	}
	return images, nil
}
