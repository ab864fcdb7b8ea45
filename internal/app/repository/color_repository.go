package repository

import (
	"github.com/princesss/catalog-backend/internal/app/model"
	"gorm.io/gorm"
)

type ColorRepository interface {
	Create(color *model.Color) error
	FindAll() ([]model.Color, error)
	FindByID(id string) (*model.Color, error)
	FindByName(name string) (*model.Color, error)
	Delete(id string) error
}

type colorRepository struct {
	db *gorm.DB
}

func NewColorRepository(db *gorm.DB) ColorRepository {
	return &colorRepository{db: db}
}

func (r *colorRepository) Create(color *model.Color) error {
	return r.db.Create(color).Error
}

func (r *colorRepository) FindAll() ([]model.Color, error) {
	var colors []model.Color
	if err := r.db.Order("name ASC").Find(&colors).Error; err != nil {
		return nil, err
	}
	return colors, nil
}

func (r *colorRepository) FindByID(id string) (*model.Color, error) {
	var color model.Color
	if err := r.db.First(&color, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &color, nil
}

func (r *colorRepository) FindByName(name string) (*model.Color, error) {
	var color model.Color
	if err := r.db.First(&color, "name = ?", name).Error; err != nil {
		return nil, err
	}
	return &color, nil
}

// Delete removes a color. Variants keep referencing the name; the
// relation is deliberately not FK-enforced.
func (r *colorRepository) Delete(id string) error {
	result := r.db.Delete(&model.Color{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
