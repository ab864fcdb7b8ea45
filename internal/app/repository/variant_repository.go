package repository

import (
	"github.com/princesss/catalog-backend/internal/app/model"
	"github.com/princesss/catalog-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VariantRepository interface {
	Create(variant *model.Variant) error
	FindByID(id string) (*model.Variant, error)
	FindByProductID(productID string) ([]model.Variant, error)
	FindByProductIDs(productIDs []string, sortDescending bool) ([]model.Variant, error)
	Update(variant *model.Variant) error
}

type variantRepository struct {
	db *gorm.DB
}

func NewVariantRepository(db *gorm.DB) VariantRepository {
	return &variantRepository{db: db}
}

// decoratedQuery joins the color display name and preloads the ordered
// image list for every returned variant.
func (r *variantRepository) decoratedQuery() *gorm.DB {
	return r.db.Model(&model.Variant{}).
		Select("variants.*, colors.display_name AS color_display_name").
		Joins("LEFT JOIN colors ON colors.name = variants.color").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		})
}

func (r *variantRepository) Create(variant *model.Variant) error {
	if err := r.db.Create(variant).Error; err != nil {
		logger.Error("Failed to create variant in database", err, map[string]interface{}{
			"product_id": variant.ProductID,
			"color":      variant.Color,
		})
		return err
	}
	variant.Refresh()
	return nil
}

func (r *variantRepository) FindByID(id string) (*model.Variant, error) {
	var variant model.Variant
	if err := r.decoratedQuery().First(&variant, "variants.id = ?", id).Error; err != nil {
		return nil, err
	}
	return &variant, nil
}

func (r *variantRepository) FindByProductID(productID string) ([]model.Variant, error) {
	var variants []model.Variant
	err := r.decoratedQuery().
		Where("variants.product_id = ?", productID).
		Order(effectivePriceExpr + " ASC").
		Find(&variants).Error
	if err != nil {
		return nil, err
	}
	return variants, nil
}

// FindByProductIDs batch-loads the variants of a page of products,
// ordered by effective price in the requested direction. Callers
// regroup the rows by product.
func (r *variantRepository) FindByProductIDs(productIDs []string, sortDescending bool) ([]model.Variant, error) {
	var variants []model.Variant
	err := r.decoratedQuery().
		Where("variants.product_id IN ?", productIDs).
		Order(effectivePriceExpr + " " + sortDirection(sortDescending)).
		Find(&variants).Error
	if err != nil {
		logger.Error("Failed to batch-load variants", err, map[string]interface{}{
			"products": len(productIDs),
		})
		return nil, err
	}
	return variants, nil
}

func (r *variantRepository) Update(variant *model.Variant) error {
	// Images are managed through the image repository; never upsert
	// them as a side effect of a variant update.
	if err := r.db.Omit(clause.Associations).Save(variant).Error; err != nil {
		logger.Error("Failed to update variant in database", err, map[string]interface{}{
			"variant_id": variant.ID,
		})
		return err
	}
	variant.Refresh()
	return nil
}
