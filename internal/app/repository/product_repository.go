package repository

import (
	"github.com/princesss/catalog-backend/internal/app/model"
	"github.com/princesss/catalog-backend/pkg/logger"
	"gorm.io/gorm"
)

// effectivePriceExpr is the effective price of a variant: promo price
// when set, else price.
const effectivePriceExpr = "COALESCE(variants.promo_price, variants.price)"

type ProductRepository interface {
	Create(product *model.Product) error
	FindByID(id string) (*model.Product, error)
	FindByIDDetailed(id string) (*model.Product, error)
	FindWithFilter(filter CatalogFilter) ([]model.Product, error)
	CountWithFilter(filter CatalogFilter) (int64, error)
	FindAllDetailed() ([]model.Product, error)
	Update(product *model.Product) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(product *model.Product) error {
	logger.Debug("Creating product in database", map[string]interface{}{
		"name":     product.Name,
		"category": product.CategoryID,
		"type":     product.Type,
	})

	if err := r.db.Create(product).Error; err != nil {
		logger.Error("Failed to create product in database", err, map[string]interface{}{
			"name": product.Name,
		})
		return err
	}

	logger.Debug("Product created in database", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
	})
	return nil
}

// filterQuery builds the filtered products×variants join shared by the
// page query and the total count.
func (r *productRepository) filterQuery(filter CatalogFilter) *gorm.DB {
	query := r.db.Model(&model.Product{}).
		Joins("JOIN variants ON variants.product_id = products.id")

	for _, p := range buildPredicates(filter) {
		query = query.Where(p.expr, p.args...)
	}
	return query
}

func sortDirection(descending bool) string {
	if descending {
		return "DESC"
	}
	return "ASC"
}

// FindWithFilter returns one page of products matching the filter,
// deduplicated by product and ordered by the minimum effective price
// across the product's variants.
func (r *productRepository) FindWithFilter(filter CatalogFilter) ([]model.Product, error) {
	logger.Debug("Finding products with filter", map[string]interface{}{
		"ids":      filter.IDs,
		"category": filter.CategoryID,
		"types":    filter.Types,
		"page":     filter.Page,
		"limit":    filter.Limit,
		"desc":     filter.SortDescending,
	})

	query := r.filterQuery(filter).
		Select("products.*, MIN(" + effectivePriceExpr + ") AS min_effective_price").
		Group("products.id").
		Order("min_effective_price " + sortDirection(filter.SortDescending))

	if filter.Page > 0 && filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset((filter.Page - 1) * filter.Limit)
	}

	var products []model.Product
	if err := query.Find(&products).Error; err != nil {
		logger.Error("Failed to find products with filter", err, map[string]interface{}{
			"page":  filter.Page,
			"limit": filter.Limit,
		})
		return nil, err
	}

	logger.Debug("Products found with filter", map[string]interface{}{
		"count": len(products),
	})
	return products, nil
}

// CountWithFilter counts the distinct products matching the filter,
// ignoring pagination.
func (r *productRepository) CountWithFilter(filter CatalogFilter) (int64, error) {
	var total int64
	if err := r.filterQuery(filter).Distinct("products.id").Count(&total).Error; err != nil {
		logger.Error("Failed to count products with filter", err, nil)
		return 0, err
	}
	return total, nil
}

func (r *productRepository) FindByID(id string) (*model.Product, error) {
	var product model.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// detailedQuery preloads variants ordered by effective price with their
// color display names and sort-ordered images.
func (r *productRepository) detailedQuery() *gorm.DB {
	return r.db.Model(&model.Product{}).
		Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Select("variants.*, colors.display_name AS color_display_name").
				Joins("LEFT JOIN colors ON colors.name = variants.color").
				Order(effectivePriceExpr + " ASC")
		}).
		Preload("Variants.Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		})
}

func (r *productRepository) FindByIDDetailed(id string) (*model.Product, error) {
	var product model.Product
	if err := r.detailedQuery().First(&product, "products.id = ?", id).Error; err != nil {
		logger.Error("Failed to find product by ID in database", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) FindAllDetailed() ([]model.Product, error) {
	var products []model.Product
	if err := r.detailedQuery().Order("products.created_at ASC").Find(&products).Error; err != nil {
		logger.Error("Failed to list products", err, nil)
		return nil, err
	}
	return products, nil
}

func (r *productRepository) Update(product *model.Product) error {
	logger.Debug("Updating product in database", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
	})

	if err := r.db.Save(product).Error; err != nil {
		logger.Error("Failed to update product in database", err, map[string]interface{}{
			"product_id": product.ID,
		})
		return err
	}
	return nil
}
