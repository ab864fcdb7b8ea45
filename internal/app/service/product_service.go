package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/princesss/catalog-backend/internal/app/model"
	"github.com/princesss/catalog-backend/internal/app/repository"
	apperrors "github.com/princesss/catalog-backend/internal/errors"
	"github.com/princesss/catalog-backend/internal/cache"
	"github.com/princesss/catalog-backend/internal/storage"
	"github.com/princesss/catalog-backend/pkg/logger"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrProductNameTaken = errors.New("product name already taken")
)

type ProductService interface {
	CreateProduct(ctx context.Context, product *model.Product) error
	UpdateProduct(ctx context.Context, product *model.Product) error
	DeleteProduct(ctx context.Context, id string) error
	ExportProducts(ctx context.Context) ([]byte, error)
}

type productService struct {
	productRepo repository.ProductRepository
	objectStore storage.ObjectStorage
	cacheStore  cache.Store
	db          *gorm.DB
}

func NewProductService(
	productRepo repository.ProductRepository,
	objectStore storage.ObjectStorage,
	cacheStore cache.Store,
	db *gorm.DB,
) ProductService {
	return &productService{
		productRepo: productRepo,
		objectStore: objectStore,
		cacheStore:  cacheStore,
		db:          db,
	}
}

func (s *productService) CreateProduct(ctx context.Context, product *model.Product) error {
	logger.Info("Creating new product", map[string]interface{}{
		"name":     product.Name,
		"category": product.CategoryID,
		"type":     product.Type,
	})

	if err := s.productRepo.Create(product); err != nil {
		if apperrors.IsDuplicateKey(err) {
			logger.Warn("Product name already taken", map[string]interface{}{
				"name": product.Name,
			})
			return ErrProductNameTaken
		}
		logger.Error("Failed to create product", err, map[string]interface{}{
			"name": product.Name,
		})
		return err
	}

	invalidateCatalogCache(ctx, s.cacheStore)

	logger.Info("Product created successfully", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
	})
	return nil
}

func (s *productService) UpdateProduct(ctx context.Context, product *model.Product) error {
	existing, err := s.productRepo.FindByID(product.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot update: product not found", map[string]interface{}{
				"product_id": product.ID,
			})
			return ErrProductNotFound
		}
		logger.Error("Failed to check product existence", err, map[string]interface{}{
			"product_id": product.ID,
		})
		return err
	}

	product.CreatedAt = existing.CreatedAt

	if err := s.productRepo.Update(product); err != nil {
		if apperrors.IsDuplicateKey(err) {
			return ErrProductNameTaken
		}
		logger.Error("Failed to update product", err, map[string]interface{}{
			"product_id": product.ID,
		})
		return err
	}

	invalidateCatalogCache(ctx, s.cacheStore)

	logger.Info("Product updated successfully", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
	})
	return nil
}

// DeleteProduct cascades: image rows, variant rows and the product row
// are removed in one transaction in dependency order, then the image
// objects are deleted from storage so no key is left dangling.
func (s *productService) DeleteProduct(ctx context.Context, id string) error {
	logger.Info("Deleting product", map[string]interface{}{
		"product_id": id,
	})

	if _, err := s.productRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		logger.Error("Failed to check product existence", err, map[string]interface{}{
			"product_id": id,
		})
		return err
	}

	var objectKeys []string
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.VariantImage{}).
			Joins("JOIN variants ON variants.id = variant_images.variant_id").
			Where("variants.product_id = ?", id).
			Pluck("variant_images.url", &objectKeys).Error; err != nil {
			return err
		}

		if err := tx.Where("variant_id IN (?)",
			tx.Model(&model.Variant{}).Select("id").Where("product_id = ?", id),
		).Delete(&model.VariantImage{}).Error; err != nil {
			return err
		}

		if err := tx.Where("product_id = ?", id).Delete(&model.Variant{}).Error; err != nil {
			return err
		}

		return tx.Delete(&model.Product{}, "id = ?", id).Error
	})
	if err != nil {
		logger.Error("Failed to delete product", err, map[string]interface{}{
			"product_id": id,
		})
		return err
	}

	deleteObjects(ctx, s.objectStore, objectKeys)
	invalidateCatalogCache(ctx, s.cacheStore)

	logger.Info("Product deleted successfully", map[string]interface{}{
		"product_id": id,
		"images":     len(objectKeys),
	})
	return nil
}

// deleteObjects removes image payloads from the object store,
// continuing through individual failures so a single bad key does not
// leave the remaining ones orphaned.
func deleteObjects(ctx context.Context, store storage.ObjectStorage, keys []string) {
	for _, key := range keys {
		if err := store.Delete(ctx, key); err != nil {
			logger.Warn("Failed to delete stored object", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
	}
}

var exportHeader = []interface{}{
	"ID", "Name", "Category", "Type", "Length (cm)",
	"Variants", "Min Price", "Min Promo Price", "Total Stock",
}

// ExportProducts renders the catalog as an xlsx workbook, one row per
// product with aggregated variant figures.
func (s *productService) ExportProducts(ctx context.Context) ([]byte, error) {
	products, err := s.productRepo.FindAllDetailed()
	if err != nil {
		logger.Error("Failed to load products for export", err, nil)
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := f.SetSheetRow(sheet, "A1", &exportHeader); err != nil {
		return nil, err
	}

	for i, product := range products {
		minPrice, minPromo, totalStock := summarizeVariants(product.Variants)
		row := []interface{}{
			product.ID,
			product.Name,
			int(product.CategoryID),
			int(product.Type),
			product.Length,
			len(product.Variants),
			minPrice,
			minPromo,
			totalStock,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}

	logger.Info("Catalog exported", map[string]interface{}{
		"products": len(products),
	})
	return buf.Bytes(), nil
}

func summarizeVariants(variants []model.Variant) (minPrice, minPromo interface{}, totalStock int) {
	for _, v := range variants {
		totalStock += v.StockQuantity
		if minPrice == nil || v.Price < minPrice.(float64) {
			minPrice = v.Price
		}
		if v.PromoPrice != nil && (minPromo == nil || *v.PromoPrice < minPromo.(float64)) {
			minPromo = *v.PromoPrice
		}
	}
	return minPrice, minPromo, totalStock
}
