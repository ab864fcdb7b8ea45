package service

import (
	"context"
	"errors"
	"io"

	"github.com/princesss/catalog-backend/internal/app/model"
	"github.com/princesss/catalog-backend/internal/app/repository"
	"github.com/princesss/catalog-backend/internal/cache"
	"github.com/princesss/catalog-backend/internal/storage"
	"github.com/princesss/catalog-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrVariantNotFound = errors.New("variant not found")
	ErrImageNotFound   = errors.New("image not found")
	ErrImageNotOwned   = errors.New("image does not belong to variant")
)

// ImageUpload is one incoming image payload from a multipart request
type ImageUpload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// ImageOrder is one entry of a resort request
type ImageOrder struct {
	ID        string `json:"id" binding:"required"`
	SortOrder int    `json:"sort_order"`
}

type CreateVariantInput struct {
	ProductID     string
	SKU           string
	Price         float64
	PromoPrice    *float64
	Color         string
	StockQuantity int
	Images        []ImageUpload
}

type UpdateVariantInput struct {
	SKU           *string
	Price         *float64
	PromoPrice    *float64
	Color         *string
	StockQuantity *int
}

// VariantService owns the variant lifecycle and its image consistency
// rules: strictly ordered image lists, whole-batch resort validation
// and cascading deletes that clean up object storage.
type VariantService interface {
	CreateVariant(ctx context.Context, input CreateVariantInput) (*model.Variant, error)
	GetVariant(ctx context.Context, id string) (*model.Variant, error)
	UpdateVariant(ctx context.Context, id string, input UpdateVariantInput) (*model.Variant, error)
	DeleteVariant(ctx context.Context, id string) error
	AppendImages(ctx context.Context, variantID string, uploads []ImageUpload) ([]model.VariantImage, error)
	ResortImages(ctx context.Context, variantID string, orders []ImageOrder) ([]model.VariantImage, error)
	DeleteImage(ctx context.Context, imageID string) error
}

type variantService struct {
	variantRepo repository.VariantRepository
	imageRepo   repository.ImageRepository
	productRepo repository.ProductRepository
	objectStore storage.ObjectStorage
	cacheStore  cache.Store
	db          *gorm.DB
}

func NewVariantService(
	variantRepo repository.VariantRepository,
	imageRepo repository.ImageRepository,
	productRepo repository.ProductRepository,
	objectStore storage.ObjectStorage,
	cacheStore cache.Store,
	db *gorm.DB,
) VariantService {
	return &variantService{
		variantRepo: variantRepo,
		imageRepo:   imageRepo,
		productRepo: productRepo,
		objectStore: objectStore,
		cacheStore:  cacheStore,
		db:          db,
	}
}

func (s *variantService) CreateVariant(ctx context.Context, input CreateVariantInput) (*model.Variant, error) {
	if _, err := s.productRepo.FindByID(input.ProductID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot create variant: product not found", map[string]interface{}{
				"product_id": input.ProductID,
			})
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	variant := &model.Variant{
		ProductID:     input.ProductID,
		SKU:           input.SKU,
		Price:         input.Price,
		PromoPrice:    input.PromoPrice,
		Color:         input.Color,
		StockQuantity: input.StockQuantity,
	}

	if err := s.variantRepo.Create(variant); err != nil {
		logger.Error("Failed to create variant", err, map[string]interface{}{
			"product_id": input.ProductID,
		})
		return nil, err
	}

	if len(input.Images) > 0 {
		images, err := s.appendImages(ctx, variant.ID, input.Images)
		if err != nil {
			logger.Error("Failed to store variant images", err, map[string]interface{}{
				"variant_id": variant.ID,
			})
			return nil, err
		}
		variant.Images = images
	}

	invalidateCatalogCache(ctx, s.cacheStore)

	logger.Info("Variant created successfully", map[string]interface{}{
		"variant_id": variant.ID,
		"product_id": variant.ProductID,
		"images":     len(variant.Images),
	})
	return variant, nil
}

func (s *variantService) GetVariant(ctx context.Context, id string) (*model.Variant, error) {
	variant, err := s.variantRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVariantNotFound
		}
		return nil, err
	}
	return variant, nil
}

func (s *variantService) UpdateVariant(ctx context.Context, id string, input UpdateVariantInput) (*model.Variant, error) {
	variant, err := s.variantRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVariantNotFound
		}
		return nil, err
	}

	if input.SKU != nil {
		variant.SKU = *input.SKU
	}
	if input.Price != nil {
		variant.Price = *input.Price
	}
	if input.PromoPrice != nil {
		variant.PromoPrice = input.PromoPrice
	}
	if input.Color != nil {
		variant.Color = *input.Color
	}
	if input.StockQuantity != nil {
		variant.StockQuantity = *input.StockQuantity
	}

	if err := s.variantRepo.Update(variant); err != nil {
		return nil, err
	}

	invalidateCatalogCache(ctx, s.cacheStore)

	logger.Info("Variant updated successfully", map[string]interface{}{
		"variant_id": variant.ID,
	})
	return variant, nil
}

// DeleteVariant cascades over the variant's images: metadata rows go
// first inside one transaction, then the stored objects.
func (s *variantService) DeleteVariant(ctx context.Context, id string) error {
	if _, err := s.variantRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVariantNotFound
		}
		return err
	}

	var objectKeys []string
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.VariantImage{}).
			Where("variant_id = ?", id).
			Pluck("url", &objectKeys).Error; err != nil {
			return err
		}
		if err := tx.Where("variant_id = ?", id).Delete(&model.VariantImage{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Variant{}, "id = ?", id).Error
	})
	if err != nil {
		logger.Error("Failed to delete variant", err, map[string]interface{}{
			"variant_id": id,
		})
		return err
	}

	deleteObjects(ctx, s.objectStore, objectKeys)
	invalidateCatalogCache(ctx, s.cacheStore)

	logger.Info("Variant deleted successfully", map[string]interface{}{
		"variant_id": id,
		"images":     len(objectKeys),
	})
	return nil
}

func (s *variantService) AppendImages(ctx context.Context, variantID string, uploads []ImageUpload) ([]model.VariantImage, error) {
	if _, err := s.variantRepo.FindByID(variantID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVariantNotFound
		}
		return nil, err
	}

	images, err := s.appendImages(ctx, variantID, uploads)
	if err != nil {
		return nil, err
	}

	invalidateCatalogCache(ctx, s.cacheStore)
	return images, nil
}

// appendImages uploads each payload under a fresh opaque key, then
// assigns sort orders continuing after the variant's current maximum.
// The max read and the inserts share one transaction so concurrent
// appenders cannot hand out the same position; if the metadata write
// fails, the already-uploaded objects are removed again.
func (s *variantService) appendImages(ctx context.Context, variantID string, uploads []ImageUpload) ([]model.VariantImage, error) {
	uploaded := make([]string, 0, len(uploads))
	for _, upload := range uploads {
		key := storage.NewObjectKey(upload.Filename)
		if err := s.objectStore.Put(ctx, key, upload.Body, upload.ContentType); err != nil {
			logger.Error("Failed to upload image payload", err, map[string]interface{}{
				"variant_id": variantID,
				"filename":   upload.Filename,
			})
			deleteObjects(ctx, s.objectStore, uploaded)
			return nil, err
		}
		uploaded = append(uploaded, key)
	}

	var images []model.VariantImage
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var maxSort *int
		if err := tx.Model(&model.VariantImage{}).
			Where("variant_id = ?", variantID).
			Select("MAX(sort_order)").
			Scan(&maxSort).Error; err != nil {
			return err
		}

		next := 0
		if maxSort != nil {
			next = *maxSort + 1
		}

		for i, key := range uploaded {
			image := model.VariantImage{
				VariantID: variantID,
				URL:       key,
				SortOrder: next + i,
			}
			if err := tx.Create(&image).Error; err != nil {
				return err
			}
			images = append(images, image)
		}
		return nil
	})
	if err != nil {
		// Compensate: do not leave freshly uploaded objects orphaned.
		deleteObjects(ctx, s.objectStore, uploaded)
		logger.Error("Failed to persist image metadata", err, map[string]interface{}{
			"variant_id": variantID,
			"uploads":    len(uploaded),
		})
		return nil, err
	}

	logger.Info("Images appended to variant", map[string]interface{}{
		"variant_id": variantID,
		"count":      len(images),
	})
	return images, nil
}

// ResortImages applies a batch of sort-order updates. The whole batch
// is rejected when any referenced image does not belong to the target
// variant; partial application never happens.
func (s *variantService) ResortImages(ctx context.Context, variantID string, orders []ImageOrder) ([]model.VariantImage, error) {
	if _, err := s.variantRepo.FindByID(variantID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVariantNotFound
		}
		return nil, err
	}

	owned, err := s.imageRepo.FindByVariantID(variantID)
	if err != nil {
		return nil, err
	}

	ownedIDs := make(map[string]bool, len(owned))
	for _, image := range owned {
		ownedIDs[image.ID] = true
	}
	for _, order := range orders {
		if !ownedIDs[order.ID] {
			logger.Warn("Resort rejected: image not owned by variant", map[string]interface{}{
				"variant_id": variantID,
				"image_id":   order.ID,
			})
			return nil, ErrImageNotOwned
		}
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, order := range orders {
			if err := tx.Model(&model.VariantImage{}).
				Where("id = ?", order.ID).
				Update("sort_order", order.SortOrder).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.Error("Failed to resort images", err, map[string]interface{}{
			"variant_id": variantID,
		})
		return nil, err
	}

	invalidateCatalogCache(ctx, s.cacheStore)

	logger.Info("Variant images resorted", map[string]interface{}{
		"variant_id": variantID,
		"updated":    len(orders),
	})
	return s.imageRepo.FindByVariantID(variantID)
}

// DeleteImage removes the metadata row and the stored payload. A
// missing row reports not-found without touching storage.
func (s *variantService) DeleteImage(ctx context.Context, imageID string) error {
	image, err := s.imageRepo.FindByID(imageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrImageNotFound
		}
		return err
	}

	if err := s.db.Delete(&model.VariantImage{}, "id = ?", imageID).Error; err != nil {
		logger.Error("Failed to delete image metadata", err, map[string]interface{}{
			"image_id": imageID,
		})
		return err
	}

	deleteObjects(ctx, s.objectStore, []string{image.URL})
	invalidateCatalogCache(ctx, s.cacheStore)

	logger.Info("Image deleted successfully", map[string]interface{}{
		"image_id":   imageID,
		"variant_id": image.VariantID,
	})
	return nil
}
