package controller

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/princesss/catalog-backend/internal/app/service"
	apperrors "github.com/princesss/catalog-backend/internal/errors"
	"github.com/princesss/catalog-backend/internal/middleware"
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

type VariantController struct {
	variantService service.VariantService
}

func NewVariantController(variantService service.VariantService) *VariantController {
	return &VariantController{
		variantService: variantService,
	}
}

type UpdateVariantRequest struct {
	SKU           *string  `json:"sku"`
	Price         *float64 `json:"price" binding:"omitempty,gt=0"`
	PromoPrice    *float64 `json:"promo_price"`
	Color         *string  `json:"color"`
	StockQuantity *int     `json:"stock_quantity" binding:"omitempty,gte=0"`
}

type ResortImagesRequest struct {
	Images []service.ImageOrder `json:"image_orders" binding:"required,dive"`
}

// CreateVariant creates a variant, optionally with initial images, from
// a multipart form (admin only)
// POST /v1/variants
func (ctrl *VariantController) CreateVariant(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	productID := c.PostForm("product_id")
	sku := c.PostForm("sku")
	color := c.PostForm("color")
	if productID == "" || color == "" {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "product_id and color are required")
		return
	}

	price, err := strconv.ParseFloat(c.PostForm("price"), 64)
	if err != nil || price <= 0 {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid price")
		return
	}

	var promoPrice *float64
	if raw := c.PostForm("promo_price"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v <= 0 {
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid promo price")
			return
		}
		promoPrice = &v
	}

	stock := 0
	if raw := c.PostForm("stock_quantity"); raw != "" {
		stock, err = strconv.Atoi(raw)
		if err != nil || stock < 0 {
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid stock quantity")
			return
		}
	}

	uploads, closers, ok := ctrl.collectUploads(c)
	if !ok {
		return
	}
	defer closeAll(closers)

	variant, err := ctrl.variantService.CreateVariant(c.Request.Context(), service.CreateVariantInput{
		ProductID:     productID,
		SKU:           sku,
		Price:         price,
		PromoPrice:    promoPrice,
		Color:         color,
		StockQuantity: stock,
		Images:        uploads,
	})
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		respondStorageError(c, log, err, "variant")
		return
	}

	log.Info("Variant created successfully", map[string]interface{}{
		"variant_id": variant.ID,
	})

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"variant": variant,
	})
}

// GetVariant returns one variant with its images
// GET /v1/variants/:id
func (ctrl *VariantController) GetVariant(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id := c.Param("id")

	variant, err := ctrl.variantService.GetVariant(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrVariantNotFound) {
			apperrors.NotFound(c, apperrors.VariantNotFound, "Variant not found")
			return
		}
		log.Error("Failed to fetch variant", err, map[string]interface{}{
			"variant_id": id,
		})
		apperrors.InternalError(c, "Failed to fetch variant")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"variant": variant,
	})
}

// UpdateVariant patches variant fields (admin only)
// PATCH /v1/variants/:id
func (ctrl *VariantController) UpdateVariant(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id := c.Param("id")

	var req UpdateVariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid variant update request", map[string]interface{}{
			"variant_id": id,
			"error":      err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	variant, err := ctrl.variantService.UpdateVariant(c.Request.Context(), id, service.UpdateVariantInput{
		SKU:           req.SKU,
		Price:         req.Price,
		PromoPrice:    req.PromoPrice,
		Color:         req.Color,
		StockQuantity: req.StockQuantity,
	})
	if err != nil {
		if errors.Is(err, service.ErrVariantNotFound) {
			apperrors.NotFound(c, apperrors.VariantNotFound, "Variant not found")
			return
		}
		respondStorageError(c, log, err, "variant")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"variant": variant,
	})
}

// DeleteVariant removes a variant with its images (admin only)
// DELETE /v1/variants/:id
func (ctrl *VariantController) DeleteVariant(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id := c.Param("id")

	if err := ctrl.variantService.DeleteVariant(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrVariantNotFound) {
			apperrors.NotFound(c, apperrors.VariantNotFound, "Variant not found")
			return
		}
		respondStorageError(c, log, err, "variant")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
	})
}

// AppendImages adds images to the end of the variant's gallery (admin only)
// POST /v1/variants/:id/images
func (ctrl *VariantController) AppendImages(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id := c.Param("id")

	uploads, closers, ok := ctrl.collectUploads(c)
	if !ok {
		return
	}
	defer closeAll(closers)

	if len(uploads) == 0 {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "At least one image is required")
		return
	}

	images, err := ctrl.variantService.AppendImages(c.Request.Context(), id, uploads)
	if err != nil {
		if errors.Is(err, service.ErrVariantNotFound) {
			apperrors.NotFound(c, apperrors.VariantNotFound, "Variant not found")
			return
		}
		log.Error("Failed to append images", err, map[string]interface{}{
			"variant_id": id,
		})
		apperrors.InternalError(c, "Failed to upload images")
		return
	}

	log.Info("Images appended successfully", map[string]interface{}{
		"variant_id": id,
		"count":      len(images),
	})

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"images":  images,
	})
}

// ResortImages rewrites the sort order of the variant's gallery (admin only)
// PUT /v1/variants/:id/images/resort
func (ctrl *VariantController) ResortImages(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id := c.Param("id")

	var req ResortImagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid resort request", map[string]interface{}{
			"variant_id": id,
			"error":      err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	images, err := ctrl.variantService.ResortImages(c.Request.Context(), id, req.Images)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrVariantNotFound):
			apperrors.NotFound(c, apperrors.VariantNotFound, "Variant not found")
		case errors.Is(err, service.ErrImageNotOwned):
			apperrors.BadRequest(c, apperrors.ImageNotOwned, "Image does not belong to this variant")
		default:
			log.Error("Failed to resort images", err, map[string]interface{}{
				"variant_id": id,
			})
			apperrors.InternalError(c, "Failed to resort images")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"images":  images,
	})
}

// DeleteImage removes one image from its variant's gallery (admin only)
// DELETE /v1/images/:id
func (ctrl *VariantController) DeleteImage(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id := c.Param("id")

	if err := ctrl.variantService.DeleteImage(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrImageNotFound) {
			apperrors.NotFound(c, apperrors.ImageNotFound, "Image not found")
			return
		}
		log.Error("Failed to delete image", err, map[string]interface{}{
			"image_id": id,
		})
		apperrors.InternalError(c, "Failed to delete image")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
	})
}

// collectUploads reads the "images" multipart field and validates the
// content types. It reports false after writing the error response.
func (ctrl *VariantController) collectUploads(c *gin.Context) ([]service.ImageUpload, []multipart.File, bool) {
	form, err := c.MultipartForm()
	if err != nil {
		if err == http.ErrNotMultipart {
			return nil, nil, true
		}
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid multipart form")
		return nil, nil, false
	}

	files := form.File["images"]
	uploads := make([]service.ImageUpload, 0, len(files))
	closers := make([]multipart.File, 0, len(files))

	for _, header := range files {
		contentType := header.Header.Get("Content-Type")
		if !allowedImageTypes[contentType] {
			closeAll(closers)
			apperrors.BadRequest(c, apperrors.UploadInvalidFileType, "Only image files are allowed (JPEG, PNG, GIF, WEBP)")
			return nil, nil, false
		}

		file, err := header.Open()
		if err != nil {
			closeAll(closers)
			apperrors.InternalError(c, "Failed to read uploaded file")
			return nil, nil, false
		}
		closers = append(closers, file)
		uploads = append(uploads, service.ImageUpload{
			Filename:    header.Filename,
			ContentType: contentType,
			Body:        file,
		})
	}

	return uploads, closers, true
}

func closeAll(files []multipart.File) {
	for _, f := range files {
		f.Close()
	}
}
