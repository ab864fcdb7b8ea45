package controller

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/princesss/catalog-backend/internal/app/model"
	"github.com/princesss/catalog-backend/internal/app/service"
	apperrors "github.com/princesss/catalog-backend/internal/errors"
	"github.com/princesss/catalog-backend/internal/middleware"
)

type ProductController struct {
	productService service.ProductService
}

func NewProductController(productService service.ProductService) *ProductController {
	return &ProductController{
		productService: productService,
	}
}

type CreateProductRequest struct {
	Name             string   `json:"name" binding:"required"`
	DisplayName      string   `json:"display_name" binding:"required"`
	Description      string   `json:"description"`
	ShortDescription string   `json:"short_description"`
	Type             int      `json:"type" binding:"required,oneof=1 2"`
	Length           int      `json:"length" binding:"gte=0"`
	BasePrice        float64  `json:"base_price" binding:"required,gt=0"`
	BasePromoPrice   *float64 `json:"base_promo_price"`
	CategoryID       int      `json:"category_id" binding:"required,oneof=1 2 3"`
}

type UpdateProductRequest struct {
	Name             string   `json:"name" binding:"required"`
	DisplayName      string   `json:"display_name" binding:"required"`
	Description      string   `json:"description"`
	ShortDescription string   `json:"short_description"`
	Type             int      `json:"type" binding:"required,oneof=1 2"`
	Length           int      `json:"length" binding:"gte=0"`
	BasePrice        float64  `json:"base_price" binding:"required,gt=0"`
	BasePromoPrice   *float64 `json:"base_promo_price"`
	CategoryID       int      `json:"category_id" binding:"required,oneof=1 2 3"`
}

// CreateProduct creates a new product (admin only)
// POST /v1/products
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid product creation request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	product := &model.Product{
		Name:             req.Name,
		DisplayName:      req.DisplayName,
		Description:      req.Description,
		ShortDescription: req.ShortDescription,
		Type:             model.ProductType(req.Type),
		Length:           req.Length,
		BasePrice:        req.BasePrice,
		BasePromoPrice:   req.BasePromoPrice,
		CategoryID:       model.ProductCategory(req.CategoryID),
	}

	if err := ctrl.productService.CreateProduct(c.Request.Context(), product); err != nil {
		if errors.Is(err, service.ErrProductNameTaken) {
			apperrors.Conflict(c, apperrors.ProductNameExists, "Product name already exists")
			return
		}
		respondStorageError(c, log, err, "product")
		return
	}

	log.Info("Product created successfully", map[string]interface{}{
		"product_id": product.ID,
	})

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"product": product,
	})
}

// UpdateProduct replaces the mutable fields of a product (admin only)
// PUT /v1/products/:id
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id := c.Param("id")

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid product update request", map[string]interface{}{
			"product_id": id,
			"error":      err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	product := &model.Product{
		ID:               id,
		Name:             req.Name,
		DisplayName:      req.DisplayName,
		Description:      req.Description,
		ShortDescription: req.ShortDescription,
		Type:             model.ProductType(req.Type),
		Length:           req.Length,
		BasePrice:        req.BasePrice,
		BasePromoPrice:   req.BasePromoPrice,
		CategoryID:       model.ProductCategory(req.CategoryID),
	}

	if err := ctrl.productService.UpdateProduct(c.Request.Context(), product); err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
		case errors.Is(err, service.ErrProductNameTaken):
			apperrors.Conflict(c, apperrors.ProductNameExists, "Product name already exists")
		default:
			respondStorageError(c, log, err, "product")
		}
		return
	}

	log.Info("Product updated successfully", map[string]interface{}{
		"product_id": id,
	})

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"product": product,
	})
}

// DeleteProduct removes a product with its variants and images (admin only)
// DELETE /v1/products/:id
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id := c.Param("id")

	if err := ctrl.productService.DeleteProduct(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		respondStorageError(c, log, err, "product")
		return
	}

	log.Info("Product deleted successfully", map[string]interface{}{
		"product_id": id,
	})

	c.JSON(http.StatusOK, gin.H{
		"success": true,
	})
}

// ExportProducts streams the catalog as an xlsx workbook (admin only)
// GET /v1/products/export
func (ctrl *ProductController) ExportProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	payload, err := ctrl.productService.ExportProducts(c.Request.Context())
	if err != nil {
		log.Error("Failed to export products", err, nil)
		apperrors.InternalError(c, "Failed to export products")
		return
	}

	filename := fmt.Sprintf("catalog-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", payload)
}
