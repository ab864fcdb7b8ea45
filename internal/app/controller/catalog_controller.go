package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/princesss/catalog-backend/internal/errors"
	"github.com/princesss/catalog-backend/internal/app/service"
	"github.com/princesss/catalog-backend/internal/middleware"
)

// CatalogController serves the storefront read path. Payloads come back
// from the service as pre-serialized bytes, so responses are written
// verbatim instead of re-marshalled.
type CatalogController struct {
	catalogService service.CatalogService
}

func NewCatalogController(catalogService service.CatalogService) *CatalogController {
	return &CatalogController{
		catalogService: catalogService,
	}
}

// ListProducts returns the filtered, sorted and paginated catalog
// GET /v2/products
func (ctrl *CatalogController) ListProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	query := service.CatalogQuery{
		IDs:       c.Query("ids"),
		Category:  c.Query("category"),
		MinPrice:  c.Query("minPrice"),
		MaxPrice:  c.Query("maxPrice"),
		Length:    c.Query("length"),
		Type:      c.Query("type"),
		Page:      c.Query("page"),
		Limit:     c.Query("limit"),
		SortOrder: c.Query("sortOrder"),
		NoCache:   c.Query("noCache") == "true",
	}

	payload, err := ctrl.catalogService.ListProducts(c.Request.Context(), query)
	if err != nil {
		if errors.Is(err, service.ErrInvalidFilter) {
			log.Warn("Invalid catalog filter", map[string]interface{}{
				"query": c.Request.URL.RawQuery,
			})
			apperrors.BadRequest(c, apperrors.ValidationInvalidFilter, "Invalid filter value")
			return
		}
		log.Error("Failed to list products", err, nil)
		apperrors.InternalError(c, "Failed to fetch products")
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
}

// GetProduct returns one product with its variants and images
// GET /v1/products/:id
func (ctrl *CatalogController) GetProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id := c.Param("id")
	noCache := c.Query("noCache") == "true"

	payload, err := ctrl.catalogService.GetProduct(c.Request.Context(), id, noCache)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			log.Warn("Product not found", map[string]interface{}{
				"product_id": id,
			})
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": id,
		})
		apperrors.InternalError(c, "Failed to fetch product")
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
}
