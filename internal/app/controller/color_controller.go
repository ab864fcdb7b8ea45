package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/princesss/catalog-backend/internal/app/service"
	apperrors "github.com/princesss/catalog-backend/internal/errors"
	"github.com/princesss/catalog-backend/internal/middleware"
)

type ColorController struct {
	colorService service.ColorService
}

func NewColorController(colorService service.ColorService) *ColorController {
	return &ColorController{
		colorService: colorService,
	}
}

// ListColors returns the color dictionary
// GET /v1/colors
func (ctrl *ColorController) ListColors(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	colors, err := ctrl.colorService.ListColors(c.Request.Context())
	if err != nil {
		log.Error("Failed to fetch colors", err, nil)
		apperrors.InternalError(c, "Failed to fetch colors")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"colors": colors,
	})
}

// GetColor returns one color by ID
// GET /v1/colors/:id
func (ctrl *ColorController) GetColor(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id := c.Param("id")

	color, err := ctrl.colorService.GetColor(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrColorNotFound) {
			apperrors.NotFound(c, apperrors.ColorNotFound, "Color not found")
			return
		}
		log.Error("Failed to fetch color", err, map[string]interface{}{
			"color_id": id,
		})
		apperrors.InternalError(c, "Failed to fetch color")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"color": color,
	})
}

// CreateColor adds a color to the dictionary (admin only)
// POST /v1/colors
func (ctrl *ColorController) CreateColor(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req service.CreateColorInput
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid color creation request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	color, err := ctrl.colorService.CreateColor(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrColorNameTaken) {
			apperrors.Conflict(c, apperrors.ColorNameExists, "Color name already exists")
			return
		}
		respondStorageError(c, log, err, "color")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"color":   color,
	})
}

// DeleteColor removes a color from the dictionary (admin only)
// DELETE /v1/colors/:id
func (ctrl *ColorController) DeleteColor(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id := c.Param("id")

	if err := ctrl.colorService.DeleteColor(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrColorNotFound) {
			apperrors.NotFound(c, apperrors.ColorNotFound, "Color not found")
			return
		}
		log.Error("Failed to delete color", err, map[string]interface{}{
			"color_id": id,
		})
		apperrors.InternalError(c, "Failed to delete color")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
	})
}
