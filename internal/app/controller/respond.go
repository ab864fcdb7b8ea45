package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/princesss/catalog-backend/internal/errors"
	"github.com/princesss/catalog-backend/pkg/logger"
)

// respondStorageError maps an unexpected storage error to its code and
// a safe message. Not-found codes keep their 404 status even when the
// sentinel mapping in the service missed them.
func respondStorageError(c *gin.Context, log *logger.Logger, err error, context string) {
	info := apperrors.ParseError(err, context)

	status := http.StatusInternalServerError
	switch info.Code {
	case apperrors.ProductNotFound, apperrors.VariantNotFound, apperrors.ImageNotFound,
		apperrors.ColorNotFound, apperrors.CommentNotFound, apperrors.ResourceNotFound:
		status = http.StatusNotFound
	case apperrors.ProductNameExists, apperrors.ColorNameExists,
		apperrors.ResourceAlreadyExists, apperrors.ResourceConflict:
		status = http.StatusConflict
	case apperrors.ValidationRequired:
		status = http.StatusBadRequest
	}

	log.Error("Request failed", err, map[string]interface{}{
		"context": context,
		"code":    info.Code,
	})
	apperrors.RespondWithError(c, status, info.Code, info.Message)
}
