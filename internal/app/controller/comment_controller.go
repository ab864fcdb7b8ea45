package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/princesss/catalog-backend/internal/app/service"
	apperrors "github.com/princesss/catalog-backend/internal/errors"
	"github.com/princesss/catalog-backend/internal/middleware"
)

type CommentController struct {
	commentService service.CommentService
}

func NewCommentController(commentService service.CommentService) *CommentController {
	return &CommentController{
		commentService: commentService,
	}
}

// CreateComment records a storefront review
// POST /v1/comments
func (ctrl *CommentController) CreateComment(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req service.CreateCommentInput
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid comment creation request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.CommentInvalidRating, "Invalid request data; rating must be between 1 and 5")
		return
	}

	comment, err := ctrl.commentService.CreateComment(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to create comment", err, map[string]interface{}{
			"product_id": req.ProductID,
		})
		apperrors.InternalError(c, "Failed to create comment")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"comment": comment,
	})
}

// ListComments returns a product's reviews, newest first
// GET /v1/comments?product_id=...
func (ctrl *CommentController) ListComments(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	productID := c.Query("product_id")
	if productID == "" {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "product_id is required")
		return
	}

	comments, err := ctrl.commentService.ListComments(c.Request.Context(), productID)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to fetch comments", err, map[string]interface{}{
			"product_id": productID,
		})
		apperrors.InternalError(c, "Failed to fetch comments")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"comments": comments,
	})
}

// GetRating returns the review aggregate of a product
// GET /v1/rating?product_id=...
func (ctrl *CommentController) GetRating(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	productID := c.Query("product_id")
	if productID == "" {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "product_id is required")
		return
	}

	summary, err := ctrl.commentService.ProductRating(c.Request.Context(), productID)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to fetch rating", err, map[string]interface{}{
			"product_id": productID,
		})
		apperrors.InternalError(c, "Failed to fetch rating")
		return
	}

	c.JSON(http.StatusOK, summary)
}

// DeleteComment removes a review (admin only)
// DELETE /v1/comments/:id
func (ctrl *CommentController) DeleteComment(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id := c.Param("id")

	if err := ctrl.commentService.DeleteComment(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrCommentNotFound) {
			apperrors.NotFound(c, apperrors.CommentNotFound, "Comment not found")
			return
		}
		log.Error("Failed to delete comment", err, map[string]interface{}{
			"comment_id": id,
		})
		apperrors.InternalError(c, "Failed to delete comment")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
	})
}
