package service

import (
	"context"
	"errors"

	"github.com/princesss/catalog-backend/internal/app/model"
	"github.com/princesss/catalog-backend/internal/app/repository"
	"github.com/princesss/catalog-backend/pkg/logger"
	"gorm.io/gorm"
)

var ErrCommentNotFound = errors.New("comment not found")

type CreateCommentInput struct {
	ProductID string `json:"product_id" binding:"required"`
	Author    string `json:"author"`
	Text      string `json:"text"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
}

// CommentService manages product reviews. Reviews are append-only from
// the storefront; only deletion is an admin operation.
type CommentService interface {
	CreateComment(ctx context.Context, input CreateCommentInput) (*model.Comment, error)
	ListComments(ctx context.Context, productID string) ([]model.Comment, error)
	ProductRating(ctx context.Context, productID string) (*model.RatingSummary, error)
	DeleteComment(ctx context.Context, id string) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	productRepo repository.ProductRepository
}

func NewCommentService(commentRepo repository.CommentRepository, productRepo repository.ProductRepository) CommentService {
	return &commentService{commentRepo: commentRepo, productRepo: productRepo}
}

func (s *commentService) CreateComment(ctx context.Context, input CreateCommentInput) (*model.Comment, error) {
	if _, err := s.productRepo.FindByID(input.ProductID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot create comment: product not found", map[string]interface{}{
				"product_id": input.ProductID,
			})
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	comment := &model.Comment{
		ProductID: input.ProductID,
		Author:    input.Author,
		Text:      input.Text,
		Rating:    input.Rating,
	}

	if err := s.commentRepo.Create(comment); err != nil {
		logger.Error("Failed to create comment", err, map[string]interface{}{
			"product_id": input.ProductID,
		})
		return nil, err
	}

	logger.Info("Comment created successfully", map[string]interface{}{
		"comment_id": comment.ID,
		"product_id": comment.ProductID,
		"rating":     comment.Rating,
	})
	return comment, nil
}

func (s *commentService) ListComments(ctx context.Context, productID string) ([]model.Comment, error) {
	if _, err := s.productRepo.FindByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return s.commentRepo.FindByProductID(productID)
}

func (s *commentService) ProductRating(ctx context.Context, productID string) (*model.RatingSummary, error) {
	if _, err := s.productRepo.FindByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	summary, err := s.commentRepo.RatingSummary(productID)
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

func (s *commentService) DeleteComment(ctx context.Context, id string) error {
	if err := s.commentRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		logger.Error("Failed to delete comment", err, map[string]interface{}{
			"comment_id": id,
		})
		return err
	}

	logger.Info("Comment deleted successfully", map[string]interface{}{
		"comment_id": id,
	})
	return nil
}
