package repository

import (
	"database/sql"
	"math"

	"github.com/princesss/catalog-backend/internal/app/model"
	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(comment *model.Comment) error
	FindByProductID(productID string) ([]model.Comment, error)
	RatingSummary(productID string) (model.RatingSummary, error)
	Delete(id string) error
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(comment *model.Comment) error {
	return r.db.Create(comment).Error
}

// FindByProductID returns a product's comments, newest first
func (r *commentRepository) FindByProductID(productID string) ([]model.Comment, error) {
	var comments []model.Comment
	err := r.db.
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// RatingSummary computes the mean rating and review count on demand;
// the average is nil when the product has no reviews.
func (r *commentRepository) RatingSummary(productID string) (model.RatingSummary, error) {
	summary := model.RatingSummary{}

	query := r.db.Model(&model.Comment{}).Where("product_id = ?", productID)

	if err := query.Count(&summary.Count).Error; err != nil {
		return summary, err
	}

	var avg sql.NullFloat64
	if err := query.Select("AVG(rating)").Scan(&avg).Error; err != nil {
		return summary, err
	}
	if avg.Valid {
		rounded := math.Round(avg.Float64*10) / 10
		summary.Average = &rounded
	}
	return summary, nil
}

func (r *commentRepository) Delete(id string) error {
	result := r.db.Delete(&model.Comment{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
