package service

import (
	"context"
	"errors"

	apperrors "github.com/princesss/catalog-backend/internal/errors"
	"github.com/princesss/catalog-backend/internal/app/model"
	"github.com/princesss/catalog-backend/internal/app/repository"
	"github.com/princesss/catalog-backend/internal/cache"
	"github.com/princesss/catalog-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrColorNotFound  = errors.New("color not found")
	ErrColorNameTaken = errors.New("color name already exists")
)

type CreateColorInput struct {
	Name          string `json:"name" binding:"required"`
	DisplayName   string `json:"display_name" binding:"required"`
	ColorCategory *int   `json:"color_category"`
}

type ColorService interface {
	CreateColor(ctx context.Context, input CreateColorInput) (*model.Color, error)
	ListColors(ctx context.Context) ([]model.Color, error)
	GetColor(ctx context.Context, id string) (*model.Color, error)
	DeleteColor(ctx context.Context, id string) error
}

type colorService struct {
	colorRepo  repository.ColorRepository
	cacheStore cache.Store
}

func NewColorService(colorRepo repository.ColorRepository, cacheStore cache.Store) ColorService {
	return &colorService{colorRepo: colorRepo, cacheStore: cacheStore}
}

func (s *colorService) CreateColor(ctx context.Context, input CreateColorInput) (*model.Color, error) {
	color := &model.Color{
		Name:          input.Name,
		DisplayName:   input.DisplayName,
		ColorCategory: input.ColorCategory,
	}

	if err := s.colorRepo.Create(color); err != nil {
		if apperrors.IsDuplicateKey(err) {
			logger.Warn("Color name already taken", map[string]interface{}{
				"name": input.Name,
			})
			return nil, ErrColorNameTaken
		}
		logger.Error("Failed to create color", err, map[string]interface{}{
			"name": input.Name,
		})
		return nil, err
	}

	invalidateCatalogCache(ctx, s.cacheStore)

	logger.Info("Color created successfully", map[string]interface{}{
		"color_id": color.ID,
		"name":     color.Name,
	})
	return color, nil
}

func (s *colorService) ListColors(ctx context.Context) ([]model.Color, error) {
	return s.colorRepo.FindAll()
}

func (s *colorService) GetColor(ctx context.Context, id string) (*model.Color, error) {
	color, err := s.colorRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrColorNotFound
		}
		return nil, err
	}
	return color, nil
}

func (s *colorService) DeleteColor(ctx context.Context, id string) error {
	if err := s.colorRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrColorNotFound
		}
		logger.Error("Failed to delete color", err, map[string]interface{}{
			"color_id": id,
		})
		return err
	}

	invalidateCatalogCache(ctx, s.cacheStore)

	logger.Info("Color deleted successfully", map[string]interface{}{
		"color_id": id,
	})
	return nil
}
