package scheduler

import (
	"context"
	"time"

	"github.com/princesss/catalog-backend/internal/app/service"
	"github.com/princesss/catalog-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

const warmTimeout = 30 * time.Second

// CacheScheduler periodically rebuilds the default catalog listing so
// the most common storefront query stays warm between invalidations.
type CacheScheduler struct {
	cron           *cron.Cron
	catalogService service.CatalogService
	schedule       string
}

func NewCacheScheduler(catalogService service.CatalogService, schedule string) *CacheScheduler {
	return &CacheScheduler{
		cron:           cron.New(),
		catalogService: catalogService,
		schedule:       schedule,
	}
}

func (s *CacheScheduler) Start() error {
	if s.schedule == "" {
		logger.Info("Cache warmer disabled: no schedule configured", nil)
		return nil
	}

	_, err := s.cron.AddFunc(s.schedule, func() {
		logger.Info("Starting scheduled cache warm-up", nil)

		ctx, cancel := context.WithTimeout(context.Background(), warmTimeout)
		defer cancel()

		if err := s.catalogService.WarmCache(ctx); err != nil {
			logger.Error("Failed to warm catalog cache", err, nil)
			return
		}

		logger.Info("Catalog cache warmed successfully", nil)
	})
	if err != nil {
		logger.Error("Failed to add cron job for cache warm-up", err, nil)
		return err
	}

	s.cron.Start()
	logger.Info("Cache scheduler started successfully", map[string]interface{}{
		"schedule": s.schedule,
	})

	return nil
}

func (s *CacheScheduler) Stop() {
	logger.Info("Stopping cache scheduler...", nil)
	s.cron.Stop()
	logger.Info("Cache scheduler stopped", nil)
}
