package service

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/princesss/catalog-backend/internal/app/model"
	"github.com/princesss/catalog-backend/internal/app/repository"
	"github.com/princesss/catalog-backend/internal/cache"
	"github.com/princesss/catalog-backend/pkg/logger"
	"gorm.io/gorm"
)

var ErrInvalidFilter = errors.New("invalid filter value")

const defaultPageLimit = 10

// CatalogQuery carries the raw query-string values of one catalog
// request. Raw values feed the cache key so that identical requests
// always hit the same entry.
type CatalogQuery struct {
	IDs       string // comma-separated product ids
	Category  string // single category value
	MinPrice  string
	MaxPrice  string
	Length    string // comma-separated bucket names (SHORT/MEDIUM/LONG)
	Type      string // comma-separated type values
	Page      string // 1-based; pagination applies only when present
	Limit     string
	SortOrder string // asc (default) or desc
	NoCache   bool   // bypass flag: forces recomputation and a cache refresh
}

// ProductListResponse is the full payload cached and returned by the
// catalog list endpoint.
type ProductListResponse struct {
	Products      []model.Product `json:"products"`
	TotalPages    int             `json:"totalPages"`
	TotalProducts int64           `json:"totalProducts"`
}

type productDetailResponse struct {
	Product *model.Product `json:"product"`
}

// CatalogService answers catalog list and detail queries cache-first.
// Returned payloads are the serialized bytes that were (or will be)
// cached, so repeated identical queries are byte-identical.
type CatalogService interface {
	ListProducts(ctx context.Context, query CatalogQuery) ([]byte, error)
	GetProduct(ctx context.Context, id string, noCache bool) ([]byte, error)
	WarmCache(ctx context.Context) error
}

type catalogService struct {
	productRepo repository.ProductRepository
	variantRepo repository.VariantRepository
	cacheStore  cache.Store
	cacheTTL    time.Duration
}

func NewCatalogService(
	productRepo repository.ProductRepository,
	variantRepo repository.VariantRepository,
	cacheStore cache.Store,
	cacheTTL time.Duration,
) CatalogService {
	return &catalogService{
		productRepo: productRepo,
		variantRepo: variantRepo,
		cacheStore:  cacheStore,
		cacheTTL:    cacheTTL,
	}
}

func (s *catalogService) ListProducts(ctx context.Context, query CatalogQuery) ([]byte, error) {
	key := cache.ListKey(cache.ListKeyParts{
		MaxPrice:  query.MaxPrice,
		MinPrice:  query.MinPrice,
		Length:    query.Length,
		Type:      query.Type,
		Category:  query.Category,
		Page:      query.Page,
		Limit:     query.Limit,
		SortOrder: query.SortOrder,
		IDs:       query.IDs,
	})

	if !query.NoCache {
		// A cache read failure counts as a miss; the entry is rebuilt below.
		if payload, hit, err := s.cacheStore.Get(ctx, key); err == nil && hit {
			logger.Debug("Catalog cache hit", map[string]interface{}{
				"key": key,
			})
			return []byte(payload), nil
		}
	}

	filter, err := parseCatalogQuery(query)
	if err != nil {
		return nil, err
	}

	products, err := s.productRepo.FindWithFilter(filter)
	if err != nil {
		logger.Error("Failed to query catalog page", err, map[string]interface{}{
			"key": key,
		})
		return nil, err
	}

	total, err := s.productRepo.CountWithFilter(filter)
	if err != nil {
		logger.Error("Failed to count catalog results", err, map[string]interface{}{
			"key": key,
		})
		return nil, err
	}

	if err := s.expandVariants(products, filter.SortDescending); err != nil {
		return nil, err
	}

	totalPages := 1
	if filter.Page > 0 && filter.Limit > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(filter.Limit)))
	}

	response := ProductListResponse{
		Products:      products,
		TotalPages:    totalPages,
		TotalProducts: total,
	}

	payload, err := json.Marshal(response)
	if err != nil {
		return nil, err
	}

	if cacheErr := s.cacheStore.Set(ctx, key, string(payload), s.cacheTTL); cacheErr != nil {
		logger.Warn("Failed to cache catalog response", map[string]interface{}{
			"key":   key,
			"error": cacheErr.Error(),
		})
	}

	logger.Info("Catalog page computed", map[string]interface{}{
		"key":      key,
		"returned": len(products),
		"total":    total,
	})
	return payload, nil
}

// expandVariants attaches every variant of the page's products, each
// decorated with color display name, ordered images and availability.
// The final product order always follows the outer page query.
func (s *catalogService) expandVariants(products []model.Product, sortDescending bool) error {
	if len(products) == 0 {
		return nil
	}

	ids := make([]string, len(products))
	for i := range products {
		ids[i] = products[i].ID
	}

	variants, err := s.variantRepo.FindByProductIDs(ids, sortDescending)
	if err != nil {
		return err
	}

	byProduct := make(map[string][]model.Variant, len(products))
	for _, v := range variants {
		byProduct[v.ProductID] = append(byProduct[v.ProductID], v)
	}
	for i := range products {
		products[i].Variants = byProduct[products[i].ID]
	}
	return nil
}

func (s *catalogService) GetProduct(ctx context.Context, id string, noCache bool) ([]byte, error) {
	key := cache.DetailKey(id)

	if !noCache {
		if payload, hit, err := s.cacheStore.Get(ctx, key); err == nil && hit {
			return []byte(payload), nil
		}
	}

	product, err := s.productRepo.FindByIDDetailed(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	payload, err := json.Marshal(productDetailResponse{Product: product})
	if err != nil {
		return nil, err
	}

	if cacheErr := s.cacheStore.Set(ctx, key, string(payload), s.cacheTTL); cacheErr != nil {
		logger.Warn("Failed to cache product detail", map[string]interface{}{
			"key":   key,
			"error": cacheErr.Error(),
		})
	}
	return payload, nil
}

// WarmCache recomputes the whole-collection entry so that the first
// unfiltered request after an invalidation is served from cache.
func (s *catalogService) WarmCache(ctx context.Context) error {
	_, err := s.ListProducts(ctx, CatalogQuery{NoCache: true})
	return err
}

// parseCatalogQuery validates the raw query values and compiles them
// into a repository filter.
func parseCatalogQuery(query CatalogQuery) (repository.CatalogFilter, error) {
	filter := repository.CatalogFilter{
		SortDescending: strings.EqualFold(query.SortOrder, "desc"),
	}

	if query.IDs != "" {
		filter.IDs = splitList(query.IDs)
	}

	if query.Category != "" {
		value, err := strconv.Atoi(query.Category)
		if err != nil {
			return filter, ErrInvalidFilter
		}
		category := model.ProductCategory(value)
		filter.CategoryID = &category
	}

	var err error
	if filter.MinPrice, err = parsePrice(query.MinPrice); err != nil {
		return filter, err
	}
	if filter.MaxPrice, err = parsePrice(query.MaxPrice); err != nil {
		return filter, err
	}

	for _, name := range splitList(query.Length) {
		bucket, ok := repository.ParseLengthBucket(name)
		if !ok {
			return filter, ErrInvalidFilter
		}
		filter.Lengths = append(filter.Lengths, bucket)
	}

	for _, raw := range splitList(query.Type) {
		value, err := strconv.Atoi(raw)
		if err != nil {
			return filter, ErrInvalidFilter
		}
		filter.Types = append(filter.Types, model.ProductType(value))
	}

	// Pagination is omitted entirely when page is absent; limit then
	// defaults to 10.
	if query.Page != "" {
		page, err := strconv.Atoi(query.Page)
		if err != nil || page < 1 {
			return filter, ErrInvalidFilter
		}
		limit := defaultPageLimit
		if query.Limit != "" {
			if limit, err = strconv.Atoi(query.Limit); err != nil || limit < 1 {
				return filter, ErrInvalidFilter
			}
		}
		filter.Page = page
		filter.Limit = limit
	}

	return filter, nil
}

func parsePrice(raw string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || value < 0 {
		return nil, ErrInvalidFilter
	}
	return &value, nil
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
