package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/princesss/catalog-backend/internal/app/model"
	"github.com/princesss/catalog-backend/internal/app/repository"
	"github.com/princesss/catalog-backend/internal/cache"
	"github.com/princesss/catalog-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func floatPtr(v float64) *float64 { return &v }

func setupCatalogTest(t *testing.T) (*gorm.DB, CatalogService, *cache.MemoryStore) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	store := cache.NewMemoryStore()
	svc := NewCatalogService(
		repository.NewProductRepository(testDB),
		repository.NewVariantRepository(testDB),
		store,
		time.Hour,
	)
	return testDB, svc, store
}

func createProduct(t *testing.T, testDB *gorm.DB, name string, length int, category model.ProductCategory, variantPrices ...float64) *model.Product {
	t.Helper()

	product := &model.Product{
		Name:        name,
		DisplayName: name,
		Type:        model.TypeNatural,
		Length:      length,
		BasePrice:   variantPrices[0],
		CategoryID:  category,
	}
	require.NoError(t, testDB.Create(product).Error)

	for i, price := range variantPrices {
		require.NoError(t, testDB.Create(&model.Variant{
			ProductID:     product.ID,
			SKU:           name + "-" + string(rune('A'+i)),
			Price:         price,
			Color:         "natural-black",
			StockQuantity: 3,
		}).Error)
	}
	return product
}

func decodeList(t *testing.T, payload []byte) ProductListResponse {
	t.Helper()
	var response ProductListResponse
	require.NoError(t, json.Unmarshal(payload, &response))
	return response
}

func TestCatalogService_ListProducts_CacheIdempotence(t *testing.T) {
	testDB, svc, _ := setupCatalogTest(t)
	defer db.CleanupTestDB(testDB)

	createProduct(t, testDB, "one", 12, model.CategoryWigs, 100)

	ctx := context.Background()
	query := CatalogQuery{Category: "1"}

	first, err := svc.ListProducts(ctx, query)
	require.NoError(t, err)

	// A product added after the first request must not surface while
	// the cached entry is alive
	createProduct(t, testDB, "two", 12, model.CategoryWigs, 50)

	second, err := svc.ListProducts(ctx, query)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// noCache recomputes and refreshes the entry
	fresh, err := svc.ListProducts(ctx, CatalogQuery{Category: "1", NoCache: true})
	require.NoError(t, err)
	assert.NotEqual(t, first, fresh)
	assert.Len(t, decodeList(t, fresh).Products, 2)

	// The refreshed entry now serves plain requests
	third, err := svc.ListProducts(ctx, query)
	require.NoError(t, err)
	assert.Equal(t, fresh, third)
}

func TestCatalogService_ListProducts_Unpaginated(t *testing.T) {
	testDB, svc, _ := setupCatalogTest(t)
	defer db.CleanupTestDB(testDB)

	for _, name := range []string{"a", "b", "c"} {
		createProduct(t, testDB, name, 12, model.CategoryWigs, 100)
	}

	payload, err := svc.ListProducts(context.Background(), CatalogQuery{})
	require.NoError(t, err)

	response := decodeList(t, payload)
	assert.Len(t, response.Products, 3)
	assert.Equal(t, int64(3), response.TotalProducts)
	assert.Equal(t, 1, response.TotalPages)
}

func TestCatalogService_ListProducts_PaginatedDescending(t *testing.T) {
	testDB, svc, _ := setupCatalogTest(t)
	defer db.CleanupTestDB(testDB)

	// Five qualifying products and one outside the category
	prices := []float64{100, 200, 300, 400, 500}
	names := []string{"p100", "p200", "p300", "p400", "p500"}
	for i := range prices {
		createProduct(t, testDB, names[i], 12, model.CategoryWigs, prices[i])
	}
	createProduct(t, testDB, "other-category", 12, model.CategoryTails, 999)

	payload, err := svc.ListProducts(context.Background(), CatalogQuery{
		Category:  "1",
		Page:      "1",
		Limit:     "2",
		SortOrder: "desc",
	})
	require.NoError(t, err)

	response := decodeList(t, payload)
	require.Len(t, response.Products, 2)
	assert.Equal(t, "p500", response.Products[0].Name)
	assert.Equal(t, "p400", response.Products[1].Name)
	assert.Equal(t, int64(5), response.TotalProducts)
	assert.Equal(t, 3, response.TotalPages)
}

func TestCatalogService_ListProducts_DefaultLimit(t *testing.T) {
	testDB, svc, _ := setupCatalogTest(t)
	defer db.CleanupTestDB(testDB)

	for i := 0; i < 12; i++ {
		createProduct(t, testDB, "prod-"+string(rune('a'+i)), 12, model.CategoryWigs, float64(100+i))
	}

	// page present without limit: limit defaults to 10
	payload, err := svc.ListProducts(context.Background(), CatalogQuery{Page: "1"})
	require.NoError(t, err)

	response := decodeList(t, payload)
	assert.Len(t, response.Products, 10)
	assert.Equal(t, 2, response.TotalPages)
}

func TestCatalogService_ListProducts_ExpandsVariants(t *testing.T) {
	testDB, svc, _ := setupCatalogTest(t)
	defer db.CleanupTestDB(testDB)

	require.NoError(t, testDB.Create(&model.Color{
		Name:        "natural-black",
		DisplayName: "Natural Black",
	}).Error)
	createProduct(t, testDB, "rich", 12, model.CategoryWigs, 300, 100, 200)

	payload, err := svc.ListProducts(context.Background(), CatalogQuery{})
	require.NoError(t, err)

	response := decodeList(t, payload)
	require.Len(t, response.Products, 1)
	require.Len(t, response.Products[0].Variants, 3)
	assert.Equal(t, 100.0, response.Products[0].Variants[0].Price)
	assert.Equal(t, "Natural Black", response.Products[0].Variants[0].ColorDisplayName)
	assert.True(t, response.Products[0].Variants[0].Availability)
}

func TestCatalogService_ListProducts_InvalidFilter(t *testing.T) {
	testDB, svc, _ := setupCatalogTest(t)
	defer db.CleanupTestDB(testDB)

	tests := []struct {
		name  string
		query CatalogQuery
	}{
		{name: "bad price", query: CatalogQuery{MinPrice: "abc"}},
		{name: "negative price", query: CatalogQuery{MaxPrice: "-5"}},
		{name: "unknown length bucket", query: CatalogQuery{Length: "GIGANTIC"}},
		{name: "bad type", query: CatalogQuery{Type: "xl"}},
		{name: "bad page", query: CatalogQuery{Page: "0"}},
		{name: "bad limit", query: CatalogQuery{Page: "1", Limit: "none"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ListProducts(context.Background(), tt.query)
			assert.ErrorIs(t, err, ErrInvalidFilter)
		})
	}
}

func TestCatalogService_GetProduct(t *testing.T) {
	testDB, svc, store := setupCatalogTest(t)
	defer db.CleanupTestDB(testDB)

	product := createProduct(t, testDB, "detail", 12, model.CategoryWigs, 150)

	ctx := context.Background()
	first, err := svc.GetProduct(ctx, product.ID, false)
	require.NoError(t, err)

	// Served from cache on the second call
	_, hit, err := store.Get(ctx, cache.DetailKey(product.ID))
	require.NoError(t, err)
	assert.True(t, hit)

	second, err := svc.GetProduct(ctx, product.ID, false)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	var response struct {
		Product model.Product `json:"product"`
	}
	require.NoError(t, json.Unmarshal(first, &response))
	assert.Equal(t, "detail", response.Product.Name)
}

func TestCatalogService_GetProduct_NotFound(t *testing.T) {
	testDB, svc, _ := setupCatalogTest(t)
	defer db.CleanupTestDB(testDB)

	_, err := svc.GetProduct(context.Background(), "missing-id", false)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCatalogService_WarmCache(t *testing.T) {
	testDB, svc, store := setupCatalogTest(t)
	defer db.CleanupTestDB(testDB)

	createProduct(t, testDB, "warm", 12, model.CategoryWigs, 100)

	ctx := context.Background()
	require.NoError(t, svc.WarmCache(ctx))

	_, hit, err := store.Get(ctx, cache.ListKey(cache.ListKeyParts{}))
	require.NoError(t, err)
	assert.True(t, hit)
}
