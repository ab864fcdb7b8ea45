package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/princesss/catalog-backend/internal/app/model"
	"github.com/princesss/catalog-backend/internal/app/repository"
	"github.com/princesss/catalog-backend/internal/cache"
	"github.com/princesss/catalog-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type productTestEnv struct {
	db    *gorm.DB
	svc   ProductService
	store *fakeObjectStorage
	cache *cache.MemoryStore
}

func setupProductServiceTest(t *testing.T) *productTestEnv {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	store := newFakeObjectStorage()
	memCache := cache.NewMemoryStore()
	svc := NewProductService(
		repository.NewProductRepository(testDB),
		store,
		memCache,
		testDB,
	)

	return &productTestEnv{db: testDB, svc: svc, store: store, cache: memCache}
}

func TestProductService_CreateProduct(t *testing.T) {
	env := setupProductServiceTest(t)
	defer db.CleanupTestDB(env.db)

	product := &model.Product{
		Name:       "classic-bob",
		Type:       model.TypeNatural,
		BasePrice:  249,
		CategoryID: model.CategoryWigs,
	}

	require.NoError(t, env.svc.CreateProduct(context.Background(), product))
	assert.NotEmpty(t, product.ID)
}

func TestProductService_CreateProduct_DuplicateName(t *testing.T) {
	env := setupProductServiceTest(t)
	defer db.CleanupTestDB(env.db)

	product := &model.Product{
		Name:       "classic-bob",
		Type:       model.TypeNatural,
		BasePrice:  249,
		CategoryID: model.CategoryWigs,
	}
	require.NoError(t, env.svc.CreateProduct(context.Background(), product))

	duplicate := &model.Product{
		Name:       "classic-bob",
		Type:       model.TypeSynthetic,
		BasePrice:  99,
		CategoryID: model.CategoryWigs,
	}
	err := env.svc.CreateProduct(context.Background(), duplicate)
	assert.ErrorIs(t, err, ErrProductNameTaken)
}

func TestProductService_CreateProduct_InvalidatesCache(t *testing.T) {
	env := setupProductServiceTest(t)
	defer db.CleanupTestDB(env.db)

	ctx := context.Background()
	key := cache.ListKey(cache.ListKeyParts{Category: "1"})
	require.NoError(t, env.cache.Set(ctx, key, "stale", time.Hour))

	product := &model.Product{
		Name:       "fresh",
		Type:       model.TypeNatural,
		BasePrice:  100,
		CategoryID: model.CategoryWigs,
	}
	require.NoError(t, env.svc.CreateProduct(ctx, product))

	_, hit, err := env.cache.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestProductService_UpdateProduct_NotFound(t *testing.T) {
	env := setupProductServiceTest(t)
	defer db.CleanupTestDB(env.db)

	err := env.svc.UpdateProduct(context.Background(), &model.Product{
		ID:         "missing-id",
		Name:       "ghost",
		Type:       model.TypeNatural,
		BasePrice:  100,
		CategoryID: model.CategoryWigs,
	})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProductService_DeleteProduct_Cascades(t *testing.T) {
	env := setupProductServiceTest(t)
	defer db.CleanupTestDB(env.db)

	ctx := context.Background()

	product := &model.Product{
		Name:       "doomed",
		Type:       model.TypeNatural,
		BasePrice:  100,
		CategoryID: model.CategoryWigs,
	}
	require.NoError(t, env.svc.CreateProduct(ctx, product))

	variant := &model.Variant{
		ProductID:     product.ID,
		SKU:           "D1",
		Price:         100,
		Color:         "natural-black",
		StockQuantity: 1,
	}
	require.NoError(t, env.db.Create(variant).Error)

	for _, key := range []string{"img-1", "img-2"} {
		require.NoError(t, env.store.Put(ctx, key, bytes.NewReader([]byte("data")), "image/jpeg"))
		require.NoError(t, env.db.Create(&model.VariantImage{
			VariantID: variant.ID,
			URL:       key,
		}).Error)
	}
	require.Equal(t, 2, env.store.count())

	require.NoError(t, env.svc.DeleteProduct(ctx, product.ID))

	var productCount, variantCount, imageCount int64
	require.NoError(t, env.db.Model(&model.Product{}).Count(&productCount).Error)
	require.NoError(t, env.db.Model(&model.Variant{}).Count(&variantCount).Error)
	require.NoError(t, env.db.Model(&model.VariantImage{}).Count(&imageCount).Error)
	assert.Equal(t, int64(0), productCount)
	assert.Equal(t, int64(0), variantCount)
	assert.Equal(t, int64(0), imageCount)
	assert.Equal(t, 0, env.store.count())
}

func TestProductService_DeleteProduct_NotFound(t *testing.T) {
	env := setupProductServiceTest(t)
	defer db.CleanupTestDB(env.db)

	err := env.svc.DeleteProduct(context.Background(), "missing-id")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProductService_ExportProducts(t *testing.T) {
	env := setupProductServiceTest(t)
	defer db.CleanupTestDB(env.db)

	ctx := context.Background()

	product := &model.Product{
		Name:       "exported",
		Type:       model.TypeNatural,
		Length:     12,
		BasePrice:  100,
		CategoryID: model.CategoryWigs,
	}
	require.NoError(t, env.svc.CreateProduct(ctx, product))
	require.NoError(t, env.db.Create(&model.Variant{
		ProductID:     product.ID,
		SKU:           "E1",
		Price:         100,
		Color:         "natural-black",
		StockQuantity: 7,
	}).Error)

	payload, err := env.svc.ExportProducts(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, payload)

	workbook, err := excelize.OpenReader(bytes.NewReader(payload))
	require.NoError(t, err)
	defer workbook.Close()

	rows, err := workbook.GetRows(workbook.GetSheetName(0))
	require.NoError(t, err)

	// Header plus one product row
	require.Len(t, rows, 2)
	assert.Equal(t, "exported", rows[1][1])
}
