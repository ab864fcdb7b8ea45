package service

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/princesss/catalog-backend/internal/app/model"
	"github.com/princesss/catalog-backend/internal/app/repository"
	"github.com/princesss/catalog-backend/internal/cache"
	"github.com/princesss/catalog-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeObjectStorage keeps uploaded payloads in memory
type fakeObjectStorage struct {
	mu      sync.Mutex
	objects map[string]string
}

func newFakeObjectStorage() *fakeObjectStorage {
	return &fakeObjectStorage{objects: make(map[string]string)}
}

func (f *fakeObjectStorage) Put(ctx context.Context, key string, body io.Reader, contentType string) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = string(data)
	return nil
}

func (f *fakeObjectStorage) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return io.NopCloser(strings.NewReader(f.objects[key])), nil
}

func (f *fakeObjectStorage) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, key)
	return nil
}

func (f *fakeObjectStorage) URL(key string) string {
	return "https://cdn.test/" + key
}

func (f *fakeObjectStorage) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.objects)
}

type variantTestEnv struct {
	db      *gorm.DB
	svc     VariantService
	store   *fakeObjectStorage
	product *model.Product
}

func setupVariantTest(t *testing.T) *variantTestEnv {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	product := &model.Product{
		Name:       "variant-host",
		Type:       model.TypeNatural,
		BasePrice:  100,
		CategoryID: model.CategoryWigs,
	}
	require.NoError(t, testDB.Create(product).Error)

	store := newFakeObjectStorage()
	svc := NewVariantService(
		repository.NewVariantRepository(testDB),
		repository.NewImageRepository(testDB),
		repository.NewProductRepository(testDB),
		store,
		cache.NewMemoryStore(),
		testDB,
	)

	return &variantTestEnv{db: testDB, svc: svc, store: store, product: product}
}

func upload(name string) ImageUpload {
	return ImageUpload{
		Filename:    name,
		ContentType: "image/jpeg",
		Body:        strings.NewReader("payload-" + name),
	}
}

func (env *variantTestEnv) createVariant(t *testing.T, sku string, uploads ...ImageUpload) *model.Variant {
	t.Helper()
	variant, err := env.svc.CreateVariant(context.Background(), CreateVariantInput{
		ProductID:     env.product.ID,
		SKU:           sku,
		Price:         100,
		Color:         "natural-black",
		StockQuantity: 5,
		Images:        uploads,
	})
	require.NoError(t, err)
	return variant
}

func TestVariantService_CreateVariant_ProductMissing(t *testing.T) {
	env := setupVariantTest(t)
	defer db.CleanupTestDB(env.db)

	_, err := env.svc.CreateVariant(context.Background(), CreateVariantInput{
		ProductID: "missing-id",
		SKU:       "X",
		Price:     100,
		Color:     "natural-black",
	})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestVariantService_CreateVariant_WithImages(t *testing.T) {
	env := setupVariantTest(t)
	defer db.CleanupTestDB(env.db)

	variant := env.createVariant(t, "V1", upload("a.jpg"), upload("b.jpg"))

	require.Len(t, variant.Images, 2)
	assert.Equal(t, 0, variant.Images[0].SortOrder)
	assert.Equal(t, 1, variant.Images[1].SortOrder)
	assert.Equal(t, 2, env.store.count())
}

func TestVariantService_AppendImages_ContinuesAfterMax(t *testing.T) {
	env := setupVariantTest(t)
	defer db.CleanupTestDB(env.db)

	variant := env.createVariant(t, "V1")

	// Existing gallery with a gap; the max sort order is 4
	for _, order := range []int{0, 4} {
		require.NoError(t, env.db.Create(&model.VariantImage{
			VariantID: variant.ID,
			URL:       "seed-" + string(rune('0'+order)),
			SortOrder: order,
		}).Error)
	}

	images, err := env.svc.AppendImages(context.Background(), variant.ID,
		[]ImageUpload{upload("c.jpg"), upload("d.jpg"), upload("e.jpg")})
	require.NoError(t, err)

	require.Len(t, images, 3)
	assert.Equal(t, 5, images[0].SortOrder)
	assert.Equal(t, 6, images[1].SortOrder)
	assert.Equal(t, 7, images[2].SortOrder)
}

func TestVariantService_AppendImages_VariantMissing(t *testing.T) {
	env := setupVariantTest(t)
	defer db.CleanupTestDB(env.db)

	_, err := env.svc.AppendImages(context.Background(), "missing-id", []ImageUpload{upload("a.jpg")})
	assert.ErrorIs(t, err, ErrVariantNotFound)
	assert.Equal(t, 0, env.store.count())
}

func TestVariantService_ResortImages(t *testing.T) {
	env := setupVariantTest(t)
	defer db.CleanupTestDB(env.db)

	variant := env.createVariant(t, "V1", upload("a.jpg"), upload("b.jpg"), upload("c.jpg"))

	// Reverse the gallery
	orders := []ImageOrder{
		{ID: variant.Images[0].ID, SortOrder: 2},
		{ID: variant.Images[1].ID, SortOrder: 1},
		{ID: variant.Images[2].ID, SortOrder: 0},
	}

	images, err := env.svc.ResortImages(context.Background(), variant.ID, orders)
	require.NoError(t, err)

	require.Len(t, images, 3)
	assert.Equal(t, variant.Images[2].ID, images[0].ID)
	assert.Equal(t, variant.Images[0].ID, images[2].ID)
}

func TestVariantService_ResortImages_RejectsForeignImage(t *testing.T) {
	env := setupVariantTest(t)
	defer db.CleanupTestDB(env.db)

	target := env.createVariant(t, "V1", upload("a.jpg"), upload("b.jpg"))
	other := env.createVariant(t, "V2", upload("x.jpg"))

	orders := []ImageOrder{
		{ID: target.Images[0].ID, SortOrder: 1},
		{ID: other.Images[0].ID, SortOrder: 0},
	}

	_, err := env.svc.ResortImages(context.Background(), target.ID, orders)
	assert.ErrorIs(t, err, ErrImageNotOwned)

	// The whole batch was rejected: valid entries stay untouched
	var unchanged model.VariantImage
	require.NoError(t, env.db.First(&unchanged, "id = ?", target.Images[0].ID).Error)
	assert.Equal(t, 0, unchanged.SortOrder)
}

func TestVariantService_DeleteVariant_Cascades(t *testing.T) {
	env := setupVariantTest(t)
	defer db.CleanupTestDB(env.db)

	variant := env.createVariant(t, "V1", upload("a.jpg"), upload("b.jpg"))
	require.Equal(t, 2, env.store.count())

	require.NoError(t, env.svc.DeleteVariant(context.Background(), variant.ID))

	var variantCount, imageCount int64
	require.NoError(t, env.db.Model(&model.Variant{}).Count(&variantCount).Error)
	require.NoError(t, env.db.Model(&model.VariantImage{}).Count(&imageCount).Error)
	assert.Equal(t, int64(0), variantCount)
	assert.Equal(t, int64(0), imageCount)
	assert.Equal(t, 0, env.store.count())
}

func TestVariantService_DeleteImage(t *testing.T) {
	env := setupVariantTest(t)
	defer db.CleanupTestDB(env.db)

	variant := env.createVariant(t, "V1", upload("a.jpg"), upload("b.jpg"))

	require.NoError(t, env.svc.DeleteImage(context.Background(), variant.Images[0].ID))

	var remaining int64
	require.NoError(t, env.db.Model(&model.VariantImage{}).Count(&remaining).Error)
	assert.Equal(t, int64(1), remaining)
	assert.Equal(t, 1, env.store.count())
}

func TestVariantService_DeleteImage_NotFound(t *testing.T) {
	env := setupVariantTest(t)
	defer db.CleanupTestDB(env.db)

	env.createVariant(t, "V1", upload("a.jpg"))

	err := env.svc.DeleteImage(context.Background(), "missing-id")
	assert.ErrorIs(t, err, ErrImageNotFound)

	// Storage stays untouched when the metadata row is missing
	assert.Equal(t, 1, env.store.count())
}

func TestVariantService_UpdateVariant(t *testing.T) {
	env := setupVariantTest(t)
	defer db.CleanupTestDB(env.db)

	variant := env.createVariant(t, "V1")

	newPrice := 80.0
	zeroStock := 0
	updated, err := env.svc.UpdateVariant(context.Background(), variant.ID, UpdateVariantInput{
		Price:         &newPrice,
		StockQuantity: &zeroStock,
	})
	require.NoError(t, err)

	assert.Equal(t, 80.0, updated.Price)
	assert.Equal(t, 0, updated.StockQuantity)

	fetched, err := env.svc.GetVariant(context.Background(), variant.ID)
	require.NoError(t, err)
	assert.False(t, fetched.Availability)
}
