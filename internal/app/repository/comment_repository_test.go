package repository

import (
	"testing"

	"github.com/princesss/catalog-backend/internal/app/model"
	"github.com/princesss/catalog-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCommentTest(t *testing.T) (*gorm.DB, CommentRepository, *model.Product) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	product := &model.Product{
		Name:       "review-target",
		Type:       model.TypeNatural,
		BasePrice:  100,
		CategoryID: model.CategoryWigs,
	}
	require.NoError(t, testDB.Create(product).Error)

	return testDB, NewCommentRepository(testDB), product
}

func TestCommentRepository_Create_DefaultAuthor(t *testing.T) {
	testDB, repo, product := setupCommentTest(t)
	defer db.CleanupTestDB(testDB)

	comment := &model.Comment{
		ProductID: product.ID,
		Text:      "Lovely fit",
		Rating:    5,
	}
	require.NoError(t, repo.Create(comment))

	assert.NotEmpty(t, comment.ID)
	assert.Equal(t, model.DefaultCommentAuthor, comment.Author)
}

func TestCommentRepository_RatingSummary(t *testing.T) {
	testDB, repo, product := setupCommentTest(t)
	defer db.CleanupTestDB(testDB)

	for _, rating := range []int{5, 4, 4} {
		require.NoError(t, repo.Create(&model.Comment{
			ProductID: product.ID,
			Author:    "Reviewer",
			Text:      "ok",
			Rating:    rating,
		}))
	}

	summary, err := repo.RatingSummary(product.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(3), summary.Count)
	require.NotNil(t, summary.Average)
	assert.InDelta(t, 4.3, *summary.Average, 0.001)
}

func TestCommentRepository_RatingSummary_NoReviews(t *testing.T) {
	testDB, repo, product := setupCommentTest(t)
	defer db.CleanupTestDB(testDB)

	summary, err := repo.RatingSummary(product.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(0), summary.Count)
	assert.Nil(t, summary.Average)
}

func TestCommentRepository_Delete_NotFound(t *testing.T) {
	testDB, repo, _ := setupCommentTest(t)
	defer db.CleanupTestDB(testDB)

	err := repo.Delete("missing-id")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
