package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/princesss/catalog-backend/internal/app/model"
	"github.com/princesss/catalog-backend/internal/app/repository"
	"github.com/princesss/catalog-backend/internal/app/service"
	"github.com/princesss/catalog-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCommentControllerTest(t *testing.T) (*gin.Engine, *gorm.DB, *model.Product) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	product := &model.Product{
		Name:       "reviewed",
		Type:       model.TypeNatural,
		BasePrice:  100,
		CategoryID: model.CategoryWigs,
	}
	require.NoError(t, testDB.Create(product).Error)

	commentService := service.NewCommentService(
		repository.NewCommentRepository(testDB),
		repository.NewProductRepository(testDB),
	)
	controller := NewCommentController(commentService)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/v1/comments", controller.CreateComment)
	router.GET("/v1/comments", controller.ListComments)
	router.GET("/v1/rating", controller.GetRating)

	return router, testDB, product
}

func postComment(t *testing.T, router *gin.Engine, body map[string]interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/v1/comments", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestCommentController_CreateComment(t *testing.T) {
	router, _, product := setupCommentControllerTest(t)

	w := postComment(t, router, map[string]interface{}{
		"product_id": product.ID,
		"text":       "Gorgeous color",
		"rating":     5,
	})

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Success bool          `json:"success"`
		Comment model.Comment `json:"comment"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.True(t, response.Success)
	assert.Equal(t, model.DefaultCommentAuthor, response.Comment.Author)
	assert.Equal(t, 5, response.Comment.Rating)
}

func TestCommentController_CreateComment_WithoutText(t *testing.T) {
	router, _, product := setupCommentControllerTest(t)

	w := postComment(t, router, map[string]interface{}{
		"product_id": product.ID,
		"rating":     4,
	})

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Comment model.Comment `json:"comment"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Empty(t, response.Comment.Text)
	assert.Equal(t, 4, response.Comment.Rating)
}

func TestCommentController_CreateComment_RatingBounds(t *testing.T) {
	router, _, product := setupCommentControllerTest(t)

	for _, rating := range []int{0, 6, -1} {
		w := postComment(t, router, map[string]interface{}{
			"product_id": product.ID,
			"text":       "out of bounds",
			"rating":     rating,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}
}

func TestCommentController_CreateComment_ProductMissing(t *testing.T) {
	router, _, _ := setupCommentControllerTest(t)

	w := postComment(t, router, map[string]interface{}{
		"product_id": "missing-id",
		"text":       "ghost product",
		"rating":     3,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCommentController_GetRating(t *testing.T) {
	router, _, product := setupCommentControllerTest(t)

	for _, rating := range []int{5, 4} {
		w := postComment(t, router, map[string]interface{}{
			"product_id": product.ID,
			"text":       "review",
			"rating":     rating,
		})
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/v1/rating?product_id="+product.ID, nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var summary model.RatingSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Equal(t, int64(2), summary.Count)
	require.NotNil(t, summary.Average)
	assert.InDelta(t, 4.5, *summary.Average, 0.001)
}

func TestCommentController_ListComments_RequiresProductID(t *testing.T) {
	router, _, _ := setupCommentControllerTest(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/v1/comments", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
