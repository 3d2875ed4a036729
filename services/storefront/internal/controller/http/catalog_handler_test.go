package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"farmlot/pkg/logger"
	"farmlot/services/storefront/internal/entity"
	"farmlot/services/storefront/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockCatalogUseCase is a mock implementation of CatalogUseCase
type MockCatalogUseCase struct {
	mock.Mock
}

func (m *MockCatalogUseCase) ActiveListings(ctx context.Context) ([]*entity.Listing, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Listing), args.Error(1)
}

func (m *MockCatalogUseCase) Invalidate(ctx context.Context) {
	m.Called(ctx)
}

var _ usecase.CatalogUseCase = (*MockCatalogUseCase)(nil)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func activeListings() []*entity.Listing {
	return []*entity.Listing{
		{ID: "listing-1", Name: "John Deere 5075E", Category: "Tractors", Price: 45500, IsActive: true},
		{ID: "listing-2", Name: "Round Baler", Category: "Harvesters", Price: 12000, IsActive: true},
	}
}

func TestPage_RendersCatalog(t *testing.T) {
	mockUseCase := new(MockCatalogUseCase)
	handler := NewCatalogHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/", handler.Page)

	mockUseCase.On("ActiveListings", mock.Anything).Return(activeListings(), nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "John Deere 5075E")
	assert.Contains(t, w.Body.String(), "Round Baler")
	assert.Contains(t, w.Body.String(), "Harvesters")
}

func TestPage_CatalogUnavailable(t *testing.T) {
	mockUseCase := new(MockCatalogUseCase)
	handler := NewCatalogHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/", handler.Page)

	mockUseCase.On("ActiveListings", mock.Anything).Return(nil, assert.AnError)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestListListings_NoFilter(t *testing.T) {
	mockUseCase := new(MockCatalogUseCase)
	handler := NewCatalogHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/api/v1/listings", handler.ListListings)

	mockUseCase.On("ActiveListings", mock.Anything).Return(activeListings(), nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1/listings", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string][]entity.Listing
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Len(t, response["listings"], 2)
}

func TestListListings_CategoryFilter(t *testing.T) {
	mockUseCase := new(MockCatalogUseCase)
	handler := NewCatalogHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/api/v1/listings", handler.ListListings)

	mockUseCase.On("ActiveListings", mock.Anything).Return(activeListings(), nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1/listings?category=tractors", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string][]entity.Listing
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Len(t, response["listings"], 1)
	assert.Equal(t, "listing-1", response["listings"][0].ID)
}
