package http

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"farmlot/pkg/logger"
	"farmlot/services/admin/internal/entity"
	"farmlot/services/admin/internal/repo/persistent"
	"farmlot/services/admin/internal/usecase"
	"farmlot/services/admin/internal/workspace"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockListingUseCase is a mock implementation of ListingUseCase
type MockListingUseCase struct {
	mock.Mock
}

func (m *MockListingUseCase) ListListings() ([]*entity.Listing, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Listing), args.Error(1)
}

func (m *MockListingUseCase) SetActive(id string, active bool) (*entity.Listing, error) {
	args := m.Called(id, active)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Listing), args.Error(1)
}

func (m *MockListingUseCase) SoftDelete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockListingUseCase) OpenSession(listingID string) (*usecase.EditorSession, *entity.Listing, error) {
	args := m.Called(listingID)
	var session *usecase.EditorSession
	if args.Get(0) != nil {
		session = args.Get(0).(*usecase.EditorSession)
	}
	var listing *entity.Listing
	if args.Get(1) != nil {
		listing = args.Get(1).(*entity.Listing)
	}
	return session, listing, args.Error(2)
}

func (m *MockListingUseCase) AddPhotos(sessionID string, files []*multipart.FileHeader) ([]workspace.PhotoState, []string, error) {
	args := m.Called(sessionID, files)
	var states []workspace.PhotoState
	if args.Get(0) != nil {
		states = args.Get(0).([]workspace.PhotoState)
	}
	var skipped []string
	if args.Get(1) != nil {
		skipped = args.Get(1).([]string)
	}
	return states, skipped, args.Error(2)
}

func (m *MockListingUseCase) SetMainPhoto(sessionID string, index int) ([]workspace.PhotoState, error) {
	args := m.Called(sessionID, index)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]workspace.PhotoState), args.Error(1)
}

func (m *MockListingUseCase) RemovePhoto(sessionID string, index int) ([]workspace.PhotoState, error) {
	args := m.Called(sessionID, index)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]workspace.PhotoState), args.Error(1)
}

func (m *MockListingUseCase) SaveListing(sessionID string, input usecase.ListingInput) (*entity.Listing, error) {
	args := m.Called(sessionID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Listing), args.Error(1)
}

func (m *MockListingUseCase) CancelSession(sessionID string) error {
	args := m.Called(sessionID)
	return args.Error(0)
}

var _ usecase.ListingUseCase = (*MockListingUseCase)(nil)

// MockAuthUseCase is a mock implementation of AuthUseCase
type MockAuthUseCase struct {
	mock.Mock
}

func (m *MockAuthUseCase) Login(email, password string) (*entity.User, string, error) {
	args := m.Called(email, password)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*entity.User), args.String(1), args.Error(2)
}

func (m *MockAuthUseCase) Logout(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockAuthUseCase) GetUser(userID string) (*entity.User, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

var _ usecase.AuthUseCase = (*MockAuthUseCase)(nil)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestListListings(t *testing.T) {
	mockUseCase := new(MockListingUseCase)
	handler := NewListingHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/listings", handler.ListListings)

	mockUseCase.On("ListListings").Return([]*entity.Listing{
		{ID: "listing-1", Name: "Tractor", IsActive: true},
		{ID: "listing-2", Name: "Baler", IsActive: false},
	}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/listings", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string][]entity.Listing
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Len(t, response["listings"], 2)
	mockUseCase.AssertExpectations(t)
}

func TestListingsTable_RendersHTML(t *testing.T) {
	mockUseCase := new(MockListingUseCase)
	handler := NewListingHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/listings/table", handler.ListingsTable)

	mockUseCase.On("ListListings").Return([]*entity.Listing{
		{ID: "listing-1", Name: "Tractor", Category: "tractors", Price: 45500, IsActive: true},
	}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/listings/table", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "Tractor")
	assert.Contains(t, w.Body.String(), "$45,500.00")
}

func TestSetActive(t *testing.T) {
	mockUseCase := new(MockListingUseCase)
	handler := NewListingHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.PATCH("/listings/:id/active", handler.SetActive)

	mockUseCase.On("SetActive", "listing-1", false).
		Return(&entity.Listing{ID: "listing-1", IsActive: false}, nil)

	body, _ := json.Marshal(map[string]bool{"is_active": false})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PATCH", "/listings/listing-1/active", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestSetActive_MissingBody(t *testing.T) {
	mockUseCase := new(MockListingUseCase)
	handler := NewListingHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.PATCH("/listings/:id/active", handler.SetActive)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PATCH", "/listings/listing-1/active", bytes.NewBufferString("{}"))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockUseCase.AssertNotCalled(t, "SetActive")
}

func TestSetActive_NotFound(t *testing.T) {
	mockUseCase := new(MockListingUseCase)
	handler := NewListingHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.PATCH("/listings/:id/active", handler.SetActive)

	mockUseCase.On("SetActive", "missing", true).Return(nil, persistent.ErrListingNotFound)

	body, _ := json.Marshal(map[string]bool{"is_active": true})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PATCH", "/listings/missing/active", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDelete_RequiresConfirmation(t *testing.T) {
	mockUseCase := new(MockListingUseCase)
	handler := NewListingHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.DELETE("/listings/:id", handler.Delete)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/listings/listing-1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockUseCase.AssertNotCalled(t, "SoftDelete")
}

func TestDelete_Confirmed(t *testing.T) {
	mockUseCase := new(MockListingUseCase)
	handler := NewListingHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.DELETE("/listings/:id", handler.Delete)

	mockUseCase.On("SoftDelete", "listing-1").Return(nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/listings/listing-1?confirm=true", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockUseCase.AssertExpectations(t)
}
