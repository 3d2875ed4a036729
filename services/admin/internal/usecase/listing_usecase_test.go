package usecase

import (
	"io"
	"sync"
	"testing"
	"time"

	"farmlot/pkg/logger"
	"farmlot/services/admin/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockListingRepository is a mock implementation of persistent.ListingRepository
type MockListingRepository struct {
	mock.Mock
}

func (m *MockListingRepository) List() ([]*entity.Listing, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Listing), args.Error(1)
}

func (m *MockListingRepository) GetByID(id string) (*entity.Listing, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Listing), args.Error(1)
}

func (m *MockListingRepository) Create(listing *entity.Listing) error {
	args := m.Called(listing)
	return args.Error(0)
}

func (m *MockListingRepository) Update(listing *entity.Listing) error {
	args := m.Called(listing)
	return args.Error(0)
}

func (m *MockListingRepository) SetActive(id string, active bool) error {
	args := m.Called(id, active)
	return args.Error(0)
}

func (m *MockListingRepository) SoftDelete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

type stubUploader struct {
	calls int
}

func (s *stubUploader) UploadFile(key string, body io.Reader, contentType string) (string, error) {
	s.calls++
	return "https://cdn.example.com/" + key, nil
}

func newTestUseCase(repo *MockListingRepository) (ListingUseCase, *SessionManager, *stubUploader) {
	sessions := NewSessionManager()
	uploader := &stubUploader{}
	uc := NewListingUseCase(repo, sessions, uploader, nil, logger.New())
	return uc, sessions, uploader
}

func TestOpenSession_NewListing(t *testing.T) {
	mockRepo := new(MockListingRepository)
	uc, _, _ := newTestUseCase(mockRepo)

	session, listing, err := uc.OpenSession("")
	assert.NoError(t, err)
	assert.Nil(t, listing)
	assert.Empty(t, session.ListingID)
	assert.Equal(t, 0, session.Workspace.Count())
	mockRepo.AssertNotCalled(t, "GetByID")
}

func TestOpenSession_ExistingListingSeedsWorkspace(t *testing.T) {
	mockRepo := new(MockListingRepository)
	uc, _, _ := newTestUseCase(mockRepo)

	mockRepo.On("GetByID", "listing-1").Return(&entity.Listing{
		ID:   "listing-1",
		Name: "Compact tractor",
		Photos: []entity.ListingPhoto{
			{URL: "https://cdn.example.com/a.jpg", IsMain: true, Order: 0},
			{URL: "https://cdn.example.com/b.jpg", Order: 1},
		},
	}, nil)

	session, listing, err := uc.OpenSession("listing-1")
	assert.NoError(t, err)
	assert.Equal(t, "listing-1", listing.ID)
	assert.Equal(t, "listing-1", session.ListingID)
	assert.Equal(t, 2, session.Workspace.Count())

	states := session.Workspace.Snapshot()
	assert.True(t, states[0].IsMain)
	assert.True(t, states[0].Existing)
}

func TestSaveListing_CreatesNewListing(t *testing.T) {
	mockRepo := new(MockListingRepository)
	uc, _, _ := newTestUseCase(mockRepo)

	session, _, err := uc.OpenSession("")
	assert.NoError(t, err)

	mockRepo.On("Create", mock.AnythingOfType("*entity.Listing")).Return(nil)

	listing, err := uc.SaveListing(session.ID, ListingInput{
		Name:     "John Deere 5075E",
		Category: "tractors",
		Price:    "45500.00",
		IsActive: true,
		Features: []string{"4WD", "Cab with AC"},
	})
	assert.NoError(t, err)
	assert.Equal(t, "John Deere 5075E", listing.Name)
	assert.Equal(t, 45500.0, listing.Price)
	mockRepo.AssertExpectations(t)

	// The session is consumed by a successful save.
	_, _, err = uc.AddPhotos(session.ID, nil)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSaveListing_UpdatesExistingListing(t *testing.T) {
	mockRepo := new(MockListingRepository)
	uc, _, uploader := newTestUseCase(mockRepo)

	mockRepo.On("GetByID", "listing-1").Return(&entity.Listing{
		ID: "listing-1",
		Photos: []entity.ListingPhoto{
			{URL: "https://cdn.example.com/a.jpg", IsMain: true, Order: 0},
		},
	}, nil)
	mockRepo.On("Update", mock.MatchedBy(func(l *entity.Listing) bool {
		return l.ID == "listing-1" && len(l.Photos) == 1
	})).Return(nil)

	session, _, err := uc.OpenSession("listing-1")
	assert.NoError(t, err)

	_, err = uc.SaveListing(session.ID, ListingInput{
		Name:  "Updated tractor",
		Price: "39000",
	})
	assert.NoError(t, err)

	// All photos were already uploaded, so reconcile touched nothing.
	assert.Equal(t, 0, uploader.calls)
	mockRepo.AssertExpectations(t)
}

func TestSaveListing_NameRequired(t *testing.T) {
	mockRepo := new(MockListingRepository)
	uc, _, _ := newTestUseCase(mockRepo)

	session, _, _ := uc.OpenSession("")

	_, err := uc.SaveListing(session.ID, ListingInput{Price: "100"})
	assert.ErrorIs(t, err, ErrNameRequired)
	mockRepo.AssertNotCalled(t, "Create")

	// A rejected save leaves the session open for correction.
	_, _, err = uc.AddPhotos(session.ID, nil)
	assert.NoError(t, err)
}

func TestSaveListing_RejectsBadPrice(t *testing.T) {
	mockRepo := new(MockListingRepository)
	uc, _, _ := newTestUseCase(mockRepo)

	for _, raw := range []string{"", "abc", "-5", "NaN", "+Inf"} {
		session, _, _ := uc.OpenSession("")
		_, err := uc.SaveListing(session.ID, ListingInput{Name: "Baler", Price: raw})
		assert.ErrorIs(t, err, ErrInvalidPrice, "price %q", raw)
	}
	mockRepo.AssertNotCalled(t, "Create")
}

func TestSaveListing_SessionNotFound(t *testing.T) {
	mockRepo := new(MockListingRepository)
	uc, _, _ := newTestUseCase(mockRepo)

	_, err := uc.SaveListing("no-such-session", ListingInput{Name: "Baler", Price: "100"})
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSetActive_PublishesAndReturnsListing(t *testing.T) {
	mockRepo := new(MockListingRepository)
	uc, _, _ := newTestUseCase(mockRepo)

	mockRepo.On("SetActive", "listing-1", false).Return(nil)
	mockRepo.On("GetByID", "listing-1").Return(&entity.Listing{ID: "listing-1", IsActive: false}, nil)

	listing, err := uc.SetActive("listing-1", false)
	assert.NoError(t, err)
	assert.False(t, listing.IsActive)
	mockRepo.AssertExpectations(t)
}

func TestSoftDelete(t *testing.T) {
	mockRepo := new(MockListingRepository)
	uc, _, _ := newTestUseCase(mockRepo)

	mockRepo.On("SoftDelete", "listing-1").Return(nil)

	assert.NoError(t, uc.SoftDelete("listing-1"))
	mockRepo.AssertExpectations(t)
}

func TestCancelSession_ReleasesWorkspace(t *testing.T) {
	mockRepo := new(MockListingRepository)
	uc, _, _ := newTestUseCase(mockRepo)

	session, _, _ := uc.OpenSession("")
	assert.NoError(t, uc.CancelSession(session.ID))
	assert.ErrorIs(t, uc.CancelSession(session.ID), ErrSessionNotFound)
}

func TestSetMainPhoto_OnSession(t *testing.T) {
	mockRepo := new(MockListingRepository)
	uc, _, _ := newTestUseCase(mockRepo)

	mockRepo.On("GetByID", "listing-1").Return(&entity.Listing{
		ID: "listing-1",
		Photos: []entity.ListingPhoto{
			{URL: "https://cdn.example.com/a.jpg", IsMain: true},
			{URL: "https://cdn.example.com/b.jpg"},
		},
	}, nil)

	session, _, _ := uc.OpenSession("listing-1")

	states, err := uc.SetMainPhoto(session.ID, 1)
	assert.NoError(t, err)
	assert.False(t, states[0].IsMain)
	assert.True(t, states[1].IsMain)

	states, err = uc.RemovePhoto(session.ID, 1)
	assert.NoError(t, err)
	assert.Len(t, states, 1)
	assert.True(t, states[0].IsMain)
}

func TestEditorSession_ConcurrentPhotoMutations(t *testing.T) {
	mockRepo := new(MockListingRepository)
	uc, _, _ := newTestUseCase(mockRepo)

	mockRepo.On("GetByID", "listing-1").Return(&entity.Listing{
		ID: "listing-1",
		Photos: []entity.ListingPhoto{
			{URL: "https://cdn.example.com/a.jpg", IsMain: true},
			{URL: "https://cdn.example.com/b.jpg"},
			{URL: "https://cdn.example.com/c.jpg"},
			{URL: "https://cdn.example.com/d.jpg"},
			{URL: "https://cdn.example.com/e.jpg"},
		},
	}, nil)

	session, _, err := uc.OpenSession("listing-1")
	assert.NoError(t, err)

	// Two tabs hammering the same session must never corrupt the photo
	// set; out-of-range errors are expected once removals land.
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			uc.SetMainPhoto(session.ID, i%5)
		}(i)
		go func() {
			defer wg.Done()
			uc.RemovePhoto(session.ID, 0)
		}()
	}
	wg.Wait()

	states := session.Workspace.Snapshot()
	assert.LessOrEqual(t, len(states), 5)
	if len(states) > 0 {
		mains := 0
		for _, s := range states {
			if s.IsMain {
				mains++
			}
		}
		assert.Equal(t, 1, mains)
	}
}

func TestSessionManager_ExpiredSessionSwept(t *testing.T) {
	manager := NewSessionManager()
	session := manager.Open("")
	session.createdAt = time.Now().Add(-sessionTTL - time.Minute)

	_, err := manager.Get(session.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestParsePrice(t *testing.T) {
	price, err := parsePrice("1250.50")
	assert.NoError(t, err)
	assert.Equal(t, 1250.50, price)

	price, err = parsePrice("0")
	assert.NoError(t, err)
	assert.Equal(t, 0.0, price)

	_, err = parsePrice("free")
	assert.ErrorIs(t, err, ErrInvalidPrice)
}
