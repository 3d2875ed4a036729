package usecase

import (
	"context"
	"testing"

	"farmlot/pkg/logger"
	"farmlot/services/storefront/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockListingRepository is a mock implementation of persistent.ListingRepository
type MockListingRepository struct {
	mock.Mock
}

func (m *MockListingRepository) ListActive() ([]*entity.Listing, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Listing), args.Error(1)
}

func sampleListings() []*entity.Listing {
	return []*entity.Listing{
		{ID: "listing-1", Name: "John Deere 5075E", Category: "Tractors", IsActive: true},
		{ID: "listing-2", Name: "Round Baler", Category: "Harvesters", IsActive: true},
		{ID: "listing-3", Name: "Disc Harrow", Category: "tractors", IsActive: true},
	}
}

func TestActiveListings_FetchesFromRepo(t *testing.T) {
	mockRepo := new(MockListingRepository)
	uc := NewCatalogUseCase(mockRepo, nil, logger.New())

	mockRepo.On("ListActive").Return(sampleListings(), nil)

	listings, err := uc.ActiveListings(context.Background())
	assert.NoError(t, err)
	assert.Len(t, listings, 3)
	mockRepo.AssertExpectations(t)
}

func TestActiveListings_RepoError(t *testing.T) {
	mockRepo := new(MockListingRepository)
	uc := NewCatalogUseCase(mockRepo, nil, logger.New())

	mockRepo.On("ListActive").Return(nil, assert.AnError)

	_, err := uc.ActiveListings(context.Background())
	assert.Error(t, err)
}

func TestActiveListings_InvalidationDuringFetchSkipsCacheFill(t *testing.T) {
	mockRepo := new(MockListingRepository)
	ucIface := NewCatalogUseCase(mockRepo, nil, logger.New())
	uc := ucIface.(*catalogUseCase)

	// An invalidation lands while the repo fetch is in flight. The fetch
	// result is still served, but the version moved on so the cache fill
	// must be skipped.
	mockRepo.On("ListActive").Run(func(args mock.Arguments) {
		uc.Invalidate(context.Background())
	}).Return(sampleListings(), nil)

	before := uc.version.Load()
	listings, err := uc.ActiveListings(context.Background())
	assert.NoError(t, err)
	assert.Len(t, listings, 3)
	assert.NotEqual(t, before, uc.version.Load())
}

func TestInvalidate_AdvancesVersion(t *testing.T) {
	uc := NewCatalogUseCase(new(MockListingRepository), nil, logger.New()).(*catalogUseCase)

	before := uc.version.Load()
	uc.Invalidate(context.Background())
	uc.Invalidate(context.Background())
	assert.Equal(t, before+2, uc.version.Load())
}

func TestFilterByCategory(t *testing.T) {
	listings := sampleListings()

	assert.Len(t, FilterByCategory(listings, ""), 3)
	assert.Len(t, FilterByCategory(listings, "all"), 3)
	assert.Len(t, FilterByCategory(listings, "All"), 3)

	// Matching is case-insensitive on both sides.
	tractors := FilterByCategory(listings, "TRACTORS")
	assert.Len(t, tractors, 2)
	assert.Equal(t, "listing-1", tractors[0].ID)
	assert.Equal(t, "listing-3", tractors[1].ID)

	assert.Empty(t, FilterByCategory(listings, "unknown"))
}

func TestCategories_DistinctFirstSeenOrder(t *testing.T) {
	categories := Categories(sampleListings())
	assert.Equal(t, []string{"Tractors", "Harvesters"}, categories)
}

func TestCategories_SkipsEmpty(t *testing.T) {
	categories := Categories([]*entity.Listing{
		{Category: ""},
		{Category: "Tractors"},
	})
	assert.Equal(t, []string{"Tractors"}, categories)
}
