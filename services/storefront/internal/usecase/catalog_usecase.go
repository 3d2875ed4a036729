package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"sync/atomic"
	"time"

	"farmlot/pkg/logger"
	"farmlot/services/storefront/internal/entity"
	"farmlot/services/storefront/internal/repo/persistent"

	"github.com/redis/go-redis/v9"
)

const (
	listingsCacheKey = "storefront:listings"
	listingsCacheTTL = 5 * time.Minute
)

type CatalogUseCase interface {
	// ActiveListings returns the visible catalog, served from Redis when
	// fresh and from Postgres on a miss.
	ActiveListings(ctx context.Context) ([]*entity.Listing, error)
	// Invalidate drops the cached catalog. Called when a listing-changed
	// event arrives from the admin service.
	Invalidate(ctx context.Context)
}

type catalogUseCase struct {
	listingRepo persistent.ListingRepository
	redisClient *redis.Client
	logger      *logger.Logger

	// version advances on every invalidation. A fetch records the version
	// it started under and only fills the cache if no invalidation landed
	// in between, so a slow fetch can never publish stale data.
	version atomic.Uint64
}

func NewCatalogUseCase(
	listingRepo persistent.ListingRepository,
	redisClient *redis.Client,
	logger *logger.Logger,
) CatalogUseCase {
	return &catalogUseCase{
		listingRepo: listingRepo,
		redisClient: redisClient,
		logger:      logger,
	}
}

func (uc *catalogUseCase) ActiveListings(ctx context.Context) ([]*entity.Listing, error) {
	if cached := uc.readCache(ctx); cached != nil {
		return cached, nil
	}

	startedAt := uc.version.Load()

	listings, err := uc.listingRepo.ListActive()
	if err != nil {
		return nil, err
	}

	if uc.version.Load() == startedAt {
		uc.writeCache(ctx, listings)
	}

	return listings, nil
}

func (uc *catalogUseCase) Invalidate(ctx context.Context) {
	uc.version.Add(1)

	if uc.redisClient == nil {
		return
	}
	if err := uc.redisClient.Del(ctx, listingsCacheKey).Err(); err != nil {
		uc.logger.Warn("Failed to drop listings cache: %v", err)
	}
}

func (uc *catalogUseCase) readCache(ctx context.Context) []*entity.Listing {
	if uc.redisClient == nil {
		return nil
	}

	data, err := uc.redisClient.Get(ctx, listingsCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			uc.logger.Warn("Failed to read listings cache: %v", err)
		}
		return nil
	}

	var listings []*entity.Listing
	if err := json.Unmarshal(data, &listings); err != nil {
		uc.logger.Warn("Dropping undecodable listings cache: %v", err)
		uc.redisClient.Del(ctx, listingsCacheKey)
		return nil
	}
	return listings
}

func (uc *catalogUseCase) writeCache(ctx context.Context, listings []*entity.Listing) {
	if uc.redisClient == nil {
		return
	}

	data, err := json.Marshal(listings)
	if err != nil {
		return
	}
	if err := uc.redisClient.Set(ctx, listingsCacheKey, data, listingsCacheTTL).Err(); err != nil {
		uc.logger.Warn("Failed to fill listings cache: %v", err)
	}
}

// FilterByCategory narrows an already-fetched catalog in memory; it never
// triggers another query. Empty and "all" match everything, matching is
// case-insensitive.
func FilterByCategory(listings []*entity.Listing, category string) []*entity.Listing {
	if category == "" || strings.EqualFold(category, "all") {
		return listings
	}

	filtered := make([]*entity.Listing, 0, len(listings))
	for _, l := range listings {
		if strings.EqualFold(l.Category, category) {
			filtered = append(filtered, l)
		}
	}
	return filtered
}

// Categories lists the distinct categories present, in first-seen order,
// for the tag strip.
func Categories(listings []*entity.Listing) []string {
	seen := make(map[string]bool)
	var categories []string
	for _, l := range listings {
		key := strings.ToLower(l.Category)
		if l.Category == "" || seen[key] {
			continue
		}
		seen[key] = true
		categories = append(categories, l.Category)
	}
	return categories
}
