package persistent

import (
	"farmlot/services/storefront/internal/entity"
	"farmlot/services/storefront/internal/model"

	"gorm.io/gorm"
)

type ListingRepository interface {
	// ListActive returns visible listings only, newest first. Soft-deleted
	// rows are excluded by the deleted_at scope, hidden ones by is_active.
	ListActive() ([]*entity.Listing, error)
}

type listingRepository struct {
	db *gorm.DB
}

func NewListingRepository(db *gorm.DB) ListingRepository {
	return &listingRepository{db: db}
}

func (r *listingRepository) ListActive() ([]*entity.Listing, error) {
	var listingModels []model.ListingModel
	err := r.db.Preload("Photos", func(db *gorm.DB) *gorm.DB {
		return db.Order("listing_photos.sort_order ASC")
	}).
		Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&listingModels).Error
	if err != nil {
		return nil, err
	}

	listings := make([]*entity.Listing, len(listingModels))
	for i := range listingModels {
		listings[i] = ToListingEntity(&listingModels[i])
	}
	return listings, nil
}
