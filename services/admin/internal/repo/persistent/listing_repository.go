package persistent

import (
	"errors"

	"farmlot/services/admin/internal/entity"
	"farmlot/services/admin/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrListingNotFound = errors.New("listing not found")

type ListingRepository interface {
	// List returns every non-deleted listing, newest first, regardless of
	// visibility. Soft-deleted rows are excluded by the deleted_at scope.
	List() ([]*entity.Listing, error)
	GetByID(id string) (*entity.Listing, error)
	Create(listing *entity.Listing) error
	// Update persists the listing fields and replaces its photo set with
	// the one carried on the entity.
	Update(listing *entity.Listing) error
	SetActive(id string, active bool) error
	// SoftDelete stamps deleted_at; the row survives for out-of-band
	// restoration.
	SoftDelete(id string) error
}

type listingRepository struct {
	db *gorm.DB
}

func NewListingRepository(db *gorm.DB) ListingRepository {
	return &listingRepository{db: db}
}

func preloadPhotos(db *gorm.DB) *gorm.DB {
	return db.Order("listing_photos.sort_order ASC")
}

func (r *listingRepository) List() ([]*entity.Listing, error) {
	var listingModels []model.ListingModel
	err := r.db.Preload("Photos", preloadPhotos).
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

func (r *listingRepository) GetByID(id string) (*entity.Listing, error) {
	var listingModel model.ListingModel
	err := r.db.Preload("Photos", preloadPhotos).
		Where("id = ?", id).
		First(&listingModel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrListingNotFound
	}
	if err != nil {
		return nil, err
	}
	return ToListingEntity(&listingModel), nil
}

func (r *listingRepository) Create(listing *entity.Listing) error {
	listingModel := ToListingModel(listing)
	if listingModel.ID == "" {
		listingModel.ID = uuid.New().String()
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		photos := listingModel.Photos
		listingModel.Photos = nil

		if err := tx.Create(listingModel).Error; err != nil {
			return err
		}

		if err := insertPhotos(tx, listingModel.ID, photos); err != nil {
			return err
		}

		listingModel.Photos = photos
		*listing = *ToListingEntity(listingModel)
		return nil
	})
}

func (r *listingRepository) Update(listing *entity.Listing) error {
	listingModel := ToListingModel(listing)

	return r.db.Transaction(func(tx *gorm.DB) error {
		photos := listingModel.Photos
		listingModel.Photos = nil

		result := tx.Model(&model.ListingModel{}).
			Where("id = ?", listingModel.ID).
			Updates(map[string]interface{}{
				"name":        listingModel.Name,
				"description": listingModel.Description,
				"category":    listingModel.Category,
				"price":       listingModel.Price,
				"image_url":   listingModel.ImageURL,
				"is_active":   listingModel.IsActive,
				"year":        listingModel.Year,
				"hours":       listingModel.Hours,
				"condition":   listingModel.Condition,
				"features":    listingModel.Features,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrListingNotFound
		}

		// Photo rows are replaced wholesale; the staged sequence is the
		// single source of truth for order and main designation.
		if err := tx.Where("listing_id = ?", listingModel.ID).
			Delete(&model.ListingPhotoModel{}).Error; err != nil {
			return err
		}

		if err := insertPhotos(tx, listingModel.ID, photos); err != nil {
			return err
		}

		listingModel.Photos = photos
		*listing = *ToListingEntity(listingModel)
		return nil
	})
}

func insertPhotos(tx *gorm.DB, listingID string, photos []model.ListingPhotoModel) error {
	for i := range photos {
		photos[i].ListingID = listingID
		if photos[i].ID == "" {
			photos[i].ID = uuid.New().String()
		}
		if err := tx.Create(&photos[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *listingRepository) SetActive(id string, active bool) error {
	result := r.db.Model(&model.ListingModel{}).
		Where("id = ?", id).
		Update("is_active", active)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrListingNotFound
	}
	return nil
}

func (r *listingRepository) SoftDelete(id string) error {
	result := r.db.Delete(&model.ListingModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrListingNotFound
	}
	return nil
}
