package persistent

import (
	"encoding/json"

	"farmlot/services/admin/internal/entity"
	"farmlot/services/admin/internal/model"
)

func ToListingEntity(m *model.ListingModel) *entity.Listing {
	if m == nil {
		return nil
	}

	listing := &entity.Listing{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Category:    m.Category,
		Price:       m.Price,
		ImageURL:    m.ImageURL,
		IsActive:    m.IsActive,
		Year:        m.Year,
		Hours:       m.Hours,
		Condition:   m.Condition,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}

	if len(m.Features) > 0 {
		// Malformed rows degrade to no features rather than failing the read.
		_ = json.Unmarshal(m.Features, &listing.Features)
	}

	if len(m.Photos) > 0 {
		listing.Photos = make([]entity.ListingPhoto, len(m.Photos))
		for i, p := range m.Photos {
			listing.Photos[i] = ToListingPhotoEntity(&p)
		}
	}

	return listing
}

func ToListingModel(e *entity.Listing) *model.ListingModel {
	if e == nil {
		return nil
	}

	listing := &model.ListingModel{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		Category:    e.Category,
		Price:       e.Price,
		ImageURL:    e.ImageURL,
		IsActive:    e.IsActive,
		Year:        e.Year,
		Hours:       e.Hours,
		Condition:   e.Condition,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}

	if len(e.Features) > 0 {
		if data, err := json.Marshal(e.Features); err == nil {
			listing.Features = data
		}
	}

	if len(e.Photos) > 0 {
		listing.Photos = make([]model.ListingPhotoModel, len(e.Photos))
		for i, p := range e.Photos {
			listing.Photos[i] = *ToListingPhotoModel(&p)
		}
	}

	return listing
}

func ToListingPhotoEntity(m *model.ListingPhotoModel) entity.ListingPhoto {
	if m == nil {
		return entity.ListingPhoto{}
	}

	return entity.ListingPhoto{
		ID:     m.ID,
		URL:    m.URL,
		IsMain: m.IsMain,
		Order:  m.SortOrder,
	}
}

func ToListingPhotoModel(e *entity.ListingPhoto) *model.ListingPhotoModel {
	if e == nil {
		return nil
	}

	return &model.ListingPhotoModel{
		ID:        e.ID,
		URL:       e.URL,
		IsMain:    e.IsMain,
		SortOrder: e.Order,
	}
}

func ToUserEntity(m *model.UserModel) *entity.User {
	if m == nil {
		return nil
	}

	return &entity.User{
		ID:        m.ID,
		Email:     m.Email,
		Username:  m.Username,
		Password:  m.Password,
		Role:      entity.UserRole(m.Role),
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
