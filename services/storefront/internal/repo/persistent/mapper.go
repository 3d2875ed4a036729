package persistent

import (
	"encoding/json"

	"farmlot/services/storefront/internal/entity"
	"farmlot/services/storefront/internal/model"
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
	}

	if len(m.Features) > 0 {
		_ = json.Unmarshal(m.Features, &listing.Features)
	}

	if len(m.Photos) > 0 {
		listing.Photos = make([]entity.ListingPhoto, len(m.Photos))
		for i, p := range m.Photos {
			listing.Photos[i] = entity.ListingPhoto{
				URL:    p.URL,
				IsMain: p.IsMain,
				Order:  p.SortOrder,
			}
		}
	}

	return listing
}
