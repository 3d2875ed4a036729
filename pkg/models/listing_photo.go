package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListingPhoto struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	ListingID string    `gorm:"type:uuid;not null;index" json:"listing_id"`
	URL       string    `gorm:"type:varchar(500);not null" json:"url"`
	IsMain    bool      `gorm:"default:false" json:"is_main"`
	SortOrder int       `gorm:"column:sort_order;default:0;index" json:"order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *ListingPhoto) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}
