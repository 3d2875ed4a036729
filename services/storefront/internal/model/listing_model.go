package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Read-side projection of the listings tables; writes happen in the admin
// service.
type ListingModel struct {
	ID          string              `gorm:"type:uuid;primary_key" json:"id"`
	Name        string              `gorm:"type:varchar(255);not null" json:"name"`
	Description string              `gorm:"type:text" json:"description"`
	Category    string              `gorm:"type:varchar(100);index" json:"category"`
	Price       float64             `gorm:"type:numeric(12,2);default:0" json:"price"`
	ImageURL    string              `gorm:"type:varchar(500)" json:"image_url"`
	IsActive    bool                `gorm:"default:true;index" json:"is_active"`
	Year        int                 `gorm:"default:0" json:"year"`
	Hours       int                 `gorm:"default:0" json:"hours"`
	Condition   string              `gorm:"type:varchar(50)" json:"condition"`
	Features    datatypes.JSON      `gorm:"type:jsonb" json:"features"`
	CreatedAt   time.Time           `json:"created_at"`
	DeletedAt   gorm.DeletedAt      `gorm:"index" json:"-"`
	Photos      []ListingPhotoModel `gorm:"foreignKey:ListingID" json:"photos,omitempty"`
}

func (ListingModel) TableName() string {
	return "listings"
}

type ListingPhotoModel struct {
	ID        string `gorm:"type:uuid;primary_key" json:"id"`
	ListingID string `gorm:"type:uuid;not null;index" json:"listing_id"`
	URL       string `gorm:"type:varchar(500);not null" json:"url"`
	IsMain    bool   `gorm:"default:false" json:"is_main"`
	SortOrder int    `gorm:"column:sort_order;default:0;index" json:"order"`
}

func (ListingPhotoModel) TableName() string {
	return "listing_photos"
}
