package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

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
	UpdatedAt   time.Time           `json:"updated_at"`
	DeletedAt   gorm.DeletedAt      `gorm:"index" json:"-"`
	Photos      []ListingPhotoModel `gorm:"foreignKey:ListingID" json:"photos,omitempty"`
}

func (ListingModel) TableName() string {
	return "listings"
}

func (l *ListingModel) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return nil
}

type ListingPhotoModel struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	ListingID string    `gorm:"type:uuid;not null;index" json:"listing_id"`
	URL       string    `gorm:"type:varchar(500);not null" json:"url"`
	IsMain    bool      `gorm:"default:false" json:"is_main"`
	SortOrder int       `gorm:"column:sort_order;default:0;index" json:"order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ListingPhotoModel) TableName() string {
	return "listing_photos"
}

func (p *ListingPhotoModel) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}
