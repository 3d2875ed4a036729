package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Listing struct {
	ID          string         `gorm:"type:uuid;primary_key" json:"id"`
	Name        string         `gorm:"type:varchar(255);not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Category    string         `gorm:"type:varchar(100);index" json:"category"`
	Price       float64        `gorm:"type:numeric(12,2);default:0" json:"price"`
	ImageURL    string         `gorm:"type:varchar(500)" json:"image_url"`
	IsActive    bool           `gorm:"default:true;index" json:"is_active"`
	Year        int            `gorm:"default:0" json:"year"`
	Hours       int            `gorm:"default:0" json:"hours"`
	Condition   string         `gorm:"type:varchar(50)" json:"condition"`
	Features    datatypes.JSON `gorm:"type:jsonb" json:"features"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	Photos      []ListingPhoto `gorm:"foreignKey:ListingID" json:"photos,omitempty"`
}

func (l *Listing) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return nil
}
