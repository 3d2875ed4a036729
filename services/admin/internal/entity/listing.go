package entity

import "time"

type Listing struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Category    string         `json:"category"`
	Price       float64        `json:"price"`
	ImageURL    string         `json:"image_url"`
	IsActive    bool           `json:"is_active"`
	Year        int            `json:"year"`
	Hours       int            `json:"hours"`
	Condition   string         `json:"condition"`
	Features    []string       `json:"features"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	Photos      []ListingPhoto `json:"photos"`
}

type ListingPhoto struct {
	ID     string `json:"id,omitempty"`
	URL    string `json:"url"`
	IsMain bool   `json:"is_main"`
	Order  int    `json:"order"`
}

// MainPhotoURL picks the thumbnail for a listing: the designated main
// photo, else the first photo, else the legacy single image, else empty.
func (l *Listing) MainPhotoURL() string {
	for _, p := range l.Photos {
		if p.IsMain {
			return p.URL
		}
	}
	if len(l.Photos) > 0 {
		return l.Photos[0].URL
	}
	return l.ImageURL
}
