package usecase

import (
	"errors"
	"fmt"
	"math"
	"mime/multipart"
	"strconv"

	"farmlot/pkg/logger"
	"farmlot/pkg/queue"
	"farmlot/services/admin/internal/entity"
	"farmlot/services/admin/internal/repo/persistent"
	"farmlot/services/admin/internal/workspace"
)

var (
	ErrNameRequired = errors.New("listing name is required")
	ErrInvalidPrice = errors.New("price must be a non-negative number")
	ErrUploadFailed = errors.New("failed to upload photos")
)

// ListingInput carries the editor form fields for a save. Price arrives
// as the raw form string and is validated here, not coerced.
type ListingInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Price       string   `json:"price"`
	ImageURL    string   `json:"image_url"`
	Condition   string   `json:"condition"`
	Year        int      `json:"year"`
	Hours       int      `json:"hours"`
	Features    []string `json:"features"`
	IsActive    bool     `json:"is_active"`
}

type ListingUseCase interface {
	ListListings() ([]*entity.Listing, error)
	SetActive(id string, active bool) (*entity.Listing, error)
	SoftDelete(id string) error

	// OpenSession starts an editor session. With a listing ID the
	// session's workspace is seeded from the persisted photo set; with an
	// empty ID it starts blank for a new listing.
	OpenSession(listingID string) (*EditorSession, *entity.Listing, error)
	AddPhotos(sessionID string, files []*multipart.FileHeader) ([]workspace.PhotoState, []string, error)
	SetMainPhoto(sessionID string, index int) ([]workspace.PhotoState, error)
	RemovePhoto(sessionID string, index int) ([]workspace.PhotoState, error)
	// SaveListing uploads pending photos, then creates or updates the
	// listing and closes the session.
	SaveListing(sessionID string, input ListingInput) (*entity.Listing, error)
	CancelSession(sessionID string) error
}

type listingUseCase struct {
	listingRepo persistent.ListingRepository
	sessions    *SessionManager
	uploader    workspace.Uploader
	queueClient *queue.Client
	logger      *logger.Logger
}

func NewListingUseCase(
	listingRepo persistent.ListingRepository,
	sessions *SessionManager,
	uploader workspace.Uploader,
	queueClient *queue.Client,
	logger *logger.Logger,
) ListingUseCase {
	return &listingUseCase{
		listingRepo: listingRepo,
		sessions:    sessions,
		uploader:    uploader,
		queueClient: queueClient,
		logger:      logger,
	}
}

func (uc *listingUseCase) ListListings() ([]*entity.Listing, error) {
	return uc.listingRepo.List()
}

func (uc *listingUseCase) SetActive(id string, active bool) (*entity.Listing, error) {
	if err := uc.listingRepo.SetActive(id, active); err != nil {
		return nil, err
	}

	listing, err := uc.listingRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	uc.publishChange("listing_visibility", id)
	return listing, nil
}

func (uc *listingUseCase) SoftDelete(id string) error {
	if err := uc.listingRepo.SoftDelete(id); err != nil {
		return err
	}

	uc.publishChange("listing_deleted", id)
	return nil
}

func (uc *listingUseCase) OpenSession(listingID string) (*EditorSession, *entity.Listing, error) {
	if listingID == "" {
		return uc.sessions.Open(""), nil, nil
	}

	listing, err := uc.listingRepo.GetByID(listingID)
	if err != nil {
		return nil, nil, err
	}

	session := uc.sessions.Open(listingID)
	session.mu.Lock()
	session.Workspace.Initialize(listing.Photos)
	session.mu.Unlock()
	return session, listing, nil
}

func (uc *listingUseCase) AddPhotos(sessionID string, files []*multipart.FileHeader) ([]workspace.PhotoState, []string, error) {
	session, err := uc.sessions.Get(sessionID)
	if err != nil {
		return nil, nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	skipped, err := session.Workspace.AddFiles(files)
	if err != nil {
		return nil, nil, err
	}
	return session.Workspace.Snapshot(), skipped, nil
}

func (uc *listingUseCase) SetMainPhoto(sessionID string, index int) ([]workspace.PhotoState, error) {
	session, err := uc.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if err := session.Workspace.SetMain(index); err != nil {
		return nil, err
	}
	return session.Workspace.Snapshot(), nil
}

func (uc *listingUseCase) RemovePhoto(sessionID string, index int) ([]workspace.PhotoState, error) {
	session, err := uc.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if err := session.Workspace.Remove(index); err != nil {
		return nil, err
	}
	return session.Workspace.Snapshot(), nil
}

func (uc *listingUseCase) SaveListing(sessionID string, input ListingInput) (*entity.Listing, error) {
	session, err := uc.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if input.Name == "" {
		return nil, ErrNameRequired
	}

	price, err := parsePrice(input.Price)
	if err != nil {
		return nil, err
	}

	// Pending photos go to storage before anything touches the database,
	// so a failed upload never leaves a listing pointing at missing keys.
	if err := session.Workspace.Reconcile(uc.uploader); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	photos, err := session.Workspace.Photos()
	if err != nil {
		return nil, err
	}

	listing := &entity.Listing{
		ID:          session.ListingID,
		Name:        input.Name,
		Description: input.Description,
		Category:    input.Category,
		Price:       price,
		ImageURL:    input.ImageURL,
		IsActive:    input.IsActive,
		Year:        input.Year,
		Hours:       input.Hours,
		Condition:   input.Condition,
		Features:    input.Features,
		Photos:      photos,
	}

	if session.ListingID == "" {
		err = uc.listingRepo.Create(listing)
	} else {
		err = uc.listingRepo.Update(listing)
	}
	if err != nil {
		return nil, err
	}

	if closeErr := uc.sessions.Close(sessionID); closeErr != nil {
		uc.logger.Warn("Failed to close editor session %s: %v", sessionID, closeErr)
	}

	uc.publishChange("listing_saved", listing.ID)
	return listing, nil
}

func (uc *listingUseCase) CancelSession(sessionID string) error {
	return uc.sessions.Close(sessionID)
}

func (uc *listingUseCase) publishChange(eventType, listingID string) {
	if uc.queueClient == nil {
		return
	}

	event := queue.ListingEvent{Type: eventType, ListingID: listingID}
	if err := uc.queueClient.PublishListingEvent(event); err != nil {
		uc.logger.Error("Failed to publish %s event for listing %s: %v", eventType, listingID, err)
	}
}

func parsePrice(raw string) (float64, error) {
	price, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return 0, ErrInvalidPrice
	}
	return price, nil
}
