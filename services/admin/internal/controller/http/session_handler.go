package http

import (
	"errors"
	"net/http"
	"strconv"

	"farmlot/pkg/logger"
	"farmlot/services/admin/internal/repo/persistent"
	"farmlot/services/admin/internal/usecase"
	"farmlot/services/admin/internal/workspace"

	"github.com/gin-gonic/gin"
)

// SessionHandler drives the listing editor: one session per open editor,
// photo mutations staged against its workspace, save or cancel to finish.
type SessionHandler struct {
	listingUseCase usecase.ListingUseCase
	logger         *logger.Logger
}

func NewSessionHandler(listingUseCase usecase.ListingUseCase, logger *logger.Logger) *SessionHandler {
	return &SessionHandler{
		listingUseCase: listingUseCase,
		logger:         logger,
	}
}

type CreateSessionRequest struct {
	ListingID string `json:"listing_id"`
}

// CreateSession godoc
// @Summary      Open a listing editor session
// @Description  With listing_id the editor is seeded from the persisted listing; without it a blank editor opens for a new listing
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateSessionRequest false "Listing to edit"
// @Success      201  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /sessions [post]
func (h *SessionHandler) CreateSession(c *gin.Context) {
	var req CreateSessionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	session, listing, err := h.listingUseCase.OpenSession(req.ListingID)
	if errors.Is(err, persistent.ErrListingNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
		return
	}
	if err != nil {
		h.logger.Error("Failed to open editor session: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open editor"})
		return
	}

	response := gin.H{
		"session_id": session.ID,
		"photos":     session.Workspace.Snapshot(),
	}
	if listing != nil {
		response["listing"] = listing
	}
	c.JSON(http.StatusCreated, response)
}

// AddPhotos godoc
// @Summary      Stage uploaded photos in the editor
// @Description  Multipart field "photos"; oversized or non-image files are skipped with a message, a batch past the 5-photo cap is rejected whole
// @Tags         sessions
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Session ID"
// @Param        photos formData file true "Image files"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /sessions/{id}/photos [post]
func (h *SessionHandler) AddPhotos(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse upload"})
		return
	}

	files := form.File["photos"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No photos provided"})
		return
	}

	states, skipped, err := h.listingUseCase.AddPhotos(c.Param("id"), files)
	if err != nil {
		h.respondSessionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"photos":  states,
		"skipped": skipped,
	})
}

// SetMainPhoto godoc
// @Summary      Designate the main photo
// @Tags         sessions
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Session ID"
// @Param        index path int true "Photo index"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /sessions/{id}/photos/{index}/main [put]
func (h *SessionHandler) SetMainPhoto(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid photo index"})
		return
	}

	states, err := h.listingUseCase.SetMainPhoto(c.Param("id"), index)
	if err != nil {
		h.respondSessionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"photos": states})
}

// RemovePhoto godoc
// @Summary      Remove a staged photo
// @Description  Removing the main photo promotes the new first photo
// @Tags         sessions
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Session ID"
// @Param        index path int true "Photo index"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /sessions/{id}/photos/{index} [delete]
func (h *SessionHandler) RemovePhoto(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid photo index"})
		return
	}

	states, err := h.listingUseCase.RemovePhoto(c.Param("id"), index)
	if err != nil {
		h.respondSessionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"photos": states})
}

// Save godoc
// @Summary      Save the listing being edited
// @Description  Uploads pending photos, then creates or updates the listing and closes the session
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Session ID"
// @Param        request body usecase.ListingInput true "Listing fields"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /sessions/{id}/save [post]
func (h *SessionHandler) Save(c *gin.Context) {
	var input usecase.ListingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	listing, err := h.listingUseCase.SaveListing(c.Param("id"), input)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrNameRequired) || errors.Is(err, usecase.ErrInvalidPrice):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, usecase.ErrSessionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Editor session not found"})
		case errors.Is(err, persistent.ErrListingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
		case errors.Is(err, usecase.ErrUploadFailed):
			h.logger.Error("Photo upload failed for session %s: %v", c.Param("id"), err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "Photo upload failed, save aborted"})
		default:
			h.logger.Error("Failed to save listing for session %s: %v", c.Param("id"), err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save listing"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"listing": listing})
}

// CancelSession godoc
// @Summary      Close the editor without saving
// @Tags         sessions
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Session ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /sessions/{id} [delete]
func (h *SessionHandler) CancelSession(c *gin.Context) {
	if err := h.listingUseCase.CancelSession(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Editor session not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Session closed"})
}

func (h *SessionHandler) respondSessionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Editor session not found"})
	case errors.Is(err, workspace.ErrTooManyPhotos) || errors.Is(err, workspace.ErrIndexOutOfRange):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logger.Error("Editor session operation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Editor operation failed"})
	}
}
