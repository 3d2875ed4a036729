package http

import (
	"errors"
	"net/http"

	"farmlot/pkg/logger"
	"farmlot/services/admin/internal/repo/persistent"
	"farmlot/services/admin/internal/usecase"
	"farmlot/services/admin/internal/view"

	"github.com/gin-gonic/gin"
)

type ListingHandler struct {
	listingUseCase usecase.ListingUseCase
	logger         *logger.Logger
}

func NewListingHandler(listingUseCase usecase.ListingUseCase, logger *logger.Logger) *ListingHandler {
	return &ListingHandler{
		listingUseCase: listingUseCase,
		logger:         logger,
	}
}

// Dashboard serves the admin shell page; the table body is loaded by a
// follow-up call to /api/v1/listings/table.
func (h *ListingHandler) Dashboard(c *gin.Context) {
	page, err := view.RenderDashboard()
	if err != nil {
		h.logger.Error("Failed to render dashboard: %v", err)
		c.String(http.StatusInternalServerError, "internal error")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}

// ListListings godoc
// @Summary      List all listings
// @Description  Every non-deleted listing, hidden ones included, newest first
// @Tags         listings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Router       /listings [get]
func (h *ListingHandler) ListListings(c *gin.Context) {
	listings, err := h.listingUseCase.ListListings()
	if err != nil {
		h.logger.Error("Failed to list listings: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load listings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"listings": listings})
}

// ListingsTable godoc
// @Summary      Rendered dashboard table rows
// @Tags         listings
// @Produce      html
// @Security     BearerAuth
// @Success      200  {string}  string
// @Failure      500  {object}  map[string]string
// @Router       /listings/table [get]
func (h *ListingHandler) ListingsTable(c *gin.Context) {
	listings, err := h.listingUseCase.ListListings()
	if err != nil {
		h.logger.Error("Failed to list listings: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load listings"})
		return
	}

	rows, err := view.RenderTableRows(listings)
	if err != nil {
		h.logger.Error("Failed to render listing rows: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render listings"})
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(rows))
}

type SetActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// SetActive godoc
// @Summary      Toggle listing visibility
// @Tags         listings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Listing ID"
// @Param        request body SetActiveRequest true "Visibility"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /listings/{id}/active [patch]
func (h *ListingHandler) SetActive(c *gin.Context) {
	var req SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "is_active is required"})
		return
	}

	listing, err := h.listingUseCase.SetActive(c.Param("id"), *req.IsActive)
	if errors.Is(err, persistent.ErrListingNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
		return
	}
	if err != nil {
		h.logger.Error("Failed to toggle listing %s: %v", c.Param("id"), err)
		// The toggle may or may not have landed; the client should reload
		// the table instead of trusting its local state.
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":  "Failed to update listing, please reload the listings",
			"reload": true,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"listing": listing})
}

// Delete godoc
// @Summary      Soft-delete a listing
// @Description  Requires confirm=true; the row is stamped, not removed
// @Tags         listings
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Listing ID"
// @Param        confirm query bool true "Must be true"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /listings/{id} [delete]
func (h *ListingHandler) Delete(c *gin.Context) {
	if c.Query("confirm") != "true" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Deletion must be confirmed with confirm=true"})
		return
	}

	err := h.listingUseCase.SoftDelete(c.Param("id"))
	if errors.Is(err, persistent.ErrListingNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
		return
	}
	if err != nil {
		h.logger.Error("Failed to delete listing %s: %v", c.Param("id"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete listing"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Listing deleted"})
}
