package http

import (
	"net/http"

	"farmlot/pkg/logger"
	"farmlot/services/storefront/internal/usecase"
	"farmlot/services/storefront/internal/view"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	catalogUseCase usecase.CatalogUseCase
	logger         *logger.Logger
}

func NewCatalogHandler(catalogUseCase usecase.CatalogUseCase, logger *logger.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalogUseCase: catalogUseCase,
		logger:         logger,
	}
}

// Page serves the full storefront: every active listing is rendered and
// the category strip filters them in the page without another request.
func (h *CatalogHandler) Page(c *gin.Context) {
	listings, err := h.catalogUseCase.ActiveListings(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to load catalog: %v", err)
		c.String(http.StatusServiceUnavailable, "The storefront is temporarily unavailable")
		return
	}

	page, err := view.RenderPage(view.PageData{
		Listings:   listings,
		Categories: usecase.Categories(listings),
	})
	if err != nil {
		h.logger.Error("Failed to render storefront: %v", err)
		c.String(http.StatusInternalServerError, "internal error")
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}

// ListListings godoc
// @Summary      Active listings
// @Description  Visible listings only, newest first, optionally narrowed by category
// @Tags         catalog
// @Produce      json
// @Param        category query string false "Category filter; empty or all returns everything"
// @Success      200  {object}  map[string]interface{}
// @Failure      503  {object}  map[string]string
// @Router       /listings [get]
func (h *CatalogHandler) ListListings(c *gin.Context) {
	listings, err := h.catalogUseCase.ActiveListings(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to load catalog: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to load listings"})
		return
	}

	filtered := usecase.FilterByCategory(listings, c.Query("category"))
	c.JSON(http.StatusOK, gin.H{"listings": filtered})
}
