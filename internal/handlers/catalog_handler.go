package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "mensa/internal/errors"
	"mensa/internal/pagination"
	"mensa/internal/services"
)

// CatalogHandler handles catalog-related requests.
type CatalogHandler struct {
	catalogService services.CatalogServicer
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalogService services.CatalogServicer) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// GetCatalog handles listing the seeded catalog.
// @Summary     Get catalog
// @Description Get a paginated list of catalog items in insertion order
// @Tags        catalog
// @Accept      json
// @Produce     json
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.CatalogItem] "Paginated catalog items"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /catalog [get]
func (h *CatalogHandler) GetCatalog(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.catalogService.ListItemsPage(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
