package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mockmate/internal/repository"
)

// CatalogHandler expone el catálogo de categorías y posiciones de trabajo.
type CatalogHandler struct {
	logger  *zap.Logger
	catalog repository.CatalogRepository
}

func NewCatalogHandler(logger *zap.Logger, catalog repository.CatalogRepository) *CatalogHandler {
	return &CatalogHandler{logger: logger, catalog: catalog}
}

// ListCategories maneja GET /api/catalog/categories.
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalog.ListActiveCategories(c.Request.Context())
	if err != nil {
		h.logger.Error("list categories failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list categories"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// ListPositions maneja GET /api/catalog/categories/:id/positions.
func (h *CatalogHandler) ListPositions(c *gin.Context) {
	categoryID := c.Param("id")
	positions, err := h.catalog.ListActivePositions(c.Request.Context(), categoryID)
	if err != nil {
		h.logger.Error("list positions failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list positions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"positions": positions})
}
