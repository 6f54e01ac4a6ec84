package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/quiz-app/internal/domain/entity"
	"github.com/yourusername/quiz-app/internal/service"
)

// CatalogHandler отдает список тестов с результатами и блокировками пользователя
type CatalogHandler struct {
	catalogService *service.CatalogService
}

// NewCatalogHandler создает новый обработчик каталога
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// GetCatalog возвращает список для ?user=, по умолчанию Guest
// GET /api/catalog
func (h *CatalogHandler) GetCatalog(c *gin.Context) {
	user := c.DefaultQuery("user", entity.DefaultUsername)

	entries, err := h.catalogService.GetCatalog(c.Request.Context(), user)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
