package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/quiz-app/internal/handler/dto"
	"github.com/yourusername/quiz-app/internal/service"
)

// TestHandler обрабатывает запросы, связанные с тестами
type TestHandler struct {
	testService *service.TestService
}

// NewTestHandler создает новый обработчик тестов
func NewTestHandler(testService *service.TestService) *TestHandler {
	return &TestHandler{testService: testService}
}

// ListTests возвращает все тесты с развернутыми вопросами
// GET /api/tests
func (h *TestHandler) ListTests(c *gin.Context) {
	tests, err := h.testService.ListTests(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewListTestResponse(tests))
}

// GetTest возвращает один тест
// GET /api/tests/:id
func (h *TestHandler) GetTest(c *gin.Context) {
	testID := c.MustGet("testID").(uint)

	test, err := h.testService.GetTest(c.Request.Context(), testID)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewTestResponse(test))
}

// CreateTest создает тест и возвращает его id
// POST /api/tests
func (h *TestHandler) CreateTest(c *gin.Context) {
	var req dto.TestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	id, err := h.testService.CreateTest(c.Request.Context(), req.ToEntity())
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.IDResponse{ID: id})
}

// UpdateTest заменяет тест целиком
// PUT /api/tests/:id
func (h *TestHandler) UpdateTest(c *gin.Context) {
	testID := c.MustGet("testID").(uint)

	var req dto.TestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if err := h.testService.UpdateTest(c.Request.Context(), testID, req.ToEntity()); err != nil {
		handleError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// DeleteTest удаляет тест
// DELETE /api/tests/:id
func (h *TestHandler) DeleteTest(c *gin.Context) {
	testID := c.MustGet("testID").(uint)

	if err := h.testService.DeleteTest(c.Request.Context(), testID); err != nil {
		handleError(c, err)
		return
	}
	c.Status(http.StatusOK)
}
