package middleware

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ExtractUintParam создает middleware для извлечения и валидации числового параметра URL.
// paramName - имя параметра в URL (например, "id").
// contextKey - ключ, под которым значение будет сохранено в контексте Gin.
func ExtractUintParam(paramName, contextKey string) gin.HandlerFunc {
	return extractUintParam(paramName, contextKey, func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid %s", paramName)})
	})
}

// ExtractUintParamOrNotFound работает как ExtractUintParam, но нечисловой параметр
// отвечает 404: записи с таким id нет и быть не может.
func ExtractUintParamOrNotFound(paramName, contextKey string) gin.HandlerFunc {
	return extractUintParam(paramName, contextKey, func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})
}

func extractUintParam(paramName, contextKey string, reject gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param(paramName), 10, 32)
		if err != nil {
			reject(c)
			return
		}
		c.Set(contextKey, uint(id))
		c.Next()
	}
}
