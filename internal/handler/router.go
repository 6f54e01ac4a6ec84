package handler

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/quiz-app/internal/middleware"
	"github.com/yourusername/quiz-app/pkg/monitoring"
)

// RouterDeps содержит все, что нужно для сборки маршрутов
type RouterDeps struct {
	Users   *UserHandler
	Tests   *TestHandler
	History *HistoryHandler
	Catalog *CatalogHandler
	Health  *HealthHandler

	// RateLimit применяется к группе /api; nil - без ограничения
	RateLimit gin.HandlerFunc

	AllowOrigins []string
	// StaticDir раздается с корня, если каталог существует
	StaticDir string
}

// NewRouter собирает gin.Engine со всеми маршрутами Resource API
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()
	// имя пользователя может содержать "/", в пути оно приходит как %2F
	router.UseRawPath = true
	router.UnescapePathValues = true
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(monitoring.MetricsMiddleware())

	origins := deps.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", middleware.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", deps.Health.HealthCheck)

	api := router.Group("/api")
	if deps.RateLimit != nil {
		api.Use(deps.RateLimit)
	}
	{
		users := api.Group("/users")
		{
			users.GET("", deps.Users.ListUsers)
			users.POST("", deps.Users.CreateUser)
			users.DELETE("/:name", deps.Users.DeleteUser)
		}

		tests := api.Group("/tests")
		{
			tests.GET("", deps.Tests.ListTests)
			tests.POST("", deps.Tests.CreateTest)

			testWithID := tests.Group("/:id")
			testWithID.Use(middleware.ExtractUintParam("id", "testID"))
			{
				testWithID.GET("", deps.Tests.GetTest)
				testWithID.PUT("", deps.Tests.UpdateTest)
				testWithID.DELETE("", deps.Tests.DeleteTest)
			}
		}

		history := api.Group("/history")
		{
			history.GET("", deps.History.ListHistory)
			history.POST("", deps.History.CreateHistory)
			history.DELETE("", deps.History.ClearHistory)
			history.GET("/export", deps.History.ExportHistory)
			history.DELETE("/:id", middleware.ExtractUintParamOrNotFound("id", "historyID"), deps.History.DeleteHistory)
		}

		api.GET("/catalog", deps.Catalog.GetCatalog)
	}

	router.NoRoute(staticFallback(deps.StaticDir))

	return router
}

// staticFallback раздает файлы клиента для всего, что не попало в /api
func staticFallback(dir string) gin.HandlerFunc {
	var fileServer http.Handler
	if dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			fileServer = http.FileServer(http.Dir(dir))
		}
	}

	return func(c *gin.Context) {
		method := c.Request.Method
		if fileServer != nil && (method == http.MethodGet || method == http.MethodHead) &&
			!strings.HasPrefix(c.Request.URL.Path, "/api/") {
			fileServer.ServeHTTP(c.Writer, c.Request)
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	}
}
