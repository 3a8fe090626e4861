package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/sangkips/beatlicense-api/internal/config"
	"github.com/sangkips/beatlicense-api/internal/presentation/http/handler"
	"github.com/sangkips/beatlicense-api/internal/presentation/http/middleware"
	"github.com/sangkips/beatlicense-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Report   *handler.ReportHandler
	Settings *handler.SettingsHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager *utils.JWTManager
	Cfg        *config.Config
	Logger     zerolog.Logger
	// Done stops background work started by the router, such as limiter cleanup
	Done <-chan struct{}
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	if deps.Cfg.Metrics.Enabled {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	v1 := router.Group("/api/v1")
	{
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		rateLimiter := middleware.NewUserRateLimiter(
			middleware.RateLimiterConfigFromWindow(deps.Cfg.RateLimit.Requests, deps.Cfg.RateLimit.Duration),
			deps.Done,
		)
		protected.Use(rateLimiter.Middleware())

		registerReportRoutes(protected, h)
	}

	return router
}

func registerReportRoutes(protected *gin.RouterGroup, h *Handlers) {
	reports := protected.Group("/reports")
	{
		sales := reports.Group("/sales")
		sales.Use(middleware.RequirePermission(middleware.PermissionViewReports))
		sales.GET("", h.Report.GetSalesReport)
		sales.GET("/earners", h.Report.ListEarners)
		sales.GET("/export.csv", h.Report.ExportCSV)
		sales.GET("/export.pdf", h.Report.ExportPDF)

		reports.GET("/settings", middleware.RequirePermission(middleware.PermissionViewReports), h.Settings.GetReportSettings)
		reports.PUT("/settings", middleware.RequirePermission(middleware.PermissionManageSettings), h.Settings.UpdateReportSettings)
	}
}
