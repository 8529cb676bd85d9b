package routes

import (
	"github.com/campushub/analytics-api/internal/application/usecases"
	"github.com/campushub/analytics-api/internal/domain/repositories"
	"github.com/campushub/analytics-api/internal/infrastructure/cache"
	"github.com/campushub/analytics-api/internal/interfaces/http/handlers"
	"github.com/campushub/analytics-api/internal/interfaces/http/middleware"
	"github.com/campushub/analytics-api/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, store cache.Store, networks *utils.TrustedNetworks) {
	// Add performance middleware
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	// Add ETag support for efficient caching
	app.Use(etag.New())

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// Repositories
	trackerRepo := repositories.NewTrackerRepository(db)
	metricsRepo := repositories.NewMetricsRepository(db)
	reportRepo := repositories.NewReportRepository(db)

	// Use Cases
	metricsUseCase := usecases.NewMetricsUseCase(metricsRepo)
	trackerUseCase := usecases.NewTrackerUseCase(trackerRepo, metricsUseCase, networks)
	reportUseCase := usecases.NewReportUseCase(reportRepo, store)

	// Handlers
	trackHandler := handlers.NewTrackHandler(trackerUseCase)
	reportHandler := handlers.NewReportHandler(reportUseCase)

	// Routes
	groups := middleware.SetupRouteGroups(app, middleware.AuthRequired())

	// Ingestão de eventos
	groups.Track.Post("/", trackHandler.Track)

	// Dashboards administrativos
	groups.Analytics.Get("/overview", reportHandler.GetOverview)
	groups.Analytics.Get("/top-content", reportHandler.GetTopContent)
	groups.Analytics.Get("/devices", reportHandler.GetDevices)
	groups.Analytics.Get("/search", reportHandler.GetSearch)
	groups.Analytics.Get("/realtime", reportHandler.GetRealtime)
	groups.Analytics.Get("/report", reportHandler.GetFullReport)
	groups.Analytics.Get("/cache/stats", reportHandler.GetCacheStats)
	groups.Analytics.Delete("/cache", reportHandler.ClearCache)
}
