package middleware

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func SetupMiddlewares(app *fiber.App) {
	// CORS configuration
	origins := os.Getenv("CORS_ORIGINS")
	if origins == "" {
		origins = "http://localhost:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     "GET,POST,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           300, // 5 minutes
	}))
}

// RouteGroups define os grupos de rotas da API
type RouteGroups struct {
	Public    fiber.Router
	Track     fiber.Router
	Analytics fiber.Router
}

// SetupRouteGroups configura os grupos de rotas com seus respectivos middlewares.
// O grupo de tracking é público (instrumentação de frontend não carrega
// credencial); dashboards administrativos exigem JWT.
func SetupRouteGroups(app *fiber.App, authMiddleware func(c *fiber.Ctx) error) RouteGroups {
	// Grupo público (sem autenticação)
	public := app.Group("/")

	// Grupo de ingestão de eventos, com identidade opcional via token
	track := app.Group("/track")
	track.Use(OptionalIdentity())

	// Grupo de dashboards (com autenticação)
	analytics := app.Group("/analytics")
	analytics.Use(authMiddleware)

	return RouteGroups{
		Public:    public,
		Track:     track,
		Analytics: analytics,
	}
}
