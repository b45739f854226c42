package utilsRoutes

import (
	"github.com/gofiber/fiber/v2"

	"capacita/auth"
	dashboardController "capacita/controllers/dashboard"
	"capacita/middleware"
)

// SetupUtilsRoutes sets up the dashboard helper routes
func SetupUtilsRoutes(app *fiber.App, svc *auth.Service) {
	group := app.Group("/api/utils", middleware.Protected(svc))

	group.Get("/lotacoes", dashboardController.Lotacoes)
	group.Get("/stats", dashboardController.Stats)
}
