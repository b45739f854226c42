package adminRoutes

import (
	"github.com/gofiber/fiber/v2"

	"capacita/auth"
	adminController "capacita/controllers/admin"
	"capacita/middleware"
	adminValidator "capacita/validators/admin"
)

// SetupAdminRoutes sets up the user administration routes
func SetupAdminRoutes(app *fiber.App, svc *auth.Service) {
	group := app.Group("/api/admin/usuarios", middleware.Protected(svc), middleware.RequireUDP)

	group.Get("/", adminController.ListUsers)
	group.Put("/perfil", adminValidator.Perfil(), adminController.UpdateUserPerfil)
	group.Post("/import", adminController.ImportUsers)
}
