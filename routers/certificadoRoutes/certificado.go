package certificadoRoutes

import (
	"github.com/gofiber/fiber/v2"

	"capacita/auth"
	certificateController "capacita/controllers/certificate"
	"capacita/middleware"
	certificateValidator "capacita/validators/certificate"
)

// SetupCertificadoRoutes sets up certificate submission and validation routes
func SetupCertificadoRoutes(app *fiber.App, svc *auth.Service) {
	group := app.Group("/api/certificados", middleware.Protected(svc))

	group.Post("/upload", certificateController.Upload)
	group.Post("/link", certificateValidator.Link(), certificateController.SubmitLink)
	group.Post("/validar", middleware.RequireChefia, certificateValidator.Decision(), certificateController.Validate)
	group.Get("/:id", certificateController.Get)
}
