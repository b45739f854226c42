package inscricaoRoutes

import (
	"github.com/gofiber/fiber/v2"

	"capacita/auth"
	enrollmentController "capacita/controllers/enrollment"
	"capacita/middleware"
	enrollmentValidator "capacita/validators/enrollment"
)

// SetupInscricaoRoutes sets up the enrollment routes
func SetupInscricaoRoutes(app *fiber.App, svc *auth.Service) {
	group := app.Group("/api/inscricoes", middleware.Protected(svc))

	group.Post("/", enrollmentValidator.Enroll(), enrollmentController.Enroll)
	group.Get("/me", enrollmentController.MyEnrollments)
	group.Delete("/:id", enrollmentController.Unenroll)
}
