package atribuicaoRoutes

import (
	"github.com/gofiber/fiber/v2"

	"capacita/auth"
	assignmentController "capacita/controllers/assignment"
	"capacita/middleware"
)

// SetupAtribuicaoRoutes sets up the assignment listing routes
func SetupAtribuicaoRoutes(app *fiber.App, svc *auth.Service) {
	group := app.Group("/api/atribuicoes", middleware.Protected(svc))

	group.Get("/me", assignmentController.MyAssignments)
	group.Get("/pendentes-validacao", middleware.RequireChefia, assignmentController.PendingValidation)
}
