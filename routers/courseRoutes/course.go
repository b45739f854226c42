package courseRoutes

import (
	"github.com/gofiber/fiber/v2"

	"capacita/auth"
	courseController "capacita/controllers/course"
	"capacita/middleware"
	courseValidator "capacita/validators/course"
)

// SetupCourseRoutes sets up the course catalog routes
func SetupCourseRoutes(app *fiber.App, svc *auth.Service) {
	group := app.Group("/api/cursos", middleware.Protected(svc))

	group.Get("/", courseController.ListCourses)
	group.Post("/", middleware.RequireChefia, courseValidator.Course(), courseController.CreateCourse)

	// Fixed paths before the :id wildcard
	group.Get("/recommended", courseController.RecommendedCourses)
	group.Get("/genericos", courseController.GenericCourses)

	group.Get("/:id", courseController.GetCourse)
	group.Put("/:id", middleware.RequireChefia, courseValidator.Course(), courseController.UpdateCourse)
	group.Delete("/:id", middleware.RequireChefia, courseController.DeleteCourse)
}
