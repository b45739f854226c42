package authRoutes

import (
	"github.com/gofiber/fiber/v2"

	"capacita/auth"
	authController "capacita/controllers/auth"
	"capacita/middleware"
)

// SetupAuthRoutes sets up login, token refresh, logout and profile routes
func SetupAuthRoutes(app *fiber.App, ctrl *authController.Controller, svc *auth.Service) {
	api := app.Group("/api")

	api.Post("/login", ctrl.Login)
	api.Post("/token/refresh", ctrl.Refresh)
	api.Post("/logout", ctrl.Logout)
	api.Get("/users/me", middleware.Protected(svc), ctrl.Me)
}
