package adminValidator

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	adminController "capacita/controllers/admin"
	"capacita/middleware"
)

var validate = validator.New()

// Perfil validator middleware for role change requests
func Perfil() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(adminController.PerfilInput)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, fieldErr := range err.(validator.ValidationErrors) {
				errors[strings.ToLower(fieldErr.Field())] = "Invalid value for " + fieldErr.Field() + "!"
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedPerfil", reqData)
		return c.Next()
	}
}
