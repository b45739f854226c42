package certificateValidator

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	certificateController "capacita/controllers/certificate"
	"capacita/middleware"
)

var validate = validator.New()

func fieldErrors(err error) map[string]string {
	errors := make(map[string]string)
	for _, fieldErr := range err.(validator.ValidationErrors) {
		errors[strings.ToLower(fieldErr.Field())] = "Invalid value for " + fieldErr.Field() + "!"
	}
	return errors
}

// Link validator middleware for certificate link submissions
func Link() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(certificateController.LinkInput)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		c.Locals("validatedCertificateLink", reqData)
		return c.Next()
	}
}

// Decision validator middleware for supervisor validation calls
func Decision() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(certificateController.ValidateInput)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		c.Locals("validatedCertificateDecision", reqData)
		return c.Next()
	}
}
