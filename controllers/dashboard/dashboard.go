package dashboardController

import (
	"log"

	"github.com/gofiber/fiber/v2"

	userController "capacita/controllers/user"
	"capacita/database"
	"capacita/middleware"
	"capacita/models"
)

// Lotacoes returns every distinct non-empty unit known to the user table.
func Lotacoes(c *fiber.Ctx) error {
	lotacoes, err := userController.ListLotacoes(database.Database.Db)
	if err != nil {
		log.Printf("Error listing lotacoes: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to list lotacoes!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lotacoes fetched successfully!", lotacoes)
}

// Stats returns the dashboard counters.
func Stats(c *fiber.Ctx) error {
	db := database.Database.Db

	var totalCursos, totalInscricoes, totalValidados, totalUsuarios int64
	if err := db.Model(&models.Course{}).Count(&totalCursos).Error; err != nil {
		log.Printf("Error counting courses: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch stats!", nil)
	}
	if err := db.Model(&models.Enrollment{}).Count(&totalInscricoes).Error; err != nil {
		log.Printf("Error counting enrollments: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch stats!", nil)
	}
	if err := db.Model(&models.Certificate{}).Where("validado = ?", true).Count(&totalValidados).Error; err != nil {
		log.Printf("Error counting certificates: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch stats!", nil)
	}
	if err := db.Model(&models.User{}).Count(&totalUsuarios).Error; err != nil {
		log.Printf("Error counting users: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch stats!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Stats fetched successfully!", fiber.Map{
		"total_cursos":                 totalCursos,
		"total_inscricoes":             totalInscricoes,
		"total_certificados_validados": totalValidados,
		"total_usuarios":               totalUsuarios,
	})
}
