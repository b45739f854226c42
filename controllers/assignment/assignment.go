package assignmentController

import (
	"github.com/gofiber/fiber/v2"

	"capacita/database"
	"capacita/middleware"
	"capacita/models"
)

// MyAssignments lists the caller's assignments with course details
func MyAssignments(c *fiber.Ctx) error {
	username, _ := c.Locals("username").(string)

	var assignments []models.Assignment
	err := database.Database.Db.
		Preload("Curso").
		Preload("Certificado").
		Where("user_id = ?", username).
		Order("atribuido_em desc").
		Find(&assignments).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch assignments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Assignments fetched successfully!", assignments)
}

// PendingRow is a validation-queue entry
type PendingRow struct {
	models.Assignment
	UserNome    string `json:"user_nome"`
	UserLotacao string `json:"user_lotacao"`
}

// PendingValidation lists Realizado assignments awaiting a decision.
// Chefia sees its own lotação; UDP sees everything.
func PendingValidation(c *fiber.Ctx) error {
	username, _ := c.Locals("username").(string)

	db := database.Database.Db

	query := db.Model(&models.Assignment{}).
		Select("atribuicoes.*, usuarios.nome AS user_nome, usuarios.lotacao AS user_lotacao").
		Joins("JOIN usuarios ON usuarios.id = atribuicoes.user_id").
		Where("atribuicoes.status = ?", models.StatusRealizado).
		Order("atribuicoes.data_conclusao")

	if middleware.ClaimPerfil(c) == models.PerfilChefia {
		var chefe models.User
		if err := db.Where("id = ?", username).First(&chefe).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Lotação do usuário não encontrada.", nil)
		}
		query = query.Where("usuarios.lotacao = ?", chefe.Lotacao)
	}

	var rows []PendingRow
	if err := query.Scan(&rows).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch pending validations!", nil)
	}

	// Scan does not run Preloads; fetch the courses in one pass.
	courseIDs := make([]string, 0, len(rows))
	for _, row := range rows {
		courseIDs = append(courseIDs, row.CursoID)
	}
	if len(courseIDs) > 0 {
		var courses []models.Course
		if err := db.Where("id IN ?", courseIDs).Find(&courses).Error; err == nil {
			byID := make(map[string]*models.Course, len(courses))
			for i := range courses {
				byID[courses[i].ID] = &courses[i]
			}
			for i := range rows {
				rows[i].Curso = byID[rows[i].CursoID]
			}
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Pending validations fetched successfully!", rows)
}
