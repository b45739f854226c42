package adminController

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	userController "capacita/controllers/user"
	"capacita/database"
	"capacita/middleware"
	"capacita/models"
)

// PerfilInput is the validated request body for role changes
type PerfilInput struct {
	UserID     string `json:"user_id" validate:"required"`
	NovoPerfil string `json:"novo_perfil" validate:"required,oneof=Trabalhador Chefia UDP"`
}

// UpdateUserPerfil changes a user's role. The new role reaches tokens
// on the user's next login or refresh, not retroactively.
func UpdateUserPerfil(c *fiber.Ctx) error {
	input, ok := c.Locals("validatedPerfil").(*PerfilInput)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	user, err := userController.UpdatePerfil(database.Database.Db, input.UserID, models.Perfil(input.NovoPerfil))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Usuário não encontrado", nil)
		}
		log.Printf("Error updating perfil for %s: %v", input.UserID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update user profile!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User profile updated successfully!", user)
}

// ListUsers returns all users with optional nome/lotacao filters and
// the per-user assignment count.
func ListUsers(c *fiber.Ctx) error {
	rows, err := userController.ListUsers(database.Database.Db, c.Query("nome"), c.Query("lotacao"))
	if err != nil {
		log.Printf("Error listing users: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to list users!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Users fetched successfully!", rows)
}

// sourceEmployee is a row from the external employee store
type sourceEmployee struct {
	Usuario   string
	Nome      string
	Email     string
	Lotacao   string
	Cargo     string
	Matricula string
	CPF       string
	Vinculo   string
}

// ImportUsers pulls employees from the external source store into the
// local user table. Existing users are left alone so administrative
// role changes survive re-imports.
func ImportUsers(c *fiber.Ctx) error {
	if database.SourceDb == nil {
		return middleware.JsonResponse(c, fiber.StatusServiceUnavailable, false, "External source store is not configured!", nil)
	}

	var employees []sourceEmployee
	err := database.SourceDb.Table("funcionarios").
		Select("usuario, nome, email, lotacao, cargo, matricula, cpf, vinculo").
		Scan(&employees).Error
	if err != nil {
		log.Printf("Error querying source store: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to query external source store!", nil)
	}

	db := database.Database.Db
	created, skipped := 0, 0

	for _, emp := range employees {
		if emp.Usuario == "" {
			skipped++
			continue
		}

		var existing models.User
		if err := db.Where("id = ?", emp.Usuario).First(&existing).Error; err == nil {
			skipped++
			continue
		}

		user := models.User{
			ID:        emp.Usuario,
			Nome:      emp.Nome,
			Email:     emp.Email,
			Perfil:    models.PerfilTrabalhador,
			Lotacao:   strings.ToUpper(emp.Lotacao),
			Cargo:     emp.Cargo,
			Matricula: emp.Matricula,
			CPF:       emp.CPF,
			Vinculo:   emp.Vinculo,
		}
		if err := db.Create(&user).Error; err != nil {
			log.Printf("Error importing user %s: %v", emp.Usuario, err)
			skipped++
			continue
		}
		created++
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Import completed!", fiber.Map{
		"created": created,
		"skipped": skipped,
	})
}
