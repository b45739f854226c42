package enrollmentController

import (
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"capacita/database"
	"capacita/middleware"
	"capacita/models"
)

// EnrollInput is the validated request body for enrollment
type EnrollInput struct {
	CursoID string `json:"curso_id" validate:"required"`
}

// Enroll signs the caller up for a course. A Pendente assignment pushed
// by the lotação moves to Em Andamento; otherwise a self-created one is
// opened. Both writes share the enrollment's transaction.
func Enroll(c *fiber.Ctx) error {
	username, _ := c.Locals("username").(string)

	input, ok := c.Locals("validatedEnrollment").(*EnrollInput)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ?", input.CursoID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Curso não encontrado", nil)
	}

	var existing models.Enrollment
	if err := db.Where("user_id = ? AND curso_id = ?", username, input.CursoID).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Usuário já inscrito neste curso.", nil)
	}

	enrollment := models.Enrollment{
		ID:         uuid.NewString(),
		UserID:     username,
		CursoID:    input.CursoID,
		InscritoEm: time.Now(),
	}

	var assignment models.Assignment
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&enrollment).Error; err != nil {
			return err
		}

		result := tx.Where("user_id = ? AND curso_id = ?", username, input.CursoID).First(&assignment)
		if result.Error == nil && assignment.Status == models.StatusPendente {
			assignment.Status = models.StatusEmAndamento
			return tx.Save(&assignment).Error
		}
		if result.Error != nil && result.Error != gorm.ErrRecordNotFound {
			return result.Error
		}

		assignment = models.Assignment{
			ID:               uuid.NewString(),
			UserID:           username,
			CursoID:          input.CursoID,
			Status:           models.StatusEmAndamento,
			CriadoPorUsuario: true,
			AtribuidoEm:      time.Now(),
		}
		return tx.Create(&assignment).Error
	})
	if err != nil {
		// A concurrent enroll loses the race on the unique index.
		if isUniqueViolation(err) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Usuário já inscrito neste curso.", nil)
		}
		log.Printf("Error enrolling user %s in course %s: %v", username, input.CursoID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in course!", nil)
	}

	enrollment.Curso = &course
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Enrolled in course successfully!", fiber.Map{
		"inscricao":  enrollment,
		"atribuicao": assignment,
	})
}

// Unenroll removes the caller's enrollment. Self-created assignments
// go with it; administrator-created ones revert to Pendente while the
// course still mass-assigns, and are deleted otherwise.
func Unenroll(c *fiber.Ctx) error {
	username, _ := c.Locals("username").(string)
	enrollmentID := c.Params("id")

	db := database.Database.Db

	var enrollment models.Enrollment
	if err := db.Where("id = ?", enrollmentID).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Inscrição não encontrada.", nil)
	}

	if enrollment.UserID != username {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Você não tem permissão para desinscrever-se deste curso.", nil)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		var assignment models.Assignment
		result := tx.Where("user_id = ? AND curso_id = ?", enrollment.UserID, enrollment.CursoID).First(&assignment)
		if result.Error == nil {
			if assignment.CriadoPorUsuario {
				if err := tx.Delete(&assignment).Error; err != nil {
					return err
				}
			} else {
				var course models.Course
				courseErr := tx.Where("id = ?", assignment.CursoID).First(&course).Error
				if courseErr == nil && !course.AtribuirATodos {
					if err := tx.Delete(&assignment).Error; err != nil {
						return err
					}
				} else {
					assignment.Status = models.StatusPendente
					if err := tx.Save(&assignment).Error; err != nil {
						return err
					}
				}
			}
		} else if result.Error != gorm.ErrRecordNotFound {
			return result.Error
		}

		return tx.Delete(&enrollment).Error
	})
	if err != nil {
		log.Printf("Error unenrolling %s from enrollment %s: %v", username, enrollmentID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to unenroll from course!", nil)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// EnrollmentRow is a listing entry joining the assignment and
// certificate state onto the enrollment.
type EnrollmentRow struct {
	ID                  string                  `json:"id"`
	UserID              string                  `json:"user_id"`
	CursoID             string                  `json:"curso_id"`
	InscritoEm          time.Time               `json:"inscrito_em"`
	AtribuicaoID        string                  `json:"atribuicao_id"`
	Status              models.StatusAtribuicao `json:"status"`
	CertificadoID       *string                 `json:"certificado_id"`
	CertificadoFilePath *string                 `json:"certificado_file_path"`
	CertificadoLink     *string                 `json:"certificado_link"`
	Curso               *models.Course          `json:"curso"`
}

// MyEnrollments lists the caller's enrollments with course details and
// the paired assignment's status.
func MyEnrollments(c *fiber.Ctx) error {
	username, _ := c.Locals("username").(string)

	db := database.Database.Db

	var rows []EnrollmentRow
	err := db.Model(&models.Enrollment{}).
		Select(`inscricoes.id, inscricoes.user_id, inscricoes.curso_id, inscricoes.inscrito_em,
			atribuicoes.id AS atribuicao_id, atribuicoes.status AS status,
			certificados.id AS certificado_id, certificados.file_path AS certificado_file_path,
			certificados.link AS certificado_link`).
		Joins("JOIN atribuicoes ON atribuicoes.user_id = inscricoes.user_id AND atribuicoes.curso_id = inscricoes.curso_id").
		Joins("LEFT JOIN certificados ON certificados.id = atribuicoes.certificado_id").
		Where("inscricoes.user_id = ?", username).
		Scan(&rows).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	// Attach the course payloads in one query.
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

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", rows)
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}
