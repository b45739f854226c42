package courseController

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"capacita/database"
	"capacita/middleware"
	"capacita/models"
)

// CourseInput is the validated request body for create and update
type CourseInput struct {
	Titulo          string `json:"titulo" validate:"required"`
	Certificadora   string `json:"certificadora"`
	CargaHoraria    int    `json:"carga_horaria" validate:"gte=0"`
	Link            string `json:"link"`
	Tema            string `json:"tema"`
	AnoGD           string `json:"ano_gd"`
	LotacaoID       string `json:"lotacao_id"`
	AtribuirATodos  bool   `json:"atribuir_a_todos"`
	Conteudo        string `json:"conteudo"`
	PublicoAlvo     string `json:"publico_alvo"`
	Disponibilidade string `json:"disponibilidade"`
}

func ListCourses(c *fiber.Ctx) error {
	var courses []models.Course
	if err := database.Database.Db.Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", courses)
}

func GetCourse(c *fiber.Ctx) error {
	var course models.Course
	if err := database.Database.Db.Where("id = ?", c.Params("id")).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Curso não encontrado", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", course)
}

// CreateCourse stores a new course. When it targets a lotação with
// atribuir_a_todos set, every user of that lotação receives a Pendente
// assignment inside the same transaction.
func CreateCourse(c *fiber.Ctx) error {
	input, ok := c.Locals("validatedCourse").(*CourseInput)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	course := models.Course{
		ID:              uuid.NewString(),
		Titulo:          input.Titulo,
		Certificadora:   input.Certificadora,
		CargaHoraria:    input.CargaHoraria,
		Link:            input.Link,
		Tema:            input.Tema,
		AnoGD:           input.AnoGD,
		LotacaoID:       input.LotacaoID,
		AtribuirATodos:  input.AtribuirATodos,
		Conteudo:        input.Conteudo,
		PublicoAlvo:     input.PublicoAlvo,
		Disponibilidade: input.Disponibilidade,
	}

	err := database.Database.Db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&course).Error; err != nil {
			return err
		}
		if course.AtribuirATodos && course.LotacaoID != "" {
			return assignToLotacao(tx, course.ID, course.LotacaoID)
		}
		return nil
	})
	if err != nil {
		log.Printf("Error creating course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

func UpdateCourse(c *fiber.Ctx) error {
	input, ok := c.Locals("validatedCourse").(*CourseInput)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	var course models.Course
	if err := database.Database.Db.Where("id = ?", c.Params("id")).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Curso não encontrado", nil)
	}

	wasMassAssigned := course.AtribuirATodos

	course.Titulo = input.Titulo
	course.Certificadora = input.Certificadora
	course.CargaHoraria = input.CargaHoraria
	course.Link = input.Link
	course.Tema = input.Tema
	course.AnoGD = input.AnoGD
	course.LotacaoID = input.LotacaoID
	course.AtribuirATodos = input.AtribuirATodos
	course.Conteudo = input.Conteudo
	course.PublicoAlvo = input.PublicoAlvo
	course.Disponibilidade = input.Disponibilidade

	err := database.Database.Db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&course).Error; err != nil {
			return err
		}
		// Turning mass-assignment on picks up the whole lotação.
		if course.AtribuirATodos && !wasMassAssigned && course.LotacaoID != "" {
			return assignToLotacao(tx, course.ID, course.LotacaoID)
		}
		return nil
	})
	if err != nil {
		log.Printf("Error updating course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

// DeleteCourse removes a course and everything hanging off it:
// assignments, enrollments and certificates.
func DeleteCourse(c *fiber.Ctx) error {
	courseID := c.Params("id")

	var course models.Course
	if err := database.Database.Db.Where("id = ?", courseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Curso não encontrado", nil)
	}

	err := database.Database.Db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("curso_id = ?", courseID).Delete(&models.Assignment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("curso_id = ?", courseID).Delete(&models.Enrollment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("curso_id = ?", courseID).Delete(&models.Certificate{}).Error; err != nil {
			return err
		}
		return tx.Delete(&course).Error
	})
	if err != nil {
		log.Printf("Error deleting course %s: %v", courseID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// RecommendedCourses lists courses targeting the caller's lotação,
// excluding the ones already enrolled in or assigned.
func RecommendedCourses(c *fiber.Ctx) error {
	username, _ := c.Locals("username").(string)

	db := database.Database.Db

	var user models.User
	if err := db.Select("lotacao").Where("id = ?", username).First(&user).Error; err != nil || user.Lotacao == "" {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", []models.Course{})
	}

	query := db.Where("UPPER(lotacao_id) = ?", user.Lotacao)
	if known := knownCourseIDs(db, username); len(known) > 0 {
		query = query.Where("id NOT IN ?", known)
	}

	var courses []models.Course
	if err := query.Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", courses)
}

// GenericCourses lists courses without a target lotação, excluding the
// ones already enrolled in or assigned.
func GenericCourses(c *fiber.Ctx) error {
	username, _ := c.Locals("username").(string)

	db := database.Database.Db

	query := db.Where("lotacao_id = '' OR lotacao_id IS NULL")
	if known := knownCourseIDs(db, username); len(known) > 0 {
		query = query.Where("id NOT IN ?", known)
	}

	var courses []models.Course
	if err := query.Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", courses)
}

// knownCourseIDs collects the course IDs the user already touches
// through an enrollment or an assignment.
func knownCourseIDs(db *gorm.DB, username string) []string {
	var enrolled, assigned []string
	db.Model(&models.Enrollment{}).Where("user_id = ?", username).Pluck("curso_id", &enrolled)
	db.Model(&models.Assignment{}).Where("user_id = ?", username).Pluck("curso_id", &assigned)

	seen := make(map[string]bool, len(enrolled)+len(assigned))
	var ids []string
	for _, id := range append(enrolled, assigned...) {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids
}

// assignToLotacao creates Pendente assignments for every user of the
// lotação that does not already have one for the course.
func assignToLotacao(tx *gorm.DB, courseID, lotacao string) error {
	var userIDs []string
	if err := tx.Model(&models.User{}).Where("lotacao = ?", lotacao).Pluck("id", &userIDs).Error; err != nil {
		return err
	}
	if len(userIDs) == 0 {
		return nil
	}

	var existing []string
	if err := tx.Model(&models.Assignment{}).
		Where("curso_id = ? AND user_id IN ?", courseID, userIDs).
		Pluck("user_id", &existing).Error; err != nil {
		return err
	}
	already := make(map[string]bool, len(existing))
	for _, id := range existing {
		already[id] = true
	}

	var assignments []models.Assignment
	for _, userID := range userIDs {
		if already[userID] {
			continue
		}
		assignments = append(assignments, models.Assignment{
			ID:          uuid.NewString(),
			UserID:      userID,
			CursoID:     courseID,
			Status:      models.StatusPendente,
			AtribuidoEm: time.Now(),
		})
	}
	if len(assignments) == 0 {
		return nil
	}
	return tx.Create(&assignments).Error
}
