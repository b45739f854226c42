package certificateController

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"capacita/config"
	"capacita/database"
	"capacita/middleware"
	"capacita/models"
	"capacita/utils"
)

// LinkInput is the validated request body for link submissions
type LinkInput struct {
	AtribuicaoID string `json:"atribuicao_id" validate:"required"`
	Link         string `json:"link" validate:"required,url"`
}

// ValidateInput is the validated request body for the validation decision
type ValidateInput struct {
	AtribuicaoID string                  `json:"atribuicao_id" validate:"required"`
	Status       models.StatusAtribuicao `json:"status" validate:"required"`
}

// Upload registers a certificate from an uploaded file and marks the
// assignment Realizado.
func Upload(c *fiber.Ctx) error {
	username, _ := c.Locals("username").(string)

	atribuicaoID := c.FormValue("atribuicao_id")
	if atribuicaoID == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "atribuicao_id is required!", nil)
	}

	file, err := c.FormFile("file")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Certificate file is required!", nil)
	}

	db := database.Database.Db

	var assignment models.Assignment
	if err := db.Where("id = ?", atribuicaoID).First(&assignment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Atribuição não encontrada", nil)
	}
	if assignment.UserID != username {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Você não tem permissão para enviar certificado desta atribuição.", nil)
	}

	filePath, err := utils.SaveUploadedFile(file, config.AppConfig.UploadsDir)
	if err != nil {
		log.Printf("Error saving certificate file: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save certificate file!", nil)
	}

	certificate := models.Certificate{
		ID:       uuid.NewString(),
		FilePath: filePath,
		CursoID:  assignment.CursoID,
	}

	if err := attachCertificate(db, &assignment, &certificate); err != nil {
		log.Printf("Error registering certificate: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to register certificate!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Certificate registered successfully!", certificate)
}

// SubmitLink registers a certificate from an external link and marks
// the assignment Realizado. The link gets a best-effort reachability
// probe; an unreachable one is still accepted.
func SubmitLink(c *fiber.Ctx) error {
	username, _ := c.Locals("username").(string)

	input, ok := c.Locals("validatedCertificateLink").(*LinkInput)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var assignment models.Assignment
	if err := db.Where("id = ?", input.AtribuicaoID).First(&assignment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Atribuição não encontrada", nil)
	}
	if assignment.UserID != username {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Você não tem permissão para enviar certificado desta atribuição.", nil)
	}

	certificate := models.Certificate{
		ID:      uuid.NewString(),
		Link:    input.Link,
		CursoID: assignment.CursoID,
	}

	if err := attachCertificate(db, &assignment, &certificate); err != nil {
		log.Printf("Error registering certificate: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to register certificate!", nil)
	}

	message := "Certificate registered successfully!"
	if !utils.CheckLinkReachable(input.Link) {
		message = "Certificate registered, but the link could not be reached."
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, message, certificate)
}

// Get returns certificate metadata by ID
func Get(c *fiber.Ctx) error {
	var certificate models.Certificate
	if err := database.Database.Db.Where("id = ?", c.Params("id")).First(&certificate).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificado não encontrado", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate fetched successfully!", certificate)
}

// Validate records the supervisor's decision on a submitted certificate
func Validate(c *fiber.Ctx) error {
	input, ok := c.Locals("validatedCertificateDecision").(*ValidateInput)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if input.Status != models.StatusValidado && input.Status != models.StatusRecusado {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "O status de validação deve ser 'Validado' ou 'Recusado'.", nil)
	}

	db := database.Database.Db

	var assignment models.Assignment
	if err := db.Where("id = ?", input.AtribuicaoID).First(&assignment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Atribuição não encontrada", nil)
	}

	now := time.Now()
	err := db.Transaction(func(tx *gorm.DB) error {
		assignment.Status = input.Status
		assignment.DataValidacao = &now
		if err := tx.Save(&assignment).Error; err != nil {
			return err
		}
		if assignment.CertificadoID != nil {
			return tx.Model(&models.Certificate{}).
				Where("id = ?", *assignment.CertificadoID).
				Update("validado", input.Status == models.StatusValidado).Error
		}
		return nil
	})
	if err != nil {
		log.Printf("Error validating assignment %s: %v", input.AtribuicaoID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to validate certificate!", nil)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// attachCertificate stores the certificate and moves the assignment to
// Realizado with its completion timestamp, in one transaction.
func attachCertificate(db *gorm.DB, assignment *models.Assignment, certificate *models.Certificate) error {
	now := time.Now()
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(certificate).Error; err != nil {
			return err
		}
		assignment.CertificadoID = &certificate.ID
		assignment.Status = models.StatusRealizado
		assignment.DataConclusao = &now
		return tx.Save(assignment).Error
	})
}
