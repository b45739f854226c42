package reportController

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"capacita/database"
	"capacita/middleware"
	"capacita/models"
	"capacita/utils"
)

// CapacitacaoRow is one line of the consolidated training report.
type CapacitacaoRow struct {
	CPF              string `json:"cpf"`
	Vinculo          string `json:"vinculo"`
	Setor            string `json:"setor"`
	NomeProfissional string `json:"nome_profissional"`
	AnoGD            string `json:"ano_gd"`
	NomeCurso        string `json:"nome_curso"`
	CargaHoraria     string `json:"carga_horaria"`
	Plataforma       string `json:"plataforma"`
	Tema             string `json:"tema"`
	Status           string `json:"status"`
	Certificado      string `json:"certificado"`
}

func capacitacaoRows(db *gorm.DB) ([]CapacitacaoRow, error) {
	var rows []CapacitacaoRow
	err := db.Table("atribuicoes").
		Select(`usuarios.cpf AS cpf,
			usuarios.vinculo AS vinculo,
			usuarios.lotacao AS setor,
			usuarios.nome AS nome_profissional,
			cursos.ano_gd AS ano_gd,
			cursos.titulo AS nome_curso,
			cursos.carga_horaria AS carga_horaria,
			cursos.certificadora AS plataforma,
			cursos.tema AS tema,
			atribuicoes.status AS status,
			CASE WHEN certificados.id IS NOT NULL THEN 'Sim' ELSE 'Não' END AS certificado`).
		Joins("JOIN usuarios ON usuarios.id = atribuicoes.user_id").
		Joins("JOIN cursos ON cursos.id = atribuicoes.curso_id").
		Joins("LEFT JOIN certificados ON certificados.id = atribuicoes.certificado_id").
		Order("usuarios.lotacao, usuarios.nome").
		Scan(&rows).Error
	return rows, err
}

// Capacitacoes returns the consolidated training report as JSON.
func Capacitacoes(c *fiber.Ctx) error {
	rows, err := capacitacaoRows(database.Database.Db)
	if err != nil {
		log.Printf("Error building capacitacoes report: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to build report!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Report fetched successfully!", rows)
}

var capacitacaoHeaders = []string{
	"CPF", "Vínculo", "Setor", "Nome do Profissional", "Ano GD",
	"Nome do Curso", "Carga Horária", "Plataforma", "Tema", "Status", "Certificado",
}

// CapacitacoesExcel streams the consolidated report as a spreadsheet.
func CapacitacoesExcel(c *fiber.Ctx) error {
	rows, err := capacitacaoRows(database.Database.Db)
	if err != nil {
		log.Printf("Error building capacitacoes export: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to build report!", nil)
	}

	data := make([][]interface{}, 0, len(rows))
	for _, r := range rows {
		data = append(data, []interface{}{
			r.CPF, r.Vinculo, r.Setor, r.NomeProfissional, r.AnoGD,
			r.NomeCurso, r.CargaHoraria, r.Plataforma, r.Tema, r.Status, r.Certificado,
		})
	}
	return utils.WriteExcel(c, "relatorio_capacitacoes.xlsx", "Capacitações", capacitacaoHeaders, data)
}

// CapacitacoesPDF streams the consolidated report as a PDF table.
func CapacitacoesPDF(c *fiber.Ctx) error {
	rows, err := capacitacaoRows(database.Database.Db)
	if err != nil {
		log.Printf("Error building capacitacoes export: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to build report!", nil)
	}

	data := make([][]string, 0, len(rows))
	for _, r := range rows {
		data = append(data, []string{
			r.CPF, r.Vinculo, r.Setor, r.NomeProfissional, r.AnoGD,
			r.NomeCurso, r.CargaHoraria, r.Plataforma, r.Tema, r.Status, r.Certificado,
		})
	}
	return utils.WritePDF(c, "relatorio_capacitacoes.pdf", "Relatório de Capacitações", capacitacaoHeaders, data)
}

// CursosPopulares returns the most-enrolled courses.
func CursosPopulares(c *fiber.Ctx) error {
	type row struct {
		CursoID    string `json:"curso_id"`
		Titulo     string `json:"titulo"`
		Inscricoes int64  `json:"inscricoes"`
	}
	var rows []row
	err := database.Database.Db.Table("inscricoes").
		Select("cursos.id AS curso_id, cursos.titulo AS titulo, COUNT(inscricoes.id) AS inscricoes").
		Joins("JOIN cursos ON cursos.id = inscricoes.curso_id").
		Group("cursos.id, cursos.titulo").
		Order("inscricoes DESC").
		Limit(10).
		Scan(&rows).Error
	if err != nil {
		log.Printf("Error building cursos-populares report: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to build report!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Report fetched successfully!", rows)
}

type statusCount struct {
	Status string `json:"status"`
	Total  int64  `json:"total"`
}

// StatusGeral returns the assignment count per status across all units.
func StatusGeral(c *fiber.Ctx) error {
	var rows []statusCount
	err := database.Database.Db.Table("atribuicoes").
		Select("status, COUNT(id) AS total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		log.Printf("Error building status-geral report: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to build report!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Report fetched successfully!", rows)
}

// ConformidadeLotacao returns, per unit, how many assignments exist and
// how many were validated.
func ConformidadeLotacao(c *fiber.Ctx) error {
	type row struct {
		Lotacao   string `json:"lotacao"`
		Total     int64  `json:"total"`
		Validados int64  `json:"validados"`
	}
	var rows []row
	err := database.Database.Db.Table("atribuicoes").
		Select(`usuarios.lotacao AS lotacao,
			COUNT(atribuicoes.id) AS total,
			SUM(CASE WHEN atribuicoes.status = ? THEN 1 ELSE 0 END) AS validados`, models.StatusValidado).
		Joins("JOIN usuarios ON usuarios.id = atribuicoes.user_id").
		Where("usuarios.lotacao <> ''").
		Group("usuarios.lotacao").
		Order("usuarios.lotacao").
		Scan(&rows).Error
	if err != nil {
		log.Printf("Error building conformidade report: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to build report!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Report fetched successfully!", rows)
}

type pendingCertRow struct {
	AtribuicaoID  string `json:"atribuicao_id"`
	UserID        string `json:"user_id"`
	UserNome      string `json:"user_nome"`
	UserLotacao   string `json:"user_lotacao"`
	CursoTitulo   string `json:"curso_titulo"`
	CertificadoID string `json:"certificado_id"`
}

func pendingCertificates(db *gorm.DB, lotacao string) ([]pendingCertRow, error) {
	query := db.Table("atribuicoes").
		Select(`atribuicoes.id AS atribuicao_id,
			usuarios.id AS user_id,
			usuarios.nome AS user_nome,
			usuarios.lotacao AS user_lotacao,
			cursos.titulo AS curso_titulo,
			atribuicoes.certificado_id AS certificado_id`).
		Joins("JOIN usuarios ON usuarios.id = atribuicoes.user_id").
		Joins("JOIN cursos ON cursos.id = atribuicoes.curso_id").
		Where("atribuicoes.status = ? AND atribuicoes.certificado_id IS NOT NULL", models.StatusRealizado)
	if lotacao != "" {
		query = query.Where("usuarios.lotacao = ?", lotacao)
	}

	var rows []pendingCertRow
	err := query.Order("usuarios.lotacao, usuarios.nome").Scan(&rows).Error
	return rows, err
}

// CertificadosPendentes lists submitted certificates awaiting a decision,
// across every unit.
func CertificadosPendentes(c *fiber.Ctx) error {
	rows, err := pendingCertificates(database.Database.Db, "")
	if err != nil {
		log.Printf("Error building certificados-pendentes report: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to build report!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Report fetched successfully!", rows)
}

// UsuariosPerfilLotacao returns user counts grouped by role and unit.
func UsuariosPerfilLotacao(c *fiber.Ctx) error {
	type row struct {
		Perfil  string `json:"perfil"`
		Lotacao string `json:"lotacao"`
		Total   int64  `json:"total"`
	}
	var rows []row
	err := database.Database.Db.Table("usuarios").
		Select("perfil, lotacao, COUNT(id) AS total").
		Group("perfil, lotacao").
		Order("lotacao, perfil").
		Scan(&rows).Error
	if err != nil {
		log.Printf("Error building usuarios-perfil report: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to build report!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Report fetched successfully!", rows)
}

// callerLotacao resolves the authenticated user's unit from the local store.
func callerLotacao(c *fiber.Ctx) (string, error) {
	username, _ := c.Locals("username").(string)
	var user models.User
	if err := database.Database.Db.Select("lotacao").Where("id = ?", username).First(&user).Error; err != nil {
		return "", err
	}
	return user.Lotacao, nil
}

// StatusLotacao returns the assignment count per status for the
// caller's own unit.
func StatusLotacao(c *fiber.Ctx) error {
	lotacao, err := callerLotacao(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Usuário não encontrado", nil)
	}

	var rows []statusCount
	err = database.Database.Db.Table("atribuicoes").
		Select("atribuicoes.status AS status, COUNT(atribuicoes.id) AS total").
		Joins("JOIN usuarios ON usuarios.id = atribuicoes.user_id").
		Where("usuarios.lotacao = ?", lotacao).
		Group("atribuicoes.status").
		Scan(&rows).Error
	if err != nil {
		log.Printf("Error building status-lotacao report: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to build report!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Report fetched successfully!", fiber.Map{
		"lotacao": lotacao,
		"status":  rows,
	})
}

// ProgressoIndividual returns, per user in the caller's unit, totals and
// a completion percentage over their assignments.
func ProgressoIndividual(c *fiber.Ctx) error {
	lotacao, err := callerLotacao(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Usuário não encontrado", nil)
	}

	type row struct {
		UserID     string `json:"user_id"`
		Nome       string `json:"nome"`
		Total      int64  `json:"total"`
		Concluidos int64  `json:"concluidos"`
		Percentual string `json:"percentual"`
	}
	var rows []row
	err = database.Database.Db.Table("usuarios").
		Select(`usuarios.id AS user_id,
			usuarios.nome AS nome,
			COUNT(atribuicoes.id) AS total,
			SUM(CASE WHEN atribuicoes.status IN (?, ?) THEN 1 ELSE 0 END) AS concluidos`,
			models.StatusRealizado, models.StatusValidado).
		Joins("LEFT JOIN atribuicoes ON atribuicoes.user_id = usuarios.id").
		Where("usuarios.lotacao = ?", lotacao).
		Group("usuarios.id, usuarios.nome").
		Order("usuarios.nome").
		Scan(&rows).Error
	if err != nil {
		log.Printf("Error building progresso report: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to build report!", nil)
	}

	for i := range rows {
		if rows[i].Total > 0 {
			rows[i].Percentual = fmt.Sprintf("%.0f%%", float64(rows[i].Concluidos)/float64(rows[i].Total)*100)
		} else {
			rows[i].Percentual = "0%"
		}
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Report fetched successfully!", rows)
}

// CertificadosPendentesLotacao lists submitted certificates awaiting a
// decision inside the caller's own unit.
func CertificadosPendentesLotacao(c *fiber.Ctx) error {
	lotacao, err := callerLotacao(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Usuário não encontrado", nil)
	}

	rows, err := pendingCertificates(database.Database.Db, lotacao)
	if err != nil {
		log.Printf("Error building certificados-pendentes report: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to build report!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Report fetched successfully!", rows)
}
