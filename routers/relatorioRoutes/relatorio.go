package relatorioRoutes

import (
	"github.com/gofiber/fiber/v2"

	"capacita/auth"
	reportController "capacita/controllers/report"
	"capacita/middleware"
)

// SetupRelatorioRoutes sets up the reporting routes
func SetupRelatorioRoutes(app *fiber.App, svc *auth.Service) {
	group := app.Group("/api/relatorios", middleware.Protected(svc))

	udp := group.Group("", middleware.RequireUDP)
	udp.Get("/capacitacoes", reportController.Capacitacoes)
	udp.Get("/capacitacoes/export/excel", reportController.CapacitacoesExcel)
	udp.Get("/capacitacoes/export/pdf", reportController.CapacitacoesPDF)
	udp.Get("/udp/cursos-populares", reportController.CursosPopulares)
	udp.Get("/udp/status-geral", reportController.StatusGeral)
	udp.Get("/udp/conformidade-lotacao", reportController.ConformidadeLotacao)
	udp.Get("/udp/certificados-pendentes", reportController.CertificadosPendentes)
	udp.Get("/udp/usuarios-perfil-lotacao", reportController.UsuariosPerfilLotacao)

	chefia := group.Group("/chefia", middleware.RequireChefia)
	chefia.Get("/status-lotacao", reportController.StatusLotacao)
	chefia.Get("/progresso-individual", reportController.ProgressoIndividual)
	chefia.Get("/certificados-pendentes", reportController.CertificadosPendentesLotacao)
}
