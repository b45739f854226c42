package main

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"capacita/auth"
	"capacita/config"
	authController "capacita/controllers/auth"
	"capacita/database"
	adminRoutes "capacita/routers/adminRoutes"
	atribuicaoRoutes "capacita/routers/atribuicaoRoutes"
	authRoutes "capacita/routers/authRoutes"
	certificadoRoutes "capacita/routers/certificadoRoutes"
	courseRoutes "capacita/routers/courseRoutes"
	inscricaoRoutes "capacita/routers/inscricaoRoutes"
	relatorioRoutes "capacita/routers/relatorioRoutes"
	utilsRoutes "capacita/routers/utilsRoutes"
	"capacita/utils"
)

func buildProvider() auth.Provider {
	if config.AppConfig.ADURL != "" {
		provider, err := auth.NewLDAPProvider(
			config.AppConfig.ADURL,
			config.AppConfig.ADBaseDN,
			config.AppConfig.ADBindDomain,
			config.AppConfig.ADBindUser,
			config.AppConfig.ADBindPassword,
		)
		if err != nil {
			log.Fatalf("Invalid AD configuration: %v", err)
		}
		log.Printf("Using LDAP authentication against %s", config.AppConfig.ADURL)
		return provider
	}
	log.Println("WARNING: AD_URL is not set, falling back to the mock provider (admin/admin)")
	return auth.NewMockProvider()
}

func main() {
	config.LoadConfig()
	database.ConnectDb()
	database.ConnectSourceDb()

	provider := buildProvider()
	refreshTTL := time.Duration(config.AppConfig.RefreshTokenExpDays) * 24 * time.Hour
	svc := auth.NewService(provider, config.AppConfig.JWTSecret, refreshTTL)
	authCtrl := authController.NewController(svc)

	app := fiber.New()

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:5173",
		AllowMethods:     "GET,POST,PUT,DELETE",
		AllowHeaders:     "Content-Type,Authorization",
		AllowCredentials: true,
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve uploaded certificate files
	app.Static("/uploads", config.AppConfig.UploadsDir)

	authRoutes.SetupAuthRoutes(app, authCtrl, svc)
	courseRoutes.SetupCourseRoutes(app, svc)
	atribuicaoRoutes.SetupAtribuicaoRoutes(app, svc)
	inscricaoRoutes.SetupInscricaoRoutes(app, svc)
	certificadoRoutes.SetupCertificadoRoutes(app, svc)
	adminRoutes.SetupAdminRoutes(app, svc)
	relatorioRoutes.SetupRelatorioRoutes(app, svc)
	utilsRoutes.SetupUtilsRoutes(app, svc)

	utils.InitializeTokenCleanupScheduler(svc)

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
