package adminController_test

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	adminController "capacita/controllers/admin"
	"capacita/database"
	"capacita/models"
	adminValidator "capacita/validators/admin"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Assignment{}))
	database.Database = database.DbInstance{Db: db}
	database.SourceDb = nil
	return db
}

func newApp() *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("username", "udp")
		c.Locals("claims", jwt.MapClaims{"sub": "udp", "perfil": string(models.PerfilUDP)})
		return c.Next()
	})
	app.Get("/api/admin/usuarios", adminController.ListUsers)
	app.Put("/api/admin/usuarios/perfil", adminValidator.Perfil(), adminController.UpdateUserPerfil)
	app.Post("/api/admin/usuarios/import", adminController.ImportUsers)
	return app
}

func TestUpdateUserPerfil(t *testing.T) {
	db := setupDB(t)
	app := newApp()

	require.NoError(t, db.Create(&models.User{ID: "maria.silva", Nome: "MARIA SILVA"}).Error)

	body := `{"user_id": "maria.silva", "novo_perfil": "Chefia"}`
	req := httptest.NewRequest("PUT", "/api/admin/usuarios/perfil", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var user models.User
	require.NoError(t, db.Where("id = ?", "maria.silva").First(&user).Error)
	assert.Equal(t, models.PerfilChefia, user.Perfil)
}

func TestUpdateUserPerfilRejectsInvalidRole(t *testing.T) {
	setupDB(t)
	app := newApp()

	body := `{"user_id": "maria.silva", "novo_perfil": "SuperAdmin"}`
	req := httptest.NewRequest("PUT", "/api/admin/usuarios/perfil", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}

func TestUpdateUserPerfilUnknownUser(t *testing.T) {
	setupDB(t)
	app := newApp()

	body := `{"user_id": "ghost", "novo_perfil": "UDP"}`
	req := httptest.NewRequest("PUT", "/api/admin/usuarios/perfil", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestImportUsersWithoutSourceStore(t *testing.T) {
	setupDB(t)
	app := newApp()

	req := httptest.NewRequest("POST", "/api/admin/usuarios/import", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

type funcionario struct {
	Usuario   string
	Nome      string
	Email     string
	Lotacao   string
	Cargo     string
	Matricula string
	CPF       string
	Vinculo   string
}

func (funcionario) TableName() string {
	return "funcionarios"
}

func TestImportUsersSkipsExisting(t *testing.T) {
	db := setupDB(t)

	srcDSN := fmt.Sprintf("file:%s_src?mode=memory&cache=shared", t.Name())
	src, err := gorm.Open(sqlite.Open(srcDSN), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, src.AutoMigrate(&funcionario{}))
	database.SourceDb = src
	defer func() { database.SourceDb = nil }()

	require.NoError(t, src.Create(&funcionario{
		Usuario: "maria.silva", Nome: "Maria Silva", Lotacao: "setisd", Vinculo: "EBSERH",
	}).Error)
	require.NoError(t, src.Create(&funcionario{
		Usuario: "joao.souza", Nome: "Joao Souza", Lotacao: "rh",
	}).Error)

	// Existing record with a promoted role must be left untouched.
	require.NoError(t, db.Create(&models.User{ID: "maria.silva", Nome: "MARIA SILVA", Perfil: models.PerfilUDP}).Error)

	app := newApp()
	req := httptest.NewRequest("POST", "/api/admin/usuarios/import", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var env struct {
		Data struct {
			Created int `json:"created"`
			Skipped int `json:"skipped"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	assert.Equal(t, 1, env.Data.Created)
	assert.Equal(t, 1, env.Data.Skipped)

	var maria, joao models.User
	require.NoError(t, db.Where("id = ?", "maria.silva").First(&maria).Error)
	assert.Equal(t, models.PerfilUDP, maria.Perfil)

	require.NoError(t, db.Where("id = ?", "joao.souza").First(&joao).Error)
	assert.Equal(t, models.PerfilTrabalhador, joao.Perfil)
	assert.Equal(t, "RH", joao.Lotacao)
}
