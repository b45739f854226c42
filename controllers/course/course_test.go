package courseController_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	courseController "capacita/controllers/course"
	"capacita/database"
	"capacita/models"
	courseValidator "capacita/validators/course"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Course{}, &models.Assignment{},
		&models.Enrollment{}, &models.Certificate{},
	))
	database.Database = database.DbInstance{Db: db}
	return db
}

func newApp(username string, perfil models.Perfil) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("username", username)
		c.Locals("claims", jwt.MapClaims{"sub": username, "perfil": string(perfil)})
		return c.Next()
	})
	app.Get("/api/cursos", courseController.ListCourses)
	app.Post("/api/cursos", courseValidator.Course(), courseController.CreateCourse)
	app.Get("/api/cursos/recommended", courseController.RecommendedCourses)
	app.Get("/api/cursos/genericos", courseController.GenericCourses)
	app.Get("/api/cursos/:id", courseController.GetCourse)
	app.Put("/api/cursos/:id", courseValidator.Course(), courseController.UpdateCourse)
	app.Delete("/api/cursos/:id", courseController.DeleteCourse)
	return app
}

func seedUser(t *testing.T, db *gorm.DB, id, lotacao string) {
	t.Helper()
	require.NoError(t, db.Create(&models.User{ID: id, Nome: strings.ToUpper(id), Lotacao: lotacao}).Error)
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeData(t *testing.T, resp io.Reader, out interface{}) {
	t.Helper()
	var env envelope
	require.NoError(t, json.NewDecoder(resp).Decode(&env))
	require.NoError(t, json.Unmarshal(env.Data, out))
}

func TestCreateCourseMassAssignsLotacao(t *testing.T) {
	db := setupDB(t)
	app := newApp("gestor", models.PerfilUDP)

	seedUser(t, db, "alice", "TI")
	seedUser(t, db, "bob", "TI")
	seedUser(t, db, "carol", "TI")
	seedUser(t, db, "dave", "RH")

	body := `{"titulo": "LGPD Básico", "lotacao_id": "TI", "atribuir_a_todos": true}`
	req := httptest.NewRequest("POST", "/api/cursos", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var course models.Course
	decodeData(t, resp.Body, &course)

	var assignments []models.Assignment
	require.NoError(t, db.Where("curso_id = ?", course.ID).Find(&assignments).Error)
	assert.Len(t, assignments, 3)
	for _, a := range assignments {
		assert.Equal(t, models.StatusPendente, a.Status)
		assert.False(t, a.CriadoPorUsuario)
	}
}

func TestUpdateCourseTogglesMassAssignment(t *testing.T) {
	db := setupDB(t)
	app := newApp("gestor", models.PerfilUDP)

	seedUser(t, db, "alice", "TI")
	course := models.Course{ID: uuid.NewString(), Titulo: "NR-32", LotacaoID: "TI"}
	require.NoError(t, db.Create(&course).Error)

	body := `{"titulo": "NR-32", "lotacao_id": "TI", "atribuir_a_todos": true}`
	req := httptest.NewRequest("PUT", "/api/cursos/"+course.ID, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var count int64
	db.Model(&models.Assignment{}).Where("curso_id = ? AND user_id = ?", course.ID, "alice").Count(&count)
	assert.Equal(t, int64(1), count)

	// Saving again must not duplicate assignments.
	req = httptest.NewRequest("PUT", "/api/cursos/"+course.ID, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	db.Model(&models.Assignment{}).Where("curso_id = ?", course.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestDeleteCourseCascades(t *testing.T) {
	db := setupDB(t)
	app := newApp("gestor", models.PerfilUDP)

	course := models.Course{ID: uuid.NewString(), Titulo: "Biossegurança"}
	require.NoError(t, db.Create(&course).Error)
	require.NoError(t, db.Create(&models.Assignment{
		ID: uuid.NewString(), UserID: "alice", CursoID: course.ID,
		Status: models.StatusPendente, AtribuidoEm: time.Now(),
	}).Error)
	require.NoError(t, db.Create(&models.Enrollment{
		ID: uuid.NewString(), UserID: "alice", CursoID: course.ID, InscritoEm: time.Now(),
	}).Error)
	require.NoError(t, db.Create(&models.Certificate{ID: uuid.NewString(), CursoID: course.ID}).Error)

	req := httptest.NewRequest("DELETE", "/api/cursos/"+course.ID, nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	for _, model := range []interface{}{&models.Course{}, &models.Assignment{}, &models.Enrollment{}, &models.Certificate{}} {
		var count int64
		db.Model(model).Count(&count)
		assert.Equal(t, int64(0), count)
	}
}

func TestCreateCourseRequiresTitle(t *testing.T) {
	setupDB(t)
	app := newApp("gestor", models.PerfilUDP)

	req := httptest.NewRequest("POST", "/api/cursos", strings.NewReader(`{"titulo": ""}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}

func TestRecommendedCourses(t *testing.T) {
	db := setupDB(t)
	app := newApp("alice", models.PerfilTrabalhador)

	seedUser(t, db, "alice", "TI")
	forTI := models.Course{ID: uuid.NewString(), Titulo: "Redes", LotacaoID: "TI"}
	forRH := models.Course{ID: uuid.NewString(), Titulo: "Folha", LotacaoID: "RH"}
	known := models.Course{ID: uuid.NewString(), Titulo: "Git", LotacaoID: "TI"}
	require.NoError(t, db.Create(&forTI).Error)
	require.NoError(t, db.Create(&forRH).Error)
	require.NoError(t, db.Create(&known).Error)
	require.NoError(t, db.Create(&models.Enrollment{
		ID: uuid.NewString(), UserID: "alice", CursoID: known.ID, InscritoEm: time.Now(),
	}).Error)

	req := httptest.NewRequest("GET", "/api/cursos/recommended", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var courses []models.Course
	decodeData(t, resp.Body, &courses)
	require.Len(t, courses, 1)
	assert.Equal(t, forTI.ID, courses[0].ID)
}

func TestGenericCourses(t *testing.T) {
	db := setupDB(t)
	app := newApp("alice", models.PerfilTrabalhador)

	generic := models.Course{ID: uuid.NewString(), Titulo: "Onboarding"}
	targeted := models.Course{ID: uuid.NewString(), Titulo: "Redes", LotacaoID: "TI"}
	require.NoError(t, db.Create(&generic).Error)
	require.NoError(t, db.Create(&targeted).Error)

	req := httptest.NewRequest("GET", "/api/cursos/genericos", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var courses []models.Course
	decodeData(t, resp.Body, &courses)
	require.Len(t, courses, 1)
	assert.Equal(t, generic.ID, courses[0].ID)
}

func TestGetCourseNotFound(t *testing.T) {
	setupDB(t)
	app := newApp("alice", models.PerfilTrabalhador)

	req := httptest.NewRequest("GET", "/api/cursos/missing", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
