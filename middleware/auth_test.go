package middleware_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"capacita/auth"
	"capacita/middleware"
	"capacita/models"
)

func protectedApp(svc *auth.Service) *fiber.App {
	app := fiber.New()
	app.Get("/open", middleware.Protected(svc), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Get("/chefia", middleware.Protected(svc), middleware.RequireChefia, func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Get("/udp", middleware.Protected(svc), middleware.RequireUDP, func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func get(t *testing.T, app *fiber.App, path, token string) int {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func issueToken(t *testing.T, svc *auth.Service, perfil models.Perfil, ttl time.Duration) string {
	t.Helper()
	token, err := svc.CreateAccessToken(jwt.MapClaims{
		"username": "alice",
		"perfil":   string(perfil),
	}, ttl)
	require.NoError(t, err)
	return token
}

func TestProtectedRejectsMissingToken(t *testing.T) {
	svc := auth.NewService(auth.NewMockProvider(), "test-secret", time.Hour)
	app := protectedApp(svc)

	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, "/open", ""))
}

func TestProtectedRejectsExpiredToken(t *testing.T) {
	svc := auth.NewService(auth.NewMockProvider(), "test-secret", time.Hour)
	app := protectedApp(svc)

	token := issueToken(t, svc, models.PerfilTrabalhador, -time.Minute)
	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, "/open", token))
}

func TestProtectedAcceptsValidToken(t *testing.T) {
	svc := auth.NewService(auth.NewMockProvider(), "test-secret", time.Hour)
	app := protectedApp(svc)

	token := issueToken(t, svc, models.PerfilTrabalhador, time.Minute)
	assert.Equal(t, fiber.StatusOK, get(t, app, "/open", token))
}

func TestRoleGates(t *testing.T) {
	svc := auth.NewService(auth.NewMockProvider(), "test-secret", time.Hour)
	app := protectedApp(svc)

	trabalhador := issueToken(t, svc, models.PerfilTrabalhador, time.Minute)
	chefia := issueToken(t, svc, models.PerfilChefia, time.Minute)
	udp := issueToken(t, svc, models.PerfilUDP, time.Minute)

	assert.Equal(t, fiber.StatusForbidden, get(t, app, "/chefia", trabalhador))
	assert.Equal(t, fiber.StatusOK, get(t, app, "/chefia", chefia))
	assert.Equal(t, fiber.StatusOK, get(t, app, "/chefia", udp))

	assert.Equal(t, fiber.StatusForbidden, get(t, app, "/udp", trabalhador))
	assert.Equal(t, fiber.StatusForbidden, get(t, app, "/udp", chefia))
	assert.Equal(t, fiber.StatusOK, get(t, app, "/udp", udp))
}
