package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"capacita/auth"
	"capacita/models"
)

// Protected returns a middleware that decodes the bearer access token
// and exposes its claims to handlers. The role is read from the token as
// set at login time; a role change only takes effect on the next
// login or refresh.
func Protected(svc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Missing or invalid Authorization header", nil)
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid Authorization header format", nil)
		}

		tokenString := authHeader[len("Bearer "):]

		claims, err := svc.DecodeAccessToken(tokenString)
		if err != nil {
			if errors.Is(err, auth.ErrTokenExpired) {
				return JsonResponse(c, fiber.StatusUnauthorized, false, "Token has expired", nil)
			}
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid token", nil)
		}

		username, _ := claims["sub"].(string)
		if username == "" {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid token payload", nil)
		}

		c.Locals("claims", claims)
		c.Locals("username", username)
		return c.Next()
	}
}

// RequireChefia allows Chefia and UDP through
func RequireChefia(c *fiber.Ctx) error {
	perfil := ClaimPerfil(c)
	if perfil != models.PerfilChefia && perfil != models.PerfilUDP {
		return JsonResponse(c, fiber.StatusForbidden, false, "Acesso negado. Requer perfil de Chefia ou superior.", nil)
	}
	return c.Next()
}

// RequireUDP allows only UDP through
func RequireUDP(c *fiber.Ctx) error {
	if ClaimPerfil(c) != models.PerfilUDP {
		return JsonResponse(c, fiber.StatusForbidden, false, "Acesso negado. Requer perfil de UDP (Administrador).", nil)
	}
	return c.Next()
}

// ClaimPerfil reads the role claim set by Protected
func ClaimPerfil(c *fiber.Ctx) models.Perfil {
	claims, ok := c.Locals("claims").(jwt.MapClaims)
	if !ok {
		return ""
	}
	perfil, _ := claims["perfil"].(string)
	return models.Perfil(perfil)
}

// ClaimGroups reads the group list from the token claims
func ClaimGroups(c *fiber.Ctx) []string {
	claims, ok := c.Locals("claims").(jwt.MapClaims)
	if !ok {
		return nil
	}
	raw, ok := claims["groups"].([]interface{})
	if !ok {
		return nil
	}
	groups := make([]string, 0, len(raw))
	for _, g := range raw {
		if s, ok := g.(string); ok {
			groups = append(groups, s)
		}
	}
	return groups
}
