package authController

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"

	"capacita/auth"
	"capacita/config"
	userController "capacita/controllers/user"
	"capacita/database"
	"capacita/middleware"
)

const refreshCookieName = "refresh_token"

// Controller carries the auth service. Routes receive an instance
// constructed in main; there is no package-level singleton.
type Controller struct {
	Service *auth.Service
}

func NewController(svc *auth.Service) *Controller {
	return &Controller{Service: svc}
}

// Login authenticates against the directory, syncs the local user
// record and returns an access token. With remember_me set it also
// plants an HttpOnly refresh cookie.
func (ctrl *Controller) Login(c *fiber.Ctx) error {
	username := c.FormValue("username")
	password := c.FormValue("password")
	rememberMe := c.FormValue("remember_me") == "true" || c.FormValue("remember_me") == "on"

	if username == "" || password == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Username and password are required!", nil)
	}

	identity, err := ctrl.Service.Authenticate(username, password)
	if err != nil {
		return authErrorResponse(c, err)
	}

	db := database.Database.Db

	existing, lookupErr := userController.GetUserByID(db, identity.Username)
	isNewUser := errors.Is(lookupErr, gorm.ErrRecordNotFound)

	dbUser, err := userController.SyncUser(db, identity)
	if err != nil {
		log.Printf("Error syncing user %s: %v", identity.Username, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to sync user record!", nil)
	}

	// The persisted record defaults new users to Trabalhador; their first
	// token still carries the group-derived role. Existing users get the
	// stored role, so administrative changes apply on the next login.
	perfil := dbUser.Perfil
	if isNewUser {
		perfil = auth.RoleForGroups(identity.Groups)
	} else if existing != nil {
		perfil = existing.Perfil
	}

	claims := jwt.MapClaims{
		"username":    identity.Username,
		"displayName": identity.DisplayName,
		"email":       identity.Email,
		"groups":      identity.Groups,
		"perfil":      string(perfil),
	}

	accessToken, err := ctrl.Service.CreateAccessToken(claims, accessTTL(rememberMe))
	if err != nil {
		log.Printf("Error creating access token: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create access token!", nil)
	}

	if rememberMe {
		refreshToken, err := ctrl.Service.CreateRefreshToken(db, identity.Username, identity.Groups)
		if err != nil {
			log.Printf("Error creating refresh token: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create refresh token!", nil)
		}
		setRefreshCookie(c, refreshToken)
	}

	return c.JSON(fiber.Map{"access_token": accessToken, "token_type": "bearer"})
}

// Refresh rotates the refresh token and issues a fresh access token
func (ctrl *Controller) Refresh(c *fiber.Ctx) error {
	presented := c.Cookies(refreshCookieName)
	if presented == "" {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Refresh token not found", nil)
	}

	db := database.Database.Db

	record, err := ctrl.Service.VerifyRefreshToken(db, presented)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidRefreshToken) {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid or expired refresh token", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to verify refresh token!", nil)
	}

	dbUser, err := userController.GetUserByID(db, record.UserID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found in local database", nil)
	}

	groups := auth.TokenGroups(record)
	claims := jwt.MapClaims{
		"username":    record.UserID,
		"groups":      groups,
		"perfil":      string(dbUser.Perfil),
		"displayName": dbUser.Nome,
		"email":       dbUser.Email,
	}

	// Rotation: the presented token dies before its replacement is born.
	if err := ctrl.Service.InvalidateRefreshToken(db, presented); err != nil {
		log.Printf("Error invalidating refresh token: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to rotate refresh token!", nil)
	}

	accessToken, err := ctrl.Service.CreateAccessToken(claims, time.Duration(config.AppConfig.JWTRememberExpMin)*time.Minute)
	if err != nil {
		log.Printf("Error creating access token: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create access token!", nil)
	}

	newRefresh, err := ctrl.Service.CreateRefreshToken(db, record.UserID, groups)
	if err != nil {
		log.Printf("Error creating refresh token: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create refresh token!", nil)
	}
	setRefreshCookie(c, newRefresh)

	return c.JSON(fiber.Map{"access_token": accessToken, "token_type": "bearer"})
}

// Logout invalidates the refresh token and clears the cookie
func (ctrl *Controller) Logout(c *fiber.Ctx) error {
	if presented := c.Cookies(refreshCookieName); presented != "" {
		if err := ctrl.Service.InvalidateRefreshToken(database.Database.Db, presented); err != nil {
			log.Printf("Error invalidating refresh token on logout: %v", err)
		}
	}

	c.Cookie(&fiber.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.JSON(fiber.Map{"message": "Logged out successfully"})
}

// Me returns the caller's profile from the local store, with the group
// list merged in from the token claims.
func (ctrl *Controller) Me(c *fiber.Ctx) error {
	username, _ := c.Locals("username").(string)

	dbUser, err := userController.GetUserByID(database.Database.Db, username)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found in local database", nil)
	}

	info := fiber.Map{
		"username":    dbUser.ID,
		"displayName": dbUser.Nome,
		"email":       dbUser.Email,
		"perfil":      dbUser.Perfil,
	}
	if dbUser.Lotacao != "" {
		info["department"] = []string{dbUser.Lotacao}
	} else {
		info["department"] = []string{}
	}
	if dbUser.Cargo != "" {
		info["title"] = []string{dbUser.Cargo}
	} else {
		info["title"] = []string{}
	}
	if dbUser.Matricula != "" {
		info["employeeNumber"] = []string{dbUser.Matricula}
	} else {
		info["employeeNumber"] = []string{}
	}

	info["groups"] = middleware.ClaimGroups(c)

	return c.JSON(info)
}

func accessTTL(rememberMe bool) time.Duration {
	// Inverted on purpose to match the current product behavior: the
	// remembered session leans on the refresh cookie and keeps access
	// tokens short.
	if rememberMe {
		return time.Duration(config.AppConfig.JWTRememberExpMin) * time.Minute
	}
	return time.Duration(config.AppConfig.JWTExpHours) * time.Hour
}

func setRefreshCookie(c *fiber.Ctx, value string) {
	c.Cookie(&fiber.Cookie{
		Name:     refreshCookieName,
		Value:    value,
		MaxAge:   config.AppConfig.RefreshTokenExpDays * 24 * 60 * 60,
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func authErrorResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials", nil)
	case errors.Is(err, auth.ErrDirectoryUnavailable):
		return middleware.JsonResponse(c, fiber.StatusServiceUnavailable, false, "AD server is down or unreachable", nil)
	case errors.Is(err, auth.ErrNotConfigured):
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Authentication is not configured", nil)
	default:
		log.Printf("Unexpected authentication error: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "An unexpected error occurred during authentication", nil)
	}
}
