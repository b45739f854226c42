package auth

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"

	"capacita/models"
)

// Service issues and verifies session tokens. Constructed once in main
// and passed to the routes that need it.
type Service struct {
	Provider   Provider
	secret     string
	refreshTTL time.Duration
}

// NewService wires a directory provider with the signing secret and the
// refresh-token lifetime.
func NewService(provider Provider, secret string, refreshTTL time.Duration) *Service {
	return &Service{
		Provider:   provider,
		secret:     secret,
		refreshTTL: refreshTTL,
	}
}

// Authenticate delegates to the configured directory provider
func (s *Service) Authenticate(username, password string) (*Identity, error) {
	return s.Provider.Authenticate(username, password)
}

// CreateAccessToken signs an HS256 token carrying the given claims. The
// sub claim is filled from the username claim when present.
func (s *Service) CreateAccessToken(claims jwt.MapClaims, ttl time.Duration) (string, error) {
	if s.secret == "" {
		return "", ErrNotConfigured
	}

	payload := jwt.MapClaims{}
	for k, v := range claims {
		payload[k] = v
	}
	if username, ok := payload["username"]; ok {
		payload["sub"] = username
	}
	now := time.Now()
	payload["iat"] = now.Unix()
	payload["exp"] = now.Add(ttl).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, payload)
	return token.SignedString([]byte(s.secret))
}

// DecodeAccessToken verifies signature and expiry and returns the claims
func (s *Service) DecodeAccessToken(tokenString string) (jwt.MapClaims, error) {
	if s.secret == "" {
		return nil, ErrNotConfigured
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(s.secret), nil
	})
	if err != nil {
		var vErr *jwt.ValidationError
		if errors.As(err, &vErr) && vErr.Errors&jwt.ValidationErrorExpired != 0 {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// CreateRefreshToken persists a crypto-random opaque token with a fixed
// expiry and the user's group list, and returns its value.
func (s *Service) CreateRefreshToken(db *gorm.DB, userID string, groups []string) (string, error) {
	raw := make([]byte, 64)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	tokenString := base64.RawURLEncoding.EncodeToString(raw)

	groupsJSON, err := json.Marshal(groups)
	if err != nil {
		return "", err
	}

	record := models.RefreshToken{
		UserID:    userID,
		Token:     tokenString,
		Groups:    groupsJSON,
		ExpiresAt: time.Now().Add(s.refreshTTL),
	}
	if err := db.Create(&record).Error; err != nil {
		return "", err
	}

	return tokenString, nil
}

// VerifyRefreshToken looks up a presented token. Absent or expired
// tokens both map to ErrInvalidRefreshToken.
func (s *Service) VerifyRefreshToken(db *gorm.DB, tokenString string) (*models.RefreshToken, error) {
	var record models.RefreshToken
	if err := db.Where("token = ?", tokenString).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}
	if record.ExpiresAt.Before(time.Now()) {
		return nil, ErrInvalidRefreshToken
	}
	return &record, nil
}

// InvalidateRefreshToken deletes the token unconditionally. Deleting an
// absent token is not an error.
func (s *Service) InvalidateRefreshToken(db *gorm.DB, tokenString string) error {
	return db.Where("token = ?", tokenString).Delete(&models.RefreshToken{}).Error
}

// PurgeExpired removes refresh tokens past their expiry and returns how
// many rows went away.
func (s *Service) PurgeExpired(db *gorm.DB) (int64, error) {
	result := db.Where("expires_at < ?", time.Now()).Delete(&models.RefreshToken{})
	return result.RowsAffected, result.Error
}

// TokenGroups decodes the group list stored with a refresh token
func TokenGroups(record *models.RefreshToken) []string {
	var groups []string
	if err := json.Unmarshal(record.Groups, &groups); err != nil {
		return nil
	}
	return groups
}
