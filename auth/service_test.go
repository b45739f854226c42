package auth

import (
	"fmt"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"capacita/models"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.RefreshToken{}))
	return db
}

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := NewService(NewMockProvider(), "test-secret", time.Hour)

	token, err := svc.CreateAccessToken(jwt.MapClaims{
		"username": "maria.silva",
		"perfil":   "Chefia",
		"groups":   []string{"Users"},
	}, time.Minute)
	require.NoError(t, err)

	claims, err := svc.DecodeAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "maria.silva", claims["sub"])
	assert.Equal(t, "Chefia", claims["perfil"])
}

func TestAccessTokenExpired(t *testing.T) {
	svc := NewService(NewMockProvider(), "test-secret", time.Hour)

	token, err := svc.CreateAccessToken(jwt.MapClaims{"username": "maria.silva"}, -time.Minute)
	require.NoError(t, err)

	_, err = svc.DecodeAccessToken(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestAccessTokenGarbage(t *testing.T) {
	svc := NewService(NewMockProvider(), "test-secret", time.Hour)

	_, err := svc.DecodeAccessToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestAccessTokenWrongSecret(t *testing.T) {
	issuer := NewService(NewMockProvider(), "secret-a", time.Hour)
	verifier := NewService(NewMockProvider(), "secret-b", time.Hour)

	token, err := issuer.CreateAccessToken(jwt.MapClaims{"username": "maria.silva"}, time.Minute)
	require.NoError(t, err)

	_, err = verifier.DecodeAccessToken(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestAccessTokenNoSecret(t *testing.T) {
	svc := NewService(NewMockProvider(), "", time.Hour)

	_, err := svc.CreateAccessToken(jwt.MapClaims{"username": "maria.silva"}, time.Minute)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestRefreshTokenRotation(t *testing.T) {
	db := testDB(t)
	svc := NewService(NewMockProvider(), "test-secret", time.Hour)

	groups := []string{"GLO-SEC-HCPE-SETISD", "Users"}
	token, err := svc.CreateRefreshToken(db, "maria.silva", groups)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	record, err := svc.VerifyRefreshToken(db, token)
	require.NoError(t, err)
	assert.Equal(t, "maria.silva", record.UserID)
	assert.Equal(t, groups, TokenGroups(record))

	require.NoError(t, svc.InvalidateRefreshToken(db, token))

	// A redeemed token must never verify again.
	_, err = svc.VerifyRefreshToken(db, token)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)

	// Invalidating twice is a no-op, not an error.
	assert.NoError(t, svc.InvalidateRefreshToken(db, token))
}

func TestRefreshTokenExpired(t *testing.T) {
	db := testDB(t)
	svc := NewService(NewMockProvider(), "test-secret", -time.Hour)

	token, err := svc.CreateRefreshToken(db, "maria.silva", nil)
	require.NoError(t, err)

	_, err = svc.VerifyRefreshToken(db, token)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestRefreshTokenUnknown(t *testing.T) {
	db := testDB(t)
	svc := NewService(NewMockProvider(), "test-secret", time.Hour)

	_, err := svc.VerifyRefreshToken(db, "never-issued")
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestPurgeExpired(t *testing.T) {
	db := testDB(t)

	expired := NewService(NewMockProvider(), "test-secret", -time.Hour)
	live := NewService(NewMockProvider(), "test-secret", time.Hour)

	_, err := expired.CreateRefreshToken(db, "maria.silva", nil)
	require.NoError(t, err)
	keep, err := live.CreateRefreshToken(db, "joao.souza", nil)
	require.NoError(t, err)

	purged, err := live.PurgeExpired(db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	_, err = live.VerifyRefreshToken(db, keep)
	assert.NoError(t, err)
}
