package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port string

	// Token settings. Note: the product grants the short access-token
	// lifetime when remember_me is set and the long one otherwise. Kept
	// configurable pending product clarification.
	JWTSecret           string
	JWTExpHours         int
	JWTRememberExpMin   int
	RefreshTokenExpDays int

	// Active Directory. When ADURL is empty the mock provider is used.
	ADURL          string
	ADBaseDN       string
	ADBindDomain   string
	ADBindUser     string
	ADBindPassword string

	SQLiteDSN   string // application store
	PostgresDSN string // external employee source store (optional)

	UploadsDir string
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port: getEnv("PORT", "8000"),

		JWTSecret:           getEnv("JWT_SECRET", ""),
		JWTExpHours:         getEnvInt("JWT_EXP_HOURS", 24),
		JWTRememberExpMin:   getEnvInt("JWT_REMEMBER_EXP_MINUTES", 15),
		RefreshTokenExpDays: getEnvInt("REFRESH_TOKEN_EXP_DAYS", 30),

		ADURL:          getEnv("AD_URL", ""),
		ADBaseDN:       getEnv("AD_BASEDN", ""),
		ADBindDomain:   getEnv("AD_BIND_DOMAIN", "EBSERHNET"),
		ADBindUser:     getEnv("AD_BIND_USER", ""),
		ADBindPassword: getEnv("AD_BIND_PASSWORD", ""),

		SQLiteDSN:   getEnv("SQLITE_DSN", "app.db"),
		PostgresDSN: getEnv("POSTGRES_DSN", ""),

		UploadsDir: getEnv("UPLOADS_DIR", "static/uploads"),
	}

	if AppConfig.JWTSecret == "" {
		log.Println("Warning: JWT_SECRET is not set. Token issuance will fail until it is configured.")
	}
	if AppConfig.ADURL == "" {
		log.Println("Warning: AD_URL not set. Using mock authentication.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
