package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServiceEnv string
	GinMode    string
	HTTPAddr   string

	DBDriver     string
	DBHost       string
	DBPort       string
	DBUser       string
	DBPassword   string
	DBName       string
	SQLitePath   string
	CORSOrigins  []string
	AuthRequired bool

	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	AWSSessionToken    string
	CognitoUserPoolID  string
	CognitoClientID    string
	CognitoDomain      string
	IdPTimeout         time.Duration
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present; variables already set win.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServiceEnv: getEnv("SERVICE_ENV", "local"),
		GinMode:    getEnv("GIN_MODE", "debug"),
		HTTPAddr:   getEnv("HTTP_ADDR", ":8080"),

		DBDriver:     getEnv("DB_DRIVER", "postgres"),
		DBHost:       getEnv("DB_HOST", "localhost"),
		DBPort:       getEnv("DB_PORT", "5432"),
		DBUser:       getEnv("DB_USER", "app"),
		DBPassword:   getEnv("DB_PASSWORD", "app"),
		DBName:       getEnv("DB_NAME", "app"),
		SQLitePath:   getEnv("DB_SQLITE_PATH", "app.db"),
		CORSOrigins:  splitCSV(getEnv("CORS_ORIGINS", "")),
		AuthRequired: getEnvBool("AUTH_REQUIRED", false),

		AWSRegion:          getEnv("AWS_REGION", "ap-northeast-1"),
		AWSAccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		AWSSessionToken:    getEnv("AWS_SESSION_TOKEN", ""),
		CognitoUserPoolID:  getEnv("COGNITO_USER_POOL_ID", ""),
		CognitoClientID:    getEnv("COGNITO_CLIENT_ID", ""),
		CognitoDomain:      getEnv("COGNITO_DOMAIN", ""),
		IdPTimeout:         getEnvDuration("IDP_TIMEOUT", 10*time.Second),
	}
}

// IsLocal reports whether the service runs against the in-memory identity provider.
func (c *Config) IsLocal() bool {
	return c.ServiceEnv == "local"
}

// CognitoIssuer is the token issuer of the configured user pool.
func (c *Config) CognitoIssuer() string {
	return "https://cognito-idp." + c.AWSRegion + ".amazonaws.com/" + c.CognitoUserPoolID
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}

func splitCSV(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
