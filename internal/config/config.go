package config

import (
	"os"
	"strings"
)

// Config collects every environment-driven setting in one place so handlers
// and services never reach for ambient globals.
type Config struct {
	Port           string
	DatabaseDSN    string
	JWTSecret      []byte
	StorageDir     string
	CloudinaryURL  string
	LogDir         string
	Debug          bool
	AllowedOrigins []string
}

// FromEnv builds the configuration from environment variables with
// development defaults. Call godotenv.Load beforehand to pick up configs/.env.
func FromEnv() Config {
	dbHost := getenv("DB_HOST", "localhost")
	dbPort := getenv("DB_PORT", "5432")
	dbUser := getenv("DB_USER", "postgres")
	dbPassword := getenv("DB_PASSWORD", "postgres")
	dbName := getenv("DB_NAME", "postgres")
	dbSslMode := getenv("DB_SSLMODE", "disable")

	dsn := "postgres://" + dbUser + ":" + dbPassword + "@" + dbHost + ":" + dbPort + "/" + dbName + "?sslmode=" + dbSslMode

	return Config{
		Port:           getenv("PORT", "8080"),
		DatabaseDSN:    dsn,
		JWTSecret:      jwtSecret(),
		StorageDir:     getenv("STORAGE_DIR", "storage"),
		CloudinaryURL:  os.Getenv("CLOUDINARY_URL"),
		LogDir:         getenv("LOG_DIR", "logs/"),
		Debug:          os.Getenv("GIN_MODE") != "release",
		AllowedOrigins: strings.Split(getenv("CORS_ALLOW_ORIGINS", "http://localhost:5173,http://127.0.0.1:5173"), ","),
	}
}

func jwtSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		if os.Getenv("GIN_MODE") == "release" {
			panic("FATAL: JWT_SECRET environment variable is required in production mode")
		}
		secret = "default_super_secret_key" // Development fallback only — DO NOT use in production
	}
	return []byte(secret)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
