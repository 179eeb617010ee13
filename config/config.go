package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// LoadENV loads variables from .env unless GO_ENV points at a deployed
// environment that injects them directly.
func LoadENV() error {
	goEnv := os.Getenv("GO_ENV")

	if goEnv == "" || goEnv == "development" {
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			return err
		}
	}

	return nil
}

// Storage backends.
const (
	StorageBackendFile  = "file"
	StorageBackendRedis = "redis"
	StorageBackendNone  = "none"
)

// EnvironmentVariable holds the flat environment configuration.
type EnvironmentVariable struct {
	GO_ENV string
	PORT   int

	// Record store
	STORAGE_BACKEND string
	DATA_DIR        string
	REDIS_URL       string

	// JWT
	JWT_SECRET string
	JWT_ISSUER string

	// HTTP
	ALLOWED_ORIGINS string

	// Media storage (S3-compatible Spaces)
	SPACES_ACCESS_KEY string
	SPACES_SECRET_KEY string
	SPACES_BUCKET     string
	SPACES_REGION     string
	SPACES_ENDPOINT   string
	SPACES_CDN_URL    string

	// Cron
	CRON_ENABLED bool
}

// Get reads the environment into a config struct, applying defaults.
func Get() (*EnvironmentVariable, error) {
	port, err := strconv.Atoi(os.Getenv("PORT"))
	if err != nil {
		port = 8080
	}

	backend := os.Getenv("STORAGE_BACKEND")
	if backend == "" {
		backend = StorageBackendFile
	}

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}

	issuer := os.Getenv("JWT_ISSUER")
	if issuer == "" {
		issuer = "lernovate-admin-api"
	}

	origins := os.Getenv("ALLOWED_ORIGINS")
	if origins == "" {
		origins = "http://localhost:3000"
	}

	return &EnvironmentVariable{
		GO_ENV:          os.Getenv("GO_ENV"),
		PORT:            port,
		STORAGE_BACKEND: backend,
		DATA_DIR:        dataDir,
		REDIS_URL:       os.Getenv("REDIS_URL"),
		JWT_SECRET:      os.Getenv("JWT_SECRET"),
		JWT_ISSUER:      issuer,
		ALLOWED_ORIGINS: origins,

		SPACES_ACCESS_KEY: os.Getenv("SPACES_ACCESS_KEY"),
		SPACES_SECRET_KEY: os.Getenv("SPACES_SECRET_KEY"),
		SPACES_BUCKET:     os.Getenv("SPACES_BUCKET"),
		SPACES_REGION:     os.Getenv("SPACES_REGION"),
		SPACES_ENDPOINT:   os.Getenv("SPACES_ENDPOINT"),
		SPACES_CDN_URL:    os.Getenv("SPACES_CDN_URL"),

		CRON_ENABLED: os.Getenv("CRON_ENABLED") != "false",
	}, nil
}
