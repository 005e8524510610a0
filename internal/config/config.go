package config

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// ErrMissingJWTSecret is returned when no signing secret is configured.
var ErrMissingJWTSecret = errors.New("JWT_SECRET is not set")

// Config holds application level configuration loaded from environment variables.
type Config struct {
	Env         string
	ServerPort  string
	DBDriver    string
	DBDSN       string
	RedisAddr   string
	RedisDB     int
	RedisPass   string
	JWTSecret   string
	LogLevel    string
	SwaggerHost string

	Storage StorageConfig
}

// StorageConfig selects and configures the media upload backends.
type StorageConfig struct {
	Provider       string
	MaxUploadBytes int64

	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	CloudinaryFolder    string

	GDriveCredentialsFile string
	GDriveFolderID        string

	S3Bucket        string
	S3Region        string
	S3Endpoint      string
	S3PublicBaseURL string
}

// Load builds Config from environment with sensible defaults.
// A .env file in the working directory is read first when present.
// There is no default signing secret: Load fails if JWT_SECRET is unset.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Env:         strings.ToLower(getEnv("APP_ENV", "production")),
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		DBDriver:    strings.ToLower(getEnv("DB_DRIVER", "mysql")),
		DBDSN:       getEnv("DB_DSN", "user:password@tcp(localhost:3306)/desa?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisAddr:   getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:     getEnvInt("REDIS_DB", 0),
		RedisPass:   os.Getenv("REDIS_PASSWORD"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		SwaggerHost: os.Getenv("SWAGGER_HOST"),
		Storage: StorageConfig{
			Provider:              strings.ToLower(getEnv("STORAGE_PROVIDER", "cloudinary")),
			MaxUploadBytes:        int64(getEnvInt("UPLOAD_MAX_BYTES", 5<<20)),
			CloudinaryCloudName:   os.Getenv("CLOUDINARY_CLOUD_NAME"),
			CloudinaryAPIKey:      os.Getenv("CLOUDINARY_API_KEY"),
			CloudinaryAPISecret:   os.Getenv("CLOUDINARY_API_SECRET"),
			CloudinaryFolder:      getEnv("CLOUDINARY_FOLDER", "desa"),
			GDriveCredentialsFile: os.Getenv("GDRIVE_CREDENTIALS_FILE"),
			GDriveFolderID:        os.Getenv("GDRIVE_FOLDER_ID"),
			S3Bucket:              os.Getenv("S3_BUCKET"),
			S3Region:              getEnv("S3_REGION", "us-east-1"),
			S3Endpoint:            os.Getenv("S3_ENDPOINT"),
			S3PublicBaseURL:       os.Getenv("S3_PUBLIC_BASE_URL"),
		},
	}

	if cfg.JWTSecret == "" {
		return nil, ErrMissingJWTSecret
	}
	return cfg, nil
}

// IsDevelopment reports whether the app runs in local development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development" || c.Env == "dev" || c.Env == "local"
}

// SecureCookies reports whether cookies must carry the Secure flag.
func (c *Config) SecureCookies() bool {
	return !c.IsDevelopment()
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}
