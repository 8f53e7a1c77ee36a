package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/user/moviesite/pkg/logger"
)

const defaultSecret = "your-secret-key-change-in-production"

// Config 应用配置
type Config struct {
	Env         string
	AppSecret   string
	DatabaseURL string
	JWTExpiry   time.Duration
	Port        string
	SiteName    string
	PerPage     int

	// 媒体文件
	UploadDir     string
	MaxUploadMB   int
	StorageDriver string
	MinIO         MinIOConfig

	LogLevel  string
	LogFormat string
}

// MinIOConfig MinIO 对象存储配置（STORAGE_DRIVER=minio 时生效）
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// Load 加载配置
func Load() *Config {
	expiryHours := getEnvInt("JWT_EXPIRY_HOURS", 72)

	dbUser := getEnv("DB_USER", "postgres")
	dbPass := getEnv("DB_PASSWORD", "postgres")
	dbHost := getEnv("DB_HOST", "localhost")
	dbPort := getEnv("DB_PORT", "5432")
	dbName := getEnv("DB_NAME", "moviesite")
	dbSSL := getEnv("DB_SSLMODE", "disable")

	dbURL := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		dbUser, dbPass, dbHost, dbPort, dbName, dbSSL)

	env := getEnv("APP_ENV", "development")
	appSecret := getEnv("APP_SECRET", defaultSecret)
	if env == "production" && appSecret == defaultSecret {
		logger.Warn("【严重警告】生产环境正在使用默认密钥！请立即设置 APP_SECRET 环境变量。")
	}

	logFormat := getEnv("LOG_FORMAT", "console")
	if env == "production" {
		logFormat = getEnv("LOG_FORMAT", "json")
	}

	return &Config{
		Env:           env,
		AppSecret:     appSecret,
		DatabaseURL:   dbURL,
		JWTExpiry:     time.Duration(expiryHours) * time.Hour,
		Port:          getEnv("PORT", "5000"),
		SiteName:      getEnv("SITE_NAME", "微电影"),
		PerPage:       getEnvInt("PER_PAGE", 10),
		UploadDir:     getEnv("UPLOAD_DIR", "./uploads"),
		MaxUploadMB:   getEnvInt("MAX_UPLOAD_MB", 512),
		StorageDriver: getEnv("STORAGE_DRIVER", "local"),
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", "moviesite"),
			UseSSL:    getEnv("MINIO_USE_SSL", "false") == "true",
		},
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: logFormat,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil || v <= 0 {
		return defaultValue
	}
	return v
}
