package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	JWT        JWTConfig
	Cloudinary CloudinaryConfig
	Firebase   FirebaseConfig
	SMTP       SMTPConfig
	AI         AIConfig
	App        AppConfig
}

type ServerConfig struct {
	Port         string
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

type JWTConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
	Issuer        string
}

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
}

type FirebaseConfig struct {
	ServiceAccountPath string
}

type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// AIConfig points at the external report-classification service.
type AIConfig struct {
	ServiceURL string
	Timeout    time.Duration
}

type AppConfig struct {
	FrontendURL       string
	PoliceStationName string
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         env("PORT", "8080"),
			Env:          env("APP_ENV", "development"),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Database: DatabaseConfig{
			DSN:             env("DATABASE_DSN", "root:@tcp(localhost:3306)/crimegpt?charset=utf8mb4&parseTime=True&loc=Local"),
			MaxIdleConns:    envInt("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    envInt("DB_MAX_OPEN_CONNS", 100),
			ConnMaxLifetime: time.Hour,
		},
		JWT: JWTConfig{
			AccessSecret:  env("JWT_SECRET", "change-me-in-production"),
			RefreshSecret: env("REFRESH_TOKEN_SECRET", "change-me-refresh"),
			AccessExpiry:  24 * time.Hour,
			RefreshExpiry: 30 * 24 * time.Hour,
			Issuer:        "crimegpt",
		},
		Cloudinary: CloudinaryConfig{
			CloudName: env("CLOUDINARY_CLOUD_NAME", ""),
			APIKey:    env("CLOUDINARY_API_KEY", ""),
			APISecret: env("CLOUDINARY_API_SECRET", ""),
		},
		Firebase: FirebaseConfig{
			ServiceAccountPath: env("FIREBASE_SERVICE_ACCOUNT_PATH", ""),
		},
		SMTP: SMTPConfig{
			Host:     env("SMTP_HOST", ""),
			Port:     env("SMTP_PORT", "587"),
			Username: env("EMAIL_USER", ""),
			Password: env("EMAIL_PASS", ""),
			From:     env("EMAIL_USER", ""),
		},
		AI: AIConfig{
			ServiceURL: env("AI_SERVICE_URL", ""),
			Timeout:    60 * time.Second,
		},
		App: AppConfig{
			FrontendURL:       env("FRONTEND_URL", "http://localhost:5173"),
			PoliceStationName: env("POLICE_STATION_NAME", "A Section"),
		},
	}
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
