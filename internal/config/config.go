package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Auth
		Maintenance
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path string
	}
	Auth struct {
		SessionLifetime time.Duration
		BcryptCost      int
		SecureCookies   bool // Set to false for local dev without HTTPS

		// Optional bootstrap account, created when the users table is empty
		FirstAdminEmail    string
		FirstAdminPassword string
		FirstAdminFullName string
	}
	Maintenance struct {
		Enabled  bool
		Schedule string // Cron format: "0 4 * * *" = daily at 04:00
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8080)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)

	// Auth defaults
	v.SetDefault("auth_session_lifetime", "192h") // 8 days
	v.SetDefault("auth_bcrypt_cost", 12)          // bcrypt cost factor
	v.SetDefault("auth_secure_cookies", true)     // HTTPS-only cookies
	v.SetDefault("first_admin_email", "")
	v.SetDefault("first_admin_password", "")
	v.SetDefault("first_admin_full_name", "Administrator")

	// Maintenance defaults
	v.SetDefault("maintenance_enabled", false)
	v.SetDefault("maintenance_schedule", "0 4 * * *") // Daily at 04:00

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Auth: Auth{
			SessionLifetime:    v.GetDuration("AUTH_SESSION_LIFETIME"),
			BcryptCost:         v.GetInt("AUTH_BCRYPT_COST"),
			SecureCookies:      v.GetBool("AUTH_SECURE_COOKIES"),
			FirstAdminEmail:    v.GetString("FIRST_ADMIN_EMAIL"),
			FirstAdminPassword: v.GetString("FIRST_ADMIN_PASSWORD"),
			FirstAdminFullName: v.GetString("FIRST_ADMIN_FULL_NAME"),
		},
		Maintenance: Maintenance{
			Enabled:  v.GetBool("MAINTENANCE_ENABLED"),
			Schedule: v.GetString("MAINTENANCE_SCHEDULE"),
		},
	}
}
