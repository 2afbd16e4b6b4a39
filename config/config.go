package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// InitDB opens the database from environment configuration. MySQL is the
// production driver; DB_DRIVER=sqlite gives a file or in-memory database
// for local runs.
func InitDB() (*gorm.DB, error) {
	if os.Getenv("DB_DRIVER") == "sqlite" {
		dsn := os.Getenv("DB_DSN")
		if dsn == "" {
			dsn = "dinehub.db"
		}
		return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		envOr("DB_USER", "root"),
		os.Getenv("DB_PASSWORD"),
		envOr("DB_HOST", "127.0.0.1"),
		envOr("DB_PORT", "3306"),
		envOr("DB_NAME", "dinehub"),
	)
	return gorm.Open(mysql.Open(dsn), &gorm.Config{})
}

// SessionWindow is the lifetime granted on session start and on each extend.
func SessionWindow() time.Duration {
	return time.Duration(envInt("SESSION_WINDOW_MIN", 30)) * time.Minute
}

// SessionMaxLifetime caps the total lifetime a session can reach through
// extends, preventing indefinite table squatting.
func SessionMaxLifetime() time.Duration {
	return time.Duration(envInt("SESSION_MAX_LIFETIME_MIN", 180)) * time.Minute
}

// SweepInterval controls the optional background expiry sweep.
func SweepInterval() time.Duration {
	return time.Duration(envInt("SESSION_SWEEP_SECONDS", 60)) * time.Second
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}
