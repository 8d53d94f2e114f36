// Package config exposes environment-level configuration for the portal.
// Values are read from the process environment; Load() pulls in a .env file
// first so local development matches production layout.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

//go:embed version
var version string

//go:embed name
var name string

type LogLevel string

const (
	Debug LogLevel = "debug"
	Info  LogLevel = "info"
	Warn  LogLevel = "warn"
	Error LogLevel = "error"
)

// TokenTTL is the lifetime of issued bearer tokens.
const TokenTTL = 24 * time.Hour

// SessionMaxAge caps the server-side session used for the OAuth round trip.
const SessionMaxAge = 24 * time.Hour

// Load reads the .env file if present. Missing files are not an error; env
// vars already set in the process take precedence either way.
func Load() {
	envFile := os.Getenv("PORTAL_ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	_ = godotenv.Load(envFile)
}

func GetVersion() string {
	return strings.TrimSpace(version)
}

func GetName() string {
	return strings.TrimSpace(name)
}

func GetLogLevel() LogLevel {
	if IsDebug() {
		return Debug
	}
	logLevel := os.Getenv("PORTAL_LOG_LEVEL")
	if logLevel == "" {
		return Info
	}
	return LogLevel(logLevel)
}

func IsDebug() bool {
	return os.Getenv("PORTAL_DEBUG") == "true"
}

func GetListen() string {
	return os.Getenv("PORTAL_LISTEN")
}

func GetPort() int {
	port := os.Getenv("PORT")
	if port == "" {
		return 3001
	}
	var p int
	if _, err := fmt.Sscanf(port, "%d", &p); err != nil || p <= 0 {
		return 3001
	}
	return p
}

func GetDBFolderPath() string {
	dbFolderPath := os.Getenv("PORTAL_DB_FOLDER")
	if dbFolderPath == "" {
		dbFolderPath = "data"
	}
	return dbFolderPath
}

func GetDBPath() string {
	return fmt.Sprintf("%s/%s.db", GetDBFolderPath(), GetName())
}

func GetLogFolder() string {
	logFolderPath := os.Getenv("PORTAL_LOG_FOLDER")
	if logFolderPath == "" {
		logFolderPath = "logs"
	}
	return logFolderPath
}

func GetUploadsFolder() string {
	uploadsPath := os.Getenv("PORTAL_UPLOADS_FOLDER")
	if uploadsPath == "" {
		uploadsPath = "uploads"
	}
	return uploadsPath
}

// GetJWTSecret returns the signing secret for bearer tokens.
func GetJWTSecret() string {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "hyakki_isekai_secret_key"
	}
	return secret
}

// GetSessionSecret returns the cookie-signing secret for server-side sessions.
func GetSessionSecret() string {
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		secret = "hyakki_isekai_session_secret"
	}
	return secret
}

func GetRedisAddr() string {
	return os.Getenv("REDIS_ADDR")
}

func GetDiscordClientID() string {
	return os.Getenv("DISCORD_CLIENT_ID")
}

func GetDiscordClientSecret() string {
	return os.Getenv("DISCORD_CLIENT_SECRET")
}

func GetDiscordCallbackURL() string {
	return os.Getenv("DISCORD_CALLBACK_URL")
}

// GetFrontendURL is the origin the browser is redirected back to after the
// OAuth handshake, and the allowed CORS origin.
func GetFrontendURL() string {
	url := os.Getenv("FRONTEND_URL")
	if url == "" {
		url = "http://localhost:5173"
	}
	return strings.TrimSuffix(url, "/")
}
