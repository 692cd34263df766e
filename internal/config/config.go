package config

import (
	"crypto/rand"
	"encoding/base64"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         string
	DBPath       string
	CSRFKey      []byte
	SessionKey   []byte
	CookieDomain string
	CookieSecure bool

	// AIBaseURL and AIAPIKey configure the generative completion service.
	// An empty key disables generation; the site serves fixed fallbacks.
	AIBaseURL string
	AIAPIKey  string

	// AdminPassword, when set, seeds an "admin" user at boot. The database
	// is in-memory so users created by the CLI do not survive a restart.
	AdminPassword string
}

func LoadConfig() (*Config, error) {
	// A missing .env is fine; env vars may come from the environment proper.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("Failed to load .env file", "error", err)
	}

	cfg := &Config{
		Port:          getEnv("PORT", "8585"),
		DBPath:        getEnv("DB_PATH", ":memory:"),
		CookieDomain:  getEnv("COOKIE_DOMAIN", ""),
		CookieSecure:  getEnv("COOKIE_SECURE", "false") == "true",
		AIBaseURL:     getEnv("AI_BASE_URL", "https://generativetext.googleapis.example"),
		AIAPIKey:      os.Getenv("AI_API_KEY"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}

	cfg.CSRFKey = loadKey("CSRF_KEY")
	cfg.SessionKey = loadKey("SESSION_KEY")

	// Make sure port is valid
	if _, err := strconv.Atoi(cfg.Port); err != nil {
		slog.Error("Invalid PORT environment variable. Falling back to default.", "PORT", os.Getenv("PORT"))
		cfg.Port = "8585"
	}

	return cfg, nil
}

// loadKey decodes a base64 key from the environment, generating a random
// development key when absent or too short. Generated keys change on each
// restart, which invalidates sessions and CSRF tokens.
func loadKey(name string) []byte {
	raw := os.Getenv(name)
	if raw == "" {
		slog.Warn(name + " not set. Generating a random key for development; set it in production.")
		return randomBytes(32)
	}
	decoded, err := base64.StdEncoding.DecodeString(raw)
	if err != nil || len(decoded) < 32 {
		slog.Warn(name + " is invalid or shorter than 32 bytes. Generating a random development key instead.")
		return randomBytes(32)
	}
	return decoded
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func randomBytes(n int) []byte {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand failing means the platform is broken; refuse to limp
		// along with a guessable key.
		panic("config: cannot read random bytes: " + err.Error())
	}
	return b
}
