package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/asklytics/asklytics-backend/internal/logger"
)

var (
	customLog = logger.NewLogger()
)

// Backend identifiers accepted in the SQL_BACKEND environment variable.
const (
	BackendGroq      = "groq"
	BackendGemini    = "gemini"
	BackendAnthropic = "anthropic"
	BackendSeq2Seq   = "seq2seq"
)

// AuthDBConfig describes the fixed authentication database. When Host is
// empty the auth store falls back to a local SQLite file, which keeps
// development and integration tests free of a MySQL dependency.
type AuthDBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string

	SQLiteDir  string
	SQLiteFile string
}

// UseMySQL reports whether the auth store should connect to MySQL.
func (a AuthDBConfig) UseMySQL() bool {
	return a.Host != ""
}

// Config holds application configuration values. Loaded once at startup and
// treated as read-only afterwards; components receive it explicitly.
type Config struct {
	ServerPort     string
	AllowedOrigins []string

	// LLM backend selection and credentials.
	Backend         string
	GroqAPIKey      string
	GroqModel       string
	GeminiAPIKey    string
	GeminiModel     string
	AnthropicAPIKey string
	AnthropicModel  string
	Seq2SeqEndpoint string
	Seq2SeqBeams    int

	// Whether an empty target-database password counts as a missing field.
	RequireDBPassword bool

	AuthDB AuthDBConfig

	JWTSecret     string
	JWTExpiration time.Duration
}

// LoadConfig loads configuration from environment variables.
// It uses a .env file for local development if present (ignores it for production).
func LoadConfig() (*Config, error) {
	customLog.Println("Loading configuration from environment variables...")

	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			customLog.Warnf("Warning: Error loading .env file: %v", err)
		}
	}

	port := getEnv("SERVER_PORT", ":8080")
	jwtSecret := os.Getenv("JWT_SECRET")
	jwtExpHoursStr := getEnv("JWT_EXPIRATION_HOURS", "24")
	origins := getEnv("ALLOWED_ORIGINS", "http://localhost:5173")

	if jwtSecret == "" {
		return nil, errors.New("JWT_SECRET environment variable must be set")
	}

	jwtExpHours, err := strconv.Atoi(jwtExpHoursStr)
	if err != nil || jwtExpHours <= 0 {
		customLog.Warnf("Invalid JWT_EXPIRATION_HOURS '%s'. Using default 24h. Error: %v", jwtExpHoursStr, err)
		jwtExpHours = 24
	}

	backend := strings.ToLower(getEnv("SQL_BACKEND", BackendGroq))
	switch backend {
	case BackendGroq, BackendGemini, BackendAnthropic, BackendSeq2Seq:
	default:
		return nil, fmt.Errorf("unsupported SQL_BACKEND %q", backend)
	}

	beams, err := strconv.Atoi(getEnv("SEQ2SEQ_NUM_BEAMS", "5"))
	if err != nil || beams < 1 {
		beams = 5
	}

	authPort, err := strconv.Atoi(getEnv("AUTH_DB_PORT", "3306"))
	if err != nil {
		return nil, fmt.Errorf("invalid AUTH_DB_PORT: %w", err)
	}

	cfg := &Config{
		ServerPort:     port,
		AllowedOrigins: splitOrigins(origins),

		Backend:         backend,
		GroqAPIKey:      os.Getenv("GROQ_API_KEY"),
		GroqModel:       getEnv("GROQ_MODEL", "llama-3.1-8b-instant"),
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		GeminiModel:     getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicModel:  getEnv("ANTHROPIC_MODEL", "claude-3-5-haiku-latest"),
		Seq2SeqEndpoint: os.Getenv("SEQ2SEQ_ENDPOINT"),
		Seq2SeqBeams:    beams,

		RequireDBPassword: getEnv("REQUIRE_DB_PASSWORD", "false") == "true",

		AuthDB: AuthDBConfig{
			Host:       os.Getenv("AUTH_DB_HOST"),
			Port:       authPort,
			User:       getEnv("AUTH_DB_USER", "root"),
			Password:   os.Getenv("AUTH_DB_PASSWORD"),
			Name:       getEnv("AUTH_DB_NAME", "asklytics_auth"),
			SQLiteDir:  getEnv("AUTH_SQLITE_DIRECTORY", "data"),
			SQLiteFile: getEnv("AUTH_SQLITE_FILE", "auth.db"),
		},

		JWTSecret:     jwtSecret,
		JWTExpiration: time.Hour * time.Duration(jwtExpHours),
	}

	customLog.Printf("Configuration loaded successfully. Port: %s, Backend: %s, JWT Exp: %v",
		cfg.ServerPort, cfg.Backend, cfg.JWTExpiration)
	return cfg, nil
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

// getEnv reads an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
