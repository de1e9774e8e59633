package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Service holds the runtime configuration of the HTTP service, sourced from
// the environment with optional .env overrides for local development.
type Service struct {
	ListenAddr   string
	DatabasePath string
	CORSOrigins  []string
	LogLevel     string

	// AdvisorModel selects the Gemini model for the assist endpoint. The API
	// key itself is read by the genai client from GEMINI_API_KEY.
	AdvisorModel   string
	AdvisorEnabled bool
}

const (
	defaultPort         = 8000
	defaultDatabasePath = "data/profiles.db"
	defaultAdvisorModel = "gemini-2.5-flash"
)

// LoadService reads the service configuration. A missing .env file is not an
// error; explicit environment variables always win over .env entries.
func LoadService() (Service, error) {
	_ = godotenv.Load()

	port := defaultPort
	if raw := os.Getenv("PORT"); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil || p < 1 || p > 65535 {
			return Service{}, fmt.Errorf("invalid PORT %q", raw)
		}
		port = p
	}

	dbPath := os.Getenv("DATABASE_PATH")
	if dbPath == "" {
		dbPath = defaultDatabasePath
	}

	origins := []string{"*"}
	if raw := os.Getenv("CORS_ORIGINS"); raw != "" {
		origins = origins[:0]
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}

	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = "info"
	}

	model := os.Getenv("ADVISOR_MODEL")
	if model == "" {
		model = defaultAdvisorModel
	}

	return Service{
		ListenAddr:     fmt.Sprintf(":%d", port),
		DatabasePath:   dbPath,
		CORSOrigins:    origins,
		LogLevel:       level,
		AdvisorModel:   model,
		AdvisorEnabled: os.Getenv("GEMINI_API_KEY") != "",
	}, nil
}
