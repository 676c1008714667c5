package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Home          string
	DataHome      string
	SaveDir       string
	Pause         bool
	NoColor       bool
	LogLevel      string
	DatabaseURL   string
	Neo4jURI      string
	Neo4jUser     string
	Neo4jPassword string
	HistoryLimit  int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	return &Config{
		Home:          getEnv("HOME", ""),
		DataHome:      getEnv("XDG_DATA_HOME", ""),
		SaveDir:       getEnv("CELESTE_SAVE_DIR", ""),
		Pause:         getEnvBool("CELESTE_PAUSE", true),
		NoColor:       os.Getenv("NO_COLOR") != "",
		LogLevel:      getEnv("LOG_LEVEL", "warn"),
		DatabaseURL:   getEnv("DATABASE_URL", "postgres://localhost:5432/celeste_saves?sslmode=disable"),
		Neo4jURI:      getEnv("NEO4J_URI", "bolt://localhost:7687"),
		Neo4jUser:     getEnv("NEO4J_USER", "neo4j"),
		Neo4jPassword: getEnv("NEO4J_PASSWORD", "password"),
		HistoryLimit:  getEnvInt("HISTORY_LIMIT", 20),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
