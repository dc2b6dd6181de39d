package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"cis-mcp/internal/stats"
)

// AppConfig holds the complete application configuration.
type AppConfig struct {
	DataPath       string
	ScenarioDir    string
	LogDir         string
	HistoryDBPath  string // empty disables run recording
	SearchCeiling  int
	Target1GoalPct float64
	Target2GoalPct float64
}

// Load reads configuration from .env files and environment variables.
// The binary's own directory takes priority over the working directory, since
// MCP servers are usually launched with an arbitrary CWD.
func Load() (*AppConfig, error) {
	exePath, err := os.Executable()
	exeDir := ""
	if err == nil {
		exeDir = filepath.Dir(exePath)
		envPath := filepath.Join(exeDir, ".env")
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("Loaded configuration from binary directory")
		}
	}

	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file in working directory, relying on environment variables or binary-relative .env")
	}

	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		if exeDir != "" {
			dataPath = exeDir
		} else {
			dataPath = "."
		}
	}

	scenarioDir := getEnv("SCENARIO_DIR", filepath.Join(dataPath, "scenarios"))
	logDir := getEnv("LOGS_FOLDER", filepath.Join(dataPath, "logs"))

	cfg := &AppConfig{
		DataPath:       dataPath,
		ScenarioDir:    scenarioDir,
		LogDir:         logDir,
		HistoryDBPath:  getEnv("HISTORY_DB_PATH", ""),
		SearchCeiling:  getEnvInt("SEARCH_CEILING", 200),
		Target1GoalPct: getEnvFloat("TARGET1_GOAL_PCT", stats.DefaultTarget1GoalPct),
		Target2GoalPct: getEnvFloat("TARGET2_GOAL_PCT", stats.DefaultTarget2GoalPct),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
		log.Warn().Str("key", key).Str("value", value).Msg("Ignoring non-integer environment value")
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
		log.Warn().Str("key", key).Str("value", value).Msg("Ignoring non-numeric environment value")
	}
	return fallback
}
