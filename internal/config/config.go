package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"salesboard/internal/report"
	"salesboard/internal/sheets"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// AppConfig holds the complete application configuration.
type AppConfig struct {
	Sheets sheets.Config

	// RegistryWorksheet and TargetsWorksheet are the two source tables.
	RegistryWorksheet string
	TargetsWorksheet  string

	// DefaultPolicy applies when a request does not select one.
	DefaultPolicy report.Policy

	// DayFirst selects DD/MM/YYYY date parsing.
	DayFirst bool

	// RulesPath optionally overrides the built-in classifier rule table.
	RulesPath string

	HTTPAddr string
	DataPath string
	LogDir   string
}

// Load loads the configuration from .env files and environment variables.
func Load() (*AppConfig, error) {
	// 1. Try to load from the executable's directory first
	exePath, err := os.Executable()
	exeDir := ""
	if err == nil {
		exeDir = filepath.Dir(exePath)
		envPath := filepath.Join(exeDir, ".env")
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("Loaded configuration from binary directory")
		}
	}

	// 2. Fallback to current working directory (useful for development/go run)
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found in working directory, relying on environment variables or binary-relative .env")
	}

	// 3. Resolve data paths
	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		if exeDir != "" {
			dataPath = exeDir
		} else {
			dataPath = "."
		}
	}

	logDir := filepath.Join(dataPath, "logs")
	snapshotDir := filepath.Join(dataPath, "snapshots")

	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.Warn().Err(err).Str("path", logDir).Msg("Failed to create log directory")
	}
	if err := os.MkdirAll(snapshotDir, 0755); err != nil {
		log.Warn().Err(err).Str("path", snapshotDir).Msg("Failed to create snapshot directory")
	}

	delaySecs, _ := strconv.Atoi(getEnv("SHEETS_REQUEST_DELAY_SECONDS", "1"))

	cfg := &AppConfig{
		Sheets: sheets.Config{
			SpreadsheetID: getEnv("SPREADSHEET_ID", ""),
			BaseURL:       getEnv("SHEETS_BASE_URL", ""),
			RequestDelay:  time.Duration(delaySecs) * time.Second,
			SnapshotDir:   snapshotDir,
		},
		RegistryWorksheet: getEnv("REGISTRY_WORKSHEET", "Registro_Semanal"),
		TargetsWorksheet:  getEnv("TARGETS_WORKSHEET", "Metas"),
		DefaultPolicy:     report.ParsePolicy(getEnv("REDUCTION_POLICY", "")),
		DayFirst:          getEnvBool("DAY_FIRST", true),
		RulesPath:         getEnv("RULES_PATH", ""),
		HTTPAddr:          getEnv("HTTP_ADDR", ":8321"),
		DataPath:          dataPath,
		LogDir:            logDir,
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}
