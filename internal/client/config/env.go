package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvAPIURL          = "ATTENDANCE_API_URL"
	EnvRequestTimeout  = "ATTENDANCE_REQUEST_TIMEOUT"
	EnvDataDir         = "ATTENDANCE_DATA_DIR"
	EnvLogLevel        = "ATTENDANCE_LOG_LEVEL"
	EnvLocationCommand = "ATTENDANCE_LOCATION_COMMAND"
)

// DotEnvFile is read from the working directory when present.
var DotEnvFile = ".env"

func loadDotEnv() {
	if err := godotenv.Load(DotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}
}

// parseEnv overlays cfg with the ATTENDANCE_* variables that are set.
func parseEnv(cfg *Config) {
	loadDotEnv()

	if v, ok := os.LookupEnv(EnvAPIURL); ok && v != "" {
		cfg.APIBaseURL = v
	}
	if v, ok := os.LookupEnv(EnvRequestTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		cfg.RequestTimeout = d
	}
	if v, ok := os.LookupEnv(EnvDataDir); ok && v != "" {
		cfg.DataDir = v
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok && v != "" {
		cfg.LogLevel = v
	}
	if v, ok := os.LookupEnv(EnvLocationCommand); ok && v != "" {
		cfg.LocationCommand = v
	}
}
