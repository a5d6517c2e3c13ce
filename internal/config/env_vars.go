package config

import (
	"os"
	"path/filepath"
)

const (
	appNameVar  = "APP_NAME"
	baseURLVar  = "BASE_URL"
	credsVar    = "CREDENTIALS_FILE"
	logLevelVar = "LOG_LEVEL"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Loyalty CLI")
}

// GetBaseURL returns the platform API origin including the version prefix
// (e.g. "https://loyalty.example.com/api/v1"). All request paths resolve
// against it.
func (EnvVars) GetBaseURL() string {
	return GetEnv(baseURLVar, "http://localhost:8000/api/v1")
}

// GetCredentialsFile returns where the token pair is persisted between runs.
func (EnvVars) GetCredentialsFile() string {
	if path := os.Getenv(credsVar); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".loyalty", "credentials.json")
	}
	return filepath.Join(home, ".loyalty", "credentials.json")
}

func (EnvVars) GetLogLevel() string {
	return GetEnv(logLevelVar, "info")
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
