package env

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads environment variables from a .env file.
// It uses the ENV_PATH environment variable to determine the path to the .env file.
// A missing file is only an error when ENV_PATH points at it explicitly.
func LoadDotEnv(env string, defaultPath string) error {
	envPath, explicit := os.LookupEnv("ENV_PATH")
	if !explicit || envPath == "" {
		slog.Debug("ENV_PATH is not set, using default path", "defaultPath", defaultPath)
		envPath = defaultPath
		explicit = false
	}

	err := godotenv.Load(envPath)
	if err == nil {
		return nil
	}
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		slog.Debug("no .env file, using process environment", "path", envPath)
		return nil
	}
	if env == "local" || env == "" {
		slog.Error("Failed to load environment variables in local mode", "error", err)
		return err
	}
	slog.Debug("Skipping .env ...", "error", err)
	return nil
}
