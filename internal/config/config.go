package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ListenAddr   string
	DBPath       string
	BlobPath     string
	LogLevel     string
	LogFile      string
	ExpiringDays int
}

// Load reads configuration from the environment, after loading a .env file
// if one exists in the working directory.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ListenAddr:   getEnv("LISTEN_ADDR", ":8080"),
		DBPath:       getEnv("DB_PATH", "/data/pantryplus.db"),
		BlobPath:     getEnv("BLOB_PATH", "/data/blobs"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogFile:      getEnv("LOG_FILE", ""),
		ExpiringDays: getEnvInt("EXPIRING_THRESHOLD_DAYS", 3),
	}
}

func getEnv(key, defaultVal string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	val, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil || n <= 0 {
		return defaultVal
	}
	return n
}
