package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Storage backend selectors.
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Password codec selectors.
const (
	CodecBase64 = "base64"
	CodecBcrypt = "bcrypt"
)

type Config struct {
	Port           string
	Env            string
	StorageBackend string
	StorageFile    string
	RedisURL       string
	PasswordCodec  string
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found, using system environment variables")
	}

	return Config{
		Port:           getEnv("PORT", "8080"),
		Env:            getEnv("ENV", "development"),
		StorageBackend: getEnv("STORAGE_BACKEND", BackendFile),
		StorageFile:    getEnv("STORAGE_FILE", "junglepets.db.json"),
		RedisURL:       getEnv("REDIS_URL", "redis://localhost:6379"),
		PasswordCodec:  getEnv("PASSWORD_CODEC", CodecBase64),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
