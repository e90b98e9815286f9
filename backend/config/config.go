package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerHost    string
	ServerPort    string
	PublicBaseURL string
	VideosDir     string
	PublicDir     string
	DBPath        string
	CacheTTL      time.Duration
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	port := getEnv("BACKEND_PORT", "4000")

	return &Config{
		ServerHost:    getEnv("BACKEND_HOST", "0.0.0.0"),
		ServerPort:    port,
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", "http://localhost:"+port),
		VideosDir:     getEnv("VIDEOS_DIR", "videos"),
		PublicDir:     getEnv("PUBLIC_DIR", "public"),
		DBPath:        getEnv("DB_PATH", "database/profiles.db"),
		CacheTTL:      time.Duration(getEnvInt("CACHE_TTL_MINUTES", 10)) * time.Minute,
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
