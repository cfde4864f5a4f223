package config

import (
	"os"
	"time"
)

type Config struct {
	ServerAddress  string
	MongoURL       string
	MongoDBName    string
	JWTSecret      string
	JWTExpiration  time.Duration
	GeminiEndpoint string
}

func Load() *Config {
	return &Config{
		ServerAddress:  getEnv("SERVER_ADDRESS", ":8001"),
		MongoURL:       getEnv("MONGO_URL", "mongodb://localhost:27017"),
		MongoDBName:    getEnv("MONGO_DB", "career_compass"),
		JWTSecret:      getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		JWTExpiration:  24 * time.Hour,
		GeminiEndpoint: getEnv("GEMINI_ENDPOINT", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
