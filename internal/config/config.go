package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port             string
	GinMode          string
	MongoURI         string
	MongoDatabase    string
	RabbitMQURI      string
	RabbitMQExchange string
	OpenAIAPIKey     string
	OpenAIModel      string
	JWTSecret        string
	TokenTTLMinutes  int
	AllowOrigins     []string

	// Per-user sliding-window rate limits for the expensive endpoints.
	GenerateLimitPerMinute int
	SubmitLimitPerMinute   int
}

var AppConfig *Config

func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	AppConfig = &Config{
		Port:                   getEnvOrDefault("PORT", "8080"),
		GinMode:                getEnvOrDefault("GIN_MODE", "debug"),
		MongoURI:               getEnvOrDefault("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:          getEnvOrDefault("MONGO_DATABASE", "quiz_backend"),
		RabbitMQURI:            getEnvOrDefault("RABBITMQ_URI", ""),
		RabbitMQExchange:       getEnvOrDefault("RABBITMQ_EXCHANGE", ""),
		OpenAIAPIKey:           getEnvOrDefault("OPENAI_API_KEY", ""),
		OpenAIModel:            getEnvOrDefault("OPENAI_MODEL", ""),
		JWTSecret:              getEnvOrDefault("JWT_SECRET", "change-me-in-production"),
		TokenTTLMinutes:        getEnvIntOrDefault("TOKEN_TTL_MINUTES", 24*60),
		AllowOrigins:           []string{getEnvOrDefault("ALLOW_ORIGIN", "http://localhost:3000")},
		GenerateLimitPerMinute: getEnvIntOrDefault("GENERATE_LIMIT_PER_MINUTE", 5),
		SubmitLimitPerMinute:   getEnvIntOrDefault("SUBMIT_LIMIT_PER_MINUTE", 20),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Invalid value %q for %s, using default %d", value, key, defaultValue)
		return defaultValue
	}
	return parsed
}
