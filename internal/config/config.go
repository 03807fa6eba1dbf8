package config

import (
	"os"
	"strings"
)

// Config is loaded once from the environment at startup.
type Config struct {
	Port           string
	MongoURI       string
	MongoDatabase  string
	RabbitURI      string
	RabbitExchange string
	AllowOrigins   []string
}

func Load() Config {
	cfg := Config{
		Port:           getEnv("PORT", "6660"),
		MongoURI:       os.Getenv("MONGO_URI"),
		MongoDatabase:  getEnv("MONGO_DATABASE", "mocktest_service"),
		RabbitURI:      os.Getenv("RABBITMQ_URI"),
		RabbitExchange: os.Getenv("RABBITMQ_EXCHANGE"),
	}
	origins := getEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000")
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.AllowOrigins = append(cfg.AllowOrigins, o)
		}
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
