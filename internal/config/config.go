package config

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Load reads configuration from environment variables and .env file.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	// A helper function to get a required env var. It will fail if the env var is not set.
	getEnv := func(key string) string {
		if value, ok := os.LookupEnv(key); ok {
			return value
		}
		log.Fatalf("Error: Required environment variable %s is not set.", key)
		return "" // This line is never reached
	}

	cfg := Config{
		DBName:      getEnv("DB_NAME"),
		Port:        getEnv("PORT"),
		DatabaseURL: getEnvOrDefault("DATABASE_URL", ""),
		LogLevel:    getEnvOrDefault("LOG_LEVEL", "info"),
		Turso: TursoConfig{
			PrimaryURL: getEnvOrDefault("TURSO_PRIMARY_URL", ""),
			AuthToken:  getEnvOrDefault("TURSO_AUTH_TOKEN", ""),
		},
		Slack: SlackConfig{
			Token:     getEnvOrDefault("SLACK_BOT_TOKEN", ""),
			ChannelID: getEnvOrDefault("SLACK_CHANNEL_ID", ""),
		},
		PubSub: PubSubConfig{
			ProjectID:   getEnvOrDefault("GCP_PROJECT", ""),
			TopicPrefix: getEnvOrDefault("PUBSUB_TOPIC_PREFIX", "swiss"),
		},
	}
	return cfg
}

// RemoteURL returns the URL of the remote database, if any. A postgres
// DATABASE_URL takes precedence over a Turso primary.
func (c Config) RemoteURL() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.Turso.PrimaryURL
}

func getEnvOrDefault(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}
