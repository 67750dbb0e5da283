package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_NAME", "swiss.db")
	t.Setenv("PORT", "8080")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("TURSO_PRIMARY_URL", "")
	t.Setenv("SLACK_BOT_TOKEN", "")
	t.Setenv("PUBSUB_TOPIC_PREFIX", "")

	cfg := Load()

	assert.Equal(t, "swiss.db", cfg.DBName)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "swiss", cfg.PubSub.TopicPrefix)
	assert.Empty(t, cfg.RemoteURL())
	assert.False(t, cfg.Slack.Enabled())
}

func TestRemoteURL_PrefersPostgres(t *testing.T) {
	cfg := Config{
		DatabaseURL: "postgres://localhost/tournament?sslmode=disable",
		Turso:       TursoConfig{PrimaryURL: "libsql://swiss.turso.io"},
	}
	assert.Equal(t, "postgres://localhost/tournament?sslmode=disable", cfg.RemoteURL())

	cfg.DatabaseURL = ""
	assert.Equal(t, "libsql://swiss.turso.io", cfg.RemoteURL())
}
