package config

// Config holds all configuration for the application.
type Config struct {
	DBName      string
	DatabaseURL string
	Port        string
	LogLevel    string
	Turso       TursoConfig
	Slack       SlackConfig
	PubSub      PubSubConfig
}

type SlackConfig struct {
	Token     string
	ChannelID string
}

// Enabled reports whether both a token and a channel are configured.
func (s SlackConfig) Enabled() bool {
	return s.Token != "" && s.ChannelID != ""
}

type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}

type PubSubConfig struct {
	ProjectID   string
	TopicPrefix string
}
