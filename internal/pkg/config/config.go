package config

import "github.com/kelseyhightower/envconfig"

// Config holds application configuration loaded from environment variables.
// The .env file, if any, is loaded into the environment by godotenv/autoload in main.
type Config struct {
	Port         int    `envconfig:"PORT" default:"8080"`
	DatabasePath string `envconfig:"DATABASE_PATH" default:"./data/pillulu.db"`
	LogLevel     string `envconfig:"LOG_LEVEL" default:"info"` // debug|info|warn|error

	CronSecret       string `envconfig:"CRON_SECRET"`
	JWTSecret        string `envconfig:"JWT_SECRET" default:"dev-secret-change-in-production"`
	SchedulerEnabled bool   `envconfig:"SCHEDULER_ENABLED" default:"true"`
	RedisURL         string `envconfig:"REDIS_URL"` // empty: in-process evaluation lock

	SendGridAPIKey string `envconfig:"SENDGRID_API_KEY"`
	FromEmail      string `envconfig:"FROM_EMAIL"`
	AppBaseURL     string `envconfig:"APP_BASE_URL" default:"https://your-username.github.io/pillulu-health-assistant/"`

	LineChannelSecret string `envconfig:"CHANNEL_SECRET"`
	LineChannelToken  string `envconfig:"CHANNEL_ACCESS_TOKEN"`

	OpenAIAPIKey string `envconfig:"OPENAI_API_KEY"`
	OpenAIModel  string `envconfig:"OPENAI_MODEL" default:"gpt-4o-mini"`

	DeliveryRatePerSec float64 `envconfig:"DELIVERY_RATE_PER_SEC" default:"5"`
	HTTPRatePerSec     float64 `envconfig:"HTTP_RATE_PER_SEC" default:"20"`
}

// Load reads environment variables into Config.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// EmailEnabled reports whether SendGrid delivery is configured.
func (c Config) EmailEnabled() bool {
	return c.SendGridAPIKey != "" && c.FromEmail != ""
}

// LineEnabled reports whether LINE credentials are configured.
func (c Config) LineEnabled() bool {
	return c.LineChannelSecret != "" && c.LineChannelToken != ""
}
