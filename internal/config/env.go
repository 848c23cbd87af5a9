package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Env struct {
	APIBaseURL  string        `envconfig:"API_BASE_URL"`
	AppPort     string        `envconfig:"APP_PORT" default:"3000"`
	AppEnv      string        `envconfig:"APP_ENV" default:"development"`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"15s"`

	RedisAddress  string `envconfig:"REDIS_ADDRESS"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	SessionCookie string        `envconfig:"SESSION_COOKIE" default:"devblog_browser"`
	SessionTTL    time.Duration `envconfig:"SESSION_TTL" default:"720h"`
	CookieSecure  bool          `envconfig:"COOKIE_SECURE" default:"false"`

	RateLimit float64 `envconfig:"RATE_LIMIT" default:"50"`
	RateBurst int     `envconfig:"RATE_BURST" default:"100"`
}

// LoadEnv reads an optional .env file and then the process environment.
// Variables already set in the environment win over the file.
func LoadEnv() (Env, error) {
	_ = godotenv.Load()

	var env Env
	if err := envconfig.Process("", &env); err != nil {
		return Env{}, fmt.Errorf("failed to read environment: %w", err)
	}
	return env, nil
}

func (e Env) IsProduction() bool {
	return e.AppEnv == "production"
}
