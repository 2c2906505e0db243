package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Server captures process-level configuration.
type Server struct {
	Addr               string
	Environment        string
	BackendBaseURL     string
	RequestTimeout     time.Duration
	AggregationTimeout time.Duration
	SessionCookieName  string
}

// Defaults; individual values are overridable from the environment.
var (
	RequestTimeout     = 10 * time.Second
	AggregationTimeout = 5 * time.Second
)

// FromEnv builds a Server config from environment variables so main stays
// lean. A local .env file is honored when present.
func FromEnv() Server {
	// Missing .env is fine; env vars win either way.
	_ = godotenv.Load()

	addr := os.Getenv("ROOMDESK_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	environment := os.Getenv("ROOMDESK_ENV")
	if environment == "" {
		environment = "development"
	}

	backendURL := os.Getenv("BOOKING_API_URL")
	if backendURL == "" {
		backendURL = "http://localhost:8000/api"
	}

	if s := os.Getenv("BACKEND_REQUEST_TIMEOUT"); s != "" {
		if duration, err := time.ParseDuration(s); err == nil {
			RequestTimeout = duration
		}
	}

	if s := os.Getenv("AGGREGATION_TIMEOUT"); s != "" {
		if duration, err := time.ParseDuration(s); err == nil {
			AggregationTimeout = duration
		}
	}

	cookieName := os.Getenv("SESSION_COOKIE_NAME")
	if cookieName == "" {
		cookieName = "roomdesk_session"
	}

	return Server{
		Addr:               addr,
		Environment:        environment,
		BackendBaseURL:     backendURL,
		RequestTimeout:     RequestTimeout,
		AggregationTimeout: AggregationTimeout,
		SessionCookieName:  cookieName,
	}
}
