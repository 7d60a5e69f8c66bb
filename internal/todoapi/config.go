package todoapi

import (
	"os"
	"strconv"
	"strings"
)

// DefaultBaseURL is the hosted todo API the app was built against.
const DefaultBaseURL = "https://api-todo-list-pbw.vercel.app"

// Config holds the settings of the todo API client.
type Config struct {
	BaseURL  string
	LogCalls bool
}

// DefaultConfig returns a Config pointing at the hosted API with call
// logging off.
func DefaultConfig() Config {
	return Config{
		BaseURL:  DefaultBaseURL,
		LogCalls: false,
	}
}

// LoadConfig reads client configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("TUGASIN_API_URL"); v != "" {
		cfg.BaseURL = strings.TrimRight(v, "/")
	}
	if v := os.Getenv("TUGASIN_API_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}

	return cfg
}
