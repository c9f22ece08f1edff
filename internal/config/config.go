package config

import (
	"errors"
	"fmt"
	"os"
)

const defaultAPIBaseURL = "http://localhost:5000"

// Config holds runtime settings for the donor CLI.
type Config struct {
	// APIBaseURL is the platform origin; the client appends /api/food-posts.
	APIBaseURL string
	// Session is the opaque cookie value issued at login.
	Session string
	DBPath  string
}

func LoadFromEnv() (Config, error) {
	cfg := Config{
		APIBaseURL: os.Getenv("MEALBRIDGE_API_BASE_URL"),
		Session:    os.Getenv("MEALBRIDGE_SESSION"),
		DBPath:     os.Getenv("MEALBRIDGE_DB_PATH"),
	}

	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = defaultAPIBaseURL
	}
	if cfg.DBPath == "" {
		cfg.DBPath = "mealbridge.db"
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if c.Session == "" {
		return errors.New("MEALBRIDGE_SESSION is required")
	}
	if c.APIBaseURL == "" {
		return errors.New("APIBaseURL is required")
	}
	if c.DBPath == "" {
		return errors.New("DBPath is required")
	}
	if c.APIBaseURL[len(c.APIBaseURL)-1] == '/' {
		return fmt.Errorf("APIBaseURL must not end with '/': %s", c.APIBaseURL)
	}
	return nil
}
