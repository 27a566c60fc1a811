package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config wires the daemon: where the conference API lives, who the reviewer
// is, which event bus to use and how often the time-derived engines tick.
// Values come from an optional yaml file, overridden by environment
// variables.
type Config struct {
	APIBaseURL   string        `yaml:"api_base_url"`
	ReviewerID   int64         `yaml:"reviewer_id"`
	Bus          string        `yaml:"bus"` // "inproc" or "nats"
	NATSURL      string        `yaml:"nats_url"`
	TickInterval time.Duration `yaml:"tick_interval"`

	Deadlines struct {
		BiddingStart string `yaml:"bidding_start"`
		BiddingEnd   string `yaml:"bidding_end"`
		ReviewStart  string `yaml:"review_start"`
		ReviewEnd    string `yaml:"review_end"`
	} `yaml:"deadlines"`
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func loadConfig(path string) (*Config, error) {
	config := &Config{
		Bus:          "inproc",
		TickInterval: time.Second,
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	config.APIBaseURL = getEnv("CONFERENCE_API_URL", config.APIBaseURL)
	config.ReviewerID = getEnvAsInt64("REVIEWER_ID", config.ReviewerID)
	config.Bus = getEnv("EVENT_BUS", config.Bus)
	config.NATSURL = getEnv("NATS_URL", config.NATSURL)
	config.TickInterval = getEnvAsDuration("TICK_INTERVAL", config.TickInterval)

	config.Deadlines.BiddingStart = getEnv("BIDDING_START", config.Deadlines.BiddingStart)
	config.Deadlines.BiddingEnd = getEnv("BIDDING_END", config.Deadlines.BiddingEnd)
	config.Deadlines.ReviewStart = getEnv("REVIEW_START", config.Deadlines.ReviewStart)
	config.Deadlines.ReviewEnd = getEnv("REVIEW_END", config.Deadlines.ReviewEnd)

	if config.APIBaseURL == "" {
		return nil, fmt.Errorf("CONFERENCE_API_URL is required")
	}
	if config.ReviewerID == 0 {
		return nil, fmt.Errorf("REVIEWER_ID is required")
	}
	if config.Bus == "nats" && config.NATSURL == "" {
		return nil, fmt.Errorf("NATS_URL is required when EVENT_BUS=nats")
	}

	return config, nil
}
