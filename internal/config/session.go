package config

import (
	"fmt"
	"time"
)

// DefaultSessionTTL is how long a chat session token stays valid.
const DefaultSessionTTL = 2 * time.Hour

// MinSecretLength is the shortest accepted token signing secret.
const MinSecretLength = 32

// SessionConfig holds configuration for chat session tokens and the session store.
type SessionConfig struct {
	Secret    string        `mapstructure:"secret"`
	TTL       time.Duration `mapstructure:"ttl"`
	StoreSize int           `mapstructure:"store_size"`
}

// normalize validates the configuration.
func (c *SessionConfig) normalize() error {
	if c.TTL < time.Minute {
		return fmt.Errorf("session.ttl must be at least 1 minute, got: %s", c.TTL)
	}
	if c.StoreSize < 1 {
		return fmt.Errorf("session.store_size must be positive, got: %d", c.StoreSize)
	}
	if c.Secret != "" && len(c.Secret) < MinSecretLength {
		return fmt.Errorf("SESSION_SECRET must be at least %d characters", MinSecretLength)
	}
	return nil
}

func (c *SessionConfig) requireSecret() error {
	if c.Secret == "" {
		return fmt.Errorf("SESSION_SECRET is required but not set")
	}
	return nil
}
