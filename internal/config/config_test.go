package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		JWTSecret:         "secure-secret-at-least-32-chars-long",
		Port:              "8460",
		DBPassword:        "secure-password",
		DBSSLMode:         "require",
		Env:               "development",
		ViewWindowMinutes: 30,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
	}{
		{"Valid development config", func(c *Config) {}, false},
		{"Missing port", func(c *Config) { c.Port = "" }, true},
		{"Missing JWT secret", func(c *Config) { c.JWTSecret = "" }, true},
		{"Zero view window", func(c *Config) { c.ViewWindowMinutes = 0 }, true},
		{"Negative view window", func(c *Config) { c.ViewWindowMinutes = -5 }, true},
		{"Short JWT secret in development", func(c *Config) { c.JWTSecret = "short" }, false},
		{"Default JWT secret in production", func(c *Config) {
			c.Env = "production"
			c.JWTSecret = "your-secret-key-change-in-production"
		}, true},
		{"Short JWT secret in production", func(c *Config) {
			c.Env = "production"
			c.JWTSecret = "short"
		}, true},
		{"Default DB password in production", func(c *Config) {
			c.Env = "prod"
			c.DBPassword = "password"
		}, true},
		{"Strong secrets in production", func(c *Config) { c.Env = "production" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)

			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_ViewWindow(t *testing.T) {
	c := validConfig()
	assert.Equal(t, 30*time.Minute, c.ViewWindow())

	c.ViewWindowMinutes = 1
	assert.Equal(t, time.Minute, c.ViewWindow())
}
