package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_ValidateAdminPassword(t *testing.T) {
	tests := []struct {
		name        string
		env         string
		password    string
		expectError bool
	}{
		{"Production with empty password", "production", "", true},
		{"Production with default password", "production", "admin123", true},
		{"Production with short password", "production", "short", true},
		{"Production with strong password", "production", "a-long-and-strong-password", false},
		{"Prod with default password", "prod", "admin123", true},
		{"Development with default password", "development", "admin123", false},
		{"Test with empty password", "test", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{
				Env:           tt.env,
				AdminUsername: "admin",
				AdminPassword: tt.password,
				Port:          "8080",
				RedisURL:      "localhost:6379",
			}

			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_ValidateRequiredFields(t *testing.T) {
	c := &Config{Env: "test", RedisURL: "localhost:6379"}
	assert.Error(t, c.Validate(), "missing port should fail validation")

	c = &Config{Env: "test", Port: "8080"}
	assert.Error(t, c.Validate(), "missing redis url should fail validation")

	c = &Config{Env: "test", Port: "8080", RedisURL: "localhost:6379", SessionTTLHours: -1}
	assert.Error(t, c.Validate(), "negative session TTL should fail validation")

	c = &Config{Env: "test", Port: "8080", RedisURL: "localhost:6379", LobbySweepInterval: -5}
	assert.Error(t, c.Validate(), "negative sweep interval should fail validation")

	c = &Config{Env: "test", Port: "8080", RedisURL: "localhost:6379"}
	assert.NoError(t, c.Validate())
}
