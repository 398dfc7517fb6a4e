package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, time.Second, cfg.ChatReplyDelay)
	assert.Equal(t, 300*time.Millisecond, cfg.ChatModalOpenDelay)
	assert.Equal(t, 50, cfg.ChatHistoryLimit)
	assert.Empty(t, cfg.CORSAllowedOrigins)
	assert.Equal(t, "Subscription Deals", cfg.SendGridFromName)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("CHAT_REPLY_DELAY", "250ms")
	t.Setenv("CHAT_HISTORY_LIMIT", "10")
	t.Setenv("REDIS_TLS", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://deals.example.com, https://www.deals.example.com")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 250*time.Millisecond, cfg.ChatReplyDelay)
	assert.Equal(t, 10, cfg.ChatHistoryLimit)
	assert.True(t, cfg.RedisTLS)
	assert.Equal(t, []string{"https://deals.example.com", "https://www.deals.example.com"}, cfg.CORSAllowedOrigins)
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("CHAT_REPLY_DELAY", "soon")
	t.Setenv("CHAT_HISTORY_LIMIT", "many")
	t.Setenv("REDIS_TLS", "maybe")

	cfg := Load()

	assert.Equal(t, time.Second, cfg.ChatReplyDelay)
	assert.Equal(t, 50, cfg.ChatHistoryLimit)
	assert.False(t, cfg.RedisTLS)
}
