package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"DATABASE_URL", "SQLITE_PATH", "SMTP_HOST", "SMTP_PORT",
		"EMAIL_SENDER", "EMAIL_PASSWORD", "TELEGRAM_BOT_TOKEN",
		"TELEGRAM_CHAT_ID", "HEADLESS", "CHECK_INTERVAL_HOURS",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "./ecommerce.db", cfg.SQLitePath)
	assert.Equal(t, "smtp.gmail.com", cfg.SMTPHost)
	assert.Equal(t, 587, cfg.SMTPPort)
	assert.True(t, cfg.Headless)
	assert.Equal(t, 6*time.Hour, cfg.CheckInterval)
	assert.Equal(t, 2*time.Second, cfg.PolitenessDelay)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/ecommerce")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("TELEGRAM_CHAT_ID", "12345")
	t.Setenv("HEADLESS", "false")
	t.Setenv("CHECK_INTERVAL_HOURS", "1")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres://u:p@db:5432/ecommerce", cfg.DatabaseURL)
	assert.Equal(t, 2525, cfg.SMTPPort)
	assert.Equal(t, int64(12345), cfg.TelegramChatID)
	assert.False(t, cfg.Headless)
	assert.Equal(t, time.Hour, cfg.CheckInterval)
}

func TestLoad_InvalidValuesKeepDefaults(t *testing.T) {
	t.Setenv("SMTP_PORT", "not-a-port")
	t.Setenv("CHECK_INTERVAL_HOURS", "-3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 587, cfg.SMTPPort)
	assert.Equal(t, 6*time.Hour, cfg.CheckInterval)
}
