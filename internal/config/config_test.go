package config

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeConfigDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "imap.gmail.com", cfg.Mailbox.Server)
	assert.Equal(t, 993, cfg.Mailbox.Port)
	assert.Equal(t, "INBOX", cfg.Mailbox.Folder)
	assert.Equal(t, 10, cfg.Mailbox.MaxEmails)
	assert.Equal(t, "Expenses", cfg.Sheets.SheetName)
	assert.Equal(t, 0, cfg.Processing.Workers)
}

func TestInitializeConfigEnvOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("MAILLEDGER_LOG_LEVEL", "debug")
	t.Setenv("MAILLEDGER_MAILBOX_MAX_EMAILS", "25")
	t.Setenv("IMAP_APP_PASSWORD", "hunter2")

	cfg, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 25, cfg.Mailbox.MaxEmails)
	assert.Equal(t, "hunter2", cfg.Mailbox.Password)
}

func TestInitializeConfigRejectsBadValues(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"Bad log level", "MAILLEDGER_LOG_LEVEL", "verbose"},
		{"Bad log format", "MAILLEDGER_LOG_FORMAT", "xml"},
		{"Bad port", "MAILLEDGER_MAILBOX_PORT", "70000"},
		{"Zero max emails", "MAILLEDGER_MAILBOX_MAX_EMAILS", "0"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			_, err := InitializeConfig()
			assert.Error(t, err)
		})
	}
}

func TestConfigureLoggingFromConfig(t *testing.T) {
	var cfg Config
	cfg.Log.Level = "debug"
	cfg.Log.Format = "json"

	logger := ConfigureLoggingFromConfig(&cfg)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)

	cfg.Log.Level = "nonsense"
	cfg.Log.Format = "text"
	logger = ConfigureLoggingFromConfig(&cfg)
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
}
