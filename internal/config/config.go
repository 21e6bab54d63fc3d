// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Mailbox struct {
		Server    string `mapstructure:"server" yaml:"server"`
		Port      int    `mapstructure:"port" yaml:"port"`
		Username  string `mapstructure:"username" yaml:"username"`
		Password  string `mapstructure:"password" yaml:"-"` // Never serialize the app password
		Folder    string `mapstructure:"folder" yaml:"folder"`
		Sender    string `mapstructure:"sender" yaml:"sender"`
		MaxEmails int    `mapstructure:"max_emails" yaml:"max_emails"`
	} `mapstructure:"mailbox" yaml:"mailbox"`

	Sheets struct {
		SpreadsheetID   string `mapstructure:"spreadsheet_id" yaml:"spreadsheet_id"`
		SheetName       string `mapstructure:"sheet_name" yaml:"sheet_name"`
		CredentialsFile string `mapstructure:"credentials_file" yaml:"credentials_file"`
	} `mapstructure:"sheets" yaml:"sheets"`

	Tables struct {
		BanksFile      string `mapstructure:"banks_file" yaml:"banks_file"`
		CategoriesFile string `mapstructure:"categories_file" yaml:"categories_file"`
	} `mapstructure:"tables" yaml:"tables"`

	Processing struct {
		Workers int `mapstructure:"workers" yaml:"workers"`
	} `mapstructure:"processing" yaml:"processing"`
}

// LoadEnv loads a .env file from the working directory if one exists.
// Missing files are not an error.
func LoadEnv() {
	_ = godotenv.Load()
}

// InitializeConfig initializes Viper configuration with hierarchical loading:
// defaults, then an optional YAML config file, then MAILLEDGER_* environment
// variables.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.mail-ledger")
	v.AddConfigPath(".mail-ledger")
	v.AddConfigPath(".")

	v.SetEnvPrefix("MAILLEDGER")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Keep going with defaults and env vars
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	// The IMAP app password always comes from the environment, unprefixed,
	// matching the variable name people already have in their .env files.
	if err := v.BindEnv("mailbox.password", "IMAP_APP_PASSWORD"); err != nil {
		fmt.Printf("Warning: failed to bind IMAP_APP_PASSWORD environment variable: %v\n", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("mailbox.server", "imap.gmail.com")
	v.SetDefault("mailbox.port", 993)
	v.SetDefault("mailbox.folder", "INBOX")
	v.SetDefault("mailbox.sender", "")
	v.SetDefault("mailbox.max_emails", 10)

	v.SetDefault("sheets.sheet_name", "Expenses")
	v.SetDefault("sheets.credentials_file", "")

	v.SetDefault("tables.banks_file", "")
	v.SetDefault("tables.categories_file", "")

	v.SetDefault("processing.workers", 0) // 0 means one worker per CPU
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if config.Mailbox.Port < 1 || config.Mailbox.Port > 65535 {
		return fmt.Errorf("invalid mailbox port: %d", config.Mailbox.Port)
	}

	if config.Mailbox.MaxEmails < 1 || config.Mailbox.MaxEmails > 500 {
		return fmt.Errorf("mailbox.max_emails must be between 1 and 500, got: %d", config.Mailbox.MaxEmails)
	}

	if config.Processing.Workers < 0 {
		return fmt.Errorf("processing.workers must not be negative, got: %d", config.Processing.Workers)
	}

	return nil
}

// ConfigureLoggingFromConfig builds a logrus logger from the Config struct.
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}
