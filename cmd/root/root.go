// Package root contains the root command for the application
package root

import (
	"github.com/spf13/cobra"

	"jsolano/mail-ledger/internal/config"
	"jsolano/mail-ledger/internal/logging"
)

var (
	// Log is the shared logger instance for commands. It starts at defaults
	// and is reconfigured from the loaded config before any subcommand runs.
	Log logging.Logger = logging.NewLogrusAdapter("info", "text")

	// Cfg is the loaded application configuration, shared by all commands.
	Cfg *config.Config

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "mail-ledger",
		Short: "Parse bank notification emails into categorized transactions.",
		Long: `mail-ledger fetches bank notification emails over IMAP, extracts
transaction details (amount, merchant, card, type, date) from their bodies,
categorizes them by merchant keywords and records the results as CSV or
Google Sheets rows.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to mail-ledger!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.LoadEnv()

			cfg, err := config.InitializeConfig()
			if err != nil {
				return err
			}
			Cfg = cfg
			Log = logging.NewLogrusAdapterFromLogger(config.ConfigureLoggingFromConfig(cfg))
			return nil
		},
	}

	// Common flags accessible to all commands
	Input  string
	Output string
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&Input, "input", "i", "", "Input file")
	Cmd.PersistentFlags().StringVarP(&Output, "output", "o", "", "Output file")
}
