package cmd

import (
	"github.com/spf13/cobra"

	"github.com/rigalabs/invoice-manager/internal/config"
	"github.com/rigalabs/invoice-manager/internal/logger"
)

var (
	version = "1.0.0"

	// Global flags
	dbPath    string
	logLevel  string
	logFormat string

	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "invoice-manager",
	Short: "Small-business invoicing: clients, services, invoices, e-invoices",
	Long: `Invoice Manager runs a single-operator invoicing application.

It manages clients, a service catalog, and invoices, computes totals
and VAT, renders printable PDFs, and exports PEPPOL BIS Billing 3.0
e-invoice XML for the tax-authority gateway.

Examples:
  # Start the HTTP server
  invoice-manager serve --address :8000

  # Create the operator account
  invoice-manager create-admin --username admin

  # Export invoices 3 and 4 as e-invoice XML
  invoice-manager export 3 4 -o einvoices.zip`,
	Version: version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database file path (env: DB_PATH)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (env: LOG_LEVEL)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format, json or console (env: LOG_FORMAT)")

	cobra.OnInitialize(initConfig)
}

func initConfig() {
	cfg = config.Load()

	// Flags take precedence over the environment.
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if logFormat != "" {
		cfg.LogFormat = logFormat
	}

	_ = logger.Setup(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: "stderr",
	})
}
