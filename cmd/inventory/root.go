// Root command for the inventory CLI.
package main

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/fekuna/omnipos-inventory/config"
	"github.com/fekuna/omnipos-inventory/internal/apperror"
	"github.com/fekuna/omnipos-inventory/internal/app"
	"github.com/fekuna/omnipos-inventory/pkg/logger"
	"github.com/fekuna/omnipos-inventory/pkg/output"
)

const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

var (
	flagConfigFile string
	flagJSON       bool
	flagVerbose    bool
)

// cfg is loaded once by PersistentPreRunE so every subcommand sees the same values.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:           "inventory",
	Short:         "Inventory keeps categories, products, purchases and stock reports",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(flagConfigFile)
		if err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigFile, "config", "", "config file (default: ./config.yaml if present)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "log to stderr")

	rootCmd.AddCommand(categoryCmd)
	rootCmd.AddCommand(productCmd)
	rootCmd.AddCommand(purchaseCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(serveCmd)
}

// Execute runs the root command and maps the error class onto the exit code.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		output.Error("%s", err)
		os.Exit(exitCode(err))
	}
	os.Exit(exitSuccess)
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitSuccess
	case errors.Is(err, apperror.ErrValidation),
		errors.Is(err, apperror.ErrNotFound),
		errors.Is(err, apperror.ErrAmbiguous),
		errors.Is(err, apperror.ErrInsufficientStock):
		return exitUserError
	default:
		return exitSysError
	}
}

// openApp wires the application for one command. CLI commands stay quiet
// unless --verbose is given.
func openApp() (*app.App, error) {
	log := logger.NewNop()
	if flagVerbose {
		log = app.NewLogger(cfg)
	}
	return app.New(cfg, log)
}
