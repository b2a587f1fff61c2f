// Package cmd implements the urladmin command line.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"go-url-admin/config"
	"go-url-admin/notices"
	"go-url-admin/server"
	"go-url-admin/services"
	"go-url-admin/types"
)

// app holds what the subcommands share once the root command has loaded it.
type app struct {
	configPath string
	envFile    string

	cfg    *config.Config
	logger *zap.Logger
}

// reportedError marks an error the command already showed to the operator.
type reportedError struct{ error }

func (e reportedError) Unwrap() error { return e.error }

// NewRootCmd builds the command tree. A nil logger means a production logger is
// created when a command runs.
func NewRootCmd(logger *zap.Logger) *cobra.Command {
	a := &app{logger: logger}

	root := &cobra.Command{
		Use:   "urladmin",
		Short: "Operator console for a URL shortening service",
		Long: `urladmin submits URLs to a shortening backend, lists the shortened URLs,
and edits or deletes them, either from a browser console (serve) or from the
command line.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.load,
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "path to a YAML config file")
	root.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "dotenv file loaded before the configuration")

	root.AddCommand(
		newServeCmd(a),
		newShortenCmd(a),
		newListCmd(a),
		newUpdateCmd(a),
		newDeleteCmd(a),
	)
	return root
}

// Execute runs the command line and exits non-zero on failure.
func Execute(logger *zap.Logger) {
	root := NewRootCmd(logger)
	if err := root.Execute(); err != nil {
		var reported reportedError
		if !errors.As(err, &reported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func (a *app) load(cmd *cobra.Command, _ []string) error {
	if a.envFile != "" {
		if err := godotenv.Load(a.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", a.envFile, err)
		}
	}

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	if a.logger == nil {
		logger, err := zap.NewProduction()
		if err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}
		a.logger = logger
	}
	return nil
}

// newService creates the URL service for a one-shot command.
func (a *app) newService(ctx context.Context) (services.URLService, *notices.Board, error) {
	backend, err := server.NewBackend(ctx, a.cfg, nil, a.logger)
	if err != nil {
		return nil, nil, err
	}
	board := notices.NewBoard(a.cfg.NoticeTTL)
	return services.NewURLService(backend.Store, board, a.cfg.ListPageSize, a.logger), board, nil
}

// finish prints the notices produced by a command and the table it reloaded.
func (a *app) finish(cmd *cobra.Command, board *notices.Board, table *types.Table, err error) error {
	printNotices(cmd.OutOrStdout(), cmd.ErrOrStderr(), board.Active())
	if table != nil {
		if werr := writeTable(cmd.OutOrStdout(), a.cfg.LinkBase(), *table); werr != nil {
			return werr
		}
	}
	if err != nil {
		return reportedError{err}
	}
	return nil
}
