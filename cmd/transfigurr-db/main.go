// Package main is the transfigurr database bootstrap CLI.
//
// Run it once at program start to make sure the database directory, file,
// tables and first-run default rows exist:
//
//	transfigurr-db                     # same as "init"
//	transfigurr-db init --db path.db
//	transfigurr-db status --format json
package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/transfigurr/transfigurr/internal/config"
	"github.com/transfigurr/transfigurr/internal/data/sqlite"
	"github.com/transfigurr/transfigurr/internal/formatter"
	"github.com/transfigurr/transfigurr/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	if err := newRootCmd(cfg, os.Stdout, os.Stderr).Execute(); err != nil {
		config.Exitf("Error: %v", err)
	}
}

type app struct {
	cfg    config.Config
	dbPath string
	logger *slog.Logger
	out    io.Writer
	errOut io.Writer
}

func newRootCmd(cfg config.Config, out, errOut io.Writer) *cobra.Command {
	a := &app{cfg: cfg, out: out, errOut: errOut}

	root := &cobra.Command{
		Use:           "transfigurr-db",
		Short:         "Create and seed the transfigurr database",
		Long:          "Ensures the database directory, file and tables exist, and fills newly created profiles, settings and system tables with their defaults.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logging.New(a.errOut, a.cfg.LogLevel, a.cfg.LogFormat)
			if err != nil {
				return err
			}
			a.logger = logger
			return nil
		},
		RunE: a.runInit,
	}
	root.SetOut(out)
	root.SetErr(errOut)
	root.PersistentFlags().StringVar(&a.dbPath, "db", cfg.DBPath, "database file path (env TRANSFIGURR_DB_PATH)")

	root.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create missing tables and seed first-run defaults",
		Args:  cobra.NoArgs,
		RunE:  a.runInit,
	})

	var format string
	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show tables and row counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runStatus(cmd, format)
		},
	}
	statusCmd.Flags().StringVarP(&format, "format", "f", "table", "output format: table, json or csv")
	root.AddCommand(statusCmd)

	return root
}

func (a *app) runInit(cmd *cobra.Command, args []string) error {
	rep, err := sqlite.New(a.dbPath, sqlite.WithLogger(a.logger)).Init(cmd.Context())
	if err != nil {
		a.logger.Error("database initialization failed", "path", a.dbPath, "err", err)
		return err
	}
	for _, s := range rep.Seeded {
		fmt.Fprintf(a.out, "Seeded %s: %d rows\n", s.Table, s.Rows)
	}
	fmt.Fprintf(a.out, "Database ready: %s\n", rep.Path)
	return nil
}

func (a *app) runStatus(cmd *cobra.Command, format string) error {
	of, err := formatter.ParseFormat(format)
	if err != nil {
		return err
	}
	if _, err := os.Stat(a.dbPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("database %s does not exist (run init first)", a.dbPath)
		}
		return err
	}
	db, err := sqlite.Open(cmd.Context(), a.dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	st, err := db.Status(cmd.Context())
	if err != nil {
		return err
	}
	out, err := formatter.New().Format(st, of)
	if err != nil {
		return fmt.Errorf("formatting: %w", err)
	}
	fmt.Fprintln(a.out, out)
	return nil
}
