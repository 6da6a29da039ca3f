package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/balkashynov/devtrack/internal/backing"
	"github.com/balkashynov/devtrack/internal/categorize"
	"github.com/balkashynov/devtrack/internal/config"
	"github.com/balkashynov/devtrack/internal/logger"
	"github.com/balkashynov/devtrack/internal/store"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// app carries what every command needs. The root command fills it in
// before any subcommand runs.
type app struct {
	configPath string

	// openBackend defaults to backing.Open when nil
	openBackend func(context.Context, backing.Config) (backing.Backend, error)

	log         *slog.Logger
	store       *store.Store
	categorizer categorize.Categorizer
	closers     []func() error
}

// NewRootCmd builds the devtrack command tree
func NewRootCmd() *cobra.Command {
	return newRootCmd(&app{})
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "devtrack",
		Short: "A CLI helpdesk ticket and time tracker",
		Long: `devtrack is a command-line tool that combines support tickets with time tracking.
Log tickets, move them through their lifecycle, record the time spent on them
and generate reports, all from the terminal.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if skipsStore(cmd) {
				return nil
			}
			return a.setup(cmd.Context(), cmd.ErrOrStderr())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Config file (default ~/.devtrack/config.yaml)")

	rootCmd.AddCommand(newAddCmd(a))
	rootCmd.AddCommand(newEditCmd(a))
	rootCmd.AddCommand(newListCmd(a))
	rootCmd.AddCommand(newSearchCmd(a))
	rootCmd.AddCommand(newShowCmd(a))
	rootCmd.AddCommand(newStatusCmd(a))
	rootCmd.AddCommand(newStatusShortcutCmds(a)...)
	rootCmd.AddCommand(newLogCmd(a))
	rootCmd.AddCommand(newTrackCmd(a))
	rootCmd.AddCommand(newLogsCmd(a))
	rootCmd.AddCommand(newReportCmd(a))
	rootCmd.AddCommand(newTimesheetCmd(a))
	rootCmd.SetHelpCommand(newHelpCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// setup loads config and opens the store. A store injected beforehand is
// used as is. On failure everything opened so far is closed again; the
// post-run hook does not run after a failed pre-run.
func (a *app) setup(ctx context.Context, stderr io.Writer) (err error) {
	if a.store != nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	defer func() {
		if err != nil {
			err = errors.Join(err, a.close())
		}
	}()

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	log, closeLog, err := logger.New(cfg.Logger)
	if err != nil {
		return fmt.Errorf("failed to open log output: %w", err)
	}
	a.log = log
	a.closers = append(a.closers, closeLog)

	open := a.openBackend
	if open == nil {
		open = backing.Open
	}
	backend, err := open(ctx, cfg.Storage.Backing())
	if err != nil {
		return fmt.Errorf("failed to open %s storage: %w", cfg.Storage.Driver, err)
	}
	a.closers = append(a.closers, backend.Close)

	s := store.New(backend,
		store.WithLogger(log),
		store.WithSeedCount(cfg.Store.SeedCount),
		store.WithUserID(cfg.Store.UserID),
		store.WithStrictTimeLogs(cfg.Store.StrictTimeLogs),
	)
	if err := s.Init(ctx); err != nil && !errors.Is(err, store.ErrPersistence) {
		return err
	} else if err != nil {
		fmt.Fprintf(stderr, "Warning: %v\n", err)
	}
	a.store = s

	if a.categorizer == nil {
		a.categorizer = categorize.NewKeywords()
	}
	return nil
}

func (a *app) close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *app) logger() *slog.Logger {
	if a.log == nil {
		return slog.Default()
	}
	return a.log
}

func skipsStore(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "help", "version", "completion":
		return true
	}
	return false
}

// report prints the outcome of a mutation. A persistence failure is only a
// warning: the change is applied for this session. It returns false when
// the mutation did not happen.
func report(w io.Writer, err error) bool {
	switch {
	case err == nil:
		return true
	case errors.Is(err, store.ErrPersistence):
		fmt.Fprintf(w, "Warning: %v\n", err)
		return true
	default:
		fmt.Fprintf(w, "Error: %v\n", err)
		return false
	}
}

// parseTicketID reads a positive ticket id, accepting an optional leading #
func parseTicketID(s string) (int, error) {
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	id, err := strconv.Atoi(s)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid ticket ID '%s'", s)
	}
	return id, nil
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "devtrack %s (commit %s, built %s)\n", version, commit, date)
		},
	}
}
