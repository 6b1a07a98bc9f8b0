package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/mmynk/ticketapp/internal/auth"
	"github.com/mmynk/ticketapp/internal/config"
	"github.com/mmynk/ticketapp/internal/metrics"
	"github.com/mmynk/ticketapp/internal/service"
	"github.com/mmynk/ticketapp/internal/storage"
	"github.com/mmynk/ticketapp/internal/storage/memory"
	"github.com/mmynk/ticketapp/internal/storage/sqlite"
	"github.com/mmynk/ticketapp/internal/tickets"
	"github.com/mmynk/ticketapp/pkg/logging"
)

// rootOptions are the persistent flags. A flag only overrides the
// environment when it was set on the command line.
type rootOptions struct {
	dbPath       string
	ephemeral    bool
	logLevel     string
	metricsFile  string
	passwordMode string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "ticketapp",
		Short: "Track support tickets locally",
		Long: `ticketapp keeps users, a login session and tickets in a local store.

Run "ticketapp ui" for the interactive screens, or use the subcommands
to sign up, log in and manage tickets from scripts.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.dbPath, "db", "", "path to the SQLite store (env TICKETAPP_DB_PATH)")
	flags.BoolVar(&opts.ephemeral, "ephemeral", false, "keep state in memory only")
	flags.StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error (env LOG_LEVEL)")
	flags.StringVar(&opts.metricsFile, "metrics-file", "", "write Prometheus metrics to this file on exit")
	flags.StringVar(&opts.passwordMode, "password-mode", "", "plain or bcrypt (env TICKETAPP_PASSWORD_MODE)")

	cmd.AddCommand(
		newSignupCmd(opts),
		newLoginCmd(opts),
		newLogoutCmd(opts),
		newWhoamiCmd(opts),
		newDashboardCmd(opts),
		newTicketsCmd(opts),
		newStorageCmd(opts),
		newUICmd(opts),
	)
	return cmd
}

// config merges the environment with the flags that were set.
func (o *rootOptions) config(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("db") {
		cfg.DBPath = o.dbPath
	}
	if flags.Changed("ephemeral") {
		cfg.Ephemeral = o.ephemeral
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if flags.Changed("metrics-file") {
		cfg.MetricsFile = o.metricsFile
	}
	if flags.Changed("password-mode") {
		cfg.PasswordMode = o.passwordMode
	}
	return cfg, cfg.Validate()
}

// app is everything a command needs, wired from one Config.
type app struct {
	cfg      *config.Config
	store    storage.Store
	logger   *slog.Logger
	registry *prometheus.Registry
	auth     *service.AuthService
	tickets  *service.TicketService
	closers  []io.Closer
}

// openApp wires the store, services and metrics. Logs go to logOut; nil
// means the log file from the config (or nowhere).
func (o *rootOptions) openApp(cmd *cobra.Command, logOut io.Writer) (*app, error) {
	cfg, err := o.config(cmd)
	if err != nil {
		return nil, err
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg}
	switch {
	case logOut != nil:
		a.logger = logging.New(logOut, level)
	case cfg.LogFile != "":
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		a.closers = append(a.closers, f)
		a.logger = logging.New(f, level)
	default:
		a.logger = logging.Discard()
	}

	if cfg.Ephemeral {
		a.store = memory.New()
		a.logger.Debug("Using in-memory storage")
	} else {
		store, err := sqlite.New(cfg.DBPath)
		if err != nil {
			a.closeLogs()
			return nil, err
		}
		a.store = store
		a.logger.Debug("Storage initialized", "database", cfg.DBPath)
	}

	hasher, err := auth.NewHasher(cfg.PasswordMode)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.registry = prometheus.NewRegistry()
	collector := metrics.NewCollector(a.registry)
	sessions := auth.NewSessionStore(a.store)
	users := auth.NewRegistry(a.store, hasher, auth.WithMinPasswordLength(cfg.MinPasswordLength))

	a.auth = service.NewAuthService(users, sessions, collector, a.logger)
	a.tickets = service.NewTicketService(tickets.New(a.store), sessions, collector, a.logger)
	return a, nil
}

// Close writes the metrics file and releases the store.
func (a *app) Close() error {
	var firstErr error
	if a.registry != nil {
		if err := metrics.WriteTextfile(a.cfg.MetricsFile, a.registry); err != nil {
			a.logger.Warn("Failed to write metrics", "error", err)
			firstErr = err
		}
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	a.closeLogs()
	return firstErr
}

func (a *app) closeLogs() {
	for _, c := range a.closers {
		c.Close()
	}
	a.closers = nil
}

// withApp opens the app for one command run and closes it afterwards.
func (o *rootOptions) withApp(run func(cmd *cobra.Command, args []string, a *app) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := o.openApp(cmd, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		runErr := run(cmd, args, a)
		closeErr := a.Close()
		if runErr != nil {
			return runErr
		}
		return closeErr
	}
}
