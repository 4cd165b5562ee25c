// Package cli implements the fluentdb command: one-shot select, insert and
// raw statements against a configured connection profile.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	fluentdb "github.com/biyonik/go-fluent-db"
	"github.com/biyonik/go-fluent-db/dialect"
	"github.com/biyonik/go-fluent-db/internal/config"
	"github.com/biyonik/go-fluent-db/internal/logging"
)

// globalOptions are the persistent flags shared by every subcommand.
type globalOptions struct {
	configPath string
	env        string
	driver     string
	dsn        string
	logLevel   string
	debug      bool
	logArgs    bool
	strict     bool
	format     string
	fetch      string
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "fluentdb",
		Short: "Compose and run named-parameter SQL statements",
		Long: `fluentdb composes SELECT and INSERT statements from flags, binds every value
as a named parameter, and runs them against a MySQL, PostgreSQL or SQLite
connection profile.

The connection comes from a YAML config file (--config, or ./fluentdb.yaml)
with per-environment profiles. FLUENTDB_ENVIRONMENT selects the profile and
FLUENTDB_DB_<FIELD> overrides one of its fields. --driver and --dsn bypass the
config file entirely.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	f := cmd.PersistentFlags()
	f.StringVar(&opts.configPath, "config", "", "Config file (default ./fluentdb.yaml if present)")
	f.StringVarP(&opts.env, "env", "e", "", "Environment profile to use (overrides the config file)")
	f.StringVar(&opts.driver, "driver", "", "Driver for --dsn (mysql, postgres, sqlite)")
	f.StringVar(&opts.dsn, "dsn", "", "Connection string; bypasses the config file")
	f.StringVar(&opts.logLevel, "log-level", "info", "Log level (trace, debug, info, warn, error)")
	f.BoolVar(&opts.debug, "debug", false, "Log every statement")
	f.BoolVar(&opts.logArgs, "log-args", false, "Log parameter values instead of redacting them")
	f.BoolVar(&opts.strict, "strict", false, "Validate table and column names")
	f.StringVarP(&opts.format, "output", "o", string(FormatYAML), "Output format (yaml, json)")
	f.StringVar(&opts.fetch, "fetch", "assoc", "Fetch mode (assoc, num, both)")

	_ = cmd.RegisterFlagCompletionFunc("driver", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return dialect.Names(), cobra.ShellCompDirectiveNoFileComp
	})

	cmd.AddCommand(newSelectCmd(opts))
	cmd.AddCommand(newInsertCmd(opts))
	cmd.AddCommand(newQueryCmd(opts))
	cmd.AddCommand(newExecCmd(opts))
	cmd.AddCommand(newConfigCmd(opts))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("fluentdb version %s\n", fluentdb.Version)
		},
	}
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().ExecuteContext(context.Background())
}

func (o *globalOptions) logger() zerolog.Logger {
	cfg := logging.DefaultConfig()
	cfg.Level = o.logLevel
	if o.debug && cfg.Level == "info" {
		cfg.Level = "debug"
	}
	cfg.Output = os.Stderr
	return logging.NewWithComponent(cfg, "fluentdb")
}

// connectionConfig resolves the profile the command runs against.
func (o *globalOptions) connectionConfig() (*fluentdb.Config, error) {
	settings, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.env != "" {
		return settings.Profile(o.env)
	}
	return settings.Active()
}

func (o *globalOptions) outputFormat() (OutputFormat, error) {
	return parseFormat(o.format)
}

// connect opens the database with the logging and fetch options of o.
func (o *globalOptions) connect(ctx context.Context) (*fluentdb.DB, error) {
	mode, err := fluentdb.ParseFetchMode(o.fetch)
	if err != nil {
		return nil, err
	}

	log := o.logger()
	dbOpts := []fluentdb.Option{
		fluentdb.WithDebug(o.debug),
		fluentdb.WithLogArgs(o.logArgs),
		fluentdb.WithLogger(fluentdb.NewZerologLogger(log)),
		fluentdb.WithFetchMode(mode),
		fluentdb.WithStrictIdentifiers(o.strict),
	}

	if o.dsn != "" {
		if o.driver == "" {
			return nil, fmt.Errorf("--dsn requires --driver")
		}
		profile, err := dialect.Lookup(o.driver)
		if err != nil {
			return nil, err
		}
		return fluentdb.Open(ctx, profile.DriverName(), o.dsn, dbOpts...)
	}

	cfg, err := o.connectionConfig()
	if err != nil {
		return nil, err
	}
	if o.driver != "" {
		cfg.Driver = o.driver
	}
	log.Debug().Str("driver", cfg.Driver).Str("host", cfg.Host).Str("database", cfg.Database).Msg("connecting")
	return fluentdb.Connect(ctx, cfg, dbOpts...)
}
