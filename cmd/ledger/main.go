package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Veraticus/spice-ledger/internal/cli"
	"github.com/Veraticus/spice-ledger/internal/common"
	"github.com/Veraticus/spice-ledger/internal/config"
	"github.com/Veraticus/spice-ledger/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "dev"

// app carries the state shared by every subcommand of one invocation.
type app struct {
	v       *viper.Viper
	cfg     *config.Config
	clock   model.Clock
	cfgFile string
}

// newRootCmd builds the command tree. clock stamps transactions added by any
// subcommand.
func newRootCmd(clock model.Clock) *cobra.Command {
	a := &app{
		v:     viper.New(),
		clock: clock,
	}

	rootCmd := &cobra.Command{
		Use:   "ledger",
		Short: "🌶️  Personal income and expense ledger",
		Long: `ledger: record income and expenses, browse and filter them, and see where
the money went.

Transactions are kept in a plain text file (or a SQLite database) and are only
written back when you save.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.initConfig,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default: $HOME/.config/spice-ledger/config.yaml)")
	flags.String("store", "", "transaction store path (default: transactions.txt, or transactions.db for sqlite)")
	flags.String("backend", config.BackendFile, "store backend (file, sqlite)")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "console", "log format (console, json)")

	_ = a.v.BindPFlag("store.path", flags.Lookup("store"))
	_ = a.v.BindPFlag("store.backend", flags.Lookup("backend"))
	_ = a.v.BindPFlag("logging.level", flags.Lookup("log-level"))
	_ = a.v.BindPFlag("logging.format", flags.Lookup("log-format"))

	rootCmd.AddCommand(a.addCmd())
	rootCmd.AddCommand(a.listCmd())
	rootCmd.AddCommand(a.filterCmd())
	rootCmd.AddCommand(a.summaryCmd())
	rootCmd.AddCommand(a.menuCmd())
	rootCmd.AddCommand(a.browseCmd())
	rootCmd.AddCommand(a.importOFXCmd())
	rootCmd.AddCommand(a.chartCmd())
	rootCmd.AddCommand(a.exportSheetsCmd())
	rootCmd.AddCommand(versionCmd())

	return rootCmd
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		slog.Debug("Received interrupt signal, shutting down")
		cancel()
	}()

	err := newRootCmd(model.SystemClock{}).ExecuteContext(ctx)
	cancel()

	if err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(err.Error()))
		os.Exit(1)
	}
}

func (a *app) initConfig(cmd *cobra.Command, _ []string) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	if a.cfgFile != "" {
		a.v.SetConfigFile(config.ExpandPath(a.cfgFile))
	} else {
		a.v.AddConfigPath(config.DefaultConfigDir())
		a.v.AddConfigPath(".")
		a.v.SetConfigName("config")
		a.v.SetConfigType("yaml")
	}

	config.BindEnv(a.v)
	config.SetDefaults(a.v)

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg, err := config.Load(a.v)
	if err != nil {
		return common.NewUserError("Invalid configuration", err)
	}

	if err := common.SetupLogger(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	a.cfg = cfg
	slog.Debug("Configuration loaded",
		"config_file", a.v.ConfigFileUsed(),
		"backend", cfg.Store.Backend,
		"store", cfg.Store.Path)

	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ledger version %s\n", version)
		},
	}
}
