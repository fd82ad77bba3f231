package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"mealsync/internal/bootstrap"
	"mealsync/internal/modules/meals/dto"
	"mealsync/internal/platform/config"
	apperrors "mealsync/internal/platform/errors"
	"mealsync/internal/platform/logging"
	"mealsync/internal/ui/theme"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr, environMap(os.Environ()), nil)
	stop()
	os.Exit(code)
}

// run executes the command line and returns the process exit status.
func run(ctx context.Context, args []string, stdout, stderr io.Writer, environ map[string]string, logger *zap.Logger) int {
	root := newRootCmd(environ, logger)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		label := theme.For(lipgloss.NewRenderer(stderr)).Error.Render("ERROR:")
		_, _ = fmt.Fprintln(stderr, label, err)
		return 1
	}
	return 0
}

type rootFlags struct {
	configFile string
	verbose    bool
	overrides  config.Overrides
}

func newRootCmd(environ map[string]string, logger *zap.Logger) *cobra.Command {
	flags := &rootFlags{}
	var date string

	root := &cobra.Command{
		Use:           "mealsync",
		Short:         "Fetch today's eAsistent school menu into meals.json and index.html",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSync(cmd, flags, environ, logger, date)
		},
	}
	root.PersistentFlags().StringVar(&flags.configFile, "config", "", "YAML config file")
	root.PersistentFlags().StringVar(&flags.overrides.Dir, "dir", "", "directory holding meals.json, index.html and .env (default \".\")")
	root.PersistentFlags().StringVar(&flags.overrides.JSONPath, "json", "", "meals JSON output path")
	root.PersistentFlags().StringVar(&flags.overrides.HTMLPath, "html", "", "HTML page with the embedded-meals-data script")
	root.PersistentFlags().StringVar(&flags.overrides.EnvFile, "env-file", "", "KEY=VALUE credentials file")
	root.PersistentFlags().StringVar(&flags.overrides.BaseURL, "base-url", "", "eAsistent API base URL")
	root.PersistentFlags().StringVar(&flags.overrides.LogLevel, "log-level", "", "log level: debug|info|warn|error")
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging")
	root.Flags().StringVar(&date, "date", "", "menu date YYYY-MM-DD (default today)")

	root.AddCommand(newSyncCmd(flags, environ, logger))
	root.AddCommand(newFetchCmd(flags, environ, logger))
	root.AddCommand(newServeCmd(flags, environ, logger))
	return root
}

// loadApp builds the application. Progress output goes to console.
func loadApp(console io.Writer, flags *rootFlags, environ map[string]string, logger *zap.Logger) (*bootstrap.App, error) {
	cfg, err := config.Load(config.Options{File: flags.configFile, Environ: environ, Overrides: flags.overrides})
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger, err = logging.New(cfg.LogLevel, flags.verbose)
		if err != nil {
			return nil, err
		}
	}
	return bootstrap.New(bootstrap.Options{
		Config:  cfg,
		Environ: environ,
		Stdout:  console,
		Logger:  logger,
	})
}

func newSyncCmd(flags *rootFlags, environ map[string]string, logger *zap.Logger) *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Log in, fetch the menu and update both output files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSync(cmd, flags, environ, logger, date)
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "menu date YYYY-MM-DD (default today)")
	return cmd
}

func runSync(cmd *cobra.Command, flags *rootFlags, environ map[string]string, logger *zap.Logger, date string) error {
	app, err := loadApp(cmd.OutOrStdout(), flags, environ, logger)
	if err != nil {
		return err
	}
	defer func() { _ = app.Logger.Sync() }()

	app.Console.Banner("Easistent.com Meals Data Fetcher")
	app.Console.Line("")
	out, err := app.MealsCLI.Sync(cmd.Context(), date)
	if err != nil {
		return describeFailure(err)
	}
	app.Console.Line("")
	app.Console.Banner("All updates completed successfully!")
	printSummary(app, out.Summary)
	return nil
}

// describeFailure prefixes login and fetch errors; anything else already
// says what went wrong.
func describeFailure(err error) error {
	if errors.Is(err, apperrors.ErrLoginFailed) || errors.Is(err, apperrors.ErrFetchFailed) {
		return fmt.Errorf("failed to fetch meals data: %w", err)
	}
	return err
}

func printSummary(app *bootstrap.App, summary dto.SummaryOutput) {
	if !summary.HasItems {
		return
	}
	date := summary.Date
	if strings.TrimSpace(date) == "" {
		date = "N/A"
	}
	app.Console.Line("")
	app.Console.Line("Date: %s", date)
	for _, menu := range summary.Menus {
		app.Console.Line("  %s: %d item(s)", menu.Type, menu.Count)
	}
}

func newFetchCmd(flags *rootFlags, environ map[string]string, logger *zap.Logger) *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Print the menu JSON to stdout without touching meals.json or index.html",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd.ErrOrStderr(), flags, environ, logger)
			if err != nil {
				return err
			}
			defer func() { _ = app.Logger.Sync() }()
			out, err := app.MealsCLI.Fetch(cmd.Context(), date)
			if err != nil {
				return describeFailure(err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out.Document))
			return err
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "menu date YYYY-MM-DD (default today)")
	return cmd
}

func newServeCmd(flags *rootFlags, environ map[string]string, logger *zap.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the site and refresh meals on GET /api/meals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd.OutOrStdout(), flags, environ, logger)
			if err != nil {
				return err
			}
			defer func() { _ = app.Logger.Sync() }()
			app.Console.Line("Server running at %s", app.Config.ListenAddr)
			app.Console.Line("Meals endpoint: %s/api/meals", app.Config.ListenAddr)
			app.Console.Line("Meals JSON save path: %s", app.Config.JSONPath)
			return app.NewServer().Run(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&flags.overrides.ListenAddr, "addr", "", "listen address (default \":3000\")")
	return cmd
}

func environMap(environ []string) map[string]string {
	out := make(map[string]string, len(environ))
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		out[key] = value
	}
	return out
}
