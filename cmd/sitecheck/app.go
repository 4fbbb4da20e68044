package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/c360studio/sitecheck/config"
	"github.com/c360studio/sitecheck/report"
	"github.com/c360studio/sitecheck/suite"
	"github.com/c360studio/sitecheck/watch"
)

// errChecksFailed is returned when a pass has a failing required assertion.
var errChecksFailed = errors.New("checks failed")

// options holds the root command flags.
type options struct {
	configPath  string
	logLevel    string
	format      string
	verbose     bool
	metricsFile string
	maxWidth    int
	watch       bool
	debounce    time.Duration
}

func rootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "sitecheck [site-root]",
		Short: "Static site conformance checker",
		Long: `Sitecheck loads a static site's pages, images and project stylesheet
and runs a fixed set of conformance assertions over them:

- head metadata, heading structure and navigation paths
- stylesheet load order and stylesheet rules
- image paths, sizes and declared dimensions
- optional groups for inline SVG, panels, hero, cards, flex and forms

The exit status is 1 when a required assertion fails.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, siteRoot(args), opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Config file path (YAML)")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	cmd.Flags().StringVarP(&opts.format, "format", "f", "text",
		"Report format ("+strings.Join(report.Formats(), ", ")+")")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Include passing assertions in text output")
	cmd.Flags().StringVar(&opts.metricsFile, "metrics-file", "", "Write Prometheus metrics to this textfile")
	cmd.Flags().IntVar(&opts.maxWidth, "max-image-width", 0, "Largest allowed image width in pixels")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "Re-run checks when site files change")
	cmd.Flags().DurationVar(&opts.debounce, "debounce", watch.DefaultDebounceDelay, "Quiet period before a watch re-run")

	gates := config.DefaultConfig().Checks
	for _, name := range gates.FlagNames() {
		cmd.Flags().Bool(checkFlag(name), *gates.Flags()[name], "Enable the "+name+" checks")
	}

	cmd.AddCommand(versionCmd(), imagesCmd(&opts), initCmd(&opts))
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	}
}

func initCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "init [dir]",
		Short: "Write a default " + config.ProjectConfigFile,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			logger := newLogger(opts.logLevel, cmd.ErrOrStderr())
			path, created, err := config.NewLoader(logger).EnsureProjectConfig(dir)
			if err != nil {
				return err
			}
			if created {
				fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s already exists\n", path)
			}
			return nil
		},
	}
}

// checkFlag maps a gate name to its command-line flag.
func checkFlag(name string) string {
	return "check-" + strings.ReplaceAll(name, "_", "-")
}

func siteRoot(args []string) string {
	if len(args) == 1 {
		return args[0]
	}
	return ""
}

// newLogger configures the process logger.
func newLogger(level string, w io.Writer) *slog.Logger {
	lvl := slog.LevelInfo
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)
	return logger
}

// loadConfig layers defaults, config files and changed flags.
func loadConfig(cmd *cobra.Command, root string, opts options, logger *slog.Logger) (*config.Config, error) {
	cfg, err := config.NewLoader(logger).Load(root, opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	flags := cmd.Flags()
	for _, name := range cfg.Checks.FlagNames() {
		flag := checkFlag(name)
		if flags.Lookup(flag) == nil || !flags.Changed(flag) {
			continue
		}
		enabled, err := flags.GetBool(flag)
		if err != nil {
			return nil, err
		}
		if err := cfg.Checks.Set(name, enabled); err != nil {
			return nil, err
		}
	}
	if flags.Changed("format") {
		cfg.Output.Format = opts.format
	}
	if flags.Changed("verbose") {
		cfg.Output.Verbose = opts.verbose
	}
	if flags.Changed("metrics-file") {
		cfg.Output.MetricsFile = opts.metricsFile
	}
	if flags.Changed("max-image-width") {
		cfg.Images.MaxWidth = opts.maxWidth
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func runCheck(cmd *cobra.Command, root string, opts options) error {
	logger := newLogger(opts.logLevel, cmd.ErrOrStderr())

	cfg, err := loadConfig(cmd, root, opts, logger)
	if err != nil {
		return err
	}

	metrics := report.NewMetrics()
	out := cmd.OutOrStdout()

	if !opts.watch {
		r, err := checkOnce(cmd.Context(), cfg, logger, out, metrics)
		if err != nil {
			return err
		}
		if !r.Passed {
			return errChecksFailed
		}
		return nil
	}

	ctx, stop := signal.NotifyContext(contextOrBackground(cmd.Context()), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return watchSite(ctx, cfg, opts.debounce, logger, out, metrics)
}

// checkOnce runs one pass over a fresh snapshot, writes the report and
// records metrics.
func checkOnce(ctx context.Context, cfg *config.Config, logger *slog.Logger, out io.Writer, metrics *report.Metrics) (*suite.Report, error) {
	in, err := suite.Load(cfg, logger)
	if err != nil {
		return nil, err
	}
	r := suite.Run(contextOrBackground(ctx), in)

	if err := report.Write(out, report.Format(cfg.Output.Format), r, report.Options{Verbose: cfg.Output.Verbose}); err != nil {
		return nil, fmt.Errorf("write report: %w", err)
	}

	metrics.Observe(r, in.Images)
	if cfg.Output.MetricsFile != "" {
		if err := metrics.WriteFile(cfg.Output.MetricsFile); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// watchSite runs a pass, then one more after every burst of changes until
// ctx is done. Failed checks never stop the loop.
func watchSite(ctx context.Context, cfg *config.Config, debounce time.Duration, logger *slog.Logger, out io.Writer, metrics *report.Metrics) error {
	if _, err := checkOnce(ctx, cfg, logger, out, metrics); err != nil {
		return err
	}

	w, err := watch.New(watch.Config{
		Root:          cfg.Site.Root,
		DebounceDelay: debounce,
		Logger:        logger,
	}, func(ctx context.Context, changed []string) {
		fmt.Fprintf(out, "\n--- %s changed: %s\n", time.Now().Format(time.TimeOnly), strings.Join(changed, ", "))
		if _, err := checkOnce(ctx, cfg, logger, out, metrics); err != nil {
			logger.Error("check pass failed", slog.String("error", err.Error()))
		}
	})
	if err != nil {
		return err
	}
	return w.Run(ctx)
}

func contextOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
