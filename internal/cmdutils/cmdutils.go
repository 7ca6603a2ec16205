package cmdutils

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	slogctx "github.com/veqryn/slog-context"

	"github.com/erikrubstein/monarch-api/internal/config"
)

func CobraCommand(
	use, short, long, buildInfo string,
	wrapperFunc func(context.Context, func(context.Context, *config.Config) error, *config.Config) error,
	businesFunc func(context.Context, *config.Config) error,
) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Long:  long,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(buildInfo)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			err = wrapperFunc(cmd.Context(), businesFunc, cfg)
			if err != nil {
				return fmt.Errorf("running the command: %w", err)
			}

			return nil
		},
	}
}

func RunAsJob(ctx context.Context, fn func(context.Context, *config.Config) error, cfg *config.Config) error {
	return run(ctx, fn, cfg)
}

func run(ctx context.Context, fn func(context.Context, *config.Config) error, cfg *config.Config) error {
	// LoggerConfig
	err := initLogger(cfg.Logger)
	if err != nil {
		return oops.In("main").
			Wrapf(err, "Failed to initialise the logger")
	}
	slogctx.Debug(ctx, "Starting the application", slog.Any("config", cfg))

	// Business Logic
	err = fn(ctx, cfg)
	if err != nil {
		return oops.In("main").Wrapf(err, "Failed to run the main business logic")
	}

	return nil
}

func loadConfig(buildInfo string) (*config.Config, error) {
	cfg, err := config.LoadConfig(
		"/etc/monarch",
		"$HOME/.monarch",
		".",
	)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	cfg.Version = buildInfo

	return cfg, nil
}

// initLogger installs the default slog logger described by the
// configuration. Logs go to stderr so command output on stdout stays
// machine readable.
func initLogger(cfg config.Logger) error {
	var level slog.Level

	err := level.UnmarshalText([]byte(cfg.Level))
	if err != nil {
		return fmt.Errorf("parsing log level %q: %w", cfg.Level, err)
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler

	switch cfg.Format {
	case "json":
		handler = slog.NewJSONHandler(os.Stderr, opts)
	case "text":
		handler = slog.NewTextHandler(os.Stderr, opts)
	default:
		return fmt.Errorf("unknown log format %q", cfg.Format)
	}

	slog.SetDefault(slog.New(slogctx.NewHandler(handler, nil)))

	return nil
}
