package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/saransh1220/background-erase/internal/modules/filestorage"
	"github.com/saransh1220/background-erase/internal/modules/removal"
	"github.com/saransh1220/background-erase/internal/modules/removal/application"
	"github.com/saransh1220/background-erase/internal/modules/removal/domain"
	"github.com/saransh1220/background-erase/internal/shared/infrastructure/config"
	"github.com/saransh1220/background-erase/internal/shared/infrastructure/metrics"
	"github.com/saransh1220/background-erase/internal/shared/logging"
)

const (
	defaultInput  = "./input.jpg"
	defaultOutput = "./output.png"
)

// usageError marks errors caused by how the program was invoked.
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

// run is main without the process: it reads flags from args, configuration
// through getenv and reports on stdout/stderr.
//
// A non-200 answer from the API is logged and run still returns nil.
func run(ctx context.Context, args []string, getenv func(string) string, stdout, stderr io.Writer) error {
	cfg := config.LoadFrom(getenv)

	flags := flag.NewFlagSet(args[0], flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() {
		fmt.Fprintf(stderr, "Usage: %s [flags] [SOURCE [DEST]]\n\n", flags.Name())
		fmt.Fprintln(stderr, "Removes the background of SOURCE and writes the result to DEST")
		fmt.Fprintln(stderr, "(a file path or s3://bucket/key).")
		fmt.Fprintln(stderr)
		flags.PrintDefaults()
	}

	in := flags.String("in", defaultInput, "Path to input image")
	out := flags.String("out", defaultOutput, "Path or s3://bucket/key to save output image")
	preview := flags.String("preview", "", "Also write a 500x500 PNG preview to this path")
	flags.StringVar(&cfg.API.Key, "key", cfg.API.Key, "API key (or set BACKGROUND_ERASE_API_KEY)")
	flags.StringVar(&cfg.API.Endpoint, "endpoint", cfg.API.Endpoint, "Background removal API endpoint")
	flags.DurationVar(&cfg.API.Timeout, "timeout", cfg.API.Timeout, "HTTP timeout for the API call")
	flags.StringVar(&cfg.Redis.Addr, "cache", cfg.Redis.Addr, "Redis address (host:port) for the result cache")
	flags.DurationVar(&cfg.Cache.TTL, "cache-ttl", cfg.Cache.TTL, "How long cached results are kept")
	flags.StringVar(&cfg.Metrics.File, "metrics-file", cfg.Metrics.File, "Write prometheus metrics to this textfile")
	flags.StringVar(&cfg.Log.Level, "log-level", cfg.Log.Level, "Log level: debug, info, warn, error")
	flags.BoolVar(&cfg.Log.JSON, "log-json", cfg.Log.JSON, "Log as JSON instead of text")

	if err := flags.Parse(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return &usageError{msg: err.Error()}
	}

	switch rest := flags.Args(); len(rest) {
	case 0:
	case 1:
		*in = rest[0]
	case 2:
		*in, *out = rest[0], rest[1]
	default:
		flags.Usage()
		return &usageError{msg: fmt.Sprintf("expected at most 2 arguments, got %d", len(rest))}
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return &usageError{msg: err.Error()}
	}
	logger := logging.New(stderr, level, cfg.Log.JSON)

	if cfg.API.Key == "" {
		flags.Usage()
		return &usageError{msg: "missing API key: provide -key or set BACKGROUND_ERASE_API_KEY"}
	}
	if cfg.API.Timeout <= 0 {
		return &usageError{msg: "timeout must be positive"}
	}

	// Ctrl+C aborts the in-flight request.
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	m := metrics.New()
	if cfg.Metrics.File != "" {
		defer func() {
			if err := m.WriteTextfile(cfg.Metrics.File); err != nil {
				logger.Warn("metrics not written", "path", cfg.Metrics.File, "error", err)
			}
		}()
	}

	storage, err := filestorage.NewModule(ctx, cfg.FileStorage)
	if err != nil {
		return fmt.Errorf("failed to initialize file storage: %w", err)
	}

	mod, err := removal.NewModule(ctx, cfg, storage.Service(), m, logger)
	if err != nil {
		return &usageError{msg: err.Error()}
	}
	defer mod.Close()

	logger.Debug("configuration loaded",
		"endpoint", mod.Endpoint(),
		"timeout", cfg.API.Timeout,
		"cache", mod.CacheEnabled(),
		"source", *in,
		"dest", *out)

	result, err := mod.Service().Remove(ctx, application.Job{Source: *in, Dest: *out, Preview: *preview})
	if err != nil {
		var remote *domain.RemoteError
		if errors.As(err, &remote) {
			logger.Error("background removal rejected",
				"status", remote.StatusCode,
				"status_text", remote.Status,
				"body", remote.Body)
			return nil
		}
		return err
	}

	logger.Info("background removed",
		"dest", result.Location,
		"bytes", result.Bytes,
		"content_type", result.ContentType,
		"cached", result.Cached)

	fmt.Fprintf(stdout, "Saved: %s\n", result.Location)
	if result.Preview != "" {
		fmt.Fprintf(stdout, "Preview: %s\n", result.Preview)
	}
	return nil
}
