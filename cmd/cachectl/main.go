// Command cachectl inspects and manages a kvcache store.
//
//	cachectl [--config file] [--log-level level] <command> [args]
//
// Commands:
//
//	stats                       entry counts per resource class
//	clear [pattern]             remove every entry, or those matching pattern (cache:posts:)
//	invalidate <class> [param]  remove entries of class whose params start with param
//	get <key>                   print the fresh value stored under key (cache:post:123)
//	demo                        run a read/write/invalidate cycle against an in-memory backend
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	flagSet := pflag.NewFlagSet("cachectl", pflag.ContinueOnError)
	configPath := flagSet.String("config", "", "path to a YAML config file")
	logLevel := flagSet.String("log-level", "", "log level (debug, info, warn, error), overrides log_level from the config")

	flagSet.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: cachectl [flags] <stats|clear|invalidate|get|demo> [args]\n")
		flagSet.PrintDefaults()
	}

	if err := flagSet.Parse(args); err != nil {
		return err
	}
	if flagSet.NArg() == 0 {
		flagSet.Usage()
		return errMissingCommand
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	level := cfg.LogLevel
	if *logLevel != "" {
		level = *logLevel
	}
	logger, err := newLogger(level)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	app, err := newApp(ctx, cfg.Config, logger, stdout)
	if err != nil {
		return err
	}
	defer app.close()

	return app.dispatch(ctx, flagSet.Arg(0), flagSet.Args()[1:])
}

func newLogger(level string) (*zap.Logger, error) {
	if level == "" {
		level = defaultLogLevel
	}
	atomic, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = atomic
	cfg.OutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true
	return cfg.Build()
}
