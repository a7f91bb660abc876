// Package main is the entry point for rewindpad, a terminal scratch-pad
// editor that demonstrates the rewind history engine.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"

	"github.com/dshills/rewind/internal/applog"
	"github.com/dshills/rewind/internal/config"
	"github.com/dshills/rewind/internal/ui"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	configPath string
	logLevel   string
	files      []string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}

	// An empty log_file disables logging.
	log := applog.Null
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: open log file: %v\n", err)
			return 1
		}
		defer f.Close()
		log = applog.New(applog.Config{
			Level:  applog.ParseLevel(cfg.LogLevel),
			Output: f,
			Prefix: "rewindpad",
		}).WithField("session", uuid.NewString())
	}
	log.Info("starting %s (commit %s, built %s)", version, commit, date)

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}

	editor, err := ui.New(screen, cfg, log, opts.files)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	// Pick up config edits while running.
	watcher, err := config.Watch(opts.configPath, log, editor.ReloadConfig)
	if err != nil {
		log.Warn("config watch disabled: %v", err)
	} else {
		defer watcher.Close()
	}

	// Handle signals for graceful shutdown
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-signals
		editor.Interrupt()
	}()

	if err := editor.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	log.Info("clean exit")
	return 0
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.configPath, "config", "rewindpad.toml", "Path to configuration file")
	flag.StringVar(&opts.configPath, "c", "rewindpad.toml", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.logLevel, "log-level", "", "Log level override (debug, info, warn, error)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Rewindpad - scratch-pad editor built on the rewind history engine\n\n")
		fmt.Fprintf(os.Stderr, "Usage: rewindpad [options] [files...]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  rewindpad                   Open a scratch pad\n")
		fmt.Fprintf(os.Stderr, "  rewindpad notes.txt         Open a file\n")
		fmt.Fprintf(os.Stderr, "  rewindpad -c pad.toml a b   Open two files with a custom config\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("Rewindpad %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if opts.logLevel != "" {
		switch opts.logLevel {
		case "debug", "info", "warn", "error":
			// Valid
		default:
			fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.logLevel)
			os.Exit(1)
		}
	}

	// Remaining arguments are files to open
	opts.files = flag.Args()

	return opts
}
