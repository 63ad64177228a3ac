// Package main is the entry point for the mdpad markdown editor.
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

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/dshills/mdpad/internal/app"
	"github.com/dshills/mdpad/internal/config"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// options are the command line settings.
type options struct {
	configPath string
	logLevel   string
	logFile    string
	readOnly   bool
	files      []string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts, exit, code := parseFlags(os.Args[1:])
	if exit {
		return code
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	logger, closer, err := openLog(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closer.Close()
	logger.Info("starting", zap.String("version", version), zap.String("theme", cfg.Highlight.Theme))

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize terminal: %v\n", err)
		return 1
	}
	// Ensure the terminal is restored on all exit paths
	defer screen.Fini()

	editor := app.New(screen, cfg, app.WithLogger(logger))
	if len(opts.files) == 0 {
		err = editor.OpenScratch()
	}
	for _, path := range opts.files {
		if err = editor.Open(path); err != nil {
			break
		}
	}
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := editor.Run(ctx); err != nil && !errors.Is(err, app.ErrQuit) {
		screen.Fini()
		logger.Error("exiting", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	logger.Info("exiting")
	return 0
}

// openLog opens the log configured by cfg.
func openLog(cfg *config.Config) (*zap.Logger, io.Closer, error) {
	level, err := cfg.LogLevel()
	if err != nil {
		return nil, nil, fmt.Errorf("log level: %w", err)
	}
	return app.OpenLog(cfg.Log.File, level)
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig(opts options) (*config.Config, error) {
	path := opts.configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	if opts.logFile != "" {
		cfg.Log.File = opts.logFile
	}
	if opts.readOnly {
		cfg.Editor.ReadOnly = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// parseFlags parses args. exit reports that the program should stop with
// code, for -help, -version and flag errors.
func parseFlags(args []string) (opts options, exit bool, code int) {
	fs := flag.NewFlagSet("mdpad", flag.ContinueOnError)
	var showVersion bool

	fs.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	fs.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	fs.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&opts.logFile, "log-file", "", "Write logs to this file")
	fs.BoolVar(&opts.readOnly, "readonly", false, "Open files in read-only mode")
	fs.BoolVar(&opts.readOnly, "R", false, "Open files in read-only mode (shorthand)")
	fs.BoolVar(&showVersion, "version", false, "Show version information")
	fs.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	fs.Usage = func() {
		out := fs.Output()
		fmt.Fprintf(out, "mdpad - terminal markdown editor\n\n")
		fmt.Fprintf(out, "Usage: mdpad [options] [files...]\n\n")
		fmt.Fprintf(out, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(out, "\nExamples:\n")
		fmt.Fprintf(out, "  mdpad                       Open a scratch document\n")
		fmt.Fprintf(out, "  mdpad README.md             Open a file\n")
		fmt.Fprintf(out, "  mdpad -R notes.md           Open a file read-only\n")
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return opts, true, 0
		}
		return opts, true, 2
	}

	if showVersion {
		fmt.Printf("mdpad %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		return opts, true, 0
	}

	opts.files = fs.Args()
	return opts, false, 0
}
