package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/joshuapare/mediakit/internal/logger"
)

var (
	// Global flags
	verbose bool
	quiet   bool
	jsonOut bool
	logDir  string
	envFile string
)

// envFlags maps flag names to the environment variables that seed them.
// An explicitly set flag always wins.
var envFlags = map[string]string{
	"out":        "MEDIACTL_OUT",
	"capacity":   "MEDIACTL_CAPACITY",
	"threshold":  "MEDIACTL_THRESHOLD",
	"image-size": "MEDIACTL_IMAGE_SIZE",
	"policy":     "MEDIACTL_POLICY",
	"ledger":     "MEDIACTL_LEDGER",
	"log-dir":    "MEDIACTL_LOG_DIR",
}

var rootCmd = &cobra.Command{
	Use:   "mediactl",
	Short: "Pack playlists onto fixed-size media images",
	Long: `mediactl allocates the songs of a playlist onto a sequence of media
segments, writing each segment as a fixed-size image file, and inspects the
images it produced.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "", "Write JSON logs to this directory")
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "Load environment defaults from this file if it exists")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		printError("%v\n", err)
		atexit.Exit(1)
	}
	atexit.Exit(0)
}

// setup loads the env file, applies env defaults to unset flags and
// configures logging.
func setup(cmd *cobra.Command, _ []string) error {
	if err := loadEnv(envFile); err != nil {
		return err
	}
	if err := applyEnv(cmd); err != nil {
		return err
	}
	return initLogging()
}

// loadEnv loads path into the environment without overriding variables that
// are already set. A missing file is not an error.
func loadEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// applyEnv sets every flag of cmd that was not given on the command line
// from its environment variable.
func applyEnv(cmd *cobra.Command) error {
	for name, key := range envFlags {
		f := cmd.Flags().Lookup(name)
		if f == nil || f.Changed {
			continue
		}
		val, ok := os.LookupEnv(key)
		if !ok || val == "" {
			continue
		}
		if err := cmd.Flags().Set(name, val); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}
	return nil
}

func initLogging() error {
	opts := logger.Options{Level: slog.LevelInfo}
	switch {
	case logDir != "":
		opts.Enabled = true
		opts.LogDir = logDir
	case verbose && !quiet:
		opts.Enabled = true
		opts.Output = os.Stderr
		opts.Text = true
	}
	if verbose {
		opts.Level = slog.LevelDebug
	}
	if err := logger.Init(opts); err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	atexit.Register(func() { _ = logger.Close() })
	return nil
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...any) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// formatBytes renders a byte count the way info output shows file sizes.
func formatBytes(n int) string {
	switch {
	case n < 1024:
		return fmt.Sprintf("%d bytes", n)
	case n < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(n)/1024)
	default:
		return fmt.Sprintf("%.1f MB", float64(n)/(1024*1024))
	}
}
