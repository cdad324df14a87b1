package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	datahandler "github.com/stabilefrisur/aa-data-handler"
	"github.com/stabilefrisur/aa-data-handler/internal/config"
	"github.com/stabilefrisur/aa-data-handler/internal/platform"
	"github.com/stabilefrisur/aa-data-handler/pkg/idgen"
)

var (
	verbose    bool
	configPath string
	logFile    string

	cfg config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "aadata",
	Short: "Save and load tables, series, workbooks and charts with a file log",
	Long: `aadata persists tabular data to csv, xlsx or pickle files and charts to png or svg.
Every save is recorded in an append-only file log so files can be loaded back
by name, wildcard pattern or identifier.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if configPath == "" {
			if found, err := platform.FindConfig("."); err == nil {
				configPath = found
			}
		}
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if logFile != "" {
			loaded.LogFile = logFile
		}
		cfg = loaded

		level := parseLevel(cfg.LogLevel)
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file (default: aadata.yaml in this or a parent directory)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Path to the file log (overrides config)")
}

// newHandler wires a handler from the loaded configuration.
func newHandler() (*datahandler.Handler, error) {
	gen, err := idgen.ByName(cfg.IDStrategy)
	if err != nil {
		return nil, err
	}
	return datahandler.New(
		datahandler.WithLogger(slog.Default()),
		datahandler.WithFileLog(cfg.LogFile),
		datahandler.WithTimestampLayout(cfg.TimestampLayout),
		datahandler.WithIDGenerator(gen),
	)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
