package cmd

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bandkon/kon/pkg/config"
	"github.com/bandkon/kon/pkg/telemetry"
	"github.com/bandkon/kon/pkg/utils"
)

var (
	// Global flags
	verbose    bool
	configPath string
	cfg        *config.Config
	logger     utils.Logger

	// OTel flags
	otelEnabled bool
	otelAddr    string

	otelShutdown telemetry.ShutdownFunc
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "kon",
	Short: "A band-to-room scheduling tool",
	Long: `kon assigns bands to room/time-slot blocks by permutation search,
subject to member-conflict and availability constraints.

It reads band rosters, availability schedules, and room layouts from CSV
or HTML, searches for valid assignments, and can persist or export the
results it finds.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logLevel := utils.LevelInfo
		if verbose {
			logLevel = utils.LevelDebug
		}
		logger = utils.NewDefaultLogger(logLevel, os.Stdout)

		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded

		if otelEnabled {
			os.Setenv("OTEL_ENABLED", "true")
			if otelAddr != "" {
				os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", otelAddr)
			}
		}

		shutdown, err := telemetry.Init(context.Background())
		if err != nil {
			logger.Warn("Failed to initialize telemetry: %v", err)
		}
		otelShutdown = shutdown
		if telemetry.Enabled() {
			logger.Info("OpenTelemetry tracing enabled")
		}

		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if otelShutdown != nil {
			return otelShutdown(context.Background())
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file")

	// OTel flag group, mirroring the shape of the teacher's --pprof group but
	// toggling telemetry.Init rather than a pprof collector.
	rootCmd.PersistentFlags().BoolVar(&otelEnabled, "otel", false, "Enable OpenTelemetry tracing")
	rootCmd.PersistentFlags().StringVar(&otelAddr, "otel-endpoint", "", "OTLP collector endpoint (overrides OTEL_EXPORTER_OTLP_ENDPOINT)")

	binName := BinName()
	rootCmd.Example = `  # Assign bands to rooms from repeatable flags
  ` + binName + ` assign --band "x/alice,bob" --schedule "x/true,false" --rooms 2,1

  # Assign from CSV/HTML files and export the result
  ` + binName + ` assign --band-csv bands.csv --schedule-csv schedule.csv --room-html rooms.html --export out.csv

  # Inspect past runs
  ` + binName + ` serve --addr :8080

  # Trace a run with OpenTelemetry
  ` + binName + ` assign --otel --band-csv bands.csv --schedule-csv schedule.csv --room-html rooms.html`
}

// GetLogger returns the configured logger.
func GetLogger() utils.Logger {
	return logger
}

// GetConfig returns the loaded configuration.
func GetConfig() *config.Config {
	return cfg
}

// BinName returns the base name of the current executable.
func BinName() string {
	return filepath.Base(os.Args[0])
}
