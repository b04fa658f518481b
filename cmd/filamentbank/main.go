package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	verbose    bool
	outDir     string
	resolution int
	jobs       int

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "filamentbank",
	Short: "Parametric filament bank generator",
	Long: `filamentbank generates the printable parts of a filament bank
(wheels, bearings, brackets, frames, walls and fasteners) from a YAML or
TOML configuration and exports them as STL files with PNG previews.

Start with "filamentbank init bank.yaml", edit the file and run
"filamentbank build bank.yaml".`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		config.Encoding = "console"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&outDir, "out", "o", "", "Output directory (default: output_dir of each config)")
	rootCmd.PersistentFlags().IntVarP(&resolution, "resolution", "r", 0, "Mesh cells along the longest axis (default: render.resolution of each config)")
	rootCmd.PersistentFlags().IntVarP(&jobs, "jobs", "j", 0, "Parts built in parallel (default: number of CPUs)")

	buildCmd.Flags().StringSliceVarP(&partNames, "part", "p", nil, "Build only the named parts")
	previewCmd.Flags().StringSliceVarP(&partNames, "part", "p", nil, "Build only the named parts")
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(dimsCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(watchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// cmdContext returns the command context, which is nil when a run
// function is called directly.
func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func getLogger() *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
