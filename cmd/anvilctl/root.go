package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/UniquesKernel/anvil/cmd/anvilctl/logger"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	jsonOut bool
	logDir  string
)

var rootCmd = &cobra.Command{
	Use:   "anvilctl",
	Short: "Drive and inspect the region allocators from the command line",
	Long: `anvilctl exercises the scratch, stack, and pool allocators outside of
Go code: allocate against a scripted trace, watch checkpoints record and
unwind, and run acquire/release cycles against a pool to look for
exhaustion, all without writing a test harness.`,
	Version:           "0.1.0",
	PersistentPreRunE: initLogging,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "emit machine-readable JSON output")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "", "directory for anvilctl's own log file (default ~/.anvilctl/logs)")

	rootCmd.AddCommand(scratchCmd)
	rootCmd.AddCommand(stackCmd)
	rootCmd.AddCommand(poolCmd)
	rootCmd.AddCommand(infoCmd)
}

func initLogging(*cobra.Command, []string) error {
	return logger.Init(logger.Options{
		Enabled: verbose,
		LogDir:  logDir,
		Level:   slog.LevelDebug,
	})
}

func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func printLine(format string, args ...any) {
	fmt.Fprintf(os.Stdout, format+"\n", args...)
}
