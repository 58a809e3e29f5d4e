package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagJSON            bool
	flagNoColor         bool
	flagMinConfidence   float64
	flagNoCache         bool
	flagDefaultExcludes bool

	version = "0.1.0"
)

// rootCmd is the base Cobra command for the LeakMon CLI.
var rootCmd = &cobra.Command{
	Use:           "leakmon",
	Short:         "Monitor directories for leaked secrets and PII",
	Long:          "LeakMon scans directory trees for credentials and PII, deduplicates findings across rescans, and records every new or resolved finding in an audit log.",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the LeakMon CLI. It should be called by the main package.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "emit JSON")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colorized output")
	rootCmd.PersistentFlags().Float64Var(&flagMinConfidence, "min-confidence", 0.0, "suppress findings with confidence < value (0-1)")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "disable the unchanged-content cache")
	rootCmd.PersistentFlags().BoolVar(&flagDefaultExcludes, "default-excludes", true, "apply built-in exclude list (node_modules, dist, images, etc.)")
}
