package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/leakmon/leakmon/internal/audit"
	"github.com/leakmon/leakmon/internal/config"
	"github.com/leakmon/leakmon/internal/engine"
	"github.com/leakmon/leakmon/internal/report"
)

var (
	flagExclude          string
	flagMaxBytes         int64
	flagDisable          string
	flagEntropyThreshold float64
	flagMinTokenLength   int
	flagContextBytes     int
	flagScanComments     bool
	flagReadTimeout      time.Duration
	flagFailOn           string
	flagNoAudit          bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "scan [paths...]",
		Short: "Scan directory trees for secrets once",
		RunE:  runScan,
	}
	rootCmd.AddCommand(cmd)

	registerScanFlags(cmd)
	cmd.Flags().StringVar(&flagFailOn, "fail-on", "", "exit non-zero when a finding is at least low|medium|high")
}

// buildConfig resolves engine configuration with CLI > local > global
// precedence across the given roots. Local config is read from the first
// root.
func buildConfig(roots []string) engine.Config {
	var gcfg, lcfg config.FileConfig
	if c, err := config.LoadGlobal(); err == nil {
		gcfg = c
	}
	if len(roots) > 0 {
		if c, err := config.LoadLocal(roots[0]); err == nil {
			lcfg = c
		}
	}
	if len(roots) == 0 {
		roots = lcfg.Roots
	}
	if len(roots) == 0 {
		roots = gcfg.Roots
	}

	cfg := engine.Config{
		Roots:            roots,
		ExcludeGlobs:     pickString(flagExclude, lcfg.Exclude, gcfg.Exclude),
		MaxBytes:         pickInt64(flagMaxBytes, lcfg.MaxBytes, gcfg.MaxBytes),
		ReadTimeout:      pickDuration(flagReadTimeout, lcfg.ReadTimeout, gcfg.ReadTimeout),
		DisableDetectors: pickString(flagDisable, lcfg.Disable, gcfg.Disable),
		MinConfidence:    pickFloat(flagMinConfidence, lcfg.MinConfidence, gcfg.MinConfidence),
		EntropyThreshold: pickFloat(flagEntropyThreshold, lcfg.EntropyThreshold, gcfg.EntropyThreshold),
		MinTokenLength:   pickInt(flagMinTokenLength, lcfg.MinTokenLength, gcfg.MinTokenLength),
		ContextBytes:     pickInt(flagContextBytes, lcfg.ContextBytes, gcfg.ContextBytes),
		NoCache:          flagNoCache,
		DefaultExcludes:  flagDefaultExcludes,
	}
	// skip_comments defaults to true; the flag or either config file can
	// opt comment lines into the scan
	cfg.ScanComments = flagScanComments
	if !cfg.ScanComments {
		if lcfg.SkipComments != nil {
			cfg.ScanComments = !*lcfg.SkipComments
		} else if gcfg.SkipComments != nil {
			cfg.ScanComments = !*gcfg.SkipComments
		}
	}
	cfg.TestPathMarkers = lcfg.TestPathMarkers
	if len(cfg.TestPathMarkers) == 0 {
		cfg.TestPathMarkers = gcfg.TestPathMarkers
	}
	cfg.InlineMarkers = lcfg.InlineMarkers
	if len(cfg.InlineMarkers) == 0 {
		cfg.InlineMarkers = gcfg.InlineMarkers
	}
	if !flagNoAudit && len(roots) > 0 {
		if p := pickString("", lcfg.AuditLog, gcfg.AuditLog); p != "" {
			cfg.Sink = audit.NewJSONLSinkAt(p)
		} else {
			cfg.Sink = audit.NewJSONLSink(roots[0])
		}
	}
	return cfg
}

func resolveRoots(args []string) []string {
	if len(args) == 0 {
		args = []string{"."}
	}
	roots := make([]string, 0, len(args))
	for _, a := range args {
		abs, err := filepath.Abs(a)
		if err != nil {
			abs = a
		}
		roots = append(roots, abs)
	}
	return roots
}

func runScan(_ *cobra.Command, args []string) error {
	roots := resolveRoots(args)
	cfg := buildConfig(roots)

	if !flagJSON {
		fmt.Fprintf(os.Stderr, "Scanning %d root(s) with %d detectors...\n", len(cfg.Roots), len(engine.DetectorIDs()))
	}

	started := time.Now()
	eng := engine.New(cfg)
	defer eng.Close()

	if _, err := eng.ScanOnce(context.Background()); err != nil {
		return fmt.Errorf("scan error: %w", err)
	}
	findings := eng.Findings()
	st := eng.Stats()

	if flagJSON {
		if err := report.PrintJSON(os.Stdout, findings); err != nil {
			return err
		}
	} else {
		report.PrintTable(os.Stdout, findings, report.PrintOptions{
			NoColor:      flagNoColor,
			Duration:     time.Since(started),
			FilesScanned: st.FilesScanned,
		})
		if st.DetectorErrors > 0 {
			fmt.Fprintf(os.Stderr, "detector errors: %d\n", st.DetectorErrors)
		}
	}

	if shouldFail(findings, flagFailOn) {
		os.Exit(1)
	}
	return nil
}
