package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/leakmon/leakmon/internal/audit"
	"github.com/leakmon/leakmon/internal/report"
	"github.com/leakmon/leakmon/internal/types"
)

var (
	flagReportSince time.Duration
	flagStatsSince  time.Duration
	flagDetector    string
	flagPathSub     string
	flagKind        string
	flagLimit       int
	flagAuditLog    string
)

func init() {
	reportCmd := &cobra.Command{
		Use:   "report [path]",
		Short: "Show audit log records for a monitored root",
		RunE:  runReport,
	}
	reportCmd.Flags().DurationVar(&flagReportSince, "since", 24*time.Hour, "how far back to look (e.g. 72h)")
	reportCmd.Flags().StringVar(&flagDetector, "detector", "", "filter by detector ID")
	reportCmd.Flags().StringVar(&flagPathSub, "path", "", "filter by path substring")
	reportCmd.Flags().StringVar(&flagKind, "kind", "", "filter by transition kind (new|resolved)")
	reportCmd.Flags().IntVar(&flagLimit, "limit", 50, "max records to show (0 = all)")
	reportCmd.Flags().StringVar(&flagAuditLog, "audit-log", "", "explicit audit log path")
	rootCmd.AddCommand(reportCmd)

	statsCmd := &cobra.Command{
		Use:   "stats [path]",
		Short: "Summarize audit log records for a monitored root",
		RunE:  runStats,
	}
	statsCmd.Flags().DurationVar(&flagStatsSince, "since", 7*24*time.Hour, "how far back to aggregate (e.g. 720h)")
	statsCmd.Flags().StringVar(&flagAuditLog, "audit-log", "", "explicit audit log path")
	rootCmd.AddCommand(statsCmd)
}

func openSink(args []string) *audit.JSONLSink {
	if flagAuditLog != "" {
		return audit.NewJSONLSinkAt(flagAuditLog)
	}
	roots := resolveRoots(args)
	return audit.NewJSONLSink(roots[0])
}

func runReport(_ *cobra.Command, args []string) error {
	sink := openSink(args)
	recs, err := sink.Query(audit.Filter{
		Since:    time.Now().Add(-flagReportSince),
		Detector: flagDetector,
		Path:     flagPathSub,
		Kind:     types.EventKind(flagKind),
		Limit:    flagLimit,
	})
	if err != nil {
		return fmt.Errorf("audit query: %w", err)
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(recs)
	}
	if len(recs) == 0 {
		fmt.Println("No audit records in window.")
		return nil
	}
	for _, r := range recs {
		verb := "NEW"
		if r.Kind == types.EventResolved {
			verb = "RESOLVED"
		}
		fmt.Printf("%s %-8s %-6s %-20s %s:%d  %s\n",
			r.Timestamp.Format("2006-01-02 15:04:05"), verb, r.Finding.Severity,
			r.Finding.Detector, r.Finding.Path, r.Finding.Line, r.Finding.ValuePreview)
	}
	return nil
}

func runStats(_ *cobra.Command, args []string) error {
	sink := openSink(args)
	recs, err := sink.Query(audit.Filter{Since: time.Now().Add(-flagStatsSince)})
	if err != nil {
		return fmt.Errorf("audit query: %w", err)
	}
	st := audit.Summarize(recs)
	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(st)
	}
	report.PrintStats(os.Stdout, st)
	return nil
}
