package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/leakmon/leakmon/internal/engine"
	"github.com/leakmon/leakmon/internal/files"
	"github.com/leakmon/leakmon/internal/gitmeta"
	"github.com/leakmon/leakmon/internal/report"
	"github.com/leakmon/leakmon/internal/tui"
	"github.com/leakmon/leakmon/internal/types"
)

var (
	flagPollInterval time.Duration
	flagTUI          bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "watch [paths...]",
		Short: "Continuously monitor directory trees for secrets",
		Long:  "Runs an initial full scan and then rescans files as they change. Transitions stream to stdout, or to a live dashboard with --tui.",
		RunE:  runWatch,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().DurationVar(&flagPollInterval, "poll", 2*time.Second, "change detection interval")
	cmd.Flags().BoolVar(&flagTUI, "tui", false, "show a live dashboard instead of streaming output")
	registerScanFlags(cmd)
}

// registerScanFlags attaches the shared tuning flags so watch accepts the
// same knobs as scan.
func registerScanFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagExclude, "exclude", "", "comma-separated exclude globs")
	cmd.Flags().Int64Var(&flagMaxBytes, "max-bytes", 0, "skip files larger than this (default 10MiB)")
	cmd.Flags().StringVar(&flagDisable, "disable", "", "disable these detectors (comma-separated IDs)")
	cmd.Flags().Float64Var(&flagEntropyThreshold, "entropy-threshold", 0, "normalized entropy threshold for the statistical detector")
	cmd.Flags().IntVar(&flagMinTokenLength, "min-token-length", 0, "minimum token length for the statistical detector")
	cmd.Flags().IntVar(&flagContextBytes, "context-bytes", 0, "context window kept around a match (default 160)")
	cmd.Flags().BoolVar(&flagScanComments, "scan-comments", false, "also scan comment lines")
	cmd.Flags().DurationVar(&flagReadTimeout, "read-timeout", 0, "per-file read timeout (e.g. 2s)")
	cmd.Flags().BoolVar(&flagNoAudit, "no-audit", false, "do not append transitions to the audit log")
}

func runWatch(_ *cobra.Command, args []string) error {
	roots := resolveRoots(args)
	cfg := buildConfig(roots)

	// keep our state files out of version control
	for _, root := range cfg.Roots {
		if gitmeta.RepoRoot(root) == root {
			_ = files.EnsureStateIgnored(root)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	eng := engine.New(cfg)
	defer eng.Close()
	events, cancel := eng.Subscribe(256)
	defer cancel()

	if !flagTUI {
		fmt.Fprintf(os.Stderr, "Initial scan of %d root(s)...\n", len(cfg.Roots))
	}
	if _, err := eng.ScanOnce(ctx); err != nil {
		return fmt.Errorf("initial scan: %w", err)
	}

	w := eng.Watch(ctx)
	defer w.Stop()

	poller := newPoller(cfg.Roots, w)
	go poller.run(ctx, flagPollInterval)

	if flagTUI {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return fmt.Errorf("--tui requires a terminal")
		}
		return tui.Run(eng.Findings(), events, eng.Stats)
	}

	streamEvents(ctx, events)
	fmt.Fprintln(os.Stderr)
	report.PrintEngineStats(os.Stderr, eng.Stats())
	return nil
}

func streamEvents(ctx context.Context, events <-chan types.Event) {
	enc := json.NewEncoder(os.Stdout)
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if flagJSON {
				_ = enc.Encode(ev)
				continue
			}
			verb := "NEW"
			if ev.Kind == types.EventResolved {
				verb = "RESOLVED"
			}
			fmt.Printf("%s %-8s %-6s %-20s %s:%d  %s\n",
				ev.At.Format("15:04:05"), verb, ev.Finding.Severity,
				ev.Finding.Detector, ev.Finding.Path, ev.Finding.Line,
				ev.Finding.ValuePreview)
		}
	}
}

// poller detects changes by walking mtimes. It is deliberately simple: the
// engine's cache makes redundant notifications cheap, so over-notifying on a
// coarse signal is fine.
type poller struct {
	roots []string
	watch *engine.Watcher
	seen  map[string]time.Time // root-joined rel -> mtime
}

func newPoller(roots []string, w *engine.Watcher) *poller {
	return &poller{roots: roots, watch: w, seen: map[string]time.Time{}}
}

func (p *poller) run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	// prime mtimes so the first tick only reports real changes; the initial
	// scan already covered the existing tree
	p.sweep(nil)

	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			p.sweep(p.watch.Notify)
		}
	}
}

func (p *poller) sweep(notify func(root, rel string)) {
	current := map[string]time.Time{}
	for _, root := range p.roots {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if d.IsDir() {
				if isPollSkippedDir(d.Name()) {
					return filepath.SkipDir
				}
				return nil
			}
			rel, _ := filepath.Rel(root, path)
			info, err := d.Info()
			if err != nil {
				return nil
			}
			key := root + "\x00" + rel
			current[key] = info.ModTime()
			if notify != nil {
				if prev, ok := p.seen[key]; !ok || !prev.Equal(info.ModTime()) {
					notify(root, rel)
				}
			}
			return nil
		})
	}
	if notify != nil {
		// deletions: anything seen before but gone now
		for key := range p.seen {
			if _, ok := current[key]; !ok {
				root, rel, found := splitKey(key)
				if found {
					notify(root, rel)
				}
			}
		}
	}
	p.seen = current
}

func isPollSkippedDir(name string) bool {
	switch name {
	case ".git", "node_modules", "vendor", ".venv", "venv", "__pycache__":
		return true
	}
	return false
}

func splitKey(key string) (root, rel string, ok bool) {
	for i := 0; i < len(key); i++ {
		if key[i] == 0 {
			return key[:i], key[i+1:], true
		}
	}
	return "", "", false
}
