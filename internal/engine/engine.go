package engine

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	doublestar "github.com/bmatcuk/doublestar/v4"
	xxhash "github.com/cespare/xxhash/v2"
	"github.com/gabriel-vasile/mimetype"

	"github.com/leakmon/leakmon/internal/audit"
	"github.com/leakmon/leakmon/internal/cache"
	"github.com/leakmon/leakmon/internal/compose"
	"github.com/leakmon/leakmon/internal/dedupe"
	"github.com/leakmon/leakmon/internal/detectors"
	"github.com/leakmon/leakmon/internal/gitmeta"
	"github.com/leakmon/leakmon/internal/ignore"
	"github.com/leakmon/leakmon/internal/types"
)

// Config controls orchestrator behavior: scope, exclusion policy, detector
// tuning, and where events go.
type Config struct {
	Roots        []string
	ExcludeGlobs string // comma-separated, subtracted from everything else
	MaxBytes     int64  // files strictly larger are skipped; default 10 MiB
	ReadTimeout  time.Duration

	DisableDetectors string // comma-separated detector IDs
	MinConfidence    float64
	EntropyThreshold float64
	MinTokenLength   int
	ContextBytes     int
	ScanComments     bool
	TestPathMarkers  []string
	InlineMarkers    []string

	DefaultExcludes bool
	NoCache         bool

	// Sink receives an audit record per finding transition. nil disables
	// auditing.
	Sink audit.Sink
}

const defaultMaxBytes = 10 * 1024 * 1024

func (c Config) withDefaults() Config {
	if c.MaxBytes <= 0 {
		c.MaxBytes = defaultMaxBytes
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = 5 * time.Second
	}
	return c
}

// Stats is a point-in-time snapshot of orchestrator counters.
type Stats struct {
	FilesScanned   uint64
	FilesSkipped   uint64
	DetectorErrors uint64
	Coalesced      uint64
	DroppedEvents  uint64
	DroppedAudit   uint64
	ActiveFindings int
}

// Engine drives the scan pipeline for a set of monitored roots: exclusion
// policy, bounded read, detection, confidence composition, deduplication,
// and event fan-out. A detector or I/O failure on one file never aborts the
// rest of the pass.
type Engine struct {
	cfg      Config
	detOpts  detectors.Options
	compOpts compose.Options
	excludes []string

	mu     sync.Mutex // guards table and caches
	table  *dedupe.Table
	ign    map[string]ignore.Matcher
	caches map[string]*cache.DB
	repo   map[string]gitmeta.Meta

	rec *audit.Recorder
	bus *eventBus

	filesScanned   atomic.Uint64
	filesSkipped   atomic.Uint64
	detectorErrors atomic.Uint64
	coalesced      atomic.Uint64
}

func New(cfg Config) *Engine {
	cfg = cfg.withDefaults()

	disabled := map[string]bool{}
	for _, id := range strings.Split(cfg.DisableDetectors, ",") {
		if id = strings.TrimSpace(id); id != "" {
			disabled[id] = true
		}
	}

	e := &Engine{
		cfg: cfg,
		detOpts: detectors.Options{
			EntropyThreshold: cfg.EntropyThreshold,
			MinTokenLength:   cfg.MinTokenLength,
			ContextBytes:     cfg.ContextBytes,
			ScanComments:     cfg.ScanComments,
			Disabled:         disabled,
		},
		compOpts: compose.Options{
			MinConfidence:   cfg.MinConfidence,
			TestPathMarkers: cfg.TestPathMarkers,
			InlineMarkers:   cfg.InlineMarkers,
		},
		excludes: parseGlobs(cfg.ExcludeGlobs),
		table:    dedupe.NewTable(),
		ign:      map[string]ignore.Matcher{},
		caches:   map[string]*cache.DB{},
		repo:     map[string]gitmeta.Meta{},
		bus:      newEventBus(),
	}
	if cfg.Sink != nil {
		e.rec = audit.NewRecorder(cfg.Sink, audit.RecorderOptions{})
	}
	for _, root := range cfg.Roots {
		m, _ := ignore.Load(filepath.Join(root, ".leakmonignore"))
		e.ign[root] = m
		e.repo[root] = gitmeta.Discover(root)
		db := cache.DB{Entries: map[string]string{}}
		if !cfg.NoCache {
			if loaded, err := cache.Load(root); err == nil {
				db = loaded
			}
		}
		e.caches[root] = &db
	}
	return e
}

// Subscribe returns a live event channel and a cancel function. Events are
// dropped, not buffered indefinitely, when the subscriber falls behind.
func (e *Engine) Subscribe(buf int) (<-chan types.Event, func()) {
	return e.bus.subscribe(buf)
}

// Stats snapshots the counters.
func (e *Engine) Stats() Stats {
	st := Stats{
		FilesScanned:   e.filesScanned.Load(),
		FilesSkipped:   e.filesSkipped.Load(),
		DetectorErrors: e.detectorErrors.Load(),
		Coalesced:      e.coalesced.Load(),
		DroppedEvents:  e.bus.dropped.Load(),
	}
	if e.rec != nil {
		st.DroppedAudit = e.rec.Dropped()
	}
	e.mu.Lock()
	st.ActiveFindings = e.table.ActiveCount()
	e.mu.Unlock()
	return st
}

// Findings returns the current deduplicated finding set, sorted.
func (e *Engine) Findings() []types.Finding {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.table.Snapshot()
}

// ScanOnce walks every configured root and runs the pipeline over each
// eligible file. It returns per-file results for files that produced
// findings, resolutions, or a skip with a reason.
func (e *Engine) ScanOnce(ctx context.Context) ([]types.ScanResult, error) {
	var out []types.ScanResult
	for _, root := range e.cfg.Roots {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		out = append(out, e.scanRoot(ctx, root)...)
	}
	e.saveCaches()
	return out, nil
}

func (e *Engine) scanRoot(ctx context.Context, root string) []types.ScanResult {
	var out []types.ScanResult
	_ = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if ctx.Err() != nil {
			return filepath.SkipAll
		}
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if e.cfg.DefaultExcludes && isDefaultDirExcluded(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		rel, _ := filepath.Rel(root, p)
		res := e.ScanFile(ctx, root, rel)
		if len(res.Findings) > 0 || len(res.Resolved) > 0 || (res.Skipped && res.Reason != types.SkipExcluded) {
			out = append(out, res)
		}
		return nil
	})
	return out
}

// ScanFile runs the full pipeline for one file, identified by its monitored
// root and root-relative path. It never panics and never returns an error:
// every failure mode degrades to a skip with a reason.
func (e *Engine) ScanFile(ctx context.Context, root, rel string) types.ScanResult {
	rel = filepath.ToSlash(rel)
	skip := func(r types.SkipReason) types.ScanResult {
		e.filesSkipped.Add(1)
		return types.ScanResult{Path: rel, Skipped: true, Reason: r}
	}

	if e.excluded(root, rel) {
		return skip(types.SkipExcluded)
	}

	abs := filepath.Join(root, rel)
	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			// deletion: resolve whatever was active for this path and
			// forget its content hash, so a recreated file with the same
			// bytes is scanned fresh instead of hitting the cache
			e.mu.Lock()
			if db := e.caches[root]; db != nil {
				delete(db.Entries, rel)
			}
			e.mu.Unlock()
			return e.apply(root, rel, nil, nil)
		}
		return skip(types.SkipUnread)
	}
	if !info.Mode().IsRegular() {
		return skip(types.SkipExcluded)
	}
	if info.Size() > e.cfg.MaxBytes {
		return skip(types.SkipOversized)
	}

	data, err := readWithTimeout(ctx, abs, e.cfg.ReadTimeout)
	if err != nil {
		return skip(types.SkipUnread)
	}

	h := contentHash(data)
	if !e.cfg.NoCache {
		e.mu.Lock()
		cached := e.caches[root] != nil && e.caches[root].Entries[rel] == h
		e.mu.Unlock()
		if cached {
			return skip(types.SkipUnchanged)
		}
	}

	if looksBinary(data) {
		return skip(types.SkipBinary)
	}

	matches, errs := detectors.Run(rel, data, e.detOpts)
	e.detectorErrors.Add(uint64(len(errs)))

	kept := matches[:0]
	var confidences []float64
	for _, m := range matches {
		c, suppressed := compose.Compose(m, e.compOpts)
		if suppressed {
			continue
		}
		kept = append(kept, m)
		confidences = append(confidences, c)
	}

	res := e.apply(root, rel, kept, confidences)
	e.filesScanned.Add(1)
	if !e.cfg.NoCache {
		e.mu.Lock()
		if db := e.caches[root]; db != nil {
			db.Entries[rel] = h
		}
		e.mu.Unlock()
	}
	return res
}

// apply runs deduplication under the table lock and fans out the resulting
// transitions.
func (e *Engine) apply(root, rel string, matches []types.RawMatch, confidences []float64) types.ScanResult {
	now := time.Now()
	e.mu.Lock()
	res, events := e.table.Apply(rel, matches, confidences, now)
	meta := e.repo[root]
	e.mu.Unlock()

	for _, ev := range events {
		e.bus.publish(ev)
		if e.rec != nil {
			e.rec.Enqueue(audit.Record{
				Timestamp: ev.At,
				Kind:      ev.Kind,
				Finding:   ev.Finding,
				Repo:      meta,
			})
		}
	}
	return res
}

func (e *Engine) excluded(root, rel string) bool {
	// never scan our own state files (cache, ignore, audit log)
	if strings.HasPrefix(filepath.Base(rel), ".leakmon") {
		return true
	}
	if e.cfg.DefaultExcludes {
		for _, part := range strings.Split(rel, "/") {
			if isDefaultDirExcluded(part) {
				return true
			}
		}
		if isDefaultFileExcluded(strings.ToLower(rel)) {
			return true
		}
	}
	if e.ign[root].Match(rel) {
		return true
	}
	for _, g := range e.excludes {
		if ok, _ := doublestar.Match(g, rel); ok {
			return true
		}
		if ok, _ := doublestar.Match(g, filepath.Base(rel)); ok {
			return true
		}
	}
	return false
}

// Close flushes caches and drains the audit recorder. The engine must not be
// used after Close.
func (e *Engine) Close() error {
	e.saveCaches()
	e.bus.close()
	if e.rec != nil {
		return e.rec.Close()
	}
	return nil
}

func (e *Engine) saveCaches() {
	if e.cfg.NoCache {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	for root, db := range e.caches {
		if db != nil && len(db.Entries) > 0 {
			_ = cache.Save(root, *db)
		}
	}
}

// readWithTimeout bounds how long a single file read may take. A hung read
// (network filesystem, FIFO masquerading as a file) must not stall the
// pipeline.
func readWithTimeout(ctx context.Context, path string, d time.Duration) ([]byte, error) {
	type result struct {
		b   []byte
		err error
	}
	ch := make(chan result, 1)
	go func() {
		b, err := os.ReadFile(path)
		ch <- result{b, err}
	}()

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case r := <-ch:
		return r.b, r.err
	case <-timer.C:
		return nil, context.DeadlineExceeded
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// looksBinary classifies content as non-text via a NUL probe over the first
// 8 KiB plus MIME sniffing of the header.
func looksBinary(b []byte) bool {
	n := len(b)
	if n > 8192 {
		n = 8192
	}
	for i := 0; i < n; i++ {
		if b[i] == 0 {
			return true
		}
	}
	if len(b) == 0 {
		return false
	}
	for mt := mimetype.Detect(b); mt != nil; mt = mt.Parent() {
		if mt.Is("text/plain") {
			return false
		}
	}
	return true
}

func contentHash(b []byte) string {
	if len(b) == 0 {
		return "0000000000000000"
	}
	sum := xxhash.Sum64(b)
	var buf [16]byte
	const hex = "0123456789abcdef"
	for i := 15; i >= 0; i-- {
		buf[i] = hex[sum&0xF]
		sum >>= 4
	}
	return string(buf[:])
}

func parseGlobs(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// DetectorIDs lists the available detector IDs for the CLI.
func DetectorIDs() []string { return detectors.IDs() }
