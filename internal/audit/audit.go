// Package audit persists finding lifecycle transitions as append-only JSONL.
// Records hold only redacted previews; raw secret values never reach a sink.
package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/leakmon/leakmon/internal/gitmeta"
	"github.com/leakmon/leakmon/internal/types"
)

// Record is one audit entry: a finding transition plus enough repository
// context to trace it later.
type Record struct {
	Timestamp time.Time       `json:"timestamp"`
	Kind      types.EventKind `json:"kind"`
	Finding   types.Finding   `json:"finding"`
	Repo      gitmeta.Meta    `json:"repo,omitempty"`
}

// Filter narrows a Query. Zero values match everything.
type Filter struct {
	Since    time.Time
	Until    time.Time
	Detector string
	Path     string // substring match
	Kind     types.EventKind
	Limit    int // 0 means unlimited, applied after filtering, newest first
}

// Sink is where audit records go. Implementations must be safe for
// concurrent Record calls.
type Sink interface {
	Record(Record) error
	Query(Filter) ([]Record, error)
	Close() error
}

// JSONLSink appends records to a newline-delimited JSON file, one object per
// line. The file is owner-readable only.
type JSONLSink struct {
	logPath string
}

// NewJSONLSink places the log under root's .git directory when one exists so
// it cannot be committed, otherwise as a dotfile in root itself.
func NewJSONLSink(root string) *JSONLSink {
	gitDir := filepath.Join(root, ".git")
	logPath := filepath.Join(root, ".leakmon_audit.jsonl")
	if st, err := os.Stat(gitDir); err == nil && st.IsDir() {
		logPath = filepath.Join(gitDir, "leakmon_audit.jsonl")
	}
	return &JSONLSink{logPath: logPath}
}

// NewJSONLSinkAt uses an explicit log path, for the audit_log config override.
func NewJSONLSinkAt(path string) *JSONLSink {
	return &JSONLSink{logPath: path}
}

// Path returns the log file location.
func (s *JSONLSink) Path() string { return s.logPath }

func (s *JSONLSink) Record(rec Record) error {
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}
	f, err := os.OpenFile(s.logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(rec); err != nil {
		return fmt.Errorf("failed to write audit record: %w", err)
	}
	return nil
}

// Query reads the whole log and returns matching records newest first.
// Malformed lines are skipped rather than failing the query; a crash while
// appending can leave a torn last line.
func (s *JSONLSink) Query(fl Filter) ([]Record, error) {
	f, err := os.Open(s.logPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	var out []Record
	dec := json.NewDecoder(f)
	for dec.More() {
		var rec Record
		if err := dec.Decode(&rec); err != nil {
			continue
		}
		if fl.matches(rec) {
			out = append(out, rec)
		}
	}

	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	if fl.Limit > 0 && len(out) > fl.Limit {
		out = out[:fl.Limit]
	}
	return out, nil
}

func (s *JSONLSink) Close() error { return nil }

func (fl Filter) matches(rec Record) bool {
	if !fl.Since.IsZero() && rec.Timestamp.Before(fl.Since) {
		return false
	}
	if !fl.Until.IsZero() && rec.Timestamp.After(fl.Until) {
		return false
	}
	if fl.Detector != "" && rec.Finding.Detector != fl.Detector {
		return false
	}
	if fl.Path != "" && !strings.Contains(rec.Finding.Path, fl.Path) {
		return false
	}
	if fl.Kind != "" && rec.Kind != fl.Kind {
		return false
	}
	return true
}
