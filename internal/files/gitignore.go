package files

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// AppendIgnore ensures the given pattern is present in .gitignore at repoRoot.
// It creates the file if missing and appends a newline if needed. Idempotent.
func AppendIgnore(repoRoot, pattern string) error {
	path := filepath.Join(repoRoot, ".gitignore")
	existing := map[string]bool{}
	if f, err := os.Open(path); err == nil {
		sc := bufio.NewScanner(f)
		for sc.Scan() {
			existing[strings.TrimSpace(sc.Text())] = true
		}
		_ = f.Close()
	}
	if existing[pattern] {
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.WriteString(pattern + "\n"); err != nil {
		return err
	}
	return nil
}

// StatePatterns are the monitor's own state files. They hold finding
// metadata and must never be committed.
func StatePatterns() []string {
	return []string{
		".leakmon_audit.jsonl",
		".leakmoncache.json",
	}
}

// EnsureStateIgnored adds every state pattern to repoRoot's .gitignore.
func EnsureStateIgnored(repoRoot string) error {
	for _, p := range StatePatterns() {
		if err := AppendIgnore(repoRoot, p); err != nil {
			return err
		}
	}
	return nil
}
