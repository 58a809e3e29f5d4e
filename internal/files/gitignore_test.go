package files

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAppendIgnore_IdempotentAndCreates(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, ".gitignore")
	if err := AppendIgnore(dir, "dist/"); err != nil {
		t.Fatalf("AppendIgnore: %v", err)
	}
	b, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(b) != "dist/\n" {
		t.Fatalf("unexpected content: %q", string(b))
	}
	if err := AppendIgnore(dir, "dist/"); err != nil {
		t.Fatalf("AppendIgnore second: %v", err)
	}
	b2, _ := os.ReadFile(p)
	if strings.Count(string(b2), "dist/") != 1 {
		t.Fatalf("expected single occurrence, got: %q", string(b2))
	}
}

func TestEnsureStateIgnored(t *testing.T) {
	dir := t.TempDir()
	if err := EnsureStateIgnored(dir); err != nil {
		t.Fatalf("EnsureStateIgnored: %v", err)
	}
	b, _ := os.ReadFile(filepath.Join(dir, ".gitignore"))
	for _, p := range StatePatterns() {
		if !strings.Contains(string(b), p) {
			t.Fatalf("missing %q in .gitignore: %q", p, string(b))
		}
	}
}
