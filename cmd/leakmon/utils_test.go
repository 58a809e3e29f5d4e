package main

import (
	"testing"
	"time"

	"github.com/leakmon/leakmon/internal/types"
)

func TestShouldFail(t *testing.T) {
	fs := []types.Finding{
		{Severity: types.SevLow},
		{Severity: types.SevMed},
	}
	cases := []struct {
		failOn string
		want   bool
	}{
		{"", false},
		{"never", false},
		{"low", true},
		{"medium", true},
		{"high", false},
	}
	for _, c := range cases {
		if got := shouldFail(fs, c.failOn); got != c.want {
			t.Fatalf("shouldFail(%q)=%v want %v", c.failOn, got, c.want)
		}
	}
	if shouldFail(nil, "low") {
		t.Fatal("no findings must never fail")
	}
}

func TestPickPrecedence(t *testing.T) {
	local, global := "local", "global"
	if got := pickString("cli", &local, &global); got != "cli" {
		t.Fatalf("cli should win, got %q", got)
	}
	if got := pickString("", &local, &global); got != "local" {
		t.Fatalf("local should win over global, got %q", got)
	}
	if got := pickString("", nil, &global); got != "global" {
		t.Fatalf("global should be the fallback, got %q", got)
	}

	l := "2s"
	if got := pickDuration(0, &l, nil); got != 2*time.Second {
		t.Fatalf("duration from config = %v", got)
	}
	if got := pickDuration(time.Second, &l, nil); got != time.Second {
		t.Fatalf("cli duration should win, got %v", got)
	}
	bad := "nope"
	if got := pickDuration(0, &bad, nil); got != 0 {
		t.Fatalf("unparseable duration should fall through, got %v", got)
	}
}

func TestSplitKey(t *testing.T) {
	root, rel, ok := splitKey("/srv/app\x00sub/file.txt")
	if !ok || root != "/srv/app" || rel != "sub/file.txt" {
		t.Fatalf("splitKey = %q %q %v", root, rel, ok)
	}
	if _, _, ok := splitKey("no-separator"); ok {
		t.Fatal("missing separator must not parse")
	}
}
