package redact

import (
	"strings"
	"unicode/utf8"
)

// MaskValue returns a preview of a matched secret that keeps only the first
// and last two characters. Values too short to mask safely are fully starred.
func MaskValue(s string) string {
	if len(s) <= 6 {
		return strings.Repeat("*", len(s))
	}
	return s[:2] + strings.Repeat("*", len(s)-4) + s[len(s)-2:]
}

// Shape rewrites a value into its punctuation skeleton: letters become 'x',
// digits become '9', everything else is kept. Length is preserved, so the
// result identifies a secret across cosmetic edits without retaining it.
func Shape(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			b.WriteByte('9')
		case (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z'):
			b.WriteByte('x')
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// ContextPreview masks any occurrence of the matched value inside its context
// window and truncates the result. The preview is safe to persist.
func ContextPreview(ctx, match string, max int) string {
	out := ctx
	if match != "" {
		out = strings.ReplaceAll(out, match, MaskValue(match))
	}
	out = strings.TrimSpace(out)
	if max > 0 && len(out) > max {
		// back off to a rune boundary so the cut never splits UTF-8
		cut := max
		for cut > 0 && !utf8.RuneStart(out[cut]) {
			cut--
		}
		out = out[:cut] + "…"
	}
	return out
}
