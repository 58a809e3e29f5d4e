package detectors

import (
	"regexp"

	"github.com/leakmon/leakmon/internal/entropy"
	"github.com/leakmon/leakmon/internal/types"
)

const highEntropyID = "high_entropy_string"

// highEntropyRule is the statistical member of the catalog. It has no regex
// of its own beyond the token prefilter; runStatistical drives it.
var highEntropyRule = Rule{
	ID:       highEntropyID,
	Kind:     types.KindStatistical,
	Severity: types.SevMed,
	Prior:    0.5,
}

// reCandidateToken extracts syntactically plausible secret-shaped substrings:
// contiguous runs over the base64/hex-like alphabet. Length is enforced
// separately so the minimum stays configurable.
var reCandidateToken = regexp.MustCompile(`[A-Za-z0-9+/=_-]{16,}`)

// runStatistical extracts candidate tokens from one line and keeps those
// whose normalized entropy clears the threshold. The token alone decides:
// a high-entropy string pasted without a label is as leaked as a labeled
// one, so there is no keyword gate. Tokens past 200 chars are skipped;
// those are blobs, not keys.
func runStatistical(path, txt string, line int, opts Options) []types.RawMatch {
	var out []types.RawMatch
	for _, idx := range reCandidateToken.FindAllStringIndex(txt, -1) {
		tok := txt[idx[0]:idx[1]]
		if len(tok) < opts.MinTokenLength || len(tok) > 200 {
			continue
		}
		norm := entropy.Normalized(tok, entropy.Base64Alphabet)
		if norm < opts.EntropyThreshold {
			continue
		}
		out = append(out, types.RawMatch{
			Detector: highEntropyID,
			Kind:     types.KindStatistical,
			Severity: highEntropyRule.Severity,
			Path:     path,
			Line:     line,
			ColStart: idx[0],
			ColEnd:   idx[1],
			Text:     tok,
			Context:  contextWindow(txt, idx[0], idx[1], opts.ContextBytes),
			Entropy:  norm,
		})
	}
	return out
}
