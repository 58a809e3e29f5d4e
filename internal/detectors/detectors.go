package detectors

import (
	"bufio"
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/leakmon/leakmon/internal/types"
)

// Rule is one entry of the sealed detector catalog. A rule is either
// structural (fixed regex syntax, optionally gated on a context regex and
// backed by a checksum validator) or statistical (entropy-thresholded token
// extraction handled in entropy.go). Rules are built once at init and never
// mutated; adding a detector is a data addition, not new control flow.
type Rule struct {
	ID       string
	Kind     types.Kind
	Severity types.Severity
	Prior    float64 // base confidence before composition

	re    *regexp.Regexp // structural match
	group int            // submatch index to report (0 = whole match)
	ctxRe *regexp.Regexp // optional: line must also match this

	// Checksum validates the matched value with an auxiliary algorithm
	// (e.g. a check digit). nil means the rule has none.
	Checksum func(string) bool
}

// catalog is the full sealed detector set. Order is the emission order for
// matches on the same line.
var catalog = []Rule{
	awsAccessKey,
	awsSecretKey,
	privateKeyBlock,
	jwtToken,
	githubToken,
	openaiAPIKey,
	stripeSecret,
	slackToken,
	dbURICreds,
	emailAddress,
	phoneNumber,
	ssn,
	creditCard,
}

// Options tunes a registry run. Zero values fall back to defaults.
type Options struct {
	EntropyThreshold float64 // normalized threshold, default 0.75
	MinTokenLength   int     // statistical prefilter, default 20
	ContextBytes     int     // max context window per match, default 160
	ScanComments     bool    // evaluate comment lines too
	Disabled         map[string]bool
}

func (o Options) withDefaults() Options {
	if o.EntropyThreshold <= 0 {
		o.EntropyThreshold = 0.75
	}
	if o.MinTokenLength <= 0 {
		o.MinTokenLength = 20
	}
	if o.ContextBytes <= 0 {
		o.ContextBytes = 160
	}
	return o
}

// Run evaluates the whole catalog against data line by line and returns the
// concatenated raw matches. Overlapping matches from different rules are all
// retained; the confidence composer resolves priority. A rule that fails on
// malformed input is isolated and reported in errs; it never aborts the scan.
func Run(path string, data []byte, opts Options) (out []types.RawMatch, errs []error) {
	opts = opts.withDefaults()
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		txt := sc.Text()
		if !opts.ScanComments && isCommentLine(txt) {
			continue
		}
		for _, r := range catalog {
			if opts.Disabled[r.ID] {
				continue
			}
			ms, err := runStructural(r, path, txt, line, opts)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			out = append(out, ms...)
		}
		if !opts.Disabled[highEntropyID] {
			out = append(out, runStatistical(path, txt, line, opts)...)
		}
	}
	return out, errs
}

// runStructural applies one structural rule to one line. Panics inside the
// rule (pathological input, bad submatch index) are converted to errors so a
// single detector cannot take down the scan.
func runStructural(r Rule, path, txt string, line int, opts Options) (ms []types.RawMatch, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			ms = nil
			err = fmt.Errorf("detector %s: %v", r.ID, rec)
		}
	}()
	if r.ctxRe != nil && !r.ctxRe.MatchString(txt) {
		return nil, nil
	}
	for _, idx := range r.re.FindAllStringSubmatchIndex(txt, -1) {
		s, e := idx[0], idx[1]
		if r.group > 0 {
			s, e = idx[2*r.group], idx[2*r.group+1]
		}
		if s < 0 || e < 0 {
			continue
		}
		ms = append(ms, types.RawMatch{
			Detector: r.ID,
			Kind:     types.KindStructural,
			Severity: r.Severity,
			Path:     path,
			Line:     line,
			ColStart: s,
			ColEnd:   e,
			Text:     txt[s:e],
			Context:  contextWindow(txt, s, e, opts.ContextBytes),
		})
	}
	return ms, nil
}

// contextWindow bounds the text kept around a match. The window stays on the
// match's line; line-by-line scanning keeps line numbers stable.
func contextWindow(txt string, s, e, max int) string {
	if len(txt) <= max {
		return txt
	}
	pad := (max - (e - s)) / 2
	if pad < 0 {
		pad = 0
	}
	lo := s - pad
	if lo < 0 {
		lo = 0
	}
	hi := e + pad
	if hi > len(txt) {
		hi = len(txt)
	}
	return txt[lo:hi]
}

func isCommentLine(txt string) bool {
	t := strings.TrimSpace(txt)
	return t == "" || strings.HasPrefix(t, "#") || strings.HasPrefix(t, "//") || strings.HasPrefix(t, "/*")
}

// IDs lists every detector in the catalog, statistical included.
func IDs() []string {
	ids := make([]string, 0, len(catalog)+1)
	for _, r := range catalog {
		ids = append(ids, r.ID)
	}
	return append(ids, highEntropyID)
}

// ByID returns the catalog entry for a detector ID. The statistical detector
// is exposed here too so the composer can treat the catalog uniformly.
func ByID(id string) (Rule, bool) {
	for _, r := range catalog {
		if r.ID == id {
			return r, true
		}
	}
	if id == highEntropyID {
		return highEntropyRule, true
	}
	return Rule{}, false
}
