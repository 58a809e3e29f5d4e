// Package ignore loads .leakmonignore files: one glob per line, gitignore-ish
// but deliberately simpler (no negation, no anchoring rules).
package ignore

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"
)

// Matcher answers whether a relative path is ignored.
type Matcher struct {
	patterns []string
}

// Load reads patterns from path. A missing file yields an empty matcher and
// no error; monitoring a root without an ignore file is the common case.
func Load(path string) (Matcher, error) {
	var m Matcher
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return m, nil
		}
		return m, err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasSuffix(line, "/") {
			// directory pattern: everything under it
			line = line + "**"
		}
		m.patterns = append(m.patterns, line)
	}
	return m, sc.Err()
}

// Match reports whether rel (forward-slash relative path) is ignored.
func (m Matcher) Match(rel string) bool {
	rel = strings.ReplaceAll(rel, "\\", "/")
	base := filepath.Base(rel)
	for _, p := range m.patterns {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
		if ok, _ := doublestar.Match(p, base); ok {
			return true
		}
		// bare directory names anywhere in the path
		if !strings.ContainsAny(p, "*?[") && strings.Contains(rel, strings.TrimSuffix(p, "/**")+"/") {
			return true
		}
	}
	return false
}

// Patterns exposes the loaded globs, mostly for diagnostics.
func (m Matcher) Patterns() []string { return m.patterns }
