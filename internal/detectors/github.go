package detectors

import (
	"regexp"

	"github.com/leakmon/leakmon/internal/types"
)

var githubToken = Rule{
	ID:       "github_token",
	Kind:     types.KindStructural,
	Severity: types.SevMed,
	Prior:    0.9,
	re:       regexp.MustCompile(`\bgh[pousr]_[A-Za-z0-9]{36}\b`),
}
