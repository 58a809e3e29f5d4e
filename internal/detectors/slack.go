package detectors

import (
	"regexp"

	"github.com/leakmon/leakmon/internal/types"
)

var slackToken = Rule{
	ID:       "slack_token",
	Kind:     types.KindStructural,
	Severity: types.SevMed,
	Prior:    0.85,
	re:       regexp.MustCompile(`\bxox[baprs]-[A-Za-z0-9-]{10,}\b`),
}
