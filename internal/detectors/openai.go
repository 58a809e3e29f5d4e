package detectors

import (
	"regexp"

	"github.com/leakmon/leakmon/internal/types"
)

var openaiAPIKey = Rule{
	ID:       "openai_api_key",
	Kind:     types.KindStructural,
	Severity: types.SevMed,
	Prior:    0.9,
	re:       regexp.MustCompile(`\bsk-[A-Za-z0-9]{40,64}\b`),
}
