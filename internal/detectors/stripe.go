package detectors

import (
	"regexp"

	"github.com/leakmon/leakmon/internal/types"
)

var stripeSecret = Rule{
	ID:       "stripe_secret",
	Kind:     types.KindStructural,
	Severity: types.SevMed,
	Prior:    0.9,
	re:       regexp.MustCompile(`\bsk_live_[A-Za-z0-9]{24,}\b`),
}
