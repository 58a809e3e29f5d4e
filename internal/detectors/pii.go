package detectors

import (
	"regexp"

	"github.com/leakmon/leakmon/internal/types"
	v "github.com/leakmon/leakmon/internal/validate"
)

var emailAddress = Rule{
	ID:       "email",
	Kind:     types.KindStructural,
	Severity: types.SevLow,
	Prior:    0.6,
	re:       regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
}

var phoneNumber = Rule{
	ID:       "phone_number",
	Kind:     types.KindStructural,
	Severity: types.SevLow,
	Prior:    0.6,
	re:       regexp.MustCompile(`\b\d{3}-\d{3}-\d{4}\b|\(\d{3}\)\s*\d{3}-\d{4}`),
}

var ssn = Rule{
	ID:       "ssn",
	Kind:     types.KindStructural,
	Severity: types.SevMed,
	Prior:    0.7,
	re:       regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`),
}

// creditCard matches the major card prefixes; the Luhn check digit is what
// separates a real number from a coincidental digit run, so the composer
// applies it as a bonus/suppression signal rather than a hard filter here.
var creditCard = Rule{
	ID:       "credit_card",
	Kind:     types.KindStructural,
	Severity: types.SevMed,
	Prior:    0.7,
	re:       regexp.MustCompile(`\b(?:4[0-9]{12}(?:[0-9]{3})?|5[1-5][0-9]{14}|3[47][0-9]{13}|6(?:011|5[0-9]{2})[0-9]{12})\b`),
	Checksum: v.LuhnValid,
}
