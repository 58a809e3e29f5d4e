package detectors

import (
	"regexp"

	"github.com/leakmon/leakmon/internal/types"
)

// Credentials embedded in database connection URIs. The password submatch is
// what gets fingerprinted and masked, not the whole URI.
var dbURICreds = Rule{
	ID:       "db_uri_creds",
	Kind:     types.KindStructural,
	Severity: types.SevMed,
	Prior:    0.9,
	re:       regexp.MustCompile(`\b(?:mysql|postgres(?:ql)?|mongodb(?:\+srv)?)://[^:/\s]+:([^@\s]+)@[^/\s]+`),
	group:    1,
}
