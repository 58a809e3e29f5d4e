package detectors

import (
	"regexp"

	"github.com/leakmon/leakmon/internal/types"
	v "github.com/leakmon/leakmon/internal/validate"
)

var jwtToken = Rule{
	ID:       "jwt_token",
	Kind:     types.KindStructural,
	Severity: types.SevHigh,
	Prior:    0.85,
	re:       regexp.MustCompile(`\beyJ[A-Za-z0-9_-]+\.eyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]*`),
	Checksum: v.IsJWTStructure,
}
