package detectors

import (
	"regexp"

	"github.com/leakmon/leakmon/internal/types"
	v "github.com/leakmon/leakmon/internal/validate"
)

var awsAccessKey = Rule{
	ID:       "aws_access_key",
	Kind:     types.KindStructural,
	Severity: types.SevHigh,
	Prior:    0.9,
	re:       regexp.MustCompile(`\b(?:AKIA|ASIA)[0-9A-Z]{16}\b`),
	Checksum: v.LooksLikeAWSAccessKey,
}

// Very broad 40-char base64 shape; only reported when the line carries
// aws/secret context.
var awsSecretKey = Rule{
	ID:       "aws_secret_key",
	Kind:     types.KindStructural,
	Severity: types.SevHigh,
	Prior:    0.9,
	re:       regexp.MustCompile(`(?i)(?:aws_secret_access_key|aws_secret_key|secretKey)["'\s:=]+([A-Za-z0-9/+=]{40})`),
	group:    1,
	Checksum: v.LooksLikeAWSSecretKey,
}
