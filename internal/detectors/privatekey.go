package detectors

import (
	"regexp"

	"github.com/leakmon/leakmon/internal/types"
)

var privateKeyBlock = Rule{
	ID:       "private_key_block",
	Kind:     types.KindStructural,
	Severity: types.SevHigh,
	Prior:    0.95,
	re:       regexp.MustCompile(`-----BEGIN (?:RSA |EC |OPENSSH |DSA |PGP )?PRIVATE KEY(?: BLOCK)?-----`),
}
