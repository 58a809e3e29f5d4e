package core_test

import (
	"fmt"
	"os"

	"github.com/leakmon/leakmon/pkg/core"
)

// ExampleScan demonstrates how to perform a single pass over a directory.
func ExampleScan() {
	cfg := core.Config{
		Roots:           []string{"."},
		MaxBytes:        1024 * 1024, // skip files larger than 1 MiB
		DefaultExcludes: true,
	}

	findings, err := core.Scan(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "scan failed: %v\n", err)
		return
	}

	if len(findings) == 0 {
		fmt.Println("No secrets found.")
	} else {
		fmt.Printf("Found %d secrets.\n", len(findings))
		_ = core.MarshalFindings(os.Stdout, findings)
	}
}
