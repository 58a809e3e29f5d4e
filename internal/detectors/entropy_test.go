package detectors

import "testing"

func TestStatisticalFlagsRandomToken(t *testing.T) {
	data := []byte("token = AbCdEfGhIjKlMnOpQrStUvWxYz012345\n")
	ms, _ := Run("cfg.yml", data, Options{})
	found := false
	for _, m := range ms {
		if m.Detector == "high_entropy_string" {
			found = true
			if m.Kind != "statistical" {
				t.Fatalf("wrong kind: %s", m.Kind)
			}
			if m.Entropy < 0.75 || m.Entropy > 1 {
				t.Fatalf("normalized entropy out of range: %f", m.Entropy)
			}
		}
	}
	if !found {
		t.Fatal("expected statistical match")
	}
}

func TestStatisticalIgnoresLowEntropy(t *testing.T) {
	data := []byte("password = aaaaaaaaaaaaaaaaaaaaaaaa\n")
	ms, _ := Run("cfg.yml", data, Options{})
	for _, m := range ms {
		if m.Detector == "high_entropy_string" {
			t.Fatal("repeated-char token must not be flagged")
		}
	}
}

func TestStatisticalFlagsUnlabeledToken(t *testing.T) {
	// no assignment, no keyword: the token's entropy alone must carry it
	data := []byte("value = Zq8rT3xWv9Lk2NpJ5hYb7GmD4cXs6QfA\nZq8rT3xWv9Lk2NpJ5hYb7GmD4cXs6QfA\n")
	ms, _ := Run("data.txt", data, Options{})
	lines := map[int]bool{}
	for _, m := range ms {
		if m.Detector == "high_entropy_string" {
			lines[m.Line] = true
		}
	}
	if !lines[1] || !lines[2] {
		t.Fatalf("expected statistical matches on both lines, got %v", lines)
	}
}

func TestStatisticalMinLength(t *testing.T) {
	data := []byte("secret = AbCdEfGhIjKlMnOp\n") // 16 chars, below default 20
	ms, _ := Run("cfg.yml", data, Options{})
	for _, m := range ms {
		if m.Detector == "high_entropy_string" {
			t.Fatal("token below minimum length flagged")
		}
	}
}
