package entropy

import "testing"

func TestScoreRepeatedCharIsZero(t *testing.T) {
	if got := Score("aaaaaaaaaaaaaaaaaaaa"); got != 0 {
		t.Fatalf("expected zero entropy, got %f", got)
	}
	if got := Normalized("aaaaaaaaaaaaaaaaaaaa", Base64Alphabet); got != 0 {
		t.Fatalf("expected zero normalized entropy, got %f", got)
	}
}

func TestNormalizedRandomBase64AboveThreshold(t *testing.T) {
	// 32 chars, all distinct: entropy log2(32)=5, max log2(32)=5
	tok := "AbCdEfGhIjKlMnOpQrStUvWxYz012345"
	n := Normalized(tok, Base64Alphabet)
	if n < 0.75 {
		t.Fatalf("random-looking token should pass 0.75 threshold, got %f", n)
	}
	if n > 1.0 {
		t.Fatalf("normalized entropy must not exceed 1, got %f", n)
	}
}

func TestNormalizedLengthInvariance(t *testing.T) {
	// short low-information tokens must not sneak past the threshold
	if n := Normalized("abab", Base64Alphabet); n >= 0.75 {
		t.Fatalf("alternating pair scored too high: %f", n)
	}
	// long tokens cap at the alphabet size, not at log2(len)
	long := ""
	for i := 0; i < 4; i++ {
		long += "AbCdEfGhIjKlMnOpQrStUvWxYz0123456789+/=-"
	}
	if n := Normalized(long, Base64Alphabet); n < 0.75 {
		t.Fatalf("long random-ish token should stay above threshold, got %f", n)
	}
}

func TestMaxPossibleEdgeCases(t *testing.T) {
	if MaxPossible("", Base64Alphabet) != 0 {
		t.Fatal("empty string has no entropy headroom")
	}
	if MaxPossible("a", Base64Alphabet) != 0 {
		t.Fatal("single char has no entropy headroom")
	}
	if got := MaxPossible("0123456789abcdef", HexAlphabet); got != 4 {
		t.Fatalf("hex alphabet caps at 4 bits, got %f", got)
	}
}
