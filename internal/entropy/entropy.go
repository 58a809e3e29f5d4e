// Package entropy scores token randomness for the statistical detectors.
// All functions are pure; thresholds live in the caller's configuration.
package entropy

import "math"

// Score computes Shannon entropy over the byte distribution of s, in bits.
// The result lies in [0, log2(alphabet size)].
func Score(s string) float64 {
	if s == "" {
		return 0
	}
	var count [256]int
	for i := 0; i < len(s); i++ {
		count[s[i]]++
	}
	h := 0.0
	n := float64(len(s))
	for _, c := range count {
		if c == 0 {
			continue
		}
		p := float64(c) / n
		h += -p * math.Log2(p)
	}
	return h
}

// MaxPossible is the highest entropy a string of this length drawn from an
// alphabet of the given size can reach: log2 of the number of distinct
// symbols it could actually hold. Normalizing by it makes a single threshold
// usable across token lengths, where an absolute cutoff would over-flag long
// strings and under-flag short ones.
func MaxPossible(s string, alphabet int) float64 {
	n := len(s)
	if n <= 1 || alphabet <= 1 {
		return 0
	}
	if n < alphabet {
		return math.Log2(float64(n))
	}
	return math.Log2(float64(alphabet))
}

// Normalized returns Score/MaxPossible clamped to [0,1].
func Normalized(s string, alphabet int) float64 {
	max := MaxPossible(s, alphabet)
	if max == 0 {
		return 0
	}
	r := Score(s) / max
	if r > 1 {
		r = 1
	}
	return r
}

// Base64Alphabet and HexAlphabet are the symbol-set sizes used by the
// statistical token prefilters.
const (
	Base64Alphabet = 64
	HexAlphabet    = 16
)
