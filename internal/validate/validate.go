package validate

import (
	"encoding/base64"
	"strings"
)

// LengthBetween returns true if len(s) is within [min,max].
func LengthBetween(s string, min, max int) bool {
	n := len(s)
	return n >= min && n <= max
}

// IsAlphabet returns true if all characters in s are in allowed set.
func IsAlphabet(s, allowed string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !strings.ContainsRune(allowed, rune(s[i])) {
			return false
		}
	}
	return true
}

// IsBase64URLNoPad reports whether s is valid base64url (no padding) for JWT segments.
func IsBase64URLNoPad(s string) bool {
	if s == "" {
		return false
	}
	_, err := base64.RawURLEncoding.DecodeString(s)
	return err == nil
}

// LooksLikeAWSAccessKey checks for AKIA/ASIA + 16 uppercase alnum.
func LooksLikeAWSAccessKey(s string) bool {
	if !(strings.HasPrefix(s, "AKIA") || strings.HasPrefix(s, "ASIA")) {
		return false
	}
	if len(s) != 20 {
		return false
	}
	const upperAlnum = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	return IsAlphabet(s[4:], upperAlnum)
}

// LooksLikeAWSSecretKey checks base64-like alphabet and exact length 40.
func LooksLikeAWSSecretKey(s string) bool {
	if len(s) != 40 {
		return false
	}
	const b64like = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789+/="
	return IsAlphabet(s, b64like)
}

// IsJWTStructure verifies 3 segments base64url-decodable for header and payload.
func IsJWTStructure(s string) bool {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return false
	}
	if !IsBase64URLNoPad(parts[0]) || !IsBase64URLNoPad(parts[1]) {
		return false
	}
	// signature can be empty or non-decodable; we do not require decoding
	return true
}

// LuhnValid runs the check-digit algorithm used by payment card numbers.
// It distinguishes a true card number from a coincidental digit string.
func LuhnValid(s string) bool {
	digits := 0
	sum := 0
	double := false
	for i := len(s) - 1; i >= 0; i-- {
		c := s[i]
		if c == ' ' || c == '-' {
			continue
		}
		if c < '0' || c > '9' {
			return false
		}
		d := int(c - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
		digits++
	}
	return digits >= 12 && sum%10 == 0
}
