package detectors

import "testing"

func TestEmailAndSSN(t *testing.T) {
	data := []byte("contact: alice@corp.io\nssn: 078-05-1120\n")
	ms, _ := Run("users.txt", data, Options{})
	got := map[string]int{}
	for _, m := range ms {
		got[m.Detector]++
	}
	if got["email"] != 1 {
		t.Fatalf("expected 1 email match, got %d", got["email"])
	}
	if got["ssn"] != 1 {
		t.Fatalf("expected 1 ssn match, got %d", got["ssn"])
	}
}

func TestCreditCardCarriesChecksum(t *testing.T) {
	r, ok := ByID("credit_card")
	if !ok || r.Checksum == nil {
		t.Fatal("credit_card must carry a checksum validator")
	}
	if !r.Checksum("4111111111111111") {
		t.Fatal("valid card number failed checksum")
	}
	if r.Checksum("4111111111111112") {
		t.Fatal("invalid check digit passed")
	}
}

func TestPhoneNumberShapes(t *testing.T) {
	data := []byte("call 555-867-5309 or (555) 867-5309\n")
	ms, _ := Run("notes.txt", data, Options{})
	count := 0
	for _, m := range ms {
		if m.Detector == "phone_number" {
			count++
		}
	}
	if count != 2 {
		t.Fatalf("expected 2 phone matches, got %d", count)
	}
}
