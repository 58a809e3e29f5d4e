package detectors

import "testing"

func TestAWSAccessKey(t *testing.T) {
	data := []byte("line one\nline two\nAKIAABCDEFGHIJKLMNOP\n")
	ms, errs := Run("test.txt", data, Options{})
	if len(errs) != 0 {
		t.Fatalf("unexpected detector errors: %v", errs)
	}
	var aws []string
	for _, m := range ms {
		if m.Detector != "aws_access_key" {
			continue
		}
		aws = append(aws, m.Text)
		if m.Line != 3 {
			t.Fatalf("unexpected match: %+v", m)
		}
		if m.Severity != "high" {
			t.Fatalf("aws access key should be high severity, got %s", m.Severity)
		}
	}
	if len(aws) != 1 {
		t.Fatalf("expected 1 aws_access_key match, got %d", len(aws))
	}
}

func TestAWSSecretKeyNeedsContext(t *testing.T) {
	bare := []byte("AbCdEfGhIjKlMnOpQrStUvWxYz0123456789ABCD\n")
	ms, _ := Run("test.txt", bare, Options{})
	for _, m := range ms {
		if m.Detector == "aws_secret_key" {
			t.Fatal("secret key without aws context should not match")
		}
	}

	ctx := []byte("aws_secret_access_key = AbCdEfGhIjKlMnOpQrStUvWxYz0123456789ABCD\n")
	ms, _ = Run("test.txt", ctx, Options{})
	found := false
	for _, m := range ms {
		if m.Detector == "aws_secret_key" {
			found = true
			if len(m.Text) != 40 {
				t.Fatalf("expected 40-char secret, got %d", len(m.Text))
			}
		}
	}
	if !found {
		t.Fatal("expected aws_secret_key match")
	}
}
