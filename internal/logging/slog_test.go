package logging

import (
	"strings"
	"testing"
)

func TestAnonymizeEmail(t *testing.T) {
	if got := AnonymizeEmail(""); got != "" {
		t.Errorf("expected empty result for empty email, got %q", got)
	}

	a := AnonymizeEmail("jane@example.com")
	b := AnonymizeEmail("jane@example.com")
	if a != b {
		t.Errorf("expected stable hash, got %q and %q", a, b)
	}
	if !strings.HasPrefix(a, "user:") {
		t.Errorf("expected user: prefix, got %q", a)
	}
	if strings.Contains(a, "jane") || strings.Contains(a, "example.com") {
		t.Errorf("hash leaks the input: %q", a)
	}
	if a == AnonymizeEmail("john@example.com") {
		t.Error("different emails should hash differently")
	}
}

func TestSanitizeToken(t *testing.T) {
	if got := SanitizeToken(""); got != "<empty>" {
		t.Errorf("expected <empty>, got %q", got)
	}
	got := SanitizeToken("ya29.secret-token")
	if strings.Contains(got, "secret") {
		t.Errorf("sanitized token leaks content: %q", got)
	}
	if got != "[token:17 chars]" {
		t.Errorf("unexpected mask format: %q", got)
	}
}

func TestExtractDomain(t *testing.T) {
	tests := []struct {
		email string
		want  string
	}{
		{"jane@example.com", "example.com"},
		{"no-at-sign", ""},
		{"", ""},
		{"two@at@signs", ""},
		{"trailing@", ""},
	}

	for _, tt := range tests {
		if got := ExtractDomain(tt.email); got != tt.want {
			t.Errorf("ExtractDomain(%q) = %q, want %q", tt.email, got, tt.want)
		}
	}
}

func TestErrNil(t *testing.T) {
	attr := Err(nil)
	// A nil error must produce an attribute slog omits entirely.
	if attr.Key != "" {
		t.Errorf("expected empty group for nil error, got key %q", attr.Key)
	}
}
