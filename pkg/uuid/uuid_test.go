package uuid

import (
	"strings"
	"testing"
)

func TestNewV7_VersionAndVariantBits(t *testing.T) {
	t.Parallel()

	u := NewV7()
	if v := u[6] >> 4; v != 7 {
		t.Errorf("expected version 7, got %d", v)
	}
	if variant := u[8] >> 6; variant != 0b10 {
		t.Errorf("expected RFC 4122 variant bits 10, got %02b", variant)
	}
}

func TestNewV7_StringFormat(t *testing.T) {
	t.Parallel()

	s := NewV7().String()
	if len(s) != 36 {
		t.Fatalf("expected 36-char UUID string, got %d: %q", len(s), s)
	}
	parts := strings.Split(s, "-")
	if len(parts) != 5 {
		t.Fatalf("expected 5 dash-separated groups, got %d: %q", len(parts), s)
	}
}

func TestNewV7_Unique(t *testing.T) {
	t.Parallel()

	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		s := NewV7().String()
		if _, dup := seen[s]; dup {
			t.Fatalf("duplicate UUID generated: %s", s)
		}
		seen[s] = struct{}{}
	}
}

func TestNewV7_TimestampOrdering(t *testing.T) {
	t.Parallel()

	// v7 UUIDs generated later must compare >= lexicographically
	// (48-bit ms timestamp prefix).
	a := NewV7().String()
	b := NewV7().String()
	if strings.Compare(a[:8], b[:8]) > 0 {
		t.Errorf("expected non-decreasing timestamp prefix: %s then %s", a, b)
	}
}
