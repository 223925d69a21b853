package version

import (
	"strings"
	"testing"
)

func TestString_ContainsNameAndVersion(t *testing.T) {
	s := String()
	if !strings.Contains(s, "sherpa version") {
		t.Errorf("expected version string to contain binary name, got %q", s)
	}
	if !strings.Contains(s, Version) {
		t.Errorf("expected version string to contain %q, got %q", Version, s)
	}
}
