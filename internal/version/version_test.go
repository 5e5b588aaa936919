package version

import (
	"runtime"
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	oldV, oldC, oldD := Version, Commit, Date
	t.Cleanup(func() { Version, Commit, Date = oldV, oldC, oldD })

	Version, Commit, Date = "v1.2.0", "abc123", "2026-01-02"
	got := String()
	want := "v1.2.0 (commit abc123, built 2026-01-02, " + runtime.Version() + ")"
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestString_Defaults(t *testing.T) {
	if !strings.HasPrefix(String(), Version+" ") {
		t.Errorf("String() = %q", String())
	}
}
