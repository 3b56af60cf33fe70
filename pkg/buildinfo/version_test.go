package buildinfo

import (
	"strings"
	"testing"
)

func TestShort(t *testing.T) {
	oldV, oldC := Version, Commit
	defer func() { Version, Commit = oldV, oldC }()

	Version, Commit = "v0.3.0", "0123456789abcdef"
	if got := Short(); got != "v0.3.0 (0123456)" {
		t.Errorf("Short() = %q", got)
	}

	Commit = "none"
	if got := Short(); got != "v0.3.0 (none)" {
		t.Errorf("Short() = %q", got)
	}
}

func TestTemplate(t *testing.T) {
	if !strings.Contains(Template(), Version) {
		t.Errorf("Template() should include the version: %q", Template())
	}
	if !strings.Contains(String(), "commit: ") {
		t.Errorf("String() = %q", String())
	}
}
