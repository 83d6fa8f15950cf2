package buildinfo

import (
	"strings"
	"testing"
)

func TestTemplateCarriesVersion(t *testing.T) {
	old := Version
	Version = "v9.9.9"
	defer func() { Version = old }()

	if got := Template(); !strings.Contains(got, "version v9.9.9") {
		t.Errorf("Template() = %q, want the version", got)
	}
	if got := Get(); got.Version != "v9.9.9" {
		t.Errorf("Get().Version = %q, want v9.9.9", got.Version)
	}
}
