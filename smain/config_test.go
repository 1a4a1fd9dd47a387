/*
© 2025–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package smain

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	contents := "program: demo\naudit_path: /tmp/audit.sqlite\nline_length: 120\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	want := Config{Program: "demo", AuditPath: "/tmp/audit.sqlite", LineLength: 120}
	if cfg != want {
		t.Errorf("LoadConfig = %+v; want %+v", cfg, want)
	}
}

func TestLoadConfigMissingFileReturnsZeroValue(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg != (Config{}) {
		t.Errorf("LoadConfig(missing) = %+v; want zero value", cfg)
	}
}
