package appconfig

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "embsh.yaml")
	content := strings.Join([]string{
		"telnet:",
		"  port: 4000",
		"  username: admin",
		"  password: secret",
		"serial:",
		"  baud: 9600",
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Telnet.Port != 4000 || cfg.Telnet.Username != "admin" || cfg.Telnet.Password != "secret" {
		t.Fatalf("telnet config not applied: %+v", cfg.Telnet)
	}
	if cfg.Serial.Baud != 9600 {
		t.Fatalf("serial baud not applied: %+v", cfg.Serial)
	}
	// Unset keys keep their defaults.
	if cfg.Telnet.MaxSessions != 8 || cfg.Serial.Device != "/dev/ttyS0" {
		t.Fatalf("defaults lost: %+v", cfg)
	}
}

func TestWriteDefaultAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "embsh.yaml")
	written, err := WriteDefault(path, false)
	if err != nil {
		t.Fatalf("write default: %v", err)
	}
	if written != path {
		t.Fatalf("written to %s, want %s", written, path)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Fatalf("round-trip mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteDefaultRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "embsh.yaml")
	if _, err := WriteDefault(path, false); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if _, err := WriteDefault(path, false); err == nil {
		t.Fatalf("expected refusal without overwrite")
	}
	if _, err := WriteDefault(path, true); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
}
