package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"ROUNDC_HOST", "ROUNDC_PORT", "ROUNDC_MAX_PROGRAMS", "ROUNDC_STRICT", "NO_COLOR"} {
		if v, ok := os.LookupEnv(k); ok {
			os.Unsetenv(k)
			t.Cleanup(func() { os.Setenv(k, v) })
		}
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "roundc.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Addr() != "0.0.0.0:8790" {
		t.Errorf("unexpected address %s", cfg.Addr())
	}
	if cfg.Parser.StrictBlocks {
		t.Error("strict blocks should be off by default")
	}
	if !cfg.Output.Color {
		t.Error("color should be on by default")
	}
	if cfg.Server.ReadTimeout.Duration != 30*time.Second {
		t.Errorf("unexpected read timeout %s", cfg.Server.ReadTimeout)
	}
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)

	path := writeConfig(t, `
[server]
host = "127.0.0.1"
port = 9000
read_timeout = "5s"

[parser]
strict_blocks = true

[output]
color = false
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Addr() != "127.0.0.1:9000" {
		t.Errorf("unexpected address %s", cfg.Addr())
	}
	if cfg.Server.ReadTimeout.Duration != 5*time.Second {
		t.Errorf("unexpected read timeout %s", cfg.Server.ReadTimeout)
	}
	if cfg.Server.WriteTimeout.Duration != 30*time.Second {
		t.Errorf("write timeout default lost: %s", cfg.Server.WriteTimeout)
	}
	if !cfg.Parser.StrictBlocks {
		t.Error("expected strict blocks from file")
	}
	if cfg.Output.Color {
		t.Error("expected color off from file")
	}
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("ROUNDC_PORT", "9100")
	t.Setenv("ROUNDC_STRICT", "false")
	t.Setenv("NO_COLOR", "1")

	path := writeConfig(t, "[server]\nport = 9000\n[parser]\nstrict_blocks = true\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 9100 {
		t.Errorf("expected env port 9100, got %d", cfg.Server.Port)
	}
	if cfg.Parser.StrictBlocks {
		t.Error("expected ROUNDC_STRICT=false to win over the file")
	}
	if cfg.Output.Color {
		t.Error("expected NO_COLOR to disable color")
	}
}

func TestLoadSeesLaterEnvChanges(t *testing.T) {
	clearEnv(t)

	if _, err := Load(""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Setenv("ROUNDC_HOST", "127.0.0.2")
	t.Setenv("ROUNDC_STRICT", "true")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Host != "127.0.0.2" {
		t.Errorf("expected host set after first load, got %s", cfg.Server.Host)
	}
	if !cfg.Parser.StrictBlocks {
		t.Error("expected ROUNDC_STRICT set after first load to apply")
	}

	os.Unsetenv("ROUNDC_HOST")
	cfg, err = Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("expected unset host to fall back to default, got %s", cfg.Server.Host)
	}
}

func TestLoadErrors(t *testing.T) {
	clearEnv(t)

	tests := []struct {
		name    string
		content string
		msg     string
	}{
		{"bad toml", "[server\nport = 1", "failed to parse config"},
		{"unknown key", "[server]\nportt = 1\n", "unknown config keys"},
		{"bad duration", "[server]\nread_timeout = \"soon\"\n", "failed to parse config"},
		{"port range", "[server]\nport = 70000\n", "out of range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.msg) {
				t.Errorf("expected %q in %q", tt.msg, err)
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("expected not found error, got %v", err)
	}
}
