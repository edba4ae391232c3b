package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfigDirUsesXDG(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)

	want := filepath.Join(xdg, AppName)
	if got := DefaultConfigDir(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestNewWithoutFile(t *testing.T) {
	dir := t.TempDir()

	cfg, err := New(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Dir != dir {
		t.Errorf("expected dir %q, got %q", dir, cfg.Dir)
	}
	if cfg.Settings.Storage != "" {
		t.Errorf("expected default storage, got %q", cfg.Settings.Storage)
	}
	if !cfg.LatencyEnabled() {
		t.Error("expected latency enabled by default")
	}
	if cfg.DBPath() != filepath.Join(dir, DBFile) {
		t.Errorf("unexpected db path %q", cfg.DBPath())
	}
}

func TestNewLoadsFile(t *testing.T) {
	dir := t.TempDir()
	data := `storage: redis
redis_addr: localhost:6380
redis_prefix: "mine:"
latency: false
session_ttl: 12h
session_secret: s3cret
`
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(data), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := New(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s := cfg.Settings
	if s.Storage != "redis" || s.RedisAddr != "localhost:6380" || s.RedisPrefix != "mine:" {
		t.Errorf("unexpected storage settings: %+v", s)
	}
	if cfg.LatencyEnabled() {
		t.Error("expected latency disabled")
	}
	if s.SessionTTL != 12*time.Hour {
		t.Errorf("expected 12h ttl, got %v", s.SessionTTL)
	}
	if s.SessionSecret != "s3cret" {
		t.Errorf("expected secret, got %q", s.SessionSecret)
	}
}

func TestNewRejectsMalformedFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte("storage: [unclosed"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := New(dir); err == nil {
		t.Error("expected error for malformed config")
	}
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", AppName)
	cfg := &Config{Dir: dir}

	if err := cfg.EnsureDir(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("expected dir to exist: %v", err)
	}
	if info.Mode().Perm() != 0700 {
		t.Errorf("expected mode 0700, got %o", info.Mode().Perm())
	}
}

func TestLogDefaultsToDiscard(t *testing.T) {
	cfg := &Config{}
	if cfg.Log() == nil {
		t.Fatal("expected a logger")
	}
	cfg.Log().Info("dropped")
}
