package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg := New()

	if cfg.Server.Port != DefaultPort {
		t.Errorf("expected default port %d, got %d", DefaultPort, cfg.Server.Port)
	}
	if cfg.Address() == "" {
		t.Error("Address should not be empty")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != DefaultPort {
		t.Errorf("missing file should yield defaults, got port %d", cfg.Server.Port)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	data := `{
  "name": "demo",
  "server": {"port": 8080, "readTimeout": "45s"},
  "uploads": {"dir": "/tmp/uploads", "maxSizeBytes": 1024},
  "log": {"level": "debug", "format": "json"}
}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Name != "demo" {
		t.Errorf("expected name demo, got %s", cfg.Name)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Server.Port)
	}
	if cfg.ReadTimeout() != 45*time.Second {
		t.Errorf("expected 45s read timeout, got %v", cfg.ReadTimeout())
	}
	if cfg.Uploads.Dir != "/tmp/uploads" {
		t.Errorf("expected uploads dir, got %s", cfg.Uploads.Dir)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("expected debug/json logging, got %s/%s", cfg.Log.Level, cfg.Log.Format)
	}

	// Unset fields keep defaults
	if cfg.WriteTimeout() != 10*time.Second {
		t.Errorf("expected default write timeout, got %v", cfg.WriteTimeout())
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	os.WriteFile(path, []byte("{not json"), 0644)

	if _, err := Load(dir); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)

	cfg := New()
	cfg.Name = "roundtrip"
	cfg.Server.Port = 9090
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if loaded.Name != "roundtrip" || loaded.Server.Port != 9090 {
		t.Errorf("round trip lost data: %+v", loaded)
	}
	if loaded.Path() != path {
		t.Errorf("expected path %s, got %s", path, loaded.Path())
	}
}

func TestValidate(t *testing.T) {
	cfg := New()
	cfg.Server.Port = -1
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for negative port")
	}

	cfg = New()
	cfg.Log.Level = "verbose"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown log level")
	}

	cfg = New()
	cfg.Log.Format = "xml"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown log format")
	}
}

func TestDurationFallbacks(t *testing.T) {
	cfg := New()
	cfg.Server.PingInterval = "garbage"

	if cfg.PingInterval() != 30*time.Second {
		t.Errorf("unparseable duration should fall back, got %v", cfg.PingInterval())
	}
}

func TestCheckOrigin(t *testing.T) {
	cfg := New()
	if cfg.CheckOrigin() != nil {
		t.Error("default should use same-origin check")
	}

	cfg.Server.AllowAllOrigins = true
	check := cfg.CheckOrigin()
	if check == nil || !check(nil) {
		t.Error("AllowAllOrigins should accept everything")
	}
}
