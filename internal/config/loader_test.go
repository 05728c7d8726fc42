package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

func TestLoadWritesDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	disabledLogger := zerolog.New(nil)

	cfg, resolved, err := Load(&disabledLogger, path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if resolved != path {
		t.Fatalf("expected resolved path %q, got %q", path, resolved)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected default config written: %v", err)
	}

	want := Default()
	if cfg.Addr != want.Addr || cfg.KillSwitchAddr != want.KillSwitchAddr {
		t.Fatalf("unexpected addresses: %+v", cfg)
	}
	if cfg.Limits != want.Limits {
		t.Fatalf("unexpected limits: %+v", cfg.Limits)
	}
}

func TestLoadReadsFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`addr: ":9100"
killswitch_addr: "127.0.0.1:11001"
shutdown_timeout: 2s
limits:
  room_limit: 5
  message_expiry: 30s
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("BURNROOM_ADDR", ":9200")
	t.Setenv("BURNROOM_LIMITS_GLOBAL_LIMIT", "7")

	cfg, _, err := Load(nil, path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Addr != ":9200" {
		t.Errorf("env must override file, got addr %q", cfg.Addr)
	}
	if cfg.KillSwitchAddr != "127.0.0.1:11001" {
		t.Errorf("unexpected killswitch addr %q", cfg.KillSwitchAddr)
	}
	if cfg.ShutdownTimeout != 2*time.Second {
		t.Errorf("unexpected shutdown timeout %v", cfg.ShutdownTimeout)
	}
	if cfg.Limits.RoomLimit != 5 {
		t.Errorf("unexpected room limit %d", cfg.Limits.RoomLimit)
	}
	if cfg.Limits.MessageExpiry != 30*time.Second {
		t.Errorf("unexpected expiry %v", cfg.Limits.MessageExpiry)
	}
	if cfg.Limits.GlobalLimit != 7 {
		t.Errorf("unexpected global limit %d", cfg.Limits.GlobalLimit)
	}
	if cfg.Limits.RoomCapacity != Default().Limits.RoomCapacity {
		t.Errorf("unset limits must keep defaults, got capacity %d", cfg.Limits.RoomCapacity)
	}
}

func TestUpdateFromKeepsZeroFields(t *testing.T) {
	cfg := Default()
	cfg.UpdateFrom(Config{Addr: ":7000", LogLevel: "debug"})

	if cfg.Addr != ":7000" || cfg.LogLevel != "debug" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.KillSwitchAddr != Default().KillSwitchAddr {
		t.Fatalf("zero override must not clear killswitch addr")
	}
}

func TestRegisterDefaultsCoversNestedLimits(t *testing.T) {
	cfg := Default()
	v := viper.New()
	if err := registerDefaults(v, cfg); err != nil {
		t.Fatalf("register defaults: %v", err)
	}

	if got := v.GetDuration("limits.sweep_interval"); got != cfg.Limits.SweepInterval {
		t.Errorf("sweep interval default %v, want %v", got, cfg.Limits.SweepInterval)
	}
	if got := v.GetInt("limits.max_in_flight"); got != cfg.Limits.MaxInFlight {
		t.Errorf("max in flight default %d, want %d", got, cfg.Limits.MaxInFlight)
	}
	if got := v.GetString("killswitch_addr"); got != cfg.KillSwitchAddr {
		t.Errorf("killswitch addr default %q, want %q", got, cfg.KillSwitchAddr)
	}
}

func TestLoadEnvReachesKeysMissingFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("addr: \":9100\"\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("BURNROOM_LIMITS_SWEEP_INTERVAL", "3s")

	cfg, _, err := Load(nil, path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Limits.SweepInterval != 3*time.Second {
		t.Fatalf("env must reach nested limits, got %v", cfg.Limits.SweepInterval)
	}
}
