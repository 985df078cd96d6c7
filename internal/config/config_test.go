package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "BOARDS_STORE", "SQLITE_PATH", "RENEWAL_WINDOW_DAYS",
		"RENEWAL_SWEEP_INTERVAL", "CORS_ORIGINS", "STAFF_TOKEN", "DB_HOST", "DB_NAME",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.Store != StoreMemory {
		t.Errorf("Store = %q, want memory", cfg.Store)
	}
	if cfg.RenewalWindowDuration() != 30*24*time.Hour {
		t.Errorf("RenewalWindowDuration = %s", cfg.RenewalWindowDuration())
	}
	if cfg.SweepInterval != time.Hour {
		t.Errorf("SweepInterval = %s, want 1h", cfg.SweepInterval)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
	if cfg.DB.Host != "localhost" || cfg.DB.DBName != "pitchside" {
		t.Errorf("unexpected db defaults: %+v", cfg.DB)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("BOARDS_STORE", "sqlite")
	t.Setenv("SQLITE_PATH", "/tmp/boards.db")
	t.Setenv("RENEWAL_WINDOW_DAYS", "14")
	t.Setenv("CORS_ORIGINS", "http://a.local,http://b.local")
	t.Setenv("DB_HOST", "db")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Store != StoreSQLite || cfg.SQLitePath != "/tmp/boards.db" {
		t.Errorf("unexpected store config: %+v", cfg)
	}
	if cfg.RenewalWindow != 14 {
		t.Errorf("RenewalWindow = %d, want 14", cfg.RenewalWindow)
	}
	if len(cfg.CORSOrigins) != 2 {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
	if cfg.DB.Host != "db" {
		t.Errorf("DB.Host = %q, want db", cfg.DB.Host)
	}
}

func TestValidate(t *testing.T) {
	base := Config{Store: StoreMemory, RenewalWindow: 30, SweepInterval: time.Hour}
	if err := base.Validate(); err != nil {
		t.Fatalf("valid config returned error: %v", err)
	}

	bad := base
	bad.Store = "redis"
	if err := bad.Validate(); err == nil {
		t.Error("unknown store should fail")
	}

	bad = base
	bad.RenewalWindow = 0
	if err := bad.Validate(); err == nil {
		t.Error("zero renewal window should fail")
	}

	bad = base
	bad.SweepInterval = 0
	if err := bad.Validate(); err == nil {
		t.Error("zero sweep interval should fail")
	}
}
