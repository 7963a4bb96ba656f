package infra

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("PORT", "")
	t.Setenv("VIDEO_POLL_SECONDS", "")
	t.Setenv("VIDEO_POLL_MAX_ATTEMPTS", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("Port mismatch: got %q want %q", cfg.Port, "8080")
	}
	if cfg.VideoPollInterval != 10*time.Second {
		t.Fatalf("VideoPollInterval mismatch: got %v", cfg.VideoPollInterval)
	}
	if cfg.VideoPollMaxAttempts != 60 {
		t.Fatalf("VideoPollMaxAttempts mismatch: got %d", cfg.VideoPollMaxAttempts)
	}
	if cfg.TextModel == "" || cfg.ImageModel == "" || cfg.VideoModel == "" {
		t.Fatalf("model defaults missing: %+v", cfg)
	}
}

func TestLoadConfigRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for missing DATABASE_URL")
	}
}

func TestLoadConfigRejectsNonPositivePollBound(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("VIDEO_POLL_MAX_ATTEMPTS", "-1")
	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for non-positive poll bound")
	}
}
