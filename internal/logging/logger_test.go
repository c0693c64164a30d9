package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observed() (*Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return FromZap(zap.New(core)), logs
}

func TestLogger_RedactsSecrets(t *testing.T) {
	log, logs := observed()
	log.Info("provider ready", "provider", "anthropic", "api_key", "sk-123", "auth_token", "abc", "input_tokens", 12)

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["provider"] != "anthropic" {
		t.Errorf("provider = %v", fields["provider"])
	}
	if fields["api_key"] != "[REDACTED]" || fields["auth_token"] != "[REDACTED]" {
		t.Errorf("secrets leaked: %v", fields)
	}
	if fields["input_tokens"] != int64(12) {
		t.Errorf("token counts should not be redacted: %v", fields["input_tokens"])
	}
}

func TestLogger_WithCarriesFields(t *testing.T) {
	log, logs := observed()
	log.With("session", "s1").Warn("journal append failed", "err", "boom")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries[0].Level != zapcore.WarnLevel {
		t.Errorf("level = %v, want warn", entries[0].Level)
	}
	if entries[0].ContextMap()["session"] != "s1" {
		t.Errorf("fields = %v", entries[0].ContextMap())
	}
}

func TestSanitizeKVs_OddLength(t *testing.T) {
	got := sanitizeKVs([]any{"a", 1, "dangling"})
	if len(got) != 3 || got[2] != "dangling" {
		t.Errorf("sanitizeKVs = %v", got)
	}
}

func TestNew_RejectsBadLevel(t *testing.T) {
	if _, err := New(Config{Level: "loud"}); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	log, err := New(Config{Level: "info", Format: "json", File: path})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log.Debug("hidden")
	log.Info("visible", "course", "cka")
	log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	if !strings.Contains(out, "visible") || !strings.Contains(out, `"course":"cka"`) {
		t.Errorf("log file missing entry: %s", out)
	}
	if strings.Contains(out, "hidden") {
		t.Errorf("debug entry written at info level: %s", out)
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("KUBESTRONAUT_LOG_LEVEL", "debug")
	t.Setenv("KUBESTRONAUT_LOG_FILE", "/tmp/x.log")
	cfg := ConfigFromEnv()
	if cfg.Level != "debug" || cfg.File != "/tmp/x.log" || cfg.Format != "console" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestNop(t *testing.T) {
	Nop().Error("ignored", "k", "v")
}
