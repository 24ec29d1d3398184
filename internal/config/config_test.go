package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/agentx-labs/recordx/internal/ident"
	"github.com/spf13/viper"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("RECORDX_HOME", dir)
	viper.Reset()
	t.Cleanup(viper.Reset)
	return dir
}

func TestDefaults(t *testing.T) {
	isolate(t)
	Load()

	got := Current()
	want := Settings{
		Strategy:       ident.StrategyStable,
		SnapshotFile:   ".records.json",
		TokenLength:    ident.DefaultTokenLength,
		SequentialBase: 0,
		LogLevel:       "info",
	}
	if got != want {
		t.Errorf("Current() = %+v, want %+v", got, want)
	}
}

func TestDirOverride(t *testing.T) {
	dir := isolate(t)
	if Dir() != dir {
		t.Errorf("Dir() = %q, want %q", Dir(), dir)
	}
	if FilePath() != filepath.Join(dir, "config.yaml") {
		t.Errorf("FilePath() = %q", FilePath())
	}
}

func TestSetPersists(t *testing.T) {
	dir := isolate(t)
	Load()

	if err := Set(KeyStrategy, ident.StrategySequential); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Fatalf("expected config file: %v", err)
	}

	viper.Reset()
	Load()
	if got := Get(KeyStrategy); got != ident.StrategySequential {
		t.Errorf("strategy after reload = %q, want %q", got, ident.StrategySequential)
	}
}

func TestSetRejectsBadValues(t *testing.T) {
	isolate(t)
	Load()

	tests := []struct {
		key   string
		value string
	}{
		{"colour", "blue"},
		{KeyStrategy, "random"},
		{KeyLogLevel, "loud"},
		{KeyTokenLength, "eight"},
		{KeySequentialBase, "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			if err := Set(tt.key, tt.value); err == nil {
				t.Errorf("expected error for %s=%s", tt.key, tt.value)
			}
		})
	}
}

func TestEnvOverride(t *testing.T) {
	isolate(t)
	t.Setenv("RECORDX_STRATEGY", ident.StrategySequential)
	t.Setenv("RECORDX_SEQUENTIAL_BASE", "10")
	Load()

	s := Current()
	if s.Strategy != ident.StrategySequential || s.SequentialBase != 10 {
		t.Errorf("env not applied: %+v", s)
	}
	if opts := s.IDOptions(); opts.Base != 10 || opts.Strategy != ident.StrategySequential {
		t.Errorf("IDOptions() = %+v", opts)
	}
}

func TestLevel(t *testing.T) {
	lvl, err := Settings{LogLevel: "debug"}.Level()
	if err != nil || lvl != slog.LevelDebug {
		t.Errorf("Level() = %v, %v", lvl, err)
	}
	if _, err := (Settings{LogLevel: "chatty"}).Level(); err == nil {
		t.Error("expected error for unknown level")
	}
}
