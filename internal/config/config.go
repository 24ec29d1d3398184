package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/agentx-labs/recordx/internal/branding"
	"github.com/agentx-labs/recordx/internal/ident"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Setting keys.
const (
	KeyStrategy       = "strategy"
	KeySnapshotFile   = "snapshot_file"
	KeyTokenLength    = "token_length"
	KeySequentialBase = "sequential_base"
	KeyLogLevel       = "log_level"
)

// Keys lists every recognised setting, sorted.
func Keys() []string {
	return []string{KeyLogLevel, KeySequentialBase, KeySnapshotFile, KeyStrategy, KeyTokenLength}
}

// Settings is the typed view of the configuration.
type Settings struct {
	Strategy       string
	SnapshotFile   string
	TokenLength    int
	SequentialBase int
	LogLevel       string
}

// IDOptions converts the settings into assigner options.
func (s Settings) IDOptions() ident.Options {
	return ident.Options{
		Strategy:    s.Strategy,
		Base:        s.SequentialBase,
		TokenLength: s.TokenLength,
	}
}

// Level parses LogLevel.
func (s Settings) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("parsing log level %q: %w", s.LogLevel, err)
	}
	return lvl, nil
}

// Dir returns the path to the config directory. RECORDX_HOME overrides the
// default of ~/.recordx/.
func Dir() string {
	if dir := os.Getenv(branding.EnvVar("home")); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file.
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

func setDefaults() {
	viper.SetDefault(KeyStrategy, ident.StrategyStable)
	viper.SetDefault(KeySnapshotFile, branding.SnapshotFile())
	viper.SetDefault(KeyTokenLength, ident.DefaultTokenLength)
	viper.SetDefault(KeySequentialBase, 0)
	viper.SetDefault(KeyLogLevel, "info")
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()
	setDefaults()

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Current returns the loaded settings.
func Current() Settings {
	return Settings{
		Strategy:       viper.GetString(KeyStrategy),
		SnapshotFile:   viper.GetString(KeySnapshotFile),
		TokenLength:    viper.GetInt(KeyTokenLength),
		SequentialBase: viper.GetInt(KeySequentialBase),
		LogLevel:       viper.GetString(KeyLogLevel),
	}
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Set validates and writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if err := validate(key, value); err != nil {
		return err
	}
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

func validate(key, value string) error {
	if !slices.Contains(Keys(), key) {
		return fmt.Errorf("unknown config key %q (known: %s)", key, strings.Join(Keys(), ", "))
	}

	switch key {
	case KeyStrategy:
		if _, err := ident.New(ident.Options{Strategy: value}); err != nil {
			return err
		}
	case KeyLogLevel:
		if _, err := (Settings{LogLevel: value}).Level(); err != nil {
			return err
		}
	case KeyTokenLength, KeySequentialBase:
		var n int
		if _, err := fmt.Sscanf(value, "%d", &n); err != nil || n < 0 {
			return fmt.Errorf("%s must be a non-negative integer, got %q", key, value)
		}
	}
	return nil
}
