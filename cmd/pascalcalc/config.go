package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const (
	defaultPrompt      = "calc> "
	defaultHistoryFile = ".pascalcalc_history"
)

// fileConfig is the on-disk configuration. Zero values leave the engine
// defaults in place.
type fileConfig struct {
	Division    string `toml:"division" yaml:"division"`
	MaxDepth    int    `toml:"max_depth" yaml:"max_depth"`
	LogLevel    string `toml:"log_level" yaml:"log_level"`
	Prompt      string `toml:"prompt" yaml:"prompt"`
	HistoryFile string `toml:"history_file" yaml:"history_file"`
}

func defaultFileConfig() fileConfig {
	return fileConfig{
		LogLevel: "warn",
		Prompt:   defaultPrompt,
	}
}

// loadFileConfig reads a TOML or YAML file, picked by extension. An empty
// path yields the defaults.
func loadFileConfig(path string) (fileConfig, error) {
	cfg := defaultFileConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		md, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, key := range undecoded {
				keys[i] = key.String()
			}
			sort.Strings(keys)
			return cfg, fmt.Errorf("parse config %s: unknown keys %s", path, strings.Join(keys, ", "))
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("config %s: unsupported format %q (want .toml, .yaml or .yml)", path, filepath.Ext(path))
	}

	if cfg.Prompt == "" {
		cfg.Prompt = defaultPrompt
	}
	return cfg, nil
}

func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelWarn, fmt.Errorf("unknown log level %q", level)
	}
}

// historyPath resolves the REPL history file, defaulting to the home
// directory. It returns "" when no location is available.
func (c fileConfig) historyPath() string {
	if c.HistoryFile != "" {
		return c.HistoryFile
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, defaultHistoryFile)
}
