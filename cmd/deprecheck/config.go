package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"deprecheck/internal/source"
	"deprecheck/internal/trace"
)

const configFileName = "deprecheck.toml"

type auditManifest struct {
	Path   string
	Root   string
	Config auditConfig
}

type auditConfig struct {
	Artifacts artifactsConfig `toml:"artifacts"`
	Output    outputConfig    `toml:"output"`
	Trace     traceConfig     `toml:"trace"`
}

type artifactsConfig struct {
	Issues  string `toml:"issues"`
	Console string `toml:"console"`
	Bundles string `toml:"bundles"`
}

type outputConfig struct {
	Format string `toml:"format"`
	URLs   string `toml:"urls"`
	Max    int    `toml:"max"`
}

type traceConfig struct {
	Level  string `toml:"level"`
	Output string `toml:"output"`
	Mode   string `toml:"mode"`
}

func findConfig(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, configFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// loadManifest loads an explicit config path, or discovers one upwards from
// startDir when path is empty. A missing discovered config is not an error.
func loadManifest(path, startDir string) (*auditManifest, error) {
	if path == "" {
		found, ok, err := findConfig(startDir)
		if err != nil || !ok {
			return nil, err
		}
		path = found
	}
	cfg, err := loadConfig(path)
	if err != nil {
		return nil, err
	}
	root := filepath.Dir(path)
	cfg.Artifacts.Issues = relativeTo(root, cfg.Artifacts.Issues)
	cfg.Artifacts.Console = relativeTo(root, cfg.Artifacts.Console)
	cfg.Artifacts.Bundles = relativeTo(root, cfg.Artifacts.Bundles)
	return &auditManifest{Path: path, Root: root, Config: cfg}, nil
}

func loadConfig(path string) (auditConfig, error) {
	var cfg auditConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return auditConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return auditConfig{}, fmt.Errorf("%s: unknown key %s", path, undecoded[0])
	}
	if meta.IsDefined("output", "format") {
		if _, ok := parseOutputFormat(cfg.Output.Format); !ok {
			return auditConfig{}, fmt.Errorf("%s: invalid [output].format %q (expected pretty|json|short|sarif)", path, cfg.Output.Format)
		}
	}
	if meta.IsDefined("output", "urls") {
		if _, ok := source.ParseURLMode(cfg.Output.URLs); !ok {
			return auditConfig{}, fmt.Errorf("%s: invalid [output].urls %q (expected auto|full|path|basename)", path, cfg.Output.URLs)
		}
	}
	if meta.IsDefined("output", "max") && cfg.Output.Max < 0 {
		return auditConfig{}, fmt.Errorf("%s: [output].max must not be negative", path)
	}
	if meta.IsDefined("trace", "level") {
		if _, err := trace.ParseLevel(cfg.Trace.Level); err != nil {
			return auditConfig{}, fmt.Errorf("%s: [trace].level: %w", path, err)
		}
	}
	if meta.IsDefined("trace", "mode") {
		if _, err := trace.ParseMode(cfg.Trace.Mode); err != nil {
			return auditConfig{}, fmt.Errorf("%s: [trace].mode: %w", path, err)
		}
	}
	return cfg, nil
}

// relativeTo anchors artifact paths at the directory holding the config.
func relativeTo(root, p string) string {
	p = strings.TrimSpace(p)
	if p == "" || p == "-" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, filepath.FromSlash(p))
}

type outputFormat string

const (
	formatPretty outputFormat = "pretty"
	formatJSON   outputFormat = "json"
	formatShort  outputFormat = "short"
	formatSarif  outputFormat = "sarif"
)

func parseOutputFormat(s string) (outputFormat, bool) {
	switch f := outputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case formatPretty, formatJSON, formatShort, formatSarif:
		return f, true
	case "":
		return formatPretty, true
	}
	return "", false
}
