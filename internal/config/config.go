// Package config loads, validates, and watches the rewindpad configuration
// file. TOML and YAML are both accepted, by extension.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds rewindpad settings.
type Config struct {
	// LogLevel is the minimum log level: debug, info, warn, error.
	LogLevel string `toml:"log_level" yaml:"log_level"`

	// LogFile is where logs are written. The TUI owns the terminal, so
	// logs never go to stderr once the screen is up.
	LogFile string `toml:"log_file" yaml:"log_file"`

	// HistoryLimit caps entries kept per pad; 0 keeps everything.
	HistoryLimit int `toml:"history_limit" yaml:"history_limit"`

	// MergeTyping collapses typing runs into single undo steps.
	MergeTyping bool `toml:"merge_typing" yaml:"merge_typing"`

	// MergeWindowMS is the pause, in milliseconds, that ends a typing run.
	MergeWindowMS int `toml:"merge_window_ms" yaml:"merge_window_ms"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		LogLevel:      "info",
		LogFile:       "rewindpad.log",
		HistoryLimit:  0,
		MergeTyping:   true,
		MergeWindowMS: 800,
	}
}

// MergeWindow returns the typing-run pause as a duration.
func (c Config) MergeWindow() time.Duration {
	return time.Duration(c.MergeWindowMS) * time.Millisecond
}

// Validate checks ranges; it does not touch the filesystem.
func (c Config) Validate() error {
	if c.HistoryLimit < 0 {
		return fmt.Errorf("history_limit %d: must not be negative", c.HistoryLimit)
	}
	if c.MergeWindowMS < 0 {
		return fmt.Errorf("merge_window_ms %d: must not be negative", c.MergeWindowMS)
	}
	return nil
}

// Load reads path over the defaults. A missing file is not an error; the
// defaults come back as-is.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		return cfg, fmt.Errorf("unsupported config format %q", ext)
	}
	if err != nil {
		return Default(), parseError(path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseError reports a malformed configuration file, with position detail
// when the decoder provides it.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// parseError wraps a decode failure, extracting the position from go-toml
// errors.
func parseError(path string, err error) error {
	perr := &ParseError{Path: path, Message: err.Error(), Err: err}

	var derr *toml.DecodeError
	if errors.As(err, &derr) {
		perr.Line, perr.Column = derr.Position()
	}
	return perr
}
