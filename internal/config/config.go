// Package config loads pl0lex.toml and merges it with command-line overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"pl0lex/internal/lexer"
)

// FileName is the name of the configuration file searched for upwards.
const FileName = "pl0lex.toml"

// Formats lists the accepted values of [output].format.
var Formats = []string{"table", "pretty", "json", "msgpack"}

// DefaultMaxDiagnostics bounds the diagnostics bag when nothing else is set.
const DefaultMaxDiagnostics = 100

// Config is the effective configuration.
type Config struct {
	Path   string       `toml:"-"` // пусто, если файл не найден
	Lexer  LexerConfig  `toml:"lexer"`
	Output OutputConfig `toml:"output"`
}

type LexerConfig struct {
	MaxIdentLength int    `toml:"max_ident_length"`
	MaxNumber      int64  `toml:"max_number"`
	Mode           string `toml:"mode"`
}

type OutputConfig struct {
	Format         string `toml:"format"`
	MaxDiagnostics int    `toml:"max_diagnostics"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Lexer: LexerConfig{
			MaxIdentLength: lexer.DefaultMaxIdentLength,
			MaxNumber:      lexer.DefaultMaxNumber,
			Mode:           lexer.ModeHalt.String(),
		},
		Output: OutputConfig{
			Format:         "table",
			MaxDiagnostics: DefaultMaxDiagnostics,
		},
	}
}

// Find walks from startDir up to the filesystem root looking for pl0lex.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
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

// Load decodes path on top of the defaults. Keys absent from the file keep
// their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Discover finds and loads the configuration for an input located in dir.
// Without a file the defaults are returned.
func Discover(dir string) (Config, error) {
	path, ok, err := Find(dir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

// Validate rejects non-positive limits and unknown modes or formats.
func (c Config) Validate() error {
	if c.Lexer.MaxIdentLength < lexer.MinIdentLength {
		return fmt.Errorf("[lexer].max_ident_length must be >= %d, got %d", lexer.MinIdentLength, c.Lexer.MaxIdentLength)
	}
	if c.Lexer.MaxIdentLength > lexer.MaxIdentLimit {
		return fmt.Errorf("[lexer].max_ident_length must be <= %d, got %d", lexer.MaxIdentLimit, c.Lexer.MaxIdentLength)
	}
	if c.Lexer.MaxNumber <= 0 {
		return fmt.Errorf("[lexer].max_number must be positive, got %d", c.Lexer.MaxNumber)
	}
	if _, err := lexer.ParseMode(c.Lexer.Mode); err != nil {
		return fmt.Errorf("[lexer].mode: %w", err)
	}
	if !slices.Contains(Formats, c.Output.Format) {
		return fmt.Errorf("[output].format: unknown format %q (expected %s)", c.Output.Format, strings.Join(Formats, "|"))
	}
	if c.Output.MaxDiagnostics <= 0 {
		return fmt.Errorf("[output].max_diagnostics must be positive, got %d", c.Output.MaxDiagnostics)
	}
	return nil
}

// LexerOptions converts the lexer section into lexer.Options.
// Validate must have succeeded.
func (c Config) LexerOptions() lexer.Options {
	mode, _ := lexer.ParseMode(c.Lexer.Mode)
	return lexer.Options{
		Mode:           mode,
		MaxIdentLength: c.Lexer.MaxIdentLength,
		MaxNumber:      c.Lexer.MaxNumber,
	}
}
