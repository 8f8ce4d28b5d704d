package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pl0lex/internal/lexer"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	opts := Default().LexerOptions()
	if opts.MaxIdentLength != lexer.DefaultMaxIdentLength || opts.MaxNumber != lexer.DefaultMaxNumber || opts.Mode != lexer.ModeHalt {
		t.Errorf("unexpected options: %+v", opts)
	}
}

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	want := writeConfig(t, root, "")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	got, ok, err := Find(nested)
	if err != nil || !ok {
		t.Fatalf("Find = %q, %v, %v", got, ok, err)
	}
	if got != want {
		t.Errorf("Find = %q, want %q", got, want)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "[lexer]\nmode = \"recover\"\nmax_number = 1000\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Lexer.MaxIdentLength != lexer.DefaultMaxIdentLength {
		t.Errorf("max_ident_length = %d, want default", cfg.Lexer.MaxIdentLength)
	}
	if cfg.Output.Format != "table" {
		t.Errorf("format = %q, want table", cfg.Output.Format)
	}
	opts := cfg.LexerOptions()
	if opts.Mode != lexer.ModeRecover || opts.MaxNumber != 1000 {
		t.Errorf("options = %+v", opts)
	}
	if cfg.Path != path {
		t.Errorf("path = %q", cfg.Path)
	}
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"zero ident", "[lexer]\nmax_ident_length = 0\n", "max_ident_length"},
		{"huge ident", "[lexer]\nmax_ident_length = 100000000000\n", "max_ident_length must be <="},
		{"negative number", "[lexer]\nmax_number = -1\n", "max_number"},
		{"bad mode", "[lexer]\nmode = \"panic\"\n", "mode"},
		{"bad format", "[output]\nformat = \"xml\"\n", "format"},
		{"bad diag limit", "[output]\nmax_diagnostics = 0\n", "max_diagnostics"},
		{"unknown key", "[lexer]\nfoo = 1\n", "unknown keys"},
		{"syntax", "[lexer\n", "failed to parse TOML"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tt.body)
			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestDiscoverWithoutFile(t *testing.T) {
	cfg, err := Discover(t.TempDir())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if cfg.Output.MaxDiagnostics != DefaultMaxDiagnostics {
		t.Errorf("unexpected config: %+v", cfg)
	}
}
