package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"pl0lex/internal/config"
	"pl0lex/internal/diagfmt"
	"pl0lex/internal/lexer"
)

// settings - итоговые параметры запуска: pl0lex.toml, поверх него флаги.
type settings struct {
	cfg      config.Config
	color    bool
	pathMode diagfmt.PathMode
	diagFmt  string
	jobs     int
	ui       uiMode
	cache    bool
	timings  bool
}

func (s settings) lexerOptions() lexer.Options {
	return s.cfg.LexerOptions()
}

func (s settings) format() string {
	return s.cfg.Output.Format
}

func resolveSettings(cmd *cobra.Command, input string) (settings, error) {
	cfg, err := loadConfig(cmd, input)
	if err != nil {
		return settings{}, err
	}
	flags := cmd.Flags()

	if flags.Changed("recover") {
		recoverMode, _ := flags.GetBool("recover")
		if recoverMode {
			cfg.Lexer.Mode = lexer.ModeRecover.String()
		} else {
			cfg.Lexer.Mode = lexer.ModeHalt.String()
		}
	}
	if flags.Changed("max-ident") {
		cfg.Lexer.MaxIdentLength, _ = flags.GetInt("max-ident")
	}
	if flags.Changed("max-number") {
		cfg.Lexer.MaxNumber, _ = flags.GetInt64("max-number")
	}
	if flags.Changed("format") {
		format, _ := flags.GetString("format")
		cfg.Output.Format = strings.ToLower(strings.TrimSpace(format))
	}
	if flags.Changed("max-diagnostics") {
		cfg.Output.MaxDiagnostics, _ = flags.GetInt("max-diagnostics")
	}
	if err := cfg.Validate(); err != nil {
		return settings{}, usageError{err: fmt.Errorf("invalid options: %w", err)}
	}

	s := settings{cfg: cfg}

	colorFlag, _ := cmd.Flags().GetString("color")
	switch colorFlag {
	case "on":
		s.color = true
	case "off":
		s.color = false
	case "auto":
		s.color = isTerminal(cmd.ErrOrStderr())
	default:
		return settings{}, usageErrorf("invalid --color value %q (expected auto|on|off)", colorFlag)
	}

	pathModeFlag, _ := flags.GetString("path-mode")
	if s.pathMode, err = diagfmt.ParsePathMode(pathModeFlag); err != nil {
		return settings{}, usageError{err: err}
	}

	diagFlag, _ := flags.GetString("diag-format")
	switch diagFlag = strings.ToLower(strings.TrimSpace(diagFlag)); diagFlag {
	case "auto":
		s.diagFmt = "pretty"
		if machineFormat(s.format()) {
			s.diagFmt = "json"
		}
	case "pretty", "short", "json":
		s.diagFmt = diagFlag
	default:
		return settings{}, usageErrorf("invalid --diag-format value %q (expected auto|pretty|short|json)", diagFlag)
	}

	uiFlag, _ := flags.GetString("ui")
	if s.ui, err = readUIMode(uiFlag); err != nil {
		return settings{}, usageError{err: err}
	}

	if s.jobs, _ = flags.GetInt("jobs"); s.jobs < 0 {
		return settings{}, usageErrorf("--jobs must be >= 0, got %d", s.jobs)
	}
	s.cache, _ = flags.GetBool("cache")
	s.timings, _ = flags.GetBool("timings")
	return s, nil
}

// machineFormat сообщает, что stdout предназначен для программ, а не для человека.
func machineFormat(format string) bool {
	return slices.Contains([]string{"json", "msgpack"}, format)
}
