package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"pl0lex/internal/config"
	"pl0lex/internal/version"
)

const (
	exitOK      = 0
	exitLexical = 1
	exitUsage   = 2
)

// errLexical сигнализирует, что вход содержит лексические ошибки; сами ошибки уже напечатаны.
var errLexical = errors.New("lexical errors")

// usageError - неверный вызов: аргументы, флаги, конфигурация или недоступный вход.
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func usageErrorf(format string, args ...any) error {
	return usageError{err: fmt.Errorf(format, args...)}
}

// newRootCmd builds the pl0lex command tree. stdin is used for the "-" argument.
func newRootCmd(stdin io.Reader) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pl0lex [flags] <file|dir|->",
		Short: "PL/0 lexical analyzer",
		Long: `pl0lex scans PL/0 source and prints its tokens.

The argument is a source file, a directory (every *.pl0 file below it is
scanned in parallel) or "-" for standard input. Exit status is 0 on success,
1 on lexical errors and 2 on usage errors.`,
		Args:          exactlyOneInput,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTokenize(cmd, args[0], stdin)
		},
	}
	rootCmd.Version = version.Version
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err: err}
	})

	// Параметры лексера и вывода; значения по умолчанию берутся из pl0lex.toml
	flags := rootCmd.Flags()
	flags.Bool("recover", false, "keep scanning after lexical errors (emit Invalid tokens)")
	flags.Int("max-ident", 0, "maximum identifier and number length (default from config, 255)")
	flags.Int64("max-number", 0, "maximum numeric literal value (default from config, 32767)")
	flags.String("format", "", "output format (table|pretty|json|msgpack)")
	flags.Int("max-diagnostics", 0, "maximum number of diagnostics to show")
	flags.String("diag-format", "auto", "diagnostics format on stderr (auto|pretty|short|json)")
	flags.String("config", "", "path to pl0lex.toml (default: search upwards from the input)")
	flags.String("path-mode", "auto", "how to print file paths (auto|absolute|relative|basename)")

	// Каталоги и кэш
	flags.Int("jobs", 0, "parallel workers in directory mode (0 = GOMAXPROCS)")
	flags.String("ui", "auto", "progress UI in directory mode (auto|on|off)")
	flags.Bool("cache", false, "reuse token streams from the on-disk cache")
	flags.Bool("timings", false, "print phase timings to stderr")

	// Глобальные флаги
	persistent := rootCmd.PersistentFlags()
	persistent.String("color", "auto", "colorize output (auto|on|off)")
	persistent.String("trace", "", "trace output file (\"-\" for stderr)")
	persistent.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	persistent.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	persistent.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	persistent.Int("trace-ring-size", 4096, "ring buffer capacity for --trace-mode ring|both")
	persistent.String("cpu-profile", "", "write a CPU profile to this file")
	persistent.String("mem-profile", "", "write a heap profile to this file on exit")
	persistent.String("runtime-trace", "", "write a Go runtime trace to this file")

	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

func exactlyOneInput(_ *cobra.Command, args []string) error {
	if len(args) != 1 {
		return usageErrorf("expected exactly one input (file, directory or \"-\"), got %d", len(args))
	}
	return nil
}

// main initializes the CLI and exits with the status produced by run.
func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the root command and maps its error to an exit status.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	rootCmd := newRootCmd(stdin)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.ExecuteContext(ctx)
	return reportError(stderr, err)
}

func reportError(stderr io.Writer, err error) int {
	if err == nil {
		return exitOK
	}
	if errors.Is(err, errLexical) {
		return exitLexical
	}
	fmt.Fprintf(stderr, "pl0lex: %v\n", err)
	var usage usageError
	if errors.As(err, &usage) {
		return exitUsage
	}
	return exitLexical
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// loadConfig читает --config или ищет pl0lex.toml от каталога входа вверх.
func loadConfig(cmd *cobra.Command, input string) (config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	if path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			return config.Config{}, usageError{err: err}
		}
		return cfg, nil
	}
	cfg, err := config.Discover(configSearchDir(input))
	if err != nil {
		return config.Config{}, usageError{err: err}
	}
	return cfg, nil
}

func configSearchDir(input string) string {
	if input == "-" {
		return "."
	}
	if info, err := os.Stat(input); err == nil && info.IsDir() {
		return input
	}
	return filepath.Dir(input)
}
