package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"pl0lex/internal/diag"
	"pl0lex/internal/diagfmt"
	"pl0lex/internal/driver"
	"pl0lex/internal/observ"
	"pl0lex/internal/source"
	"pl0lex/internal/token"
)

func runTokenize(cmd *cobra.Command, input string, stdin io.Reader) error {
	s, err := resolveSettings(cmd, input)
	if err != nil {
		return err
	}

	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiling()

	tracer, cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	opts := driver.Options{
		Lexer:          s.lexerOptions(),
		MaxDiagnostics: s.cfg.Output.MaxDiagnostics,
		Stdin:          stdin,
		Jobs:           s.jobs,
	}
	if s.cache {
		cache, err := driver.OpenDiskCache("pl0lex")
		if err != nil {
			// без кэша всё равно можно работать
			fmt.Fprintf(cmd.ErrOrStderr(), "pl0lex: cache disabled: %v\n", err)
		} else {
			opts.Cache = cache
		}
	}

	if input != driver.StdinPath {
		if info, statErr := os.Stat(input); statErr == nil && info.IsDir() {
			err = runDir(cmd, input, s, opts)
			if errors.Is(err, errLexical) {
				dumpRing(cmd, tracer)
			}
			return err
		}
	}

	err = runFile(cmd, input, s, opts)
	if errors.Is(err, errLexical) {
		dumpRing(cmd, tracer)
	}
	return err
}

func runFile(cmd *cobra.Command, input string, s settings, opts driver.Options) error {
	res, err := driver.Tokenize(cmd.Context(), input, opts)
	if err != nil {
		if errors.Is(err, source.ErrFileNotFound) || errors.Is(err, source.ErrFileUnreadable) {
			return usageError{err: err}
		}
		return err
	}

	timer := observ.NewTimer()
	idx := timer.Begin("render")
	renderErr := writeTokens(cmd.OutOrStdout(), s.format(), res.File.Path, res.Tokens, res.FileSet)
	timer.End(idx, s.format())
	if renderErr != nil {
		return fmt.Errorf("failed to write tokens: %w", renderErr)
	}

	res.Bag.Sort()
	if err := writeDiagnostics(cmd.ErrOrStderr(), res.Bag, res.FileSet, s); err != nil {
		return err
	}

	if s.timings {
		report := res.Timing.Append(timer.Report())
		if err := driver.WriteTimings(cmd.ErrOrStderr(), res.File.Path, report, machineFormat(s.format())); err != nil {
			return err
		}
	}

	if res.Failed() {
		return errLexical
	}
	return nil
}

func runDir(cmd *cobra.Command, dir string, s settings, opts driver.Options) error {
	files, err := driver.ListSourceFiles(dir)
	if err != nil {
		return usageError{err: fmt.Errorf("failed to list %s: %w", dir, err)}
	}

	var (
		fileSet *source.FileSet
		results []driver.TokenizeDirResult
	)
	// прогресс рисуем только когда stdout свободен от машинного вывода
	if len(files) > 0 && !machineFormat(s.format()) && shouldUseTUI(s.ui, cmd.OutOrStdout()) {
		fileSet, results, err = runDirWithUI(cmd.Context(), cmd.OutOrStdout(), "Lexing "+dir, dir, files, opts)
	} else {
		fileSet, results, err = driver.TokenizeFiles(cmd.Context(), dir, files, opts)
	}
	if err != nil {
		return err
	}

	timer := observ.NewTimer()
	idx := timer.Begin("render")
	failed := false
	reports := make([]observ.Report, 0, len(results))
	for _, r := range results {
		if r.LoadErr != nil {
			// IO4001 уходит в общий Bag вместе с лексическими ошибками
			failed = true
			continue
		}
		if r.Failed() {
			failed = true
		}
		reports = append(reports, r.Timing)
		if err := writeTokens(cmd.OutOrStdout(), s.format(), r.File.Path, r.Tokens, fileSet); err != nil {
			return fmt.Errorf("failed to write tokens: %w", err)
		}
	}
	timer.End(idx, fmt.Sprintf("%d files", len(results)))

	if err := writeDiagnostics(cmd.ErrOrStderr(), driver.MergeBags(results, s.cfg.Output.MaxDiagnostics), fileSet, s); err != nil {
		return err
	}

	if s.timings {
		report := observ.Sum(reports).Append(timer.Report())
		if err := driver.WriteTimings(cmd.ErrOrStderr(), dir, report, machineFormat(s.format())); err != nil {
			return err
		}
	}

	if failed {
		return errLexical
	}
	return nil
}

func writeTokens(w io.Writer, format, path string, tokens []token.Token, fs *source.FileSet) error {
	switch format {
	case "table":
		return diagfmt.FormatTokensTable(w, path, tokens)
	case "pretty":
		return diagfmt.FormatTokensPretty(w, tokens, fs)
	case "json":
		return diagfmt.FormatTokensJSON(w, path, tokens)
	case "msgpack":
		return diagfmt.FormatTokensMsgpack(w, path, tokens)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeDiagnostics печатает диагностики в stderr в формате --diag-format.
func writeDiagnostics(w io.Writer, bag *diag.Bag, fs *source.FileSet, s settings) error {
	if bag.Len() == 0 {
		return nil
	}
	limit := s.cfg.Output.MaxDiagnostics
	switch s.diagFmt {
	case "json":
		return diagfmt.JSON(w, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         s.pathMode,
			Max:              limit,
			IncludeNotes:     true,
		})
	case "short":
		return diagfmt.Short(w, bag, fs, diagfmt.ShortOpts{PathMode: s.pathMode, IncludeNotes: true, Max: limit})
	}
	diagfmt.Pretty(w, bag, fs, diagfmt.PrettyOpts{
		Color:     s.color,
		Context:   1,
		PathMode:  s.pathMode,
		ShowNotes: true,
	})
	return nil
}
