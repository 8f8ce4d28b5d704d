package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"pl0lex/internal/diag"
	"pl0lex/internal/source"
)

// ShortOpts configures the one-line-per-diagnostic format.
type ShortOpts struct {
	PathMode     PathMode
	IncludeNotes bool
	Max          int
}

// Short пишет по строке на диагностику:
//
//	error LEX1005 prog.pl0:3:7 Expecting '=' after a colon, not ' '
//
// Заметки идут следом с уровнем "note". Порядок - как в bag, сортирует вызывающий.
// Формат стабилен и годится для golden-файлов.
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts ShortOpts) error {
	items := bag.Items()
	if opts.Max > 0 && opts.Max < len(items) {
		items = items[:opts.Max]
	}
	for _, d := range items {
		if err := shortLine(w, fs, opts.PathMode, shortLevel(d.Severity), d.Code, d.Primary, d.Message); err != nil {
			return err
		}
		if !opts.IncludeNotes {
			continue
		}
		for _, n := range d.Notes {
			if err := shortLine(w, fs, opts.PathMode, "note", d.Code, n.Span, n.Msg); err != nil {
				return err
			}
		}
	}
	return nil
}

func shortLine(w io.Writer, fs *source.FileSet, mode PathMode, level string, code diag.Code, sp source.Span, msg string) error {
	f := fs.Get(sp.File)
	if f == nil {
		_, err := fmt.Fprintf(w, "%s %s %s\n", level, code.ID(), oneLine(msg))
		return err
	}
	pos, _ := fs.Resolve(sp)
	_, err := fmt.Fprintf(w, "%s %s %s:%d:%d %s\n", level, code.ID(), formatPath(fs, f, mode), pos.Line, pos.Col, oneLine(msg))
	return err
}

func shortLevel(sev diag.Severity) string {
	return strings.ToLower(sev.String())
}

// oneLine схлопывает переводы строк, чтобы одна диагностика занимала одну строку.
func oneLine(msg string) string {
	return strings.Join(strings.Fields(msg), " ")
}
