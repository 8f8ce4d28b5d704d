package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"pl0lex/internal/diag"
	"pl0lex/internal/source"
)

type palette struct {
	err, warn, info *color.Color
	code            *color.Color
	path            *color.Color
	gutter          *color.Color
	caret           *color.Color
	note            *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		code:   color.New(color.Bold),
		path:   color.New(color.FgWhite, color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgRed, color.Bold),
		note:   color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.path, p.gutter, p.caret, p.note} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	}
	return p.info
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil {
		return
	}
	p := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, &d, fs, opts, p)
	}
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p palette) {
	f := fs.Get(d.Primary.File)
	if f == nil {
		// диагностика без файла (например, ошибка чтения stdin)
		fmt.Fprintf(w, "%s %s: %s\n", p.severity(d.Severity).Sprint(d.Severity), p.code.Sprint(d.Code.ID()), d.Message)
		return
	}

	start, end := fs.Resolve(d.Primary)
	fmt.Fprintf(w, "%s: %s %s: %s\n",
		p.path.Sprintf("%s:%d:%d", formatPath(fs, f, opts.PathMode), start.Line, start.Col),
		p.severity(d.Severity).Sprint(d.Severity),
		p.code.Sprint(d.Code.ID()),
		d.Message)

	if f.Flags&source.FileLoadFailed == 0 {
		writeSnippet(w, f, start, end, opts, p)
	}

	if !opts.ShowNotes {
		return
	}
	for _, n := range d.Notes {
		ns, _ := fs.Resolve(n.Span)
		fmt.Fprintf(w, "  %s %s:%d:%d: %s\n", p.note.Sprint("note:"), formatPath(fs, f, opts.PathMode), ns.Line, ns.Col, n.Msg)
	}
}

func writeSnippet(w io.Writer, f *source.File, start, end source.LineCol, opts PrettyOpts, p palette) {
	first := start.Line
	if opts.Context > 0 {
		ctx := uint32(opts.Context)
		if first > ctx {
			first -= ctx
		} else {
			first = 1
		}
	}
	gutterWidth := len(fmt.Sprint(start.Line))

	for ln := first; ln <= start.Line; ln++ {
		line := clip(f.Line(ln), opts.Width)
		fmt.Fprintf(w, "%s %s\n", p.gutter.Sprintf("%*d |", gutterWidth, ln), line)
	}

	line := f.Line(start.Line)
	width := 1
	if end.Line == start.Line && end.Col > start.Col {
		width = int(end.Col - start.Col)
	}
	fmt.Fprintf(w, "%s %s%s\n",
		p.gutter.Sprintf("%*s |", gutterWidth, ""),
		caretIndent(line, int(start.Col)-1),
		p.caret.Sprint("^"+strings.Repeat("~", width-1)))
}

// caretIndent повторяет префикс строки пробелами той же ширины, сохраняя табы.
func caretIndent(line string, n int) string {
	if n > len(line) {
		n = len(line)
	}
	var sb strings.Builder
	for _, r := range line[:max(n, 0)] {
		if r == '\t' {
			sb.WriteByte('\t')
			continue
		}
		sb.WriteString(strings.Repeat(" ", max(runewidth.RuneWidth(r), 1)))
	}
	return sb.String()
}

func clip(line string, width uint8) string {
	if width == 0 {
		return line
	}
	return runewidth.Truncate(line, int(width), "…")
}
