package diagfmt

import (
	"encoding/json"
	"io"

	"pl0lex/internal/diag"
	"pl0lex/internal/source"
)

// LocationJSON - байтовый диапазон плюс (по запросу) строки и колонки.
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

type NoteJSON struct {
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Title    string       `json:"title"`
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
	Notes    []NoteJSON   `json:"notes,omitempty"`
}

// DiagnosticsOutput is the document written for --format json.
// Omitted counts diagnostics cut by JSONOpts.Max or by the bag limit.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
	Omitted     int              `json:"omitted,omitempty"`
}

type locator struct {
	fs        *source.FileSet
	mode      PathMode
	positions bool
}

func (l locator) at(span source.Span) LocationJSON {
	loc := LocationJSON{
		File:      formatPath(l.fs, l.fs.Get(span.File), l.mode),
		StartByte: span.Start,
		EndByte:   span.End,
	}
	if !l.positions {
		return loc
	}
	start, end := l.fs.Resolve(span)
	loc.StartLine, loc.StartCol = start.Line, start.Col
	loc.EndLine, loc.EndCol = end.Line, end.Col
	return loc
}

// BuildDiagnosticsOutput собирает документ без сериализации, удобно для тестов.
func BuildDiagnosticsOutput(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	items := bag.Items()
	if opts.Max > 0 && opts.Max < len(items) {
		items = items[:opts.Max]
	}
	loc := locator{fs: fs, mode: opts.PathMode, positions: opts.IncludePositions}

	out := DiagnosticsOutput{
		Diagnostics: make([]DiagnosticJSON, 0, len(items)),
		Omitted:     bag.Len() - len(items) + bag.Dropped(),
	}
	for _, d := range items {
		entry := DiagnosticJSON{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Title:    d.Code.Title(),
			Message:  d.Message,
			Location: loc.at(d.Primary),
		}
		if opts.IncludeNotes {
			for _, n := range d.Notes {
				entry.Notes = append(entry.Notes, NoteJSON{Message: n.Msg, Location: loc.at(n.Span)})
			}
		}
		out.Diagnostics = append(out.Diagnostics, entry)
	}
	out.Count = len(out.Diagnostics)
	return out
}

func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildDiagnosticsOutput(bag, fs, opts))
}
