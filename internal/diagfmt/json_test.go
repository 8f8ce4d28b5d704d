package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"pl0lex/internal/diag"
	"pl0lex/internal/source"
)

// TestJSONBasic проверяет базовое JSON форматирование
func TestJSONBasic(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.pl0", []byte("begin\n  x := 99999\nend."))

	bag := diag.NewBag(10)
	bag.Add(diag.New(
		diag.SevError,
		diag.LexNumberOverflow,
		source.Span{File: fileID, Start: 13, End: 18},
		"Number 99999 is too large (maximum is 32767)",
	))

	var buf bytes.Buffer
	opts := JSONOpts{IncludePositions: true, PathMode: PathModeBasename, IncludeNotes: true}
	if err := JSON(&buf, bag, fs, opts); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("Invalid JSON output: %v\nOutput: %s", err, buf.String())
	}
	if output.Count != 1 || len(output.Diagnostics) != 1 {
		t.Fatalf("Expected 1 diagnostic, got %d", output.Count)
	}

	d := output.Diagnostics[0]
	if d.Severity != "ERROR" || d.Code != "LEX1004" {
		t.Errorf("got %s %s", d.Severity, d.Code)
	}
	loc := d.Location
	if loc.File != "test.pl0" || loc.StartLine != 2 || loc.StartCol != 8 || loc.EndCol != 13 {
		t.Errorf("unexpected location: %+v", loc)
	}
}

func TestJSONMaxAndPositions(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("a.pl0", []byte("@ @ @"))
	bag := diag.NewBag(10)
	for i := range uint32(3) {
		bag.Add(diag.NewError(diag.LexIllegalChar, source.Span{File: fileID, Start: 2 * i, End: 2*i + 1}, "Illegal character '@' (0100)"))
	}

	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 2})
	if out.Count != 2 || out.Omitted != 1 {
		t.Errorf("count/omitted = %d/%d, want 2/1", out.Count, out.Omitted)
	}
	if out.Diagnostics[0].Title != "Illegal character" {
		t.Errorf("title = %q", out.Diagnostics[0].Title)
	}
	if out.Diagnostics[0].Location.StartLine != 0 {
		t.Errorf("positions must be omitted without IncludePositions")
	}
}
