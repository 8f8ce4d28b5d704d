package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"pl0lex/internal/diag"
	"pl0lex/internal/source"
)

func illegalCharBag(t *testing.T, fs *source.FileSet, id source.FileID) *diag.Bag {
	t.Helper()
	bag := diag.NewBag(10)
	bag.Add(diag.New(
		diag.SevError,
		diag.LexIllegalChar,
		source.Span{File: id, Start: 12, End: 13},
		"Illegal character '@' (0100)",
	))
	return bag
}

// TestPathModes проверяет различные режимы форматирования путей
func TestPathModes(t *testing.T) {
	fs := source.NewFileSetWithBase("/home/user/project")
	fileID := fs.AddVirtual("/home/user/project/src/test.pl0", []byte("var x;\nx := @;\n"))
	bag := illegalCharBag(t, fs, fileID)

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"Absolute path", PathModeAbsolute, "/home/user/project/src/test.pl0:2:6"},
		{"Relative path", PathModeRelative, "src/test.pl0:2:6"},
		{"Basename only", PathModeBasename, "test.pl0:2:6"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{Context: 1, PathMode: tt.mode})
			output := buf.String()

			if !strings.Contains(output, tt.contains) {
				t.Errorf("Expected output to contain %q, got:\n%s", tt.contains, output)
			}
			if !strings.Contains(output, "ERROR") || !strings.Contains(output, "LEX1001") {
				t.Errorf("Expected severity and code in output, got:\n%s", output)
			}
		})
	}
}

func TestPrettySnippetAndCaret(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("prog.pl0", []byte("var x;\nx := @;\n"))
	bag := illegalCharBag(t, fs, fileID)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Context: 1})
	want := strings.Join([]string{
		"prog.pl0:2:6: ERROR LEX1001: Illegal character '@' (0100)",
		"1 | var x;",
		"2 | x := @;",
		"  |      ^",
		"",
	}, "\n")
	if got := buf.String(); got != want {
		t.Errorf("unexpected output:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrettyLoadFailureHasNoSnippet(t *testing.T) {
	fs := source.NewFileSet()
	fs.AddVirtual("ok.pl0", []byte("var x;\n"))
	failed := fs.AddFailed("gone.pl0")
	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{File: failed}, "failed to load file: no such file"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Context: 1})
	want := "gone.pl0:1:1: ERROR IO4001: failed to load file: no such file\n"
	if got := buf.String(); got != want {
		t.Errorf("unexpected output:\n%q\nwant:\n%q", got, want)
	}
}

func TestPrettyCaretKeepsTabs(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("t.pl0", []byte("\tabc"))
	bag := diag.NewBag(1)
	bag.Add(diag.NewError(diag.LexIdentTooLong, source.Span{File: fileID, Start: 1, End: 4}, "too long"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{})
	if !strings.Contains(buf.String(), "  | \t^~~\n") {
		t.Errorf("caret line not aligned with tab:\n%q", buf.String())
	}
}

func TestPrettyNoColorCodesWhenDisabled(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("prog.pl0", []byte("var x;\nx := @;\n"))
	var buf bytes.Buffer
	Pretty(&buf, illegalCharBag(t, fs, fileID), fs, PrettyOpts{Color: false})
	if strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("unexpected ANSI escape in output: %q", buf.String())
	}

	buf.Reset()
	Pretty(&buf, illegalCharBag(t, fs, fileID), fs, PrettyOpts{Color: true})
	if !strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("expected ANSI escapes with Color: true")
	}
}

func TestPrettyNotes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("prog.pl0", []byte("a :b\n"))
	bag := diag.NewBag(1)
	d := diag.NewError(diag.LexExpectedBecomes, source.Span{File: fileID, Start: 2, End: 3}, "Expecting '=' after a colon, not 'b'").
		WithNote(source.Span{File: fileID, Start: 2, End: 3}, "did you mean ':='?")
	bag.Add(d)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{ShowNotes: true})
	if !strings.Contains(buf.String(), "note: prog.pl0:1:3: did you mean ':='?") {
		t.Errorf("note missing:\n%s", buf.String())
	}
}

func TestParsePathMode(t *testing.T) {
	for in, want := range map[string]PathMode{"": PathModeAuto, "absolute": PathModeAbsolute, "Relative": PathModeRelative, "basename": PathModeBasename} {
		got, err := ParsePathMode(in)
		if err != nil || got != want {
			t.Errorf("ParsePathMode(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParsePathMode("short"); err == nil {
		t.Error("expected error")
	}
}
