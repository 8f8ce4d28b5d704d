package diagfmt

import (
	"bytes"
	"testing"

	"pl0lex/internal/diag"
	"pl0lex/internal/source"
)

func TestShortFormat(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("sample.pl0", []byte("a\n# open\n"))

	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.LexUnterminatedComment, source.Span{File: id, Start: 2, End: 9}, "Unterminated\r\ncomment").
		WithNote(source.Span{File: id, Start: 2, End: 3}, "comment starts here"))
	bag.Add(diag.New(diag.SevWarning, diag.IOCacheError, source.Span{File: 99}, "cache is read-only"))

	tests := []struct {
		name string
		opts ShortOpts
		want string
	}{
		{
			name: "notes",
			opts: ShortOpts{PathMode: PathModeBasename, IncludeNotes: true},
			want: "error LEX1006 sample.pl0:2:1 Unterminated comment\n" +
				"note LEX1006 sample.pl0:2:1 comment starts here\n" +
				"warning IO4003 cache is read-only\n",
		},
		{
			name: "max",
			opts: ShortOpts{PathMode: PathModeBasename, Max: 1},
			want: "error LEX1006 sample.pl0:2:1 Unterminated comment\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Short(&buf, bag, fs, tt.opts); err != nil {
				t.Fatal(err)
			}
			if buf.String() != tt.want {
				t.Fatalf("got:\n%s\nwant:\n%s", buf.String(), tt.want)
			}
		})
	}
}

func TestShortEmptyBag(t *testing.T) {
	var buf bytes.Buffer
	if err := Short(&buf, diag.NewBag(1), source.NewFileSet(), ShortOpts{}); err != nil || buf.Len() != 0 {
		t.Fatalf("empty bag wrote %q (%v)", buf.String(), err)
	}
}
