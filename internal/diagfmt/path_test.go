package diagfmt

import (
	"path/filepath"
	"testing"

	"pl0lex/internal/source"
)

func TestFormatPathModes(t *testing.T) {
	base := t.TempDir()
	fs := source.NewFileSetWithBase(base)
	inside := fs.Get(fs.Add(filepath.Join(base, "dir", "prog.pl0"), nil, 0))
	outside := fs.Get(fs.Add(filepath.Join(filepath.Dir(base), "elsewhere.pl0"), nil, 0))
	stdin := fs.Get(fs.AddVirtual("<stdin>", nil))
	short := fs.Get(fs.Add("dir/sub/prog.pl0", nil, 0))

	tests := []struct {
		name string
		file *source.File
		mode PathMode
		want string
	}{
		{"relative inside base", inside, PathModeRelative, "dir/prog.pl0"},
		{"relative outside base", outside, PathModeRelative, filepath.ToSlash(filepath.Join(filepath.Dir(base), "elsewhere.pl0"))},
		{"basename", inside, PathModeBasename, "prog.pl0"},
		{"auto keeps short relative", short, PathModeAuto, "dir/sub/prog.pl0"},
		{"absolute keeps virtual names", stdin, PathModeAbsolute, "<stdin>"},
		{"nil file", nil, PathModeAuto, "<unknown>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatPath(fs, tt.file, tt.mode); got != tt.want {
				t.Errorf("formatPath = %q, want %q", got, tt.want)
			}
		})
	}
}
