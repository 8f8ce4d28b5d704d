package diagfmt

import (
	"path/filepath"
	"strings"

	"pl0lex/internal/source"
)

// autoPathLimit - длиннее этого абсолютные пути в режиме auto сокращаются до имени файла.
const autoPathLimit = 40

func formatPath(fs *source.FileSet, f *source.File, mode PathMode) string {
	if f == nil {
		return "<unknown>"
	}
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(f.Path); err == nil && f.Flags&source.FileVirtual == 0 {
			return filepath.ToSlash(abs)
		}
	case PathModeRelative:
		if rel, ok := relativeTo(f.Path, fs.BaseDir()); ok {
			return rel
		}
	case PathModeBasename:
		return filepath.Base(f.Path)
	case PathModeAuto:
		if filepath.IsAbs(f.Path) && len(f.Path) >= autoPathLimit {
			return filepath.Base(f.Path)
		}
	}
	return f.Path
}

// relativeTo возвращает путь относительно base. Если файл лежит вне base,
// вместо цепочки "../" отдаётся абсолютный путь.
func relativeTo(path, base string) (string, bool) {
	if base == "" {
		return "", false
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", false
	}
	absBase, err := filepath.Abs(base)
	if err != nil {
		return "", false
	}
	rel, err := filepath.Rel(absBase, absPath)
	if err != nil {
		return "", false
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.ToSlash(absPath), true
	}
	return filepath.ToSlash(rel), true
}
