package source

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"fortio.org/safecast"
)

var (
	ErrFileNotFound   = errors.New("file not found")
	ErrFileUnreadable = errors.New("file unreadable")
)

// FileSet owns every file of a run. A FileID stays valid for the FileSet's
// lifetime; adding the same path twice yields two IDs.
type FileSet struct {
	files   []File
	baseDir string
}

func NewFileSet() *FileSet {
	return &FileSet{}
}

// NewFileSetWithBase задаёт каталог, от которого считаются относительные пути.
func NewFileSetWithBase(baseDir string) *FileSet {
	return &FileSet{baseDir: baseDir}
}

// BaseDir returns the base for relative paths, falling back to the working directory.
func (s *FileSet) BaseDir() string {
	if s.baseDir != "" {
		return s.baseDir
	}
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return wd
}

// Add registers already normalised content under path.
func (s *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	n, err := safecast.Conv[uint32](len(s.files))
	if err != nil {
		panic(fmt.Errorf("too many files: %w", err))
	}
	if _, err := safecast.Conv[uint32](len(content)); err != nil {
		panic(fmt.Errorf("%s: file too large: %w", path, err))
	}
	s.files = append(s.files, File{
		ID:      FileID(n),
		Path:    filepath.ToSlash(filepath.Clean(path)),
		Content: content,
		LineIdx: lineIndex(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	})
	return FileID(n)
}

// AddVirtual adds in-memory content (tests, generated input) with FileVirtual set.
func (s *FileSet) AddVirtual(name string, content []byte) FileID {
	return s.Add(name, content, FileVirtual)
}

// AddFailed registers path as an empty file that could not be loaded, so
// diagnostics about it still carry its name.
func (s *FileSet) AddFailed(path string) FileID {
	return s.Add(path, nil, FileLoadFailed)
}

// Load reads path from disk. Missing paths wrap ErrFileNotFound; directories
// and read failures wrap ErrFileUnreadable.
func (s *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- путь задаёт пользователь
	f, err := os.Open(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return 0, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	case err != nil:
		return 0, fmt.Errorf("%w: %s: %w", ErrFileUnreadable, path, err)
	}
	defer f.Close()

	if info, err := f.Stat(); err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrFileUnreadable, path, err)
	} else if info.IsDir() {
		return 0, fmt.Errorf("%w: %s is a directory", ErrFileUnreadable, path)
	}
	return s.LoadReader(path, f, 0)
}

// LoadReader drains r, normalises BOM and CRLF, and adds the result under name.
func (s *FileSet) LoadReader(name string, r io.Reader, flags FileFlags) (FileID, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrFileUnreadable, name, err)
	}
	content, extra := normalize(raw)
	return s.Add(name, content, flags|extra), nil
}

// Get returns nil for an ID this set never issued.
func (s *FileSet) Get(id FileID) *File {
	if int(id) >= len(s.files) {
		return nil
	}
	return &s.files[id]
}

func (s *FileSet) Len() int { return len(s.files) }

// Resolve maps both ends of span to line/column; unknown files give zero values.
func (s *FileSet) Resolve(span Span) (start, end LineCol) {
	f := s.Get(span.File)
	if f == nil {
		return LineCol{}, LineCol{}
	}
	return f.position(span.Start), f.position(span.End)
}
