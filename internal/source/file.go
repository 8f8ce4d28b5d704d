package source

import (
	"bytes"
	"slices"
)

type (
	// FileID indexes a file inside its FileSet.
	FileID uint32
	// FileFlags records what happened to a file on the way in.
	FileFlags uint8
)

const (
	FileVirtual        FileFlags = 1 << iota // не с диска: stdin, тест
	FileHadBOM                               // срезан UTF-8 BOM
	FileNormalizedCRLF                       // \r\n заменены на \n
	FileLoadFailed                           // прочитать не удалось, содержимое пустое
)

// File - нормализованное содержимое одного исходника и индекс переводов строк.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // смещения всех '\n' по возрастанию
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol is a 1-based line and byte column.
type LineCol struct {
	Line uint32
	Col  uint32
}

// Line returns line n (1-based) without its '\n', or "" when there is no such line.
func (f *File) Line(n uint32) string {
	if n == 0 || int64(n) > int64(len(f.LineIdx))+1 {
		return ""
	}
	var start int
	if n > 1 {
		start = int(f.LineIdx[n-2]) + 1
	}
	end := len(f.Content)
	if int(n) <= len(f.LineIdx) {
		end = int(f.LineIdx[n-1])
	}
	return string(f.Content[start:end])
}

// position переводит байтовое смещение в строку/колонку.
// Сам '\n' относится к строке, которую завершает.
func (f *File) position(off uint32) LineCol {
	line, _ := slices.BinarySearch(f.LineIdx, off)
	var lineStart uint32
	if line > 0 {
		lineStart = f.LineIdx[line-1] + 1
	}
	return LineCol{Line: uint32(line) + 1, Col: off - lineStart + 1}
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// normalize срезает BOM и сворачивает \r\n в \n; одиночный \r остаётся как есть.
func normalize(content []byte) ([]byte, FileFlags) {
	var flags FileFlags
	if rest, ok := bytes.CutPrefix(content, utf8BOM); ok {
		content = rest
		flags |= FileHadBOM
	}
	if bytes.Contains(content, []byte("\r\n")) {
		content = bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
		flags |= FileNormalizedCRLF
	}
	return content, flags
}

func lineIndex(content []byte) []uint32 {
	idx := make([]uint32, 0, bytes.Count(content, []byte{'\n'}))
	for i, b := range content {
		if b == '\n' {
			idx = append(idx, uint32(i))
		}
	}
	return idx
}
