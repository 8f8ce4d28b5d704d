package source

import "fmt"

// Span - полуоткрытый байтовый диапазон [Start, End) в одном файле.
type Span struct {
	File  FileID
	Start uint32
	End   uint32
}

// PointAt returns the empty span at off, used for EOF and read failures.
func PointAt(file FileID, off uint32) Span {
	return Span{File: file, Start: off, End: off}
}

func (s Span) Empty() bool { return s.Start >= s.End }

func (s Span) Len() uint32 {
	if s.Empty() {
		return 0
	}
	return s.End - s.Start
}

// Slice returns the bytes of content covered by s, or false if s does not fit.
func (s Span) Slice(content []byte) ([]byte, bool) {
	if s.End < s.Start || int64(s.End) > int64(len(content)) {
		return nil, false
	}
	return content[s.Start:s.End], true
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}
