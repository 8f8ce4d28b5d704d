package trace

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Format is the output encoding of trace events.
type Format uint8

const (
	FormatAuto   Format = iota // by output file extension
	FormatText                 // human-readable text
	FormatNDJSON               // newline-delimited JSON
)

// ParseFormat converts auto|text|ndjson to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return FormatAuto, nil
	case "text":
		return FormatText, nil
	case "ndjson", "json":
		return FormatNDJSON, nil
	}
	return FormatAuto, fmt.Errorf("invalid trace format: %q (expected: auto|text|ndjson)", s)
}

// formatForPath picks NDJSON for *.ndjson and *.jsonl outputs, text otherwise.
func formatForPath(path string) Format {
	if strings.HasSuffix(path, ".ndjson") || strings.HasSuffix(path, ".jsonl") {
		return FormatNDJSON
	}
	return FormatText
}

// AppendEvent appends the encoded event, newline included, to dst.
func AppendEvent(dst []byte, ev *Event, format Format) []byte {
	if format == FormatNDJSON {
		return appendNDJSON(dst, ev)
	}
	return appendText(dst, ev)
}

type jsonEvent struct {
	Time     string `json:"time"`
	Seq      uint64 `json:"seq"`
	Kind     string `json:"kind"`
	Scope    string `json:"scope"`
	SpanID   uint64 `json:"span_id,omitempty"`
	ParentID uint64 `json:"parent_id,omitempty"`
	Name     string `json:"name"`
	Detail   string `json:"detail,omitempty"`
	Attrs    []Attr `json:"attrs,omitempty"`
}

func appendNDJSON(dst []byte, ev *Event) []byte {
	data, err := json.Marshal(jsonEvent{
		Time:     ev.Time.Format("2006-01-02T15:04:05.000000Z07:00"),
		Seq:      ev.Seq,
		Kind:     ev.Kind.String(),
		Scope:    ev.Scope.String(),
		SpanID:   ev.SpanID,
		ParentID: ev.ParentID,
		Name:     ev.Name,
		Detail:   ev.Detail,
		Attrs:    ev.Attrs,
	})
	if err != nil {
		// только строки и числа: Marshal не падает
		panic(fmt.Errorf("trace: marshal event: %w", err))
	}
	dst = append(dst, data...)
	return append(dst, '\n')
}

var kindMarks = [...]string{KindBegin: "→ ", KindEnd: "← ", KindPoint: "• ", KindError: "! "}

// appendText: [hh:mm:ss.mmm] <отступ по scope><метка> name (detail) k=v ...
func appendText(dst []byte, ev *Event) []byte {
	dst = append(dst, '[')
	dst = ev.Time.AppendFormat(dst, "15:04:05.000")
	dst = append(dst, "] "...)
	for s := ScopeRun; s < ev.Scope && ev.Kind != KindError; s++ {
		dst = append(dst, "  "...)
	}
	if int(ev.Kind) < len(kindMarks) {
		dst = append(dst, kindMarks[ev.Kind]...)
	}
	dst = append(dst, ev.Name...)
	if ev.Detail != "" {
		dst = append(dst, " ("...)
		dst = append(dst, ev.Detail...)
		dst = append(dst, ')')
	}
	for _, a := range ev.Attrs {
		dst = append(dst, ' ')
		dst = append(dst, a.Key...)
		dst = append(dst, '=')
		dst = append(dst, a.Value...)
	}
	return append(dst, '\n')
}
