package driver

import (
	"encoding/json"
	"fmt"
	"io"

	"pl0lex/internal/observ"
)

type timingPayload struct {
	Kind    string               `json:"kind"`
	Path    string               `json:"path,omitempty"`
	TotalMS float64              `json:"total_ms"`
	Phases  []observ.PhaseReport `json:"phases"`
}

// WriteTimings печатает фазы одного прогона: текстом или одной строкой JSON.
func WriteTimings(w io.Writer, path string, report observ.Report, asJSON bool) error {
	if asJSON {
		data, err := json.Marshal(timingPayload{Kind: "tokenize", Path: path, TotalMS: report.TotalMS, Phases: report.Phases})
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	}
	_, err := io.WriteString(w, report.Format(path))
	return err
}
