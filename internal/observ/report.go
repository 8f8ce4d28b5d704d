package observ

import (
	"fmt"
	"strings"
)

type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

// Report is the serialisable form of a Timer.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

// Append returns r followed by the phases of other.
func (r Report) Append(other Report) Report {
	r.Phases = append(r.Phases[:len(r.Phases):len(r.Phases)], other.Phases...)
	r.TotalMS += other.TotalMS
	return r
}

// Sum складывает одноимённые фазы нескольких прогонов; порядок фаз - по первому появлению.
// Заметки не суммируются и отбрасываются.
func Sum(reports []Report) Report {
	var out Report
	pos := map[string]int{}
	for _, r := range reports {
		for _, p := range r.Phases {
			i, seen := pos[p.Name]
			if !seen {
				i = len(out.Phases)
				pos[p.Name] = i
				out.Phases = append(out.Phases, PhaseReport{Name: p.Name})
			}
			out.Phases[i].DurationMS += p.DurationMS
		}
		out.TotalMS += r.TotalMS
	}
	return out
}

// Format renders the report as an aligned table:
//
//	timings (prog.pl0):
//	  load       0.12 ms  // prog.pl0
//	  lex        0.40 ms  // 57 tokens
//	  total      0.52 ms
func (r Report) Format(title string) string {
	var sb strings.Builder
	if title == "" {
		sb.WriteString("timings:\n")
	} else {
		fmt.Fprintf(&sb, "timings (%s):\n", title)
	}
	row := func(name string, ms float64, note string) {
		fmt.Fprintf(&sb, "  %-8s %8.2f ms", name, ms)
		if note != "" {
			sb.WriteString("  // ")
			sb.WriteString(note)
		}
		sb.WriteByte('\n')
	}
	for _, p := range r.Phases {
		row(p.Name, p.DurationMS, p.Note)
	}
	row("total", r.TotalMS, "")
	return sb.String()
}
