package observ

import "time"

type phase struct {
	name  string
	start time.Time
	dur   time.Duration
	note  string
	open  bool
}

// Timer меряет фазы одного прогона (load, cache, lex, render).
// Не потокобезопасен: у каждого файла свой Timer.
type Timer struct {
	phases []phase
	now    func() time.Time
}

func NewTimer() *Timer {
	return &Timer{phases: make([]phase, 0, 4), now: time.Now}
}

// Begin opens a phase and returns the handle End expects.
func (t *Timer) Begin(name string) int {
	t.phases = append(t.phases, phase{name: name, start: t.now(), open: true})
	return len(t.phases) - 1
}

// End closes the phase idx. Unknown or already closed handles are ignored.
func (t *Timer) End(idx int, note string) {
	if idx < 0 || idx >= len(t.phases) || !t.phases[idx].open {
		return
	}
	p := &t.phases[idx]
	p.dur = t.now().Sub(p.start)
	p.note = note
	p.open = false
}

// Report снимает текущее состояние; незакрытые фазы попадают с нулевой длительностью.
func (t *Timer) Report() Report {
	if len(t.phases) == 0 {
		return Report{}
	}
	var r Report
	for _, p := range t.phases {
		r.Phases = append(r.Phases, PhaseReport{Name: p.name, DurationMS: millis(p.dur), Note: p.note})
		r.TotalMS += millis(p.dur)
	}
	return r
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
