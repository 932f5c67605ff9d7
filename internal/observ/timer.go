// Package observ measures the phases of an audit run.
package observ

import (
	"fmt"
	"strings"
	"time"
)

// Phase is one measured step of a run.
type Phase struct {
	Name string
	Dur  time.Duration
	Note string
}

// Timer collects phases in the order they are started. Not safe for
// concurrent use; a nil *Timer measures nothing.
type Timer struct {
	created time.Time
	phases  []Phase
	now     func() time.Time
}

func NewTimer() *Timer {
	return &Timer{created: time.Now(), now: time.Now}
}

// Start opens a phase. Calling the returned func closes it with a note;
// only the first call counts.
func (t *Timer) Start(name string) func(note string) {
	if t == nil {
		return func(string) {}
	}
	idx := len(t.phases)
	t.phases = append(t.phases, Phase{Name: name})
	began := t.now()
	done := false
	return func(note string) {
		if done {
			return
		}
		done = true
		t.phases[idx].Dur = t.now().Sub(began)
		t.phases[idx].Note = note
	}
}

// PhaseReport is the serialisable form of a phase.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Share      float64 `json:"share"` // доля от суммы фаз, 0..1
	Note       string  `json:"note,omitempty"`
}

// Report is a snapshot of a timer.
type Report struct {
	TotalMS float64       `json:"total_ms"` // sum of phases
	WallMS  float64       `json:"wall_ms"`  // since NewTimer
	Phases  []PhaseReport `json:"phases"`
}

func (t *Timer) Report() Report {
	if t == nil || len(t.phases) == 0 {
		return Report{}
	}
	var total time.Duration
	for _, p := range t.phases {
		total += p.Dur
	}
	r := Report{
		TotalMS: millis(total),
		WallMS:  millis(t.now().Sub(t.created)),
		Phases:  make([]PhaseReport, 0, len(t.phases)),
	}
	for _, p := range t.phases {
		share := 0.0
		if total > 0 {
			share = float64(p.Dur) / float64(total)
		}
		r.Phases = append(r.Phases, PhaseReport{
			Name:       p.Name,
			DurationMS: millis(p.Dur),
			Share:      share,
			Note:       p.Note,
		})
	}
	return r
}

// Summary renders the report for --timings.
func (r Report) Summary() string {
	width := len("total")
	for _, p := range r.Phases {
		width = max(width, len(p.Name))
	}
	var b strings.Builder
	b.WriteString("timings:\n")
	for _, p := range r.Phases {
		fmt.Fprintf(&b, "  %-*s %9.2f ms %4.0f%%", width, p.Name, p.DurationMS, p.Share*100)
		if p.Note != "" {
			b.WriteString("  " + p.Note)
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "  %-*s %9.2f ms (wall %.2f ms)\n", width, "total", r.TotalMS, r.WallMS)
	return b.String()
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
