package trace

import (
	"bufio"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
)

type nopTracer struct{}

func (nopTracer) Emit(*Event)   {}
func (nopTracer) Flush() error  { return nil }
func (nopTracer) Close() error  { return nil }
func (nopTracer) Level() Level  { return LevelOff }
func (nopTracer) Enabled() bool { return false }

// Nop discards everything.
var Nop Tracer = nopTracer{}

// seq orders events across all sinks of a process.
var seq atomic.Uint64

// Stream writes each event as it arrives. The first write error is
// latched: later events are dropped and Flush reports it.
type Stream struct {
	mu     sync.Mutex
	w      *bufio.Writer
	dst    io.Writer
	level  Level
	format Format
	err    error
}

// NewStream returns a Stream writing to w.
func NewStream(w io.Writer, level Level, format Format) *Stream {
	return &Stream{w: bufio.NewWriter(w), dst: w, level: level, format: format}
}

func (s *Stream) Emit(ev *Event) {
	if ev == nil || !s.level.ShouldEmit(ev.Scope) {
		return
	}
	e := ev.clone()
	e.Seq = seq.Add(1)
	line := FormatEvent(&e, s.format)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return
	}
	if _, err := s.w.Write(line); err != nil {
		s.err = err
		return
	}
	// pass-level span ends are flushed right away
	if e.Kind == KindSpanEnd && e.Scope <= ScopePass {
		s.err = s.w.Flush()
	}
}

func (s *Stream) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return fmt.Errorf("trace output: %w", s.err)
	}
	return s.w.Flush()
}

func (s *Stream) Close() error {
	err := s.Flush()
	if c, ok := s.dst.(io.Closer); ok {
		if cerr := c.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

func (s *Stream) Level() Level  { return s.level }
func (s *Stream) Enabled() bool { return s.level > LevelOff }

// Recorder keeps the most recent events in memory.
type Recorder struct {
	mu      sync.Mutex
	buf     []Event
	next    int
	size    int
	dropped uint64
	level   Level
}

// NewRecorder keeps up to capacity events (1024 when capacity <= 0).
func NewRecorder(capacity int, level Level) *Recorder {
	if capacity <= 0 {
		capacity = 1024
	}
	return &Recorder{buf: make([]Event, capacity), level: level}
}

func (r *Recorder) Emit(ev *Event) {
	if ev == nil || !r.level.ShouldEmit(ev.Scope) {
		return
	}
	e := ev.clone()
	e.Seq = seq.Add(1)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.size == len(r.buf) {
		r.dropped++
	} else {
		r.size++
	}
	r.buf[r.next] = e
	r.next = (r.next + 1) % len(r.buf)
}

// Events returns the recorded events, oldest first.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, 0, r.size)
	start := (r.next - r.size + len(r.buf)) % len(r.buf)
	for i := 0; i < r.size; i++ {
		out = append(out, r.buf[(start+i)%len(r.buf)])
	}
	return out
}

// Dropped returns how many events were overwritten.
func (r *Recorder) Dropped() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dropped
}

// Dump writes the recorded events to w.
func (r *Recorder) Dump(w io.Writer, format Format) error {
	if n := r.Dropped(); n > 0 && format != FormatNDJSON {
		if _, err := fmt.Fprintf(w, "(%d earlier events dropped)\n", n); err != nil {
			return err
		}
	}
	events := r.Events()
	for i := range events {
		if _, err := w.Write(FormatEvent(&events[i], format)); err != nil {
			return err
		}
	}
	return nil
}

func (r *Recorder) Flush() error  { return nil }
func (r *Recorder) Close() error  { return nil }
func (r *Recorder) Level() Level  { return r.level }
func (r *Recorder) Enabled() bool { return r.level > LevelOff }

// tee fans events out to several tracers.
type tee struct {
	level Level
	sinks []Tracer
}

// Tee returns a tracer that emits to every sink.
func Tee(level Level, sinks ...Tracer) Tracer {
	return &tee{level: level, sinks: sinks}
}

func (t *tee) Emit(ev *Event) {
	for _, s := range t.sinks {
		s.Emit(ev)
	}
}

func (t *tee) Flush() error {
	var first error
	for _, s := range t.sinks {
		if err := s.Flush(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (t *tee) Close() error {
	var first error
	for _, s := range t.sinks {
		if err := s.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (t *tee) Level() Level  { return t.level }
func (t *tee) Enabled() bool { return t.level > LevelOff }
