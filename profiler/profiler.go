// Package profiler captures per-frame, per-stage timing for the
// scheduler: when each system's three stages started and ended, and the
// controller's own frame bracket, kept as a bounded FIFO history.
package profiler

import (
	"sync"
	"time"
)

// defaultMaxHistory caps the retained frame history. At 5000 entries this
// amounts to roughly 80 seconds of history at 60 FPS, preserved verbatim
// from the original's max_history_size rather than tuned further.
const defaultMaxHistory = 5000

// FrameTiming is one frame's complete timing record: the controller's own
// start/end instants, plus every system's [SystemTiming].
type FrameTiming struct {
	ControllerStart time.Time
	ControllerEnd   time.Time
	SystemTimings   []SystemTiming
}

// ControllerTime is the wall-clock time the controller spent on the
// frame — the closest thing to a delta-time measurement this profiler
// offers.
func (f FrameTiming) ControllerTime() time.Duration {
	if f.ControllerStart.IsZero() || f.ControllerEnd.IsZero() {
		return 0
	}

	return f.ControllerEnd.Sub(f.ControllerStart)
}

// SystemTiming is one system's three stage timing brackets for a single
// frame.
type SystemTiming struct {
	Label string

	FrameInitStart time.Time
	FrameInitEnd   time.Time

	MainProcessStart time.Time
	MainProcessEnd   time.Time

	PostProcessStart time.Time
	PostProcessEnd   time.Time
}

func (s SystemTiming) FrameInitTime() time.Duration   { return s.FrameInitEnd.Sub(s.FrameInitStart) }
func (s SystemTiming) MainProcessTime() time.Duration { return s.MainProcessEnd.Sub(s.MainProcessStart) }
func (s SystemTiming) PostProcessTime() time.Duration { return s.PostProcessEnd.Sub(s.PostProcessStart) }

// SystemProfiler records one system's stage brackets for the frame
// currently in progress. A system times each stage by wrapping its work
// in the matching Time* method, mirroring the original's
// frame_init/main_process/post_process RAII closures.
type SystemProfiler struct {
	mu sync.Mutex

	label string

	frameInitStart, frameInitEnd     time.Time
	mainProcessStart, mainProcessEnd time.Time
	postProcessStart, postProcessEnd time.Time
}

// TimeFrameInit runs f, recording its start and end instants.
func (sp *SystemProfiler) TimeFrameInit(f func()) {
	sp.mu.Lock()
	sp.frameInitStart = time.Now()
	sp.mu.Unlock()

	f()

	sp.mu.Lock()
	sp.frameInitEnd = time.Now()
	sp.mu.Unlock()
}

// TimeMainProcess runs f, recording its start and end instants.
func (sp *SystemProfiler) TimeMainProcess(f func()) {
	sp.mu.Lock()
	sp.mainProcessStart = time.Now()
	sp.mu.Unlock()

	f()

	sp.mu.Lock()
	sp.mainProcessEnd = time.Now()
	sp.mu.Unlock()
}

// TimePostProcess runs f, recording its start and end instants.
func (sp *SystemProfiler) TimePostProcess(f func()) {
	sp.mu.Lock()
	sp.postProcessStart = time.Now()
	sp.mu.Unlock()

	f()

	sp.mu.Lock()
	sp.postProcessEnd = time.Now()
	sp.mu.Unlock()
}

// reset snapshots the system's three brackets into a [SystemTiming] and
// clears them for the next frame.
func (sp *SystemProfiler) reset() SystemTiming {
	sp.mu.Lock()
	defer sp.mu.Unlock()

	t := SystemTiming{
		Label:            sp.label,
		FrameInitStart:   sp.frameInitStart,
		FrameInitEnd:     sp.frameInitEnd,
		MainProcessStart: sp.mainProcessStart,
		MainProcessEnd:   sp.mainProcessEnd,
		PostProcessStart: sp.postProcessStart,
		PostProcessEnd:   sp.postProcessEnd,
	}

	sp.frameInitStart, sp.frameInitEnd = time.Time{}, time.Time{}
	sp.mainProcessStart, sp.mainProcessEnd = time.Time{}, time.Time{}
	sp.postProcessStart, sp.postProcessEnd = time.Time{}, time.Time{}

	return t
}

// FrameProfiler coordinates one [SystemProfiler] per registered system
// and assembles a capped FIFO history of completed [FrameTiming] records.
type FrameProfiler struct {
	maxHistory int

	historyMu sync.RWMutex
	history   []FrameTiming

	profilers []*SystemProfiler
	pending   FrameTiming
}

// New returns a profiler with the default history cap.
func New() *FrameProfiler {
	return NewWithHistoryLimit(defaultMaxHistory)
}

// NewWithHistoryLimit returns a profiler retaining at most maxHistory
// frames, oldest dropped first.
func NewWithHistoryLimit(maxHistory int) *FrameProfiler {
	return &FrameProfiler{maxHistory: maxHistory}
}

// AddSystem registers a new system under label and returns its
// [SystemProfiler].
func (fp *FrameProfiler) AddSystem(label string) *SystemProfiler {
	sp := &SystemProfiler{label: label}
	fp.profilers = append(fp.profilers, sp)

	return sp
}

// BeginFrame marks the controller's start instant for the frame now in
// progress.
func (fp *FrameProfiler) BeginFrame() {
	fp.pending = FrameTiming{ControllerStart: time.Now()}
}

// FinishFrame marks the controller's end instant, collects every
// registered system's timing for the frame, and appends the assembled
// record to history, dropping the oldest entry if the cap is reached.
func (fp *FrameProfiler) FinishFrame() {
	fp.pending.ControllerEnd = time.Now()

	pending := fp.pending
	fp.pending = FrameTiming{}

	pending.SystemTimings = make([]SystemTiming, len(fp.profilers))
	for i, sp := range fp.profilers {
		pending.SystemTimings[i] = sp.reset()
	}

	fp.historyMu.Lock()
	defer fp.historyMu.Unlock()

	if len(fp.history) >= fp.maxHistory {
		fp.history = fp.history[1:]
	}

	fp.history = append(fp.history, pending)
}

// History returns a copy of every retained frame timing, oldest first.
func (fp *FrameProfiler) History() []FrameTiming {
	fp.historyMu.RLock()
	defer fp.historyMu.RUnlock()

	out := make([]FrameTiming, len(fp.history))
	copy(out, fp.history)

	return out
}

// Len returns the number of frames currently retained in history.
func (fp *FrameProfiler) Len() int {
	fp.historyMu.RLock()
	defer fp.historyMu.RUnlock()

	return len(fp.history)
}
