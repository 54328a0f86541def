package sample

import (
	"sync"
	"time"
)

// Recorder buffers samples appended by concurrently completing requests.
// Once dispatch is finished the buffer is handed off with Drain and the
// recorder starts empty again.
type Recorder struct {
	mu      sync.Mutex
	samples []Sample
	start   time.Time
	stop    time.Time
	now     func() time.Time
}

func NewRecorder() *Recorder {
	return &Recorder{now: time.Now}
}

func NewRecorderWithClock(now func() time.Time) *Recorder {
	return &Recorder{now: now}
}

// Start marks the beginning of the measured window.
func (r *Recorder) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.start = r.now()
	r.stop = time.Time{}
}

// Stop marks the end of the measured window.
func (r *Recorder) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stop = r.now()
}

func (r *Recorder) Record(s Sample) {
	r.mu.Lock()
	r.samples = append(r.samples, s)
	r.mu.Unlock()
}

func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.samples)
}

// Elapsed returns the measured window. While running it is measured up to now;
// before Start it is zero.
func (r *Recorder) Elapsed() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.elapsedLocked()
}

func (r *Recorder) elapsedLocked() time.Duration {
	if r.start.IsZero() {
		return 0
	}
	end := r.stop
	if end.IsZero() {
		end = r.now()
	}
	return end.Sub(r.start)
}

// Drain transfers ownership of the buffered samples to the caller together
// with the measured wall clock, and resets the recorder.
func (r *Recorder) Drain() ([]Sample, time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := r.samples
	elapsed := r.elapsedLocked()

	r.samples = nil
	r.start = time.Time{}
	r.stop = time.Time{}

	return out, elapsed
}
