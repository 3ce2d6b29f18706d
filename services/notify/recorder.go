package notify

import (
	"strings"
	"sync"

	"github.com/santarita/portal/core"
)

// Recorder keeps emitted notices in memory; tests assert against it.
type Recorder struct {
	mu      sync.Mutex
	notices []Notice
}

var _ core.Notifier = (*Recorder)(nil)

func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) record(level Level, format string, args []interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, newNotice(level, format, args))
}

func (r *Recorder) Info(format string, args ...interface{})    { r.record(LevelInfo, format, args) }
func (r *Recorder) Success(format string, args ...interface{}) { r.record(LevelSuccess, format, args) }
func (r *Recorder) Warn(format string, args ...interface{})    { r.record(LevelWarning, format, args) }
func (r *Recorder) Error(format string, args ...interface{})   { r.record(LevelError, format, args) }

// Notices returns a copy of everything recorded, in emission order.
func (r *Recorder) Notices() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notice, len(r.notices))
	copy(out, r.notices)
	return out
}

// ByLevel returns recorded notices of one severity.
func (r *Recorder) ByLevel(level Level) []Notice {
	var out []Notice
	for _, n := range r.Notices() {
		if n.Level == level {
			out = append(out, n)
		}
	}
	return out
}

// Contains reports whether any notice message contains the substring.
func (r *Recorder) Contains(substr string) bool {
	for _, n := range r.Notices() {
		if strings.Contains(n.Message, substr) {
			return true
		}
	}
	return false
}

// Reset drops everything recorded so far.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = nil
}
