package log

import (
	"fmt"
	"io"
)

// Logger is a minimal wrapper around an io.Writer, with an independent gate
// on its trace-level output so the analyzer can honor the "verbal" CLI flag
// without threading a bool through every call site.
type Logger struct {
	io.Writer
	verbal bool
}

// New returns a new logger which writes to w. Trace output is off by
// default; enable it with SetVerbal(true).
func New(w io.Writer) *Logger {
	return &Logger{Writer: w}
}

// SetVerbal toggles whether Tracef emits anything.
func (l *Logger) SetVerbal(v bool) {
	l.verbal = v
}

// Logln logs a line unconditionally.
func (l *Logger) Logln(args ...interface{}) {
	fmt.Fprintln(l, args...)
}

// Logf logs a formatted string unconditionally.
func (l *Logger) Logf(f string, args ...interface{}) {
	fmt.Fprintf(l, f, args...)
}

// Tracef logs a formatted, lazyut-prefixed line, but only when verbal mode
// is enabled — used for the per-file resolution tracing spec.md's verbal
// flag describes (e.g. "child not found in restored tree" during a
// snapshot diff).
func (l *Logger) Tracef(format string, args ...interface{}) {
	if !l.verbal {
		return
	}
	fmt.Fprintf(l, "lazyut: "+format+"\n", args...)
}
