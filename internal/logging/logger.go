package logging

import (
	"fmt"
	"io"
	"time"
)

// Logger provides optional verbose logging, a dedicated diagnostic stream,
// and lightweight timing helpers. Diagnostics (per-file failures, cycles)
// always go to Err so they never mix with the success output on Out.
type Logger struct {
	Out     io.Writer
	Err     io.Writer
	Verbose bool
}

func New(out, errw io.Writer, verbose bool) Logger {
	return Logger{Out: out, Err: errw, Verbose: verbose}
}

func (l Logger) Infof(format string, args ...any) {
	if l.Out == nil {
		return
	}
	fmt.Fprintf(l.Out, format+"\n", args...)
}

func (l Logger) Errorf(format string, args ...any) {
	if l.Err == nil {
		return
	}
	fmt.Fprintf(l.Err, format+"\n", args...)
}

func (l Logger) Verbosef(format string, args ...any) {
	if !l.Verbose {
		return
	}
	l.Infof("Verbose: "+format, args...)
}

// Measure returns a stop function that logs the elapsed time when called.
func (l Logger) Measure(label string) func() {
	if !l.Verbose {
		return func() {}
	}
	start := time.Now()
	return func() {
		elapsed := time.Since(start).Round(time.Millisecond)
		l.Verbosef("%s took %s", label, elapsed)
	}
}
