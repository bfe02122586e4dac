package ir

import "fmt"

// Tracer receives one line of text per peephole rewrite a pass performs.
// Passes that don't rewrite anything never call it. A nil Tracer is always
// safe to pass — passes call it through the trace method, which nil-checks
// before invoking it.
type Tracer func(line string)

func (t Tracer) trace(format string, args ...interface{}) {
	if t == nil {
		return
	}
	t(fmt.Sprintf(format, args...))
}
