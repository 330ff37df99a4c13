package reach

import (
	"fmt"
	"log"
	"os"
)

// defaultLogger writes diagnostics to stderr with a [reach] prefix.
func defaultLogger() *log.Logger {
	return log.New(os.Stderr, "[reach] ", 0)
}

// warnf logs contract violations, collaborator failures, and lifecycle
// misuse. These never interrupt the tick; they only explain why an
// interaction silently failed to engage.
func (w *World) warnf(format string, args ...any) {
	if w.logger == nil {
		return
	}
	_ = w.logger.Output(2, "warning: "+fmt.Sprintf(format, args...))
}

// debugf logs state transitions and dropped events when debug mode is on.
func (w *World) debugf(format string, args ...any) {
	if !w.debug || w.logger == nil {
		return
	}
	_ = w.logger.Output(2, fmt.Sprintf(format, args...))
}

// recoverQuery runs fn and converts a panic from a spatial query into a
// logged failure. Returns false if fn panicked.
func (w *World) recoverQuery(what string, fn func()) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			w.warnf("%s: spatial query panicked: %v", what, r)
			ok = false
		}
	}()
	fn()
	return true
}
