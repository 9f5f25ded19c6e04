// Package runlog provides Minerva's diagnostic logger and per-run metadata
// store: the ambient logging and persistence surface a CLI driver needs
// around the physics core, kept off the core itself per its no-error-taxonomy
// design.
package runlog

import (
	"io"
	"log"
	"os"
)

// Logger is a leveled wrapper around the standard logger, gated by Verbose
// the way the source's MINERVA_LOG macro compiles out below NDEBUG.
type Logger struct {
	verbose bool
	info    *log.Logger
	debug   *log.Logger
}

// New builds a Logger writing to w with the "[minerva]" prefix. Debug output
// is only emitted when verbose is true.
func New(w io.Writer, verbose bool) *Logger {
	return &Logger{
		verbose: verbose,
		info:    log.New(w, "[minerva] ", log.LstdFlags),
		debug:   log.New(w, "[minerva:debug] ", log.LstdFlags),
	}
}

// Default returns a Logger writing to stderr.
func Default(verbose bool) *Logger {
	return New(os.Stderr, verbose)
}

// Infof logs unconditionally.
func (l *Logger) Infof(format string, args ...any) {
	l.info.Printf(format, args...)
}

// Debugf logs only when the logger was constructed with verbose = true.
func (l *Logger) Debugf(format string, args ...any) {
	if !l.verbose {
		return
	}
	l.debug.Printf(format, args...)
}
