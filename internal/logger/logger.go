// Package logger is the leveled logger shared by the benchmark runner and its
// command.
package logger

import (
	"io"
	"log"
	"os"

	"github.com/fatih/color"
)

type Logger interface {
	Debugf(format string, v ...any)
	Infof(format string, v ...any)
	Errorf(format string, v ...any)
}

type stdLogger struct {
	l       *log.Logger
	verbose bool
	debug   string
	info    string
	err     string
}

// New returns a Logger writing to w.  Level tags are colorized unless color
// output is disabled (see github.com/fatih/color.NoColor).  Debug messages are
// dropped unless verbose is set.
func New(w io.Writer, verbose bool) Logger {
	return &stdLogger{
		l:       log.New(w, "", log.LstdFlags),
		verbose: verbose,
		debug:   color.New(color.FgCyan).Sprint("[DEBUG] "),
		info:    color.New(color.FgGreen).Sprint("[INFO] "),
		err:     color.New(color.FgRed, color.Bold).Sprint("[ERROR] "),
	}
}

// Default returns a Logger writing to stderr.
func Default() Logger { return New(os.Stderr, false) }

func (l *stdLogger) Debugf(format string, v ...any) {
	if l.verbose {
		l.l.Printf(l.debug+format, v...)
	}
}

func (l *stdLogger) Infof(format string, v ...any)  { l.l.Printf(l.info+format, v...) }
func (l *stdLogger) Errorf(format string, v ...any) { l.l.Printf(l.err+format, v...) }

type nopLogger struct{}

// Nop returns a Logger that discards everything.
func Nop() Logger { return nopLogger{} }

func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Infof(string, ...any)  {}
func (nopLogger) Errorf(string, ...any) {}
