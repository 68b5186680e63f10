package logger

import (
	"log"
	"os"

	usecasecontract "github.com/mikiasgoitom/Learnify/internal/usecase/contract"
)

// StdLogger writes level-prefixed lines through the standard log package.
type StdLogger struct {
	std   *log.Logger
	debug bool
}

// NewStdLogger creates a StdLogger with debug output enabled.
func NewStdLogger() usecasecontract.IAppLogger {
	return NewLeveledLogger(true)
}

// NewLeveledLogger creates a StdLogger; debug=false drops Debugf lines.
func NewLeveledLogger(debug bool) *StdLogger {
	return &StdLogger{
		std:   log.New(os.Stderr, "learnify ", log.LstdFlags|log.Lmsgprefix),
		debug: debug,
	}
}

func (l *StdLogger) Debugf(format string, args ...interface{}) {
	if !l.debug {
		return
	}
	l.std.Printf("[DEBUG] "+format, args...)
}

func (l *StdLogger) Infof(format string, args ...interface{}) {
	l.std.Printf("[INFO] "+format, args...)
}

func (l *StdLogger) Warnf(format string, args ...interface{}) {
	l.std.Printf("[WARN] "+format, args...)
}

// Warningf is an alias of Warnf.
func (l *StdLogger) Warningf(format string, args ...interface{}) {
	l.Warnf(format, args...)
}

func (l *StdLogger) Errorf(format string, args ...interface{}) {
	l.std.Printf("[ERROR] "+format, args...)
}

// Fatalf logs and exits the process.
func (l *StdLogger) Fatalf(format string, args ...interface{}) {
	l.std.Fatalf("[FATAL] "+format, args...)
}
