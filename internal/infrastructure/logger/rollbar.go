package logger

import (
	"fmt"

	usecasecontract "github.com/mikiasgoitom/Learnify/internal/usecase/contract"
	"github.com/rollbar/rollbar-go"
)

// RollbarLogger reports to Rollbar and echoes every entry to a local logger.
type RollbarLogger struct {
	local usecasecontract.IAppLogger
}

var _ usecasecontract.IAppLogger = (*RollbarLogger)(nil)

// NewRollbarLogger configures the global Rollbar client.
func NewRollbarLogger(token, env, codeVersion string, local usecasecontract.IAppLogger) *RollbarLogger {
	rollbar.SetToken(token)
	rollbar.SetEnvironment(env)
	rollbar.SetCodeVersion(codeVersion)
	rollbar.SetServerRoot("github.com/mikiasgoitom/Learnify")
	if local == nil {
		local = NewStdLogger()
	}
	return &RollbarLogger{local: local}
}

// Close flushes queued items.
func (l *RollbarLogger) Close() {
	rollbar.Close()
}

// Debugf and Infof stay local to keep Rollbar quota for problems.
func (l *RollbarLogger) Debugf(format string, args ...interface{}) {
	l.local.Debugf(format, args...)
}

func (l *RollbarLogger) Infof(format string, args ...interface{}) {
	l.local.Infof(format, args...)
}

func (l *RollbarLogger) Warnf(format string, args ...interface{}) {
	rollbar.Warning(fmt.Sprintf(format, args...))
	l.local.Warnf(format, args...)
}

func (l *RollbarLogger) Warningf(format string, args ...interface{}) {
	l.Warnf(format, args...)
}

func (l *RollbarLogger) Errorf(format string, args ...interface{}) {
	rollbar.Error(fmt.Sprintf(format, args...))
	l.local.Errorf(format, args...)
}

func (l *RollbarLogger) Fatalf(format string, args ...interface{}) {
	rollbar.Critical(fmt.Sprintf(format, args...))
	rollbar.Close()
	l.local.Fatalf(format, args...)
}
