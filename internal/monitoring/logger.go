package monitoring

import (
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger creates the diagnostic logger used by the pipeline packages.
func NewLogger() *logrus.Logger {
	return &logrus.Logger{
		Out: os.Stderr,
		Formatter: &logrus.TextFormatter{
			DisableTimestamp: true,
		},
		Hooks: make(logrus.LevelHooks),
		Level: logrus.InfoLevel,
	}
}

var defaultLogger = NewLogger()

// Logf is the package-level diagnostic logger. It defaults to an info-level
// logrus logger on stderr but may be replaced by SetLogger so tests or the
// CLI can redirect or mute it.
var Logf func(format string, v ...interface{}) = defaultLogger.Infof

// SetLogger replaces the package logger. Passing nil will set a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// ResetLogger restores the default logrus logger.
func ResetLogger() {
	Logf = defaultLogger.Infof
}
