// Package logrus adapts a *logrus.Entry to ltsv.Logger.
package logrus

import (
	"github.com/sirupsen/logrus"
	"github.com/unkn0wn-root/ltsv"
)

var _ ltsv.Logger = LogrusLogger{}

// LogrusLogger passes Fields straight through as logrus.Fields. Set E to an
// entry carrying per-file context (e.g. the input path) to tag every record
// event with it.
type LogrusLogger struct{ E *logrus.Entry }

func (l LogrusLogger) Debug(msg string, f ltsv.Fields) {
	l.E.WithFields(logrus.Fields(f)).Debug(msg)
}
func (l LogrusLogger) Info(msg string, f ltsv.Fields) { l.E.WithFields(logrus.Fields(f)).Info(msg) }
func (l LogrusLogger) Warn(msg string, f ltsv.Fields) { l.E.WithFields(logrus.Fields(f)).Warn(msg) }
func (l LogrusLogger) Error(msg string, f ltsv.Fields) {
	l.E.WithFields(logrus.Fields(f)).Error(msg)
}
