// Package zap adapts a *zap.Logger to ltsv.Logger. It is the default backend
// of the ltsv command, where it reports skipped records and conversion totals.
package zap

import (
	"github.com/unkn0wn-root/ltsv"
	"go.uber.org/zap"
)

var _ ltsv.Logger = ZapLogger{}

// ZapLogger logs each Fields entry as a zap.Any field, so a record's line
// number and error stay structured in JSON output.
type ZapLogger struct{ L *zap.Logger }

func (z ZapLogger) Debug(msg string, f ltsv.Fields) { z.L.Debug(msg, zf(f)...) }
func (z ZapLogger) Info(msg string, f ltsv.Fields)  { z.L.Info(msg, zf(f)...) }
func (z ZapLogger) Warn(msg string, f ltsv.Fields)  { z.L.Warn(msg, zf(f)...) }
func (z ZapLogger) Error(msg string, f ltsv.Fields) { z.L.Error(msg, zf(f)...) }

func zf(f ltsv.Fields) []zap.Field {
	if len(f) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(f))
	for k, v := range f {
		out = append(out, zap.Any(k, v))
	}
	return out
}
