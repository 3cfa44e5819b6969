// Package zerolog adapts a zerolog.Logger to ltsv.Logger.
package zerolog

import (
	"github.com/rs/zerolog"
	"github.com/unkn0wn-root/ltsv"
)

var _ ltsv.Logger = Logger{}

type Logger struct{ L zerolog.Logger }

func (z Logger) Debug(msg string, f ltsv.Fields) { z.L.Debug().Fields(map[string]any(f)).Msg(msg) }
func (z Logger) Info(msg string, f ltsv.Fields)  { z.L.Info().Fields(map[string]any(f)).Msg(msg) }
func (z Logger) Warn(msg string, f ltsv.Fields)  { z.L.Warn().Fields(map[string]any(f)).Msg(msg) }
func (z Logger) Error(msg string, f ltsv.Fields) { z.L.Error().Fields(map[string]any(f)).Msg(msg) }
