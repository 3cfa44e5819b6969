package main

import (
	stdslog "log/slog"
	"os"

	"github.com/rs/zerolog"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/unkn0wn-root/ltsv"
	"github.com/unkn0wn-root/ltsv/internal/config"
	ltsvlogrus "github.com/unkn0wn-root/ltsv/log/logrus"
	ltsvslog "github.com/unkn0wn-root/ltsv/log/slog"
	ltsvzap "github.com/unkn0wn-root/ltsv/log/zap"
	ltsvzerolog "github.com/unkn0wn-root/ltsv/log/zerolog"
)

// newLogger builds the configured backend writing to stderr. The returned
// func flushes it.
func newLogger(cfg config.Config) (ltsv.Logger, func(), error) {
	lvl, _ := config.ParseLevel(cfg.Level)
	switch cfg.Logger {
	case "logrus":
		l := logrus.New()
		l.SetOutput(os.Stderr)
		l.SetLevel(map[config.Level]logrus.Level{
			config.LevelDebug: logrus.DebugLevel,
			config.LevelInfo:  logrus.InfoLevel,
			config.LevelWarn:  logrus.WarnLevel,
			config.LevelError: logrus.ErrorLevel,
		}[lvl])
		return ltsvlogrus.LogrusLogger{E: logrus.NewEntry(l)}, func() {}, nil
	case "zerolog":
		l := zerolog.New(os.Stderr).With().Timestamp().Logger().Level(map[config.Level]zerolog.Level{
			config.LevelDebug: zerolog.DebugLevel,
			config.LevelInfo:  zerolog.InfoLevel,
			config.LevelWarn:  zerolog.WarnLevel,
			config.LevelError: zerolog.ErrorLevel,
		}[lvl])
		return ltsvzerolog.Logger{L: l}, func() {}, nil
	case "slog":
		h := stdslog.NewTextHandler(os.Stderr, &stdslog.HandlerOptions{Level: map[config.Level]stdslog.Level{
			config.LevelDebug: stdslog.LevelDebug,
			config.LevelInfo:  stdslog.LevelInfo,
			config.LevelWarn:  stdslog.LevelWarn,
			config.LevelError: stdslog.LevelError,
		}[lvl]})
		return ltsvslog.Logger{L: stdslog.New(h)}, func() {}, nil
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(zapcore.Level(lvl))
	l, err := zc.Build()
	if err != nil {
		return nil, nil, err
	}
	return ltsvzap.ZapLogger{L: l}, func() { _ = l.Sync() }, nil
}
