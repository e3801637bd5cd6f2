// Package log contains a leveled logging facade on top of go.uber.org/zap.
//
// Same Logger shape that the earlier hand-rolled version over stdlib "log"
// used, but this is the version its own doc comment asked for: "without
// 'only stdlib' constraint I would use go.uber.org/zap for logging". That
// constraint doesn't apply here.
package log

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger interface is the subset of operations every component in this
// module needs: leveled, with and without formatting, plus a With for
// attaching structured fields (ssid/tsid/tclass, bucket index, ...).
type Logger interface {
	Debug(args ...interface{})
	Debugf(format string, args ...interface{})
	Info(args ...interface{})
	Infof(format string, args ...interface{})
	Warn(args ...interface{})
	Warnf(format string, args ...interface{})
	Error(args ...interface{})
	Errorf(format string, args ...interface{})
	Fatal(args ...interface{})
	Fatalf(format string, args ...interface{})
	Panic(args ...interface{})
	Panicf(format string, args ...interface{})

	With(args ...interface{}) Logger
}

type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
	FatalLevel
)

func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	case FatalLevel:
		return "FATAL"
	}
	panic("log: unexpected level")
}

func (l Level) zapLevel() zapcore.Level {
	switch l {
	case DebugLevel:
		return zapcore.DebugLevel
	case InfoLevel:
		return zapcore.InfoLevel
	case WarnLevel:
		return zapcore.WarnLevel
	case ErrorLevel:
		return zapcore.ErrorLevel
	case FatalLevel:
		return zapcore.FatalLevel
	}
	panic("log: unexpected level")
}

var stringToLevel = map[string]Level{
	"DEBUG": DebugLevel,
	"INFO":  InfoLevel,
	"WARN":  WarnLevel,
	"ERROR": ErrorLevel,
	"FATAL": FatalLevel,
}

func LevelFromString(s string) (Level, error) {
	l, ok := stringToLevel[s]
	if !ok {
		return 0, errInvalidLevel(s)
	}
	return l, nil
}

type errInvalidLevel string

func (e errInvalidLevel) Error() string { return "invalid level " + string(e) }

// NewLogger builds a Logger writing JSON-encoded records at level l or
// above to w.
func NewLogger(l Level, w io.Writer) Logger {
	enc := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	core := zapcore.NewCore(enc, zapcore.AddSync(w), l.zapLevel())
	return &logger{sugar: zap.New(core, zap.AddCallerSkip(1)).Sugar()}
}

// NewNop returns a Logger that discards everything, for tests and as the
// default of components that accept an optional Logger.
func NewNop() Logger {
	return &logger{sugar: zap.NewNop().Sugar()}
}

type logger struct {
	sugar *zap.SugaredLogger
}

func (l *logger) Debug(args ...interface{})                 { l.sugar.Debug(args...) }
func (l *logger) Debugf(format string, args ...interface{}) { l.sugar.Debugf(format, args...) }
func (l *logger) Info(args ...interface{})                  { l.sugar.Info(args...) }
func (l *logger) Infof(format string, args ...interface{})  { l.sugar.Infof(format, args...) }
func (l *logger) Warn(args ...interface{})                  { l.sugar.Warn(args...) }
func (l *logger) Warnf(format string, args ...interface{})  { l.sugar.Warnf(format, args...) }
func (l *logger) Error(args ...interface{})                 { l.sugar.Error(args...) }
func (l *logger) Errorf(format string, args ...interface{}) { l.sugar.Errorf(format, args...) }
func (l *logger) Fatal(args ...interface{})                 { l.sugar.Fatal(args...) }
func (l *logger) Fatalf(format string, args ...interface{}) { l.sugar.Fatalf(format, args...) }
func (l *logger) Panic(args ...interface{})                 { l.sugar.Panic(args...) }
func (l *logger) Panicf(format string, args ...interface{}) { l.sugar.Panicf(format, args...) }

func (l *logger) With(args ...interface{}) Logger {
	return &logger{sugar: l.sugar.With(args...)}
}
