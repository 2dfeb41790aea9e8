package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log = newLogger(zapcore.InfoLevel)

func newLogger(level zapcore.Level) *zap.Logger {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	conf := zap.NewProductionConfig()
	conf.EncoderConfig = encoderConfig
	conf.Level = zap.NewAtomicLevelAt(level)
	l, err := conf.Build(zap.AddCallerSkip(1))
	if err != nil {
		return zap.NewNop()
	}
	return l
}

// Init replaces the process logger with one logging at the given level
// ("debug", "info", "warn", "error").
func Init(level string) error {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return err
	}
	log = newLogger(lvl)
	return nil
}

// Use swaps the process logger, mainly for tests that want zaptest/observer output.
func Use(l *zap.Logger) {
	log = l.WithOptions(zap.AddCallerSkip(1))
}

func Debug(msg string, fields ...zap.Field) {
	log.Debug(msg, fields...)
}

func Info(msg string, fields ...zap.Field) {
	log.Info(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	log.Warn(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	log.Error(msg, fields...)
}

func Sync() error {
	return log.Sync()
}
