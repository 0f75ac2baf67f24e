package logging

import (
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/janisto/little-lemon/internal/platform/timeutil"
)

// ErrAlreadyConfigured is returned by Configure when the logger was built
// before it was called. Only the level is applied in that case.
var ErrAlreadyConfigured = errors.New("logger already built")

// Options identifies the service in every log line and sets the minimum level.
type Options struct {
	Service string
	Version string
	Level   zapcore.Level
}

// DefaultOptions is used when the first log line is written before Configure.
func DefaultOptions() Options {
	return Options{Service: "little-lemon", Version: "dev", Level: zapcore.InfoLevel}
}

var (
	loggerOnce sync.Once
	baseLogger *zap.Logger
	loggerErr  error
	level      = zap.NewAtomicLevel()
)

// severities maps zap levels to Cloud Logging severity names.
var severities = map[zapcore.Level]string{
	zapcore.DebugLevel:  "DEBUG",
	zapcore.InfoLevel:   "INFO",
	zapcore.WarnLevel:   "WARNING",
	zapcore.ErrorLevel:  "ERROR",
	zapcore.DPanicLevel: "CRITICAL",
	zapcore.PanicLevel:  "ALERT",
	zapcore.FatalLevel:  "EMERGENCY",
}

func encodeSeverity(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	s, ok := severities[l]
	if !ok {
		s = "DEFAULT"
	}
	enc.AppendString(s)
}

func encodeTimeMicros(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.UTC().Format(timeutil.RFC3339Micros))
}

func build(opts Options) {
	level.SetLevel(opts.Level)
	cfg := zap.Config{
		Level:            level,
		Encoding:         "json",
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stdout"},
		Sampling:         &zap.SamplingConfig{Initial: 100, Thereafter: 100},
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "timestamp",
			LevelKey:       "severity",
			MessageKey:     "message",
			CallerKey:      "caller",
			StacktraceKey:  "stack_trace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeTime:     encodeTimeMicros,
			EncodeLevel:    encodeSeverity,
			EncodeDuration: zapcore.StringDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		},
	}
	// serviceContext groups Error Reporting entries by service and version.
	service := zap.Dict("serviceContext",
		zap.String("service", opts.Service),
		zap.String("version", opts.Version),
	)
	baseLogger, loggerErr = cfg.Build(zap.AddCaller(), zap.Fields(service))
	if loggerErr != nil {
		baseLogger = zap.NewNop()
	}
}

// Configure builds the process logger from opts. Call it once at startup,
// before the first log line.
func Configure(opts Options) error {
	built := false
	loggerOnce.Do(func() {
		build(opts)
		built = true
	})
	if !built {
		level.SetLevel(opts.Level)
		return ErrAlreadyConfigured
	}
	return loggerErr
}

// Logger returns the process-wide zap.Logger instance.
func Logger() *zap.Logger {
	loggerOnce.Do(func() { build(DefaultOptions()) })
	return baseLogger
}

// Sync flushes buffered log entries. Call during shutdown.
func Sync() error {
	return Logger().Sync()
}
