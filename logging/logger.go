// api/logging/logger.go

package logger

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var Log *zap.Logger

// InitLogger builds the process-wide logger. Output goes to stdout and to
// rotatable files under logDir, with errors duplicated into their own file.
// The directory is created if missing so a fresh deployment can start
// without provisioning steps.
func InitLogger(logDir string) {
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		panic(err)
	}

	config := zap.NewProductionConfig()

	if levelName := os.Getenv("LOG_LEVEL"); levelName != "" {
		if level, err := zapcore.ParseLevel(levelName); err == nil {
			config.Level.SetLevel(level)
		}
	}

	config.OutputPaths = []string{"stdout", filepath.Join(logDir, "commander.log")}
	config.ErrorOutputPaths = []string{"stderr", filepath.Join(logDir, "commander_error.log")}

	config.EncoderConfig.CallerKey = "caller"
	config.EncoderConfig.StacktraceKey = "stacktrace"
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var err error
	// CallerSkip(1) so call sites report themselves, not this wrapper.
	Log, err = config.Build(zap.AddCallerSkip(1))
	if err != nil {
		panic(err)
	}

	zap.ReplaceGlobals(Log)
}

func Debug(msg string, fields ...zap.Field) { Log.Debug(msg, fields...) }
func Info(msg string, fields ...zap.Field)  { Log.Info(msg, fields...) }
func Warn(msg string, fields ...zap.Field)  { Log.Warn(msg, fields...) }
func Error(msg string, fields ...zap.Field) { Log.Error(msg, fields...) }
func Fatal(msg string, fields ...zap.Field) { Log.Fatal(msg, fields...) }

// Sync flushes buffered entries; call on shutdown.
func Sync() error {
	return Log.Sync()
}
