package log

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the process-wide logger. Until InitLogger runs it writes info and above to stderr.
var Logger = zap.New(
	zapcore.NewCore(getEncoder(), zapcore.Lock(os.Stderr), zapcore.InfoLevel),
).Sugar()

// errorSink receives error and fatal entries when logs go to a file.
var errorSink zapcore.WriteSyncer = zapcore.Lock(os.Stderr)

// LogConfig controls where logs go
type LogConfig struct {
	Filename   string        // log file, empty means stderr only
	MaxSize    int           // megabytes per file before rotation
	MaxBackups int           // rotated files to keep
	MaxAge     int           // days to keep rotated files
	Compress   bool          // gzip rotated files
	Level      zapcore.Level // minimum level
	Console    bool          // also write to stderr
}

// DefaultLogConfig returns the configuration used when nothing is set.
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Filename:   "",
		MaxSize:    10,
		MaxBackups: 10,
		MaxAge:     30,
		Compress:   true,
		Level:      zapcore.InfoLevel,
		Console:    true,
	}
}

// InitLogger replaces Logger. Stdout is reserved for reports, so console output always
// goes to stderr.
func InitLogger(config LogConfig) {
	encoder := getEncoder()

	enabled := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl >= config.Level
	})

	var cores []zapcore.Core

	if config.Filename != "" {
		cores = append(cores, zapcore.NewCore(encoder, getLogWriter(config), enabled))
		cores = append(cores, zapcore.NewCore(encoder, errorSink, zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
			return lvl >= zapcore.ErrorLevel && lvl >= config.Level
		})))
		config.Console = false
	}

	if config.Console {
		cores = append(cores, zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), enabled))
	}

	logger := zap.New(zapcore.NewTee(cores...), zap.AddCaller())
	Logger = logger.Sugar()
}

// Init is InitLogger with defaults, a log file and a level name.
func Init(filename, level string) error {
	config := DefaultLogConfig()
	config.Filename = filename
	if level != "" {
		l, err := zapcore.ParseLevel(level)
		if err != nil {
			return err
		}
		config.Level = l
	}
	InitLogger(config)
	return nil
}

// Close flushes buffered entries.
func Close() {
	if Logger != nil {
		_ = Logger.Sync()
	}
}

func getEncoder() zapcore.Encoder {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	return zapcore.NewConsoleEncoder(encoderConfig)
}

func getLogWriter(config LogConfig) zapcore.WriteSyncer {
	lumberJackLogger := &lumberjack.Logger{
		Filename:   config.Filename,
		MaxSize:    config.MaxSize,
		MaxBackups: config.MaxBackups,
		MaxAge:     config.MaxAge,
		Compress:   config.Compress,
	}
	return zapcore.AddSync(lumberJackLogger)
}
