package logger

import (
	"os"
	"strings"

	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogConfig holds file logging configuration
type LogConfig struct {
	Level      string `env:"LOG_LEVEL"`
	Filename   string `env:"LOG_FILENAME"`
	MaxSize    int    `env:"LOG_MAX_SIZE"` // MB
	MaxAge     int    `env:"LOG_MAX_AGE"`  // days
	MaxBackups int    `env:"LOG_MAX_BACKUPS"`
	Daily      bool   `env:"LOG_DAILY"`
}

// Lg is the global logger instance
var Lg *zap.Logger

// Init initializes the global logger. In development mode logs go to stderr
// with a console encoder; otherwise they are written to the rotating file.
func Init(cfg *LogConfig, mode string) error {
	level := zapcore.InfoLevel
	if err := level.UnmarshalText([]byte(strings.ToLower(cfg.Level))); err != nil {
		level = zapcore.InfoLevel
	}

	var core zapcore.Core
	if mode == "development" {
		encoderCfg := zap.NewDevelopmentEncoderConfig()
		encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		core = zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderCfg),
			zapcore.Lock(os.Stderr),
			level,
		)
	} else {
		writer := &lumberjack.Logger{
			Filename:   cfg.Filename,
			MaxSize:    cfg.MaxSize,
			MaxAge:     cfg.MaxAge,
			MaxBackups: cfg.MaxBackups,
			LocalTime:  true,
		}
		encoderCfg := zap.NewProductionEncoderConfig()
		encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		core = zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderCfg),
			zapcore.AddSync(writer),
			level,
		)
	}

	Lg = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	zap.ReplaceGlobals(zap.New(core, zap.AddCaller()))
	return nil
}

func ensure() *zap.Logger {
	if Lg == nil {
		Lg, _ = zap.NewDevelopment(zap.AddCallerSkip(1))
	}
	return Lg
}

func Debug(msg string, fields ...zap.Field) { ensure().Debug(msg, fields...) }

func Info(msg string, fields ...zap.Field) { ensure().Info(msg, fields...) }

func Warn(msg string, fields ...zap.Field) { ensure().Warn(msg, fields...) }

func Error(msg string, fields ...zap.Field) { ensure().Error(msg, fields...) }

func Fatal(msg string, fields ...zap.Field) { ensure().Fatal(msg, fields...) }

// Sync flushes buffered log entries
func Sync() {
	if Lg != nil {
		_ = Lg.Sync()
	}
}
