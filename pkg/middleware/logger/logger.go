package logger

import (
	// 外部依赖
	"context"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// RequestIDKey is the per-request correlation key set by LogWithWriter and
// picked up by every logging function.
const RequestIDKey = "x-request-id"

type ServiceEnv struct {
	Platform string
	Service  string
	Env      string
}

type LogConfig struct {
	Path     string
	LogLevel string
	ServiceEnv
}

// Before Init the package logs nowhere, so library-style use stays silent.
var sugar = zap.NewNop().Sugar()

// Init builds the process logger: JSON lines to a rotated file, plus a
// console echo outside prod.
func Init(conf *LogConfig) {
	level, err := zapcore.ParseLevel(conf.LogLevel)
	if err != nil {
		level = zapcore.InfoLevel
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	fileOut := zapcore.AddSync(&lumberjack.Logger{
		Filename:   conf.Path,
		MaxSize:    100,
		MaxBackups: 10,
		MaxAge:     30,
		Compress:   true,
	})

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), fileOut, level),
	}
	if conf.Env != "prod" {
		consoleCfg := zap.NewDevelopmentEncoderConfig()
		consoleCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(consoleCfg), zapcore.AddSync(os.Stdout), level))
	}

	log := zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(1)).With(
		zap.String("platform", conf.Platform),
		zap.String("service", conf.Service),
		zap.String("env", conf.Env),
	)
	sugar = log.Sugar()
}

// Close flushes buffered log lines. Call it once on shutdown.
func Close() {
	_ = sugar.Sync()
}

func with(ctx context.Context) *zap.SugaredLogger {
	if ctx != nil {
		if id, ok := ctx.Value(RequestIDKey).(string); ok && id != "" {
			return sugar.With("request_id", id)
		}
	}
	return sugar
}

func Debugf(ctx context.Context, format string, args ...any) {
	with(ctx).Debugf(format, args...)
}

func Infof(ctx context.Context, format string, args ...any) {
	with(ctx).Infof(format, args...)
}

func Warnf(ctx context.Context, format string, args ...any) {
	with(ctx).Warnf(format, args...)
}

func Errorf(ctx context.Context, format string, args ...any) {
	with(ctx).Errorf(format, args...)
}

func Fatalf(ctx context.Context, format string, args ...any) {
	with(ctx).Fatalf(format, args...)
}
