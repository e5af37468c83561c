package dbg

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func build(cfg zap.Config, opts []zap.Option) *zap.Logger {
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.DisableCaller = true

	logger, err := cfg.Build(opts...)
	if err != nil {
		panic(err)
	}
	return logger
}

func NewDevLogger(opts ...zap.Option) *zap.Logger {
	return build(zap.NewDevelopmentConfig(), opts)
}

func NewProdLogger(opts ...zap.Option) *zap.Logger {
	return build(zap.NewProductionConfig(), opts)
}
