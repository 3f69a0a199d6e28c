package observ

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds the service logger. Every line carries the service
// name and the workspace it serves.
func NewLogger(env, level, workspace string) (*zap.Logger, error) {
	return loggerConfig(env, level, workspace).Build()
}

func loggerConfig(env, level, workspace string) zap.Config {
	var config zap.Config

	if env == "production" {
		config = zap.NewProductionConfig()
		// audit and lifecycle lines must not be sampled away
		config.Sampling = nil
		config.EncoderConfig.TimeKey = "time"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zapLevel, err := zapcore.ParseLevel(level)
	if err != nil {
		zapLevel = zapcore.InfoLevel
	}
	config.Level = zap.NewAtomicLevelAt(zapLevel)

	fields := map[string]interface{}{"service": "propmaster"}
	if workspace != "" {
		fields["workspace"] = workspace
	}
	config.InitialFields = fields
	return config
}
