package internallogger

import (
	"os"
	"sort"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type LoggerOption func(*zap.Config, *zapcore.Level, *int)

// ZapLoggerAdapter implements types.Logger on top of zap. Components talk to the adapter
// through the interface only; zap never leaks into the rest of the module.
type ZapLoggerAdapter struct {
	mu          sync.Mutex
	logger      *zap.Logger
	atomicLevel zap.AtomicLevel
	encConfig   zapcore.EncoderConfig
	baseCore    zapcore.Core
	baseFields  []zap.Field
	callerOn    bool
	callerDepth int
	sinks       map[string]sinkEntry
}

// NewLogger initializes a new ZapLoggerAdapter with configurable options.
func NewLogger(options ...LoggerOption) *ZapLoggerAdapter {
	config := zap.NewProductionConfig()
	level := zapcore.InfoLevel
	callerDepth := 3 // Default caller depth

	for _, option := range options {
		option(&config, &level, &callerDepth)
	}

	encConfig := standardEncoderConfig()
	if config.Development {
		encConfig = zap.NewDevelopmentEncoderConfig()
	}

	atomicLevel := zap.NewAtomicLevelAt(level)
	baseCore := zapcore.NewCore(
		zapcore.NewJSONEncoder(encConfig),
		zapcore.Lock(os.Stdout),
		atomicLevel,
	)

	keys := make([]string, 0, len(config.InitialFields))
	for key := range config.InitialFields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	baseFields := make([]zap.Field, 0, len(keys))
	for _, key := range keys {
		baseFields = append(baseFields, zap.Any(key, config.InitialFields[key]))
	}

	z := &ZapLoggerAdapter{
		atomicLevel: atomicLevel,
		encConfig:   encConfig,
		baseCore:    baseCore,
		baseFields:  baseFields,
		callerOn:    true,
		callerDepth: callerDepth,
		sinks:       make(map[string]sinkEntry),
	}
	z.rebuildLoggerLocked()
	return z
}

func (z *ZapLoggerAdapter) rebuildLoggerLocked() {
	cores := make([]zapcore.Core, 0, 1+len(z.sinks))
	cores = append(cores, z.baseCore)
	for _, entry := range z.sinks {
		cores = append(cores, entry.core)
	}
	combined := zapcore.NewTee(cores...)
	opts := []zap.Option{zap.AddCallerSkip(z.callerDepth)}
	if z.callerOn {
		opts = append(opts, zap.AddCaller())
	}
	logger := zap.New(combined, opts...)
	if len(z.baseFields) > 0 {
		logger = logger.With(z.baseFields...)
	}
	z.logger = logger
}
