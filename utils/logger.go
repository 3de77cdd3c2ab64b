package utils

import (
	"log"
	"sync"

	"reviewdesk/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	loggerMu sync.Mutex
	logger   *zap.Logger
)

// NewLogger builds a JSON production logger or a colored development logger. An empty
// or unknown level means info in production and debug elsewhere.
func NewLogger(production bool, level string) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	fallback := zapcore.DebugLevel
	if production {
		cfg = zap.NewProductionConfig()
		fallback = zapcore.InfoLevel
	} else {
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	lvl, err := zapcore.ParseLevel(level)
	if level == "" || err != nil {
		lvl = fallback
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.InitialFields = map[string]interface{}{"service": "reviewdesk"}
	return cfg.Build()
}

// InitializeLogger builds the process logger from AppConfig and installs it as zap's global.
func InitializeLogger() {
	l, err := NewLogger(config.IsProduction(), config.AppConfig.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	SetLogger(l)
}

// GetLogger returns the process logger, building it on first use.
func GetLogger() *zap.Logger {
	loggerMu.Lock()
	l := logger
	loggerMu.Unlock()
	if l == nil {
		InitializeLogger()
		return GetLogger()
	}
	return l
}

// SetLogger replaces the process logger.
func SetLogger(l *zap.Logger) {
	loggerMu.Lock()
	logger = l
	loggerMu.Unlock()
	zap.ReplaceGlobals(l)
}
