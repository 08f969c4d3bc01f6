package utils

import (
    "os"
    "path/filepath"
    "sync"

    "go.uber.org/zap"
    "go.uber.org/zap/zapcore"
)

var (
    once   sync.Once
    logger *zap.Logger
)

// Logger returns the process-wide logger. Events go to stderr so the
// trainer's progress output owns stdout; setting LOG_FILE tees JSON events
// into that file as well.
func Logger() *zap.Logger {
    once.Do(func() {
        encCfg := zap.NewProductionEncoderConfig()
        encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
        enc := zapcore.NewJSONEncoder(encCfg)
        lvl := zapcore.InfoLevel

        cores := []zapcore.Core{
            zapcore.NewCore(enc, zapcore.AddSync(os.Stderr), lvl),
        }

        if logFile := os.Getenv("LOG_FILE"); logFile != "" {
            _ = os.MkdirAll(filepath.Dir(logFile), 0o755)
            f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
            if err == nil {
                cores = append(cores, zapcore.NewCore(enc, zapcore.AddSync(f), lvl))
            }
        }

        logger = zap.New(zapcore.NewTee(cores...))
    })
    return logger
}
