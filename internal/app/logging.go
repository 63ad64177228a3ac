package app

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// OpenLog opens a console logger that appends to path. An empty path
// returns a logger that discards everything. The returned closer flushes
// the logger and closes the log file.
func OpenLog(path string, level zapcore.Level) (*zap.Logger, io.Closer, error) {
	if path == "" {
		return zap.NewNop(), nopCloser{}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, &OperationError{Op: "open log", Target: path, Err: err}
	}
	logger := NewLogger(f, level)
	return logger, &logFile{logger: logger, f: f}, nil
}

// NewLogger returns a console logger writing to w at level.
func NewLogger(w io.Writer, level zapcore.Level) *zap.Logger {
	enc := zap.NewProductionEncoderConfig()
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(w), level)
	return zap.New(core)
}

type logFile struct {
	logger *zap.Logger
	f      *os.File
}

func (l *logFile) Close() error {
	_ = l.logger.Sync()
	return l.f.Close()
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
