package logging

import (
	"fmt"
	"io"
	"log/slog"

	"go.uber.org/zap"
)

const (
	BackendSlog = "slog"
	BackendZap  = "zap"
)

// New builds the Logger selected by backend. slog writes JSON lines to w;
// zap uses its production config (JSON to stderr) and ignores w.
func New(backend string, w io.Writer) (Logger, error) {
	switch backend {
	case "", BackendSlog:
		return NewJSONLogger(w, slog.LevelInfo), nil
	case BackendZap:
		zl, err := zap.NewProduction()
		if err != nil {
			return nil, fmt.Errorf("zap init error: %w", err)
		}
		return NewZapLogger(zl), nil
	default:
		return nil, fmt.Errorf("unknown log backend %q", backend)
	}
}
