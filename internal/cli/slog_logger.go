package cli

import (
	"fmt"
	"log/slog"

	"github.com/rpgo/drawdown-engine/internal/engine"
)

// slogLogger adapts the engine's minimal Logger interface to log/slog.
type slogLogger struct {
	l *slog.Logger
}

func newSlogLogger(l *slog.Logger) engine.Logger {
	return slogLogger{l: l}
}

func (s slogLogger) Debugf(format string, args ...any) { s.l.Debug(fmt.Sprintf(format, args...)) }
func (s slogLogger) Infof(format string, args ...any)  { s.l.Info(fmt.Sprintf(format, args...)) }
func (s slogLogger) Warnf(format string, args ...any)  { s.l.Warn(fmt.Sprintf(format, args...)) }
func (s slogLogger) Errorf(format string, args ...any) { s.l.Error(fmt.Sprintf(format, args...)) }
