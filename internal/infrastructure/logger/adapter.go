package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"agent-genesis/internal/application/port/output"
)

var _ output.LoggerPort = (*ZapAdapter)(nil)

// ZapAdapter implements LoggerPort on a zap sugared logger writing
// JSON lines to a per-run file under ./log.
type ZapAdapter struct {
	sugar *zap.SugaredLogger
}

func NewZapAdapter(name string) (*ZapAdapter, error) {
	if err := os.MkdirAll("log", 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	filename := fmt.Sprintf("%s_%s.log", time.Now().Format("2006-01-02_15-04-05"), sanitize(name))

	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{filepath.Join("log", filename)}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.EncoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder
	cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)

	base, err := cfg.Build(zap.WithCaller(false))
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	return &ZapAdapter{sugar: base.Sugar()}, nil
}

func (l *ZapAdapter) Debug(msg string, args ...any) { l.sugar.Debugw(msg, args...) }
func (l *ZapAdapter) Info(msg string, args ...any)  { l.sugar.Infow(msg, args...) }
func (l *ZapAdapter) Warn(msg string, args ...any)  { l.sugar.Warnw(msg, args...) }
func (l *ZapAdapter) Error(msg string, args ...any) { l.sugar.Errorw(msg, args...) }

func (l *ZapAdapter) WithField(key string, value any) output.LoggerPort {
	return &ZapAdapter{sugar: l.sugar.With(key, value)}
}

func (l *ZapAdapter) WithFields(fields map[string]any) output.LoggerPort {
	args := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	return &ZapAdapter{sugar: l.sugar.With(args...)}
}

func (l *ZapAdapter) Close() error {
	return l.sugar.Sync()
}

func sanitize(s string) string {
	result := make([]rune, 0, len(s))
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			result = append(result, r)
		} else {
			result = append(result, '_')
		}
	}
	s = string(result)
	if s == "" {
		return "build"
	}
	if len(s) > 60 {
		s = s[:60]
	}
	return s
}
