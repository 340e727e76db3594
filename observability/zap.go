package observability

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapObserver writes events to a zap.Logger. Used by the terminal client,
// which logs to a file so the screen is left to the UI.
type ZapObserver struct {
	logger *zap.Logger
}

// NewZapObserver creates a ZapObserver that emits to the given logger.
func NewZapObserver(logger *zap.Logger) *ZapObserver {
	return &ZapObserver{logger: logger}
}

// ZapLevel maps this level to the corresponding zapcore.Level.
func (l Level) ZapLevel() zapcore.Level {
	switch {
	case l <= 8:
		return zapcore.DebugLevel
	case l <= 12:
		return zapcore.InfoLevel
	case l <= 16:
		return zapcore.WarnLevel
	default:
		return zapcore.ErrorLevel
	}
}

func (o *ZapObserver) OnEvent(ctx context.Context, event Event) {
	ce := o.logger.Check(event.Level.ZapLevel(), string(event.Type))
	if ce == nil {
		return
	}

	fields := make([]zap.Field, 0, len(event.Data)+2)
	fields = append(fields, zap.String("source", event.Source))
	if event.SessionID != "" {
		fields = append(fields, zap.String("session", event.SessionID))
	}
	for k, v := range event.Data {
		fields = append(fields, zap.Any(k, v))
	}
	if !event.Timestamp.IsZero() {
		ce.Time = event.Timestamp
	}
	ce.Write(fields...)
}
