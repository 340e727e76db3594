// Package observability carries structured events out of the session store,
// inference client and kernel to whatever logging backend the host wires in.
// Level values follow the OpenTelemetry SeverityNumber ranges.
package observability

import (
	"context"
	"log/slog"
	"time"
)

// Level represents event severity aligned with OTel SeverityNumber ranges.
type Level int

const (
	LevelVerbose Level = 5  // OTel DEBUG (5-8)
	LevelInfo    Level = 9  // OTel INFO (9-12)
	LevelWarning Level = 13 // OTel WARN (13-16)
	LevelError   Level = 17 // OTel ERROR (17-20)
)

// String returns the OTel severity text for the level.
func (l Level) String() string {
	switch {
	case l <= 4:
		return "TRACE"
	case l <= 8:
		return "DEBUG"
	case l <= 12:
		return "INFO"
	case l <= 16:
		return "WARN"
	case l <= 20:
		return "ERROR"
	default:
		return "FATAL"
	}
}

// SlogLevel maps this level to the corresponding slog.Level.
func (l Level) SlogLevel() slog.Level {
	switch {
	case l <= 8:
		return slog.LevelDebug
	case l <= 12:
		return slog.LevelInfo
	case l <= 16:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

// EventType names an event. Packages declare their own constants, e.g.
// "agent.request.start" or "kernel.send.settle".
type EventType string

// Event is a single structured observation. Data never carries the user's
// credential or message text, only sizes and outcomes.
type Event struct {
	Type      EventType
	Level     Level
	Timestamp time.Time
	Source    string
	SessionID string
	Data      map[string]any
}

// Observer receives events.
type Observer interface {
	OnEvent(ctx context.Context, event Event)
}

// Emit stamps the event with the current time when unset and forwards it to
// o. A nil observer is ignored.
func Emit(ctx context.Context, o Observer, event Event) {
	if o == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	o.OnEvent(ctx, event)
}
