package phpsess

import (
	"io"
	"log/slog"

	"github.com/MrEthical07/phpsess/internal/audit"
)

// AuditEventType is the EventType of every event the Strategy emits.
const AuditEventType = "phpsession_authenticate"

// AuditEvent is one authentication outcome record.
type AuditEvent = audit.Event

// AuditSink receives audit events from the dispatcher goroutine.
type AuditSink = audit.Sink

// NoOpSink drops audit events.
type NoOpSink = audit.NoOpSink

// ChannelSink buffers audit events in a channel; read them with Events.
type ChannelSink = audit.ChannelSink

// JSONWriterSink writes one JSON object per line.
type JSONWriterSink = audit.JSONWriterSink

// SlogSink writes audit events through a *slog.Logger.
type SlogSink = audit.SlogSink

// NewChannelSink creates a ChannelSink with the given buffer.
func NewChannelSink(buffer int) *ChannelSink {
	return audit.NewChannelSink(buffer)
}

// NewJSONWriterSink creates a JSONWriterSink over w.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return audit.NewJSONWriterSink(w)
}

// NewSlogSink creates a SlogSink; a nil logger means slog.Default().
func NewSlogSink(logger *slog.Logger) *SlogSink {
	return audit.NewSlogSink(logger)
}

func (c AuditConfig) dispatcherConfig() audit.Config {
	return audit.Config{
		Enabled:    c.Enabled,
		BufferSize: c.BufferSize,
		DropIfFull: c.DropIfFull,
	}
}
