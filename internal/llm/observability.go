package llm

import "github.com/rs/zerolog"

// CallEvent records metadata about a single assistant round trip.
type CallEvent struct {
	Provider  Provider
	Model     string
	Role      Role
	Turn      int
	Attempts  int
	LatencyMs int64
	Success   bool
	ErrorCode string
}

// Observer receives events about assistant calls for logging and metrics.
type Observer interface {
	OnCallComplete(event CallEvent)
}

// LogObserver writes call events to a zerolog logger at debug level.
type LogObserver struct {
	log zerolog.Logger
}

// NewLogObserver creates an Observer that logs events to log.
func NewLogObserver(log zerolog.Logger) *LogObserver {
	return &LogObserver{log: log}
}

func (o *LogObserver) OnCallComplete(event CallEvent) {
	ev := o.log.Debug()
	if !event.Success {
		ev = o.log.Warn().Str("error_code", event.ErrorCode)
	}
	ev.Str("provider", string(event.Provider)).
		Str("model", event.Model).
		Str("role", string(event.Role)).
		Int("turn", event.Turn).
		Int("attempts", event.Attempts).
		Int64("latency_ms", event.LatencyMs).
		Msg("assistant call")
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(CallEvent) {}
