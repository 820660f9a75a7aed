// Package observe provides conveyor observers for structured logging and metrics.
package observe

import (
	"fmt"

	"github.com/fogfactory/conveyor"
	"github.com/rs/zerolog"
)

// Log returns an observer writing one line per event to l.
// Item events are logged at debug level, end of stream events at info level.
func Log(l zerolog.Logger) conveyor.Observer {
	return func(e conveyor.Event) {
		var event *zerolog.Event
		switch e.Kind {
		case conveyor.EventProduced, conveyor.EventConsumed:
			event = l.Debug().Str("item", fmt.Sprint(e.Item))
		default:
			event = l.Info()
		}
		event.
			Str("run_id", e.RunID).
			Str("task", e.Task).
			Str("event", e.Kind.String()).
			Int("queue_size", e.QueueSize).
			Time("at", e.Time).
			Msg(message(e.Kind))
	}
}

func message(kind conveyor.EventKind) string {
	switch kind {
	case conveyor.EventProduced:
		return "produced item"
	case conveyor.EventConsumed:
		return "consumed item"
	case conveyor.EventEndSent:
		return "produced end of stream, producer exiting"
	case conveyor.EventEndReceived:
		return "received end of stream, consumer exiting"
	default:
		return "pipeline event"
	}
}
