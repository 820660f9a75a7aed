package conveyor

import (
	"time"

	"github.com/panjf2000/ants/v2"
)

// EventKind identifies what happened in a run.
type EventKind int

const (
	// EventProduced is emitted by the producer after each Put of a data item.
	EventProduced EventKind = iota
	// EventConsumed is emitted by the consumer after each data item stored in the destination.
	EventConsumed
	// EventEndSent is emitted once by the producer after the end marker was put.
	EventEndSent
	// EventEndReceived is emitted once by the consumer when it reads the end marker.
	EventEndReceived
)

func (k EventKind) String() string {
	switch k {
	case EventProduced:
		return "produced"
	case EventConsumed:
		return "consumed"
	case EventEndSent:
		return "end_sent"
	case EventEndReceived:
		return "end_received"
	default:
		return "unknown"
	}
}

// Task names used in events.
const (
	TaskProducer = "producer"
	TaskConsumer = "consumer"
)

// Event describes a single step of a run.
type Event struct {
	RunID     string
	Task      string
	Kind      EventKind
	Item      any // nil for end of stream events
	QueueSize int // snapshot taken right after the step
	Time      time.Time
}

// Observer receives run events. A nil Observer discards events.
//
// Observers are called synchronously from the producer and the consumer goroutines, so they should return quickly.
// A panic inside an Observer is recovered and ignored.
type Observer func(Event)

// Observers combines several observers into one, called in order.
func Observers(obs ...Observer) Observer {
	return func(e Event) {
		for _, o := range obs {
			o.notify(e)
		}
	}
}

func (o Observer) notify(e Event) {
	if o == nil {
		return
	}
	defer func() { _ = recover() }()
	o(e)
}

// Option configures a run, a Producer or a Consumer.
type Option func(*options)

type options struct {
	observer Observer
	runID    string
	poolOpts []ants.Option
}

// WithObserver sets the observer notified of every step.
func WithObserver(o Observer) Option {
	return func(opts *options) { opts.observer = o }
}

// WithRunID sets the identifier reported in events and results. By default Run generates a random UUID.
func WithRunID(id string) Option {
	return func(opts *options) { opts.runID = id }
}

// WithPoolOptions forwards options to the goroutine pool running the producer and the consumer.
// Nonblocking pools are not supported: both tasks must be accepted.
func WithPoolOptions(poolOpts ...ants.Option) Option {
	return func(opts *options) { opts.poolOpts = append(opts.poolOpts, poolOpts...) }
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
