package conveyor

import "errors"

var (
	// ErrInvalidCapacity is returned when a queue is built with a capacity lower than 1.
	ErrInvalidCapacity = errors.New("invalid capacity")
	// ErrInvalidSentinel is returned when a sentinel value cannot be compared with ==.
	ErrInvalidSentinel = errors.New("invalid sentinel")
	// ErrTaskPanicked is returned when the producer or the consumer of a run panicked.
	ErrTaskPanicked = errors.New("task panicked")
)
