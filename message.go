package conveyor

import "fmt"

// Message is a queue element which is either a data item or the end of the stream.
type Message[T any] struct {
	value T
	end   bool
}

// Data wraps a data item.
func Data[T any](v T) Message[T] {
	return Message[T]{value: v}
}

// EndOfStream returns the marker closing a stream of T.
func EndOfStream[T any]() Message[T] {
	return Message[T]{end: true}
}

// Value returns the wrapped item, or the zero value for the end of the stream.
func (m Message[T]) Value() T {
	return m.value
}

// IsEnd reports whether m marks the end of the stream.
func (m Message[T]) IsEnd() bool {
	return m.end
}

func (m Message[T]) String() string {
	if m.end {
		return "<end of stream>"
	}
	return fmt.Sprint(m.value)
}

// wrapped is implemented by Message so that events report the data item rather than its envelope.
type wrapped interface {
	payload() any
}

func (m Message[T]) payload() any {
	return m.value
}

func unwrap(item any) any {
	if w, ok := item.(wrapped); ok {
		return w.payload()
	}
	return item
}
