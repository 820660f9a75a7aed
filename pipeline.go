package conveyor

import (
	"fmt"
	"reflect"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// Result is the outcome of a run. It is built once both tasks returned and never changes afterwards.
type Result[T any] struct {
	runID       string
	destination []T
	produced    int
	consumed    int
}

// RunID returns the identifier of the run, as reported in events.
func (r Result[T]) RunID() string {
	return r.runID
}

// Destination returns a copy of the consumed items, in consumption order.
func (r Result[T]) Destination() []T {
	return append([]T{}, r.destination...)
}

// Produced returns the number of source items.
func (r Result[T]) Produced() int {
	return r.produced
}

// Consumed returns the number of items stored in the destination.
func (r Result[T]) Consumed() int {
	return r.consumed
}

// Run moves source through a queue of the given capacity, with one producer and one consumer goroutine, and returns the consumed items.
//
// Every item is data, including the zero value of T: the stream is terminated by an EndOfStream message.
// An invalid capacity fails with ErrInvalidCapacity before any goroutine starts. If a task panics, the error matches ErrTaskPanicked
// and the result holds what was consumed before the failure.
func Run[T any](source []T, capacity int, opts ...Option) (Result[T], error) {
	return run(source, capacity, Data[T], EndOfStream[T](), Message[T].IsEnd, Message[T].Value, opts)
}

// RunWithSentinel is like Run but marks the end of the stream with sentinel, compared with == by the consumer.
//
// A source item equal to sentinel ends the stream early; the remaining items are discarded, never consumed. Pass the zero value of T to use the
// default sentinel. A sentinel holding a value which cannot be compared, like a slice stored in an interface, fails with ErrInvalidSentinel.
func RunWithSentinel[T comparable](source []T, capacity int, sentinel T, opts ...Option) (Result[T], error) {
	if v := reflect.ValueOf(any(sentinel)); v.IsValid() && !v.Comparable() {
		return Result[T]{}, fmt.Errorf("%w: %T is not comparable", ErrInvalidSentinel, sentinel)
	}
	isEnd := func(v T) bool { return v == sentinel }
	return run(source, capacity, identity[T], sentinel, isEnd, identity[T], opts)
}

func identity[T any](t T) T {
	return t
}

// run wires a queue of E, a producer and a consumer, with wrap and unwrap converting source items to queue elements and back.
func run[T, E any](source []T, capacity int, wrap func(T) E, end E, isEnd func(E) bool, unwrap func(E) T, opts []Option) (Result[T], error) {
	queue, err := New[E](capacity)
	if err != nil {
		return Result[T]{}, err
	}

	o := buildOptions(opts)
	if o.runID == "" {
		o.runID = uuid.NewString()
	}
	taskOpts := []Option{WithObserver(o.observer), WithRunID(o.runID)}

	elements := lo.Map(source, func(item T, _ int) E { return wrap(item) })
	producer := NewProducer(queue, elements, end, taskOpts...)
	consumer := NewConsumer(queue, isEnd, taskOpts...)

	pool, err := newTaskPool(o.poolOpts...)
	if err != nil {
		return Result[T]{}, fmt.Errorf("starting task pool: %w", err)
	}
	defer pool.Release()

	pool.Go(TaskProducer, producer.Run)
	pool.Go(TaskConsumer, func() {
		// A sentinel inside the data or a failed end check stops the consumer early.
		// Take what the producer still has to put, end marker included, so it can return.
		defer func() {
			for range len(elements) + 1 - consumer.Taken() {
				queue.Get()
			}
		}()
		consumer.Run()
	})
	err = pool.Wait()

	destination := lo.Map(consumer.Destination(), func(e E, _ int) T { return unwrap(e) })
	return Result[T]{
		runID:       o.runID,
		destination: destination,
		produced:    len(source),
		consumed:    len(destination),
	}, err
}
