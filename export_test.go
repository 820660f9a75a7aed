package conveyor

import "github.com/panjf2000/ants/v2"

// RunWith exposes the generic runner with a custom end marker and end check.
func RunWith[T any](source []T, capacity int, end T, isEnd func(T) bool, opts ...Option) (Result[T], error) {
	return run(source, capacity, identity[T], end, isEnd, identity[T], opts)
}

// TaskPool exposes the per-run task pool.
type TaskPool = taskPool

// NewTaskPool builds the per-run task pool.
func NewTaskPool(opts ...ants.Option) (*TaskPool, error) {
	return newTaskPool(opts...)
}
