package conveyor

import (
	"fmt"
	"sync"
)

// Queue is a fixed capacity FIFO buffer with blocking Put and Get.
//
// Each transition wakes at most one waiter, which is only correct with a single producer goroutine and a single consumer goroutine.
type Queue[T any] struct {
	mu       sync.Mutex
	notFull  *sync.Cond
	notEmpty *sync.Cond

	buf   []T
	head  int
	count int
}

// New builds an empty queue holding at most capacity items. It fails with ErrInvalidCapacity if capacity is lower than 1.
func New[T any](capacity int) (*Queue[T], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: %d, must be positive", ErrInvalidCapacity, capacity)
	}
	q := &Queue[T]{buf: make([]T, capacity)}
	q.notFull = sync.NewCond(&q.mu)
	q.notEmpty = sync.NewCond(&q.mu)
	return q, nil
}

// Put appends item at the tail of the queue. It blocks while the queue is full.
func (q *Queue[T]) Put(item T) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for q.count == len(q.buf) {
		q.notFull.Wait()
	}
	q.buf[(q.head+q.count)%len(q.buf)] = item
	q.count++
	q.notEmpty.Signal()
}

// Get removes and returns the item at the head of the queue. It blocks while the queue is empty.
func (q *Queue[T]) Get() T {
	q.mu.Lock()
	defer q.mu.Unlock()

	for q.count == 0 {
		q.notEmpty.Wait()
	}
	item := q.buf[q.head]
	var zero T
	q.buf[q.head] = zero // release the reference held by the slot
	q.head = (q.head + 1) % len(q.buf)
	q.count--
	q.notFull.Signal()
	return item
}

// Size returns the number of items currently buffered.
//
// The value is a snapshot and may be stale as soon as it is returned. Use it for observation, never to decide whether Put or Get would block.
func (q *Queue[T]) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.count
}

// Cap returns the capacity the queue was built with.
func (q *Queue[T]) Cap() int {
	return len(q.buf)
}
