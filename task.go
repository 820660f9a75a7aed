package conveyor

import "time"

// Producer drains a source slice into a queue and terminates the stream with an end marker.
type Producer[T any] struct {
	queue  *Queue[T]
	source []T
	end    T
	opts   options
}

// NewProducer builds a producer putting source items into q, followed by end.
func NewProducer[T any](q *Queue[T], source []T, end T, opts ...Option) *Producer[T] {
	return &Producer[T]{queue: q, source: source, end: end, opts: buildOptions(opts)}
}

// Run puts every source item in order, then the end marker exactly once. It blocks whenever the queue is full.
//
// The end marker is put even if Run panics midway, so the consumer is never left waiting for a stream which will not finish.
func (p *Producer[T]) Run() {
	defer func() {
		p.queue.Put(p.end)
		p.emit(EventEndSent, nil)
	}()

	for _, item := range p.source {
		p.queue.Put(item)
		p.emit(EventProduced, item)
	}
}

func (p *Producer[T]) emit(kind EventKind, item any) {
	if p.opts.observer == nil {
		return
	}
	p.opts.observer.notify(Event{
		RunID:     p.opts.runID,
		Task:      TaskProducer,
		Kind:      kind,
		Item:      unwrap(item),
		QueueSize: p.queue.Size(),
		Time:      time.Now(),
	})
}

// Consumer drains a queue into its destination until it reads the end marker.
type Consumer[T any] struct {
	queue       *Queue[T]
	isEnd       func(T) bool
	destination []T
	taken       int // items read from the queue, end marker and drained items included
	opts        options
}

// NewConsumer builds a consumer reading q until isEnd reports true.
func NewConsumer[T any](q *Queue[T], isEnd func(T) bool, opts ...Option) *Consumer[T] {
	return &Consumer[T]{queue: q, isEnd: isEnd, opts: buildOptions(opts)}
}

// Run gets items in order and appends them to the destination. It returns after reading the end marker, which is not stored.
//
// If Run panics, the queue is drained up to the end marker before the panic goes on, so the producer never stays blocked on a full queue.
// Draining stops early if the end check panics again, since the end marker can no longer be recognised.
func (c *Consumer[T]) Run() {
	defer func() {
		if r := recover(); r != nil {
			c.drain()
			panic(r)
		}
	}()

	for {
		item := c.get()
		if c.isEnd(item) {
			c.emit(EventEndReceived, nil)
			return
		}
		c.destination = append(c.destination, item)
		c.emit(EventConsumed, item)
	}
}

// Destination returns the items consumed so far. It must only be read once Run returned.
func (c *Consumer[T]) Destination() []T {
	return c.destination
}

// Taken returns how many items Run read from the queue, including the end marker and drained items.
// It must only be read once Run returned or panicked.
func (c *Consumer[T]) Taken() int {
	return c.taken
}

func (c *Consumer[T]) get() T {
	item := c.queue.Get()
	c.taken++
	return item
}

func (c *Consumer[T]) drain() {
	for {
		end, ok := c.safeIsEnd(c.get())
		if end || !ok {
			return
		}
	}
}

// safeIsEnd reports ok == false when the end check panics.
func (c *Consumer[T]) safeIsEnd(item T) (end, ok bool) {
	defer func() {
		if recover() != nil {
			end, ok = false, false
		}
	}()
	return c.isEnd(item), true
}

func (c *Consumer[T]) emit(kind EventKind, item any) {
	if c.opts.observer == nil {
		return
	}
	c.opts.observer.notify(Event{
		RunID:     c.opts.runID,
		Task:      TaskConsumer,
		Kind:      kind,
		Item:      unwrap(item),
		QueueSize: c.queue.Size(),
		Time:      time.Now(),
	})
}
