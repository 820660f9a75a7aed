package conveyor

import (
	"errors"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"
)

// taskPoolSize is one worker for the producer and one for the consumer.
const taskPoolSize = 2

// taskPool runs the two tasks of a run, each on its own worker, and collects their failures.
type taskPool struct {
	pool *ants.Pool
	wg   sync.WaitGroup

	mu   sync.Mutex
	errs []error
}

// newTaskPool builds a pool with one worker per task.
func newTaskPool(opts ...ants.Option) (*taskPool, error) {
	pool, err := ants.NewPool(taskPoolSize, opts...)
	if err != nil {
		return nil, err
	}
	return &taskPool{pool: pool}, nil
}

// Go starts task on a worker. If the pool refuses it, the task runs on its own goroutine: both tasks of a run must execute, or the other side blocks forever.
func (p *taskPool) Go(name string, task func()) {
	p.wg.Add(1)
	run := func() {
		defer p.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				p.fail(fmt.Errorf("%w: %s: %v", ErrTaskPanicked, name, r))
			}
		}()
		task()
	}
	if err := p.pool.Submit(run); err != nil {
		go run()
	}
}

// Wait blocks until every started task returned and reports their failures.
func (p *taskPool) Wait() error {
	p.wg.Wait()
	p.mu.Lock()
	defer p.mu.Unlock()
	return errors.Join(p.errs...)
}

// Release releases the pool workers.
func (p *taskPool) Release() {
	if p == nil || p.pool == nil {
		return
	}
	p.pool.Release()
}

func (p *taskPool) fail(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.errs = append(p.errs, err)
}
