// Package taskqueue is a single-consumer FIFO task queue: many goroutines
// enqueue, one worker drains, and task N+1 never starts before task N has
// finished or been abandoned. Clients use it to serialize optimistic order
// updates so that a slow response to an earlier update can never land on top
// of a later one.
package taskqueue

import (
	"context"
	"errors"
	"sync"
	"time"
)

var ErrClosed = errors.New("taskqueue: closed")

// Task runs one unit of work. The context carries the per-task deadline.
type Task func(ctx context.Context) error

type job struct {
	run Task
	err chan error
}

type Queue struct {
	mu      sync.Mutex
	closed  bool
	tasks   chan job
	timeout time.Duration
	done    chan struct{}
}

// New starts the worker goroutine. timeout bounds how long the worker waits
// on any single task before abandoning it and moving on; zero means no bound.
func New(timeout time.Duration) *Queue {
	q := &Queue{
		tasks:   make(chan job, 64),
		timeout: timeout,
		done:    make(chan struct{}),
	}
	go q.drain()
	return q
}

func (q *Queue) drain() {
	defer close(q.done)
	for j := range q.tasks {
		q.runOne(j)
	}
}

func (q *Queue) runOne(j job) {
	ctx := context.Background()
	cancel := context.CancelFunc(func() {})
	if q.timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, q.timeout)
	}
	defer cancel()

	res := make(chan error, 1)
	go func() { res <- j.run(ctx) }()

	select {
	case err := <-res:
		j.err <- err
	case <-ctx.Done():
		// abandon the task after the bounded wait; the queue proceeds and
		// the stuck task's eventual result is discarded
		j.err <- ctx.Err()
	}
}

// Enqueue appends a task and returns a channel that receives exactly one
// error (nil on success) when the task completes or is abandoned. Safe for
// concurrent use.
func (q *Queue) Enqueue(t Task) <-chan error {
	errc := make(chan error, 1)
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		errc <- ErrClosed
		return errc
	}
	q.tasks <- job{run: t, err: errc}
	q.mu.Unlock()
	return errc
}

// Close stops accepting tasks and waits for the already-queued ones to drain.
func (q *Queue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.tasks)
	q.mu.Unlock()
	<-q.done
}
