// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bodyx

import (
	"sync"

	"github.com/gammazero/deque"
	"github.com/rs/zerolog"
)

// TaskDestination is an execution context that accepts zero-argument units
// of work and runs them later, FIFO relative to other work queued to it.
// Enqueue must never run the task synchronously.
//
// Enqueue fails with ErrDestinationClosed (possibly wrapped) once the
// destination is torn down; the task is discarded.
type TaskDestination interface {
	Enqueue(op Op, task func()) error
}

// TaskQueue is the standard TaskDestination: an unbounded FIFO drained by a
// single pump goroutine, giving one deterministic point of ordering for all
// consumer-visible callbacks queued to it.
type TaskQueue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	tasks  deque.Deque[func()]
	closed bool
	done   chan struct{}
	drop   DropPolicy
}

// QueueOption configures a TaskQueue.
type QueueOption func(*TaskQueue)

// WithDropPolicy sets how the queue reports tasks enqueued after Close.
func WithDropPolicy(p DropPolicy) QueueOption {
	return func(q *TaskQueue) {
		if p != nil {
			q.drop = p
		}
	}
}

// WithLogger is shorthand for WithDropPolicy(LogDropPolicy{Logger: l}).
func WithLogger(l zerolog.Logger) QueueOption {
	return func(q *TaskQueue) { q.drop = LogDropPolicy{Logger: l} }
}

// NewTaskQueue starts a task queue and its pump goroutine. Stop it with
// Close. By default, tasks dropped after Close are reported to stderr; see
// WithDropPolicy.
func NewTaskQueue(opts ...QueueOption) *TaskQueue {
	q := &TaskQueue{
		done: make(chan struct{}),
		drop: defaultDropPolicy(),
	}
	q.cond = sync.NewCond(&q.mu)
	for _, opt := range opts {
		opt(q)
	}
	go q.pump()
	return q
}

func (q *TaskQueue) pump() {
	defer close(q.done)
	for {
		q.mu.Lock()
		for q.tasks.Len() == 0 && !q.closed {
			q.cond.Wait()
		}
		if q.tasks.Len() == 0 {
			q.mu.Unlock()
			return
		}
		task := q.tasks.PopFront()
		q.mu.Unlock()
		task()
	}
}

// Enqueue appends task to the queue. It never runs task on this call stack.
// After Close, the task is discarded, the queue's DropPolicy is notified,
// and ErrDestinationClosed is returned.
func (q *TaskQueue) Enqueue(op Op, task func()) error {
	if task == nil {
		panic("bodyx: nil task")
	}
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		q.drop.OnDrop(op, ErrDestinationClosed)
		return ErrDestinationClosed
	}
	q.tasks.PushBack(task)
	q.cond.Signal()
	q.mu.Unlock()
	return nil
}

// Flush blocks until every task enqueued before the call has run. On a
// closed queue it returns immediately.
func (q *TaskQueue) Flush() {
	ran := make(chan struct{})
	if q.Enqueue(OpTask, func() { close(ran) }) != nil {
		return
	}
	<-ran
}

// Close stops accepting work, lets the pump drain tasks already queued, and
// returns once the pump has exited. Close is idempotent.
//
// Close must not be called from a task running on this queue; the drain
// would wait on itself.
func (q *TaskQueue) Close() {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		q.cond.Signal()
	}
	q.mu.Unlock()
	<-q.done
}
