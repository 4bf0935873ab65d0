package session

import (
	"context"
	"log/slog"
	"sync"
)

// taskQueue runs deferred work in FIFO order on a single goroutine.
//
// Defer only appends and returns, so it is safe to call from inside an
// identity provider callback: the deferred task starts after the callback
// has returned, never on the provider's dispatch stack.
type taskQueue struct {
	mu     sync.Mutex
	tasks  []func(context.Context)
	closed bool

	wake   chan struct{}
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
	logger *slog.Logger
}

func newTaskQueue(logger *slog.Logger) *taskQueue {
	ctx, cancel := context.WithCancel(context.Background())
	q := &taskQueue{
		wake:   make(chan struct{}, 1),
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
		logger: logger,
	}

	go q.run()

	return q
}

// Defer appends task to the end of the queue. It reports false once the queue is closed.
func (q *taskQueue) Defer(task func(context.Context)) bool {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()

		return false
	}
	q.tasks = append(q.tasks, task)
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}

	return true
}

// Close drops pending tasks, cancels the running one and waits for the worker to exit.
func (q *taskQueue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		<-q.done

		return
	}
	q.closed = true
	q.tasks = nil
	q.mu.Unlock()

	q.cancel()
	<-q.done
}

func (q *taskQueue) run() {
	defer close(q.done)

	for {
		q.mu.Lock()
		if q.closed {
			q.mu.Unlock()

			return
		}
		if len(q.tasks) == 0 {
			q.mu.Unlock()
			select {
			case <-q.wake:
			case <-q.ctx.Done():
			}

			continue
		}
		task := q.tasks[0]
		q.tasks[0] = nil
		q.tasks = q.tasks[1:]
		q.mu.Unlock()

		q.runTask(task)
	}
}

func (q *taskQueue) runTask(task func(context.Context)) {
	defer func() {
		if r := recover(); r != nil {
			q.logger.Error("Deferred session task panicked", slog.Any("panic", r))
		}
	}()

	task(q.ctx)
}
