package scheduler

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"

	"github.com/vango-dev/minivue/internal/errors"
)

// Loop runs dispatched functions one at a time on a single goroutine, each
// as its own scheduler turn.
type Loop struct {
	sched      *Scheduler
	dispatchCh chan func()
	done       chan struct{}

	mu      sync.Mutex
	running bool
	stopped bool
}

// NewLoop creates a loop for s with the given dispatch queue size.
func NewLoop(s *Scheduler, queueSize int) *Loop {
	if queueSize <= 0 {
		queueSize = 64
	}
	return &Loop{
		sched:      s,
		dispatchCh: make(chan func(), queueSize),
		done:       make(chan struct{}),
	}
}

// Scheduler returns the scheduler whose turns the loop drives.
func (l *Loop) Scheduler() *Scheduler {
	return l.sched
}

// Run processes dispatched functions until ctx is cancelled. A panic in a
// dispatched function stops the loop and is returned as an error.
func (l *Loop) Run(ctx context.Context) error {
	l.mu.Lock()
	if l.running {
		l.mu.Unlock()
		return errors.New("S002")
	}
	l.running = true
	l.mu.Unlock()

	defer func() {
		l.mu.Lock()
		l.stopped = true
		l.mu.Unlock()
		close(l.done)
	}()

	for {
		select {
		case fn := <-l.dispatchCh:
			if err := l.execute(fn); err != nil {
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (l *Loop) execute(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			l.sched.logger.Error("loop turn panicked", "panic", r, "stack", string(debug.Stack()))
			if e, ok := r.(error); ok {
				err = fmt.Errorf("loop turn panicked: %w", e)
			} else {
				err = fmt.Errorf("loop turn panicked: %v", r)
			}
		}
	}()
	l.sched.Turn(fn)
	return nil
}

// Dispatch queues fn to run as a turn on the loop goroutine. It blocks
// while the queue is full and fails once the loop has stopped.
func (l *Loop) Dispatch(fn func()) error {
	l.mu.Lock()
	stopped := l.stopped
	l.mu.Unlock()
	if stopped {
		return errors.New("S001")
	}

	select {
	case l.dispatchCh <- fn:
		return nil
	case <-l.done:
		return errors.New("S001")
	}
}

// Call dispatches fn and waits until its turn, including the flush it
// caused, has finished.
func (l *Loop) Call(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	if err := l.Dispatch(func() {
		fn()
		l.sched.NextTick(func() { close(finished) })
	}); err != nil {
		return err
	}

	select {
	case <-finished:
		return nil
	case <-l.done:
		return errors.New("S001")
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done is closed when Run returns.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}
