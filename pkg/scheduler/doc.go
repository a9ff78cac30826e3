// Package scheduler batches component updates into one flush per turn.
//
// A turn is a synchronous stretch of work: an event handler, a dispatched
// callback, an initial mount. Jobs queued during a turn are deduplicated and
// run together once the turn's synchronous work is done, in the microtask
// phase that Drain executes:
//
//	s := scheduler.New()
//	job := scheduler.NewJob(instanceUpdate)
//	s.Turn(func() {
//	    s.QueueJob(job)
//	    s.QueueJob(job) // no-op, already pending
//	})                  // job ran exactly once
//
// NextTick callbacks are microtasks queued behind everything queued so far,
// so they observe the state after the pending flush.
//
// A Scheduler is not safe for concurrent use. Loop serializes work from
// other goroutines onto the goroutine running Loop.Run.
package scheduler
