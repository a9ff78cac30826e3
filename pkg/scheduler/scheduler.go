package scheduler

import (
	"context"
	"log/slog"
	"sort"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/vango-dev/minivue/pkg/telemetry"
)

// Job is a unit of deferred work with pointer identity.
type Job struct {
	fn    func()
	name  string
	id    uint64
	hasID bool
}

// NewJob wraps fn in a job. Jobs without an id run after every job that
// has one, in queue order.
func NewJob(fn func()) *Job {
	return &Job{fn: fn}
}

// NewNamedJob wraps fn in a job labelled for logs. Pending jobs run in
// ascending id order; component updates use the instance uid so a parent
// always renders before its children.
func NewNamedJob(name string, id uint64, fn func()) *Job {
	return &Job{fn: fn, name: name, id: id, hasID: true}
}

// ID returns the ordering id and whether the job has one.
func (j *Job) ID() (uint64, bool) {
	return j.id, j.hasID
}

func (j *Job) before(other *Job) bool {
	switch {
	case !j.hasID:
		return false
	case !other.hasID:
		return true
	}
	return j.id < other.id
}

// Name returns the job label.
func (j *Job) Name() string {
	return j.name
}

// Scheduler is a deduplicating job queue flushed in a microtask.
type Scheduler struct {
	pending mapset.Set[*Job]
	order   []*Job

	// flushPending is set from the first QueueJob of a turn until the
	// flush microtask finishes.
	flushPending bool
	flushing     bool
	// flushIndex is the position in order of the job currently running.
	flushIndex int

	microtasks []func()

	logger  *slog.Logger
	metrics *telemetry.Metrics
	tracer  *telemetry.Tracer
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scheduler) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics reports flushes to m.
func WithMetrics(m *telemetry.Metrics) Option {
	return func(s *Scheduler) { s.metrics = m }
}

// WithTracer wraps each flush in a span.
func WithTracer(t *telemetry.Tracer) Option {
	return func(s *Scheduler) { s.tracer = t }
}

// New creates an empty scheduler.
func New(opts ...Option) *Scheduler {
	s := &Scheduler{
		pending: mapset.NewThreadUnsafeSet[*Job](),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// QueueJob adds job to the pending set and schedules a flush if none is
// scheduled. Queuing a job that is already pending does nothing.
func (s *Scheduler) QueueJob(job *Job) {
	if !s.pending.Add(job) {
		return
	}
	s.insert(job)
	if !s.flushPending {
		s.flushPending = true
		s.queueMicrotask(s.flushJobs)
	}
}

// insert places job after every job it does not precede, never before the
// job currently running.
func (s *Scheduler) insert(job *Job) {
	start := 0
	if s.flushing {
		start = s.flushIndex + 1
	}
	tail := s.order[start:]
	i := start + sort.Search(len(tail), func(k int) bool {
		return job.before(tail[k])
	})
	s.order = append(s.order, nil)
	copy(s.order[i+1:], s.order[i:])
	s.order[i] = job
}

// Invalidate drops job from the pending set so the next flush skips it.
func (s *Scheduler) Invalidate(job *Job) {
	s.pending.Remove(job)
}

// Pending reports whether job will run in the next flush.
func (s *Scheduler) Pending(job *Job) bool {
	return s.pending.Contains(job)
}

// Len returns the number of pending jobs.
func (s *Scheduler) Len() int {
	return s.pending.Cardinality()
}

// NextTick runs fn after the microtasks queued so far, including any
// pending flush.
func (s *Scheduler) NextTick(fn func()) {
	s.queueMicrotask(fn)
}

// Flushing reports whether a flush is executing.
func (s *Scheduler) Flushing() bool {
	return s.flushing
}

func (s *Scheduler) queueMicrotask(fn func()) {
	s.microtasks = append(s.microtasks, fn)
}

// Drain runs queued microtasks in FIFO order until none remain. Microtasks
// queued while draining run in the same call.
func (s *Scheduler) Drain() {
	for len(s.microtasks) > 0 {
		task := s.microtasks[0]
		s.microtasks[0] = nil
		s.microtasks = s.microtasks[1:]
		task()
	}
	s.microtasks = nil
}

// Turn runs fn synchronously, then drains the microtask queue.
func (s *Scheduler) Turn(fn func()) {
	if fn != nil {
		fn()
	}
	s.Drain()
}

// flushJobs runs every pending job once, by ascending id and then queue
// order. Jobs queued during the flush are slotted in after the running job
// and run in this flush; a job that already ran stays in the set, so
// re-queuing it is a no-op until the flush ends.
func (s *Scheduler) flushJobs() {
	_, span := s.tracer.Start(context.Background(), "minivue.scheduler.flush")
	defer telemetry.EndRecover(span)

	s.flushing = true
	done := mapset.NewThreadUnsafeSet[*Job]()
	ran := 0
	defer func() {
		s.pending.Clear()
		s.order = nil
		s.flushIndex = 0
		s.flushing = false
		s.flushPending = false
		s.metrics.Flush(ran)
		span.SetAttributes(telemetry.AttrJobs.Int(ran))
	}()

	for s.flushIndex = 0; s.flushIndex < len(s.order); s.flushIndex++ {
		job := s.order[s.flushIndex]
		if !s.pending.Contains(job) || !done.Add(job) {
			continue
		}
		ran++
		if job.name != "" {
			s.logger.Debug("run job", "job", job.name)
		}
		job.fn()
	}
}
