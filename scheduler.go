package listview

import (
	"sort"
	"time"
)

// Scheduler runs deferred callbacks on the host's event loop.
type Scheduler interface {
	// Now returns the scheduler's current time.
	Now() time.Time
	// AfterFunc runs fn once after d has elapsed.
	AfterFunc(d time.Duration, fn func()) Disposable
	// NextFrame runs fn once on the next frame.
	NextFrame(fn func()) Disposable
}

type scheduled struct {
	at       time.Time
	seq      int
	fn       func()
	disposed bool
}

// FrameScheduler is a Scheduler driven by its owner. Callbacks only run from
// Tick, so they always run on the goroutine that calls Tick.
type FrameScheduler struct {
	now    time.Time
	seq    int
	timers []*scheduled
	frames []*scheduled
}

var _ Scheduler = &FrameScheduler{}

// NewFrameScheduler returns a scheduler whose clock starts at now.
func NewFrameScheduler(now time.Time) *FrameScheduler {
	return &FrameScheduler{now: now}
}

// Now implements Scheduler. It returns the time of the last tick.
func (s *FrameScheduler) Now() time.Time {
	return s.now
}

// AfterFunc implements Scheduler.
func (s *FrameScheduler) AfterFunc(d time.Duration, fn func()) Disposable {
	s.seq++
	t := &scheduled{at: s.now.Add(d), seq: s.seq, fn: fn}
	s.timers = append(s.timers, t)
	return DisposableFunc(func() { t.disposed = true })
}

// NextFrame implements Scheduler.
func (s *FrameScheduler) NextFrame(fn func()) Disposable {
	s.seq++
	f := &scheduled{seq: s.seq, fn: fn}
	s.frames = append(s.frames, f)
	return DisposableFunc(func() { f.disposed = true })
}

// Pending reports whether any callback is waiting.
func (s *FrameScheduler) Pending() bool {
	for _, t := range s.timers {
		if !t.disposed {
			return true
		}
	}
	for _, f := range s.frames {
		if !f.disposed {
			return true
		}
	}
	return false
}

// Tick advances the clock to now, runs the timers that are due in deadline
// order and then the frame callbacks registered before this tick. Callbacks
// scheduled while ticking wait for the next tick. It reports whether any
// callback ran.
func (s *FrameScheduler) Tick(now time.Time) bool {
	if now.After(s.now) {
		s.now = now
	}

	var due, waiting []*scheduled
	for _, t := range s.timers {
		switch {
		case t.disposed:
		case !t.at.After(s.now):
			due = append(due, t)
		default:
			waiting = append(waiting, t)
		}
	}
	s.timers = waiting
	sort.Slice(due, func(i, j int) bool {
		if due[i].at.Equal(due[j].at) {
			return due[i].seq < due[j].seq
		}
		return due[i].at.Before(due[j].at)
	})

	frames := s.frames
	s.frames = nil

	ran := false
	for _, t := range due {
		if t.disposed {
			continue
		}
		t.disposed = true
		t.fn()
		ran = true
	}
	for _, f := range frames {
		if f.disposed {
			continue
		}
		f.disposed = true
		f.fn()
		ran = true
	}
	return ran
}

// Advance ticks the scheduler forward by d.
func (s *FrameScheduler) Advance(d time.Duration) bool {
	return s.Tick(s.now.Add(d))
}

// Delayer runs the last triggered task once no new trigger has arrived for
// its delay.
type Delayer struct {
	scheduler Scheduler
	delay     time.Duration
	pending   Disposable
	gen       int
}

// NewDelayer returns a Delayer on scheduler.
func NewDelayer(scheduler Scheduler, delay time.Duration) *Delayer {
	return &Delayer{scheduler: scheduler, delay: delay}
}

// Trigger (re)starts the delay with task.
func (d *Delayer) Trigger(task func()) {
	d.Cancel()
	d.gen++
	gen := d.gen
	d.pending = d.scheduler.AfterFunc(d.delay, func() {
		if gen != d.gen {
			return
		}
		d.pending = nil
		task()
	})
}

// IsTriggered reports whether a task is waiting.
func (d *Delayer) IsTriggered() bool {
	return d.pending != nil
}

// Cancel drops the pending task.
func (d *Delayer) Cancel() {
	if d.pending != nil {
		d.pending.Dispose()
		d.pending = nil
	}
}

// Dispose implements Disposable.
func (d *Delayer) Dispose() {
	d.Cancel()
}

// Animate runs fn on every frame until the returned handle is disposed.
func Animate(s Scheduler, fn func()) Disposable {
	stopped := false
	var frame Disposable
	var step func()
	step = func() {
		if stopped {
			return
		}
		fn()
		if !stopped {
			frame = s.NextFrame(step)
		}
	}
	frame = s.NextFrame(step)
	return DisposableFunc(func() {
		stopped = true
		frame.Dispose()
	})
}
