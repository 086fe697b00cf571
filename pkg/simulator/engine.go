// Package simulator implements the single-threaded cooperative discrete
// event engine (Engine) and owns the active Scheduler, adapted from
// ns3::DefaultSimulatorImpl. Cross-thread injection follows the
// deadlock.Mutex idiom used for the GUI's SubprocessMutex in the example
// corpus; the throttle.ThrottleFunc idiom used for its refresh throttle
// gates how often the run loop actually performs a drain, so a worker
// thread calling ScheduleWithContext in a tight loop triggers at most one
// drain per period instead of one per call.
package simulator

import (
	"sync/atomic"
	"time"

	throttle "github.com/boz/go-throttle"
	"github.com/petermattis/goid"
	"github.com/sasha-s/go-deadlock"

	"simcore/pkg/event"
	"simcore/pkg/scheduler"
	"simcore/pkg/simerrors"
	"simcore/pkg/simlog"
	"simcore/pkg/simtime"
)

// NoContext is the sentinel "no context" value.
const NoContext uint32 = 0xFFFFFFFF

// MaxSimulationTime is the largest representable absolute time.
const MaxSimulationTime simtime.Value = (1 << 63) - 1

// crossThreadEntry is a pending event injected from a non-main thread;
// RelDelay is rebased against current_ts at drain time.
type crossThreadEntry struct {
	relDelay simtime.Value
	context  uint32
	impl     *event.Impl
}

// Engine owns one Scheduler and drives the run loop. The zero Engine is
// not usable; build one with New.
type Engine struct {
	log *simlog.Logger

	sched scheduler.Scheduler

	currentTs      simtime.Value
	currentUid     uint32
	currentContext uint32
	nextUid        uint32

	unscheduledEvents int32
	eventCount        uint64
	stop              bool

	destroyEvents []event.Id

	mainThreadSet bool
	mainThreadID  int64

	crossMu      deadlock.Mutex
	crossQueue   []crossThreadEntry
	crossPending atomic.Bool
	drainNotify  throttle.ThrottleDriver
	drainSignal  atomic.Bool

	eventHook func(id event.Id)
}

// drainThrottlePeriod bounds how often a flood of ScheduleWithContext
// calls from other goroutines can force the run loop to take the
// crossMu lock and drain: at most once per period, trailing, so the last
// call in a burst still gets a drain shortly after the burst ends.
const drainThrottlePeriod = time.Millisecond

// New builds an Engine with the given initial scheduler and logger. A nil
// logger is valid; log calls become no-ops (see simlog.Logger).
func New(sched scheduler.Scheduler, log *simlog.Logger) *Engine {
	e := &Engine{
		sched:          sched,
		currentContext: NoContext,
		nextUid:        event.UIDValid,
		log:            log,
	}
	e.drainNotify = throttle.ThrottleFunc(drainThrottlePeriod, true, func() {
		e.drainSignal.Store(true)
	})
	e.setMainThread()
	return e
}

// Now returns the current simulated time.
func (e *Engine) Now() simtime.Value {
	return e.currentTs
}

// IsFinished reports whether Run would return immediately: the scheduler
// is empty or the stop flag is set.
func (e *Engine) IsFinished() bool {
	return e.sched.IsEmpty() || e.stop
}

// schedule is the shared tail of Schedule/ScheduleNow: builds the scheduler
// entry and Id for an event at absolute ts under ctx, bumping counters.
func (e *Engine) schedule(ts simtime.Value, ctx uint32, impl *event.Impl) event.Id {
	uid := e.nextUid
	e.nextUid++
	impl.Ref()
	e.sched.Insert(scheduler.Entry{Impl: impl, Key: scheduler.Key{Ts: ts, Uid: uid, Context: ctx}})
	e.unscheduledEvents++
	return event.NewID(impl, ts, ctx, uid, e)
}

// Schedule runs impl after delay, in the caller's current context.
// Precondition: delay >= 0 and the caller is the main thread (the thread
// that most recently called Run, or the constructing thread before the
// first Run).
func (e *Engine) Schedule(delay simtime.Value, impl *event.Impl) event.Id {
	if delay < 0 {
		simerrors.Fatal(e.logEntry(), "Engine.Schedule", simerrors.New(simerrors.NegativeDelay, "negative schedule delay"))
	}
	e.assertMainThread("Engine.Schedule")
	return e.schedule(e.currentTs+delay, e.currentContext, impl)
}

// ScheduleNow is Schedule(0, impl).
func (e *Engine) ScheduleNow(impl *event.Impl) event.Id {
	return e.Schedule(0, impl)
}

// ScheduleWithContext runs impl after delay under the given context. When
// called from a non-main thread, it is queued for drain instead of
// inserted directly, and returns the zero Id (the scheduled event has no
// synchronously-available handle, matching the fire-and-forget
// cross-thread injection contract).
func (e *Engine) ScheduleWithContext(ctx uint32, delay simtime.Value, impl *event.Impl) event.Id {
	if delay < 0 {
		simerrors.Fatal(e.logEntry(), "Engine.ScheduleWithContext", simerrors.New(simerrors.NegativeDelay, "negative schedule delay"))
	}
	if e.isMainThread() {
		return e.schedule(e.currentTs+delay, ctx, impl)
	}
	// The caller's owning reference is transferred into the queue entry,
	// not shared: schedule() takes the single Ref this event gets when
	// drainCrossThread eventually inserts it, matching the main-thread
	// path's one-Ref-per-Insert invariant.
	e.crossMu.Lock()
	e.crossQueue = append(e.crossQueue, crossThreadEntry{relDelay: delay, context: ctx, impl: impl})
	e.crossMu.Unlock()
	e.crossPending.Store(true)
	e.drainNotify.Trigger()
	return event.Id{}
}

// ScheduleDestroy registers impl to run during Destroy, not during Run.
func (e *Engine) ScheduleDestroy(impl *event.Impl) event.Id {
	impl.Ref()
	id := event.NewID(impl, e.currentTs, e.currentContext, event.UIDDestroy, e)
	e.destroyEvents = append(e.destroyEvents, id)
	return id
}

// Stop sets the stop flag; the current Run loop exits after the event in
// flight (if any) finishes.
func (e *Engine) Stop() {
	e.stop = true
}

// StopAt schedules a call to Stop after delay.
func (e *Engine) StopAt(delay simtime.Value) {
	e.Schedule(delay, event.MakeEvent(e.Stop))
}

// drainCrossThread moves every queued cross-thread entry into the
// scheduler, rebasing each relative delay against the current time and
// assigning it a fresh uid, in arrival order. When throttled is true the
// drain only runs if the throttle has actually signaled since the last
// one, so a flooding caller's Trigger() calls collapse into at most one
// real drain per drainThrottlePeriod; Run's unconditional entry and exit
// points pass false to guarantee the backlog is never left stranded.
func (e *Engine) drainCrossThread(throttled bool) {
	if throttled && !e.drainSignal.Swap(false) {
		return
	}
	if !e.crossPending.Load() {
		return
	}
	e.crossMu.Lock()
	pending := e.crossQueue
	e.crossQueue = nil
	e.crossPending.Store(false)
	e.crossMu.Unlock()

	for _, p := range pending {
		e.schedule(e.currentTs+p.relDelay, p.context, p.impl)
	}
}

// Run drains any pending cross-thread events, clears the stop flag, then
// repeatedly pops and invokes the earliest entry until the scheduler is
// empty or Stop is called. Establishes the calling goroutine as the main
// thread for the duration of (and after) this call.
func (e *Engine) Run() {
	e.setMainThread()
	e.drainCrossThread(false)
	e.stop = false

	for !e.sched.IsEmpty() && !e.stop {
		entry := e.sched.RemoveNext()
		if entry.Key.Ts < e.currentTs {
			simerrors.Fatal(e.logEntry(), "Engine.Run", simerrors.New(simerrors.NegativeDelay, "scheduler returned an entry earlier than current time"))
		}
		e.unscheduledEvents--
		e.eventCount++
		e.currentTs = entry.Key.Ts
		e.currentContext = entry.Key.Context
		e.currentUid = entry.Key.Uid

		if e.eventHook != nil {
			e.eventHook(event.NewID(entry.Impl, entry.Key.Ts, entry.Key.Context, entry.Key.Uid, e))
		}

		entry.Impl.Invoke()
		entry.Impl.Unref()

		e.drainCrossThread(true)
	}
	e.drainCrossThread(false)
}

// CancelID marks the event referenced by id cancelled, if not already
// expired. It implements event.Controller.
func (e *Engine) CancelID(id event.Id) {
	e.Cancel(id)
}

// Cancel marks the event cancelled without removing it from the
// scheduler; RemoveNext will still dequeue it but Invoke will no-op.
func (e *Engine) Cancel(id event.Id) {
	if e.IsExpired(id) {
		return
	}
	id.Impl().Cancel()
}

// RemoveID implements event.Controller by delegating to Remove.
func (e *Engine) RemoveID(id event.Id) {
	e.Remove(id)
}

// Remove erases id from wherever it is held: destroy_events for
// DESTROY-uid ids, or the live scheduler otherwise.
func (e *Engine) Remove(id event.Id) {
	if id.UID() == event.UIDDestroy {
		for i, d := range e.destroyEvents {
			if d.Impl() == id.Impl() {
				e.destroyEvents = append(e.destroyEvents[:i], e.destroyEvents[i+1:]...)
				d.Impl().Unref()
				return
			}
		}
		return
	}
	if e.IsExpired(id) {
		return
	}
	entry := scheduler.Entry{Impl: id.Impl(), Key: scheduler.Key{Ts: id.Timestamp(), Uid: id.UID(), Context: id.Context()}}
	e.sched.Remove(entry)
	id.Impl().Cancel()
	id.Impl().Unref()
	e.unscheduledEvents--
}

// IsExpiredID implements event.Controller by delegating to IsExpired.
func (e *Engine) IsExpiredID(id event.Id) bool {
	return e.IsExpired(id)
}

// IsExpired reports whether id no longer refers to a pending, runnable
// event: for DESTROY-uid ids, the payload must be present, uncancelled,
// and still listed in destroy_events; otherwise the payload must be
// present, uncancelled, and its timestamp strictly in the future (or at
// the current instant but ordered after the event presently running).
func (e *Engine) IsExpired(id event.Id) bool {
	if id.Impl() == nil {
		return true
	}
	if id.UID() == event.UIDDestroy {
		if id.Impl().IsCancelled() {
			return true
		}
		for _, d := range e.destroyEvents {
			if d.Impl() == id.Impl() {
				return false
			}
		}
		return true
	}
	if id.Impl().IsCancelled() {
		return true
	}
	if id.Timestamp() < e.currentTs {
		return true
	}
	if id.Timestamp() == e.currentTs && id.UID() <= e.currentUid {
		return true
	}
	return false
}

// DelayLeft returns the time remaining until id fires, or 0 if expired.
func (e *Engine) DelayLeft(id event.Id) simtime.Value {
	if e.IsExpired(id) {
		return 0
	}
	return id.Timestamp() - e.currentTs
}

// Destroy invokes every non-cancelled destroy event in insertion order,
// then clears the list. Safe to call even if Run was never called.
func (e *Engine) Destroy() {
	for _, d := range e.destroyEvents {
		if !d.Impl().IsCancelled() {
			d.Impl().Invoke()
		}
		d.Impl().Unref()
	}
	e.destroyEvents = nil
}

// SetScheduler installs a new scheduler, transplanting every pending entry
// from the old one (preserving uids) before the swap completes.
func (e *Engine) SetScheduler(next scheduler.Scheduler) {
	if e.sched != nil {
		for !e.sched.IsEmpty() {
			next.Insert(e.sched.RemoveNext())
		}
	}
	e.sched = next
}

// SetEventHook installs a callback invoked with each event's Id
// immediately before it fires, the supplemented analogue of ns-3's
// PreEventHook / NotifyCourseChange tracing point. A nil hook disables
// tracing. The hook itself never ships a concrete tracer; callers wire
// their own (trace table, counters, logging).
func (e *Engine) SetEventHook(hook func(id event.Id)) {
	e.eventHook = hook
}

// EventCount returns the number of events invoked so far.
func (e *Engine) EventCount() uint64 { return e.eventCount }

// UnscheduledEvents returns the live pending-event count.
func (e *Engine) UnscheduledEvents() int32 { return e.unscheduledEvents }

func (e *Engine) logEntry() *simlog.Logger { return e.log }

// setMainThread records the calling goroutine as the main thread,
// matching ns3::DefaultSimulatorImpl's m_main capture in Run.
func (e *Engine) setMainThread() {
	e.mainThreadID = goid.Get()
	e.mainThreadSet = true
}

// isMainThread reports whether the calling goroutine is the one that last
// called Run (or constructed the Engine, if Run has never run).
func (e *Engine) isMainThread() bool {
	return e.mainThreadSet && goid.Get() == e.mainThreadID
}

// assertMainThread is fatal if the caller is not the main thread,
// enforcing Schedule's single-threaded precondition.
func (e *Engine) assertMainThread(operation string) {
	if !e.isMainThread() {
		simerrors.Fatal(e.logEntry(), operation, simerrors.New(simerrors.ThreadUnsafeCall, "Schedule called from a non-main thread; use ScheduleWithContext"))
	}
}
