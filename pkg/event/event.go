// Package event implements the polymorphic, reference-counted event
// payload (Impl) and the user-facing handle to a scheduled event (Id),
// adapted from ns3::EventImpl / ns3::EventId.
package event

import (
	"sync"
	"sync/atomic"

	"simcore/pkg/simerrors"
)

// Reserved uid values; uids 0..2 are never assigned to real events.
const (
	UIDInvalid  uint32 = 0
	UIDInflight uint32 = 1
	UIDDestroy  uint32 = 2
	UIDValid    uint32 = 3 // first normal uid
)

// Impl carries the user-supplied work to run at a future time, plus a
// cancellation flag and a reference count. It is held by scheduler
// entries and by Ids; it is invoked exactly once per scheduler dequeue,
// unless cancelled, in which case invocation is a silent no-op.
type Impl struct {
	fn        func()
	mu        sync.Mutex
	cancelled bool
	refs      int32
}

// newImpl wraps fn with an initial reference count of 1, owned by the
// caller (typically the scheduling call that will hand a second reference
// to the scheduler entry).
func newImpl(fn func()) *Impl {
	return &Impl{fn: fn, refs: 1}
}

// MakeEvent wraps a zero-argument closure. Any arguments the closure needs
// should be captured by value when the closure literal is built, which is
// exactly "capturing arguments by value at schedule time".
func MakeEvent(fn func()) *Impl {
	return newImpl(fn)
}

// MakeEvent1 binds a single argument to fn at schedule time, covering the
// "function pointer + bound args" and "method + bound receiver" cases from
// a single generic factory: pass a method value (receiver.Method) or a
// free function as fn.
func MakeEvent1[A any](fn func(A), a A) *Impl {
	return newImpl(func() { fn(a) })
}

// MakeEvent2 binds two arguments to fn at schedule time.
func MakeEvent2[A, B any](fn func(A, B), a A, b B) *Impl {
	return newImpl(func() { fn(a, b) })
}

// MakeEvent3 binds three arguments to fn at schedule time.
func MakeEvent3[A, B, C any](fn func(A, B, C), a A, b B, c C) *Impl {
	return newImpl(func() { fn(a, b, c) })
}

// Invoke runs the bound work unless the event has been cancelled. It is a
// no-op, not an error, to invoke a cancelled event.
func (e *Impl) Invoke() {
	e.mu.Lock()
	cancelled := e.cancelled
	e.mu.Unlock()
	if cancelled {
		return
	}
	e.fn()
}

// Cancel marks the event cancelled. It does not remove the event from
// whatever scheduler holds it; the scheduler will still dequeue it, and
// Invoke will silently skip the work.
func (e *Impl) Cancel() {
	e.mu.Lock()
	e.cancelled = true
	e.mu.Unlock()
}

// IsCancelled reports the cancellation flag.
func (e *Impl) IsCancelled() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cancelled
}

// Ref increments the reference count; callers that hand out a new owning
// reference to e (e.g. a scheduler entry alongside an Id) must call this.
func (e *Impl) Ref() {
	atomic.AddInt32(&e.refs, 1)
}

// Unref decrements the reference count. It is a programmer error
// (RefcountUnderflow, fatal) for the count to go below zero.
func (e *Impl) Unref() {
	if atomic.AddInt32(&e.refs, -1) < 0 {
		simerrors.Fatal(nil, "event.Impl.Unref", simerrors.New(simerrors.RefcountUnderflow, "EventImpl refcount went negative"))
	}
}

// RefCount returns the current reference count, for tests and invariant
// checks only.
func (e *Impl) RefCount() int32 {
	return atomic.LoadInt32(&e.refs)
}
