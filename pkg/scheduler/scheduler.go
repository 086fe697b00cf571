// Package scheduler implements the abstract event-priority-queue
// (Scheduler) and its five interchangeable concrete implementations:
// List, Map, PriorityQueue, Heap, and Calendar. All five produce
// identical dequeue order for identical input and differ only in their
// time/space tradeoffs, grounded on ns3::Scheduler's family of
// implementations and on the heap.Interface-based event queues in the
// example corpus (e.g. doublezero's liveness.EventQueue).
package scheduler

import (
	"simcore/pkg/event"
	"simcore/pkg/simerrors"
	"simcore/pkg/simtime"
)

// Key is the (timestamp, uid, context) triple used to order scheduler
// entries. Ordering uses (ts, uid) only; context does not participate in
// comparison.
type Key struct {
	Ts      simtime.Value
	Uid     uint32
	Context uint32
}

// Less implements the EventKey order: a.ts < b.ts, or a.ts == b.ts and
// a.uid < b.uid. This is irreflexive, antisymmetric, and transitive, and
// enforces FIFO among co-timed events.
func (a Key) Less(b Key) bool {
	if a.Ts != b.Ts {
		return a.Ts < b.Ts
	}
	return a.Uid < b.Uid
}

// Equal compares keys by uid alone: EventKey equality ignores timestamp.
func (a Key) Equal(b Key) bool {
	return a.Uid == b.Uid
}

// Entry is the {payload, key} pair a Scheduler stores. The scheduler owns
// the Impl reference while the entry is present, releasing it when the
// entry leaves via RemoveNext or Remove.
type Entry struct {
	Impl *event.Impl
	Key  Key
}

// Scheduler is an abstract priority queue of Entry values ordered by Key.
// A user may supply a custom implementation and install it with
// simulator.Engine.SetScheduler.
type Scheduler interface {
	// Insert adds an entry, preserving Key order.
	Insert(e Entry)
	// IsEmpty reports whether the scheduler holds no entries, in constant time.
	IsEmpty() bool
	// PeekNext returns, without removing, the lowest-key entry.
	// Precondition: the scheduler is non-empty.
	PeekNext() Entry
	// RemoveNext pops and returns the lowest-key entry.
	// Precondition: the scheduler is non-empty.
	RemoveNext() Entry
	// Remove removes a specific entry, matched by uid.
	// Precondition: the entry (by uid) is present.
	Remove(e Entry)
}

// errEmpty raises the fatal SchedulerEmpty error for a precondition
// violation on an empty scheduler.
func errEmpty(operation string) {
	simerrors.Fatal(nil, operation, simerrors.New(simerrors.SchedulerEmpty, "scheduler is empty"))
}

// Kind names the known concrete scheduler implementations, for
// string-keyed selection (e.g. from config) without general-purpose
// runtime reflection.
type Kind string

const (
	KindList          Kind = "list"
	KindMap           Kind = "map"
	KindPriorityQueue Kind = "priority-queue"
	KindHeap          Kind = "heap"
	KindCalendar      Kind = "calendar"
)

// New builds the named concrete scheduler. Calendar honors reverse as its
// bucket-ordering flag; it is ignored for every other kind.
func New(kind Kind, reverse bool) (Scheduler, error) {
	switch kind {
	case KindList:
		return NewListScheduler(), nil
	case KindMap:
		return NewMapScheduler(), nil
	case KindPriorityQueue:
		return NewPriorityQueueScheduler(), nil
	case KindHeap:
		return NewHeapScheduler(), nil
	case KindCalendar:
		return NewCalendarScheduler(reverse), nil
	default:
		return nil, simerrors.New(simerrors.UnitParse, "unknown scheduler kind "+string(kind))
	}
}
