package scheduler

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/sync/errgroup"

	"simcore/pkg/event"
	"simcore/pkg/simtime"
)

// drainOrder inserts every key into s in the given order, then pops all of
// them, returning the dequeue order as a flat slice of Keys.
func drainOrder(s Scheduler, keys []Key) []Key {
	for _, k := range keys {
		s.Insert(Entry{Impl: event.MakeEvent(func() {}), Key: k})
	}
	out := make([]Key, 0, len(keys))
	for !s.IsEmpty() {
		out = append(out, s.RemoveNext().Key)
	}
	return out
}

// TestSchedulerEquivalence feeds an identical randomized stream of 10,000
// events, with clustered timestamps to exercise same-ts FIFO ordering,
// through all five scheduler kinds and asserts byte-identical dequeue
// order, matching the cross-scheduler replay property every Scheduler
// implementation must satisfy.
func TestSchedulerEquivalence(t *testing.T) {
	const n = 10000
	r := rand.New(rand.NewSource(1))

	keys := make([]Key, n)
	for i := 0; i < n; i++ {
		ts := simtime.Value(r.Intn(200))
		keys[i] = Key{Ts: ts, Uid: uint32(i + int(event.UIDValid))}
	}

	kinds := []Kind{KindList, KindMap, KindPriorityQueue, KindHeap, KindCalendar}
	orders := make([][]Key, len(kinds))

	var g errgroup.Group
	for i, kind := range kinds {
		i, kind := i, kind
		g.Go(func() error {
			s, err := New(kind, false)
			if err != nil {
				return err
			}
			orders[i] = drainOrder(s, keys)
			return nil
		})
	}
	assert.NoError(t, g.Wait())

	reference := orders[0]
	for i, kind := range kinds {
		assert.Equal(t, reference, orders[i], "scheduler %s diverged from %s", kind, kinds[0])
	}
}

// TestCalendarReverseIsOppositeOfForward checks that the reverse toggle
// produces the exact mirror dequeue order of the forward calendar.
func TestCalendarReverseIsOppositeOfForward(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	keys := make([]Key, 500)
	for i := range keys {
		keys[i] = Key{Ts: simtime.Value(r.Intn(50)), Uid: uint32(i + int(event.UIDValid))}
	}

	forward := drainOrder(NewCalendarScheduler(false), keys)
	reverse := drainOrder(NewCalendarScheduler(true), keys)

	assert.Equal(t, len(forward), len(reverse))
	for i := range forward {
		assert.Equal(t, forward[i], reverse[len(reverse)-1-i])
	}
}
