// Command gencompare generates a seeded random event stream and replays it
// through all five scheduler kinds, printing PASS/FAIL depending on
// whether every kind produced an identical dequeue order. It exists
// alongside pkg/scheduler's equivalence_test.go so the property can also
// be spot-checked outside `go test`, adapted from lazydocker's
// test/printrandom standalone generator.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"

	"simcore/pkg/event"
	"simcore/pkg/scheduler"
	"simcore/pkg/simtime"
)

func main() {
	n := flag.Int("n", 10000, "number of events to generate")
	seed := flag.Int64("seed", 1, "random seed")
	spread := flag.Int("spread", 200, "timestamp range events are drawn from")
	flag.Parse()

	r := rand.New(rand.NewSource(*seed))
	keys := make([]scheduler.Key, *n)
	for i := range keys {
		keys[i] = scheduler.Key{
			Ts:  simtime.Value(r.Intn(*spread)),
			Uid: uint32(i) + event.UIDValid,
		}
	}

	kinds := []scheduler.Kind{
		scheduler.KindList,
		scheduler.KindMap,
		scheduler.KindPriorityQueue,
		scheduler.KindHeap,
		scheduler.KindCalendar,
	}

	var reference []scheduler.Key
	ok := true
	for i, kind := range kinds {
		s, err := scheduler.New(kind, false)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		order := drain(s, keys)
		if i == 0 {
			reference = order
			continue
		}
		if !equal(reference, order) {
			fmt.Printf("FAIL: %s diverged from %s\n", kind, kinds[0])
			ok = false
		}
	}

	if ok {
		fmt.Printf("PASS: %d events, %d scheduler kinds, identical dequeue order\n", *n, len(kinds))
		return
	}
	os.Exit(1)
}

func drain(s scheduler.Scheduler, keys []scheduler.Key) []scheduler.Key {
	for _, k := range keys {
		s.Insert(scheduler.Entry{Impl: event.MakeEvent(func() {}), Key: k})
	}
	out := make([]scheduler.Key, 0, len(keys))
	for !s.IsEmpty() {
		out = append(out, s.RemoveNext().Key)
	}
	return out
}

func equal(a, b []scheduler.Key) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
