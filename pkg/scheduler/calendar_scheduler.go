package scheduler

import (
	"sort"

	"simcore/pkg/simtime"
)

// calendarSampleCount bounds how many entries feed the width re-estimate
// on a resize, matching the "estimate over the next up-to-25 events" rule.
const calendarSampleCount = 25

const calendarInitialBuckets = 16

// CalendarScheduler buckets entries by ts/width into n_buckets ring slots,
// each an insertion-sorted list, resizing the bucket array (and
// recomputing width) when average occupancy drifts outside [0.5, 2].
// Grounded on ns3::CalendarScheduler's bucket array with the reverse
// flag (calendar-scheduler.h's NextEvent/Order/Pop function-pointer
// pair) implemented directly as a boolean that flips comparison sense.
type CalendarScheduler struct {
	buckets    [][]Entry
	width      simtime.Value
	lastBucket int
	qsize      int
	reverse    bool
}

// NewCalendarScheduler returns an empty CalendarScheduler. When reverse is
// true, buckets are kept sorted descending and dequeue follows that
// reversed sense throughout.
func NewCalendarScheduler(reverse bool) *CalendarScheduler {
	return &CalendarScheduler{
		buckets: make([][]Entry, calendarInitialBuckets),
		width:   1,
		reverse: reverse,
	}
}

// less applies the scheduler's ordering sense (forward or reversed).
func (s *CalendarScheduler) less(a, b Key) bool {
	if s.reverse {
		return b.Less(a)
	}
	return a.Less(b)
}

func (s *CalendarScheduler) bucketOf(ts simtime.Value) int {
	n := len(s.buckets)
	idx := int64(ts/s.width) % int64(n)
	if idx < 0 {
		idx += int64(n)
	}
	return int(idx)
}

func (s *CalendarScheduler) insertSorted(b int, e Entry) {
	list := s.buckets[b]
	i := 0
	for i < len(list) && s.less(list[i].Key, e.Key) {
		i++
	}
	list = append(list, Entry{})
	copy(list[i+1:], list[i:])
	list[i] = e
	s.buckets[b] = list
}

func (s *CalendarScheduler) Insert(e Entry) {
	b := s.bucketOf(e.Key.Ts)
	s.insertSorted(b, e)
	s.qsize++
	if s.qsize >= 2*len(s.buckets) {
		s.resize(len(s.buckets) * 2)
	}
}

func (s *CalendarScheduler) IsEmpty() bool {
	return s.qsize == 0
}

// findNext locates the earliest entry by scanning every bucket once,
// starting from lastBucket, and keeping the bucket whose head is smallest
// under less. It does not stop early at the current "year"; each call
// looks at all buckets.
func (s *CalendarScheduler) findNext() (bucket, index int) {
	n := len(s.buckets)
	bucket, index = -1, -1
	for i := 0; i < n; i++ {
		b := (s.lastBucket + i) % n
		if len(s.buckets[b]) == 0 {
			continue
		}
		if bucket == -1 || s.less(s.buckets[b][0].Key, s.buckets[bucket][0].Key) {
			bucket, index = b, 0
		}
	}
	return bucket, index
}

func (s *CalendarScheduler) PeekNext() Entry {
	if s.IsEmpty() {
		errEmpty("CalendarScheduler.PeekNext")
	}
	b, i := s.findNext()
	return s.buckets[b][i]
}

func (s *CalendarScheduler) RemoveNext() Entry {
	if s.IsEmpty() {
		errEmpty("CalendarScheduler.RemoveNext")
	}
	b, i := s.findNext()
	e := s.buckets[b][i]
	s.buckets[b] = append(s.buckets[b][:i], s.buckets[b][i+1:]...)
	s.lastBucket = b
	s.qsize--
	if s.qsize <= len(s.buckets)/2 && len(s.buckets) > calendarInitialBuckets {
		newN := len(s.buckets) / 2
		if newN < calendarInitialBuckets {
			newN = calendarInitialBuckets
		}
		s.resize(newN)
	}
	return e
}

func (s *CalendarScheduler) Remove(e Entry) {
	b := s.bucketOf(e.Key.Ts)
	for i, cand := range s.buckets[b] {
		if cand.Key.Equal(e.Key) {
			s.buckets[b] = append(s.buckets[b][:i], s.buckets[b][i+1:]...)
			s.qsize--
			return
		}
	}
}

// resize drains every bucket into a flat slice, recomputes width from the
// mean gap over up to calendarSampleCount entries, reallocates n buckets,
// and reinserts everything.
func (s *CalendarScheduler) resize(n int) {
	if n < 1 {
		n = 1
	}
	flat := make([]Entry, 0, s.qsize)
	for _, b := range s.buckets {
		flat = append(flat, b...)
	}
	sortEntriesByTs(flat)

	s.width = estimateWidth(flat)
	s.buckets = make([][]Entry, n)
	s.lastBucket = 0
	for _, e := range flat {
		b := s.bucketOf(e.Key.Ts)
		s.insertSorted(b, e)
	}
}

// estimateWidth returns the mean gap between consecutive timestamps among
// up to calendarSampleCount samples, or 1 if too few samples exist to form
// a gap.
func estimateWidth(sorted []Entry) simtime.Value {
	n := len(sorted)
	if n > calendarSampleCount {
		n = calendarSampleCount
	}
	if n < 2 {
		return 1
	}
	var total simtime.Value
	for i := 1; i < n; i++ {
		total += sorted[i].Key.Ts - sorted[i-1].Key.Ts
	}
	width := total / simtime.Value(n-1)
	if width < 1 {
		width = 1
	}
	return width
}

func sortEntriesByTs(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Key.Less(entries[j].Key)
	})
}
