package scheduler

import "container/heap"

// PriorityQueueScheduler is a binary heap built on container/heap, mirroring
// the heap.Interface-based event queues used elsewhere in the corpus (the
// liveness scheduler's eventHeap: Less compares the primary key then a
// tiebreaker, Push/Pop grow and shrink a backing slice). O(log n)
// insert/pop, O(n) remove.
type PriorityQueueScheduler struct {
	h entryHeap
}

// NewPriorityQueueScheduler returns an empty PriorityQueueScheduler.
func NewPriorityQueueScheduler() *PriorityQueueScheduler {
	return &PriorityQueueScheduler{}
}

func (s *PriorityQueueScheduler) Insert(e Entry) {
	heap.Push(&s.h, e)
}

func (s *PriorityQueueScheduler) IsEmpty() bool {
	return len(s.h) == 0
}

func (s *PriorityQueueScheduler) PeekNext() Entry {
	if s.IsEmpty() {
		errEmpty("PriorityQueueScheduler.PeekNext")
	}
	return s.h[0]
}

func (s *PriorityQueueScheduler) RemoveNext() Entry {
	if s.IsEmpty() {
		errEmpty("PriorityQueueScheduler.RemoveNext")
	}
	return heap.Pop(&s.h).(Entry)
}

func (s *PriorityQueueScheduler) Remove(e Entry) {
	for i, cand := range s.h {
		if cand.Key.Equal(e.Key) {
			heap.Remove(&s.h, i)
			return
		}
	}
}

// entryHeap implements heap.Interface over Entry values ordered by Key.
type entryHeap []Entry

func (h entryHeap) Len() int            { return len(h) }
func (h entryHeap) Less(i, j int) bool  { return h[i].Key.Less(h[j].Key) }
func (h entryHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *entryHeap) Push(x interface{}) { *h = append(*h, x.(Entry)) }
func (h *entryHeap) Pop() interface{} {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}
