package scheduler

// HeapScheduler is an explicit binary heap over a slice with a dummy
// element at index 0, so that for a node at index i the parent is i/2 and
// the children are 2*i and 2*i+1, with the root at index 1. Grounded on
// ns3::HeapScheduler (Parent/LeftChild/RightChild/Root/IsBottom/Exch,
// BottomUp sift-up on insert, TopDown sift-down on pop, and a linear scan
// to locate an entry by uid before sifting it out on Remove).
type HeapScheduler struct {
	// heap[0] is unused; real entries occupy heap[1:].
	heap []Entry
}

// NewHeapScheduler returns an empty HeapScheduler with its sentinel slot
// pre-seeded.
func NewHeapScheduler() *HeapScheduler {
	return &HeapScheduler{heap: make([]Entry, 1)}
}

func parentOf(i int) int { return i / 2 }
func leftOf(i int) int   { return i * 2 }
func rightOf(i int) int  { return i*2 + 1 }

func (s *HeapScheduler) isBottom(i int) bool {
	return i >= len(s.heap)
}

func (s *HeapScheduler) exch(i, j int) {
	s.heap[i], s.heap[j] = s.heap[j], s.heap[i]
}

func (s *HeapScheduler) bottomUp(start int) {
	for i := start; i != 1 && s.heap[i].Key.Less(s.heap[parentOf(i)].Key); i = parentOf(i) {
		s.exch(i, parentOf(i))
	}
}

func (s *HeapScheduler) topDown(start int) {
	i := start
	for {
		left, right := leftOf(i), rightOf(i)
		if s.isBottom(left) {
			break
		}
		smallest := left
		if !s.isBottom(right) && s.heap[right].Key.Less(s.heap[left].Key) {
			smallest = right
		}
		if !s.heap[smallest].Key.Less(s.heap[i].Key) {
			break
		}
		s.exch(i, smallest)
		i = smallest
	}
}

func (s *HeapScheduler) Insert(e Entry) {
	s.heap = append(s.heap, e)
	s.bottomUp(len(s.heap) - 1)
}

func (s *HeapScheduler) IsEmpty() bool {
	return len(s.heap) <= 1
}

func (s *HeapScheduler) PeekNext() Entry {
	if s.IsEmpty() {
		errEmpty("HeapScheduler.PeekNext")
	}
	return s.heap[1]
}

func (s *HeapScheduler) RemoveNext() Entry {
	if s.IsEmpty() {
		errEmpty("HeapScheduler.RemoveNext")
	}
	next := s.heap[1]
	last := len(s.heap) - 1
	s.heap[1] = s.heap[last]
	s.heap = s.heap[:last]
	if len(s.heap) > 1 {
		s.topDown(1)
	}
	return next
}

func (s *HeapScheduler) Remove(e Entry) {
	i := -1
	for idx := 1; idx < len(s.heap); idx++ {
		if s.heap[idx].Key.Equal(e.Key) {
			i = idx
			break
		}
	}
	if i == -1 {
		return
	}
	last := len(s.heap) - 1
	s.heap[i] = s.heap[last]
	s.heap = s.heap[:last]
	if i < len(s.heap) {
		s.bottomUp(i)
		s.topDown(i)
	}
}
