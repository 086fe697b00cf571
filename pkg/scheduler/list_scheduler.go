package scheduler

// ListScheduler is the simplest Scheduler: a slice kept sorted by Key via
// linear insertion. O(n) insert and remove, O(1) peek/pop. Grounded on
// ns3::ListScheduler's singly linked list of events, the baseline every
// other scheduler is checked against.
type ListScheduler struct {
	entries []Entry
}

// NewListScheduler returns an empty ListScheduler.
func NewListScheduler() *ListScheduler {
	return &ListScheduler{}
}

func (s *ListScheduler) Insert(e Entry) {
	i := 0
	for i < len(s.entries) && s.entries[i].Key.Less(e.Key) {
		i++
	}
	s.entries = append(s.entries, Entry{})
	copy(s.entries[i+1:], s.entries[i:])
	s.entries[i] = e
}

func (s *ListScheduler) IsEmpty() bool {
	return len(s.entries) == 0
}

func (s *ListScheduler) PeekNext() Entry {
	if s.IsEmpty() {
		errEmpty("ListScheduler.PeekNext")
	}
	return s.entries[0]
}

func (s *ListScheduler) RemoveNext() Entry {
	if s.IsEmpty() {
		errEmpty("ListScheduler.RemoveNext")
	}
	e := s.entries[0]
	s.entries = s.entries[1:]
	return e
}

func (s *ListScheduler) Remove(e Entry) {
	for i := range s.entries {
		if s.entries[i].Key.Equal(e.Key) {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return
		}
	}
}
