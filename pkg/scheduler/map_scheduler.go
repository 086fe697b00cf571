package scheduler

import "sort"

// MapScheduler keeps entries in a slice sorted by Key, locating the
// insertion point with binary search rather than ListScheduler's linear
// scan. O(log n) search, O(n) shift on insert/remove, O(1) peek/pop.
// Grounded on ns3::MapScheduler's std::map<Key, EventImpl*>; the corpus
// carries no third-party ordered-map or B-tree library, so this part uses
// a sorted slice plus sort.Search rather than a hand-rolled tree (see
// DESIGN.md).
type MapScheduler struct {
	entries []Entry
}

// NewMapScheduler returns an empty MapScheduler.
func NewMapScheduler() *MapScheduler {
	return &MapScheduler{}
}

// search returns the first index whose Key is not less than k: the
// insertion point that keeps entries sorted.
func (s *MapScheduler) search(k Key) int {
	return sort.Search(len(s.entries), func(i int) bool {
		return !s.entries[i].Key.Less(k)
	})
}

func (s *MapScheduler) Insert(e Entry) {
	i := s.search(e.Key)
	s.entries = append(s.entries, Entry{})
	copy(s.entries[i+1:], s.entries[i:])
	s.entries[i] = e
}

func (s *MapScheduler) IsEmpty() bool {
	return len(s.entries) == 0
}

func (s *MapScheduler) PeekNext() Entry {
	if s.IsEmpty() {
		errEmpty("MapScheduler.PeekNext")
	}
	return s.entries[0]
}

func (s *MapScheduler) RemoveNext() Entry {
	if s.IsEmpty() {
		errEmpty("MapScheduler.RemoveNext")
	}
	e := s.entries[0]
	s.entries = s.entries[1:]
	return e
}

func (s *MapScheduler) Remove(e Entry) {
	i := s.search(e.Key)
	for i < len(s.entries) && s.entries[i].Key.Ts == e.Key.Ts {
		if s.entries[i].Key.Uid == e.Key.Uid {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return
		}
		i++
	}
}
