package crawl

import (
	"sync"

	"github.com/tvscout-cli/tvscout/extract"
)

// candidateSet accumulates discovered candidates across concurrent workers,
// keyed by URL with first-seen-wins channel attribution. Later duplicates are
// dropped silently, whichever channel discovered them.
type candidateSet struct {
	mu    sync.Mutex
	byURL map[string]struct{}
	order []extract.Candidate
}

func newCandidateSet() *candidateSet {
	return &candidateSet{byURL: make(map[string]struct{})}
}

// add inserts c unless its URL is already present. Reports whether c was kept.
func (s *candidateSet) add(c extract.Candidate) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, dup := s.byURL[c.URL]; dup {
		return false
	}

	s.byURL[c.URL] = struct{}{}
	s.order = append(s.order, c)
	return true
}

// addAll inserts every candidate in cs, preserving first-seen-wins semantics.
func (s *candidateSet) addAll(cs []extract.Candidate) {
	for _, c := range cs {
		s.add(c)
	}
}

// snapshot returns the kept candidates in insertion order.
func (s *candidateSet) snapshot() []extract.Candidate {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]extract.Candidate, len(s.order))
	copy(out, s.order)
	return out
}
