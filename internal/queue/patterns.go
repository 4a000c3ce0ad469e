package queue

import "sync"

// PatternSet holds the namespace glob patterns shared by the watcher,
// evaluator, and sweeper. Configuration reloads swap the patterns at runtime;
// every pass reads the current set, so a reload takes effect on the next
// evaluation or sweep without a restart.
type PatternSet struct {
	mu       sync.RWMutex
	patterns []string
}

// NewPatternSet creates a pattern set with the given initial patterns.
func NewPatternSet(patterns []string) *PatternSet {
	s := &PatternSet{}
	s.Update(patterns)
	return s
}

// Get returns the current patterns.
func (s *PatternSet) Get() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.patterns
}

// Update replaces the patterns.
func (s *PatternSet) Update(patterns []string) {
	copied := make([]string, len(patterns))
	copy(copied, patterns)

	s.mu.Lock()
	s.patterns = copied
	s.mu.Unlock()
}
