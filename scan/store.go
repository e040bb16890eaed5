package scan

import (
	"sort"
	"sync"
)

// Store is a thread-safe record store keyed by normalized absolute path, with
// deterministic sorted iteration. A full scan replaces its contents; watcher
// deltas mutate it incrementally so readers always see the reconciled view.
type Store struct {
	mu          sync.RWMutex
	records     map[string]*FileRecord
	sortedPaths []string
}

// NewStore creates an empty record store.
func NewStore() *Store {
	return &Store{
		records:     make(map[string]*FileRecord),
		sortedPaths: make([]string, 0),
	}
}

// Put adds or replaces the record for its absolute path.
func (s *Store) Put(record *FileRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, exists := s.records[record.AbsolutePath]
	s.records[record.AbsolutePath] = record

	if !exists {
		s.sortedPaths = append(s.sortedPaths, record.AbsolutePath)
		sort.Strings(s.sortedPaths)
	}
}

// Remove deletes the record for an absolute path. Returns false when the path
// was not present.
func (s *Store) Remove(absolutePath string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[absolutePath]; !exists {
		return false
	}
	delete(s.records, absolutePath)

	idx := sort.SearchStrings(s.sortedPaths, absolutePath)
	if idx < len(s.sortedPaths) && s.sortedPaths[idx] == absolutePath {
		s.sortedPaths = append(s.sortedPaths[:idx], s.sortedPaths[idx+1:]...)
	}
	return true
}

// Get returns the record for an absolute path, or nil.
func (s *Store) Get(absolutePath string) *FileRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records[absolutePath]
}

// All returns every record in sorted path order.
func (s *Store) All() []*FileRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*FileRecord, 0, len(s.sortedPaths))
	for _, path := range s.sortedPaths {
		if record, ok := s.records[path]; ok {
			result = append(result, record)
		}
	}
	return result
}

// Len returns the number of records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// TotalTokens sums the token counts of all records.
func (s *Store) TotalTokens() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var total int
	for _, record := range s.records {
		total += record.TokenCount
	}
	return total
}

// ReplaceAll swaps the store contents for the given records.
func (s *Store) ReplaceAll(records []*FileRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = make(map[string]*FileRecord, len(records))
	s.sortedPaths = make([]string, 0, len(records))
	for _, record := range records {
		if _, exists := s.records[record.AbsolutePath]; !exists {
			s.sortedPaths = append(s.sortedPaths, record.AbsolutePath)
		}
		s.records[record.AbsolutePath] = record
	}
	sort.Strings(s.sortedPaths)
}

// Clear removes all records.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = make(map[string]*FileRecord)
	s.sortedPaths = make([]string, 0)
}
