package domain

import "sync"

// Selection is the nullable full name of the selected repository.
type Selection struct {
	FullName string
	Valid    bool
}

// SelectRepository returns a selection holding fullName.
func SelectRepository(fullName string) Selection {
	return Selection{FullName: fullName, Valid: true}
}

// NoSelection returns the empty selection.
func NoSelection() Selection {
	return Selection{}
}

// String returns the full name, or "<none>".
func (s Selection) String() string {
	if !s.Valid {
		return "<none>"
	}
	return s.FullName
}

// SelectionStore holds the currently selected repository.
// SetSelected replaces the value unconditionally; nothing is validated.
type SelectionStore interface {
	Selected() Selection
	SetSelected(sel Selection)
}

// MemorySelectionStore is an in-process SelectionStore.
type MemorySelectionStore struct {
	mu          sync.RWMutex
	current     Selection
	subscribers []func(Selection)
}

// NewMemorySelectionStore creates a store initialized to no selection.
func NewMemorySelectionStore() *MemorySelectionStore {
	return &MemorySelectionStore{}
}

// Selected returns the current selection.
func (s *MemorySelectionStore) Selected() Selection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// SetSelected replaces the current selection and notifies subscribers.
func (s *MemorySelectionStore) SetSelected(sel Selection) {
	s.mu.Lock()
	s.current = sel
	subs := make([]func(Selection), len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(sel)
	}
}

// Subscribe registers fn to be called after every SetSelected.
func (s *MemorySelectionStore) Subscribe(fn func(Selection)) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	s.subscribers = append(s.subscribers, fn)
	s.mu.Unlock()
}
