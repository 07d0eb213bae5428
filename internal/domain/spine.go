package domain

import "sync"

// NotFound is returned by the spine lookups when nothing matches
const NotFound = -1

// Spine is the book's linear reading order.
// It is safe for concurrent readers so several cursors can share one spine.
type Spine struct {
	mu       sync.RWMutex
	sections []*Section
}

// NewSpine creates a spine holding the given sections in order
func NewSpine(sections ...*Section) *Spine {
	s := &Spine{
		sections: make([]*Section, 0, len(sections)),
	}
	s.sections = append(s.sections, sections...)
	return s
}

// Len returns the current number of sections
func (s *Spine) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sections)
}

// At returns the section at index, or nil if index is out of range
func (s *Spine) At(index int) *Section {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if index < 0 || index >= len(s.sections) {
		return nil
	}
	return s.sections[index]
}

// IndexOf returns the index of section by identity, or NotFound
func (s *Spine) IndexOf(section *Section) int {
	if section == nil {
		return NotFound
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i, sec := range s.sections {
		if sec == section {
			return i
		}
	}
	return NotFound
}

// IndexOfID returns the index of the first section with the given id, or NotFound
func (s *Spine) IndexOfID(id string) int {
	if id == "" {
		return NotFound
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i, sec := range s.sections {
		if sec.ID == id {
			return i
		}
	}
	return NotFound
}

// Append adds sections to the end of the reading order
func (s *Spine) Append(sections ...*Section) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sections = append(s.sections, sections...)
}

// Truncate drops every section from index n onwards
func (s *Spine) Truncate(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n < 0 {
		n = 0
	}
	if n < len(s.sections) {
		s.sections = s.sections[:n]
	}
}

// Sections returns a copy of the reading order
func (s *Spine) Sections() []*Section {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Return a copy to prevent external modification
	result := make([]*Section, len(s.sections))
	copy(result, s.sections)
	return result
}
