package io

import (
	"sync"
	"time"

	"github.com/matzehuels/heatgrid/pkg/calendar"
)

// DateSet is a concurrency-safe completed set owned by a long-running caller
// such as the HTTP server or the terminal view.
type DateSet struct {
	mu    sync.RWMutex
	dates map[string]struct{}
}

// NewDateSet returns a set seeded with dates.
func NewDateSet(dates []string) *DateSet {
	s := &DateSet{dates: make(map[string]struct{}, len(dates))}
	for _, d := range Normalize(dates) {
		s.dates[d] = struct{}{}
	}
	return s
}

// Add records the civil date of t and reports whether it was new.
func (s *DateSet) Add(t time.Time) bool {
	key := t.Format(calendar.ISOLayout)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.dates[key]; ok {
		return false
	}
	s.dates[key] = struct{}{}
	return true
}

// Len returns the number of entries.
func (s *DateSet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.dates)
}

// Dates returns the sorted entries.
func (s *DateSet) Dates() []string {
	s.mu.RLock()
	out := make([]string, 0, len(s.dates))
	for d := range s.dates {
		out = append(out, d)
	}
	s.mu.RUnlock()
	return Normalize(out)
}
