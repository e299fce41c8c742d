package scheduling

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// Errors returned by the appointment store.
var (
	ErrAppointmentNotFound     = errors.New("appointment not found")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
)

// Store owns the canonical appointment list. It is the single writer; readers
// receive copies and never observe a list being modified.
type Store struct {
	mu      sync.RWMutex
	list    []Appointment
	index   map[string]int // appointment ID -> position in list
	version uint64
}

// NewStore creates a store holding list, sorted ascending by start time.
func NewStore(list []Appointment) *Store {
	s := &Store{}
	s.Replace(list)
	return s
}

// Replace swaps in a new canonical list.
func (s *Store) Replace(list []Appointment) {
	cp := make([]Appointment, len(list))
	copy(cp, list)
	sortByStart(cp)

	index := make(map[string]int, len(cp))
	for i, a := range cp {
		index[a.ID] = i
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.list = cp
	s.index = index
	s.version++
}

// Snapshot returns a copy of the canonical list.
func (s *Store) Snapshot() []Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cp := make([]Appointment, len(s.list))
	copy(cp, s.list)
	return cp
}

// Len returns the number of stored appointments.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.list)
}

// Version increases on every mutation.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Get returns a copy of the appointment with id.
func (s *Store) Get(id string) (Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.index[id]
	if !ok {
		return Appointment{}, ErrAppointmentNotFound
	}
	return s.list[i], nil
}

// TransitionStatus moves an appointment to next if the lifecycle allows it
// and returns the updated copy along with the previous status.
func (s *Store) TransitionStatus(id string, next Status, now time.Time) (Appointment, Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return Appointment{}, "", ErrAppointmentNotFound
	}
	prev := s.list[i].Status
	if !prev.CanTransitionTo(next) {
		return Appointment{}, prev, fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, prev, next)
	}

	s.list[i].Status = next
	s.list[i].UpdatedAt = now
	s.version++
	return s.list[i], prev, nil
}
