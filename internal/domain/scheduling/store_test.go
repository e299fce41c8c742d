package scheduling

import (
	"errors"
	"testing"
	"time"
)

func TestNewStore_SortsAndCopies(t *testing.T) {
	list := []Appointment{
		appt(t, "late", "doc-1", "2025-01-08T15:00"),
		appt(t, "early", "doc-1", "2025-01-07T09:00"),
	}
	s := NewStore(list)

	if !equalIDs(ids(s.Snapshot()), []string{"early", "late"}) {
		t.Errorf("expected sorted snapshot, got %v", ids(s.Snapshot()))
	}
	if list[0].ID != "late" {
		t.Error("store reordered the caller's slice")
	}
	if s.Len() != 2 {
		t.Errorf("expected 2 appointments, got %d", s.Len())
	}

	snap := s.Snapshot()
	snap[0].Status = StatusCancelled
	if got, _ := s.Get("early"); got.Status != StatusScheduled {
		t.Error("snapshot aliases the store")
	}
}

func TestStore_Get(t *testing.T) {
	s := NewStore([]Appointment{appt(t, "a", "doc-1", "2025-01-07T09:00")})

	got, err := s.Get("a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "a" {
		t.Errorf("expected a, got %s", got.ID)
	}
	if _, err := s.Get("missing"); !errors.Is(err, ErrAppointmentNotFound) {
		t.Errorf("expected ErrAppointmentNotFound, got %v", err)
	}
}

func TestStore_TransitionStatus(t *testing.T) {
	s := NewStore([]Appointment{appt(t, "a", "doc-1", "2025-01-07T09:00")})
	v0 := s.Version()
	later := testNow.Add(time.Hour)

	updated, prev, err := s.TransitionStatus("a", StatusConfirmed, later)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prev != StatusScheduled || updated.Status != StatusConfirmed {
		t.Errorf("expected scheduled -> confirmed, got %s -> %s", prev, updated.Status)
	}
	if !updated.UpdatedAt.Equal(later) {
		t.Errorf("expected updated_at %s, got %s", later, updated.UpdatedAt)
	}
	if s.Version() != v0+1 {
		t.Errorf("expected version bump, got %d -> %d", v0, s.Version())
	}

	_, prev, err = s.TransitionStatus("a", StatusScheduled, later)
	if !errors.Is(err, ErrInvalidStatusTransition) {
		t.Fatalf("expected ErrInvalidStatusTransition, got %v", err)
	}
	if prev != StatusConfirmed {
		t.Errorf("expected previous status confirmed, got %s", prev)
	}
	if s.Version() != v0+1 {
		t.Error("rejected transition must not bump the version")
	}

	if _, _, err := s.TransitionStatus("missing", StatusConfirmed, later); !errors.Is(err, ErrAppointmentNotFound) {
		t.Errorf("expected ErrAppointmentNotFound, got %v", err)
	}
}

func TestStore_ReplaceBumpsVersion(t *testing.T) {
	s := NewStore(nil)
	v0 := s.Version()
	s.Replace([]Appointment{appt(t, "a", "doc-1", "2025-01-07T09:00")})
	if s.Version() <= v0 {
		t.Error("expected version to increase on replace")
	}
	if _, err := s.Get("a"); err != nil {
		t.Errorf("expected replaced list to be indexed: %v", err)
	}
}

func TestSummarize(t *testing.T) {
	past := appt(t, "past", "doc-1", "2025-01-06T09:00")
	past.Status = StatusCompleted
	todayDone := appt(t, "today-done", "doc-1", "2025-01-08T09:00")
	todayDone.Status = StatusInProgress
	todayLater := appt(t, "today-later", "doc-2", "2025-01-08T14:00")
	todayLater.Status = StatusConfirmed
	todayLater.IsFollowUp = true
	futureCancelled := appt(t, "future-cancelled", "doc-3", "2025-01-10T09:00")
	futureCancelled.Status = StatusCancelled
	future := appt(t, "future", "doc-3", "2025-01-13T09:00")

	st := Summarize([]Appointment{past, todayDone, todayLater, futureCancelled, future}, testNow)

	if st.Total != 5 {
		t.Errorf("expected total 5, got %d", st.Total)
	}
	if st.Today != 2 {
		t.Errorf("expected 2 today, got %d", st.Today)
	}
	if st.Upcoming != 2 {
		t.Errorf("expected 2 upcoming open appointments, got %d", st.Upcoming)
	}
	if st.FollowUps != 1 {
		t.Errorf("expected 1 follow-up, got %d", st.FollowUps)
	}
	if st.ByStatus[StatusNoShow] != 0 {
		t.Errorf("expected zero no_show, got %d", st.ByStatus[StatusNoShow])
	}
	if _, ok := st.ByStatus[StatusNoShow]; !ok {
		t.Error("expected every status to be present in by_status")
	}
	if st.ByStatus[StatusCancelled] != 1 || st.ByStatus[StatusScheduled] != 1 {
		t.Errorf("unexpected status counts %v", st.ByStatus)
	}
}

func TestViewCache(t *testing.T) {
	c, err := NewViewCache(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cursor := Cursor{Date: testNow, Mode: ViewWeek}
	k1 := viewCacheKey(1, cursor, FilterState{Status: StatusAll})
	k2 := viewCacheKey(2, cursor, FilterState{Status: StatusAll})
	if k1 == k2 {
		t.Fatal("keys for different versions must differ")
	}
	if viewCacheKey(1, cursor, FilterState{Status: StatusAll, Query: " Smith "}) !=
		viewCacheKey(1, cursor, FilterState{Status: StatusAll, Query: "smith"}) {
		t.Error("query normalisation should produce the same key")
	}

	c.Add(k1, CalendarView{Mode: ViewWeek})
	if _, ok := c.Get(k1); !ok {
		t.Error("expected cache hit")
	}
	c.Purge()
	if c.Len() != 0 {
		t.Errorf("expected empty cache after purge, got %d", c.Len())
	}

	if _, err := NewViewCache(0); err == nil {
		t.Error("expected error for zero size")
	}

	var disabled *ViewCache
	disabled.Add(k1, CalendarView{})
	if _, ok := disabled.Get(k1); ok {
		t.Error("nil cache must always miss")
	}
}
