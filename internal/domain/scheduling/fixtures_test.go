package scheduling

import (
	"testing"
	"time"
)

// Wednesday 2025-01-08 10:15 UTC; its week starts Monday 2025-01-06.
var testNow = time.Date(2025, 1, 8, 10, 15, 0, 0, time.UTC)

// constRand returns the same draw every time.
type constRand struct {
	f float64
	n int
}

func (r constRand) IntN(n int) int  { return r.n % n }
func (r constRand) Float64() float64 { return r.f }

func at(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.ParseInLocation("2006-01-02T15:04", value, time.UTC)
	if err != nil {
		t.Fatalf("bad fixture time %q: %v", value, err)
	}
	return ts
}

func appt(t *testing.T, id, doctorID, start string) Appointment {
	t.Helper()
	s := at(t, start)
	return Appointment{
		ID:         id,
		PatientID:  "pat-1",
		DoctorID:   doctorID,
		ClinicID:   "clinic-1",
		ServiceIDs: []string{"svc-1"},
		StartTime:  s,
		EndTime:    s.Add(SlotDuration),
		Status:     StatusScheduled,
		CreatedAt:  testNow,
		UpdatedAt:  testNow,
	}
}

func ids(list []Appointment) []string {
	out := make([]string, 0, len(list))
	for _, a := range list {
		out = append(out, a.ID)
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
