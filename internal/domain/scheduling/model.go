package scheduling

import (
	"fmt"
	"strings"
	"time"
)

// Status is the lifecycle state of an appointment.
//
//	scheduled -> confirmed -> in_progress -> completed
//	scheduled | confirmed -> cancelled | no_show
type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusConfirmed  Status = "confirmed"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
	StatusNoShow     Status = "no_show"

	// StatusAll is a filter sentinel, never stored on an appointment.
	StatusAll Status = "all"
)

// Statuses lists every storable status in lifecycle order.
var Statuses = []Status{
	StatusScheduled, StatusConfirmed, StatusInProgress,
	StatusCompleted, StatusCancelled, StatusNoShow,
}

var allowedTransitions = map[Status][]Status{
	StatusScheduled:  {StatusConfirmed, StatusCancelled, StatusNoShow},
	StatusConfirmed:  {StatusInProgress, StatusCancelled, StatusNoShow},
	StatusInProgress: {StatusCompleted},
	StatusCompleted:  {},
	StatusCancelled:  {},
	StatusNoShow:     {},
}

// IsValid reports whether s is a storable status.
func (s Status) IsValid() bool {
	_, ok := allowedTransitions[s]
	return ok
}

// CanTransitionTo reports whether moving from s to next is a legal lifecycle step.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s.IsValid() && len(allowedTransitions[s]) == 0
}

// ParseStatusFilter parses a status filter value. Empty input means StatusAll.
func ParseStatusFilter(v string) (Status, error) {
	v = strings.TrimSpace(strings.ToLower(v))
	if v == "" || v == string(StatusAll) {
		return StatusAll, nil
	}
	s := Status(v)
	if !s.IsValid() {
		return "", fmt.Errorf("invalid status: %s", v)
	}
	return s, nil
}

// ViewMode selects how the calendar window is sized and bucketed.
type ViewMode string

const (
	ViewDay   ViewMode = "day"
	ViewWeek  ViewMode = "week"
	ViewMonth ViewMode = "month"
)

// ParseViewMode converts boundary input into a ViewMode. Empty input defaults to week.
func ParseViewMode(v string) (ViewMode, error) {
	switch ViewMode(strings.TrimSpace(strings.ToLower(v))) {
	case "", ViewWeek:
		return ViewWeek, nil
	case ViewDay:
		return ViewDay, nil
	case ViewMonth, "list":
		return ViewMonth, nil
	}
	return "", fmt.Errorf("invalid view mode: %s", v)
}

// Direction is a navigation step for the cursor.
type Direction string

const (
	DirectionPrevious Direction = "previous"
	DirectionNext     Direction = "next"
)

// SlotDuration is the fixed length of a generated appointment.
const SlotDuration = 30 * time.Minute

// Appointment is a booked visit between a patient and a doctor.
type Appointment struct {
	ID         string    `json:"id"`
	PatientID  string    `json:"patient_id"`
	DoctorID   string    `json:"doctor_id"`
	ClinicID   string    `json:"clinic_id"`
	ServiceIDs []string  `json:"service_ids"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	Status     Status    `json:"status"`
	Notes      string    `json:"notes,omitempty"`
	Symptoms   string    `json:"symptoms,omitempty"`
	IsFollowUp bool      `json:"is_follow_up"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Duration returns EndTime - StartTime.
func (a Appointment) Duration() time.Duration {
	return a.EndTime.Sub(a.StartTime)
}

// PrimaryServiceID returns the first service reference, or "" when none is set.
func (a Appointment) PrimaryServiceID() string {
	if len(a.ServiceIDs) == 0 {
		return ""
	}
	return a.ServiceIDs[0]
}

// FilterState is the transient list filter chosen in the console.
type FilterState struct {
	Status Status    `json:"status"`
	Query  string    `json:"query"`
	Order  SortOrder `json:"order"`
}

// SortOrder orders a filtered list by start time.
type SortOrder string

const (
	SortAscending  SortOrder = "asc"
	SortDescending SortOrder = "desc"
)

// ParseSortOrder parses an order value; empty input defaults to ascending.
func ParseSortOrder(v string) (SortOrder, error) {
	switch SortOrder(strings.TrimSpace(strings.ToLower(v))) {
	case "", SortAscending:
		return SortAscending, nil
	case SortDescending:
		return SortDescending, nil
	}
	return "", fmt.Errorf("invalid order: %s", v)
}
