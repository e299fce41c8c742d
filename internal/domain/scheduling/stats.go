package scheduling

import "time"

// Stats summarises a list for the dashboard.
type Stats struct {
	Total     int            `json:"total"`
	ByStatus  map[Status]int `json:"by_status"`
	Today     int            `json:"today"`
	Upcoming  int            `json:"upcoming"`
	FollowUps int            `json:"follow_ups"`
}

// Summarize counts appointments by status, those on now's calendar day, those
// starting after now that are still open, and follow-ups.
func Summarize(list []Appointment, now time.Time) Stats {
	st := Stats{ByStatus: make(map[Status]int, len(Statuses))}
	for _, s := range Statuses {
		st.ByStatus[s] = 0
	}
	for _, a := range list {
		st.Total++
		st.ByStatus[a.Status]++
		if sameDay(now, a.StartTime) {
			st.Today++
		}
		if a.StartTime.After(now) && !a.Status.IsTerminal() {
			st.Upcoming++
		}
		if a.IsFollowUp {
			st.FollowUps++
		}
	}
	return st
}
