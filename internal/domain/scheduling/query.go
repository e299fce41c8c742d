package scheduling

import (
	"sort"
	"strings"
)

// Engine filters the canonical list for the console. It only reads its input.
type Engine struct {
	dir Directory
}

// NewEngine creates an Engine that resolves search fields through dir.
func NewEngine(dir Directory) *Engine {
	return &Engine{dir: dir}
}

// Filter applies, in order, the cursor's date window, the status filter and
// the free-text search, then orders the result. The returned slice never
// aliases all.
func (e *Engine) Filter(all []Appointment, cursor Cursor, state FilterState) []Appointment {
	out := filterWindow(all, cursor)
	out = filterStatus(out, state.Status)
	out = e.filterSearch(out, state.Query)
	if state.Order == SortDescending {
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].StartTime.After(out[j].StartTime)
		})
	}
	return out
}

// FilterAppointments is Engine.Filter without a long-lived Engine.
func FilterAppointments(all []Appointment, cursor Cursor, state FilterState, dir Directory) []Appointment {
	return NewEngine(dir).Filter(all, cursor, state)
}

// filterWindow keeps the cursor's week or day; month mode keeps everything.
func filterWindow(all []Appointment, cursor Cursor) []Appointment {
	out := make([]Appointment, 0, len(all))
	if cursor.Mode == ViewMonth {
		return append(out, all...)
	}
	start, end := cursor.Window()
	for _, a := range all {
		if !a.StartTime.Before(start) && a.StartTime.Before(end) {
			out = append(out, a)
		}
	}
	return out
}

func filterStatus(list []Appointment, status Status) []Appointment {
	if status == "" || status == StatusAll {
		return list
	}
	out := list[:0:0]
	for _, a := range list {
		if a.Status == status {
			out = append(out, a)
		}
	}
	return out
}

func (e *Engine) filterSearch(list []Appointment, query string) []Appointment {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return list
	}
	out := list[:0:0]
	for _, a := range list {
		if e.matches(a, q) {
			out = append(out, a)
		}
	}
	return out
}

// matches reports whether any searchable field contains q. Unresolved
// references contribute an empty string.
func (e *Engine) matches(a Appointment, q string) bool {
	fields := []string{a.Symptoms, a.Notes}
	if e.dir != nil {
		if p, ok := e.dir.ResolveUser(a.PatientID); ok {
			fields = append(fields, p.FullName(), p.Email)
		}
		if d, ok := e.dir.ResolveUser(a.DoctorID); ok {
			fields = append(fields, d.FullName())
		}
		if s, ok := e.dir.ResolveService(a.PrimaryServiceID()); ok {
			fields = append(fields, s.Name)
		}
	}
	for _, f := range fields {
		if f != "" && strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
