package scheduling

import (
	"fmt"
	"sort"
	"time"
)

// Calendar grid bounds: the day view runs half-hourly and the week view
// hourly, both from 08:00 up to 18:00.
const (
	gridStartHour = 8
	gridEndHour   = 18
)

// dayKeyLayout is the natural day representation used for month grouping.
const dayKeyLayout = "2006-01-02"

// Scheduled is anything placed on the calendar by its start time.
type Scheduled interface {
	Start() time.Time
}

// Start implements Scheduled.
func (a Appointment) Start() time.Time { return a.StartTime }

// SlotBucket is one half-hour row of the day view.
type SlotBucket[T Scheduled] struct {
	Label        string    `json:"label"`
	Time         TimeOfDay `json:"time"`
	Appointments []T       `json:"appointments"`
}

// HourBucket is one hourly cell of a week-view column.
type HourBucket[T Scheduled] struct {
	Label        string `json:"label"`
	Hour         int    `json:"hour"`
	Appointments []T    `json:"appointments"`
}

// DayColumn is one day of the week view.
type DayColumn[T Scheduled] struct {
	Key     string          `json:"key"`
	Date    time.Time       `json:"date"`
	Weekday string          `json:"weekday"`
	Rows    []HourBucket[T] `json:"rows"`
}

// DayGroup is one calendar day of the month/list view.
type DayGroup[T Scheduled] struct {
	Key          string    `json:"key"`
	Date         time.Time `json:"date"`
	Appointments []T       `json:"appointments"`
}

// ViewBuckets is the render-ready partition for a view mode. Exactly one of
// Slots, Columns or Groups is populated.
type ViewBuckets[T Scheduled] struct {
	Mode        ViewMode       `json:"mode"`
	WindowStart time.Time      `json:"window_start"`
	WindowEnd   time.Time      `json:"window_end"`
	Slots       []SlotBucket[T] `json:"slots,omitempty"`
	Columns     []DayColumn[T]  `json:"columns,omitempty"`
	Groups      []DayGroup[T]   `json:"groups,omitempty"`
}

// Count returns the number of appointments placed in any bucket.
func (v ViewBuckets[T]) Count() int {
	n := 0
	for _, s := range v.Slots {
		n += len(s.Appointments)
	}
	for _, c := range v.Columns {
		for _, r := range c.Rows {
			n += len(r.Appointments)
		}
	}
	for _, g := range v.Groups {
		n += len(g.Appointments)
	}
	return n
}

// WeekStart returns local midnight of the Monday on or before t. Sunday
// belongs to the week that started six days earlier.
func WeekStart(t time.Time) time.Time {
	wd := int(t.Weekday())
	offset := 1 - wd
	if wd == 0 {
		offset = -6
	}
	return startOfDay(t).AddDate(0, 0, offset)
}

// DaySlots returns the half-hour grid of the day view.
func DaySlots() []TimeOfDay {
	slots := make([]TimeOfDay, 0, (gridEndHour-gridStartHour)*2)
	for h := gridStartHour; h < gridEndHour; h++ {
		slots = append(slots, TimeOfDay{h, 0}, TimeOfDay{h, 30})
	}
	return slots
}

// BucketForView partitions list for display under mode. The input is never
// modified and within a bucket items keep their input order.
func BucketForView[T Scheduled](list []T, mode ViewMode, cursor Cursor) ViewBuckets[T] {
	start, end := cursor.WithMode(mode).Window()
	vb := ViewBuckets[T]{Mode: mode, WindowStart: start, WindowEnd: end}

	switch mode {
	case ViewDay:
		vb.Slots = bucketDay(list)
	case ViewWeek:
		vb.Columns = bucketWeek(list, cursor.Date)
	case ViewMonth:
		vb.Groups = groupByDay(list)
	}
	return vb
}

// bucketDay places an item only in the slot whose start matches its hour and
// minute exactly; off-grid items are not shown.
func bucketDay[T Scheduled](list []T) []SlotBucket[T] {
	grid := DaySlots()
	buckets := make([]SlotBucket[T], len(grid))
	index := make(map[TimeOfDay]int, len(grid))
	for i, slot := range grid {
		buckets[i] = SlotBucket[T]{Label: slot.String(), Time: slot, Appointments: []T{}}
		index[slot] = i
	}
	for _, item := range list {
		s := item.Start()
		if i, ok := index[TimeOfDay{s.Hour(), s.Minute()}]; ok {
			buckets[i].Appointments = append(buckets[i].Appointments, item)
		}
	}
	return buckets
}

// bucketWeek matches on weekday and hour only; minutes are ignored.
func bucketWeek[T Scheduled](list []T, date time.Time) []DayColumn[T] {
	monday := WeekStart(date)
	columns := make([]DayColumn[T], 7)
	for d := range columns {
		day := monday.AddDate(0, 0, d)
		rows := make([]HourBucket[T], 0, gridEndHour-gridStartHour)
		for h := gridStartHour; h < gridEndHour; h++ {
			rows = append(rows, HourBucket[T]{Label: fmt.Sprintf("%02d:00", h), Hour: h, Appointments: []T{}})
		}
		columns[d] = DayColumn[T]{
			Key:     day.Format(dayKeyLayout),
			Date:    day,
			Weekday: day.Weekday().String(),
			Rows:    rows,
		}
	}

	for _, item := range list {
		s := item.Start()
		if s.Hour() < gridStartHour || s.Hour() >= gridEndHour {
			continue
		}
		col := (int(s.Weekday()) + 6) % 7
		row := s.Hour() - gridStartHour
		columns[col].Rows[row].Appointments = append(columns[col].Rows[row].Appointments, item)
	}
	return columns
}

// groupByDay groups by calendar day, ascending, each group sorted by start.
func groupByDay[T Scheduled](list []T) []DayGroup[T] {
	byKey := make(map[string]*DayGroup[T])
	var keys []string
	for _, item := range list {
		s := item.Start()
		key := s.Format(dayKeyLayout)
		g, ok := byKey[key]
		if !ok {
			g = &DayGroup[T]{Key: key, Date: startOfDay(s)}
			byKey[key] = g
			keys = append(keys, key)
		}
		g.Appointments = append(g.Appointments, item)
	}

	sort.Strings(keys)
	groups := make([]DayGroup[T], 0, len(keys))
	for _, key := range keys {
		g := byKey[key]
		sort.SliceStable(g.Appointments, func(i, j int) bool {
			return g.Appointments[i].Start().Before(g.Appointments[j].Start())
		})
		groups = append(groups, *g)
	}
	return groups
}
