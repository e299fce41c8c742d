package scheduling

import (
	"encoding/json"
	"time"
)

// Cursor is the currently displayed window: a date plus a view mode.
// It is a value type; every step returns a new Cursor.
type Cursor struct {
	Date time.Time
	Mode ViewMode
}

// NewCursor starts a cursor at clock's current time.
func NewCursor(clock Clock, mode ViewMode) Cursor {
	return Cursor{Date: clock.Now(), Mode: mode}
}

// Advance steps the cursor one window in dir.
func Advance(c Cursor, dir Direction) Cursor {
	if dir == DirectionPrevious {
		return c.Previous()
	}
	return c.Next()
}

func (c Cursor) Next() Cursor     { return c.step(1) }
func (c Cursor) Previous() Cursor { return c.step(-1) }

// step moves by a week, a day or a calendar month. Month steps use AddDate,
// so an overflowing day rolls into the following month (Jan 31 -> Mar 3).
func (c Cursor) step(n int) Cursor {
	switch c.Mode {
	case ViewDay:
		c.Date = c.Date.AddDate(0, 0, n)
	case ViewMonth:
		c.Date = c.Date.AddDate(0, n, 0)
	default:
		c.Date = c.Date.AddDate(0, 0, 7*n)
	}
	return c
}

// Today resets the date to clock's current time, keeping the mode.
func (c Cursor) Today(clock Clock) Cursor {
	c.Date = clock.Now()
	return c
}

// WithMode changes the mode without moving the date.
func (c Cursor) WithMode(mode ViewMode) Cursor {
	c.Mode = mode
	return c
}

// Window returns the half-open range [start, end) displayed by the cursor.
func (c Cursor) Window() (time.Time, time.Time) {
	switch c.Mode {
	case ViewDay:
		start := startOfDay(c.Date)
		return start, start.AddDate(0, 0, 1)
	case ViewMonth:
		y, m, _ := c.Date.Date()
		start := time.Date(y, m, 1, 0, 0, 0, 0, c.Date.Location())
		return start, start.AddDate(0, 1, 0)
	default:
		start := WeekStart(c.Date)
		return start, start.AddDate(0, 0, 7)
	}
}

type cursorJSON struct {
	Date        string    `json:"date"`
	Mode        ViewMode  `json:"view"`
	WindowStart time.Time `json:"window_start"`
	WindowEnd   time.Time `json:"window_end"`
}

// MarshalJSON renders the cursor with its date as 2006-01-02 and its window.
func (c Cursor) MarshalJSON() ([]byte, error) {
	start, end := c.Window()
	return json.Marshal(cursorJSON{
		Date:        c.Date.Format(dayKeyLayout),
		Mode:        c.Mode,
		WindowStart: start,
		WindowEnd:   end,
	})
}
