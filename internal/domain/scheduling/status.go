package scheduling

import "time"

// DeriveStatus samples a plausible status for synthetic data scheduled at
// start, as seen at now. Past days lean completed, today splits on whether
// the slot has elapsed, and future days lean confirmed.
func DeriveStatus(now, start time.Time, r Rand) Status {
	today := startOfDay(now)
	day := startOfDay(start.In(now.Location()))

	switch {
	case day.Before(today):
		if r.Float64() < 0.8 {
			return StatusCompleted
		}
		return StatusCancelled
	case day.Equal(today) && !start.After(now):
		if r.Float64() < 0.7 {
			return StatusCompleted
		}
		return StatusInProgress
	case day.Equal(today):
		if r.Float64() < 0.5 {
			return StatusConfirmed
		}
		return StatusScheduled
	default:
		if r.Float64() < 0.7 {
			return StatusConfirmed
		}
		return StatusScheduled
	}
}
