package window

import (
	"math"
	"time"
)

// Window is the derived temporal state of a scheduled test. The three flags
// are mutually exclusive whenever a valid schedule exists.
type Window struct {
	IsUpcoming     bool `json:"is_upcoming"`
	IsLive         bool `json:"is_live"`
	IsCompleted    bool `json:"is_completed"`
	MinutesToStart *int `json:"minutes_to_start,omitempty"`
}

// Compute derives the window for a test scheduled at start with the given
// duration, relative to now. A nil start means the test is unscheduled and
// all flags are false. A non-positive duration leaves the end open: the test
// can still be upcoming but never live or completed.
//
// Callers must pass a fresh now on every evaluation; the result is never
// cached because it gates registration, submission and result visibility.
func Compute(start *time.Time, durationMinutes int, now time.Time) Window {
	var w Window
	if start == nil || start.IsZero() {
		return w
	}

	w.IsUpcoming = now.Before(*start)

	if durationMinutes > 0 {
		end := start.Add(time.Duration(durationMinutes) * time.Minute)
		w.IsLive = !w.IsUpcoming && now.Before(end)
		w.IsCompleted = !now.Before(end)
	}

	if w.IsUpcoming {
		mins := int(math.Ceil(start.Sub(now).Minutes()))
		w.MinutesToStart = &mins
	}
	return w
}
