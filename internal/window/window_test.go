package window

import (
	"testing"
	"time"
)

func TestComputeFlags(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	testCases := []struct {
		name      string
		start     *time.Time
		duration  int
		now       time.Time
		upcoming  bool
		live      bool
		completed bool
	}{
		{"well before start", &start, 60, start.Add(-2 * time.Hour), true, false, false},
		{"one second before start", &start, 60, start.Add(-time.Second), true, false, false},
		{"exactly at start", &start, 60, start, false, true, false},
		{"mid window", &start, 60, start.Add(30 * time.Minute), false, true, false},
		{"last second of window", &start, 60, start.Add(60*time.Minute - time.Second), false, true, false},
		{"exactly at end", &start, 60, start.Add(60 * time.Minute), false, false, true},
		{"long after end", &start, 60, start.Add(24 * time.Hour), false, false, true},
		{"unscheduled", nil, 60, start, false, false, false},
		{"no duration before start", &start, 0, start.Add(-time.Hour), true, false, false},
		{"no duration after start", &start, 0, start.Add(time.Hour), false, false, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := Compute(tc.start, tc.duration, tc.now)
			if w.IsUpcoming != tc.upcoming || w.IsLive != tc.live || w.IsCompleted != tc.completed {
				t.Errorf("got upcoming=%v live=%v completed=%v, want %v/%v/%v",
					w.IsUpcoming, w.IsLive, w.IsCompleted, tc.upcoming, tc.live, tc.completed)
			}
		})
	}
}

// With a valid start and duration exactly one flag must hold, no matter where
// now falls relative to the window.
func TestComputeExactlyOneFlag(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	offsets := []time.Duration{
		-48 * time.Hour, -time.Minute, -time.Millisecond, 0,
		time.Second, 30 * time.Minute, 60*time.Minute - time.Millisecond,
		60 * time.Minute, 61 * time.Minute, 72 * time.Hour,
	}
	for _, off := range offsets {
		w := Compute(&start, 60, start.Add(off))
		count := 0
		for _, f := range []bool{w.IsUpcoming, w.IsLive, w.IsCompleted} {
			if f {
				count++
			}
		}
		if count != 1 {
			t.Errorf("offset %v: %d flags set, want exactly 1 (%+v)", off, count, w)
		}
	}
}

func TestComputeMinutesToStart(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	w := Compute(&start, 60, start.Add(-90*time.Minute))
	if w.MinutesToStart == nil || *w.MinutesToStart != 90 {
		t.Fatalf("expected 90 minutes to start, got %v", w.MinutesToStart)
	}

	// Partial minutes round up.
	w = Compute(&start, 60, start.Add(-90*time.Second))
	if w.MinutesToStart == nil || *w.MinutesToStart != 2 {
		t.Fatalf("expected 2 minutes to start for 90s, got %v", w.MinutesToStart)
	}

	w = Compute(&start, 60, start.Add(time.Minute))
	if w.MinutesToStart != nil {
		t.Fatalf("expected nil minutes to start once live, got %d", *w.MinutesToStart)
	}

	w = Compute(nil, 60, start)
	if w.MinutesToStart != nil {
		t.Fatalf("expected nil minutes to start for unscheduled test")
	}
}

func TestComputeDeterministic(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	now := start.Add(10 * time.Minute)

	first := Compute(&start, 60, now)
	second := Compute(&start, 60, now)
	if first.IsUpcoming != second.IsUpcoming || first.IsLive != second.IsLive || first.IsCompleted != second.IsCompleted {
		t.Errorf("same inputs produced different windows: %+v vs %+v", first, second)
	}
}
