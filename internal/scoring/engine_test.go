package scoring

import (
	"math"
	"testing"
)

func TestScoreMarkingScheme(t *testing.T) {
	scheme := DefaultScheme()
	key := map[string]string{"1": "A", "2": "B", "3": "C"}
	answers := map[string]string{"1": "A", "2": "C"}

	res := scheme.Score(key, answers, OriginDetect)

	if res.Attempted != 2 {
		t.Errorf("expected 2 attempted, got %d", res.Attempted)
	}
	if res.TotalPossible != 6 {
		t.Errorf("expected total possible 6, got %v", res.TotalPossible)
	}
	// +2 for Q1, -2/3 for Q2, rounded to three decimals.
	if res.Score != 1.333 {
		t.Errorf("expected score 1.333, got %v", res.Score)
	}

	if len(res.Details) != 3 {
		t.Fatalf("expected 3 detail rows, got %d", len(res.Details))
	}
	if !res.Details[0].IsCorrect || res.Details[0].Marked != "A" {
		t.Errorf("question 1 should be correct with mark A, got %+v", res.Details[0])
	}
	if res.Details[1].IsCorrect {
		t.Errorf("question 2 should be wrong, got %+v", res.Details[1])
	}
	if res.Details[2].Marked != "" || res.Details[2].IsCorrect {
		t.Errorf("question 3 should be unattempted, got %+v", res.Details[2])
	}
}

func TestScoreEmptyKey(t *testing.T) {
	res := DefaultScheme().Score(map[string]string{}, map[string]string{"1": "A"}, OriginDetect)
	if res.Score != 0 || res.Attempted != 0 || res.TotalPossible != 0 {
		t.Errorf("empty key should score zero, got %+v", res)
	}
	if res.Details == nil || len(res.Details) != 0 {
		t.Errorf("empty key should yield empty (non-nil) details, got %#v", res.Details)
	}
}

func TestScoreCaseInsensitive(t *testing.T) {
	key := map[string]string{"1": "a", "2": "B"}
	answers := map[string]string{"1": "A", "2": "b"}
	res := DefaultScheme().Score(key, answers, OriginDetect)
	if res.Score != 4 {
		t.Errorf("lower/upper case mismatch should still score 4, got %v", res.Score)
	}
}

func TestScoreIndexOrigin(t *testing.T) {
	testCases := []struct {
		name          string
		key           map[string]string
		origin        Origin
		wantQuestions []int
	}{
		{"zero-based detected", map[string]string{"0": "A", "1": "B"}, OriginDetect, []int{1, 2}},
		{"one-based detected", map[string]string{"1": "A", "2": "B"}, OriginDetect, []int{1, 2}},
		{"explicit zero", map[string]string{"0": "A", "1": "B"}, OriginZero, []int{1, 2}},
		{"explicit one", map[string]string{"1": "A", "2": "B"}, OriginOne, []int{1, 2}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res := DefaultScheme().Score(tc.key, nil, tc.origin)
			if len(res.Details) != len(tc.wantQuestions) {
				t.Fatalf("expected %d details, got %d", len(tc.wantQuestions), len(res.Details))
			}
			for i, want := range tc.wantQuestions {
				if res.Details[i].Question != want {
					t.Errorf("detail %d: display question %d, want %d", i, res.Details[i].Question, want)
				}
			}
		})
	}
}

func TestScoreDetailsAscendingOrder(t *testing.T) {
	key := map[string]string{"10": "A", "2": "B", "1": "C"}
	res := DefaultScheme().Score(key, nil, OriginOne)
	prev := 0
	for _, d := range res.Details {
		if d.Question <= prev {
			t.Fatalf("details not in ascending numeric order: %+v", res.Details)
		}
		prev = d.Question
	}
}

func TestScoreNoNegativeScheme(t *testing.T) {
	scheme := Scheme{Correct: 1, Wrong: 0}
	key := map[string]string{"1": "A", "2": "B"}
	answers := map[string]string{"1": "D", "2": "B"}
	res := scheme.Score(key, answers, OriginDetect)
	if res.Score != 1 {
		t.Errorf("no-negative scheme: expected score 1, got %v", res.Score)
	}
	if res.TotalPossible != 2 {
		t.Errorf("no-negative scheme: expected total 2, got %v", res.TotalPossible)
	}
}

func TestScoreAllWrongAccumulation(t *testing.T) {
	key := map[string]string{"1": "A", "2": "A", "3": "A"}
	answers := map[string]string{"1": "B", "2": "B", "3": "B"}
	res := DefaultScheme().Score(key, answers, OriginDetect)
	// Three wrong answers accumulate at full precision before rounding.
	if math.Abs(res.Score - -2.0) > 1e-9 {
		t.Errorf("expected -2 for three wrong answers, got %v", res.Score)
	}
}
