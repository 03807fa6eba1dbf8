package scoring

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// Detail is the per-question verdict. Question is always the 1-based
// display number regardless of the key's index origin.
type Detail struct {
	Question  int    `json:"question"`
	Marked    string `json:"marked,omitempty"`
	Correct   string `json:"correct"`
	IsCorrect bool   `json:"is_correct"`
}

// Result aggregates a single submission scored against an answer key.
type Result struct {
	Score         float64  `json:"score"`
	Attempted     int      `json:"attempted"`
	TotalPossible float64  `json:"total_possible"`
	Details       []Detail `json:"details"`
}

// Score grades answers against key under the scheme. Questions are walked in
// ascending numeric order of the key's indices. An answer absent from the
// submission is unattempted and contributes nothing; option letters are
// compared case-insensitively. An empty key yields a zero Result.
//
// The same function backs both the single-learner result view and the
// leaderboard, so the two can never drift.
func (s Scheme) Score(key, answers map[string]string, origin Origin) Result {
	res := Result{Details: []Detail{}}
	if len(key) == 0 {
		return res
	}
	if origin == OriginDetect {
		origin = DetectOrigin(key)
	}

	indices := make([]int, 0, len(key))
	for k := range key {
		q, err := strconv.Atoi(k)
		if err != nil {
			continue
		}
		indices = append(indices, q)
	}
	sort.Ints(indices)

	for _, q := range indices {
		idx := strconv.Itoa(q)
		display := q
		if origin == OriginZero {
			display = q + 1
		}
		d := Detail{
			Question: display,
			Correct:  strings.ToUpper(key[idx]),
		}
		if marked, ok := answers[idx]; ok && marked != "" {
			d.Marked = strings.ToUpper(marked)
			res.Attempted++
			if d.Marked == d.Correct {
				d.IsCorrect = true
				res.Score += s.Correct
			} else {
				res.Score += s.Wrong
			}
		}
		res.Details = append(res.Details, d)
	}

	res.TotalPossible = float64(len(res.Details)) * s.Correct
	res.Score = roundTo3(res.Score)
	return res
}

func roundTo3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
