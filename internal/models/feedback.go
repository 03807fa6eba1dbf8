package models

import (
	"fmt"
	"math"
	"time"
)

// Feedback is a learner's rating of a test, one per (test, user).
type Feedback struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	TestID    string    `bson:"test_id" json:"test_id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	Rating    int       `bson:"rating" json:"rating"`
	Comment   string    `bson:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

func (f *Feedback) Validate() error {
	if f.Rating < 1 || f.Rating > 5 {
		return fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	}
	return nil
}

// FeedbackSummary aggregates all feedback for a test. Available is false
// when no feedback exists, which is not an error.
type FeedbackSummary struct {
	Available     bool        `json:"available"`
	AverageRating float64     `json:"average_rating,omitempty"`
	Count         int         `json:"count,omitempty"`
	Distribution  map[int]int `json:"distribution,omitempty"`
}

// SummarizeFeedback computes the summary with the average rounded to two
// decimals for display.
func SummarizeFeedback(items []Feedback) FeedbackSummary {
	if len(items) == 0 {
		return FeedbackSummary{}
	}
	s := FeedbackSummary{Available: true, Count: len(items), Distribution: map[int]int{}}
	total := 0
	for _, f := range items {
		total += f.Rating
		s.Distribution[f.Rating]++
	}
	s.AverageRating = math.Round(float64(total)/float64(len(items))*100) / 100
	return s
}
