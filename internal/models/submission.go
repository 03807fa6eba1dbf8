package models

import "time"

// Submission is a learner's answer sheet for one test. Answers is sparse:
// unanswered questions are simply absent. At most one submission exists per
// (test, user) pair; a later submission overwrites the earlier one.
type Submission struct {
	ID          string            `bson:"_id,omitempty" json:"id"`
	TestID      string            `bson:"test_id" json:"test_id"`
	UserID      string            `bson:"user_id" json:"user_id"`
	UserName    string            `bson:"user_name,omitempty" json:"user_name,omitempty"`
	Answers     map[string]string `bson:"answers" json:"answers"`
	SubmittedAt time.Time         `bson:"submitted_at" json:"submitted_at"`
}
