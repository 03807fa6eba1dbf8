package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"mocktest-service/internal/scoring"
	"mocktest-service/internal/window"
)

// Test is a scheduled mock examination shared by link token.
type Test struct {
	ID              string            `bson:"_id,omitempty" json:"id"`
	LinkToken       string            `bson:"link_token" json:"link_token"`
	Title           string            `bson:"title" json:"title"`
	Description     string            `bson:"description" json:"description"`
	Subject         string            `bson:"subject" json:"subject"`
	TestType        string            `bson:"test_type" json:"test_type"`
	Mode            string            `bson:"mode" json:"mode"`
	ScheduledAt     *time.Time        `bson:"scheduled_at,omitempty" json:"scheduled_at,omitempty"`
	DurationMinutes int               `bson:"duration_minutes,omitempty" json:"duration_minutes,omitempty"`
	QuestionCount   int               `bson:"question_count,omitempty" json:"question_count,omitempty"`
	AnswerKey       map[string]string `bson:"answer_key" json:"answer_key,omitempty"`
	KeyOrigin       scoring.Origin    `bson:"key_origin,omitempty" json:"key_origin,omitempty"`
	Marking         *scoring.Scheme   `bson:"marking,omitempty" json:"marking,omitempty"`
	RegisteredUsers []string          `bson:"registered_users" json:"registered_users,omitempty"`
	CreatedBy       string            `bson:"created_by" json:"created_by"`
	IsPublic        bool              `bson:"is_public" json:"is_public"`
	CreatedAt       time.Time         `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time         `bson:"updated_at" json:"updated_at"`
}

// Window derives the test's temporal state at now.
func (t *Test) Window(now time.Time) window.Window {
	return window.Compute(t.ScheduledAt, t.DurationMinutes, now)
}

func (t *Test) IsCreator(userID string) bool {
	return userID != "" && t.CreatedBy == userID
}

func (t *Test) IsRegistered(userID string) bool {
	for _, id := range t.RegisteredUsers {
		if id == userID {
			return true
		}
	}
	return false
}

// RegistrationCount is always the live set size; a separate counter would
// drift from the registered_users array under concurrent updates.
func (t *Test) RegistrationCount() int {
	return len(t.RegisteredUsers)
}

// Scheme returns the test's marking override, or the default scheme.
func (t *Test) Scheme() scoring.Scheme {
	if t.Marking != nil {
		return *t.Marking
	}
	return scoring.DefaultScheme()
}

// Origin returns the stored key origin, resolving the legacy heuristic for
// documents created before the field existed.
func (t *Test) Origin() scoring.Origin {
	if t.KeyOrigin != scoring.OriginDetect {
		return t.KeyOrigin
	}
	return scoring.DetectOrigin(t.AnswerKey)
}

// CanModify reports whether scheduling and content fields may still change.
// Edits are frozen once the test goes live; only registrations and
// submissions change after that.
func (t *Test) CanModify(now time.Time) error {
	if w := t.Window(now); w.IsLive || w.IsCompleted {
		return fmt.Errorf("%w: test is live or completed", ErrInvalidState)
	}
	return nil
}

// CanUnregister allows leaving the registration set only before the test
// starts. Registering has no such gate.
func (t *Test) CanUnregister(now time.Time) error {
	if w := t.Window(now); w.IsLive || w.IsCompleted {
		return fmt.Errorf("%w: cannot unregister once the test is live", ErrInvalidState)
	}
	return nil
}

// CanSubmit allows answer sheets only while the test is live.
func (t *Test) CanSubmit(now time.Time) error {
	if !t.Window(now).IsLive {
		return fmt.Errorf("%w: test is not live", ErrForbidden)
	}
	return nil
}

var validOptions = map[string]bool{"A": true, "B": true, "C": true, "D": true}

// Validate checks the invariants a test must satisfy before it is stored:
// duration and question count strictly positive when present, answer-key
// options limited to A-D.
func (t *Test) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if t.DurationMinutes < 0 {
		return fmt.Errorf("%w: duration must be positive", ErrValidation)
	}
	if t.QuestionCount < 0 {
		return fmt.Errorf("%w: question count must be positive", ErrValidation)
	}
	for q, opt := range t.AnswerKey {
		if _, err := strconv.Atoi(q); err != nil {
			return fmt.Errorf("%w: answer key index %q is not a number", ErrValidation, q)
		}
		if !validOptions[strings.ToUpper(opt)] {
			return fmt.Errorf("%w: question %s: option %q is not one of A-D", ErrValidation, q, opt)
		}
	}
	return nil
}

// TestView is the external shape of a Test: window and registration count
// are derived on every read, and the answer key is only exposed to the owner.
type TestView struct {
	ID                string            `json:"id"`
	LinkToken         string            `json:"link_token"`
	Title             string            `json:"title"`
	Description       string            `json:"description"`
	Subject           string            `json:"subject"`
	TestType          string            `json:"test_type"`
	Mode              string            `json:"mode"`
	ScheduledAt       *time.Time        `json:"scheduled_at,omitempty"`
	DurationMinutes   int               `json:"duration_minutes,omitempty"`
	QuestionCount     int               `json:"question_count,omitempty"`
	AnswerKey         map[string]string `json:"answer_key,omitempty"`
	RegistrationCount int               `json:"registration_count"`
	IsRegistered      bool              `json:"is_registered"`
	IsCreator         bool              `json:"is_creator"`
	IsPublic          bool              `json:"is_public"`
	Window            window.Window     `json:"window"`
	CreatedAt         time.Time         `json:"created_at"`
}

// View shapes the test for the given viewer at now.
func (t *Test) View(now time.Time, viewerID string) TestView {
	v := TestView{
		ID:                t.ID,
		LinkToken:         t.LinkToken,
		Title:             t.Title,
		Description:       t.Description,
		Subject:           t.Subject,
		TestType:          t.TestType,
		Mode:              t.Mode,
		ScheduledAt:       t.ScheduledAt,
		DurationMinutes:   t.DurationMinutes,
		QuestionCount:     t.QuestionCount,
		RegistrationCount: t.RegistrationCount(),
		IsRegistered:      t.IsRegistered(viewerID),
		IsCreator:         t.IsCreator(viewerID),
		IsPublic:          t.IsPublic,
		Window:            t.Window(now),
		CreatedAt:         t.CreatedAt,
	}
	if v.IsCreator {
		v.AnswerKey = t.AnswerKey
	}
	return v
}
