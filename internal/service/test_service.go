package service

import (
	"context"
	"time"

	"mocktest-service/internal/models"
	"mocktest-service/internal/repository"
	"mocktest-service/internal/scoring"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
)

type TestService struct {
	Repo *repository.TestRepository
}

func NewTestService(repo *repository.TestRepository) *TestService {
	return &TestService{Repo: repo}
}

// CreateTest validates the test, mints its shareable link token and pins the
// answer-key index origin so scoring never has to re-detect it.
func (s *TestService) CreateTest(ctx context.Context, test *models.Test, creatorID string) error {
	if creatorID == "" {
		return models.ErrUnauthorized
	}
	test.CreatedBy = creatorID
	if err := test.Validate(); err != nil {
		return err
	}
	test.LinkToken = uuid.NewString()
	if test.KeyOrigin == scoring.OriginDetect && len(test.AnswerKey) > 0 {
		test.KeyOrigin = scoring.DetectOrigin(test.AnswerKey)
	}
	if err := s.Repo.Create(ctx, test); err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"test_id": test.ID,
		"creator": creatorID,
	}).Info("test created")
	return nil
}

func (s *TestService) GetByID(ctx context.Context, id string) (*models.Test, error) {
	return s.Repo.FindByID(ctx, id)
}

// GetByLink resolves a shareable link token; the token itself is the access
// capability, so no further visibility check applies.
func (s *TestService) GetByLink(ctx context.Context, token string) (*models.Test, error) {
	return s.Repo.FindByLink(ctx, token)
}

// UpdateTestInput carries the owner-editable fields; nil means unchanged.
type UpdateTestInput struct {
	Title           *string            `json:"title,omitempty"`
	Description     *string            `json:"description,omitempty"`
	Subject         *string            `json:"subject,omitempty"`
	TestType        *string            `json:"test_type,omitempty"`
	Mode            *string            `json:"mode,omitempty"`
	ScheduledAt     *time.Time         `json:"scheduled_at,omitempty"`
	DurationMinutes *int               `json:"duration_minutes,omitempty"`
	QuestionCount   *int               `json:"question_count,omitempty"`
	AnswerKey       *map[string]string `json:"answer_key,omitempty"`
	KeyOrigin       *scoring.Origin    `json:"key_origin,omitempty"`
	Marking         *scoring.Scheme    `json:"marking,omitempty"`
	IsPublic        *bool              `json:"is_public,omitempty"`
}

// UpdateTest applies an owner edit. Scheduling and content are frozen once
// the test goes live; only registrations and submissions change after that.
func (s *TestService) UpdateTest(ctx context.Context, id, userID string, in UpdateTestInput, now time.Time) (*models.Test, error) {
	test, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !test.IsCreator(userID) {
		return nil, models.ErrForbidden
	}
	if err := test.CanModify(now); err != nil {
		return nil, err
	}

	update := bson.M{}
	if in.Title != nil {
		test.Title = *in.Title
		update["title"] = *in.Title
	}
	if in.Description != nil {
		test.Description = *in.Description
		update["description"] = *in.Description
	}
	if in.Subject != nil {
		test.Subject = *in.Subject
		update["subject"] = *in.Subject
	}
	if in.TestType != nil {
		test.TestType = *in.TestType
		update["test_type"] = *in.TestType
	}
	if in.Mode != nil {
		test.Mode = *in.Mode
		update["mode"] = *in.Mode
	}
	if in.ScheduledAt != nil {
		test.ScheduledAt = in.ScheduledAt
		update["scheduled_at"] = *in.ScheduledAt
	}
	if in.DurationMinutes != nil {
		test.DurationMinutes = *in.DurationMinutes
		update["duration_minutes"] = *in.DurationMinutes
	}
	if in.QuestionCount != nil {
		test.QuestionCount = *in.QuestionCount
		update["question_count"] = *in.QuestionCount
	}
	if in.AnswerKey != nil {
		test.AnswerKey = *in.AnswerKey
		update["answer_key"] = *in.AnswerKey
		origin := scoring.DetectOrigin(*in.AnswerKey)
		test.KeyOrigin = origin
		update["key_origin"] = origin
	}
	if in.KeyOrigin != nil {
		test.KeyOrigin = *in.KeyOrigin
		update["key_origin"] = *in.KeyOrigin
	}
	if in.Marking != nil {
		test.Marking = in.Marking
		update["marking"] = *in.Marking
	}
	if in.IsPublic != nil {
		test.IsPublic = *in.IsPublic
		update["is_public"] = *in.IsPublic
	}

	if err := test.Validate(); err != nil {
		return nil, err
	}
	if len(update) == 0 {
		return test, nil
	}
	if err := s.Repo.Update(ctx, id, update); err != nil {
		return nil, err
	}
	return test, nil
}

func (s *TestService) DeleteTest(ctx context.Context, id, userID string, now time.Time) error {
	test, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !test.IsCreator(userID) {
		return models.ErrForbidden
	}
	if err := test.CanModify(now); err != nil {
		return err
	}
	return s.Repo.Delete(ctx, id)
}

// Register adds the caller to the registration set. Idempotent, and not
// window-gated: learners may register right up to and during the test.
func (s *TestService) Register(ctx context.Context, token, userID string) (int, error) {
	test, err := s.Repo.FindByLink(ctx, token)
	if err != nil {
		return 0, err
	}
	count, err := s.Repo.AddRegistration(ctx, test.ID, userID)
	if err != nil {
		return 0, err
	}
	logrus.WithFields(logrus.Fields{
		"test_id": test.ID,
		"user_id": userID,
		"count":   count,
	}).Info("user registered")
	return count, nil
}

// Unregister removes the caller from the registration set. Refused once the
// test is live or completed.
func (s *TestService) Unregister(ctx context.Context, token, userID string, now time.Time) (int, error) {
	test, err := s.Repo.FindByLink(ctx, token)
	if err != nil {
		return 0, err
	}
	if err := test.CanUnregister(now); err != nil {
		return 0, err
	}
	return s.Repo.RemoveRegistration(ctx, test.ID, userID)
}

func (s *TestService) TestsByCreator(ctx context.Context, userID string) ([]models.Test, error) {
	return s.Repo.FindByCreator(ctx, userID)
}

func (s *TestService) TestsByRegisteredUser(ctx context.Context, userID string) ([]models.Test, error) {
	return s.Repo.FindByRegisteredUser(ctx, userID)
}
