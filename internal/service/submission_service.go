package service

import (
	"context"
	"time"

	"mocktest-service/internal/models"
	"mocktest-service/internal/repository"

	"github.com/sirupsen/logrus"
)

type SubmissionService struct {
	Tests *repository.TestRepository
	Subs  *repository.SubmissionRepository
}

func NewSubmissionService(tests *repository.TestRepository, subs *repository.SubmissionRepository) *SubmissionService {
	return &SubmissionService{Tests: tests, Subs: subs}
}

// Submit stores the caller's answer sheet. Only allowed while the test is
// live; a resubmission overwrites the earlier sheet via the unique
// (test_id, user_id) upsert, so duplicate tabs can never create two rows.
func (s *SubmissionService) Submit(ctx context.Context, testID, userID, userName string, answers map[string]string, now time.Time) (*models.Submission, error) {
	test, err := s.Tests.FindByID(ctx, testID)
	if err != nil {
		return nil, err
	}
	if err := test.CanSubmit(now); err != nil {
		return nil, err
	}
	if answers == nil {
		answers = map[string]string{}
	}

	sub := &models.Submission{
		TestID:      testID,
		UserID:      userID,
		UserName:    userName,
		Answers:     answers,
		SubmittedAt: now,
	}
	if err := s.Subs.Upsert(ctx, sub); err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"test_id":  testID,
		"user_id":  userID,
		"answered": len(answers),
	}).Info("submission stored")
	return sub, nil
}

func (s *SubmissionService) ByTest(ctx context.Context, testID string) ([]models.Submission, error) {
	return s.Subs.FindByTest(ctx, testID)
}
