package service

import (
	"context"
	"time"

	"mocktest-service/internal/models"
	"mocktest-service/internal/repository"
)

type FeedbackService struct {
	Tests    *repository.TestRepository
	Feedback *repository.FeedbackRepository
}

func NewFeedbackService(tests *repository.TestRepository, feedback *repository.FeedbackRepository) *FeedbackService {
	return &FeedbackService{Tests: tests, Feedback: feedback}
}

// SubmitFeedback records the caller's rating for a test, replacing any
// earlier rating by the same user.
func (s *FeedbackService) SubmitFeedback(ctx context.Context, testID, userID string, rating int, comment string, now time.Time) (*models.Feedback, error) {
	if _, err := s.Tests.FindByID(ctx, testID); err != nil {
		return nil, err
	}
	fb := &models.Feedback{
		TestID:    testID,
		UserID:    userID,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: now,
	}
	if err := fb.Validate(); err != nil {
		return nil, err
	}
	if err := s.Feedback.Upsert(ctx, fb); err != nil {
		return nil, err
	}
	return fb, nil
}

// Summary aggregates all feedback for a test; an empty summary with
// available=false when none exists.
func (s *FeedbackService) Summary(ctx context.Context, testID string) (models.FeedbackSummary, error) {
	if _, err := s.Tests.FindByID(ctx, testID); err != nil {
		return models.FeedbackSummary{}, err
	}
	items, err := s.Feedback.FindByTest(ctx, testID)
	if err != nil {
		return models.FeedbackSummary{}, err
	}
	return models.SummarizeFeedback(items), nil
}
