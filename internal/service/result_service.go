package service

import (
	"context"
	"errors"
	"io"
	"time"

	"mocktest-service/internal/models"
	"mocktest-service/internal/repository"
	"mocktest-service/internal/scoring"
)

type ResultService struct {
	Tests *repository.TestRepository
	Subs  *repository.SubmissionRepository
}

func NewResultService(tests *repository.TestRepository, subs *repository.SubmissionRepository) *ResultService {
	return &ResultService{Tests: tests, Subs: subs}
}

// ResultView is the learner-facing result. Available is false until the test
// has completed and the learner has a submission; neither case is an error.
type ResultView struct {
	Available   bool            `json:"available"`
	Result      *scoring.Result `json:"result,omitempty"`
	SubmittedAt *time.Time      `json:"submitted_at,omitempty"`
}

// MyResult scores the caller's own submission once the test is completed.
func (s *ResultService) MyResult(ctx context.Context, testID, userID string, now time.Time) (ResultView, error) {
	test, err := s.Tests.FindByID(ctx, testID)
	if err != nil {
		return ResultView{}, err
	}
	if w := test.Window(now); !w.IsCompleted {
		return ResultView{}, nil
	}
	sub, err := s.Subs.FindByTestAndUser(ctx, testID, userID)
	if errors.Is(err, models.ErrNotFound) {
		return ResultView{}, nil
	}
	if err != nil {
		return ResultView{}, err
	}

	res := test.Scheme().Score(test.AnswerKey, sub.Answers, test.Origin())
	return ResultView{Available: true, Result: &res, SubmittedAt: &sub.SubmittedAt}, nil
}

// Leaderboard ranks every submission of the test and returns one page.
func (s *ResultService) Leaderboard(ctx context.Context, testID string, page, limit int) (scoring.Board, error) {
	test, subs, err := s.load(ctx, testID)
	if err != nil {
		return scoring.Board{}, err
	}
	return scoring.BuildLeaderboard(test.Scheme(), test.AnswerKey, test.Origin(), entries(subs), page, limit), nil
}

// ExportLeaderboard writes the full (unpaginated) leaderboard as CSV.
func (s *ResultService) ExportLeaderboard(ctx context.Context, testID string, w io.Writer) error {
	test, subs, err := s.load(ctx, testID)
	if err != nil {
		return err
	}
	rows := scoring.Rank(test.Scheme(), test.AnswerKey, test.Origin(), entries(subs))
	return scoring.WriteCSV(w, rows)
}

func (s *ResultService) load(ctx context.Context, testID string) (*models.Test, []models.Submission, error) {
	test, err := s.Tests.FindByID(ctx, testID)
	if err != nil {
		return nil, nil, err
	}
	subs, err := s.Subs.FindByTest(ctx, testID)
	if err != nil {
		return nil, nil, err
	}
	return test, subs, nil
}

func entries(subs []models.Submission) []scoring.Entry {
	out := make([]scoring.Entry, 0, len(subs))
	for _, sub := range subs {
		out = append(out, scoring.Entry{
			UserID:      sub.UserID,
			UserName:    sub.UserName,
			Answers:     sub.Answers,
			SubmittedAt: sub.SubmittedAt,
		})
	}
	return out
}
