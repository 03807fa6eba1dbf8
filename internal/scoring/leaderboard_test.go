package scoring

import (
	"strings"
	"testing"
	"time"
)

var boardKey = map[string]string{"1": "A", "2": "B", "3": "C"}

func entryAt(user string, answers map[string]string, at time.Time) Entry {
	return Entry{UserID: user, UserName: user, Answers: answers, SubmittedAt: at}
}

func TestRankTieBreakEarlierSubmission(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	allCorrect := map[string]string{"1": "A", "2": "B", "3": "C"}
	oneCorrect := map[string]string{"1": "A"}

	// Two tied full scores: the later submission is listed first in the
	// input to prove the ordering comes from submittedAt, not input order.
	entries := []Entry{
		entryAt("late", allCorrect, base.Add(10*time.Minute)),
		entryAt("early", allCorrect, base),
		entryAt("low", oneCorrect, base.Add(20*time.Minute)),
	}

	rows := Rank(DefaultScheme(), boardKey, OriginDetect, entries)
	order := []string{rows[0].UserID, rows[1].UserID, rows[2].UserID}
	want := []string{"early", "late", "low"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("rank order %v, want %v", order, want)
		}
	}
	for i, r := range rows {
		if r.Rank != i+1 {
			t.Errorf("row %d has rank %d", i, r.Rank)
		}
	}
}

func TestBuildLeaderboardPagination(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	var entries []Entry
	for i := 0; i < 15; i++ {
		entries = append(entries, entryAt("user", map[string]string{"1": "A"}, base.Add(time.Duration(i)*time.Minute)))
	}

	board := BuildLeaderboard(DefaultScheme(), boardKey, OriginDetect, entries, 2, 10)
	if board.Total != 15 {
		t.Errorf("expected total 15, got %d", board.Total)
	}
	if len(board.Rows) != 5 {
		t.Errorf("expected 5 rows on page 2, got %d", len(board.Rows))
	}
	if board.Rows[0].Rank != 11 {
		t.Errorf("first row of page 2 should have rank 11, got %d", board.Rows[0].Rank)
	}
}

func TestBuildLeaderboardClamps(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	entries := []Entry{entryAt("u", nil, base)}

	board := BuildLeaderboard(DefaultScheme(), boardKey, OriginDetect, entries, -3, 0)
	if board.Page != 1 {
		t.Errorf("page should clamp to 1, got %d", board.Page)
	}
	if board.Limit != 1 {
		t.Errorf("limit should clamp to 1, got %d", board.Limit)
	}

	board = BuildLeaderboard(DefaultScheme(), boardKey, OriginDetect, entries, 1, 5000)
	if board.Limit != maxLimit {
		t.Errorf("limit should clamp to %d, got %d", maxLimit, board.Limit)
	}

	// A page past the end is empty but keeps the true total.
	board = BuildLeaderboard(DefaultScheme(), boardKey, OriginDetect, entries, 9, 10)
	if len(board.Rows) != 0 || board.Total != 1 {
		t.Errorf("out-of-range page: got %d rows total %d", len(board.Rows), board.Total)
	}
}

func TestBuildLeaderboardEmpty(t *testing.T) {
	board := BuildLeaderboard(DefaultScheme(), boardKey, OriginDetect, nil, 1, 10)
	if board.Total != 0 || len(board.Rows) != 0 {
		t.Errorf("empty submissions should yield empty board, got %+v", board)
	}
}

func TestWriteCSVQuoting(t *testing.T) {
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	rows := []Row{
		{Rank: 1, UserID: "u1", UserName: `Doe, Jane "JD"`, Score: 1.333, Attempted: 2, TotalPossible: 6, SubmittedAt: at},
		{Rank: 2, UserID: "u2", Score: 0, Attempted: 0, TotalPossible: 6, SubmittedAt: at},
	}

	var sb strings.Builder
	if err := WriteCSV(&sb, rows); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	out := sb.String()

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d lines:\n%s", len(lines), out)
	}
	if lines[0] != "rank,user,score,total,attempted,submittedAt" {
		t.Errorf("unexpected header: %s", lines[0])
	}
	if !strings.Contains(lines[1], `"Doe, Jane ""JD"""`) {
		t.Errorf("display name not RFC 4180 quoted: %s", lines[1])
	}
	if !strings.Contains(lines[1], "1.333") {
		t.Errorf("score not rendered to 3 decimals: %s", lines[1])
	}
	// A row without a display name falls back to the user ID.
	if !strings.HasPrefix(lines[2], "2,u2,") {
		t.Errorf("expected user ID fallback, got: %s", lines[2])
	}
}
