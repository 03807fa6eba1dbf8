package scoring

import (
	"encoding/csv"
	"io"
	"sort"
	"strconv"
	"time"
)

const maxLimit = 100

// Entry is one scored-or-not submission fed into the leaderboard.
type Entry struct {
	UserID      string
	UserName    string
	Answers     map[string]string
	SubmittedAt time.Time
}

// Row is a ranked leaderboard line.
type Row struct {
	Rank          int       `json:"rank"`
	UserID        string    `json:"user_id"`
	UserName      string    `json:"user_name"`
	Score         float64   `json:"score"`
	Attempted     int       `json:"attempted"`
	TotalPossible float64   `json:"total_possible"`
	SubmittedAt   time.Time `json:"submitted_at"`
}

// Board is one page of the leaderboard plus paging metadata.
type Board struct {
	Rows  []Row `json:"rows"`
	Total int   `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

// Rank scores every entry and returns the full ordering: score descending,
// ties broken by earlier submission. Ranks are 1-based and recomputed on
// every call; nothing is persisted.
func Rank(s Scheme, key map[string]string, origin Origin, entries []Entry) []Row {
	rows := make([]Row, 0, len(entries))
	for _, e := range entries {
		res := s.Score(key, e.Answers, origin)
		rows = append(rows, Row{
			UserID:        e.UserID,
			UserName:      e.UserName,
			Score:         res.Score,
			Attempted:     res.Attempted,
			TotalPossible: res.TotalPossible,
			SubmittedAt:   e.SubmittedAt,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Score != rows[j].Score {
			return rows[i].Score > rows[j].Score
		}
		return rows[i].SubmittedAt.Before(rows[j].SubmittedAt)
	})
	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows
}

// BuildLeaderboard ranks the entries and slices out the requested page.
// page is clamped to >= 1 and limit into [1,100]; an out-of-range page
// returns an empty row set with the true total.
func BuildLeaderboard(s Scheme, key map[string]string, origin Origin, entries []Entry, page, limit int) Board {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	rows := Rank(s, key, origin, entries)
	total := len(rows)

	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return Board{Rows: rows[start:end], Total: total, Page: page, Limit: limit}
}

// WriteCSV renders rows as a CSV export. encoding/csv applies RFC 4180
// quoting, so display names containing commas or quotes survive round trips.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"rank", "user", "score", "total", "attempted", "submittedAt"}); err != nil {
		return err
	}
	for _, r := range rows {
		name := r.UserName
		if name == "" {
			name = r.UserID
		}
		rec := []string{
			strconv.Itoa(r.Rank),
			name,
			strconv.FormatFloat(r.Score, 'f', 3, 64),
			strconv.FormatFloat(r.TotalPossible, 'f', -1, 64),
			strconv.Itoa(r.Attempted),
			r.SubmittedAt.UTC().Format(time.RFC3339),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
