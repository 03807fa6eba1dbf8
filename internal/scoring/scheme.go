package scoring

// Scheme holds the marks awarded per question. It is injected into the
// engine so tests without negative marking can override the default.
type Scheme struct {
	Correct float64 `bson:"correct" json:"correct"`
	Wrong   float64 `bson:"wrong" json:"wrong"`
}

// DefaultScheme is the standard OMR marking: +2 for a correct answer,
// -2/3 for a wrong one, 0 for an unattempted question.
func DefaultScheme() Scheme {
	return Scheme{Correct: 2, Wrong: -2.0 / 3.0}
}

// Origin declares whether the answer key's question indices start at 0 or 1.
type Origin string

const (
	// OriginDetect falls back to the legacy heuristic: a key containing
	// the index "0" is treated as 0-based.
	OriginDetect Origin = ""
	OriginZero   Origin = "zero"
	OriginOne    Origin = "one"
)

// DetectOrigin resolves OriginDetect against the actual key contents.
func DetectOrigin(key map[string]string) Origin {
	if _, ok := key["0"]; ok {
		return OriginZero
	}
	return OriginOne
}
