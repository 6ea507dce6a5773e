// Package score implements the deterministic rule-based portfolio scorer.
//
// The package is pure: every scorer is a total function over an in-memory
// snapshot, performs no I/O, and never panics — absent fields are treated as
// empty. Scores are produced on a fixed 130-point scale split across five
// dimensions (Completeness 30, Technical 30, Troubleshooting 25,
// Expression 20, Activity 25).
package score

// Snapshot is the immutable scoring input assembled from a stored portfolio.
// Zero values are meaningful: an all-empty snapshot is valid and scores zero
// on most dimensions without error.
type Snapshot struct {
	Name         string
	Email        string
	Phone        string
	Introduction string

	Skills       []Skill
	Projects     []Project
	Educations   []string
	Certificates []string

	// ContribGraph is the opaque contribution-calendar JSON blob; it is
	// parsed leniently and malformed content counts as zero activity.
	ContribGraph []byte
	// GithubDisplay gates the contribution sub-score entirely.
	GithubDisplay bool
}

// Skill is one listed technology with an optional proficiency level (0 unset).
type Skill struct {
	Name  string
	Level int
}

// Project is one portfolio project as seen by the scorer.
type Project struct {
	Name        string
	Description string
	Role        string
	TechStack   []string
	GithubURL   string
	DemoURL     string
	Link        string
}

// Troubleshoot is one troubleshooting entry as seen by the scorer. Category
// is not scored and intentionally omitted here.
type Troubleshoot struct {
	Problem  string
	Cause    string
	Solution string
	Lesson   string
}

// DimensionScore is the outcome of scoring one dimension. Details carries
// human-readable improvement messages in a fixed, criterion-declaration order.
// Invariant: 0 <= Score <= MaxScore.
type DimensionScore struct {
	Score    int      `json:"score"`
	MaxScore int      `json:"max_score"`
	Details  []string `json:"details"`
}

// Scores aggregates the five dimension scores of one evaluation.
type Scores struct {
	Completeness    DimensionScore `json:"completeness"`
	Technical       DimensionScore `json:"technical"`
	Troubleshooting DimensionScore `json:"troubleshooting"`
	Expression      DimensionScore `json:"expression"`
	Activity        DimensionScore `json:"activity"`
}

// Total returns the rule-based total. It is always recomputed from the parts
// and never stored independently of them.
func (s Scores) Total() int {
	return s.Completeness.Score +
		s.Technical.Score +
		s.Troubleshooting.Score +
		s.Expression.Score +
		s.Activity.Score
}

// MaxTotal is the fixed full-marks total across all five dimensions.
const MaxTotal = 130

// All runs every dimension scorer over the snapshot and its troubleshooting
// entries.
func All(s Snapshot, entries []Troubleshoot) Scores {
	return Scores{
		Completeness:    Completeness(s),
		Technical:       Technical(s),
		Troubleshooting: Troubleshooting(entries),
		Expression:      Expression(s),
		Activity:        Activity(s),
	}
}
