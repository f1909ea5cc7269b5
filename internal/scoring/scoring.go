// Package scoring implements the dimension scorers and the weighted
// aggregator. Every scorer is a base value followed by an ordered list of
// rules; each rule leaves a signed, explained signal in the trail.
package scoring

import (
	"fmt"
	"strings"
)

// Dimension names a scored aspect of a posting.
type Dimension string

const (
	DimensionSkills      Dimension = "skills"
	DimensionImmigration Dimension = "immigration"
	DimensionInterview   Dimension = "interview"
	DimensionSalary      Dimension = "salary"
	DimensionCompany     Dimension = "company"
	DimensionSuccess     Dimension = "success"
)

// Dimensions lists every dimension in evaluation and summation order.
var Dimensions = []Dimension{
	DimensionSkills,
	DimensionImmigration,
	DimensionInterview,
	DimensionSalary,
	DimensionCompany,
	DimensionSuccess,
}

// ParseDimension validates a dimension name.
func ParseDimension(name string) (Dimension, error) {
	d := Dimension(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Dimensions {
		if d == known {
			return d, nil
		}
	}
	return "", &ConfigError{Message: fmt.Sprintf("unknown dimension %q", name)}
}

// Score is one dimension's value and explanation trail.
type Score struct {
	Dimension Dimension `json:"dimension"`
	Value     float64   `json:"value"`
	Base      float64   `json:"base"`
	Signals   []Signal  `json:"signals"`
}

// Trail renders the signals as explanation strings.
func (s Score) Trail() []string {
	out := make([]string, len(s.Signals))
	for i, sig := range s.Signals {
		out[i] = sig.String()
	}
	return out
}

// Breakdown holds one Score per dimension in Dimensions order.
type Breakdown []Score

// Get returns the score of a dimension.
func (b Breakdown) Get(d Dimension) (Score, bool) {
	for _, s := range b {
		if s.Dimension == d {
			return s, true
		}
	}
	return Score{}, false
}

// Value returns the value of a dimension, 0 when absent.
func (b Breakdown) Value(d Dimension) float64 {
	s, _ := b.Get(d)
	return s.Value
}

// Values returns dimension values keyed by name.
func (b Breakdown) Values() map[Dimension]float64 {
	out := make(map[Dimension]float64, len(b))
	for _, s := range b {
		out[s.Dimension] = s.Value
	}
	return out
}

// Scorers is the full set of dimension scorers.
type Scorers struct {
	scorers []Scorer
}

// NewScorers builds the default scorer set.
func NewScorers() *Scorers {
	return &Scorers{scorers: []Scorer{
		SkillsScorer(),
		ImmigrationScorer(),
		InterviewScorer(),
		SalaryScorer(),
		CompanyScorer(),
		SuccessScorer(),
	}}
}

// Score runs every scorer against the input.
func (s *Scorers) Score(in *Input) Breakdown {
	out := make(Breakdown, 0, len(s.scorers))
	for _, sc := range s.scorers {
		out = append(out, sc.Score(in))
	}
	return out
}
