package scoring

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
)

// Signal is one explained contribution to a dimension score.
type Signal struct {
	Rule   string  `json:"rule"`
	Delta  float64 `json:"delta"`
	Reason string  `json:"reason"`
}

// String renders the signal as "+15 (reason)".
func (s Signal) String() string {
	return fmt.Sprintf("%s (%s)", FormatDelta(s.Delta), s.Reason)
}

// FormatDelta renders a delta with an explicit sign and at most one decimal.
func FormatDelta(d float64) string {
	v := humanize.FtoaWithDigits(round1(math.Abs(d)), 1)
	switch {
	case v == "0":
		return "0"
	case d > 0:
		return "+" + v
	case d < 0:
		return "-" + v
	default:
		return "0"
	}
}

// Rule produces the signals one check contributes for an input.
type Rule interface {
	Evaluate(in *Input) []Signal
}

// When is a fixed (predicate, delta, explanation) rule.
type When struct {
	Name      string
	Predicate func(in *Input) bool
	Delta     float64
	Reason    string
}

func (w When) Evaluate(in *Input) []Signal {
	if !w.Predicate(in) {
		return nil
	}
	return []Signal{{Rule: w.Name, Delta: w.Delta, Reason: w.Reason}}
}

// FirstOf is a group of mutually exclusive rules: only the first one whose
// predicate holds contributes.
type FirstOf []When

func (f FirstOf) Evaluate(in *Input) []Signal {
	for _, w := range f {
		if w.Predicate(in) {
			return w.Evaluate(in)
		}
	}
	return nil
}

// RuleFunc is a rule whose delta or explanation depends on the input.
type RuleFunc func(in *Input) []Signal

func (f RuleFunc) Evaluate(in *Input) []Signal { return f(in) }

// Scorer computes one dimension: Base plus every signal, clamped once to
// [0,100] after all rules ran.
type Scorer struct {
	Dimension Dimension
	Base      float64
	Rules     []Rule
}

// Score evaluates the rules in order.
func (s Scorer) Score(in *Input) Score {
	value := s.Base
	signals := make([]Signal, 0, len(s.Rules))
	for _, r := range s.Rules {
		for _, sig := range r.Evaluate(in) {
			value += sig.Delta
			signals = append(signals, sig)
		}
	}
	return Score{
		Dimension: s.Dimension,
		Value:     clamp(round1(value)),
		Base:      s.Base,
		Signals:   signals,
	}
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
