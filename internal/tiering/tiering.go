// Package tiering turns a scored posting into an application strategy tier.
package tiering

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/spigell/jobfit/internal/scoring"
)

// Tier is the application strategy.
type Tier string

const (
	TierA Tier = "A"
	TierB Tier = "B"
	TierC Tier = "C"
)

// Label is the human name of a tier.
func (t Tier) Label() string {
	switch t {
	case TierA:
		return "Stretch"
	case TierB:
		return "Sweet Spot"
	case TierC:
		return "Quick Win"
	default:
		return "Unknown"
	}
}

// ParseTier reads "a", "B", ... into a Tier.
func ParseTier(s string) (Tier, error) {
	t := Tier(strings.ToUpper(strings.TrimSpace(s)))
	switch t {
	case TierA, TierB, TierC:
		return t, nil
	}
	return "", fmt.Errorf("unknown tier %q", s)
}

// Rule names the step that decided the tier.
type Rule string

const (
	RuleInterviewRisk   Rule = "interview_risk"
	RulePureEngineering Rule = "pure_engineering"
	RuleSignals         Rule = "signals"
)

// Kind says which way a signal pushes.
type Kind string

const (
	KindStretch  Kind = "stretch"
	KindQuickWin Kind = "quick_win"
	KindHardRule Kind = "hard_rule"
)

// Signal is one fact the classifier counted.
type Signal struct {
	Kind   Kind   `json:"kind"`
	Name   string `json:"name"`
	Weight int    `json:"weight"`
	Reason string `json:"reason"`
}

func (s Signal) String() string {
	if s.Kind == KindHardRule {
		return fmt.Sprintf("hard rule: %s", s.Reason)
	}
	return fmt.Sprintf("%s +%d: %s", s.Kind, s.Weight, s.Reason)
}

// Assignment is the classifier output. It is always recomputed wholesale.
type Assignment struct {
	Tier     Tier     `json:"tier"`
	Rule     Rule     `json:"rule"`
	Stretch  int      `json:"stretch"`
	QuickWin int      `json:"quick_win"`
	Signals  []Signal `json:"signals"`
}

// Trail renders the signals as strings.
func (a Assignment) Trail() []string {
	out := make([]string, len(a.Signals))
	for i, s := range a.Signals {
		out[i] = s.String()
	}
	return out
}

// Thresholds configures the classifier.
type Thresholds struct {
	// LowRisk: an interview score below it forces tier A.
	LowRisk float64 `mapstructure:"low_risk" validate:"gte=0,lte=100"`
	// Easy: an interview score at or above it is a quick-win signal.
	Easy float64 `mapstructure:"easy" validate:"gte=0,lte=100,gtefield=Hard"`
	// Hard: an interview score below it is a stretch signal.
	Hard float64 `mapstructure:"hard" validate:"gte=0,lte=100,gtefield=LowRisk"`
	// HighSalary and LowSalary bound the annual salary floor signals.
	HighSalary float64 `mapstructure:"high_salary" validate:"gtefield=LowSalary"`
	LowSalary  float64 `mapstructure:"low_salary" validate:"gte=0"`
	// LongExperience is the minimum years of experience that, with a senior
	// title, counts as a stretch.
	LongExperience int `mapstructure:"long_experience" validate:"gte=0"`
	// Success is the success-probability score that alone earns tier C.
	Success float64 `mapstructure:"success" validate:"gte=0,lte=100"`
	// StretchMin and QuickWinMin are the signal counts that decide A and C.
	StretchMin  int `mapstructure:"stretch_min" validate:"gte=1"`
	QuickWinMin int `mapstructure:"quick_win_min" validate:"gte=1"`
}

// DefaultThresholds returns the documented defaults.
func DefaultThresholds() Thresholds {
	return Thresholds{
		LowRisk:        30,
		Easy:           70,
		Hard:           45,
		HighSalary:     140000,
		LowSalary:      70000,
		LongExperience: 8,
		Success:        60,
		StretchMin:     2,
		QuickWinMin:    2,
	}
}

// Classifier assigns tiers.
type Classifier struct {
	th Thresholds
}

// New validates thresholds and builds a classifier.
func New(th Thresholds) (*Classifier, error) {
	if err := validator.New().Struct(th); err != nil {
		return nil, &scoring.ConfigError{Message: fmt.Sprintf("tier thresholds: %v", err)}
	}
	return &Classifier{th: th}, nil
}

// Thresholds returns the classifier configuration.
func (c *Classifier) Thresholds() Thresholds { return c.th }

// Classify checks the hard rules first and only then counts signals, so a
// near-certain live-coding round is never outvoted by favourable signals.
func (c *Classifier) Classify(in *scoring.Input, b scoring.Breakdown) Assignment {
	interview, ok := b.Get(scoring.DimensionInterview)
	if !ok {
		interview.Value = scoring.InterviewBase
	}
	success, ok := b.Get(scoring.DimensionSuccess)
	if !ok {
		success.Value = scoring.SuccessBase
	}

	if interview.Value < c.th.LowRisk {
		return Assignment{
			Tier: TierA,
			Rule: RuleInterviewRisk,
			Signals: []Signal{{
				Kind:   KindHardRule,
				Name:   string(RuleInterviewRisk),
				Reason: fmt.Sprintf("interview score %s below %s, live coding almost certain", num(interview.Value), num(c.th.LowRisk)),
			}},
		}
	}

	if role, found := in.Registry.Signals().Roles.PureEngineering.First(in.Title); found {
		return Assignment{
			Tier: TierA,
			Rule: RulePureEngineering,
			Signals: []Signal{{
				Kind:   KindHardRule,
				Name:   string(RulePureEngineering),
				Reason: fmt.Sprintf("'%s' is a pure engineering role", role),
			}},
		}
	}

	a := Assignment{Rule: RuleSignals}
	for _, s := range c.signals(in, interview.Value) {
		a.Signals = append(a.Signals, s)
		switch s.Kind {
		case KindStretch:
			a.Stretch += s.Weight
		case KindQuickWin:
			a.QuickWin += s.Weight
		}
	}

	switch {
	case a.Stretch >= c.th.StretchMin && a.QuickWin < c.th.QuickWinMin:
		a.Tier = TierA
	case a.QuickWin >= c.th.QuickWinMin || success.Value >= c.th.Success:
		a.Tier = TierC
	default:
		a.Tier = TierB
	}
	return a
}

func num(v float64) string {
	return strings.TrimSuffix(fmt.Sprintf("%.1f", v), ".0")
}
