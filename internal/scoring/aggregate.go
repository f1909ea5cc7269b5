package scoring

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

// ErrInvalidConfig is matched by every ConfigError.
var ErrInvalidConfig = errors.New("invalid scoring configuration")

// ConfigError reports a weights or thresholds configuration that violates the
// aggregator's contract. It is a caller bug and blocks the whole batch.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidConfig, e.Message)
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}

const weightTolerance = 1e-6

// Weights maps every dimension to its share of the total. Shares must sum to
// 1.0; a dimension can be switched off with an explicit 0.
type Weights map[Dimension]float64

// DefaultWeights is the six-dimension weight set.
func DefaultWeights() Weights {
	return Weights{
		DimensionSkills:      0.30,
		DimensionImmigration: 0.25,
		DimensionInterview:   0.15,
		DimensionSalary:      0.10,
		DimensionCompany:     0.10,
		DimensionSuccess:     0.10,
	}
}

// LegacyWeights is the five-dimension set used before interview-format risk
// was scored.
func LegacyWeights() Weights {
	return Weights{
		DimensionSkills:      0.40,
		DimensionImmigration: 0.25,
		DimensionInterview:   0,
		DimensionSalary:      0.15,
		DimensionCompany:     0.10,
		DimensionSuccess:     0.10,
	}
}

// WeightsPreset returns a named weight set.
func WeightsPreset(name string) (Weights, error) {
	switch strings.ToLower(name) {
	case "", "default":
		return DefaultWeights(), nil
	case "legacy":
		return LegacyWeights(), nil
	}
	return nil, &ConfigError{Message: fmt.Sprintf("unknown weights preset %q", name)}
}

// ParseWeights converts a name-keyed map, as read from configuration, and
// validates it.
func ParseWeights(raw map[string]float64) (Weights, error) {
	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	w := make(Weights, len(raw))
	for _, name := range names {
		d, err := ParseDimension(name)
		if err != nil {
			return nil, err
		}
		w[d] = raw[name]
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return w, nil
}

// Validate checks names, signs, completeness and the sum.
func (w Weights) Validate() error {
	names := make([]string, 0, len(w))
	for d := range w {
		names = append(names, string(d))
	}
	sort.Strings(names)
	for _, name := range names {
		if _, err := ParseDimension(name); err != nil {
			return err
		}
		if v := w[Dimension(name)]; v < 0 || math.IsNaN(v) {
			return &ConfigError{Message: fmt.Sprintf("weight of %s is %v, want a non-negative number", name, v)}
		}
	}

	var sum float64
	for _, d := range Dimensions {
		v, ok := w[d]
		if !ok {
			return &ConfigError{Message: fmt.Sprintf("no weight for dimension %s", d)}
		}
		sum += v
	}
	if math.Abs(sum-1.0) > weightTolerance {
		return &ConfigError{Message: fmt.Sprintf("weights sum to %.4f, want 1.0", sum)}
	}
	return nil
}

// Priority is the coarse label derived from the total score.
type Priority string

const (
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
	PriorityLow    Priority = "LOW"
)

// Rank orders priorities, higher is better.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 2
	case PriorityMedium:
		return 1
	default:
		return 0
	}
}

// ParsePriority reads a priority label case-insensitively.
func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToUpper(strings.TrimSpace(s)))
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return p, nil
	}
	return "", &ConfigError{Message: fmt.Sprintf("unknown priority %q", s)}
}

// Default priority boundaries.
const (
	DefaultHighThreshold   = 80
	DefaultMediumThreshold = 60
)

// Thresholds are the inclusive lower bounds of HIGH and MEDIUM.
type Thresholds struct {
	High   float64 `mapstructure:"high" yaml:"high"`
	Medium float64 `mapstructure:"medium" yaml:"medium"`
}

// DefaultThresholds returns HIGH >= 80, MEDIUM >= 60.
func DefaultThresholds() Thresholds {
	return Thresholds{High: DefaultHighThreshold, Medium: DefaultMediumThreshold}
}

// Validate requires 0 <= Medium <= High <= 100.
func (t Thresholds) Validate() error {
	if t.Medium < 0 || t.High > 100 || t.Medium > t.High {
		return &ConfigError{Message: fmt.Sprintf("priority thresholds high=%v medium=%v, want 0 <= medium <= high <= 100", t.High, t.Medium)}
	}
	return nil
}

// Priority labels a total.
func (t Thresholds) Priority(total float64) Priority {
	switch {
	case total >= t.High:
		return PriorityHigh
	case total >= t.Medium:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// Aggregate computes the weighted total, summing in Dimensions order, and its
// priority. Invalid weights or thresholds fail instead of being renormalized.
func Aggregate(b Breakdown, w Weights, t Thresholds) (float64, Priority, error) {
	if err := w.Validate(); err != nil {
		return 0, "", err
	}
	if err := t.Validate(); err != nil {
		return 0, "", err
	}

	var total float64
	for _, d := range Dimensions {
		weight := w[d]
		s, ok := b.Get(d)
		if !ok {
			if weight != 0 {
				return 0, "", &ConfigError{Message: fmt.Sprintf("no score for weighted dimension %s", d)}
			}
			continue
		}
		total += s.Value * weight
	}

	total = clamp(round1(total))
	return total, t.Priority(total), nil
}
