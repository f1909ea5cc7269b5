// Package profile models the candidate the engine scores postings for.
package profile

import (
	"bytes"
	"fmt"
	"os"
	"sort"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/spigell/jobfit/internal/taxonomy"
	"github.com/spigell/jobfit/internal/textmatch"
)

// Proficiency is the candidate's level in a skill.
type Proficiency int

const (
	None Proficiency = iota
	Weak
	Emerging
	Moderate
	Strong
)

// Multiplier is the weight a matched keyword gets in the skills score.
func (p Proficiency) Multiplier() float64 {
	switch p {
	case Strong:
		return 1.0
	case Moderate:
		return 0.7
	case Emerging:
		return 0.4
	case Weak:
		return 0.1
	default:
		return 0
	}
}

func (p Proficiency) String() string {
	switch p {
	case Strong:
		return "strong"
	case Moderate:
		return "moderate"
	case Emerging:
		return "emerging"
	case Weak:
		return "weak"
	default:
		return "none"
	}
}

// Achievement is a verifiable fact from the candidate's history.
type Achievement struct {
	// ID identifies the experience the fact belongs to; exclusions refer to it.
	ID    string   `yaml:"id" json:"id,omitempty"`
	Fact  string   `yaml:"fact" json:"fact" validate:"required"`
	Value *float64 `yaml:"value" json:"value,omitempty"`
	Unit  string   `yaml:"unit" json:"unit,omitempty"`
}

// NicheRule describes a role/domain combination the candidate's background is
// unusually suited for. Every non-empty group must match.
type NicheRule struct {
	Name        string   `yaml:"name" validate:"required"`
	Title       []string `yaml:"title"`
	Description []string `yaml:"description"`
	// Either matches the title or the description.
	Either []string `yaml:"either"`
	Delta  float64  `yaml:"delta" validate:"gt=0"`
	Reason string   `yaml:"reason"`
}

// Spec is the on-disk shape of a profile.
type Spec struct {
	Name   string `yaml:"name" validate:"required"`
	Skills struct {
		Strong   []string `yaml:"strong"`
		Moderate []string `yaml:"moderate"`
		Emerging []string `yaml:"emerging"`
		Weak     []string `yaml:"weak"`
	} `yaml:"skills"`
	Achievements []Achievement `yaml:"achievements" validate:"dive"`
	Exclusions   []string      `yaml:"exclusions"`
	Niches       []NicheRule   `yaml:"niches" validate:"dive"`
	NicheTitles  []string      `yaml:"niche_titles"`
	Connections  []string      `yaml:"connections"`
	// RelevantCategories restricts the missing-keyword report. Empty means
	// every taxonomy category.
	RelevantCategories []string `yaml:"relevant_categories"`
}

// Niche is a compiled NicheRule.
type Niche struct {
	Name        string
	Title       textmatch.List
	Description textmatch.List
	Either      textmatch.List
	Delta       float64
	Reason      string
}

// Matches reports whether the niche applies to a posting.
func (n Niche) Matches(title, description textmatch.Text) bool {
	if n.Title.Len() == 0 && n.Description.Len() == 0 && n.Either.Len() == 0 {
		return false
	}
	if n.Title.Len() > 0 && !n.Title.Any(title) {
		return false
	}
	if n.Description.Len() > 0 && !n.Description.Any(description) {
		return false
	}
	if n.Either.Len() > 0 && !n.Either.Any(title) && !n.Either.Any(description) {
		return false
	}
	return true
}

// Profile is the immutable candidate profile.
type Profile struct {
	name         string
	tiers        map[string]Proficiency
	achievements []Achievement
	exclusions   map[string]struct{}
	niches       []Niche
	nicheTitles  textmatch.List
	connections  textmatch.List
	relevant     []taxonomy.Category
}

// New validates spec and compiles it. A skill listed under several tiers keeps
// the strongest one.
func New(spec Spec) (*Profile, error) {
	if err := validator.New().Struct(spec); err != nil {
		return nil, fmt.Errorf("validating profile: %w", err)
	}

	p := &Profile{
		name:        spec.Name,
		tiers:       make(map[string]Proficiency),
		exclusions:  make(map[string]struct{}, len(spec.Exclusions)),
		nicheTitles: textmatch.NewList(spec.NicheTitles...),
		connections: textmatch.NewList(spec.Connections...),
	}

	for tier, skills := range map[Proficiency][]string{
		Strong:   spec.Skills.Strong,
		Moderate: spec.Skills.Moderate,
		Emerging: spec.Skills.Emerging,
		Weak:     spec.Skills.Weak,
	} {
		for _, s := range skills {
			n := textmatch.Normalize(s)
			if n == "" {
				continue
			}
			if tier > p.tiers[n] {
				p.tiers[n] = tier
			}
		}
	}

	p.achievements = append(p.achievements, spec.Achievements...)
	for _, id := range spec.Exclusions {
		p.exclusions[id] = struct{}{}
	}

	for _, n := range spec.Niches {
		p.niches = append(p.niches, Niche{
			Name:        n.Name,
			Title:       textmatch.NewList(n.Title...),
			Description: textmatch.NewList(n.Description...),
			Either:      textmatch.NewList(n.Either...),
			Delta:       n.Delta,
			Reason:      n.Reason,
		})
	}

	seen := make(map[taxonomy.Category]struct{})
	for _, c := range spec.RelevantCategories {
		cat := taxonomy.Category(c)
		if _, ok := seen[cat]; ok {
			continue
		}
		seen[cat] = struct{}{}
		p.relevant = append(p.relevant, cat)
	}

	return p, nil
}

// Load reads a profile from a YAML (or JSON) file.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Message: fmt.Sprintf("reading %q", path), Cause: err}
	}

	var spec Spec
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&spec); err != nil {
		return nil, &LoadError{Message: fmt.Sprintf("decoding %q", path), Cause: err}
	}

	p, err := New(spec)
	if err != nil {
		return nil, &LoadError{Message: path, Cause: err}
	}
	return p, nil
}

// Name returns the candidate's name.
func (p *Profile) Name() string { return p.name }

// TierOf returns the candidate's proficiency in keyword, None if absent.
func (p *Profile) TierOf(keyword string) Proficiency {
	return p.tiers[textmatch.Normalize(keyword)]
}

// Skills returns the sorted skills held at the given tier.
func (p *Profile) Skills(tier Proficiency) []string {
	var out []string
	for s, t := range p.tiers {
		if t == tier {
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}

// Has reports whether the candidate holds keyword at Emerging or above.
func (p *Profile) Has(keyword string) bool {
	return p.TierOf(keyword) >= Emerging
}

// Achievements returns every achievement, excluded ones included.
func (p *Profile) Achievements() []Achievement {
	out := make([]Achievement, len(p.achievements))
	copy(out, p.achievements)
	return out
}

// VisibleAchievements returns achievements whose experience is not excluded.
func (p *Profile) VisibleAchievements() []Achievement {
	out := make([]Achievement, 0, len(p.achievements))
	for _, a := range p.achievements {
		if p.IsExcluded(a.ID) {
			continue
		}
		out = append(out, a)
	}
	return out
}

// IsExcluded reports whether an experience identifier must never be surfaced.
func (p *Profile) IsExcluded(id string) bool {
	if id == "" {
		return false
	}
	_, ok := p.exclusions[id]
	return ok
}

// Niches returns the compiled niche rules in declaration order.
func (p *Profile) Niches() []Niche {
	out := make([]Niche, len(p.niches))
	copy(out, p.niches)
	return out
}

// NicheTitles returns title words that mark a niche role for tiering.
func (p *Profile) NicheTitles() textmatch.List { return p.nicheTitles }

// Connections returns companies where the candidate has contacts.
func (p *Profile) Connections() textmatch.List { return p.connections }

// RelevantCategories returns the categories reported as keyword gaps.
func (p *Profile) RelevantCategories() []taxonomy.Category {
	out := make([]taxonomy.Category, len(p.relevant))
	copy(out, p.relevant)
	return out
}

// LoadError reports a profile file that could not be read or parsed.
type LoadError struct {
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("profile load error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("profile load error: %s", e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}
