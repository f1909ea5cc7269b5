// Package posting holds job posting records, the collection the CLI works on
// and the exclude file of already handled postings.
package posting

import (
	"strings"

	"github.com/spigell/jobfit/internal/keywords"
	"github.com/spigell/jobfit/internal/scoring"
	"github.com/spigell/jobfit/internal/taxonomy"
	"github.com/spigell/jobfit/internal/tiering"
)

const (
	URLField      = "URL"
	CompanyField  = "Company"
	TierField     = "Tier"
	PriorityField = "Priority"
)

// Hours, weeks and months per year used to annualise a salary.
const (
	HoursPerYear  = 2080
	WeeksPerYear  = 52
	MonthsPerYear = 12
)

// Salary is a published salary range.
type Salary struct {
	Min      float64 `json:"min,omitempty"`
	Max      float64 `json:"max,omitempty"`
	Currency string  `json:"currency,omitempty"`
	// Interval is "year" (default), "month", "week" or "hour".
	Interval string `json:"interval,omitempty"`
}

// IsZero reports whether no amount is published.
func (s Salary) IsZero() bool {
	return s.Min <= 0 && s.Max <= 0
}

// Floor returns the annualised lower bound: Min, or Max when only the upper
// bound is published. 0 means unknown.
func (s Salary) Floor() float64 {
	switch {
	case s.Min > 0:
		return Annualize(s.Min, s.Interval)
	case s.Max > 0:
		return Annualize(s.Max, s.Interval)
	default:
		return 0
	}
}

// Annualize converts an amount paid per interval to a yearly amount.
func Annualize(amount float64, interval string) float64 {
	i := strings.ToLower(interval)
	switch {
	case strings.Contains(i, "hour"):
		return amount * HoursPerYear
	case strings.Contains(i, "week"):
		return amount * WeeksPerYear
	case strings.Contains(i, "month"):
		return amount * MonthsPerYear
	default:
		return amount
	}
}

// Posting is one discovered opportunity. Computed is owned by the engine and
// always replaced as a whole.
type Posting struct {
	URL            string `json:"url"`
	Title          string `json:"title,omitempty"`
	Company        string `json:"company,omitempty"`
	Location       string `json:"location,omitempty"`
	Description    string `json:"description,omitempty"`
	Salary         Salary `json:"salary,omitempty"`
	EmploymentType string `json:"employment_type,omitempty"`
	OccupationCode string `json:"occupation_code,omitempty"`
	Source         string `json:"source,omitempty"`
	PostedAt       string `json:"posted_at,omitempty"`

	Computed *Result `json:"computed,omitempty"`
}

// Result is everything the engine computes for a posting.
type Result struct {
	Scores     scoring.Breakdown  `json:"scores"`
	Total      float64            `json:"total"`
	Priority   scoring.Priority   `json:"priority"`
	Assignment tiering.Assignment `json:"assignment"`
	Keywords   keywords.Report    `json:"keywords"`
	// Occupation is nil when the code was neither supplied nor inferable.
	Occupation *taxonomy.Occupation `json:"occupation,omitempty"`
}

// Job returns the raw fields the scorers read.
func (p *Posting) Job() scoring.Job {
	return scoring.Job{
		Title:          p.Title,
		Company:        p.Company,
		Location:       p.Location,
		Description:    p.Description,
		EmploymentType: p.EmploymentType,
		OccupationCode: p.OccupationCode,
		SalaryFloor:    p.Salary.Floor(),
	}
}

// Text is the text the keyword extractor scans.
func (p *Posting) Text() string {
	return p.Title + "\n" + p.Description
}

// Apply replaces the computed fields.
func (p *Posting) Apply(r *Result) {
	p.Computed = r
}

// Scored reports whether the posting carries computed fields.
func (p *Posting) Scored() bool {
	return p.Computed != nil
}

// Tier returns the assigned tier, empty when unscored.
func (p *Posting) Tier() tiering.Tier {
	if p.Computed == nil {
		return ""
	}
	return p.Computed.Assignment.Tier
}

// Total returns the total score, 0 when unscored.
func (p *Posting) Total() float64 {
	if p.Computed == nil {
		return 0
	}
	return p.Computed.Total
}

// GetStringField returns a field by name for Exclude.
func (p *Posting) GetStringField(name string) string {
	switch name {
	case URLField:
		return p.URL
	case CompanyField:
		return strings.ToLower(strings.TrimSpace(p.Company))
	case TierField:
		return string(p.Tier())
	case PriorityField:
		if p.Computed == nil {
			return ""
		}
		return string(p.Computed.Priority)
	default:
		return ""
	}
}
