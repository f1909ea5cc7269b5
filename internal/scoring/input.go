package scoring

import (
	"strings"

	"github.com/spigell/jobfit/internal/keywords"
	"github.com/spigell/jobfit/internal/profile"
	"github.com/spigell/jobfit/internal/taxonomy"
	"github.com/spigell/jobfit/internal/textmatch"
)

// Job is the raw part of a posting the scorers read. Empty strings and a zero
// salary mean "not provided".
type Job struct {
	Title          string
	Company        string
	Location       string
	Description    string
	EmploymentType string
	OccupationCode string
	// SalaryFloor is the annualised lower bound of the salary range.
	SalaryFloor float64
}

// Input is a job prepared for scoring: normalized text views, the resolved
// occupation and the keyword report, plus the read-only profile and registry.
type Input struct {
	Job Job

	Title          textmatch.Text
	Company        textmatch.Text
	Location       textmatch.Text
	Description    textmatch.Text
	EmploymentType textmatch.Text

	// Occupation is valid when HasOccupation is set: either supplied by the
	// posting or inferred from the title.
	Occupation    taxonomy.Occupation
	HasOccupation bool

	Keywords keywords.Report
	Profile  *profile.Profile
	Registry *taxonomy.Registry
}

// NewInput prepares a job for scoring.
func NewInput(job Job, report keywords.Report, p *profile.Profile, reg *taxonomy.Registry) *Input {
	in := &Input{
		Job:            job,
		Title:          textmatch.New(job.Title),
		Company:        textmatch.New(job.Company),
		Location:       textmatch.New(job.Location),
		Description:    textmatch.New(job.Description),
		EmploymentType: textmatch.New(job.EmploymentType),
		Keywords:       report,
		Profile:        p,
		Registry:       reg,
	}

	if code := strings.TrimSpace(job.OccupationCode); code != "" {
		in.Occupation = reg.Occupations().Lookup(code)
		in.HasOccupation = true
	} else {
		in.Occupation, in.HasOccupation = reg.Occupations().Resolve(job.Title)
	}

	return in
}

func (in *Input) companies() taxonomy.Companies { return in.Registry.Companies() }

func (in *Input) signals() taxonomy.Signals { return in.Registry.Signals() }

// titleOrDescription reports whether any phrase occurs in the title or the
// description.
func (in *Input) titleOrDescription(l textmatch.List) bool {
	return l.Any(in.Title) || l.Any(in.Description)
}
