package taxonomy

import (
	"github.com/spigell/jobfit/internal/textmatch"
)

// Companies groups the company-name lists. Names match on token boundaries
// inside the posting's company field.
type Companies struct {
	Tier1               textmatch.List
	Notable             textmatch.List
	Startups            textmatch.List
	InternationalHiring textmatch.List
	LiveCoding          textmatch.List
	TakeHome            textmatch.List
	NetworkingHigh      textmatch.List
	NetworkingMedium    textmatch.List

	// Description language used when the name matches no list.
	EnterpriseLanguage textmatch.List
	FundedLanguage     textmatch.List
	EarlyStageLanguage textmatch.List
}

// Regions lists location indicators.
type Regions struct {
	Target  textmatch.List
	Country textmatch.List
	Remote  textmatch.List
}

// Seniority lists title words per seniority band.
type Seniority struct {
	Senior     textmatch.List
	Leadership textmatch.List
	Junior     textmatch.List
	// Lead marks team-lead titles; Staff marks individual-contributor
	// titles above senior.
	Lead  textmatch.List
	Staff textmatch.List
	// Stretch and QuickWin are the title words the tier classifier counts.
	Stretch  textmatch.List
	QuickWin textmatch.List
}

// Roles lists title fragments per role bucket.
type Roles struct {
	Priority        textmatch.List
	NoCoding        textmatch.List
	HeavyCoding     textmatch.List
	Mixed           textmatch.List
	PureEngineering textmatch.List
	NonCoding       textmatch.List
}

// Employment lists employment-type words.
type Employment struct {
	FullTime          textmatch.List
	Temporary         textmatch.List
	Contract          textmatch.List
	PermanentLanguage textmatch.List
}

// Barrier lists local-experience barrier language.
type Barrier struct {
	LocalExperience textmatch.List
	International   textmatch.List
	Welcoming       textmatch.List
	GlobalWork      textmatch.List
}

// Openness lists hiring-openness language.
type Openness struct {
	Diversity     textmatch.List
	Sponsorship   textmatch.List
	NoSponsorship textmatch.List
}

// Interview lists interview-format language.
type Interview struct {
	CaseStudy         textmatch.List
	Stakeholder       textmatch.List
	BIFocus           textmatch.List
	CodingPlatforms   textmatch.List
	SystemDesign      textmatch.List
	StrongProgramming textmatch.List
	// ExpertLanguages holds "expert in <language>" style phrases derived
	// from the configured language list.
	ExpertLanguages   textmatch.List
	NonTechIndustries textmatch.List
}

// Signals bundles every phrase list behind the heuristic signals.
type Signals struct {
	Seniority  Seniority
	Roles      Roles
	Employment Employment
	Barrier    Barrier
	Openness   Openness
	Interview  Interview
}

// Registry is the immutable bundle handed to the engine for a scoring run.
type Registry struct {
	taxonomy    *Taxonomy
	occupations *Occupations
	companies   Companies
	regions     Regions
	signals     Signals
}

// Taxonomy returns the keyword taxonomy.
func (r *Registry) Taxonomy() *Taxonomy { return r.taxonomy }

// Occupations returns the occupation table.
func (r *Registry) Occupations() *Occupations { return r.occupations }

// Companies returns the company lists.
func (r *Registry) Companies() Companies { return r.companies }

// Regions returns the location indicators.
func (r *Registry) Regions() Regions { return r.regions }

// Signals returns the phrase lists.
func (r *Registry) Signals() Signals { return r.signals }

func expertPhrases(languages []string) []string {
	out := make([]string, 0, len(languages)*3)
	for _, l := range languages {
		out = append(out, "expert in "+l, "expert "+l, "expertise in "+l)
	}
	return out
}
