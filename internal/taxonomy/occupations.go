package taxonomy

import (
	"sort"

	"github.com/spigell/jobfit/internal/textmatch"
)

// Occupation is a resolved occupation code with its eligibility flags.
type Occupation struct {
	Code        string
	Description string
	// Priority marks codes on the priority-occupation list.
	Priority bool
	// Eligible marks codes accepted by any stream, priority ones included.
	Eligible bool
	// MatchedTitle is the title fragment the code was inferred from, empty
	// when the code was supplied.
	MatchedTitle string
}

type titleCode struct {
	title string
	code  string
}

// Occupations resolves job titles to occupation codes.
type Occupations struct {
	titles       []titleCode
	priority     map[string]struct{}
	eligible     map[string]struct{}
	descriptions map[string]string
}

// NewOccupations builds the occupation table. Titles are tried longest first
// so "machine learning engineer" wins over "machine learning".
func NewOccupations(titles map[string]string, priority, eligible []string, descriptions map[string]string) *Occupations {
	o := &Occupations{
		priority:     toSet(priority),
		eligible:     toSet(eligible),
		descriptions: make(map[string]string, len(descriptions)),
	}
	for code, d := range descriptions {
		o.descriptions[code] = d
	}
	for title, code := range titles {
		n := textmatch.Normalize(title)
		if n == "" || code == "" {
			continue
		}
		o.titles = append(o.titles, titleCode{title: n, code: code})
	}
	sort.Slice(o.titles, func(i, j int) bool {
		if len(o.titles[i].title) != len(o.titles[j].title) {
			return len(o.titles[i].title) > len(o.titles[j].title)
		}
		return o.titles[i].title < o.titles[j].title
	})
	return o
}

// Resolve infers the occupation code from a job title using the longest title
// fragment found in it.
func (o *Occupations) Resolve(title string) (Occupation, bool) {
	text := textmatch.New(title)
	for _, tc := range o.titles {
		if text.Has(tc.title) {
			occ := o.Lookup(tc.code)
			occ.MatchedTitle = tc.title
			return occ, true
		}
	}
	return Occupation{}, false
}

// Lookup describes a known code. Unknown codes come back with both flags off.
func (o *Occupations) Lookup(code string) Occupation {
	_, priority := o.priority[code]
	_, eligible := o.eligible[code]
	return Occupation{
		Code:        code,
		Description: o.descriptions[code],
		Priority:    priority,
		Eligible:    priority || eligible,
	}
}

func toSet(items []string) map[string]struct{} {
	out := make(map[string]struct{}, len(items))
	for _, i := range items {
		out[i] = struct{}{}
	}
	return out
}
