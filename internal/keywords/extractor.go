// Package keywords extracts taxonomy keywords from posting text and builds the
// matched/missing report used for ATS-style resume tailoring.
package keywords

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/spigell/jobfit/internal/profile"
	"github.com/spigell/jobfit/internal/taxonomy"
	"github.com/spigell/jobfit/internal/textmatch"
)

var yearsPattern = regexp.MustCompile(`(\d+)\+?\s*(?:years?|yrs?)\s*(?:of\s*)?(?:relevant\s*|professional\s*|industry\s*)?(?:experience|exp)`)

// Span is a byte range of the source text.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Match is a taxonomy keyword found in, or missing from, the text.
type Match struct {
	Keyword  string            `json:"keyword"`
	Category taxonomy.Category `json:"category"`
	// Count and Spans are set for matched keywords only.
	Count int    `json:"count,omitempty"`
	Spans []Span `json:"spans,omitempty"`
}

// Report is the keyword match report for one text.
type Report struct {
	Matched []Match `json:"matched"`
	Missing []Match `json:"missing"`
	// YearsRequired is the largest "N years of experience" figure found, 0 if none.
	YearsRequired int `json:"years_required,omitempty"`
}

// MatchedKeywords returns matched keywords in order of first occurrence.
func (r Report) MatchedKeywords() []string {
	out := make([]string, len(r.Matched))
	for i, m := range r.Matched {
		out[i] = m.Keyword
	}
	return out
}

// MissingKeywords returns the missing keywords in report order.
func (r Report) MissingKeywords() []string {
	out := make([]string, len(r.Missing))
	for i, m := range r.Missing {
		out[i] = m.Keyword
	}
	return out
}

// Gaps returns matched keywords the candidate does not hold at Emerging or
// above: the terms a tailored resume cannot honestly claim.
func (r Report) Gaps(p *profile.Profile) []Match {
	var out []Match
	for _, m := range r.Matched {
		if !p.Has(m.Keyword) {
			out = append(out, m)
		}
	}
	return out
}

// Extractor scans text against a taxonomy.
type Extractor struct {
	taxonomy *taxonomy.Taxonomy
	relevant map[taxonomy.Category]struct{}
}

// New creates an extractor. relevant restricts which categories are reported
// as missing; an empty slice reports every category.
func New(tax *taxonomy.Taxonomy, relevant []taxonomy.Category) *Extractor {
	e := &Extractor{taxonomy: tax}
	if len(relevant) > 0 {
		e.relevant = make(map[taxonomy.Category]struct{}, len(relevant))
		for _, c := range relevant {
			e.relevant[c] = struct{}{}
		}
	}
	return e
}

// Extract matches taxonomy phrases longest first: every occurrence of a
// phrase is accepted unless one of its tokens was already taken by a longer
// (or, at equal length, lexicographically smaller) phrase. Matched keywords
// are reported in order of first occurrence.
func (e *Extractor) Extract(text string) Report {
	tokens := textmatch.Tokenize(text)
	values := make([]string, len(tokens))
	positions := make(map[string][]int)
	for i, t := range tokens {
		values[i] = t.Value
		positions[t.Value] = append(positions[t.Value], i)
	}

	consumed := make([]bool, len(tokens))
	index := make(map[string]int)
	var matched []Match

	// entries come longest first, then by keyword
	for _, entry := range e.taxonomy.Entries() {
		for _, i := range positions[entry.Token(0)] {
			if !entry.MatchesAt(values, i) || taken(consumed, i, entry.Len()) {
				continue
			}
			for k := i; k < i+entry.Len(); k++ {
				consumed[k] = true
			}

			span := Span{Start: tokens[i].Start, End: tokens[i+entry.Len()-1].End}
			if pos, seen := index[entry.Keyword]; seen {
				matched[pos].Count++
				matched[pos].Spans = append(matched[pos].Spans, span)
				continue
			}
			index[entry.Keyword] = len(matched)
			matched = append(matched, Match{
				Keyword:  entry.Keyword,
				Category: entry.Category,
				Count:    1,
				Spans:    []Span{span},
			})
		}
	}

	// spans of one keyword are already ascending
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Spans[0].Start < matched[j].Spans[0].Start
	})

	missing := make([]Match, 0)
	for _, entry := range e.taxonomy.Entries() {
		if _, found := index[entry.Keyword]; found {
			continue
		}
		if e.relevant != nil {
			if _, ok := e.relevant[entry.Category]; !ok {
				continue
			}
		}
		missing = append(missing, Match{Keyword: entry.Keyword, Category: entry.Category})
	}
	sort.Slice(missing, func(i, j int) bool {
		ri, rj := taxonomy.CategoryRank(missing[i].Category), taxonomy.CategoryRank(missing[j].Category)
		if ri != rj {
			return ri < rj
		}
		if missing[i].Category != missing[j].Category {
			return missing[i].Category < missing[j].Category
		}
		return missing[i].Keyword < missing[j].Keyword
	})

	if matched == nil {
		matched = make([]Match, 0)
	}

	return Report{
		Matched:       matched,
		Missing:       missing,
		YearsRequired: yearsRequired(text),
	}
}

func taken(consumed []bool, start, n int) bool {
	for k := start; k < start+n; k++ {
		if consumed[k] {
			return true
		}
	}
	return false
}

func yearsRequired(text string) int {
	best := 0
	for _, m := range yearsPattern.FindAllStringSubmatch(strings.ToLower(text), -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if n > best && n < 50 {
			best = n
		}
	}
	return best
}
