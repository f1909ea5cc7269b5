// Package taxonomy holds the static, read-only data the scoring engine matches
// postings against: the skill keyword taxonomy, company lists, the occupation
// table, target regions and the phrase lists behind every heuristic signal.
package taxonomy

import (
	"errors"
	"sort"
	"strings"

	"github.com/spigell/jobfit/internal/textmatch"
)

// Category groups taxonomy keywords for weighting and gap reporting.
type Category string

const (
	CategoryHardSkill Category = "hard_skill"
	CategoryTool      Category = "tool"
	CategoryMethod    Category = "method"
	CategorySoftSkill Category = "soft_skill"
	CategoryDomain    Category = "domain"
	CategoryEducation Category = "education"
)

var canonicalOrder = []Category{
	CategoryHardSkill,
	CategoryTool,
	CategoryMethod,
	CategorySoftSkill,
	CategoryDomain,
	CategoryEducation,
}

// Entry is one normalized keyword or phrase of the taxonomy.
type Entry struct {
	Keyword  string
	Category Category
	tokens   []string
}

// Len returns the number of tokens in the phrase.
func (e Entry) Len() int { return len(e.tokens) }

// Token returns the i-th token of the phrase.
func (e Entry) Token(i int) string { return e.tokens[i] }

// MatchesAt reports whether the phrase occurs in tokens starting at i.
func (e Entry) MatchesAt(tokens []string, i int) bool {
	if i < 0 || i+len(e.tokens) > len(tokens) {
		return false
	}
	for k, tok := range e.tokens {
		if tokens[i+k] != tok {
			return false
		}
	}
	return true
}

// Taxonomy maps keywords to categories. Entries are kept in precedence order:
// more tokens first, then lexicographic by keyword.
type Taxonomy struct {
	entries    []Entry
	byFirst    map[string][]int
	byKeyword  map[string]int
	categories []Category
}

// NewTaxonomy builds a taxonomy from keywords grouped by category. A phrase
// listed more than once keeps the category that sorts first, so the result
// never depends on map iteration order.
func NewTaxonomy(keywords map[Category][]string) (*Taxonomy, error) {
	categoryNames := make([]string, 0, len(keywords))
	for c := range keywords {
		categoryNames = append(categoryNames, string(c))
	}
	sort.Strings(categoryNames)

	owner := make(map[string]Category)
	for _, name := range categoryNames {
		c := Category(name)
		for _, raw := range keywords[c] {
			kw := textmatch.Normalize(raw)
			if kw == "" {
				continue
			}
			if _, ok := owner[kw]; ok {
				continue
			}
			owner[kw] = c
		}
	}

	if len(owner) == 0 {
		return nil, errors.New("taxonomy has no keywords")
	}

	entries := make([]Entry, 0, len(owner))
	present := make(map[Category]struct{})
	for kw, c := range owner {
		entries = append(entries, Entry{Keyword: kw, Category: c, tokens: strings.Fields(kw)})
		present[c] = struct{}{}
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Len() != entries[j].Len() {
			return entries[i].Len() > entries[j].Len()
		}
		return entries[i].Keyword < entries[j].Keyword
	})

	t := &Taxonomy{
		entries:   entries,
		byFirst:   make(map[string][]int),
		byKeyword: make(map[string]int, len(entries)),
	}
	for i, e := range entries {
		first := e.tokens[0]
		t.byFirst[first] = append(t.byFirst[first], i)
		t.byKeyword[e.Keyword] = i
	}
	t.categories = orderCategories(present)

	return t, nil
}

// Len returns the number of keywords.
func (t *Taxonomy) Len() int { return len(t.entries) }

// Entries returns all entries in precedence order.
func (t *Taxonomy) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// StartingWith returns, in precedence order, the entries whose first token is
// first.
func (t *Taxonomy) StartingWith(first string) []Entry {
	idx := t.byFirst[first]
	out := make([]Entry, len(idx))
	for i, j := range idx {
		out[i] = t.entries[j]
	}
	return out
}

// Lookup returns the entry for keyword, normalizing it first.
func (t *Taxonomy) Lookup(keyword string) (Entry, bool) {
	i, ok := t.byKeyword[textmatch.Normalize(keyword)]
	if !ok {
		return Entry{}, false
	}
	return t.entries[i], true
}

// Categories returns the categories present, known ones first in their
// canonical order, then the rest alphabetically.
func (t *Taxonomy) Categories() []Category {
	out := make([]Category, len(t.categories))
	copy(out, t.categories)
	return out
}

// CategoryRank orders categories for reports: canonical ones by position,
// unknown ones after them.
func CategoryRank(c Category) int {
	for i, known := range canonicalOrder {
		if known == c {
			return i
		}
	}
	return len(canonicalOrder)
}

func orderCategories(present map[Category]struct{}) []Category {
	out := make([]Category, 0, len(present))
	for c := range present {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		ri, rj := CategoryRank(out[i]), CategoryRank(out[j])
		if ri != rj {
			return ri < rj
		}
		return out[i] < out[j]
	})
	return out
}
