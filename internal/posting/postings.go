package posting

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/spigell/jobfit/internal/tiering"
)

// Postings is an ordered collection of postings keyed by URL.
type Postings struct {
	Items []*Posting `json:"items"`
}

// Len returns the number of postings.
func (ps *Postings) Len() int {
	return len(ps.Items)
}

// URLs returns posting URLs in order.
func (ps *Postings) URLs() []string {
	urls := make([]string, 0, len(ps.Items))
	for _, p := range ps.Items {
		urls = append(urls, p.URL)
	}
	return urls
}

// FindByURL returns the posting with url or nil.
func (ps *Postings) FindByURL(url string) *Posting {
	for _, p := range ps.Items {
		if p.URL == url {
			return p
		}
	}
	return nil
}

// Exclude removes every posting whose field equals one of targets and returns
// the URLs removed. Order of the remaining postings is kept. Company targets
// match case-insensitively.
func (ps *Postings) Exclude(field string, targets []string) []string {
	set := make(map[string]struct{}, len(targets))
	for _, t := range targets {
		if field == CompanyField {
			t = strings.ToLower(strings.TrimSpace(t))
		}
		set[t] = struct{}{}
	}
	return ps.RemoveIf(func(p *Posting) bool {
		_, ok := set[p.GetStringField(field)]
		return ok
	})
}

// RemoveIf removes postings for which drop returns true, keeping order, and
// returns the URLs removed.
func (ps *Postings) RemoveIf(drop func(*Posting) bool) []string {
	var excluded []string
	kept := ps.Items[:0]
	for _, p := range ps.Items {
		if drop(p) {
			excluded = append(excluded, p.URL)
			continue
		}
		kept = append(kept, p)
	}
	for i := len(kept); i < len(ps.Items); i++ {
		ps.Items[i] = nil
	}
	ps.Items = kept
	return excluded
}

// SortByTotal orders postings by total score, highest first. Ties keep URL
// order so the result is stable across runs.
func (ps *Postings) SortByTotal() {
	sort.SliceStable(ps.Items, func(i, j int) bool {
		a, b := ps.Items[i], ps.Items[j]
		if a.Total() != b.Total() {
			return a.Total() > b.Total()
		}
		return a.URL < b.URL
	})
}

// ReportByTier groups scored postings by tier for display.
func (ps *Postings) ReportByTier() map[tiering.Tier][]map[string]string {
	report := make(map[tiering.Tier][]map[string]string)
	for _, p := range ps.Items {
		if !p.Scored() {
			continue
		}
		c := p.Computed
		report[c.Assignment.Tier] = append(report[c.Assignment.Tier], map[string]string{
			"title":    p.Title,
			"company":  p.Company,
			"url":      p.URL,
			"location": p.Location,
			"salary":   FormatSalary(p.Salary),
			"total":    fmt.Sprintf("%.1f", c.Total),
			"priority": string(c.Priority),
			"signals":  strings.Join(c.Assignment.Trail(), "; "),
		})
	}
	return report
}

// FormatSalary renders a salary range, "n/a" when unpublished.
func FormatSalary(s Salary) string {
	if s.IsZero() {
		return "n/a"
	}
	amount := func(v float64) string {
		return humanize.Commaf(float64(int64(v)))
	}
	var r string
	switch {
	case s.Min > 0 && s.Max > 0:
		r = amount(s.Min) + "-" + amount(s.Max)
	case s.Min > 0:
		r = "from " + amount(s.Min)
	default:
		r = "up to " + amount(s.Max)
	}
	if s.Currency != "" {
		r += " " + s.Currency
	}
	if s.Interval != "" && !strings.HasPrefix(strings.ToLower(s.Interval), "year") {
		r += " per " + strings.ToLower(strings.TrimSuffix(s.Interval, "ly"))
	}
	return r
}

// DumpToTmpFile writes the collection as JSON to a temporary file.
func (ps *Postings) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "postings_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ps); err != nil {
		return "", err
	}
	return file.Name(), nil
}

// ToExcluded converts the collection into exclude-file entries.
func (ps *Postings) ToExcluded() *ExcludedPostings {
	excluded := &ExcludedPostings{}
	now := time.Now().UTC()
	for _, p := range ps.Items {
		excluded.Items = append(excluded.Items, &ExcludedPosting{
			URL:        p.URL,
			Title:      p.Title,
			Company:    p.Company,
			Tier:       string(p.Tier()),
			ExcludedAt: now,
		})
	}
	return excluded
}

// ApplyResults hands computed results to the postings at the same index.
// Nil results leave the posting untouched. It returns how many were applied.
func (ps *Postings) ApplyResults(results []*Result) int {
	applied := 0
	for i, r := range results {
		if r == nil || i >= len(ps.Items) {
			continue
		}
		ps.Items[i].Apply(r)
		applied++
	}
	return applied
}
