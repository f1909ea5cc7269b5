package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"

	"github.com/spigell/jobfit/internal/ai"
	"github.com/spigell/jobfit/internal/posting"
	"github.com/spigell/jobfit/internal/store"
)

// GapReport renders the skills-gap aggregation.
func GapReport(r *store.GapReport, limit int) (string, error) {
	if r.Postings == 0 {
		return "no stored postings with keyword mentions\n", nil
	}

	var b strings.Builder
	b.WriteString(pterm.DefaultSection.Sprintf("Skills gap across %d postings", r.Postings))

	data := pterm.TableData{{"Missing skill", "Category", "Postings", "Share"}}
	for i, s := range r.Missing {
		if limit > 0 && i == limit {
			break
		}
		data = append(data, []string{s.Keyword, s.Category, strconv.Itoa(s.Frequency), humanize.Ftoa(s.Percent) + "%"})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return "", err
	}
	b.WriteString(table)
	b.WriteString("\n")

	categories := pterm.TableData{{"Category", "Held", "Missing", "Total"}}
	for _, c := range r.Categories {
		categories = append(categories, []string{c.Category, strconv.Itoa(c.Has), strconv.Itoa(c.Missing), strconv.Itoa(c.Total)})
	}
	table, err = pterm.DefaultTable.WithHasHeader().WithData(categories).Srender()
	if err != nil {
		return "", err
	}
	b.WriteString(table)
	b.WriteString("\n")

	for _, rec := range r.Recommendations {
		fmt.Fprintf(&b, "  * %s\n", rec)
	}
	return b.String(), nil
}

// OccupationReport renders the occupation mix of stored postings.
func OccupationReport(s *store.OccupationSummary) (string, error) {
	var b strings.Builder
	b.WriteString(pterm.DefaultSection.Sprintf("Occupations across %d postings", s.Postings))

	data := pterm.TableData{{"Code", "Description", "Priority", "Postings"}}
	for _, o := range s.Occupations {
		priority := "no"
		if o.Priority {
			priority = pterm.Green("yes")
		}
		data = append(data, []string{o.Code, o.Description, priority, strconv.Itoa(o.Count)})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return "", err
	}
	b.WriteString(table)
	b.WriteString("\n")

	fmt.Fprintf(&b, "Eligible occupations: %d (%s%%)\n", s.Eligible, humanize.Ftoa(s.EligiblePercent))
	wage := store.MedianHourlyWage * posting.HoursPerYear
	fmt.Fprintf(&b, "At or above median wage ($%s): %d (%s%%)\n",
		humanize.Comma(int64(wage)), s.AboveMedian, humanize.Ftoa(s.AboveMedianPercent))
	return b.String(), nil
}

// AdviceReport renders tailoring advice.
func AdviceReport(a *ai.Advice) string {
	var b strings.Builder
	b.WriteString(pterm.DefaultSection.Sprint("Tailoring advice"))
	fmt.Fprintf(&b, "%s\n", orDash(a.Summary))
	section := func(name string, items []string) {
		if len(items) == 0 {
			return
		}
		fmt.Fprintf(&b, "\n%s:\n", name)
		for _, item := range items {
			fmt.Fprintf(&b, "  - %s\n", item)
		}
	}
	section("Emphasize", a.Emphasize)
	section("Address", a.Address)
	section("Suggested bullets", a.Bullets)
	return b.String()
}
