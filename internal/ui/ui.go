// Package ui renders scored postings for the terminal.
package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"

	"github.com/spigell/jobfit/internal/posting"
	"github.com/spigell/jobfit/internal/profile"
	"github.com/spigell/jobfit/internal/scoring"
	"github.com/spigell/jobfit/internal/tiering"
	"github.com/spigell/jobfit/internal/utils"
)

const titleWidth = 48

// ColorizeTier renders a tier with its label.
func ColorizeTier(t tiering.Tier) string {
	text := fmt.Sprintf("%s %s", t, t.Label())
	switch t {
	case tiering.TierA:
		return pterm.Magenta(text)
	case tiering.TierB:
		return pterm.Cyan(text)
	case tiering.TierC:
		return pterm.Green(text)
	default:
		return pterm.Gray("unscored")
	}
}

// ColorizeTotal colours a total by its priority.
func ColorizeTotal(total float64, p scoring.Priority) string {
	text := strconv.FormatFloat(total, 'f', 1, 64)
	switch p {
	case scoring.PriorityHigh:
		return pterm.Green(text)
	case scoring.PriorityMedium:
		return pterm.Yellow(text)
	default:
		return pterm.Red(text)
	}
}

// ColorizeSalary renders an annual salary floor.
func ColorizeSalary(floor float64) string {
	if floor <= 0 {
		return pterm.Red("Not Available")
	}

	formatted := "$" + humanize.Comma(int64(floor))
	switch {
	case floor >= 145000:
		return pterm.Green(formatted)
	case floor >= 100000:
		return pterm.LightGreen(formatted)
	case floor >= 70000:
		return pterm.Yellow(formatted)
	default:
		return pterm.Red(formatted)
	}
}

// ResultsTable renders scored postings in their current order.
func ResultsTable(ps *posting.Postings) (string, error) {
	data := pterm.TableData{{"#", "Tier", "Total", "Priority", "Title", "Company", "Salary", "URL"}}
	for i, p := range ps.Items {
		row := []string{strconv.Itoa(i + 1), ColorizeTier(p.Tier()), "-", "-", utils.Truncate(p.Title, titleWidth), p.Company, ColorizeSalary(p.Salary.Floor()), p.URL}
		if p.Scored() {
			row[2] = ColorizeTotal(p.Computed.Total, p.Computed.Priority)
			row[3] = string(p.Computed.Priority)
		}
		data = append(data, row)
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
}

// TierReport renders scored postings grouped by tier, A first.
func TierReport(ps *posting.Postings) string {
	report := ps.ReportByTier()

	var b strings.Builder
	for _, t := range []tiering.Tier{tiering.TierA, tiering.TierB, tiering.TierC} {
		entries := report[t]
		if len(entries) == 0 {
			continue
		}
		b.WriteString(pterm.DefaultSection.Sprintf("Tier %s (%d)", ColorizeTier(t), len(entries)))
		for _, e := range entries {
			fmt.Fprintf(&b, "  %s  %s at %s [%s, %s]\n", e["total"], e["title"], orDash(e["company"]), e["priority"], e["salary"])
			fmt.Fprintf(&b, "      %s\n", e["url"])
			if e["signals"] != "" {
				fmt.Fprintf(&b, "      %s\n", pterm.Gray(e["signals"]))
			}
		}
	}
	if b.Len() == 0 {
		return "no scored postings\n"
	}
	return b.String()
}

// Details renders the full explanation of one scored posting.
func Details(p *posting.Posting, prof *profile.Profile) string {
	var b strings.Builder
	b.WriteString(pterm.DefaultSection.Sprintf("%s at %s", orDash(p.Title), orDash(p.Company)))
	fmt.Fprintf(&b, "URL:      %s\n", p.URL)
	fmt.Fprintf(&b, "Location: %s\n", orDash(p.Location))
	fmt.Fprintf(&b, "Salary:   %s\n", posting.FormatSalary(p.Salary))

	if !p.Scored() {
		b.WriteString("not scored\n")
		return b.String()
	}
	c := p.Computed

	fmt.Fprintf(&b, "Total:    %s (%s)\n", ColorizeTotal(c.Total, c.Priority), c.Priority)
	fmt.Fprintf(&b, "Tier:     %s, decided by %s\n", ColorizeTier(c.Assignment.Tier), c.Assignment.Rule)
	for _, line := range c.Assignment.Trail() {
		fmt.Fprintf(&b, "  - %s\n", line)
	}
	if c.Occupation != nil {
		flags := []string{}
		if c.Occupation.Priority {
			flags = append(flags, "priority")
		}
		if c.Occupation.Eligible {
			flags = append(flags, "eligible")
		}
		fmt.Fprintf(&b, "Occupation: %s %s %v\n", c.Occupation.Code, c.Occupation.Description, flags)
	}

	b.WriteString("\n")
	for _, s := range c.Scores {
		fmt.Fprintf(&b, "%-12s %5.1f\n", s.Dimension, s.Value)
		for _, line := range s.Trail() {
			fmt.Fprintf(&b, "  %s\n", line)
		}
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "Matched keywords: %s\n", joinOrDash(c.Keywords.MatchedKeywords()))
	if prof != nil {
		var gaps []string
		for _, m := range c.Keywords.Gaps(prof) {
			gaps = append(gaps, m.Keyword)
		}
		fmt.Fprintf(&b, "Gaps:             %s\n", joinOrDash(gaps))
	}
	fmt.Fprintf(&b, "Missing keywords: %s\n", joinOrDash(c.Keywords.MissingKeywords()))
	if c.Keywords.YearsRequired > 0 {
		fmt.Fprintf(&b, "Years required:   %d\n", c.Keywords.YearsRequired)
	}
	return b.String()
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func joinOrDash(items []string) string {
	return orDash(strings.Join(items, ", "))
}
