package tiering

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/spigell/jobfit/internal/scoring"
)

func stretch(name string, weight int, reason string) Signal {
	return Signal{Kind: KindStretch, Name: name, Weight: weight, Reason: reason}
}

func quickWin(name, reason string) Signal {
	return Signal{Kind: KindQuickWin, Name: name, Weight: 1, Reason: reason}
}

func (c *Classifier) signals(in *scoring.Input, interview float64) []Signal {
	var out []Signal

	reg := in.Registry
	sig := reg.Signals()
	companies := reg.Companies()

	switch {
	case interview >= c.th.Easy:
		out = append(out, quickWin("easy_interview", fmt.Sprintf("interview score %s, live coding unlikely", num(interview))))
	case interview < c.th.Hard:
		out = append(out, stretch("hard_interview", 1, fmt.Sprintf("interview score %s, live coding possible", num(interview))))
	}

	if word, ok := sig.Seniority.Stretch.First(in.Title); ok {
		out = append(out, stretch("seniority", 1, fmt.Sprintf("'%s' title", word)))
	}
	if name, ok := companies.Tier1.First(in.Company); ok {
		out = append(out, stretch("tier1_company", 1, fmt.Sprintf("%s is a tier-1 company", name)))
	}
	floor := in.Job.SalaryFloor
	if floor > 0 && floor >= c.th.HighSalary {
		out = append(out, stretch("high_salary", 1, fmt.Sprintf("salary floor $%s", humanize.Comma(int64(floor)))))
	}
	if phrase, ok := sig.Barrier.LocalExperience.First(in.Description); ok {
		out = append(out, stretch("local_experience", 2, fmt.Sprintf("requires '%s'", phrase)))
	}
	years := in.Keywords.YearsRequired
	if c.th.LongExperience > 0 && years >= c.th.LongExperience && sig.Seniority.Senior.Any(in.Title) {
		out = append(out, stretch("long_experience", 1, fmt.Sprintf("%d+ years required for a senior title", years)))
	}

	if word, ok := sig.Seniority.QuickWin.First(in.Title); ok {
		out = append(out, quickWin("junior_title", fmt.Sprintf("'%s' title", word)))
	}
	if sig.Employment.Contract.Any(in.EmploymentType) {
		out = append(out, quickWin("contract", "contract employment"))
	}
	if phrase, ok := sig.Openness.Diversity.First(in.Description); ok {
		out = append(out, quickWin("openness", fmt.Sprintf("openness language '%s'", phrase)))
	} else if phrase, ok := sig.Openness.Sponsorship.First(in.Description); ok {
		out = append(out, quickWin("openness", fmt.Sprintf("sponsorship language '%s'", phrase)))
	}
	if name, ok := companies.Startups.First(in.Company); ok {
		out = append(out, quickWin("small_company", fmt.Sprintf("%s is a smaller company", name)))
	}
	if floor > 0 && floor < c.th.LowSalary {
		out = append(out, quickWin("low_salary", fmt.Sprintf("salary floor $%s", humanize.Comma(int64(floor)))))
	}
	if word, ok := in.Profile.NicheTitles().First(in.Title); ok {
		out = append(out, quickWin("niche_title", fmt.Sprintf("'%s' is a niche role", word)))
	}
	if role, ok := sig.Roles.NonCoding.First(in.Title); ok {
		out = append(out, quickWin("non_coding_role", fmt.Sprintf("'%s' roles have no live coding", role)))
	}

	return out
}
