package scoring

import (
	"fmt"

	"github.com/spigell/jobfit/internal/textmatch"
)

// InterviewBase is the neutral interview-format score. Higher means a live
// coding round is less likely.
const InterviewBase = 50

// InterviewScorer scores the risk that the interview requires live coding.
func InterviewScorer() Scorer {
	return Scorer{
		Dimension: DimensionInterview,
		Base:      InterviewBase,
		Rules: []Rule{
			RuleFunc(roleBucket),
			RuleFunc(companyFormat),
			When{
				Name:      "case_study",
				Predicate: func(in *Input) bool { return in.signals().Interview.CaseStudy.Any(in.Description) },
				Delta:     15,
				Reason:    "description mentions a case study, take-home or presentation",
			},
			When{
				Name:      "stakeholder_focus",
				Predicate: func(in *Input) bool { return in.signals().Interview.Stakeholder.Any(in.Description) },
				Delta:     10,
				Reason:    "description emphasizes stakeholder skills over coding",
			},
			When{
				Name:      "bi_focus",
				Predicate: func(in *Input) bool { return in.signals().Interview.BIFocus.Any(in.Description) },
				Delta:     8,
				Reason:    "BI and visualization focus",
			},
			When{
				Name:      "coding_assessment",
				Predicate: func(in *Input) bool { return in.signals().Interview.CodingPlatforms.Any(in.Description) },
				Delta:     -25,
				Reason:    "description mentions a coding test or assessment",
			},
			When{
				Name:      "system_design",
				Predicate: func(in *Input) bool { return in.signals().Interview.SystemDesign.Any(in.Description) },
				Delta:     -15,
				Reason:    "description has engineering or system design requirements",
			},
			When{
				Name: "expert_programming",
				Predicate: func(in *Input) bool {
					iv := in.signals().Interview
					return iv.StrongProgramming.Any(in.Description) || iv.ExpertLanguages.Any(in.Description)
				},
				Delta:  -10,
				Reason: "description requires strong or expert programming",
			},
			RuleFunc(nonTechIndustry),
		},
	}
}

func roleBucket(in *Input) []Signal {
	roles := in.signals().Roles
	buckets := []struct {
		list   textmatch.List
		rule   string
		delta  float64
		format string
	}{
		{list: roles.NoCoding, rule: "no_coding_role", delta: 35, format: "'%s' roles rarely have live coding"},
		{list: roles.HeavyCoding, rule: "heavy_coding_role", delta: -30, format: "'%s' roles almost always have live coding"},
		{list: roles.Mixed, rule: "mixed_role", delta: 0, format: "'%s' interview format varies by company"},
	}
	for _, b := range buckets {
		if role, ok := b.list.First(in.Title); ok {
			return []Signal{{Rule: b.rule, Delta: b.delta, Reason: fmt.Sprintf(b.format, role)}}
		}
	}
	return nil
}

func companyFormat(in *Input) []Signal {
	c := in.companies()
	if name, ok := c.LiveCoding.First(in.Company); ok {
		return []Signal{{Rule: "live_coding_company", Delta: -20, Reason: fmt.Sprintf("%s is known for live coding interviews", name)}}
	}
	if name, ok := c.TakeHome.First(in.Company); ok {
		return []Signal{{Rule: "take_home_company", Delta: 15, Reason: fmt.Sprintf("%s typically uses take-home or discussion format", name)}}
	}
	return nil
}

func nonTechIndustry(in *Input) []Signal {
	industries := in.signals().Interview.NonTechIndustries
	industry, ok := industries.First(in.Description)
	if !ok {
		industry, ok = industries.First(in.Company)
	}
	if !ok {
		return nil
	}
	return []Signal{{
		Rule:   "non_tech_industry",
		Delta:  10,
		Reason: fmt.Sprintf("non-tech industry '%s', lighter technical interviews", industry),
	}}
}
