package scoring

import "fmt"

// Company scores. Exactly one applies.
const (
	CompanyNeutral    = 50
	CompanyTier1      = 90
	CompanyNotable    = 75
	CompanyStartup    = 55
	CompanyEnterprise = 80
	CompanyFunded     = 70
	CompanyEarlyStage = 55
	CompanyUnknown    = 60
)

// CompanyScorer scores company reputation: named lists first, then the
// description's size language, then a mid default.
func CompanyScorer() Scorer {
	return Scorer{
		Dimension: DimensionCompany,
		Base:      0,
		Rules:     []Rule{RuleFunc(companySignals)},
	}
}

func companySignals(in *Input) []Signal {
	if in.Company.Empty() {
		return []Signal{{Rule: "no_company", Delta: CompanyNeutral, Reason: "company not provided"}}
	}

	c := in.companies()
	if name, ok := c.Tier1.First(in.Company); ok {
		return []Signal{{Rule: "tier1", Delta: CompanyTier1, Reason: fmt.Sprintf("%s is a tier-1 company", name)}}
	}
	if name, ok := c.Notable.First(in.Company); ok {
		return []Signal{{Rule: "notable", Delta: CompanyNotable, Reason: fmt.Sprintf("%s is a notable company", name)}}
	}
	if name, ok := c.Startups.First(in.Company); ok {
		return []Signal{{Rule: "startup", Delta: CompanyStartup, Reason: fmt.Sprintf("%s is a small company or startup", name)}}
	}

	switch {
	case c.EnterpriseLanguage.Any(in.Description):
		return []Signal{{Rule: "enterprise", Delta: CompanyEnterprise, Reason: "description describes an enterprise"}}
	case c.FundedLanguage.Any(in.Description):
		return []Signal{{Rule: "funded", Delta: CompanyFunded, Reason: "description mentions later-stage funding"}}
	case c.EarlyStageLanguage.Any(in.Description):
		return []Signal{{Rule: "early_stage", Delta: CompanyEarlyStage, Reason: "description describes an early-stage company"}}
	}

	return []Signal{{Rule: "unknown", Delta: CompanyUnknown, Reason: "company not on any list"}}
}
