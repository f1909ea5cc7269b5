package scoring

import (
	"fmt"

	"github.com/spigell/jobfit/internal/taxonomy"
)

// SkillsNeutral is the skills score of a posting that names no taxonomy
// keyword at all.
const SkillsNeutral = 50

var categoryWeights = map[taxonomy.Category]float64{
	taxonomy.CategoryHardSkill: 3.0,
	taxonomy.CategoryTool:      2.5,
	taxonomy.CategoryMethod:    2.0,
	taxonomy.CategorySoftSkill: 1.0,
	taxonomy.CategoryDomain:    1.5,
	taxonomy.CategoryEducation: 1.5,
}

// CategoryWeight returns the weight of a keyword category; unknown categories
// weigh 1.0.
func CategoryWeight(c taxonomy.Category) float64 {
	if w, ok := categoryWeights[c]; ok {
		return w
	}
	return 1.0
}

// SkillsScorer scores how well the candidate covers the matched keywords.
// Each keyword contributes 100 * multiplier * categoryWeight / maxWeight,
// where maxWeight is the sum of the category weights of every matched
// keyword, so a candidate Strong in all of them scores 100.
func SkillsScorer() Scorer {
	return Scorer{
		Dimension: DimensionSkills,
		Base:      0,
		Rules:     []Rule{RuleFunc(skillSignals)},
	}
}

func skillSignals(in *Input) []Signal {
	matched := in.Keywords.Matched
	if len(matched) == 0 {
		return []Signal{{Rule: "no_keywords", Delta: SkillsNeutral, Reason: "no taxonomy keywords in the posting"}}
	}

	var maxWeight float64
	for _, m := range matched {
		maxWeight += CategoryWeight(m.Category)
	}

	out := make([]Signal, 0, len(matched))
	for _, m := range matched {
		tier := in.Profile.TierOf(m.Keyword)
		out = append(out, Signal{
			Rule:   "keyword",
			Delta:  100 * tier.Multiplier() * CategoryWeight(m.Category) / maxWeight,
			Reason: fmt.Sprintf("%s '%s' (%s)", tier, m.Keyword, m.Category),
		})
	}
	return out
}
