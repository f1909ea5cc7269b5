package ui

import (
	"strings"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/jobfit/internal/ai"
	"github.com/spigell/jobfit/internal/keywords"
	"github.com/spigell/jobfit/internal/posting"
	"github.com/spigell/jobfit/internal/profile"
	"github.com/spigell/jobfit/internal/scoring"
	"github.com/spigell/jobfit/internal/store"
	"github.com/spigell/jobfit/internal/taxonomy"
	"github.com/spigell/jobfit/internal/tiering"
)

func init() {
	pterm.DisableColor()
}

func fixture() *posting.Postings {
	return &posting.Postings{Items: []*posting.Posting{
		{
			URL:     "https://jobs.example/1",
			Title:   "Senior Data Scientist",
			Company: "Lululemon",
			Salary:  posting.Salary{Min: 150000, Currency: "CAD"},
			Computed: &posting.Result{
				Scores: scoring.Breakdown{{
					Dimension: scoring.DimensionSalary,
					Value:     100,
					Signals:   []scoring.Signal{{Rule: "salary_step", Delta: 100, Reason: "$150,000 at or above $145,000"}},
				}},
				Total:    81.5,
				Priority: scoring.PriorityHigh,
				Assignment: tiering.Assignment{
					Tier:    tiering.TierA,
					Rule:    tiering.RuleSignals,
					Stretch: 2,
					Signals: []tiering.Signal{{Kind: tiering.KindStretch, Name: "tier1_company", Weight: 1, Reason: "Lululemon is a top-tier employer"}},
				},
				Keywords: keywords.Report{
					Matched:       []keywords.Match{{Keyword: "python"}, {Keyword: "spark"}},
					Missing:       []keywords.Match{{Keyword: "tableau"}},
					YearsRequired: 5,
				},
				Occupation: &taxonomy.Occupation{Code: "21211", Description: "Data Scientists", Priority: true, Eligible: true},
			},
		},
		{URL: "https://jobs.example/2", Title: "Analyst"},
	}}
}

func TestColorizeSalary(t *testing.T) {
	assert.Contains(t, ColorizeSalary(150000), "$150,000")
	assert.Contains(t, ColorizeSalary(0), "Not Available")
}

func TestResultsTable(t *testing.T) {
	out, err := ResultsTable(fixture())
	require.NoError(t, err)

	for _, expected := range []string{"A Stretch", "81.5", "HIGH", "Senior Data Scientist", "$150,000", "unscored", "https://jobs.example/2"} {
		assert.Contains(t, out, expected)
	}
}

func TestTierReport(t *testing.T) {
	out := TierReport(fixture())
	assert.Contains(t, out, "Tier A Stretch (1)")
	assert.Contains(t, out, "stretch +1: Lululemon is a top-tier employer")
	assert.NotContains(t, out, "Analyst")

	assert.Equal(t, "no scored postings\n", TierReport(&posting.Postings{}))
}

func TestDetails(t *testing.T) {
	var spec profile.Spec
	spec.Name = "candidate"
	spec.Skills.Strong = []string{"python"}
	prof, err := profile.New(spec)
	require.NoError(t, err)

	out := Details(fixture().Items[0], prof)
	for _, expected := range []string{
		"decided by signals",
		"+100 ($150,000 at or above $145,000)",
		"Matched keywords: python, spark",
		"Gaps:             spark",
		"Missing keywords: tableau",
		"Years required:   5",
		"21211 Data Scientists [priority eligible]",
	} {
		assert.Contains(t, out, expected)
	}

	assert.True(t, strings.HasSuffix(Details(fixture().Items[1], prof), "not scored\n"))
}

func TestGapReport(t *testing.T) {
	out, err := GapReport(&store.GapReport{
		Postings:        4,
		Missing:         []store.SkillStat{{Keyword: "spark", Category: "tool", Frequency: 3, Percent: 75}},
		Categories:      []store.CategoryStat{{Category: "tool", Has: 2, Missing: 3, Total: 5}},
		Recommendations: []string{"Learn spark: appears in 75% of scored postings"},
	}, 10)
	require.NoError(t, err)
	assert.Contains(t, out, "75%")
	assert.Contains(t, out, "* Learn spark: appears in 75% of scored postings")

	empty, err := GapReport(&store.GapReport{}, 10)
	require.NoError(t, err)
	assert.Contains(t, empty, "no stored postings")
}

func TestOccupationReport(t *testing.T) {
	out, err := OccupationReport(&store.OccupationSummary{
		Postings:           2,
		Occupations:        []store.OccupationCount{{Code: "21211", Description: "Data Scientists", Priority: true, Count: 1}},
		Eligible:           1,
		EligiblePercent:    50,
		AboveMedian:        1,
		AboveMedianPercent: 50,
	})
	require.NoError(t, err)
	assert.Contains(t, out, "Eligible occupations: 1 (50%)")
	assert.Contains(t, out, "At or above median wage ($79,996): 1 (50%)")
}

func TestAdviceReport(t *testing.T) {
	out := AdviceReport(&ai.Advice{Summary: "Lead with forecasting", Bullets: []string{"Cut triage time by 23%"}})
	assert.Contains(t, out, "Lead with forecasting")
	assert.Contains(t, out, "Suggested bullets:\n  - Cut triage time by 23%")
	assert.NotContains(t, out, "Emphasize")
}
