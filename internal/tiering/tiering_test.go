package tiering

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/jobfit/internal/keywords"
	"github.com/spigell/jobfit/internal/profile"
	"github.com/spigell/jobfit/internal/scoring"
	"github.com/spigell/jobfit/internal/taxonomy"
)

func classify(t *testing.T, job scoring.Job) (Assignment, scoring.Breakdown) {
	t.Helper()

	reg, err := taxonomy.Default()
	require.NoError(t, err)

	var spec profile.Spec
	spec.Name = "candidate"
	spec.Skills.Strong = []string{"python", "sql"}
	spec.NicheTitles = []string{"quant"}
	p, err := profile.New(spec)
	require.NoError(t, err)

	report := keywords.New(reg.Taxonomy(), nil).Extract(job.Title + "\n" + job.Description)
	in := scoring.NewInput(job, report, p, reg)
	b := scoring.NewScorers().Score(in)

	c, err := New(DefaultThresholds())
	require.NoError(t, err)
	return c.Classify(in, b), b
}

func TestSeniorAtTopCompanyIsStretch(t *testing.T) {
	t.Parallel()

	a, _ := classify(t, scoring.Job{
		Title:       "Senior Data Scientist",
		Company:     "Lululemon",
		SalaryFloor: 150000,
		Description: "Build forecasting models with python and sql.",
	})

	assert.Equal(t, TierA, a.Tier)
	assert.Equal(t, RuleSignals, a.Rule)
	assert.GreaterOrEqual(t, a.Stretch, 2)
	assert.Less(t, a.QuickWin, 2)

	var names []string
	for _, s := range a.Signals {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"seniority", "tier1_company", "high_salary"}, names)
}

func TestJuniorContractIsQuickWin(t *testing.T) {
	t.Parallel()

	a, _ := classify(t, scoring.Job{
		Title:          "Junior Data Analyst",
		EmploymentType: "contract",
		Description:    "We are open to candidates from diverse backgrounds.",
	})

	assert.Equal(t, TierC, a.Tier)
	assert.GreaterOrEqual(t, a.QuickWin, 2)
	assert.Equal(t, 3, a.QuickWin)
}

func TestPureEngineeringTitleIsStretch(t *testing.T) {
	t.Parallel()

	for _, company := range []string{"Hootsuite", "Google", "Acme", ""} {
		t.Run(company, func(t *testing.T) {
			a, _ := classify(t, scoring.Job{
				Title:       "Machine Learning Engineer",
				Company:     company,
				Description: "Case study round with stakeholder and tableau focus.",
			})
			assert.Equal(t, TierA, a.Tier)
		})
	}

	a, b := classify(t, scoring.Job{
		Title:          "Junior Platform Engineer",
		Company:        "Hootsuite",
		EmploymentType: "contract",
		Description:    "Case study round, diverse backgrounds welcome.",
	})
	require.GreaterOrEqual(t, b.Value(scoring.DimensionInterview), 30.0)
	assert.Equal(t, TierA, a.Tier)
	assert.Equal(t, RulePureEngineering, a.Rule)
	require.Len(t, a.Signals, 1)
	assert.Equal(t, "hard rule: 'platform engineer' is a pure engineering role", a.Signals[0].String())
}

func TestInterviewRiskOverridesSignals(t *testing.T) {
	t.Parallel()

	a, b := classify(t, scoring.Job{
		Title:          "Junior Data Scientist",
		Company:        "Google",
		EmploymentType: "contract",
		Description:    "LeetCode round and system design. Diverse backgrounds welcome.",
	})

	assert.Less(t, b.Value(scoring.DimensionInterview), 30.0)
	assert.Equal(t, TierA, a.Tier)
	assert.Equal(t, RuleInterviewRisk, a.Rule)
	assert.Zero(t, a.QuickWin)
}

func TestSweetSpot(t *testing.T) {
	t.Parallel()

	a, b := classify(t, scoring.Job{
		Title:       "Data Scientist",
		Company:     "Acme",
		Description: "Models in python and sql.",
	})

	require.Less(t, b.Value(scoring.DimensionSuccess), 60.0)
	assert.Equal(t, TierB, a.Tier)
	assert.Empty(t, a.Signals)
}

func TestSuccessScorePromotesToQuickWin(t *testing.T) {
	t.Parallel()

	reg, err := taxonomy.Default()
	require.NoError(t, err)
	p, err := profile.New(profile.Spec{Name: "candidate"})
	require.NoError(t, err)

	in := scoring.NewInput(scoring.Job{Title: "Data Scientist"}, keywords.Report{}, p, reg)
	c, err := New(DefaultThresholds())
	require.NoError(t, err)

	b := scoring.Breakdown{
		{Dimension: scoring.DimensionInterview, Value: 50},
		{Dimension: scoring.DimensionSuccess, Value: 60},
	}
	assert.Equal(t, TierC, c.Classify(in, b).Tier)

	b[1].Value = 59.9
	assert.Equal(t, TierB, c.Classify(in, b).Tier)
}

func TestLocalExperienceCountsDouble(t *testing.T) {
	t.Parallel()

	a, _ := classify(t, scoring.Job{
		Title:       "Data Scientist",
		Company:     "Acme",
		Description: "Canadian experience required.",
	})

	assert.Equal(t, 2, a.Stretch)
	assert.Equal(t, TierA, a.Tier)
}

func TestLongExperienceNeedsSeniorTitle(t *testing.T) {
	t.Parallel()

	senior, _ := classify(t, scoring.Job{Title: "Senior Analyst", Description: "10+ years of experience"})
	assert.Equal(t, 2, senior.Stretch)

	mid, _ := classify(t, scoring.Job{Title: "Analyst", Description: "10+ years of experience"})
	assert.Zero(t, mid.Stretch)
}

func TestNewValidatesThresholds(t *testing.T) {
	th := DefaultThresholds()
	th.Hard = 80
	_, err := New(th)
	assert.ErrorIs(t, err, scoring.ErrInvalidConfig)

	th = DefaultThresholds()
	th.StretchMin = 0
	_, err = New(th)
	assert.Error(t, err)
}

func TestParseTier(t *testing.T) {
	tier, err := ParseTier(" c ")
	require.NoError(t, err)
	assert.Equal(t, TierC, tier)
	assert.Equal(t, "Quick Win", tier.Label())

	_, err = ParseTier("D")
	assert.Error(t, err)
}
