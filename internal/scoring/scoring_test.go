package scoring

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/jobfit/internal/keywords"
	"github.com/spigell/jobfit/internal/profile"
	"github.com/spigell/jobfit/internal/taxonomy"
)

func testProfile(t *testing.T) *profile.Profile {
	t.Helper()
	var spec profile.Spec
	spec.Name = "candidate"
	spec.Skills.Strong = []string{"python", "sql", "machine learning"}
	spec.Skills.Weak = []string{"tableau"}
	spec.Connections = []string{"acme"}
	spec.Niches = []profile.NicheRule{
		{Name: "insurance", Description: []string{"insurance"}, Delta: 8, Reason: "insurance domain experience"},
	}
	p, err := profile.New(spec)
	require.NoError(t, err)
	return p
}

func newInput(t *testing.T, job Job) *Input {
	t.Helper()
	reg, err := taxonomy.Default()
	require.NoError(t, err)
	report := keywords.New(reg.Taxonomy(), nil).Extract(job.Title + "\n" + job.Description)
	return NewInput(job, report, testProfile(t), reg)
}

func scoreOf(t *testing.T, scorer Scorer, job Job) Score {
	t.Helper()
	return scorer.Score(newInput(t, job))
}

func TestSparsePostingIsNeutral(t *testing.T) {
	t.Parallel()

	breakdown := NewScorers().Score(newInput(t, Job{}))
	require.Len(t, breakdown, len(Dimensions))

	expect := map[Dimension]float64{
		DimensionSkills:      SkillsNeutral,
		DimensionImmigration: ImmigrationBase,
		DimensionInterview:   InterviewBase,
		DimensionSalary:      SalaryNeutral,
		DimensionCompany:     CompanyNeutral,
		DimensionSuccess:     SuccessBase,
	}
	for i, d := range Dimensions {
		assert.Equal(t, d, breakdown[i].Dimension)
		assert.Equal(t, expect[d], breakdown[i].Value, d)
	}

	total, priority, err := Aggregate(breakdown, DefaultWeights(), DefaultThresholds())
	require.NoError(t, err)
	assert.Equal(t, 49.0, total)
	assert.Equal(t, PriorityLow, priority)
}

func TestLocalExperienceBarrier(t *testing.T) {
	t.Parallel()

	base := Job{Title: "Data Scientist", Company: "Acme Analytics", Description: "We build models in python."}
	required := base
	required.Description = "Canadian experience required. " + base.Description

	with := scoreOf(t, SuccessScorer(), required)
	without := scoreOf(t, SuccessScorer(), base)

	assert.Less(t, with.Value, without.Value)

	var barrier *Signal
	for i := range with.Signals {
		if with.Signals[i].Rule == "local_experience_required" {
			barrier = &with.Signals[i]
		}
	}
	require.NotNil(t, barrier)
	assert.Equal(t, float64(BarrierExplicit), barrier.Delta)
	for _, p := range []float64{BarrierWelcoming, BarrierGlobal, BarrierRemote, BarrierSilent} {
		assert.Less(t, float64(BarrierExplicit), p, "explicit requirement is the largest penalty")
	}

	immigration := scoreOf(t, ImmigrationScorer(), required)
	assert.Contains(t, immigration.Trail(), "-10 (description requires local work experience)")
}

func TestBarrierPriorityOrder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		job      Job
		expected string
	}{
		{name: "explicit beats welcoming", job: Job{Description: "international experience welcome, local experience needed"}, expected: "local_experience_required"},
		{name: "welcoming", job: Job{Description: "international backgrounds are valued; global teams"}, expected: "international_welcome"},
		{name: "global", job: Job{Description: "a multinational team"}, expected: "global_work"},
		{name: "remote", job: Job{Location: "Remote", Description: "analytics role"}, expected: "remote_barrier"},
		{name: "silent", job: Job{Description: "analytics role"}, expected: "silent"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := scoreOf(t, SuccessScorer(), tt.job)
			var rules []string
			for _, s := range score.Signals {
				rules = append(rules, s.Rule)
			}
			assert.Contains(t, rules, tt.expected)
		})
	}
}

func TestSkillsScore(t *testing.T) {
	t.Parallel()

	score := scoreOf(t, SkillsScorer(), Job{Description: "python and tableau"})
	// (3.0*1.0 + 2.5*0.1) / (3.0 + 2.5)
	assert.Equal(t, 59.1, score.Value)
	require.Len(t, score.Signals, 2)
	assert.Equal(t, "+54.5 (strong 'python' (hard_skill))", score.Signals[0].String())
}

func TestSkillsMonotonic(t *testing.T) {
	t.Parallel()

	descriptions := []string{
		"tableau",
		"communication and tableau",
		"docker, kubernetes and communication",
		"",
	}
	for _, d := range descriptions {
		before := scoreOf(t, SkillsScorer(), Job{Description: d})
		after := scoreOf(t, SkillsScorer(), Job{Description: d + "; also python"})
		assert.GreaterOrEqual(t, after.Value, before.Value, d)
	}
}

func TestSalarySteps(t *testing.T) {
	t.Parallel()

	tests := []struct {
		floor  float64
		expect float64
	}{
		{floor: 0, expect: SalaryNeutral},
		{floor: 150000, expect: 100},
		{floor: 145000, expect: 100},
		{floor: 120000, expect: 90},
		{floor: 100000, expect: 80},
		{floor: 99999, expect: 65},
		{floor: 70000, expect: 50},
		{floor: 55000, expect: 30},
		{floor: 40000, expect: SalaryMinimum},
	}

	for _, tt := range tests {
		score := scoreOf(t, SalaryScorer(), Job{SalaryFloor: tt.floor})
		assert.Equal(t, tt.expect, score.Value, tt.floor)
	}

	score := scoreOf(t, SalaryScorer(), Job{SalaryFloor: 150000})
	assert.Equal(t, []string{"+100 ($150,000 at or above $145,000)"}, score.Trail())
}

func TestCompanyScorer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		job    Job
		expect float64
	}{
		{job: Job{}, expect: CompanyNeutral},
		{job: Job{Company: "Lululemon Athletica"}, expect: CompanyTier1},
		{job: Job{Company: "Clio"}, expect: CompanyNotable},
		{job: Job{Company: "Copperleaf Technologies"}, expect: CompanyStartup},
		{job: Job{Company: "Acme", Description: "A Fortune 500 retailer"}, expect: CompanyEnterprise},
		{job: Job{Company: "Acme", Description: "We just raised our Series C"}, expect: CompanyFunded},
		{job: Job{Company: "Acme", Description: "an early-stage team"}, expect: CompanyEarlyStage},
		{job: Job{Company: "Keyence"}, expect: CompanyUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.job.Company, func(t *testing.T) {
			assert.Equal(t, tt.expect, scoreOf(t, CompanyScorer(), tt.job).Value)
		})
	}
}

func TestImmigrationScorer(t *testing.T) {
	t.Parallel()

	high := scoreOf(t, ImmigrationScorer(), Job{
		Title:          "Senior Data Scientist",
		Location:       "Vancouver, BC",
		EmploymentType: "Full-time",
		Description:    "This is a permanent role.",
	})
	assert.Equal(t, 100.0, high.Value, "clamped")
	assert.Len(t, high.Signals, 6)

	low := scoreOf(t, ImmigrationScorer(), Job{
		Title:          "Junior Data Analyst",
		Location:       "Toronto, Canada",
		EmploymentType: "contract",
	})
	assert.Equal(t, 73.0, low.Value)

	supplied := newInput(t, Job{Title: "Barista", OccupationCode: "21211"})
	assert.True(t, supplied.HasOccupation)
	assert.True(t, supplied.Occupation.Priority)
	assert.Equal(t, 80.0, ImmigrationScorer().Score(supplied).Value)
}

func rulesOf(score Score) []string {
	rules := make([]string, 0, len(score.Signals))
	for _, s := range score.Signals {
		rules = append(rules, s.Rule)
	}
	return rules
}

func TestSeniorityWordsComeFromRegistry(t *testing.T) {
	t.Parallel()

	reg, err := taxonomy.Parse([]byte(`
keywords:
  tool: [pandas]
companies:
  tier1: [globex]
signals:
  seniority:
    senior: [principal]
    lead: [captain]
    staff: [fellow]
`))
	require.NoError(t, err)

	input := func(job Job) *Input {
		report := keywords.New(reg.Taxonomy(), nil).Extract(job.Title + "\n" + job.Description)
		return NewInput(job, report, testProfile(t), reg)
	}

	assert.Contains(t, rulesOf(ImmigrationScorer().Score(input(Job{Title: "Principal Analyst"}))), "senior")
	assert.NotContains(t, rulesOf(ImmigrationScorer().Score(input(Job{Title: "Senior Analyst"}))), "senior")
	assert.NotContains(t, rulesOf(ImmigrationScorer().Score(input(Job{Title: "Principal Fellow"}))), "senior")
	assert.Contains(t, rulesOf(ImmigrationScorer().Score(input(Job{Title: "Captain of Analytics"}))), "lead")
	assert.NotContains(t, rulesOf(ImmigrationScorer().Score(input(Job{Title: "Analytics Lead"}))), "lead")

	success := SuccessScorer().Score(input(Job{Title: "Captain of Analytics", Company: "Globex"}))
	assert.Contains(t, rulesOf(success), "tier1_senior")
	success = SuccessScorer().Score(input(Job{Title: "Senior Analyst", Company: "Globex"}))
	assert.Contains(t, rulesOf(success), "tier1")
	assert.NotContains(t, rulesOf(success), "tier1_senior")
}

func TestInterviewScorer(t *testing.T) {
	t.Parallel()

	easy := scoreOf(t, InterviewScorer(), Job{Title: "Product Manager", Company: "Hootsuite", Description: "Final round is a case study."})
	assert.Equal(t, 100.0, easy.Value)

	hard := scoreOf(t, InterviewScorer(), Job{Title: "Machine Learning Engineer", Company: "Google", Description: "Expect a LeetCode screen."})
	assert.Equal(t, 0.0, hard.Value)
	assert.Equal(t, "heavy_coding_role", hard.Signals[0].Rule)

	expert := scoreOf(t, InterviewScorer(), Job{Title: "Data Scientist", Description: "Expert in Python"})
	assert.Equal(t, 40.0, expert.Value)

	industry := scoreOf(t, InterviewScorer(), Job{Title: "Analyst", Company: "Coastal Credit Union"})
	assert.Equal(t, 60.0, industry.Value)
}

func TestNetworkingCapped(t *testing.T) {
	t.Parallel()

	var spec profile.Spec
	spec.Name = "candidate"
	spec.Connections = []string{"amazon"}
	p, err := profile.New(spec)
	require.NoError(t, err)

	reg, err := taxonomy.Default()
	require.NoError(t, err)

	in := NewInput(Job{Company: "Amazon"}, keywords.Report{}, p, reg)
	signals := networkingSignals(in)
	require.Len(t, signals, 1)
	assert.Equal(t, float64(NetworkingCap), signals[0].Delta)

	assert.Nil(t, networkingSignals(NewInput(Job{}, keywords.Report{}, p, reg)))
}

func TestScoresWithinBounds(t *testing.T) {
	t.Parallel()

	jobs := []Job{
		{},
		{Title: "Senior Lead Machine Learning Engineer", Company: "Google", Description: "leetcode, system design, expert in python, canadian experience, no sponsorship", EmploymentType: "contract", SalaryFloor: 1},
		{Title: "Junior Product Manager", Company: "Hootsuite", Location: "Vancouver BC", Description: "case study, stakeholder, tableau, diversity, visa sponsorship, insurance, permanent", EmploymentType: "full time", SalaryFloor: 1e7},
	}
	for _, job := range jobs {
		in := newInput(t, job)
		breakdown := NewScorers().Score(in)
		for _, s := range breakdown {
			assert.GreaterOrEqual(t, s.Value, 0.0)
			assert.LessOrEqual(t, s.Value, 100.0)
		}
		total, _, err := Aggregate(breakdown, DefaultWeights(), DefaultThresholds())
		require.NoError(t, err)
		assert.GreaterOrEqual(t, total, 0.0)
		assert.LessOrEqual(t, total, 100.0)
	}
}

func TestWeightsValidate(t *testing.T) {
	t.Parallel()

	require.NoError(t, DefaultWeights().Validate())
	require.NoError(t, LegacyWeights().Validate())

	short := DefaultWeights()
	short[DimensionSkills] = 0.2
	assert.ErrorIs(t, short.Validate(), ErrInvalidConfig)

	missing := DefaultWeights()
	delete(missing, DimensionSuccess)
	missing[DimensionSkills] += 0.10
	assert.ErrorIs(t, missing.Validate(), ErrInvalidConfig)

	negative := DefaultWeights()
	negative[DimensionSkills] = 0.5
	negative[DimensionSalary] = -0.1
	assert.ErrorIs(t, negative.Validate(), ErrInvalidConfig)

	_, err := ParseWeights(map[string]float64{"skills": 0.5, "charisma": 0.5})
	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Contains(t, cfgErr.Error(), "charisma")

	w, err := ParseWeights(map[string]float64{"Skills": 0.4, "immigration": 0.25, "interview": 0, "salary": 0.15, "company": 0.1, "success": 0.1})
	require.NoError(t, err)
	assert.Equal(t, LegacyWeights(), w)

	_, err = WeightsPreset("aggressive")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestAggregate(t *testing.T) {
	t.Parallel()

	breakdown := Breakdown{
		{Dimension: DimensionSkills, Value: 100},
		{Dimension: DimensionImmigration, Value: 80},
		{Dimension: DimensionInterview, Value: 60},
		{Dimension: DimensionSalary, Value: 90},
		{Dimension: DimensionCompany, Value: 75},
		{Dimension: DimensionSuccess, Value: 30},
	}

	total, priority, err := Aggregate(breakdown, DefaultWeights(), DefaultThresholds())
	require.NoError(t, err)
	// 30 + 20 + 9 + 9 + 7.5 + 3
	assert.Equal(t, 78.5, total)
	assert.Equal(t, PriorityMedium, priority)

	_, _, err = Aggregate(breakdown[:5], DefaultWeights(), DefaultThresholds())
	assert.ErrorIs(t, err, ErrInvalidConfig, "success is weighted but missing")

	_, _, err = Aggregate(breakdown, DefaultWeights(), Thresholds{High: 50, Medium: 70})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestPriorityBoundaries(t *testing.T) {
	t.Parallel()

	th := DefaultThresholds()
	assert.Equal(t, PriorityHigh, th.Priority(80))
	assert.Equal(t, PriorityMedium, th.Priority(79.9))
	assert.Equal(t, PriorityMedium, th.Priority(60))
	assert.Equal(t, PriorityLow, th.Priority(59.9))

	p, err := ParsePriority(" medium ")
	require.NoError(t, err)
	assert.Equal(t, PriorityMedium, p)
	assert.Greater(t, PriorityHigh.Rank(), p.Rank())
}

func TestSignalString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "+15 (x)", Signal{Delta: 15, Reason: "x"}.String())
	assert.Equal(t, "-2.5 (x)", Signal{Delta: -2.5, Reason: "x"}.String())
	assert.Equal(t, "0 (x)", Signal{Reason: "x"}.String())
}
