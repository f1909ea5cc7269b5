package keywords

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/jobfit/internal/profile"
	"github.com/spigell/jobfit/internal/taxonomy"
)

func testTaxonomy(t *testing.T) *taxonomy.Taxonomy {
	t.Helper()
	tax, err := taxonomy.NewTaxonomy(map[taxonomy.Category][]string{
		taxonomy.CategoryHardSkill: {"machine learning", "machine", "python", "data science"},
		taxonomy.CategoryTool:      {"learning", "science fiction", "power bi"},
		taxonomy.CategorySoftSkill: {"communication"},
	})
	require.NoError(t, err)
	return tax
}

func TestExtractLongestPhraseWins(t *testing.T) {
	t.Parallel()

	report := New(testTaxonomy(t), nil).Extract("Machine-Learning with Python; the machine is old. Machine learning again.")

	require.Len(t, report.Matched, 3)
	assert.Equal(t, "machine learning", report.Matched[0].Keyword)
	assert.Equal(t, 2, report.Matched[0].Count)
	assert.Equal(t, taxonomy.CategoryHardSkill, report.Matched[0].Category)
	assert.Equal(t, "python", report.Matched[1].Keyword)
	assert.Equal(t, "machine", report.Matched[2].Keyword)
	assert.Equal(t, 1, report.Matched[2].Count)

	assert.Contains(t, report.MissingKeywords(), "learning", "consumed tokens do not count again")
	assert.NotContains(t, report.MatchedKeywords(), "learning")
}

func TestExtractSpansAreExclusive(t *testing.T) {
	t.Parallel()

	text := "Love data science fiction"
	report := New(testTaxonomy(t), nil).Extract(text)

	require.Len(t, report.Matched, 1)
	m := report.Matched[0]
	assert.Equal(t, "data science", m.Keyword)
	require.Len(t, m.Spans, 1)
	assert.Equal(t, "data science", text[m.Spans[0].Start:m.Spans[0].End])
}

func TestExtractLongerOverlapWinsOverEarlierPhrase(t *testing.T) {
	t.Parallel()

	tax, err := taxonomy.NewTaxonomy(map[taxonomy.Category][]string{
		taxonomy.CategoryDomain: {"data science", "science platform engineering", "platform"},
	})
	require.NoError(t, err)

	text := "We run a data science platform engineering team"
	report := New(tax, nil).Extract(text)

	assert.Equal(t, []string{"science platform engineering"}, report.MatchedKeywords())
	require.Len(t, report.Matched[0].Spans, 1)
	span := report.Matched[0].Spans[0]
	assert.Equal(t, "science platform engineering", text[span.Start:span.End])
	assert.ElementsMatch(t, []string{"data science", "platform"}, report.MissingKeywords())
}

func TestExtractReportsInTextOrder(t *testing.T) {
	t.Parallel()

	report := New(testTaxonomy(t), nil).Extract("communication, python, then machine learning")

	assert.Equal(t, []string{"communication", "python", "machine learning"}, report.MatchedKeywords())
}

func TestExtractDeterministic(t *testing.T) {
	t.Parallel()

	text := "Power BI dashboards, python, machine learning, communication"
	first := New(testTaxonomy(t), nil).Extract(text)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, New(testTaxonomy(t), nil).Extract(text))
	}
}

func TestExtractEmptyText(t *testing.T) {
	t.Parallel()

	tax := testTaxonomy(t)
	report := New(tax, nil).Extract("")

	assert.Empty(t, report.Matched)
	assert.NotNil(t, report.Matched)
	assert.Len(t, report.Missing, tax.Len())
	assert.Equal(t, 0, report.YearsRequired)

	// hard skills first, alphabetical within the category
	assert.Equal(t, []string{
		"data science", "machine", "machine learning", "python",
		"learning", "power bi", "science fiction",
		"communication",
	}, report.MissingKeywords())
}

func TestExtractRelevantCategories(t *testing.T) {
	t.Parallel()

	report := New(testTaxonomy(t), []taxonomy.Category{taxonomy.CategoryTool}).Extract("python")

	assert.Equal(t, []string{"python"}, report.MatchedKeywords())
	for _, m := range report.Missing {
		assert.Equal(t, taxonomy.CategoryTool, m.Category)
	}
	assert.Len(t, report.Missing, 3)
}

func TestYearsRequired(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text   string
		expect int
	}{
		{text: "5+ years of experience in analytics", expect: 5},
		{text: "3 yrs exp, ideally 8 years of relevant experience", expect: 8},
		{text: "10 years experience", expect: 10},
		{text: "founded 25 years ago", expect: 0},
		{text: "", expect: 0},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.expect, yearsRequired(tt.text))
		})
	}
}

func TestReportGaps(t *testing.T) {
	t.Parallel()

	var spec profile.Spec
	spec.Name = "candidate"
	spec.Skills.Strong = []string{"python"}
	spec.Skills.Weak = []string{"power bi"}
	p, err := profile.New(spec)
	require.NoError(t, err)

	report := New(testTaxonomy(t), nil).Extract("Python and Power BI and communication")
	gaps := report.Gaps(p)

	keywords := make([]string, 0, len(gaps))
	for _, g := range gaps {
		keywords = append(keywords, g.Keyword)
	}
	assert.Equal(t, []string{"power bi", "communication"}, keywords)
}
