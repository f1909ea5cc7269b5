package taxonomy

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTaxonomyPrecedence(t *testing.T) {
	tax, err := NewTaxonomy(map[Category][]string{
		CategoryHardSkill: {"machine", "Machine Learning", "deep learning"},
		CategoryTool:      {"scikit-learn", "pandas"},
	})
	require.NoError(t, err)

	keywords := make([]string, 0, tax.Len())
	for _, e := range tax.Entries() {
		keywords = append(keywords, e.Keyword)
	}

	assert.Equal(t, []string{"deep learning", "machine learning", "scikit learn", "machine", "pandas"}, keywords)

	starting := tax.StartingWith("machine")
	require.Len(t, starting, 2)
	assert.Equal(t, "machine learning", starting[0].Keyword)
	assert.Equal(t, "machine", starting[1].Keyword)

	entry, ok := tax.Lookup("Scikit Learn")
	require.True(t, ok)
	assert.Equal(t, CategoryTool, entry.Category)
}

func TestNewTaxonomyDuplicatesResolveDeterministically(t *testing.T) {
	for i := 0; i < 20; i++ {
		tax, err := NewTaxonomy(map[Category][]string{
			CategoryTool:      {"spark"},
			CategoryHardSkill: {"Spark", "python"},
		})
		require.NoError(t, err)

		entry, ok := tax.Lookup("spark")
		require.True(t, ok)
		assert.Equal(t, CategoryHardSkill, entry.Category, "category sorting first wins")
		assert.Equal(t, 2, tax.Len())
	}
}

func TestNewTaxonomyEmpty(t *testing.T) {
	_, err := NewTaxonomy(map[Category][]string{CategoryTool: {"  ", "--"}})
	assert.Error(t, err)
}

func TestCategoriesOrder(t *testing.T) {
	tax, err := NewTaxonomy(map[Category][]string{
		"zeta":            {"z"},
		CategorySoftSkill: {"communication"},
		CategoryHardSkill: {"python"},
		"alpha":           {"a"},
	})
	require.NoError(t, err)

	assert.Equal(t, []Category{CategoryHardSkill, CategorySoftSkill, "alpha", "zeta"}, tax.Categories())
}

func TestDefaultRegistry(t *testing.T) {
	reg, err := Default()
	require.NoError(t, err)

	again, err := Default()
	require.NoError(t, err)
	assert.Same(t, reg, again)

	assert.Greater(t, reg.Taxonomy().Len(), 100)
	assert.True(t, reg.Companies().Tier1.Contains("lululemon"))
	assert.True(t, reg.Signals().Barrier.LocalExperience.Contains("canadian experience"))
	assert.True(t, reg.Signals().Interview.ExpertLanguages.Contains("expert in python"))
}

func TestOccupationsResolveLongestTitle(t *testing.T) {
	reg, err := Default()
	require.NoError(t, err)

	tests := []struct {
		title    string
		code     string
		matched  string
		priority bool
		eligible bool
	}{
		{title: "Senior Machine Learning Engineer", code: "21231", matched: "machine learning engineer", priority: true, eligible: true},
		{title: "Machine Learning Scientist", code: "21211", matched: "machine learning", priority: true, eligible: true},
		{title: "Strategy Consultant", code: "11201", matched: "strategy consultant", priority: false, eligible: true},
		{title: "Technical Product Manager", code: "20012", matched: "technical product manager", priority: true, eligible: true},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			occ, ok := reg.Occupations().Resolve(tt.title)
			require.True(t, ok)
			assert.Equal(t, tt.code, occ.Code)
			assert.Equal(t, tt.matched, occ.MatchedTitle)
			assert.Equal(t, tt.priority, occ.Priority)
			assert.Equal(t, tt.eligible, occ.Eligible)
		})
	}

	_, ok := reg.Occupations().Resolve("Barista")
	assert.False(t, ok)

	unknown := reg.Occupations().Lookup("99999")
	assert.False(t, unknown.Priority)
	assert.False(t, unknown.Eligible)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte("keywords: [not, a, map]"))
	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))

	_, err = Parse([]byte("keywords:\n  tool: [pandas]\nunknown_section: true\n"))
	assert.Error(t, err, "unknown sections are rejected")

	_, err = Parse([]byte("keywords:\n  tool: [pandas]\noccupations:\n  titles:\n    - {title: analyst, code: abc}\n"))
	assert.Error(t, err, "occupation codes must be numeric")

	reg, err := Parse([]byte("keywords:\n  tool: [pandas]\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, reg.Taxonomy().Len())

	_, err = Load("/nonexistent/taxonomy.yaml")
	assert.ErrorAs(t, err, &loadErr)
}
