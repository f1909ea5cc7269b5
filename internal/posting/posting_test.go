package posting

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/spigell/jobfit/internal/scoring"
	"github.com/spigell/jobfit/internal/tiering"
)

func TestAnnualize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		amount   float64
		interval string
		expected float64
	}{
		{name: "hourly", amount: 50, interval: "hourly", expected: 104000},
		{name: "weekly", amount: 2000, interval: "week", expected: 104000},
		{name: "monthly", amount: 10000, interval: "Monthly", expected: 120000},
		{name: "yearly", amount: 95000, interval: "yearly", expected: 95000},
		{name: "unknown interval", amount: 95000, interval: "", expected: 95000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Annualize(tt.amount, tt.interval); got != tt.expected {
				t.Fatalf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestSalaryFloor(t *testing.T) {
	t.Parallel()

	if got := (Salary{Min: 40, Max: 60, Interval: "hour"}).Floor(); got != 83200 {
		t.Fatalf("expected min to be the floor, got %v", got)
	}
	if got := (Salary{Max: 120000}).Floor(); got != 120000 {
		t.Fatalf("expected max when min is absent, got %v", got)
	}
	if got := (Salary{}).Floor(); got != 0 {
		t.Fatalf("expected 0 for unpublished salary, got %v", got)
	}
}

func TestDecodeAliasesAndWeakTypes(t *testing.T) {
	t.Parallel()

	ps, err := Decode([]map[string]any{
		{
			"job_url":         "https://jobs.example/1",
			"title":           "Data Analyst",
			"salary_min":      "45",
			"salary_interval": "hourly",
			"job_type":        "fulltime",
			"noc_code":        21223,
			"computed":        map[string]any{"total": 99},
		},
		{
			"url":    "https://jobs.example/2",
			"salary": map[string]any{"min": 100000, "max": "120000", "currency": "CAD"},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ps.Len() != 2 {
		t.Fatalf("expected 2 postings, got %d", ps.Len())
	}

	first := ps.Items[0]
	if first.URL != "https://jobs.example/1" || first.EmploymentType != "fulltime" || first.OccupationCode != "21223" {
		t.Fatalf("aliases not applied: %+v", first)
	}
	if first.Salary.Floor() != 93600 {
		t.Fatalf("expected hourly floor 93600, got %v", first.Salary.Floor())
	}
	if first.Scored() {
		t.Fatalf("computed fields must not be read from input")
	}

	second := ps.FindByURL("https://jobs.example/2")
	if second == nil || second.Salary.Max != 120000 || second.Salary.Currency != "CAD" {
		t.Fatalf("nested salary not decoded: %+v", second)
	}
}

func TestDecodeKeys(t *testing.T) {
	t.Parallel()

	records := []map[string]any{
		{"title": "Analyst", "company": "Acme"},
		{"url": "https://jobs.example/a", "title": "old"},
		{"url": "https://jobs.example/a", "title": "new"},
	}
	first, err := Decode(records)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, _ := Decode(records)

	if first.Len() != 2 {
		t.Fatalf("expected duplicate URL to collapse, got %d postings", first.Len())
	}
	if !strings.HasPrefix(first.Items[0].URL, "urn:uuid:") || first.Items[0].URL != second.Items[0].URL {
		t.Fatalf("expected a stable content key, got %q and %q", first.Items[0].URL, second.Items[0].URL)
	}
	if first.Items[1].Title != "new" {
		t.Fatalf("expected later record to win, got %q", first.Items[1].Title)
	}
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "postings.yaml")
	if err := os.WriteFile(yamlPath, []byte("- url: https://jobs.example/1\n  title: Data Scientist\n  salary:\n    min: 150000\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	ps, err := LoadFile(yamlPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ps.Len() != 1 || ps.Items[0].Salary.Min != 150000 {
		t.Fatalf("unexpected postings: %+v", ps.Items)
	}

	jsonPath := filepath.Join(dir, "postings.json")
	if err := os.WriteFile(jsonPath, []byte(`{"items": [{"url": "u1"}, {"url": "u2"}]}`), 0o600); err != nil {
		t.Fatal(err)
	}
	ps, err = LoadFile(jsonPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(ps.URLs(), []string{"u1", "u2"}) {
		t.Fatalf("unexpected urls: %v", ps.URLs())
	}

	badPath := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(badPath, []byte(`{"items": 1}`), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(badPath); err == nil {
		t.Fatalf("expected an error for a non-list document")
	}
}

func scored(url, company string, total float64, tier tiering.Tier) *Posting {
	return &Posting{
		URL:     url,
		Company: company,
		Computed: &Result{
			Total:      total,
			Priority:   scoring.DefaultThresholds().Priority(total),
			Assignment: tiering.Assignment{Tier: tier},
		},
	}
}

func TestExcludeKeepsOrder(t *testing.T) {
	t.Parallel()

	ps := &Postings{Items: []*Posting{
		scored("u1", "Acme", 50, tiering.TierB),
		scored("u2", "Globex", 70, tiering.TierC),
		scored("u3", "ACME ", 90, tiering.TierA),
		scored("u4", "Initech", 40, tiering.TierB),
	}}

	excluded := ps.Exclude(CompanyField, []string{"acme"})
	if !reflect.DeepEqual(excluded, []string{"u1", "u3"}) {
		t.Fatalf("unexpected excluded: %v", excluded)
	}
	if !reflect.DeepEqual(ps.URLs(), []string{"u2", "u4"}) {
		t.Fatalf("unexpected remaining: %v", ps.URLs())
	}

	excluded = ps.Exclude(TierField, []string{"B"})
	if !reflect.DeepEqual(excluded, []string{"u4"}) {
		t.Fatalf("unexpected excluded by tier: %v", excluded)
	}
}

func TestSortByTotal(t *testing.T) {
	t.Parallel()

	ps := &Postings{Items: []*Posting{
		scored("b", "", 60, tiering.TierB),
		{URL: "unscored"},
		scored("c", "", 80, tiering.TierA),
		scored("a", "", 60, tiering.TierC),
	}}
	ps.SortByTotal()

	if !reflect.DeepEqual(ps.URLs(), []string{"c", "a", "b", "unscored"}) {
		t.Fatalf("unexpected order: %v", ps.URLs())
	}
}

func TestReportByTier(t *testing.T) {
	t.Parallel()

	ps := &Postings{Items: []*Posting{
		scored("u1", "Acme", 85, tiering.TierA),
		scored("u2", "Globex", 62.5, tiering.TierA),
		{URL: "unscored"},
	}}
	ps.Items[0].Salary = Salary{Min: 150000, Max: 170000, Currency: "CAD"}

	report := ps.ReportByTier()
	entries := report[tiering.TierA]
	if len(entries) != 2 || len(report) != 1 {
		t.Fatalf("unexpected report: %v", report)
	}
	if entries[0]["salary"] != "150,000-170,000 CAD" {
		t.Fatalf("unexpected salary: %q", entries[0]["salary"])
	}
	if entries[1]["total"] != "62.5" || entries[1]["priority"] != "MEDIUM" {
		t.Fatalf("unexpected entry: %v", entries[1])
	}
}

func TestFormatSalary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		salary   Salary
		expected string
	}{
		{name: "unpublished", salary: Salary{}, expected: "n/a"},
		{name: "hourly lower bound", salary: Salary{Min: 45, Interval: "hourly"}, expected: "from 45 per hour"},
		{name: "monthly upper bound", salary: Salary{Max: 9000, Currency: "CAD", Interval: "monthly"}, expected: "up to 9,000 CAD per month"},
		{name: "yearly lower bound", salary: Salary{Min: 120000, Interval: "yearly"}, expected: "from 120,000"},
		{name: "yearly range", salary: Salary{Min: 120000, Max: 140000, Interval: "yearly"}, expected: "120,000-140,000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := FormatSalary(tt.salary); got != tt.expected {
				t.Fatalf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestExcludedFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "excluded.json")

	excluded, err := LoadExcluded(path)
	if err != nil {
		t.Fatalf("missing file must be empty, got %v", err)
	}
	if len(excluded.Items) != 0 {
		t.Fatalf("expected empty list")
	}

	ps := &Postings{Items: []*Posting{scored("u1", "Acme", 50, tiering.TierB), scored("u2", "Globex", 50, tiering.TierC)}}
	excluded.Append(ps.ToExcluded())
	excluded.Append(ps.ToExcluded())
	if err := excluded.ToFile(path); err != nil {
		t.Fatalf("writing: %v", err)
	}

	loaded, err := LoadExcluded(path)
	if err != nil {
		t.Fatalf("reading: %v", err)
	}
	if !reflect.DeepEqual(loaded.URLs(), []string{"u1", "u2"}) {
		t.Fatalf("unexpected urls: %v", loaded.URLs())
	}
	if loaded.Items[1].Tier != "C" {
		t.Fatalf("expected tier to be kept, got %q", loaded.Items[1].Tier)
	}
}
