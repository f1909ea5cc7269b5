package filtering

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/jobfit/internal/posting"
)

type excludedCompaniesFilter struct {
	toggle
	companies []string
}

// NewExcludedCompanies creates a filter that removes postings from companies
// listed in the config. Names match case-insensitively.
func NewExcludedCompanies() Filter {
	return &excludedCompaniesFilter{}
}

func (f *excludedCompaniesFilter) Name() string { return "excluded_companies" }

func (f *excludedCompaniesFilter) Validate(cfg *Config) error {
	f.companies = nil
	if cfg != nil {
		for _, c := range cfg.ExcludeCompanies {
			if c = strings.TrimSpace(c); c != "" {
				f.companies = append(f.companies, c)
			}
		}
	}
	return nil
}

func (f *excludedCompaniesFilter) Apply(_ context.Context, deps Deps, ps *posting.Postings) (*posting.Postings, Step, error) {
	initial := ps.Len()
	if len(f.companies) == 0 {
		return ps, Step{Initial: initial, Dropped: 0, Left: ps.Len()}, nil
	}

	excluded := ps.Exclude(posting.CompanyField, f.companies)
	if deps.Logger != nil && len(excluded) > 0 {
		deps.Logger.Info("excluding postings by company",
			zap.Strings("excluded_companies", f.companies),
			zap.Strings("excluded_postings", excluded),
			zap.Int("postings_left", ps.Len()),
		)
	}

	return ps, Step{Initial: initial, Dropped: len(excluded), Left: ps.Len()}, nil
}

func (f *excludedCompaniesFilter) Status() Status {
	details := map[string]string{}
	if len(f.companies) > 0 {
		details["companies"] = strings.Join(f.companies, ",")
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
