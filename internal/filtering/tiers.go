package filtering

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/jobfit/internal/posting"
	"github.com/spigell/jobfit/internal/tiering"
)

type tiersFilter struct {
	toggle
	tiers []string
}

// NewTiers creates a filter that keeps only postings in the configured tiers.
func NewTiers() Filter {
	return &tiersFilter{}
}

func (f *tiersFilter) Name() string { return "tiers" }

func (f *tiersFilter) Validate(cfg *Config) error {
	f.tiers = nil
	if cfg == nil {
		return nil
	}
	for _, raw := range cfg.Tiers {
		t, err := tiering.ParseTier(raw)
		if err != nil {
			return err
		}
		f.tiers = append(f.tiers, string(t))
	}
	return nil
}

func (f *tiersFilter) Apply(_ context.Context, deps Deps, ps *posting.Postings) (*posting.Postings, Step, error) {
	initial := ps.Len()
	if len(f.tiers) == 0 {
		return ps, Step{Initial: initial, Dropped: 0, Left: ps.Len()}, nil
	}

	keep := make(map[string]struct{}, len(f.tiers))
	for _, t := range f.tiers {
		keep[t] = struct{}{}
	}
	excluded := ps.RemoveIf(func(p *posting.Posting) bool {
		_, ok := keep[p.GetStringField(posting.TierField)]
		return !ok
	})
	if deps.Logger != nil && len(excluded) > 0 {
		deps.Logger.Info("excluding postings outside selected tiers",
			zap.Strings("tiers", f.tiers),
			zap.Strings("excluded_postings", excluded),
			zap.Int("postings_left", ps.Len()),
		)
	}

	return ps, Step{Initial: initial, Dropped: len(excluded), Left: ps.Len()}, nil
}

func (f *tiersFilter) Status() Status {
	details := map[string]string{}
	if len(f.tiers) > 0 {
		details["tiers"] = strings.Join(f.tiers, ",")
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
