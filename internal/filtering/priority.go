package filtering

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/jobfit/internal/posting"
	"github.com/spigell/jobfit/internal/scoring"
)

type minimumPriorityFilter struct {
	toggle
	minimum scoring.Priority
}

// NewMinimumPriority creates a filter that removes postings whose priority is
// below the configured label. Unscored postings are removed too.
func NewMinimumPriority() Filter {
	return &minimumPriorityFilter{}
}

func (f *minimumPriorityFilter) Name() string { return "minimum_priority" }

func (f *minimumPriorityFilter) Validate(cfg *Config) error {
	f.minimum = ""
	if cfg == nil || strings.TrimSpace(cfg.MinimumPriority) == "" {
		return nil
	}
	p, err := scoring.ParsePriority(cfg.MinimumPriority)
	if err != nil {
		return err
	}
	f.minimum = p
	return nil
}

func (f *minimumPriorityFilter) Apply(_ context.Context, deps Deps, ps *posting.Postings) (*posting.Postings, Step, error) {
	initial := ps.Len()
	if f.minimum == "" {
		return ps, Step{Initial: initial, Dropped: 0, Left: ps.Len()}, nil
	}

	excluded := ps.RemoveIf(func(p *posting.Posting) bool {
		return !p.Scored() || p.Computed.Priority.Rank() < f.minimum.Rank()
	})
	if deps.Logger != nil && len(excluded) > 0 {
		deps.Logger.Info("excluding postings below minimum priority",
			zap.String("minimum_priority", string(f.minimum)),
			zap.Strings("excluded_postings", excluded),
			zap.Int("postings_left", ps.Len()),
		)
	}

	return ps, Step{Initial: initial, Dropped: len(excluded), Left: ps.Len()}, nil
}

func (f *minimumPriorityFilter) Status() Status {
	details := map[string]string{}
	if f.minimum != "" {
		details["minimum"] = string(f.minimum)
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
