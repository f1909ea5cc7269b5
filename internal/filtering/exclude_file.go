package filtering

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/jobfit/internal/posting"
)

type excludeFileFilter struct {
	toggle
	path string
}

// NewExcludeFile creates a filter that removes postings handled in an earlier
// run and recorded in the exclude file.
func NewExcludeFile() Filter {
	return &excludeFileFilter{}
}

func (f *excludeFileFilter) Name() string { return "exclude_file" }

func (f *excludeFileFilter) Validate(cfg *Config) error {
	f.path = ""
	if cfg != nil {
		f.path = strings.TrimSpace(cfg.ExcludeFile)
	}
	return nil
}

func (f *excludeFileFilter) Apply(_ context.Context, deps Deps, ps *posting.Postings) (*posting.Postings, Step, error) {
	initial := ps.Len()
	if f.path == "" {
		return ps, Step{Initial: initial, Dropped: 0, Left: ps.Len()}, nil
	}

	excluded, err := posting.LoadExcluded(f.path)
	if err != nil {
		return ps, Step{}, fmt.Errorf("getting excluded postings from file: %w", err)
	}

	removed := ps.Exclude(posting.URLField, excluded.URLs())
	if deps.Logger != nil && len(removed) > 0 {
		deps.Logger.Info("excluding postings based on exclude file",
			zap.String("path", f.path),
			zap.Strings("excluded_postings", removed),
			zap.Int("postings_left", ps.Len()),
		)
	}

	return ps, Step{Initial: initial, Dropped: len(removed), Left: ps.Len()}, nil
}

func (f *excludeFileFilter) Status() Status {
	details := map[string]string{}
	if f.path != "" {
		details["path"] = f.path
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
