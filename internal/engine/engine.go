// Package engine runs the scoring pipeline: keyword extraction, dimension
// scoring, weighted aggregation and tier classification.
package engine

import (
	"context"
	"fmt"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/jobfit/internal/keywords"
	"github.com/spigell/jobfit/internal/logger"
	"github.com/spigell/jobfit/internal/posting"
	"github.com/spigell/jobfit/internal/profile"
	"github.com/spigell/jobfit/internal/scoring"
	"github.com/spigell/jobfit/internal/taxonomy"
	"github.com/spigell/jobfit/internal/tiering"
)

// Config is the caller-supplied configuration. Zero values fall back to the
// defaults.
type Config struct {
	Weights    scoring.Weights
	Thresholds scoring.Thresholds
	Tiers      tiering.Thresholds
	// RelevantCategories limits the missing-keyword report. Empty means the
	// profile's setting.
	RelevantCategories []taxonomy.Category
}

// Engine scores postings against one profile. It holds no mutable state and
// is safe for concurrent use.
type Engine struct {
	registry   *taxonomy.Registry
	profile    *profile.Profile
	extractor  *keywords.Extractor
	scorers    *scoring.Scorers
	classifier *tiering.Classifier
	weights    scoring.Weights
	thresholds scoring.Thresholds
	logger     *zap.Logger
}

// New validates the configuration and builds an engine. Invalid weights or
// thresholds fail here with a scoring.ConfigError, before any posting is
// scored.
func New(reg *taxonomy.Registry, p *profile.Profile, cfg Config, log *zap.Logger) (*Engine, error) {
	if reg == nil {
		return nil, &scoring.ConfigError{Message: "taxonomy registry is required"}
	}
	if p == nil {
		return nil, &scoring.ConfigError{Message: "candidate profile is required"}
	}
	if log == nil {
		log = zap.NewNop()
	}

	weights := cfg.Weights
	if len(weights) == 0 {
		weights = scoring.DefaultWeights()
	}
	if err := weights.Validate(); err != nil {
		return nil, err
	}

	thresholds := cfg.Thresholds
	if thresholds == (scoring.Thresholds{}) {
		thresholds = scoring.DefaultThresholds()
	}
	if err := thresholds.Validate(); err != nil {
		return nil, err
	}

	tiers := cfg.Tiers
	if tiers == (tiering.Thresholds{}) {
		tiers = tiering.DefaultThresholds()
	}
	classifier, err := tiering.New(tiers)
	if err != nil {
		return nil, err
	}

	relevant := cfg.RelevantCategories
	if len(relevant) == 0 {
		relevant = p.RelevantCategories()
	}

	return &Engine{
		registry:   reg,
		profile:    p,
		extractor:  keywords.New(reg.Taxonomy(), relevant),
		scorers:    scoring.NewScorers(),
		classifier: classifier,
		weights:    weights,
		thresholds: thresholds,
		logger:     log,
	}, nil
}

// Score runs the full pipeline for one posting. The posting is not modified;
// callers hand the result to Posting.Apply.
func (e *Engine) Score(p *posting.Posting) (*posting.Result, error) {
	if p == nil {
		return nil, fmt.Errorf("nil posting")
	}

	log := logger.WithPosting(e.logger, p.URL, p.Title, p.Company)

	report := e.extractor.Extract(p.Text())
	in := scoring.NewInput(p.Job(), report, e.profile, e.registry)
	breakdown := e.scorers.Score(in)

	total, priority, err := scoring.Aggregate(breakdown, e.weights, e.thresholds)
	if err != nil {
		return nil, fmt.Errorf("aggregating %q: %w", p.URL, err)
	}

	assignment := e.classifier.Classify(in, breakdown)

	result := &posting.Result{
		Scores:     breakdown,
		Total:      total,
		Priority:   priority,
		Assignment: assignment,
		Keywords:   report,
	}
	if in.HasOccupation {
		occupation := in.Occupation
		result.Occupation = &occupation
	}

	if ce := log.Check(zap.DebugLevel, "scored"); ce != nil {
		ce.Write(
			zap.Float64("total", total),
			zap.String("priority", string(priority)),
			zap.String("tier", string(assignment.Tier)),
			zap.String("tier_rule", string(assignment.Rule)),
			zap.Int("matched_keywords", len(report.Matched)),
			zap.Int("missing_keywords", len(report.Missing)),
		)
	}

	return result, nil
}

// BatchOptions tune ScoreBatch.
type BatchOptions struct {
	// Workers bounds concurrency; 0 means runtime.NumCPU().
	Workers int
	// OnScored is called after each posting is scored. It must be safe for
	// concurrent use.
	OnScored func(p *posting.Posting, r *posting.Result)
}

// ScoreBatch scores postings concurrently. Results are index-aligned with
// the input. When ctx is cancelled no further postings are submitted; the
// results computed so far are returned together with the context error.
func (e *Engine) ScoreBatch(ctx context.Context, ps []*posting.Posting, opts BatchOptions) ([]*posting.Result, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make([]*posting.Result, len(ps))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	submitted := 0
	for i, p := range ps {
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			r, err := e.Score(p)
			if err != nil {
				return err
			}
			results[i] = r
			if opts.OnScored != nil {
				opts.OnScored(p, r)
			}
			return nil
		})
		submitted++
	}

	if err := g.Wait(); err != nil {
		return results, err
	}

	if submitted < len(ps) {
		e.logger.Debug("batch cancelled",
			zap.Int("submitted", submitted),
			zap.Int("total", len(ps)),
		)
		return results, ctx.Err()
	}

	return results, nil
}
