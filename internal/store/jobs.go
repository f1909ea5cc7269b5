package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/jobfit/internal/posting"
	"github.com/spigell/jobfit/internal/profile"
	"github.com/spigell/jobfit/internal/scoring"
	"github.com/spigell/jobfit/internal/tiering"
)

// Run describes one saved scoring pass.
type Run struct {
	ID        string
	StartedAt time.Time
	Saved     int
	Skipped   int
}

// SaveRun stores every scored posting under a new run. A posting already
// stored under the same URL is replaced together with its skill mentions.
// Unscored postings are skipped.
func (s *Store) SaveRun(ctx context.Context, ps *posting.Postings, prof *profile.Profile) (*Run, error) {
	run := &Run{ID: uuid.NewString(), StartedAt: time.Now().UTC()}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	profileName := ""
	if prof != nil {
		profileName = prof.Name()
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, profile) VALUES (?, ?, ?)`,
		run.ID, run.StartedAt.Format(time.RFC3339), profileName,
	); err != nil {
		return nil, fmt.Errorf("inserting run: %w", err)
	}

	for _, p := range ps.Items {
		if !p.Scored() {
			run.Skipped++
			continue
		}
		if err := saveJob(ctx, tx, run, p, prof); err != nil {
			return nil, fmt.Errorf("saving %q: %w", p.URL, err)
		}
		run.Saved++
	}

	if _, err := tx.ExecContext(ctx, `UPDATE runs SET postings = ? WHERE id = ?`, run.Saved, run.ID); err != nil {
		return nil, fmt.Errorf("updating run: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	s.logger.Info("run saved",
		zap.String("run_id", run.ID),
		zap.Int("saved", run.Saved),
		zap.Int("skipped", run.Skipped),
	)
	return run, nil
}

func saveJob(ctx context.Context, tx *sql.Tx, run *Run, p *posting.Posting, prof *profile.Profile) error {
	c := p.Computed
	computed, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding computed fields: %w", err)
	}

	var code, description string
	var priority, eligible bool
	if c.Occupation != nil {
		code = c.Occupation.Code
		description = c.Occupation.Description
		priority = c.Occupation.Priority
		eligible = c.Occupation.Eligible
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM skill_mentions WHERE job_url = ?`, p.URL); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT OR REPLACE INTO jobs (
			url, run_id, title, company, location, description, source, posted_at, employment_type,
			salary_min, salary_max, salary_currency, salary_interval,
			occupation_code, occupation_description, occupation_priority, occupation_eligible,
			score_skills, score_immigration, score_interview, score_salary, score_company, score_success,
			score_total, priority, tier, computed, scored_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.URL, run.ID, p.Title, p.Company, p.Location, p.Description, p.Source, p.PostedAt, p.EmploymentType,
		p.Salary.Min, p.Salary.Max, p.Salary.Currency, p.Salary.Interval,
		code, description, priority, eligible,
		c.Scores.Value(scoring.DimensionSkills),
		c.Scores.Value(scoring.DimensionImmigration),
		c.Scores.Value(scoring.DimensionInterview),
		c.Scores.Value(scoring.DimensionSalary),
		c.Scores.Value(scoring.DimensionCompany),
		c.Scores.Value(scoring.DimensionSuccess),
		c.Total, string(c.Priority), string(c.Assignment.Tier), string(computed), run.StartedAt.Format(time.RFC3339),
	); err != nil {
		return err
	}

	for _, m := range c.Keywords.Matched {
		has := prof != nil && prof.Has(m.Keyword)
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO skill_mentions (job_url, keyword, category, user_has) VALUES (?, ?, ?, ?)`,
			p.URL, m.Keyword, string(m.Category), has,
		); err != nil {
			return err
		}
	}
	return nil
}

const selectJob = `
	SELECT url, title, company, location, description, source, posted_at, employment_type,
		salary_min, salary_max, salary_currency, salary_interval, occupation_code, computed
	FROM jobs`

type scanner interface {
	Scan(dest ...any) error
}

func scanJob(row scanner) (*posting.Posting, error) {
	var p posting.Posting
	var computed string
	if err := row.Scan(
		&p.URL, &p.Title, &p.Company, &p.Location, &p.Description, &p.Source, &p.PostedAt, &p.EmploymentType,
		&p.Salary.Min, &p.Salary.Max, &p.Salary.Currency, &p.Salary.Interval, &p.OccupationCode, &computed,
	); err != nil {
		return nil, err
	}

	var r posting.Result
	if err := json.Unmarshal([]byte(computed), &r); err != nil {
		return nil, fmt.Errorf("decoding computed fields of %q: %w", p.URL, err)
	}
	p.Apply(&r)
	return &p, nil
}

// Get returns the stored posting with url.
func (s *Store) Get(ctx context.Context, url string) (*posting.Posting, error) {
	p, err := scanJob(s.db.QueryRowContext(ctx, selectJob+` WHERE url = ?`, url))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Filter narrows List. Zero values match everything.
type Filter struct {
	Tiers           []tiering.Tier
	MinimumPriority scoring.Priority
	Limit           int
}

// List returns stored postings, highest total first.
func (s *Store) List(ctx context.Context, f Filter) (*posting.Postings, error) {
	var where []string
	var args []any

	if len(f.Tiers) > 0 {
		marks := make([]string, 0, len(f.Tiers))
		for _, t := range f.Tiers {
			marks = append(marks, "?")
			args = append(args, string(t))
		}
		where = append(where, "tier IN ("+strings.Join(marks, ", ")+")")
	}
	if f.MinimumPriority != "" {
		var allowed []string
		for _, p := range []scoring.Priority{scoring.PriorityHigh, scoring.PriorityMedium, scoring.PriorityLow} {
			if p.Rank() >= f.MinimumPriority.Rank() {
				allowed = append(allowed, "?")
				args = append(args, string(p))
			}
		}
		where = append(where, "priority IN ("+strings.Join(allowed, ", ")+")")
	}

	query := selectJob
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY score_total DESC, url ASC"
	if f.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, f.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ps := &posting.Postings{Items: []*posting.Posting{}}
	for rows.Next() {
		p, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		ps.Items = append(ps.Items, p)
	}
	return ps, rows.Err()
}
