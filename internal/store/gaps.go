package store

import (
	"context"
	"fmt"
	"sort"

	"github.com/dustin/go-humanize"
)

// DefaultRecommendations is how many missing skills get a recommendation.
const DefaultRecommendations = 6

// SkillStat is how often a keyword appears across stored postings.
type SkillStat struct {
	Keyword   string
	Category  string
	Frequency int
	// Percent of analyzed postings mentioning the keyword, one decimal.
	Percent float64
}

// CategoryStat counts keyword mentions per category.
type CategoryStat struct {
	Category string
	Has      int
	Missing  int
	Total    int
}

// GapReport aggregates keyword mentions across every stored posting.
type GapReport struct {
	Postings        int
	Missing         []SkillStat
	Held            []SkillStat
	Categories      []CategoryStat
	Recommendations []string
}

// SkillGaps aggregates skill mentions into a gap report. Up to limit missing
// skills get a recommendation; limit <= 0 uses DefaultRecommendations.
func (s *Store) SkillGaps(ctx context.Context, limit int) (*GapReport, error) {
	if limit <= 0 {
		limit = DefaultRecommendations
	}

	report := &GapReport{
		Missing:         []SkillStat{},
		Held:            []SkillStat{},
		Categories:      []CategoryStat{},
		Recommendations: []string{},
	}

	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(DISTINCT job_url) FROM skill_mentions`,
	).Scan(&report.Postings); err != nil {
		return nil, fmt.Errorf("counting postings: %w", err)
	}
	if report.Postings == 0 {
		return report, nil
	}

	var err error
	if report.Missing, err = s.skillStats(ctx, false, report.Postings); err != nil {
		return nil, err
	}
	if report.Held, err = s.skillStats(ctx, true, report.Postings); err != nil {
		return nil, err
	}
	if report.Categories, err = s.categoryStats(ctx); err != nil {
		return nil, err
	}

	for i, stat := range report.Missing {
		if i == limit {
			break
		}
		report.Recommendations = append(report.Recommendations,
			fmt.Sprintf("Learn %s: appears in %s%% of scored postings", stat.Keyword, humanize.Ftoa(stat.Percent)))
	}

	return report, nil
}

func (s *Store) skillStats(ctx context.Context, has bool, total int) ([]SkillStat, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT keyword, MIN(category), COUNT(DISTINCT job_url) AS freq
		FROM skill_mentions
		WHERE user_has = ?
		GROUP BY keyword
		ORDER BY freq DESC, keyword ASC`, has)
	if err != nil {
		return nil, fmt.Errorf("aggregating skills: %w", err)
	}
	defer rows.Close()

	stats := []SkillStat{}
	for rows.Next() {
		var stat SkillStat
		if err := rows.Scan(&stat.Keyword, &stat.Category, &stat.Frequency); err != nil {
			return nil, err
		}
		stat.Percent = percent(stat.Frequency, total)
		stats = append(stats, stat)
	}
	return stats, rows.Err()
}

func (s *Store) categoryStats(ctx context.Context) ([]CategoryStat, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT category, user_has, COUNT(DISTINCT keyword || '|' || job_url)
		FROM skill_mentions
		GROUP BY category, user_has`)
	if err != nil {
		return nil, fmt.Errorf("aggregating categories: %w", err)
	}
	defer rows.Close()

	byCategory := map[string]*CategoryStat{}
	for rows.Next() {
		var category string
		var has bool
		var count int
		if err := rows.Scan(&category, &has, &count); err != nil {
			return nil, err
		}
		stat, ok := byCategory[category]
		if !ok {
			stat = &CategoryStat{Category: category}
			byCategory[category] = stat
		}
		if has {
			stat.Has += count
		} else {
			stat.Missing += count
		}
		stat.Total += count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	stats := make([]CategoryStat, 0, len(byCategory))
	for _, stat := range byCategory {
		stats = append(stats, *stat)
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Total != stats[j].Total {
			return stats[i].Total > stats[j].Total
		}
		return stats[i].Category < stats[j].Category
	})
	return stats, nil
}
