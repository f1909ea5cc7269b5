package store

import (
	"context"
	"fmt"
	"math"

	"github.com/spigell/jobfit/internal/posting"
)

// MedianHourlyWage is the regional median wage used by the occupation
// summary.
const MedianHourlyWage = 38.46

// OccupationCount is how many stored postings carry one occupation code.
type OccupationCount struct {
	Code        string
	Description string
	Priority    bool
	Count       int
}

// OccupationSummary describes the occupation mix of stored postings.
type OccupationSummary struct {
	Postings           int
	Occupations        []OccupationCount
	Eligible           int
	EligiblePercent    float64
	AboveMedian        int
	AboveMedianPercent float64
}

// OccupationSummary counts stored postings per occupation code, eligible
// occupations and postings paying at least the median wage. The salary
// midpoint is compared when both bounds are published.
func (s *Store) OccupationSummary(ctx context.Context) (*OccupationSummary, error) {
	summary := &OccupationSummary{Occupations: []OccupationCount{}}

	rows, err := s.db.QueryContext(ctx, `
		SELECT occupation_code, occupation_description, occupation_priority, occupation_eligible,
			salary_min, salary_max, salary_interval
		FROM jobs
		ORDER BY url`)
	if err != nil {
		return nil, fmt.Errorf("reading occupations: %w", err)
	}
	defer rows.Close()

	index := map[string]int{}
	threshold := MedianHourlyWage * posting.HoursPerYear
	for rows.Next() {
		var code, description, interval string
		var priority, eligible bool
		var minimum, maximum float64
		if err := rows.Scan(&code, &description, &priority, &eligible, &minimum, &maximum, &interval); err != nil {
			return nil, err
		}
		summary.Postings++

		if code != "" {
			i, ok := index[code]
			if !ok {
				i = len(summary.Occupations)
				index[code] = i
				summary.Occupations = append(summary.Occupations, OccupationCount{Code: code, Description: description, Priority: priority})
			}
			summary.Occupations[i].Count++
		}
		if eligible {
			summary.Eligible++
		}

		mid := minimum
		switch {
		case minimum > 0 && maximum > 0:
			mid = (minimum + maximum) / 2
		case minimum <= 0:
			mid = maximum
		}
		if mid > 0 && posting.Annualize(mid, interval) >= threshold {
			summary.AboveMedian++
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if summary.Postings > 0 {
		summary.EligiblePercent = percent(summary.Eligible, summary.Postings)
		summary.AboveMedianPercent = percent(summary.AboveMedian, summary.Postings)
	}
	return summary, nil
}

func percent(n, total int) float64 {
	return math.Round(float64(n)/float64(total)*1000) / 10
}
