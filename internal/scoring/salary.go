package scoring

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// SalaryNeutral is the salary score when no salary is published.
const SalaryNeutral = 50

// SalaryStep maps an annual salary floor to a score.
type SalaryStep struct {
	Floor float64
	Score float64
}

// SalarySteps is ordered from the highest floor down; the first step the
// salary reaches applies. Below the last step the score is SalaryMinimum.
var SalarySteps = []SalaryStep{
	{Floor: 145000, Score: 100},
	{Floor: 120000, Score: 90},
	{Floor: 100000, Score: 80},
	{Floor: 85000, Score: 65},
	{Floor: 70000, Score: 50},
	{Floor: 55000, Score: 30},
}

// SalaryMinimum is the score of a salary below every step.
const SalaryMinimum = 15

// SalaryScorer scores the annual salary floor. The base is 0 and exactly one
// signal sets the value.
func SalaryScorer() Scorer {
	return Scorer{
		Dimension: DimensionSalary,
		Base:      0,
		Rules:     []Rule{RuleFunc(salarySignals)},
	}
}

func salarySignals(in *Input) []Signal {
	floor := in.Job.SalaryFloor
	if floor <= 0 {
		return []Signal{{Rule: "no_salary", Delta: SalaryNeutral, Reason: "salary not published"}}
	}

	amount := "$" + humanize.Comma(int64(floor))
	for _, step := range SalarySteps {
		if floor >= step.Floor {
			return []Signal{{
				Rule:   "salary_step",
				Delta:  step.Score,
				Reason: fmt.Sprintf("%s at or above $%s", amount, humanize.Comma(int64(step.Floor))),
			}}
		}
	}
	return []Signal{{Rule: "salary_low", Delta: SalaryMinimum, Reason: fmt.Sprintf("%s below every step", amount)}}
}
