package scoring

import "fmt"

// ImmigrationBase is the immigration score before any signal.
const ImmigrationBase = 50

// LocalExperiencePenalty is applied by the immigration scorer when the
// description requires local work experience.
const LocalExperiencePenalty = -10

// ImmigrationScorer scores how well a posting fits the priority-occupation
// immigration pathway.
func ImmigrationScorer() Scorer {
	return Scorer{
		Dimension: DimensionImmigration,
		Base:      ImmigrationBase,
		Rules: []Rule{
			RuleFunc(func(in *Input) []Signal {
				if !in.HasOccupation || !in.Occupation.Priority {
					return nil
				}
				return []Signal{{
					Rule:   "priority_occupation",
					Delta:  30,
					Reason: fmt.Sprintf("occupation %s is a priority occupation", in.Occupation.Code),
				}}
			}),
			When{
				Name:      "priority_title",
				Predicate: func(in *Input) bool { return in.signals().Roles.Priority.Any(in.Title) },
				Delta:     10,
				Reason:    "title aligns with a priority occupation",
			},
			FirstOf{
				{
					Name:      "target_region",
					Predicate: func(in *Input) bool { return in.Registry.Regions().Target.Any(in.Location) },
					Delta:     10,
					Reason:    "located in the target region",
				},
				{
					Name:      "remote",
					Predicate: func(in *Input) bool { return in.Registry.Regions().Remote.Any(in.Location) },
					Delta:     5,
					Reason:    "remote role",
				},
				{
					Name:      "in_country",
					Predicate: func(in *Input) bool { return in.Registry.Regions().Country.Any(in.Location) },
					Delta:     3,
					Reason:    "located in the target country",
				},
			},
			FirstOf{
				{
					Name:      "full_time",
					Predicate: func(in *Input) bool { return in.signals().Employment.FullTime.Any(in.EmploymentType) },
					Delta:     5,
					Reason:    "full-time employment",
				},
				{
					Name:      "temporary",
					Predicate: func(in *Input) bool { return in.signals().Employment.Temporary.Any(in.EmploymentType) },
					Delta:     -15,
					Reason:    "contract or temporary employment",
				},
			},
			When{
				Name:      "permanent_language",
				Predicate: func(in *Input) bool { return in.signals().Employment.PermanentLanguage.Any(in.Description) },
				Delta:     5,
				Reason:    "description mentions a permanent or full-time position",
			},
			FirstOf{
				{
					Name: "senior",
					Predicate: func(in *Input) bool {
						s := in.signals().Seniority
						return s.Senior.Any(in.Title) && !s.Staff.Any(in.Title)
					},
					Delta:  5,
					Reason: "senior title",
				},
				{
					Name:      "lead",
					Predicate: func(in *Input) bool { return in.signals().Seniority.Lead.Any(in.Title) },
					Delta:     3,
					Reason:    "lead title",
				},
				{
					Name:      "junior",
					Predicate: func(in *Input) bool { return in.signals().Seniority.Junior.Any(in.Title) },
					Delta:     -5,
					Reason:    "junior or entry-level title",
				},
			},
			When{
				Name:      "local_experience_required",
				Predicate: func(in *Input) bool { return in.signals().Barrier.LocalExperience.Any(in.Description) },
				Delta:     LocalExperiencePenalty,
				Reason:    "description requires local work experience",
			},
		},
	}
}
