package scoring

import (
	"fmt"
	"math"
	"strings"
)

// SuccessBase is the realistic-success score before any signal.
const SuccessBase = 40

// Local-experience barrier penalties, checked in this order; only the first
// that applies counts.
const (
	BarrierExplicit  = -25
	BarrierWelcoming = -5
	BarrierGlobal    = -8
	BarrierRemote    = -10
	BarrierSilent    = -15
)

// Networking bonus points. The sum is capped at NetworkingCap.
const (
	NetworkingHigh       = 10
	NetworkingMedium     = 5
	NetworkingDefault    = 2
	NetworkingConnection = 5
	NetworkingCap        = 15
)

// SuccessScorer estimates the realistic probability of getting an interview.
func SuccessScorer() Scorer {
	return Scorer{
		Dimension: DimensionSuccess,
		Base:      SuccessBase,
		Rules: []Rule{
			experienceBand,
			localExperienceBarrier,
			When{
				Name:      "international_hiring",
				Predicate: func(in *Input) bool { return in.companies().InternationalHiring.Any(in.Company) },
				Delta:     10,
				Reason:    "company is known to hire international talent",
			},
			When{
				Name:      "diversity",
				Predicate: func(in *Input) bool { return in.signals().Openness.Diversity.Any(in.Description) },
				Delta:     5,
				Reason:    "description has diversity language",
			},
			FirstOf{
				{
					Name:      "no_sponsorship",
					Predicate: func(in *Input) bool { return in.signals().Openness.NoSponsorship.Any(in.Description) },
					Delta:     -10,
					Reason:    "explicitly will not sponsor",
				},
				{
					Name:      "sponsorship",
					Predicate: func(in *Input) bool { return in.signals().Openness.Sponsorship.Any(in.Description) },
					Delta:     5,
					Reason:    "mentions visa sponsorship positively",
				},
			},
			competition,
			RuleFunc(nicheSignals),
			RuleFunc(networkingSignals),
		},
	}
}

var experienceBand = FirstOf{
	{
		Name:      "senior_band",
		Predicate: func(in *Input) bool { return in.signals().Seniority.Senior.Any(in.Title) },
		Delta:     5,
		Reason:    "senior role, experience gained abroad",
	},
	{
		Name:      "leadership_band",
		Predicate: func(in *Input) bool { return in.signals().Seniority.Leadership.Any(in.Title) },
		Delta:     -5,
		Reason:    "leadership role, usually needs a local track record",
	},
	{
		Name:      "junior_band",
		Predicate: func(in *Input) bool { return in.signals().Seniority.Junior.Any(in.Title) },
		Delta:     10,
		Reason:    "junior role, easy to qualify for",
	},
	{
		Name:      "mid_band",
		Predicate: func(in *Input) bool { return !in.Title.Empty() },
		Delta:     15,
		Reason:    "mid-level role, good fit",
	},
}

var localExperienceBarrier = FirstOf{
	{
		Name:      "local_experience_required",
		Predicate: func(in *Input) bool { return in.signals().Barrier.LocalExperience.Any(in.Description) },
		Delta:     BarrierExplicit,
		Reason:    "description requires local experience",
	},
	{
		Name: "international_welcome",
		Predicate: func(in *Input) bool {
			b := in.signals().Barrier
			return b.International.Any(in.Description) && b.Welcoming.Any(in.Description)
		},
		Delta:  BarrierWelcoming,
		Reason: "description welcomes international experience",
	},
	{
		Name:      "global_work",
		Predicate: func(in *Input) bool { return in.signals().Barrier.GlobalWork.Any(in.Description) },
		Delta:     BarrierGlobal,
		Reason:    "role involves global work",
	},
	{
		Name:      "remote_barrier",
		Predicate: func(in *Input) bool { return in.Registry.Regions().Remote.Any(in.Location) },
		Delta:     BarrierRemote,
		Reason:    "remote role, less local bias",
	},
	{
		Name:      "silent",
		Predicate: func(in *Input) bool { return !in.Description.Empty() },
		Delta:     BarrierSilent,
		Reason:    "no signals about international candidates",
	},
}

var competition = FirstOf{
	{
		Name: "tier1_senior",
		Predicate: func(in *Input) bool {
			s := in.signals().Seniority
			return in.companies().Tier1.Any(in.Company) && (s.Senior.Any(in.Title) || s.Lead.Any(in.Title))
		},
		Delta:  -15,
		Reason: "senior role at a top company, extremely competitive",
	},
	{
		Name:      "tier1",
		Predicate: func(in *Input) bool { return in.companies().Tier1.Any(in.Company) },
		Delta:     -8,
		Reason:    "top company, competitive",
	},
	{
		Name:      "small_company",
		Predicate: func(in *Input) bool { return in.companies().Startups.Any(in.Company) },
		Delta:     -3,
		Reason:    "smaller company, less competition",
	},
	{
		Name:      "average",
		Predicate: func(in *Input) bool { return !in.Company.Empty() },
		Delta:     -5,
		Reason:    "average competition",
	},
}

func nicheSignals(in *Input) []Signal {
	var out []Signal
	for _, n := range in.Profile.Niches() {
		if !n.Matches(in.Title, in.Description) {
			continue
		}
		reason := n.Reason
		if reason == "" {
			reason = n.Name + " niche"
		}
		out = append(out, Signal{Rule: "niche_" + n.Name, Delta: n.Delta, Reason: reason})
	}
	return out
}

func networkingSignals(in *Input) []Signal {
	if in.Company.Empty() {
		return nil
	}

	c := in.companies()
	var (
		points  float64
		reasons []string
	)
	switch {
	case c.NetworkingHigh.Any(in.Company):
		points = NetworkingHigh
		reasons = append(reasons, "strong community presence")
	case c.NetworkingMedium.Any(in.Company):
		points = NetworkingMedium
		reasons = append(reasons, "some community presence")
	default:
		points = NetworkingDefault
		reasons = append(reasons, "baseline networking potential")
	}
	if name, ok := in.Profile.Connections().First(in.Company); ok {
		points += NetworkingConnection
		reasons = append(reasons, fmt.Sprintf("existing connection at %s", name))
	}
	if points > NetworkingCap {
		reasons = append(reasons, fmt.Sprintf("capped at %d", NetworkingCap))
	}

	return []Signal{{
		Rule:   "networking",
		Delta:  math.Min(points, NetworkingCap),
		Reason: strings.Join(reasons, "; "),
	}}
}
