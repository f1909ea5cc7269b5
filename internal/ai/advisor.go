// Package ai describes optional model-backed helpers that work on scored
// postings. Nothing here is used while scoring.
package ai

import (
	"context"

	"github.com/spigell/jobfit/internal/posting"
	"github.com/spigell/jobfit/internal/profile"
)

// Advice is resume-tailoring guidance for one posting.
type Advice struct {
	Summary string `json:"summary"`
	// Emphasize lists held skills worth moving up in the resume.
	Emphasize []string `json:"emphasize,omitempty"`
	// Address lists gaps and how to frame them.
	Address []string `json:"address,omitempty"`
	// Bullets are suggested resume bullets built only from the candidate's
	// achievements.
	Bullets []string `json:"bullets,omitempty"`
	Raw     string   `json:"-"`
}

// Advisor produces tailoring advice for a scored posting.
type Advisor interface {
	Advise(ctx context.Context, p *posting.Posting, prof *profile.Profile) (*Advice, error)
}
