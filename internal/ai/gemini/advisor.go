package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/spigell/jobfit/internal/ai"
	"github.com/spigell/jobfit/internal/logger"
	"github.com/spigell/jobfit/internal/posting"
	"github.com/spigell/jobfit/internal/profile"
	"github.com/spigell/jobfit/internal/utils"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, system, message string) (string, error)
}

// Advisor asks Gemini for resume-tailoring advice.
type Advisor struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

//go:embed prompt.md
var promptTemplate string

const systemInstruction = "You are a careful resume coach. You only use facts the candidate supplied."

const defaultMaxLogLength = 200

var _ ai.Advisor = (*Advisor)(nil)

func NewAdvisor(generator contentGenerator, log *zap.Logger, maxLogLength int) *Advisor {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Advisor{
		generator: generator,
		logger:    log,
		maxLogLen: maxLogLength,
	}
}

// Advise builds a prompt from the posting's keyword report and tier and the
// candidate's visible achievements. The posting must be scored.
func (a *Advisor) Advise(ctx context.Context, p *posting.Posting, prof *profile.Profile) (*ai.Advice, error) {
	if p == nil {
		return nil, fmt.Errorf("posting is required")
	}
	if !p.Scored() {
		return nil, fmt.Errorf("posting %q is not scored", p.URL)
	}
	if prof == nil {
		return nil, fmt.Errorf("profile is required")
	}

	prompt := buildPrompt(p, prof)
	log := logger.WithPosting(a.logger, p.URL, p.Title, p.Company)

	log.Debug("gemini generate content request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.Truncate(prompt, a.maxLogLen)),
	)

	raw, err := a.generator.GenerateContent(ctx, systemInstruction, prompt)
	if err != nil {
		return nil, err
	}

	log.Debug("gemini generate content response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.Truncate(raw, a.maxLogLen)),
	)

	advice, err := parseResponse(raw)
	if err != nil {
		return nil, err
	}
	advice.Raw = raw
	return advice, nil
}

func buildPrompt(p *posting.Posting, prof *profile.Profile) string {
	c := p.Computed

	gaps := make([]string, 0)
	for _, m := range c.Keywords.Gaps(prof) {
		gaps = append(gaps, m.Keyword)
	}

	var achievements strings.Builder
	for _, item := range prof.VisibleAchievements() {
		achievements.WriteString("- ")
		achievements.WriteString(item.Fact)
		if item.Value != nil {
			achievements.WriteString(" (value: ")
			achievements.WriteString(strconv.FormatFloat(*item.Value, 'f', -1, 64))
			if item.Unit != "" {
				achievements.WriteString(" " + item.Unit)
			}
			achievements.WriteString(")")
		}
		achievements.WriteString("\n")
	}

	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Posting: {{TITLE}} at {{COMPANY}}\nMatched: {{MATCHED}}\nGaps: {{GAPS}}\nAchievements:\n{{ACHIEVEMENTS}}\nJSON Response:"
	}

	r := strings.NewReplacer(
		"{{TITLE}}", orNone(p.Title),
		"{{COMPANY}}", orNone(p.Company),
		"{{LOCATION}}", orNone(p.Location),
		"{{TIER}}", string(c.Assignment.Tier),
		"{{TIER_LABEL}}", c.Assignment.Tier.Label(),
		"{{TOTAL}}", strconv.FormatFloat(c.Total, 'f', 1, 64),
		"{{PRIORITY}}", string(c.Priority),
		"{{MATCHED}}", joinOrNone(c.Keywords.MatchedKeywords()),
		"{{GAPS}}", joinOrNone(gaps),
		"{{MISSING}}", joinOrNone(c.Keywords.MissingKeywords()),
		"{{ACHIEVEMENTS}}", orNone(strings.TrimSpace(achievements.String())),
	)
	return r.Replace(template)
}

func orNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return "none"
	}
	return s
}

func joinOrNone(items []string) string {
	return orNone(strings.Join(items, ", "))
}

func parseResponse(raw string) (*ai.Advice, error) {
	cleaned := extractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	return &ai.Advice{
		Summary:   coerceString(data["summary"]),
		Emphasize: coerceStrings(data["emphasize"]),
		Address:   coerceStrings(data["address"]),
		Bullets:   coerceStrings(data["bullets"]),
	}, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func coerceStrings(v any) []string {
	switch val := v.(type) {
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s := coerceString(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		if s := strings.TrimSpace(val); s != "" {
			return []string{s}
		}
		return nil
	default:
		return nil
	}
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case fmt.Stringer:
		return strings.TrimSpace(val.String())
	default:
		if v == nil {
			return ""
		}
		bytes, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(bytes)
	}
}
