package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"
	"time"

	"go.uber.org/zap"

	"github.com/rsoni/hireview/internal/extract"
	"github.com/rsoni/hireview/internal/llm"
)

const synthesizeSystemPrompt = `You are a senior technical hiring manager. You weigh evidence across an entire interview, avoid recency bias, and make decisive recommendations. You respond with valid JSON only.`

var synthesizeUserTemplate = template.Must(template.New("report-gen").Parse(`You are a senior technical hiring manager reviewing an interview.

CANDIDATE: {{.CandidateName}}
ROLE: {{.Role}}
EXPERIENCE: {{.Experience}}
SKILLS ASSESSED: {{.SkillsLine}}

INTERVIEW SUMMARY:
{{.Summary}}

SKILL SCORES:
{{.SkillScores}}

TASK: Generate a comprehensive hiring evaluation report.

Return ONLY valid JSON (no markdown):
{
  "overall_score": 0-100,
  "technical_score": 0-100,
  "communication_score": 0-100,
  "cultural_fit_score": 0-100,
  "recommendation": "strong-hire/hire/maybe/no-hire",
  "final_reasoning": "2-3 sentence summary of recommendation",
  "strengths": ["strength 1", "strength 2", "strength 3"],
  "development_areas": ["area 1", "area 2"],
  "role_fit_assessment": "detailed paragraph on role fit",
  "three_month_plan": ["goal 1", "goal 2", "goal 3"],
  "next_round_questions": ["question 1", "question 2"]
}`))

// answerExcerptLen caps how much of each answer goes into the prompt.
const answerExcerptLen = 200

// LLMConfig holds parameters for the model-backed synthesizer.
type LLMConfig struct {
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

// DefaultLLMConfig returns defaults for report generation. Single attempt
// with a timeout; a failure degrades to the deterministic synthesizer.
func DefaultLLMConfig() LLMConfig {
	return LLMConfig{
		MaxTokens:   2048,
		Temperature: 0.4,
		Timeout:     30 * time.Second,
	}
}

// LLMSynthesizer generates the report with the model provider, falling back
// to the heuristic synthesizer on any failure.
type LLMSynthesizer struct {
	provider llm.Provider
	fallback *HeuristicSynthesizer
	config   LLMConfig
	log      *zap.Logger
}

// NewLLM creates a model-backed synthesizer with a heuristic fallback.
func NewLLM(provider llm.Provider, cfg LLMConfig, log *zap.Logger) *LLMSynthesizer {
	if log == nil {
		log = zap.NewNop()
	}
	return &LLMSynthesizer{
		provider: provider,
		fallback: NewHeuristic(),
		config:   cfg,
		log:      log,
	}
}

// Synthesize asks the model for the report, degrading to the deterministic
// aggregation when the call or the parse fails.
func (s *LLMSynthesizer) Synthesize(ctx context.Context, input Input) (*Report, error) {
	if s.provider == nil {
		return s.fallback.Synthesize(ctx, input)
	}

	r, err := s.synthesizeWithModel(ctx, input)
	if err != nil {
		s.log.Warn("model report generation failed, using deterministic aggregation",
			zap.String("candidate", input.CandidateName),
			zap.Error(err),
		)
		return s.fallback.Synthesize(ctx, input)
	}
	return r, nil
}

func (s *LLMSynthesizer) synthesizeWithModel(ctx context.Context, input Input) (*Report, error) {
	ctx = llm.WithPurpose(ctx, "report-gen")
	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	summary := make([]string, 0, len(input.Answers))
	for i, a := range input.Answers {
		answer := a.AnswerText
		if len(answer) > answerExcerptLen {
			answer = answer[:answerExcerptLen]
		}
		summary = append(summary, fmt.Sprintf("Q%d: %s\nAnswer: %s...\nScore: %d/100\n",
			i+1, a.QuestionText, answer, a.OverallScore))
	}

	skillScores, err := json.MarshalIndent(input.SkillScores, "", "  ")
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	err = synthesizeUserTemplate.Execute(&buf, map[string]string{
		"CandidateName": input.CandidateName,
		"Role":          input.Role,
		"Experience":    input.Experience,
		"SkillsLine":    strings.Join(input.Skills, ", "),
		"Summary":       strings.Join(summary, "\n"),
		"SkillScores":   string(skillScores),
	})
	if err != nil {
		return nil, err
	}

	resp, err := s.provider.Generate(ctx, llm.Request{
		System: synthesizeSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buf.String()},
		},
		MaxTokens:   s.config.MaxTokens,
		Temperature: s.config.Temperature,
	})
	if err != nil {
		return nil, err
	}

	var r Report
	if !extract.Into(string(resp.Content), &r) {
		return nil, &llm.ErrInvalidResponse{Content: resp.Content}
	}
	if err := checkReport(&r); err != nil {
		return nil, &llm.ErrInvalidResponse{Content: resp.Content, Err: err}
	}
	return &r, nil
}

var validRecommendations = map[string]bool{
	RecStrongHire: true, RecHire: true, RecMaybe: true, RecNoHire: true,
}

func checkReport(r *Report) error {
	for _, score := range []int{r.OverallScore, r.TechnicalScore, r.CommunicationScore, r.CulturalFitScore} {
		if score < 0 || score > 100 {
			return fmt.Errorf("section score %d out of range", score)
		}
	}
	if !validRecommendations[r.Recommendation] {
		return fmt.Errorf("unknown recommendation %q", r.Recommendation)
	}
	return nil
}
