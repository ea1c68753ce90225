package scoring

import (
	"bytes"
	"context"
	"strings"
	"text/template"
	"time"

	"go.uber.org/zap"

	"github.com/rsoni/hireview/internal/extract"
	"github.com/rsoni/hireview/internal/llm"
)

const analyzeSystemPrompt = `You are an expert technical interviewer analyzing a candidate's answer. You evaluate technical accuracy, depth, communication, and completeness. You respond with valid JSON only.`

var analyzeUserTemplate = template.Must(template.New("answer-eval").Parse(`You are an expert technical interviewer analyzing a candidate's answer.

QUESTION: {{.Question}}
SKILL TESTED: {{.Skill}}
DIFFICULTY: {{.Difficulty}}

EXPECTED KEY POINTS:
{{.Points}}

CANDIDATE'S ANSWER:
{{.Answer}}

TASK: Analyze the answer comprehensively and provide structured feedback.

Return ONLY valid JSON (no markdown):
{
  "overall_score": 0-100,
  "key_points_covered": ["list of points they mentioned"],
  "missing_points": ["important points they missed"],
  "communication_quality": "poor/adequate/good/excellent",
  "technical_accuracy": "poor/adequate/good/excellent",
  "depth_of_knowledge": "superficial/adequate/good/deep",
  "feedback_to_candidate": "constructive 2-3 sentence feedback"
}`))

// LLMConfig holds parameters for the model-backed scorer.
type LLMConfig struct {
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

// DefaultLLMConfig returns defaults for answer evaluation. Scoring sits on
// the submit-answer path, so the timeout is short and there is no retry:
// a slow or failing provider hands off to the heuristic instead.
func DefaultLLMConfig() LLMConfig {
	return LLMConfig{
		MaxTokens:   1024,
		Temperature: 0.3,
		Timeout:     20 * time.Second,
	}
}

// LLMScorer evaluates answers with the model provider, falling back to the
// heuristic scorer when the call fails or the response cannot be parsed.
type LLMScorer struct {
	provider llm.Provider
	fallback *HeuristicScorer
	config   LLMConfig
	log      *zap.Logger
}

// NewLLM creates a model-backed scorer with a heuristic fallback.
func NewLLM(provider llm.Provider, cfg LLMConfig, log *zap.Logger) *LLMScorer {
	if log == nil {
		log = zap.NewNop()
	}
	return &LLMScorer{
		provider: provider,
		fallback: NewHeuristic(),
		config:   cfg,
		log:      log,
	}
}

// Score asks the model to evaluate the answer. Any failure along the way
// (provider error, unparseable output, malformed analysis) degrades to the
// heuristic result rather than surfacing an error to the caller.
func (s *LLMScorer) Score(ctx context.Context, input AnswerInput) (*Analysis, error) {
	if s.provider == nil {
		return s.fallback.Score(ctx, input)
	}

	analysis, err := s.scoreWithModel(ctx, input)
	if err != nil {
		s.log.Warn("model answer evaluation failed, using heuristic",
			zap.String("skill", input.SkillTested),
			zap.Error(err),
		)
		return s.fallback.Score(ctx, input)
	}
	return analysis, nil
}

func (s *LLMScorer) scoreWithModel(ctx context.Context, input AnswerInput) (*Analysis, error) {
	ctx = llm.WithPurpose(ctx, "answer-eval")
	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	points := make([]string, 0, len(input.ExpectedPoints))
	for _, p := range input.ExpectedPoints {
		points = append(points, "- "+p)
	}

	var buf bytes.Buffer
	err := analyzeUserTemplate.Execute(&buf, map[string]string{
		"Question":   input.QuestionText,
		"Skill":      input.SkillTested,
		"Difficulty": input.Difficulty,
		"Points":     strings.Join(points, "\n"),
		"Answer":     input.AnswerText,
	})
	if err != nil {
		return nil, err
	}

	// No schema here: the evaluation prompt predates structured output and
	// some providers refuse schemas with free-form feedback fields, so the
	// response is mined out of the raw text instead.
	resp, err := s.provider.Generate(ctx, llm.Request{
		System: analyzeSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buf.String()},
		},
		MaxTokens:   s.config.MaxTokens,
		Temperature: s.config.Temperature,
	})
	if err != nil {
		return nil, err
	}

	var analysis Analysis
	if !extract.Into(string(resp.Content), &analysis) {
		return nil, &llm.ErrInvalidResponse{Content: resp.Content}
	}
	if err := checkAnalysis(&analysis); err != nil {
		return nil, &llm.ErrInvalidResponse{Content: resp.Content, Err: err}
	}
	return &analysis, nil
}

var (
	validRatings = map[string]bool{
		RatingPoor: true, RatingAdequate: true, RatingGood: true, RatingExcellent: true,
	}
	validDepths = map[string]bool{
		DepthSuperficial: true, DepthAdequate: true, DepthGood: true, DepthDeep: true,
	}
)

// checkAnalysis rejects model output that parsed but is out of shape.
func checkAnalysis(a *Analysis) error {
	switch {
	case a.OverallScore < 0 || a.OverallScore > 100:
		return errOutOfShape("overall_score out of range")
	case !validRatings[a.Communication]:
		return errOutOfShape("unknown communication_quality")
	case !validRatings[a.Technical]:
		return errOutOfShape("unknown technical_accuracy")
	case !validDepths[a.Depth]:
		return errOutOfShape("unknown depth_of_knowledge")
	}
	return nil
}

type errOutOfShape string

func (e errOutOfShape) Error() string { return string(e) }
