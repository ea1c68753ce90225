// Package scoring evaluates candidate answers. The model-backed scorer
// produces the analysis when a provider is available; the heuristic scorer
// is the deterministic fallback so an answer is never left unscored.
package scoring

import "context"

// Rating levels for communication and technical accuracy.
const (
	RatingPoor      = "poor"
	RatingAdequate  = "adequate"
	RatingGood      = "good"
	RatingExcellent = "excellent"
)

// Depth levels for depth of knowledge.
const (
	DepthSuperficial = "superficial"
	DepthAdequate    = "adequate"
	DepthGood        = "good"
	DepthDeep        = "deep"
)

// AnswerInput carries everything the scorer needs about one answer.
type AnswerInput struct {
	QuestionText   string
	AnswerText     string
	ExpectedPoints []string
	SkillTested    string
	Difficulty     string
}

// Analysis is the structured evaluation of a single answer.
type Analysis struct {
	OverallScore  int      `json:"overall_score"`
	PointsCovered []string `json:"key_points_covered"`
	MissingPoints []string `json:"missing_points"`
	Communication string   `json:"communication_quality"`
	Technical     string   `json:"technical_accuracy"`
	Depth         string   `json:"depth_of_knowledge"`
	Feedback      string   `json:"feedback_to_candidate"`
}

// Scorer evaluates one answer against its question.
type Scorer interface {
	Score(ctx context.Context, input AnswerInput) (*Analysis, error)
}
