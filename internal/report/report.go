// Package report synthesizes per-answer analyses into the final hiring
// report. The deterministic synthesizer aggregates actual answer scores;
// the model-backed path produces richer prose with the synthesizer as its
// fallback, so completing a session always yields a report.
package report

import "context"

// Recommendation tiers, strongest first.
const (
	RecStrongHire = "strong-hire"
	RecHire       = "hire"
	RecMaybe      = "maybe"
	RecNoHire     = "no-hire"
)

// AnswerSummary is the slice of an answer the synthesizer needs.
type AnswerSummary struct {
	QuestionText  string
	AnswerText    string
	OverallScore  int
	Communication string
	Depth         string
}

// Input carries everything about the finished session.
type Input struct {
	CandidateName string
	Role          string
	Experience    string
	Skills        []string
	Answers       []AnswerSummary
	SkillScores   map[string]float64
}

// Report is the final evaluation handed to the hiring side.
type Report struct {
	OverallScore       int      `json:"overall_score"`
	TechnicalScore     int      `json:"technical_score"`
	CommunicationScore int      `json:"communication_score"`
	CulturalFitScore   int      `json:"cultural_fit_score"`
	Recommendation     string   `json:"recommendation"`
	FinalReasoning     string   `json:"final_reasoning"`
	Strengths          []string `json:"strengths"`
	DevelopmentAreas   []string `json:"development_areas"`
	RoleFitAssessment  string   `json:"role_fit_assessment"`
	ThreeMonthPlan     []string `json:"three_month_plan"`
	NextRoundQuestions []string `json:"next_round_questions"`
}

// Synthesizer produces the final report for a session.
type Synthesizer interface {
	Synthesize(ctx context.Context, input Input) (*Report, error)
}
