package questiongen

import "context"

// Difficulty buckets a question.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Skill is one skill the candidate has declared for assessment.
type Skill struct {
	Name        string `json:"skill_name"`
	Proficiency string `json:"proficiency_level"` // "beginner", "intermediate", "advanced"
	Years       int    `json:"experience_years,omitempty"`
}

// Question is a single interview question. The batch for a session is
// generated once at creation time and never extended or reordered.
type Question struct {
	// ID is unique within a session.
	ID string `json:"id"`

	// Number is the 1-based ordinal in the interview flow.
	Number int `json:"number"`

	Text        string     `json:"question"`
	SkillTested string     `json:"skill_tested"`
	Difficulty  Difficulty `json:"difficulty"`

	// ExpectedPoints are the short phrases a strong answer should touch.
	ExpectedPoints []string `json:"expected_key_points"`

	// Rationale explains why this question assesses the skill.
	Rationale string `json:"why_this_question"`

	// FollowUp is an optional probe for weak initial answers.
	FollowUp string `json:"follow_up_prompt,omitempty"`
}

// Input carries everything the generator needs for one question batch.
type Input struct {
	CandidateName string
	Role          string
	Experience    string // "junior", "mid", "senior"
	Skills        []Skill

	// Count is the batch size. Zero means the default of 8.
	Count int

	// ExcludeIDs lists question ids the generator must not reuse.
	ExcludeIDs []string
}

// DefaultCount is the question batch size when Input.Count is zero.
const DefaultCount = 8

// Generator produces the full ordered question batch for a session.
type Generator interface {
	Generate(ctx context.Context, input Input) ([]Question, error)
}
