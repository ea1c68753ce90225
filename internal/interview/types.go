// Package interview holds the session aggregate and the service that runs
// an interview end to end: question sequencing, answer scoring, and final
// report synthesis.
package interview

import (
	"errors"
	"fmt"
	"time"

	"github.com/rsoni/hireview/internal/questiongen"
	"github.com/rsoni/hireview/internal/report"
	"github.com/rsoni/hireview/internal/scoring"
)

// Status of a session.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

var (
	// ErrNotFound is returned when no session exists for the given id.
	ErrNotFound = errors.New("interview not found")
	// ErrExists is returned when creating a session with a taken id.
	ErrExists = errors.New("interview already exists")
	// ErrUnknownQuestion is returned when an answer names a question id
	// that is not part of the session.
	ErrUnknownQuestion = errors.New("question not found in this interview")
	// ErrAlreadyAnswered is returned when a question id is answered twice.
	ErrAlreadyAnswered = errors.New("question already answered")
	// ErrCompleted is returned when submitting to a completed session.
	ErrCompleted = errors.New("interview already completed")
	// ErrReportNotReady is returned when the report is requested before
	// the session has been completed.
	ErrReportNotReady = errors.New("report not generated yet")
)

// ValidationError describes a rejected session setup.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// AnswerRecord is one submitted answer with its evaluation.
type AnswerRecord struct {
	QuestionID     string           `json:"question_id"`
	QuestionNumber int              `json:"question_number"`
	QuestionText   string           `json:"question_text"`
	AnswerText     string           `json:"answer_text"`
	TimeTaken      int              `json:"time_taken_seconds"`
	Analysis       scoring.Analysis `json:"analysis"`
	SubmittedAt    time.Time        `json:"submitted_at"`
}

// Session is the full interview aggregate. It serializes as one JSON
// document; the store layer persists it whole.
type Session struct {
	ID              string                 `json:"interview_id"`
	CandidateName   string                 `json:"candidate_name"`
	Role            string                 `json:"role"`
	Experience      string                 `json:"experience"`
	Skills          []questiongen.Skill    `json:"selected_skills"`
	DurationMinutes int                    `json:"duration_minutes"`
	Questions       []questiongen.Question `json:"questions"`
	TotalQuestions  int                    `json:"total_questions"`
	CurrentIndex    int                    `json:"current_question"`
	AskedIDs        []string               `json:"asked_question_ids"`
	Answers         []AnswerRecord         `json:"answers"`
	SkillScores     map[string]float64     `json:"skill_scores"`
	Status          Status                 `json:"status"`
	Report          *report.Report         `json:"final_report,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
}

// QuestionByID finds a question in the session's batch.
func (s *Session) QuestionByID(id string) (*questiongen.Question, bool) {
	for i := range s.Questions {
		if s.Questions[i].ID == id {
			return &s.Questions[i], true
		}
	}
	return nil, false
}

// Asked reports whether the question id has been handed out.
func (s *Session) Asked(id string) bool {
	for _, asked := range s.AskedIDs {
		if asked == id {
			return true
		}
	}
	return false
}

// Answered reports whether the question id already has an answer.
func (s *Session) Answered(id string) bool {
	for _, a := range s.Answers {
		if a.QuestionID == id {
			return true
		}
	}
	return false
}

// AllAnswered reports whether every question in the batch has an answer.
func (s *Session) AllAnswered() bool {
	return s.TotalQuestions > 0 && len(s.Answers) >= s.TotalQuestions
}
