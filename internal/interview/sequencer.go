package interview

import "github.com/rsoni/hireview/internal/questiongen"

// NextQuestion is what the candidate sees for one sequencing poll. When
// Completed is set the question fields are zero.
type NextQuestion struct {
	QuestionID     string `json:"question_id"`
	QuestionNumber int    `json:"question_number"`
	TotalQuestions int    `json:"total_questions"`
	QuestionText   string `json:"question_text"`
	SkillTested    string `json:"skill_being_tested"`
	Difficulty     string `json:"difficulty_level"`
	Completed      bool   `json:"completed"`
}

// peekNext scans the batch from the current position for the first question
// not yet handed out. The scan skips asked ids rather than trusting the
// index alone, so a repeated poll never re-serves a question even before
// the matching answer arrives.
func peekNext(s *Session) (*questiongen.Question, bool) {
	if s.Status == StatusCompleted || s.CurrentIndex >= s.TotalQuestions {
		return nil, false
	}
	for i := s.CurrentIndex; i < len(s.Questions); i++ {
		q := &s.Questions[i]
		if !s.Asked(q.ID) {
			return q, true
		}
	}
	return nil, false
}

// exhaustedResponse is the sequencer reply once no unasked question remains.
func exhaustedResponse(s *Session) *NextQuestion {
	return &NextQuestion{
		QuestionNumber: s.CurrentIndex,
		TotalQuestions: s.TotalQuestions,
		Completed:      true,
	}
}
