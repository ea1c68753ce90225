package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rsoni/hireview/internal/interview"
	"github.com/rsoni/hireview/internal/questiongen"
)

type skillPayload struct {
	SkillName        string `json:"skill_name" binding:"required"`
	ProficiencyLevel string `json:"proficiency_level"`
	YearsExperience  int    `json:"years_experience"`
}

type createRequest struct {
	CandidateName   string         `json:"candidate_name" binding:"required"`
	Role            string         `json:"role" binding:"required"`
	Experience      string         `json:"experience"`
	SelectedSkills  []skillPayload `json:"selected_skills" binding:"required"`
	DurationMinutes int            `json:"duration_minutes"`
	QuestionCount   int            `json:"question_count"`
}

func (s *Server) createInterview(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	skills := make([]questiongen.Skill, 0, len(req.SelectedSkills))
	for _, sk := range req.SelectedSkills {
		skills = append(skills, questiongen.Skill{
			Name:        sk.SkillName,
			Proficiency: sk.ProficiencyLevel,
			Years:       sk.YearsExperience,
		})
	}

	duration := req.DurationMinutes
	if duration == 0 {
		duration = 45
	}

	session, err := s.service.CreateSession(c.Request.Context(), interview.CreateInput{
		CandidateName:   req.CandidateName,
		Role:            req.Role,
		Experience:      req.Experience,
		Skills:          skills,
		DurationMinutes: duration,
		QuestionCount:   req.QuestionCount,
	})
	if err != nil {
		httpError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":         true,
		"interview_id":    session.ID,
		"total_questions": session.TotalQuestions,
		"message":         fmt.Sprintf("Generated %d personalized questions", session.TotalQuestions),
	})
}

func (s *Server) listInterviews(c *gin.Context) {
	sessions, err := s.service.ListSessions(c.Request.Context())
	if err != nil {
		httpError(c, err)
		return
	}

	summaries := make([]gin.H, 0, len(sessions))
	for _, session := range sessions {
		summaries = append(summaries, sessionSummary(session))
	}
	c.JSON(http.StatusOK, gin.H{"interviews": summaries})
}

func (s *Server) getInterview(c *gin.Context) {
	session, err := s.service.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessionSummary(session))
}

func sessionSummary(session *interview.Session) gin.H {
	return gin.H{
		"interview_id":     session.ID,
		"candidate_name":   session.CandidateName,
		"role":             session.Role,
		"experience":       session.Experience,
		"status":           session.Status,
		"current_question": session.CurrentIndex,
		"total_questions":  session.TotalQuestions,
		"created_at":       session.CreatedAt,
	}
}

func (s *Server) nextQuestion(c *gin.Context) {
	nq, err := s.service.NextQuestion(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpError(c, err)
		return
	}
	c.JSON(http.StatusOK, nq)
}

type submitRequest struct {
	QuestionID       string `json:"question_id" binding:"required"`
	Answer           string `json:"answer"`
	TimeTakenSeconds int    `json:"time_taken_seconds"`
}

func (s *Server) submitAnswer(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	result, err := s.service.SubmitAnswer(c.Request.Context(), c.Param("id"), interview.SubmitInput{
		QuestionID: req.QuestionID,
		Answer:     req.Answer,
		TimeTaken:  req.TimeTakenSeconds,
	})
	if err != nil {
		httpError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"question_id": result.QuestionID,
		"analysis":    result.Analysis,
		"feedback":    result.Feedback,
	})
}

func (s *Server) completeInterview(c *gin.Context) {
	id := c.Param("id")
	r, err := s.service.CompleteSession(c.Request.Context(), id)
	if err != nil {
		httpError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"interview_id": id,
		"report":       r,
	})
}

func (s *Server) getReport(c *gin.Context) {
	id := c.Param("id")
	r, err := s.service.GetReport(c.Request.Context(), id)
	if err != nil {
		httpError(c, err)
		return
	}

	session, err := s.service.GetSession(c.Request.Context(), id)
	if err != nil {
		httpError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"interview_id":   id,
		"candidate_name": session.CandidateName,
		"role":           session.Role,
		"experience":     session.Experience,
		"report":         r,
		"skill_scores":   session.SkillScores,
		"answers":        session.Answers,
	})
}
