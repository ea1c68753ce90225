package interview

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rsoni/hireview/internal/questiongen"
	"github.com/rsoni/hireview/internal/report"
	"github.com/rsoni/hireview/internal/scoring"
)

// Service runs interview sessions. All mutating operations on one session
// are serialized through a per-session mutex; operations on different
// sessions proceed concurrently.
type Service struct {
	repo      SessionRepo
	questions questiongen.Generator
	scorer    scoring.Scorer
	reports   report.Synthesizer
	log       *zap.Logger

	locks sync.Map // session id -> *sync.Mutex
}

// NewService wires the session service.
func NewService(repo SessionRepo, gen questiongen.Generator, scorer scoring.Scorer, reports report.Synthesizer, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		repo:      repo,
		questions: gen,
		scorer:    scorer,
		reports:   reports,
		log:       log,
	}
}

func (s *Service) lock(id string) func() {
	v, _ := s.locks.LoadOrStore(id, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// CreateInput describes a new interview setup.
type CreateInput struct {
	CandidateName   string
	Role            string
	Experience      string
	Skills          []questiongen.Skill
	DurationMinutes int
	QuestionCount   int
}

func (in *CreateInput) validate() error {
	if strings.TrimSpace(in.CandidateName) == "" {
		return &ValidationError{Field: "candidate_name", Reason: "must not be empty"}
	}
	if strings.TrimSpace(in.Role) == "" {
		return &ValidationError{Field: "role", Reason: "must not be empty"}
	}
	if len(in.Skills) == 0 {
		return &ValidationError{Field: "selected_skills", Reason: "at least one skill is required"}
	}
	for _, sk := range in.Skills {
		if strings.TrimSpace(sk.Name) == "" {
			return &ValidationError{Field: "selected_skills", Reason: "skill name must not be empty"}
		}
	}
	if in.DurationMinutes <= 0 {
		return &ValidationError{Field: "duration_minutes", Reason: "must be positive"}
	}
	if in.QuestionCount < 0 {
		return &ValidationError{Field: "question_count", Reason: "must not be negative"}
	}
	return nil
}

// CreateSession generates the question batch and stores a new session.
func (s *Service) CreateSession(ctx context.Context, in CreateInput) (*Session, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	count := in.QuestionCount
	if count == 0 {
		count = questiongen.DefaultCount
	}

	questions, err := s.questions.Generate(ctx, questiongen.Input{
		CandidateName: in.CandidateName,
		Role:          in.Role,
		Experience:    in.Experience,
		Skills:        in.Skills,
		Count:         count,
	})
	if err != nil {
		return nil, fmt.Errorf("generate questions: %w", err)
	}
	if err := checkBatch(questions); err != nil {
		return nil, fmt.Errorf("question batch: %w", err)
	}

	now := time.Now().UTC()
	session := &Session{
		ID:              uuid.NewString(),
		CandidateName:   in.CandidateName,
		Role:            in.Role,
		Experience:      in.Experience,
		Skills:          in.Skills,
		DurationMinutes: in.DurationMinutes,
		Questions:       questions,
		TotalQuestions:  len(questions),
		SkillScores:     map[string]float64{},
		Status:          StatusInProgress,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Create(ctx, session); err != nil {
		return nil, err
	}

	s.log.Info("interview created",
		zap.String("interview_id", session.ID),
		zap.String("candidate", session.CandidateName),
		zap.Int("questions", session.TotalQuestions),
	)
	return session, nil
}

// checkBatch rejects batches with duplicate ids or broken ordinals.
func checkBatch(questions []questiongen.Question) error {
	if len(questions) == 0 {
		return fmt.Errorf("empty batch")
	}
	ids := make(map[string]bool, len(questions))
	numbers := make(map[int]bool, len(questions))
	for _, q := range questions {
		if q.ID == "" {
			return fmt.Errorf("question %d has no id", q.Number)
		}
		if ids[q.ID] {
			return fmt.Errorf("duplicate question id %q", q.ID)
		}
		ids[q.ID] = true
		if q.Number < 1 || q.Number > len(questions) {
			return fmt.Errorf("question %q ordinal %d out of range", q.ID, q.Number)
		}
		if numbers[q.Number] {
			return fmt.Errorf("duplicate ordinal %d", q.Number)
		}
		numbers[q.Number] = true
	}
	return nil
}

// NextQuestion hands out the next unasked question, or a completion marker
// once the batch is exhausted or the session is completed. The returned
// question is marked asked immediately, so polling again moves on rather
// than re-serving it.
func (s *Service) NextQuestion(ctx context.Context, id string) (*NextQuestion, error) {
	defer s.lock(id)()

	session, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	q, ok := peekNext(session)
	if !ok {
		return exhaustedResponse(session), nil
	}

	session.AskedIDs = append(session.AskedIDs, q.ID)
	session.UpdatedAt = time.Now().UTC()
	if err := s.repo.Save(ctx, session); err != nil {
		return nil, err
	}

	return &NextQuestion{
		QuestionID:     q.ID,
		QuestionNumber: q.Number,
		TotalQuestions: session.TotalQuestions,
		QuestionText:   q.Text,
		SkillTested:    q.SkillTested,
		Difficulty:     string(q.Difficulty),
	}, nil
}

// SubmitInput is one answer submission.
type SubmitInput struct {
	QuestionID string
	Answer     string
	TimeTaken  int
}

// AnswerResult is returned to the candidate after scoring.
type AnswerResult struct {
	QuestionID string           `json:"question_id"`
	Analysis   scoring.Analysis `json:"analysis"`
	Feedback   string           `json:"feedback"`
}

// SubmitAnswer scores the answer, records it, and advances the session.
// When the final answer lands, the report is synthesized and the session
// flips to completed in the same operation.
func (s *Service) SubmitAnswer(ctx context.Context, id string, in SubmitInput) (*AnswerResult, error) {
	defer s.lock(id)()

	session, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.Status == StatusCompleted {
		return nil, ErrCompleted
	}

	q, ok := session.QuestionByID(in.QuestionID)
	if !ok {
		return nil, ErrUnknownQuestion
	}
	if session.Answered(q.ID) {
		return nil, ErrAlreadyAnswered
	}

	analysis, err := s.scorer.Score(ctx, scoring.AnswerInput{
		QuestionText:   q.Text,
		AnswerText:     in.Answer,
		ExpectedPoints: q.ExpectedPoints,
		SkillTested:    q.SkillTested,
		Difficulty:     string(q.Difficulty),
	})
	if err != nil {
		return nil, fmt.Errorf("score answer: %w", err)
	}

	session.Answers = append(session.Answers, AnswerRecord{
		QuestionID:     q.ID,
		QuestionNumber: q.Number,
		QuestionText:   q.Text,
		AnswerText:     in.Answer,
		TimeTaken:      in.TimeTaken,
		Analysis:       *analysis,
		SubmittedAt:    time.Now().UTC(),
	})
	session.CurrentIndex++
	if session.SkillScores == nil {
		session.SkillScores = map[string]float64{}
	}
	session.SkillScores[q.SkillTested] = float64(analysis.OverallScore)
	session.UpdatedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, session); err != nil {
		return nil, err
	}

	if session.AllAnswered() {
		if _, err := s.finalize(ctx, session); err != nil {
			return nil, err
		}
	}

	s.log.Info("answer scored",
		zap.String("interview_id", id),
		zap.String("question_id", q.ID),
		zap.Int("score", analysis.OverallScore),
	)
	return &AnswerResult{
		QuestionID: q.ID,
		Analysis:   *analysis,
		Feedback:   analysis.Feedback,
	}, nil
}

// CompleteSession synthesizes the final report if one does not exist yet
// and returns the canonical report. Calling it again returns the same
// report; a partial session is reported from whatever answers it has.
func (s *Service) CompleteSession(ctx context.Context, id string) (*report.Report, error) {
	defer s.lock(id)()

	session, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.Report != nil {
		return session.Report, nil
	}
	return s.finalize(ctx, session)
}

// finalize synthesizes and stores the report, marking the session
// completed. Caller must hold the session lock.
func (s *Service) finalize(ctx context.Context, session *Session) (*report.Report, error) {
	r, err := s.reports.Synthesize(ctx, reportInput(session))
	if err != nil {
		return nil, fmt.Errorf("synthesize report: %w", err)
	}

	canonical, wrote, err := s.repo.SaveReportIfAbsent(ctx, session.ID, r)
	if err != nil {
		return nil, err
	}

	session.Report = canonical
	session.Status = StatusCompleted
	session.UpdatedAt = time.Now().UTC()
	if err := s.repo.Save(ctx, session); err != nil {
		return nil, err
	}

	if wrote {
		s.log.Info("report generated",
			zap.String("interview_id", session.ID),
			zap.String("recommendation", canonical.Recommendation),
			zap.Int("overall_score", canonical.OverallScore),
		)
	}
	return canonical, nil
}

func reportInput(session *Session) report.Input {
	answers := make([]report.AnswerSummary, 0, len(session.Answers))
	for _, a := range session.Answers {
		answers = append(answers, report.AnswerSummary{
			QuestionText:  a.QuestionText,
			AnswerText:    a.AnswerText,
			OverallScore:  a.Analysis.OverallScore,
			Communication: a.Analysis.Communication,
			Depth:         a.Analysis.Depth,
		})
	}
	skills := make([]string, 0, len(session.Skills))
	for _, sk := range session.Skills {
		skills = append(skills, sk.Name)
	}
	return report.Input{
		CandidateName: session.CandidateName,
		Role:          session.Role,
		Experience:    session.Experience,
		Skills:        skills,
		Answers:       answers,
		SkillScores:   session.SkillScores,
	}
}

// GetReport returns the stored report or ErrReportNotReady.
func (s *Service) GetReport(ctx context.Context, id string) (*report.Report, error) {
	session, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.Report == nil {
		return nil, ErrReportNotReady
	}
	return session.Report, nil
}

// GetSession returns the full session aggregate.
func (s *Service) GetSession(ctx context.Context, id string) (*Session, error) {
	return s.repo.Get(ctx, id)
}

// ListSessions returns all sessions sorted newest first.
func (s *Service) ListSessions(ctx context.Context) ([]*Session, error) {
	sessions, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].CreatedAt.After(sessions[j].CreatedAt)
	})
	return sessions, nil
}
