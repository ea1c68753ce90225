package interview_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/rsoni/hireview/internal/interview"
	"github.com/rsoni/hireview/internal/questiongen"
	"github.com/rsoni/hireview/internal/report"
	"github.com/rsoni/hireview/internal/scoring"
	"github.com/rsoni/hireview/internal/store"
)

// countingSynthesizer wraps the deterministic synthesizer and counts calls.
type countingSynthesizer struct {
	inner report.Synthesizer
	calls atomic.Int64
}

func (c *countingSynthesizer) Synthesize(ctx context.Context, in report.Input) (*report.Report, error) {
	c.calls.Add(1)
	return c.inner.Synthesize(ctx, in)
}

func newTestService(t *testing.T) (*interview.Service, *countingSynthesizer) {
	t.Helper()
	synth := &countingSynthesizer{inner: report.NewHeuristic()}
	svc := interview.NewService(
		store.NewMemory(),
		questiongen.NewTemplateGenerator(),
		scoring.NewHeuristic(),
		synth,
		nil,
	)
	return svc, synth
}

func createSession(t *testing.T, svc *interview.Service, questionCount int) *interview.Session {
	t.Helper()
	s, err := svc.CreateSession(context.Background(), interview.CreateInput{
		CandidateName:   "Dana",
		Role:            "backend",
		Experience:      "senior",
		Skills:          []questiongen.Skill{{Name: "Go", Proficiency: "advanced"}},
		DurationMinutes: 45,
		QuestionCount:   questionCount,
	})
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	return s
}

func TestCreateSession_Validation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		input interview.CreateInput
	}{
		{"empty name", interview.CreateInput{Role: "backend", Skills: []questiongen.Skill{{Name: "Go"}}, DurationMinutes: 45}},
		{"empty role", interview.CreateInput{CandidateName: "Dana", Skills: []questiongen.Skill{{Name: "Go"}}, DurationMinutes: 45}},
		{"no skills", interview.CreateInput{CandidateName: "Dana", Role: "backend", DurationMinutes: 45}},
		{"blank skill name", interview.CreateInput{CandidateName: "Dana", Role: "backend", Skills: []questiongen.Skill{{Name: "  "}}, DurationMinutes: 45}},
		{"zero duration", interview.CreateInput{CandidateName: "Dana", Role: "backend", Skills: []questiongen.Skill{{Name: "Go"}}}},
		{"negative count", interview.CreateInput{CandidateName: "Dana", Role: "backend", Skills: []questiongen.Skill{{Name: "Go"}}, DurationMinutes: 45, QuestionCount: -1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateSession(ctx, tc.input)
			var verr *interview.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("got %v, want ValidationError", err)
			}
		})
	}
}

func TestCreateSession_DefaultsToEightQuestions(t *testing.T) {
	svc, _ := newTestService(t)
	s := createSession(t, svc, 0)
	if s.TotalQuestions != questiongen.DefaultCount {
		t.Fatalf("got %d questions, want %d", s.TotalQuestions, questiongen.DefaultCount)
	}
	if s.Status != interview.StatusInProgress {
		t.Fatalf("status = %s, want in_progress", s.Status)
	}
	if s.ID == "" {
		t.Fatal("session must get an id")
	}
}

func TestNextQuestion_NeverRepeats(t *testing.T) {
	svc, _ := newTestService(t)
	s := createSession(t, svc, 4)
	ctx := context.Background()

	seen := map[string]bool{}
	for i := 0; i < 4; i++ {
		nq, err := svc.NextQuestion(ctx, s.ID)
		if err != nil {
			t.Fatalf("next question %d: %v", i, err)
		}
		if nq.Completed {
			t.Fatalf("poll %d reported completion early", i)
		}
		if seen[nq.QuestionID] {
			t.Fatalf("question %s served twice", nq.QuestionID)
		}
		seen[nq.QuestionID] = true
	}

	// Batch exhausted: further polls report completion.
	nq, err := svc.NextQuestion(ctx, s.ID)
	if err != nil {
		t.Fatalf("exhausted poll: %v", err)
	}
	if !nq.Completed {
		t.Fatal("exhausted batch must report completion")
	}
}

func TestNextQuestion_UnknownSession(t *testing.T) {
	svc, _ := newTestService(t)
	if _, err := svc.NextQuestion(context.Background(), "nope"); !errors.Is(err, interview.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestSubmitAnswer_FullFlow(t *testing.T) {
	svc, synth := newTestService(t)
	s := createSession(t, svc, 2)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		nq, err := svc.NextQuestion(ctx, s.ID)
		if err != nil {
			t.Fatalf("next question: %v", err)
		}
		res, err := svc.SubmitAnswer(ctx, s.ID, interview.SubmitInput{
			QuestionID: nq.QuestionID,
			Answer:     "I would demonstrate the approach with specific examples, explain my decision process, and discuss the trade-offs and alternatives I considered before settling on the final design.",
			TimeTaken:  60,
		})
		if err != nil {
			t.Fatalf("submit answer: %v", err)
		}
		if res.Analysis.OverallScore <= 0 {
			t.Fatalf("score = %d, want positive", res.Analysis.OverallScore)
		}
		if res.Feedback == "" {
			t.Fatal("feedback must not be empty")
		}
	}

	// Final answer triggers synthesis and completion.
	if got := synth.calls.Load(); got != 1 {
		t.Fatalf("synthesizer called %d times, want 1", got)
	}

	final, err := svc.GetSession(ctx, s.ID)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if final.Status != interview.StatusCompleted {
		t.Fatalf("status = %s, want completed", final.Status)
	}
	if final.Report == nil {
		t.Fatal("completed session must carry a report")
	}
	if len(final.SkillScores) == 0 {
		t.Fatal("skill scores must be recorded")
	}
}

func TestSubmitAnswer_Rejections(t *testing.T) {
	svc, _ := newTestService(t)
	s := createSession(t, svc, 2)
	ctx := context.Background()

	nq, err := svc.NextQuestion(ctx, s.ID)
	if err != nil {
		t.Fatalf("next question: %v", err)
	}

	if _, err := svc.SubmitAnswer(ctx, s.ID, interview.SubmitInput{QuestionID: "bogus", Answer: "x"}); !errors.Is(err, interview.ErrUnknownQuestion) {
		t.Fatalf("unknown question = %v, want ErrUnknownQuestion", err)
	}

	if _, err := svc.SubmitAnswer(ctx, s.ID, interview.SubmitInput{QuestionID: nq.QuestionID, Answer: "first"}); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if _, err := svc.SubmitAnswer(ctx, s.ID, interview.SubmitInput{QuestionID: nq.QuestionID, Answer: "second"}); !errors.Is(err, interview.ErrAlreadyAnswered) {
		t.Fatalf("resubmit = %v, want ErrAlreadyAnswered", err)
	}

	if _, err := svc.CompleteSession(ctx, s.ID); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if _, err := svc.SubmitAnswer(ctx, s.ID, interview.SubmitInput{QuestionID: "q2", Answer: "late"}); !errors.Is(err, interview.ErrCompleted) {
		t.Fatalf("submit after completion = %v, want ErrCompleted", err)
	}
}

func TestCompleteSession_Idempotent(t *testing.T) {
	svc, synth := newTestService(t)
	s := createSession(t, svc, 3)
	ctx := context.Background()

	// Answer one of three, then complete early.
	nq, err := svc.NextQuestion(ctx, s.ID)
	if err != nil {
		t.Fatalf("next question: %v", err)
	}
	if _, err := svc.SubmitAnswer(ctx, s.ID, interview.SubmitInput{QuestionID: nq.QuestionID, Answer: "short answer"}); err != nil {
		t.Fatalf("submit: %v", err)
	}

	first, err := svc.CompleteSession(ctx, s.ID)
	if err != nil {
		t.Fatalf("first complete: %v", err)
	}
	second, err := svc.CompleteSession(ctx, s.ID)
	if err != nil {
		t.Fatalf("second complete: %v", err)
	}
	if synth.calls.Load() != 1 {
		t.Fatalf("synthesizer called %d times, want 1", synth.calls.Load())
	}
	if first.OverallScore != second.OverallScore || first.Recommendation != second.Recommendation {
		t.Fatal("repeated completion must return the same report")
	}
}

func TestGetReport_NotReady(t *testing.T) {
	svc, _ := newTestService(t)
	s := createSession(t, svc, 2)

	if _, err := svc.GetReport(context.Background(), s.ID); !errors.Is(err, interview.ErrReportNotReady) {
		t.Fatalf("got %v, want ErrReportNotReady", err)
	}
}

func TestGetReport_AfterCompletion(t *testing.T) {
	svc, _ := newTestService(t)
	s := createSession(t, svc, 2)
	ctx := context.Background()

	want, err := svc.CompleteSession(ctx, s.ID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	got, err := svc.GetReport(ctx, s.ID)
	if err != nil {
		t.Fatalf("get report: %v", err)
	}
	if got.Recommendation != want.Recommendation {
		t.Fatalf("report mismatch: %s vs %s", got.Recommendation, want.Recommendation)
	}
}

func TestConcurrentFinalAnswers_OneSynthesis(t *testing.T) {
	svc, synth := newTestService(t)
	s := createSession(t, svc, 2)
	ctx := context.Background()

	first, err := svc.NextQuestion(ctx, s.ID)
	if err != nil {
		t.Fatalf("next question: %v", err)
	}
	second, err := svc.NextQuestion(ctx, s.ID)
	if err != nil {
		t.Fatalf("next question: %v", err)
	}

	var wg sync.WaitGroup
	for _, qid := range []string{first.QuestionID, second.QuestionID} {
		wg.Add(1)
		go func(qid string) {
			defer wg.Done()
			_, err := svc.SubmitAnswer(ctx, s.ID, interview.SubmitInput{
				QuestionID: qid,
				Answer:     "A concurrent but perfectly valid answer with examples and trade-offs.",
			})
			if err != nil {
				t.Errorf("submit %s: %v", qid, err)
			}
		}(qid)
	}
	wg.Wait()

	if synth.calls.Load() != 1 {
		t.Fatalf("synthesizer called %d times, want exactly 1", synth.calls.Load())
	}
	final, err := svc.GetSession(ctx, s.ID)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if final.Status != interview.StatusCompleted || final.Report == nil {
		t.Fatal("session must end completed with a report")
	}
}

func TestConcurrentSequencing_NoDuplicateQuestions(t *testing.T) {
	svc, _ := newTestService(t)
	s := createSession(t, svc, 8)
	ctx := context.Background()

	var mu sync.Mutex
	seen := map[string]int{}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			nq, err := svc.NextQuestion(ctx, s.ID)
			if err != nil {
				t.Errorf("next question: %v", err)
				return
			}
			if nq.Completed {
				return
			}
			mu.Lock()
			seen[nq.QuestionID]++
			mu.Unlock()
		}()
	}
	wg.Wait()

	for id, n := range seen {
		if n > 1 {
			t.Errorf("question %s served %d times", id, n)
		}
	}
}
