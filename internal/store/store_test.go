package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/rsoni/hireview/internal/interview"
	"github.com/rsoni/hireview/internal/questiongen"
	"github.com/rsoni/hireview/internal/report"
	"github.com/rsoni/hireview/internal/scoring"
)

func sampleSession(id string, createdAt time.Time) *interview.Session {
	return &interview.Session{
		ID:              id,
		CandidateName:   "Dana",
		Role:            "backend",
		Experience:      "senior",
		Skills:          []questiongen.Skill{{Name: "Go", Proficiency: "advanced"}},
		DurationMinutes: 45,
		Questions: []questiongen.Question{
			{ID: "q_1", Number: 1, Text: "Explain goroutines.", SkillTested: "Go", Difficulty: questiongen.DifficultyEasy, ExpectedPoints: []string{"Scheduling"}},
			{ID: "q_2", Number: 2, Text: "Explain channels.", SkillTested: "Go", Difficulty: questiongen.DifficultyMedium, ExpectedPoints: []string{"Blocking semantics"}},
		},
		TotalQuestions: 2,
		SkillScores:    map[string]float64{},
		Status:         interview.StatusInProgress,
		CreatedAt:      createdAt,
		UpdatedAt:      createdAt,
	}
}

// repoUnderTest runs the same suite against both implementations.
func repoUnderTest(t *testing.T) map[string]interview.SessionRepo {
	t.Helper()

	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open sqlite store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	return map[string]interview.SessionRepo{
		"sqlite": s.Sessions(),
		"memory": NewMemory(),
	}
}

func TestSessionRepo_CreateGetRoundTrip(t *testing.T) {
	for name, repo := range repoUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			now := time.Now().UTC().Truncate(time.Millisecond)
			original := sampleSession("iv-1", now)

			if err := repo.Create(ctx, original); err != nil {
				t.Fatalf("create: %v", err)
			}

			got, err := repo.Get(ctx, "iv-1")
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			if got.CandidateName != "Dana" || got.TotalQuestions != 2 {
				t.Errorf("round trip lost fields: %+v", got)
			}
			if len(got.Questions) != 2 || got.Questions[1].Text != "Explain channels." {
				t.Errorf("questions did not survive: %+v", got.Questions)
			}
			if got.Status != interview.StatusInProgress {
				t.Errorf("status = %s, want in_progress", got.Status)
			}
			if got.Report != nil {
				t.Error("new session must have no report")
			}
		})
	}
}

func TestSessionRepo_CreateDuplicate(t *testing.T) {
	for name, repo := range repoUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := sampleSession("iv-dup", time.Now().UTC())
			if err := repo.Create(ctx, s); err != nil {
				t.Fatalf("create: %v", err)
			}
			if err := repo.Create(ctx, s); !errors.Is(err, interview.ErrExists) {
				t.Fatalf("duplicate create = %v, want ErrExists", err)
			}
		})
	}
}

func TestSessionRepo_GetMissing(t *testing.T) {
	for name, repo := range repoUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := repo.Get(context.Background(), "nope"); !errors.Is(err, interview.ErrNotFound) {
				t.Fatalf("get missing = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestSessionRepo_SavePersistsProgress(t *testing.T) {
	for name, repo := range repoUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := sampleSession("iv-progress", time.Now().UTC())
			if err := repo.Create(ctx, s); err != nil {
				t.Fatalf("create: %v", err)
			}

			s.AskedIDs = []string{"q_1"}
			s.CurrentIndex = 1
			s.Answers = append(s.Answers, interview.AnswerRecord{
				QuestionID:   "q_1",
				QuestionText: "Explain goroutines.",
				AnswerText:   "Lightweight threads multiplexed onto OS threads.",
				Analysis:     scoring.Analysis{OverallScore: 74, Communication: "good", Depth: "adequate"},
				SubmittedAt:  time.Now().UTC(),
			})
			s.SkillScores["Go"] = 74
			if err := repo.Save(ctx, s); err != nil {
				t.Fatalf("save: %v", err)
			}

			got, err := repo.Get(ctx, "iv-progress")
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			if got.CurrentIndex != 1 || len(got.Answers) != 1 {
				t.Errorf("progress lost: index=%d answers=%d", got.CurrentIndex, len(got.Answers))
			}
			if got.Answers[0].Analysis.OverallScore != 74 {
				t.Errorf("analysis lost: %+v", got.Answers[0].Analysis)
			}
			if got.SkillScores["Go"] != 74 {
				t.Errorf("skill scores lost: %v", got.SkillScores)
			}
		})
	}
}

func TestSessionRepo_SaveMissing(t *testing.T) {
	for name, repo := range repoUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			s := sampleSession("iv-ghost", time.Now().UTC())
			if err := repo.Save(context.Background(), s); !errors.Is(err, interview.ErrNotFound) {
				t.Fatalf("save missing = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestSessionRepo_SaveReportIfAbsent(t *testing.T) {
	for name, repo := range repoUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := sampleSession("iv-report", time.Now().UTC())
			if err := repo.Create(ctx, s); err != nil {
				t.Fatalf("create: %v", err)
			}

			first := &report.Report{OverallScore: 80, Recommendation: report.RecHire}
			canonical, wrote, err := repo.SaveReportIfAbsent(ctx, "iv-report", first)
			if err != nil {
				t.Fatalf("first save: %v", err)
			}
			if !wrote || canonical.OverallScore != 80 {
				t.Fatalf("first save wrote=%v report=%+v", wrote, canonical)
			}

			second := &report.Report{OverallScore: 20, Recommendation: report.RecNoHire}
			canonical, wrote, err = repo.SaveReportIfAbsent(ctx, "iv-report", second)
			if err != nil {
				t.Fatalf("second save: %v", err)
			}
			if wrote {
				t.Error("second save must not overwrite")
			}
			if canonical.OverallScore != 80 || canonical.Recommendation != report.RecHire {
				t.Errorf("canonical report = %+v, want the first write", canonical)
			}

			got, err := repo.Get(ctx, "iv-report")
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			if got.Report == nil || got.Report.OverallScore != 80 {
				t.Errorf("report not attached to session: %+v", got.Report)
			}
		})
	}
}

func TestSessionRepo_SaveReportMissingSession(t *testing.T) {
	for name, repo := range repoUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			_, _, err := repo.SaveReportIfAbsent(context.Background(), "nope", &report.Report{})
			if !errors.Is(err, interview.ErrNotFound) {
				t.Fatalf("save report for missing session = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestSessionRepo_ListNewestFirst(t *testing.T) {
	for name, repo := range repoUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			base := time.Now().UTC().Add(-time.Hour)
			for i, id := range []string{"iv-a", "iv-b", "iv-c"} {
				s := sampleSession(id, base.Add(time.Duration(i)*time.Minute))
				if err := repo.Create(ctx, s); err != nil {
					t.Fatalf("create %s: %v", id, err)
				}
			}

			sessions, err := repo.List(ctx)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if len(sessions) != 3 {
				t.Fatalf("got %d sessions, want 3", len(sessions))
			}
			if sessions[0].ID != "iv-c" || sessions[2].ID != "iv-a" {
				t.Errorf("order = %s,%s,%s, want newest first", sessions[0].ID, sessions[1].ID, sessions[2].ID)
			}
		})
	}
}
