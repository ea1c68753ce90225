package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rsoni/hireview/internal/interview"
	"github.com/rsoni/hireview/internal/questiongen"
	"github.com/rsoni/hireview/internal/report"
)

const promptDone = "Done adding skills"

var interviewCmd = &cobra.Command{
	Use:   "interview",
	Short: "Run an interactive interview in the terminal",
	RunE: func(cmd *cobra.Command, _ []string) error {
		log, err := newLogger()
		if err != nil {
			return err
		}
		defer log.Sync()

		ctx := cmd.Context()
		svc, closeStore, err := buildService(ctx, log)
		if err != nil {
			return err
		}
		defer closeStore()

		count, _ := cmd.Flags().GetInt("questions")
		return runInteractive(ctx, svc, log, count)
	},
}

func init() {
	interviewCmd.Flags().Int("questions", 0, "number of questions (default 8)")
}

func runInteractive(ctx context.Context, svc *interview.Service, log *zap.Logger, questionCount int) error {
	name, err := (&promptui.Prompt{Label: "Candidate name"}).Run()
	if err != nil {
		return err
	}
	role, err := (&promptui.Prompt{Label: "Role"}).Run()
	if err != nil {
		return err
	}

	_, experience, err := (&promptui.Select{
		Label: "Experience level",
		Items: []string{"junior", "mid", "senior"},
	}).Run()
	if err != nil {
		return err
	}

	skills, err := collectSkills()
	if err != nil {
		return err
	}

	session, err := svc.CreateSession(ctx, interview.CreateInput{
		CandidateName:   name,
		Role:            role,
		Experience:      experience,
		Skills:          skills,
		DurationMinutes: 45,
		QuestionCount:   questionCount,
	})
	if err != nil {
		return err
	}

	fmt.Printf("\nInterview ready: %d questions. Press ENTER after each answer.\n\n", session.TotalQuestions)

	for {
		nq, err := svc.NextQuestion(ctx, session.ID)
		if err != nil {
			return err
		}
		if nq.Completed {
			break
		}

		fmt.Printf("Question %d/%d [%s, %s]\n%s\n\n",
			nq.QuestionNumber, nq.TotalQuestions, nq.SkillTested, nq.Difficulty, nq.QuestionText)

		answer, err := (&promptui.Prompt{Label: "Your answer"}).Run()
		if err != nil {
			return err
		}

		result, err := svc.SubmitAnswer(ctx, session.ID, interview.SubmitInput{
			QuestionID: nq.QuestionID,
			Answer:     answer,
		})
		if err != nil {
			return err
		}
		fmt.Printf("\nScore: %d/100 — %s\n\n", result.Analysis.OverallScore, result.Feedback)
	}

	r, err := svc.CompleteSession(ctx, session.ID)
	if err != nil {
		return err
	}

	printReport(r, name)
	log.Info("interview finished",
		zap.String("interview_id", session.ID),
		zap.String("recommendation", r.Recommendation),
	)
	return nil
}

func collectSkills() ([]questiongen.Skill, error) {
	var skills []questiongen.Skill
	for {
		label := "Add a skill"
		if len(skills) > 0 {
			label = fmt.Sprintf("Add another skill (%d so far)", len(skills))
		}
		name, err := (&promptui.Prompt{Label: label}).Run()
		if err != nil {
			return nil, err
		}
		name = strings.TrimSpace(name)
		if name == "" {
			if len(skills) > 0 {
				return skills, nil
			}
			continue
		}

		_, proficiency, err := (&promptui.Select{
			Label: fmt.Sprintf("Proficiency in %s", name),
			Items: []string{"beginner", "intermediate", "advanced"},
		}).Run()
		if err != nil {
			return nil, err
		}
		skills = append(skills, questiongen.Skill{Name: name, Proficiency: proficiency})

		_, more, err := (&promptui.Select{
			Label: "Add more skills?",
			Items: []string{"Add another", promptDone},
		}).Run()
		if err != nil {
			return nil, err
		}
		if more == promptDone {
			return skills, nil
		}
	}
}

func printReport(r *report.Report, name string) {
	fmt.Printf("\n==== Interview Report: %s ====\n", name)
	fmt.Printf("Overall: %d/100  Technical: %d  Communication: %d  Cultural fit: %d\n",
		r.OverallScore, r.TechnicalScore, r.CommunicationScore, r.CulturalFitScore)
	fmt.Printf("Recommendation: %s\n%s\n", r.Recommendation, r.FinalReasoning)

	fmt.Println("\nStrengths:")
	for _, s := range r.Strengths {
		fmt.Println("  -", s)
	}
	fmt.Println("\nDevelopment areas:")
	for _, d := range r.DevelopmentAreas {
		fmt.Println("  -", d)
	}
	fmt.Println("\n" + r.RoleFitAssessment)
}
