package report

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func answersWithScore(n, score int) []AnswerSummary {
	answers := make([]AnswerSummary, n)
	for i := range answers {
		answers[i] = AnswerSummary{
			QuestionText:  fmt.Sprintf("question %d", i+1),
			AnswerText:    "a reasonable answer",
			OverallScore:  score,
			Communication: "good",
			Depth:         "good",
		}
	}
	return answers
}

func TestHeuristic_RecommendationTiers(t *testing.T) {
	cases := []struct {
		score int
		want  string
	}{
		{85, RecStrongHire},
		{84, RecHire},
		{70, RecHire},
		{69, RecMaybe},
		{55, RecMaybe},
		{54, RecNoHire},
	}

	for _, tc := range cases {
		t.Run(fmt.Sprintf("score_%d", tc.score), func(t *testing.T) {
			r, err := NewHeuristic().Synthesize(context.Background(), Input{
				CandidateName: "Dana",
				Role:          "backend",
				Answers:       answersWithScore(4, tc.score),
			})
			require.NoError(t, err)
			assert.Equal(t, tc.score, r.OverallScore)
			assert.Equal(t, tc.want, r.Recommendation)
			assert.Contains(t, r.FinalReasoning, fmt.Sprintf("%d/100", tc.score))
			assert.Contains(t, r.FinalReasoning, "Dana")
		})
	}
}

func TestHeuristic_SectionScoresFromAnalyses(t *testing.T) {
	answers := []AnswerSummary{
		{OverallScore: 80, Communication: "good", Depth: "deep"},
		{OverallScore: 61, Communication: "adequate", Depth: "adequate"},
		{OverallScore: 90, Communication: "excellent", Depth: "good"},
	}

	r, err := NewHeuristic().Synthesize(context.Background(), Input{
		CandidateName: "Dana",
		Role:          "backend",
		Answers:       answers,
	})
	require.NoError(t, err)

	// Overall and technical: round-half mean of (80+61+90)/3 = 77.
	assert.Equal(t, 77, r.OverallScore)
	assert.Equal(t, 77, r.TechnicalScore)
	// Communication: (80+60+95)/3 = 78.33 -> 78.
	assert.Equal(t, 78, r.CommunicationScore)
	// Cultural from depth: (95+65+80)/3 = 80.
	assert.Equal(t, 80, r.CulturalFitScore)
}

func TestHeuristic_ZeroScoresExcludedFromMean(t *testing.T) {
	answers := []AnswerSummary{
		{OverallScore: 0, Communication: "poor", Depth: "superficial"},
		{OverallScore: 80, Communication: "good", Depth: "good"},
	}

	r, err := NewHeuristic().Synthesize(context.Background(), Input{Answers: answers})
	require.NoError(t, err)
	assert.Equal(t, 80, r.OverallScore)
	// Ratings still average over every answer.
	assert.Equal(t, 55, r.CommunicationScore)
	assert.Equal(t, 60, r.CulturalFitScore)
}

func TestHeuristic_SkillScoreFallbackTier(t *testing.T) {
	r, err := NewHeuristic().Synthesize(context.Background(), Input{
		CandidateName: "Dana",
		Role:          "frontend",
		SkillScores:   map[string]float64{"React": 80, "CSS": 60},
	})
	require.NoError(t, err)

	assert.Equal(t, 70, r.OverallScore)
	assert.Equal(t, 70, r.TechnicalScore)
	assert.Equal(t, 63, r.CommunicationScore)
	assert.Equal(t, 60, r.CulturalFitScore)
	assert.Equal(t, RecHire, r.Recommendation)
}

func TestHeuristic_EmptySessionTier(t *testing.T) {
	r, err := NewHeuristic().Synthesize(context.Background(), Input{
		CandidateName: "Dana",
		Role:          "backend",
	})
	require.NoError(t, err)

	assert.Equal(t, 50, r.OverallScore)
	assert.Equal(t, 50, r.TechnicalScore)
	assert.Equal(t, 50, r.CommunicationScore)
	assert.Equal(t, 50, r.CulturalFitScore)
	assert.Equal(t, RecNoHire, r.Recommendation)
	assert.Equal(t,
		"Based on 0 responses with 50/100 overall score, candidate shows developing fit for backend position.",
		r.RoleFitAssessment)
}

func TestHeuristic_DevelopmentAreas(t *testing.T) {
	weak, err := NewHeuristic().Synthesize(context.Background(), Input{
		Answers: []AnswerSummary{{OverallScore: 40, Communication: "poor", Depth: "superficial"}},
	})
	require.NoError(t, err)
	assert.Len(t, weak.DevelopmentAreas, 3)

	strong, err := NewHeuristic().Synthesize(context.Background(), Input{
		Answers: answersWithScore(3, 90),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Continue building on strong foundation",
		"Stay updated with latest best practices",
	}, strong.DevelopmentAreas)
}

func TestHeuristic_PlansTrackSectionScores(t *testing.T) {
	strong, err := NewHeuristic().Synthesize(context.Background(), Input{
		Answers: answersWithScore(3, 90),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Continue building on strengths",
		"Maintain excellent communication practices",
		"Tackle advanced architectural challenges",
	}, strong.ThreeMonthPlan)
	assert.Equal(t, []string{
		"Can you walk through a complex system design challenge?",
		"How do you approach mentoring junior developers?",
	}, strong.NextRoundQuestions)

	weakAnswers := []AnswerSummary{
		{OverallScore: 30, Communication: "poor", Depth: "superficial"},
		{OverallScore: 30, Communication: "adequate", Depth: "superficial"},
	}
	weak, err := NewHeuristic().Synthesize(context.Background(), Input{Answers: weakAnswers})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Focus on areas scoring below 70/100",
		"Practice explaining technical concepts with more depth",
		"Build more complex real-world projects",
	}, weak.ThreeMonthPlan)
	assert.Equal(t, []string{
		"Let's dive deeper into fundamental concepts",
		"Tell me more about your learning process",
	}, weak.NextRoundQuestions)
}
