package report

import (
	"context"
	"fmt"
	"math"

	"github.com/rsoni/hireview/internal/scoring"
)

var commScoreMap = map[string]int{
	scoring.RatingPoor:      30,
	scoring.RatingAdequate:  60,
	scoring.RatingGood:      80,
	scoring.RatingExcellent: 95,
}

var depthScoreMap = map[string]int{
	scoring.DepthSuperficial: 40,
	scoring.DepthAdequate:    65,
	scoring.DepthGood:        80,
	scoring.DepthDeep:        95,
}

// HeuristicSynthesizer builds the report from the recorded answer analyses.
// Aggregation runs in three tiers: full answer records, then bare skill
// scores, then a flat 50 across the board when neither exists.
type HeuristicSynthesizer struct{}

// NewHeuristic creates a HeuristicSynthesizer.
func NewHeuristic() *HeuristicSynthesizer {
	return &HeuristicSynthesizer{}
}

// Synthesize aggregates the session into a Report. It never fails.
func (s *HeuristicSynthesizer) Synthesize(_ context.Context, input Input) (*Report, error) {
	overall, technical, communication, cultural := aggregate(input)

	r := &Report{
		OverallScore:       overall,
		TechnicalScore:     technical,
		CommunicationScore: communication,
		CulturalFitScore:   cultural,
	}

	name := input.CandidateName
	switch {
	case overall >= 85:
		r.Recommendation = RecStrongHire
		r.FinalReasoning = fmt.Sprintf("%s demonstrated excellent performance across all areas with an overall score of %d/100. Strong technical skills and communication.", name, overall)
		r.Strengths = []string{
			fmt.Sprintf("Exceptional technical performance (scored %d/100)", technical),
			fmt.Sprintf("Excellent communication skills (scored %d/100)", communication),
			"Consistently high-quality answers with good depth",
		}
	case overall >= 70:
		r.Recommendation = RecHire
		r.FinalReasoning = fmt.Sprintf("%s showed solid performance with an overall score of %d/100. Good technical foundation and clear communication.", name, overall)
		r.Strengths = []string{
			fmt.Sprintf("Strong technical fundamentals (scored %d/100)", technical),
			fmt.Sprintf("Good communication skills (scored %d/100)", communication),
			"Practical experience evident in responses",
		}
	case overall >= 55:
		r.Recommendation = RecMaybe
		r.FinalReasoning = fmt.Sprintf("%s demonstrated moderate performance with an overall score of %d/100. Some areas need improvement but shows potential.", name, overall)
		r.Strengths = []string{
			fmt.Sprintf("Adequate technical knowledge (scored %d/100)", technical),
			"Shows willingness to learn",
			"Some practical experience evident",
		}
	default:
		r.Recommendation = RecNoHire
		r.FinalReasoning = fmt.Sprintf("%s scored %d/100 overall. Significant gaps in technical knowledge and communication need to be addressed.", name, overall)
		r.Strengths = []string{
			"Shows basic understanding of some concepts",
			"Potential for growth with training",
		}
	}

	if technical < 70 {
		r.DevelopmentAreas = append(r.DevelopmentAreas, "Needs to deepen technical knowledge and provide more detailed explanations")
	}
	if communication < 70 {
		r.DevelopmentAreas = append(r.DevelopmentAreas, "Could improve clarity and structure in communication")
	}
	if cultural < 70 {
		r.DevelopmentAreas = append(r.DevelopmentAreas, "Should demonstrate deeper understanding of concepts with real-world examples")
	}
	if len(r.DevelopmentAreas) == 0 {
		r.DevelopmentAreas = []string{
			"Continue building on strong foundation",
			"Stay updated with latest best practices",
		}
	}

	fit := "developing"
	switch {
	case overall >= 70:
		fit = "strong"
	case overall >= 55:
		fit = "moderate"
	}
	r.RoleFitAssessment = fmt.Sprintf("Based on %d responses with %d/100 overall score, candidate shows %s fit for %s position.",
		len(input.Answers), overall, fit, input.Role)

	r.ThreeMonthPlan = []string{
		pick(min3(technical, communication, cultural) < 70,
			"Focus on areas scoring below 70/100",
			"Continue building on strengths"),
		pick(communication < 75,
			"Practice explaining technical concepts with more depth",
			"Maintain excellent communication practices"),
		pick(technical < 75,
			"Build more complex real-world projects",
			"Tackle advanced architectural challenges"),
	}

	r.NextRoundQuestions = []string{
		pick(technical >= 70,
			"Can you walk through a complex system design challenge?",
			"Let's dive deeper into fundamental concepts"),
		pick(overall >= 75,
			"How do you approach mentoring junior developers?",
			"Tell me more about your learning process"),
	}

	return r, nil
}

// aggregate derives the four section scores from the best data available.
func aggregate(input Input) (overall, technical, communication, cultural int) {
	var scores []int
	for _, a := range input.Answers {
		if a.OverallScore > 0 {
			scores = append(scores, a.OverallScore)
		}
	}

	switch {
	case len(scores) > 0:
		overall = roundMean(scores)
		technical = overall

		comms := make([]int, 0, len(input.Answers))
		depths := make([]int, 0, len(input.Answers))
		for _, a := range input.Answers {
			comms = append(comms, ratingScore(commScoreMap, a.Communication, 60))
			depths = append(depths, ratingScore(depthScoreMap, a.Depth, 65))
		}
		communication = roundMean(comms)
		cultural = roundMean(depths)

	case len(input.SkillScores) > 0:
		sum := 0.0
		for _, v := range input.SkillScores {
			sum += v
		}
		overall = int(math.Round(sum / float64(len(input.SkillScores))))
		technical = overall
		communication = max2(40, int(math.Round(float64(overall)*0.9)))
		cultural = max2(40, int(math.Round(float64(overall)*0.85)))

	default:
		overall, technical, communication, cultural = 50, 50, 50, 50
	}
	return overall, technical, communication, cultural
}

func ratingScore(table map[string]int, rating string, fallback int) int {
	if v, ok := table[rating]; ok {
		return v
	}
	return fallback
}

func roundMean(vals []int) int {
	if len(vals) == 0 {
		return 50
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return int(math.Round(float64(sum) / float64(len(vals))))
}

func pick(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

func max2(a, b int) int {
	if a > b {
		return a
	}
	return b
}
