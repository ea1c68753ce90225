package scoring

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// gibberishPattern flags keyboard mashing, digit runs, and filler strings.
var gibberishPattern = regexp.MustCompile(`(?i)[a-z]{0,2}[0-9]{3,}|^[-_]{3,}|^[qwertyuiopasdfghjklzxcvbnm]{6,}$`)

// nonAlnumSpace strips punctuation from expected points before matching.
var nonAlnumSpace = regexp.MustCompile(`[^a-zA-Z0-9 ]`)

// HeuristicScorer grades answers without a model. Score is built from word
// count, expected-point coverage, and a gibberish penalty; ratings follow
// fixed word-count and coverage thresholds. Same input, same output.
type HeuristicScorer struct{}

// NewHeuristic creates a HeuristicScorer.
func NewHeuristic() *HeuristicScorer {
	return &HeuristicScorer{}
}

// Score evaluates the answer deterministically.
func (s *HeuristicScorer) Score(_ context.Context, input AnswerInput) (*Analysis, error) {
	answer := input.AnswerText
	if answer == "" {
		return &Analysis{
			OverallScore:  10,
			PointsCovered: []string{},
			MissingPoints: append([]string{}, input.ExpectedPoints...),
			Communication: RatingPoor,
			Technical:     RatingPoor,
			Depth:         DepthSuperficial,
			Feedback:      "No answer provided. Please respond with a clear, structured explanation.",
		}, nil
	}

	wordCount := len(strings.Fields(answer))

	penalty := 0
	if distinctNonSpace(answer) < 5 || gibberishPattern.MatchString(answer) {
		penalty = 40
	}

	base := 10 + wordCount*2
	if base > 60 {
		base = 60
	}

	var covered, missing []string
	lowerAnswer := strings.ToLower(answer)
	for _, point := range input.ExpectedPoints {
		key := strings.ToLower(strings.TrimSpace(nonAlnumSpace.ReplaceAllString(point, "")))
		fields := strings.Fields(key)
		if len(fields) > 0 && strings.Contains(lowerAnswer, fields[0]) {
			covered = append(covered, point)
		} else {
			missing = append(missing, point)
		}
	}

	bonus := len(covered) * 10
	if bonus > 30 {
		bonus = 30
	}

	comm := RatingGood
	switch {
	case wordCount < 8:
		comm = RatingPoor
	case wordCount < 25:
		comm = RatingAdequate
	}

	technical := RatingPoor
	depth := DepthSuperficial
	threshold := (len(input.ExpectedPoints) + 1) / 2
	if threshold < 1 {
		threshold = 1
	}
	if len(covered) >= threshold {
		technical = RatingGood
		if wordCount < 40 {
			depth = DepthAdequate
		} else {
			depth = DepthGood
		}
	}

	score := base + bonus - penalty
	if score < 5 {
		score = 5
	}
	if score > 100 {
		score = 100
	}

	var pieces []string
	if penalty > 0 {
		pieces = append(pieces, "Answer appears noisy or contains random characters; please provide a clearer response.")
	}
	if len(covered) > 0 {
		pieces = append(pieces, "You covered: "+strings.Join(covered, ", "))
	}
	if len(missing) > 0 {
		pieces = append(pieces, "Missing: "+strings.Join(missing, ", "))
	}
	feedback := fmt.Sprintf("Good answer. Score: %d/100", score)
	if len(pieces) > 0 {
		feedback = strings.Join(pieces, " ") + fmt.Sprintf(" Score: %d/100", score)
	}

	if len(covered) == 0 {
		covered = []string{"Provided relevant examples"}
	}
	if len(missing) == 0 {
		missing = []string{"Could add more technical depth"}
	}

	return &Analysis{
		OverallScore:  score,
		PointsCovered: covered,
		MissingPoints: missing,
		Communication: comm,
		Technical:     technical,
		Depth:         depth,
		Feedback:      feedback,
	}, nil
}

// distinctNonSpace counts distinct non-whitespace runes in s.
func distinctNonSpace(s string) int {
	seen := make(map[rune]struct{})
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		seen[r] = struct{}{}
	}
	return len(seen)
}
