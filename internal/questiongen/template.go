package questiongen

import (
	"context"
	"fmt"
	"math/rand/v2"
	"regexp"
	"strings"
)

// questionCategory is one bank of question templates. Templates interpolate
// the skill name at the {skill} marker.
type questionCategory struct {
	name      string
	templates []string
}

// categories is the template bank, cycled in order across the batch.
var categories = []questionCategory{
	{
		name: "project_experience",
		templates: []string{
			"Describe a challenging project where you used {skill}. What technical decisions did you make and why?",
			"Walk me through how you architected a solution using {skill}. What were the key design considerations?",
			"Tell me about a time when you had to optimize performance in a {skill} application. What was your approach?",
			"Explain a real-world problem you solved using {skill}. What alternatives did you consider?",
		},
	},
	{
		name: "technical_deep_dive",
		templates: []string{
			"How does {skill} handle state management? Explain with examples from your experience.",
			"What are the most common pitfalls when working with {skill}, and how do you avoid them?",
			"Compare {skill} with alternative approaches. When would you choose each?",
			"Explain the internals of how {skill} works. What happens under the hood?",
		},
	},
	{
		name: "problem_solving",
		templates: []string{
			"If you encountered a memory leak in {skill}, how would you debug and resolve it?",
			"Design a scalable system that uses {skill} for real-time data processing. What would be your approach?",
			"How would you scale a {skill} application to handle 10x traffic? Walk me through your strategy.",
			"Describe how you would implement authentication and authorization using {skill}. What challenges would you anticipate?",
		},
	},
	{
		name: "best_practices",
		templates: []string{
			"What are your go-to best practices when working with {skill}?",
			"How do you ensure code quality and maintainability in {skill} projects?",
			"Describe your testing strategy for {skill} applications.",
			"How do you stay updated with {skill}? What recent changes have impacted your work?",
		},
	},
	{
		name: "collaboration",
		templates: []string{
			"How do you explain {skill} concepts to non-technical stakeholders?",
			"Describe a code review where you gave or received feedback about {skill} implementation.",
			"How have you mentored others in {skill}? What approach do you take?",
			"Tell me about a time you had to make a technical compromise in a {skill} project. How did you communicate this?",
		},
	},
}

var nonAlnum = regexp.MustCompile(`[^a-zA-Z0-9]`)

// TemplateGenerator produces a question batch from the fixed template bank.
// It needs no model and is fully offline, which makes it both the dev-mode
// generator and the fallback when the model path fails.
type TemplateGenerator struct{}

// NewTemplateGenerator creates a TemplateGenerator.
func NewTemplateGenerator() *TemplateGenerator {
	return &TemplateGenerator{}
}

// Generate builds the batch by cycling skills and categories, assigning
// difficulty by thirds, then shuffling and renumbering for variety.
func (g *TemplateGenerator) Generate(_ context.Context, input Input) ([]Question, error) {
	total := input.Count
	if total <= 0 {
		total = DefaultCount
	}

	skills := input.Skills
	if len(skills) == 0 {
		skills = []Skill{{Name: "General", Proficiency: "intermediate"}}
	}

	questions := make([]Question, 0, total)
	for i := 0; i < total; i++ {
		skill := skills[i%len(skills)]
		cat := categories[i%len(categories)]
		tmpl := cat.templates[i%len(cat.templates)]

		difficulty := DifficultyHard
		switch {
		case i < total/3:
			difficulty = DifficultyEasy
		case i < 2*total/3:
			difficulty = DifficultyMedium
		}

		questions = append(questions, Question{
			ID:          fmt.Sprintf("q_%d_%s_%s", i+1, cat.name[:4], nonAlnum.ReplaceAllString(skill.Name, "")),
			Number:      i + 1,
			Text:        strings.ReplaceAll(tmpl, "{skill}", skill.Name),
			SkillTested: skill.Name,
			Difficulty:  difficulty,
			ExpectedPoints: []string{
				fmt.Sprintf("Demonstrates practical understanding of %s", skill.Name),
				"Provides specific examples or details",
				"Shows decision-making and reasoning",
				"Explains trade-offs and alternatives",
			},
			Rationale: fmt.Sprintf("Evaluates %s with %s", strings.ReplaceAll(cat.name, "_", " "), skill.Name),
			FollowUp:  fmt.Sprintf("Can you elaborate on the technical details of your %s implementation?", skill.Name),
		})
	}

	// Shuffle for natural variety, then renumber in the new order.
	rand.Shuffle(len(questions), func(i, j int) {
		questions[i], questions[j] = questions[j], questions[i]
	})
	for i := range questions {
		questions[i].Number = i + 1
	}

	return questions, nil
}
