package questiongen

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
)

const systemPrompt = `You are an expert technical interviewer. You design question sets that reveal genuine competency, flow naturally from easier to harder, and stay specific to the candidate's declared skills. You respond with structured JSON only.`

var batchUserTemplate = template.Must(template.New("question-batch").Parse(`You are an expert technical interviewer for a {{.RoleUpper}} position.

CONTEXT:
- Candidate: {{.CandidateName}}
- Experience Level: {{.Experience}}
- Skills to assess: {{.SkillsLine}}
- Total questions: {{.Count}}
{{.ExcludeText}}
TASK: Generate {{.Count}} technical interview questions that:
1. Are specifically tailored to the candidate's selected skills
2. Match their experience level ({{.Experience}})
3. Create a natural flow (start easier, progressively harder)
4. Mix different question types (theory, practical, problem-solving, communication)
5. Are designed to reveal genuine competency

IMPORTANT:
- Each question should test specific skill areas
- Include reasoning for why each question assesses that skill
- Make questions conversational and not robotic
- Avoid generic questions - be specific to their skills
- Distribute questions across different skills`))

type batchPromptData struct {
	CandidateName string
	RoleUpper     string
	Experience    string
	SkillsLine    string
	Count         int
	ExcludeText   string
}

// buildBatchMessage renders the user message for one batch request.
func buildBatchMessage(input Input, count int) (string, error) {
	parts := make([]string, 0, len(input.Skills))
	for _, s := range input.Skills {
		parts = append(parts, fmt.Sprintf("%s (%s)", s.Name, s.Proficiency))
	}

	excludeText := "\n"
	if len(input.ExcludeIDs) > 0 {
		excludeText = "\nEXCLUDE THESE QUESTION IDS (do not repeat): " + strings.Join(input.ExcludeIDs, ", ") + "\n\n"
	}

	data := batchPromptData{
		CandidateName: input.CandidateName,
		RoleUpper:     strings.ToUpper(input.Role),
		Experience:    input.Experience,
		SkillsLine:    strings.Join(parts, ", "),
		Count:         count,
		ExcludeText:   excludeText,
	}

	var buf bytes.Buffer
	if err := batchUserTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
