package questiongen

import (
	"context"
	"strings"
	"testing"
)

func TestTemplateGenerator_BatchShape(t *testing.T) {
	g := NewTemplateGenerator()
	questions, err := g.Generate(context.Background(), Input{
		Role: "backend",
		Skills: []Skill{
			{Name: "Go", Proficiency: "advanced"},
			{Name: "PostgreSQL", Proficiency: "intermediate"},
		},
		Count: 8,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(questions) != 8 {
		t.Fatalf("got %d questions, want 8", len(questions))
	}

	ids := make(map[string]bool)
	numbers := make(map[int]bool)
	for _, q := range questions {
		if ids[q.ID] {
			t.Errorf("duplicate question id %q", q.ID)
		}
		ids[q.ID] = true

		if numbers[q.Number] {
			t.Errorf("duplicate ordinal %d", q.Number)
		}
		numbers[q.Number] = true

		if q.Text == "" || q.SkillTested == "" {
			t.Errorf("question %q missing text or skill", q.ID)
		}
		if strings.Contains(q.Text, "{skill}") {
			t.Errorf("question %q has an unexpanded skill marker", q.ID)
		}
		if len(q.ExpectedPoints) != 4 {
			t.Errorf("question %q has %d expected points, want 4", q.ID, len(q.ExpectedPoints))
		}
	}

	// Ordinals cover 1..N after the shuffle renumbering.
	for n := 1; n <= 8; n++ {
		if !numbers[n] {
			t.Errorf("ordinal %d missing", n)
		}
	}
}

func TestTemplateGenerator_DifficultySplit(t *testing.T) {
	g := NewTemplateGenerator()
	questions, err := g.Generate(context.Background(), Input{
		Skills: []Skill{{Name: "React", Proficiency: "intermediate"}},
		Count:  9,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	counts := map[Difficulty]int{}
	for _, q := range questions {
		counts[q.Difficulty]++
	}
	if counts[DifficultyEasy] != 3 || counts[DifficultyMedium] != 3 || counts[DifficultyHard] != 3 {
		t.Fatalf("got difficulty split %v, want 3/3/3", counts)
	}
}

func TestTemplateGenerator_NoSkillsDefaultsToGeneral(t *testing.T) {
	g := NewTemplateGenerator()
	questions, err := g.Generate(context.Background(), Input{Count: 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, q := range questions {
		if q.SkillTested != "General" {
			t.Fatalf("got skill %q, want General", q.SkillTested)
		}
	}
}

func TestTemplateGenerator_DefaultCount(t *testing.T) {
	g := NewTemplateGenerator()
	questions, err := g.Generate(context.Background(), Input{
		Skills: []Skill{{Name: "Kafka", Proficiency: "beginner"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(questions) != DefaultCount {
		t.Fatalf("got %d questions, want %d", len(questions), DefaultCount)
	}
}
