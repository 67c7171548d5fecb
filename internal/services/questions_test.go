package services

import (
	"context"
	"errors"
	"testing"

	"github.com/aida-nabila/code-map/internal/config"
	"github.com/aida-nabila/code-map/internal/models"
)

const fencedQuestionsReply = "```json\n" + `{
  "questions": [
    {
      "question": "Which Go construct starts a concurrent task?",
      "options": ["go", "async", "spawn", "fork"],
      "answer": "go",
      "difficulty": "easy",
      "category": "concurrency"
    },
    {
      "question": "",
      "options": [],
      "answer": "",
      "difficulty": "",
      "category": ""
    },
    {
      "question": "What does SELECT 1 return?",
      "options": ["1", "error", "null", "true"],
      "answer": "1"
    }
  ]
}` + "\n```"

func newQuestionFixture(reply string) (*fakeQuestionRepo, *fakeGemini, QuestionGeneratorService) {
	userRepo := &fakeUserRepo{tests: map[int]*models.UserTest{
		1: {ID: 1, SkillReflection: "strong in backend systems"},
		2: {ID: 2, SkillReflection: "   "},
	}}
	questionRepo := &fakeQuestionRepo{questions: map[int]*models.GeneratedQuestion{}}
	gemini := &fakeGemini{textReply: reply}

	svc := NewQuestionGeneratorService(userRepo, questionRepo, gemini, config.GeminiConfig{Temperature: 0.2})
	return questionRepo, gemini, svc
}

func TestGenerateForUserParsesFencedJSON(t *testing.T) {
	questionRepo, _, svc := newQuestionFixture(fencedQuestionsReply)

	payloads, err := svc.GenerateForUser(context.Background(), 1)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	// The entry with no text/options is dropped.
	if len(payloads) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(payloads))
	}
	if payloads[0].ID == 0 {
		t.Fatal("expected persisted question to carry its id")
	}
	if payloads[0].Category != "concurrency" {
		t.Fatalf("unexpected category %q", payloads[0].Category)
	}
	if payloads[1].Difficulty != "easy" || payloads[1].Category != "general" {
		t.Fatalf("expected defaults for missing tags, got %+v", payloads[1])
	}
	if len(questionRepo.questions) != 2 {
		t.Fatalf("expected 2 persisted questions, got %d", len(questionRepo.questions))
	}
}

func TestGenerateForUserBlankReflection(t *testing.T) {
	_, gemini, svc := newQuestionFixture(fencedQuestionsReply)

	_, err := svc.GenerateForUser(context.Background(), 2)
	if !errors.Is(err, ErrNoSkillReflection) {
		t.Fatalf("expected ErrNoSkillReflection, got %v", err)
	}
	if len(gemini.prompts) != 0 {
		t.Fatal("generator must not be called without a reflection")
	}
}

func TestGenerateForUserUnknownUser(t *testing.T) {
	_, _, svc := newQuestionFixture(fencedQuestionsReply)

	_, err := svc.GenerateForUser(context.Background(), 99)
	if !errors.Is(err, ErrNoSkillReflection) {
		t.Fatalf("expected ErrNoSkillReflection, got %v", err)
	}
}

func TestGenerateForUserUnparseableReply(t *testing.T) {
	_, _, svc := newQuestionFixture("sorry, I cannot help with that")

	_, err := svc.GenerateForUser(context.Background(), 1)
	if !errors.Is(err, ErrGeneration) {
		t.Fatalf("expected ErrGeneration, got %v", err)
	}
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain object", `{"a":1}`, `{"a":1}`},
		{"fenced object", "```json\n{\"a\":1}\n```", "{\"a\":1}"},
		{"object with prose", `Here you go: {"a":1} hope it helps`, `{"a":1}`},
		{"array", `[1,2,3]`, `[1,2,3]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractJSON(tt.in); got != tt.want {
				t.Fatalf("extractJSON(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
