package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/aida-nabila/code-map/internal/config"
	"github.com/aida-nabila/code-map/internal/models"
	"github.com/aida-nabila/code-map/internal/repositories"
)

type fakeGemini struct {
	textReply string
	textErr   error
	embedding []float32
	embedErr  error
	prompts   []string
	embedded  []string
}

func (f *fakeGemini) GenerateText(_ context.Context, prompt string, _ float32) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.textErr != nil {
		return "", f.textErr
	}
	return f.textReply, nil
}

func (f *fakeGemini) GenerateEmbedding(_ context.Context, text string) ([]float32, error) {
	f.embedded = append(f.embedded, text)
	if f.embedErr != nil {
		return nil, f.embedErr
	}
	return f.embedding, nil
}

type fakeUserRepo struct {
	tests map[int]*models.UserTest
}

func (f *fakeUserRepo) Create(test *models.UserTest) error {
	test.ID = len(f.tests) + 1
	f.tests[test.ID] = test
	return nil
}

func (f *fakeUserRepo) FindByID(id int) (*models.UserTest, error) {
	if test, ok := f.tests[id]; ok {
		return test, nil
	}
	return nil, fmt.Errorf("user test %d: %w", id, repositories.ErrNotFound)
}

type fakeQuestionRepo struct {
	questions map[int]*models.GeneratedQuestion
	createErr error
}

func (f *fakeQuestionRepo) CreateBatch(questions []*models.GeneratedQuestion) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, q := range questions {
		q.ID = len(f.questions) + 1
		f.questions[q.ID] = q
	}
	return nil
}

func (f *fakeQuestionRepo) FindByID(id int) (*models.GeneratedQuestion, error) {
	if q, ok := f.questions[id]; ok {
		return q, nil
	}
	return nil, fmt.Errorf("question %d: %w", id, repositories.ErrNotFound)
}

func (f *fakeQuestionRepo) FindByUserTest(userTestID int) ([]models.GeneratedQuestion, error) {
	var out []models.GeneratedQuestion
	for _, q := range f.questions {
		if q.UserTestID == userTestID {
			out = append(out, *q)
		}
	}
	return out, nil
}

type fakeFollowUpRepo struct {
	answers []models.FollowUpAnswer
}

func (f *fakeFollowUpRepo) CreateBatch(answers []*models.FollowUpAnswer) error {
	for _, a := range answers {
		f.answers = append(f.answers, *a)
	}
	return nil
}

func (f *fakeFollowUpRepo) FindByUserTest(userTestID int) ([]models.FollowUpAnswer, error) {
	var out []models.FollowUpAnswer
	for _, a := range f.answers {
		if a.UserTestID == userTestID {
			out = append(out, a)
		}
	}
	return out, nil
}

func newProfileFixture() (*fakeUserRepo, *fakeQuestionRepo, *fakeFollowUpRepo, *fakeGemini, ProfileService) {
	userRepo := &fakeUserRepo{tests: map[int]*models.UserTest{
		1: {
			ID:                   1,
			EducationLevel:       "Bachelors",
			CGPA:                 3.5,
			Major:                "CS",
			ProgrammingLanguages: "Python,Go",
			SkillReflection:      "strong in backend systems",
		},
	}}
	questionRepo := &fakeQuestionRepo{questions: map[int]*models.GeneratedQuestion{
		10: {ID: 10, UserTestID: 1, QuestionText: "q1", Answer: "A"},
		11: {ID: 11, UserTestID: 1, QuestionText: "q2", Answer: "B"},
	}}
	followUpRepo := &fakeFollowUpRepo{answers: []models.FollowUpAnswer{
		{ID: 1, UserTestID: 1, QuestionID: 10, SelectedOption: "A"},
		{ID: 2, UserTestID: 1, QuestionID: 11, SelectedOption: "C"},
	}}
	gemini := &fakeGemini{
		textReply: " a generated profile ",
		embedding: []float32{0.1, 0.2},
	}

	svc := NewProfileService(userRepo, questionRepo, followUpRepo, gemini, config.GeminiConfig{Temperature: 0.2})
	return userRepo, questionRepo, followUpRepo, gemini, svc
}

func TestAggregateGradesAnswersAndScores(t *testing.T) {
	_, _, _, _, svc := newProfileFixture()

	data, err := svc.Aggregate(1)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if data.Score != 0.5 {
		t.Fatalf("expected score 0.5, got %v", data.Score)
	}
	if len(data.FollowUpResults) != 2 {
		t.Fatalf("expected 2 results, got %d", len(data.FollowUpResults))
	}
	if !data.FollowUpResults[0].IsCorrect || data.FollowUpResults[1].IsCorrect {
		t.Fatalf("unexpected grading: %+v", data.FollowUpResults)
	}
	langs := data.UserResponses.ProgrammingLanguages
	if len(langs) != 2 || langs[0] != "Python" || langs[1] != "Go" {
		t.Fatalf("unexpected languages: %v", langs)
	}
}

func TestAggregateUnknownUser(t *testing.T) {
	_, _, _, _, svc := newProfileFixture()

	_, err := svc.Aggregate(99)
	if !errors.Is(err, repositories.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestBuildUserEmbeddingShortCircuitsOnMissingUser(t *testing.T) {
	_, _, _, gemini, svc := newProfileFixture()

	_, _, _, err := svc.BuildUserEmbedding(context.Background(), 99)
	if err == nil {
		t.Fatal("expected error")
	}
	if len(gemini.prompts) != 0 || len(gemini.embedded) != 0 {
		t.Fatal("generative API must not be called when aggregation fails")
	}
}

func TestSynthesizePromptCarriesScoreAndInstruction(t *testing.T) {
	_, _, _, gemini, svc := newProfileFixture()

	data, err := svc.Aggregate(1)
	if err != nil {
		t.Fatalf("aggregate failed: %v", err)
	}

	text, err := svc.Synthesize(context.Background(), data)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if text != "a generated profile" {
		t.Fatalf("expected trimmed profile text, got %q", text)
	}

	prompt := gemini.prompts[0]
	for _, want := range []string{
		`"score": 0.5`,
		"strong in backend systems",
		"semicolons",
		"more accurate self-assessment",
	} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestSynthesizeWrapsGenerationFailure(t *testing.T) {
	_, _, _, gemini, svc := newProfileFixture()
	gemini.textErr = errors.New("rate limited")

	data, err := svc.Aggregate(1)
	if err != nil {
		t.Fatalf("aggregate failed: %v", err)
	}

	_, err = svc.Synthesize(context.Background(), data)
	if !errors.Is(err, ErrGeneration) {
		t.Fatalf("expected ErrGeneration, got %v", err)
	}
}

func TestBuildUserEmbeddingEmbedsProfileText(t *testing.T) {
	_, _, _, gemini, svc := newProfileFixture()

	profileText, embedding, data, err := svc.BuildUserEmbedding(context.Background(), 1)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if profileText != "a generated profile" {
		t.Fatalf("unexpected profile text %q", profileText)
	}
	if len(embedding) != 2 {
		t.Fatalf("unexpected embedding %v", embedding)
	}
	if gemini.embedded[0] != profileText {
		t.Fatalf("embedded %q, want the profile text", gemini.embedded[0])
	}
	if data.UserTestID != 1 {
		t.Fatalf("unexpected combined data: %+v", data)
	}
}
