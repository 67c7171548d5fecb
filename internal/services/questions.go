package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/aida-nabila/code-map/internal/config"
	"github.com/aida-nabila/code-map/internal/models"
	"github.com/aida-nabila/code-map/internal/repositories"
)

type QuestionGeneratorService interface {
	GenerateForUser(ctx context.Context, userTestID int) ([]models.QuestionPayload, error)
}

type questionGeneratorService struct {
	userRepo      repositories.UserTestRepository
	questionRepo  repositories.QuestionRepository
	gemini        GeminiService
	promptBuilder *PromptBuilder
	temperature   float32
}

func NewQuestionGeneratorService(
	userRepo repositories.UserTestRepository,
	questionRepo repositories.QuestionRepository,
	gemini GeminiService,
	cfg config.GeminiConfig,
) QuestionGeneratorService {
	return &questionGeneratorService{
		userRepo:      userRepo,
		questionRepo:  questionRepo,
		gemini:        gemini,
		promptBuilder: NewPromptBuilder(),
		temperature:   cfg.Temperature,
	}
}

type generatedQuestionJSON struct {
	Question   string   `json:"question"`
	Options    []string `json:"options"`
	Answer     string   `json:"answer"`
	Difficulty string   `json:"difficulty"`
	Category   string   `json:"category"`
}

// GenerateForUser builds follow-up multiple-choice questions from the
// user's stored skill reflection and persists them in one transaction.
func (s *questionGeneratorService) GenerateForUser(ctx context.Context, userTestID int) ([]models.QuestionPayload, error) {
	user, err := s.userRepo.FindByID(userTestID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNoSkillReflection
		}
		return nil, err
	}
	if strings.TrimSpace(user.SkillReflection) == "" {
		return nil, ErrNoSkillReflection
	}

	prompt := s.promptBuilder.BuildQuestionsPrompt(user.SkillReflection)

	raw, err := s.gemini.GenerateText(ctx, prompt, s.temperature)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	var parsed struct {
		Questions []generatedQuestionJSON `json:"questions"`
	}
	if err := json.Unmarshal([]byte(extractJSON(raw)), &parsed); err != nil {
		return nil, fmt.Errorf("%w: unparseable response: %v", ErrGeneration, err)
	}

	questions := make([]*models.GeneratedQuestion, 0, len(parsed.Questions))
	for _, q := range parsed.Questions {
		if q.Question == "" || len(q.Options) == 0 {
			continue
		}

		optionsJSON, err := json.Marshal(q.Options)
		if err != nil {
			return nil, fmt.Errorf("failed to encode options: %w", err)
		}

		difficulty := q.Difficulty
		if difficulty == "" {
			difficulty = "easy"
		}
		category := q.Category
		if category == "" {
			category = "general"
		}

		questions = append(questions, &models.GeneratedQuestion{
			UserTestID:   userTestID,
			QuestionText: q.Question,
			Options:      string(optionsJSON),
			Answer:       q.Answer,
			Difficulty:   difficulty,
			QuestionType: category,
		})
	}

	if err := s.questionRepo.CreateBatch(questions); err != nil {
		return nil, err
	}

	payloads := make([]models.QuestionPayload, 0, len(questions))
	for _, q := range questions {
		var options []string
		if err := json.Unmarshal([]byte(q.Options), &options); err != nil {
			return nil, fmt.Errorf("failed to decode options: %w", err)
		}

		payloads = append(payloads, models.QuestionPayload{
			ID:         q.ID,
			Question:   q.QuestionText,
			Options:    options,
			Answer:     q.Answer,
			Difficulty: q.Difficulty,
			Category:   q.QuestionType,
		})
	}

	return payloads, nil
}

// extractJSON strips markdown fences and surrounding prose from a model
// response that should contain a JSON object or array.
func extractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	startObj := strings.Index(text, "{")
	startArr := strings.Index(text, "[")
	endObj := strings.LastIndex(text, "}")
	endArr := strings.LastIndex(text, "]")

	if startObj != -1 && endObj != -1 && endObj > startObj {
		return text[startObj : endObj+1]
	} else if startArr != -1 && endArr != -1 && endArr > startArr {
		return text[startArr : endArr+1]
	}

	return text
}
