package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/aida-nabila/code-map/internal/config"
	"github.com/aida-nabila/code-map/internal/repositories"
)

// UserResponses is the typed projection of a stored user test used for
// prompt building and the combined_data response payload.
type UserResponses struct {
	EducationLevel       string   `json:"educationLevel"`
	CGPA                 float64  `json:"cgpa"`
	Major                string   `json:"major"`
	ProgrammingLanguages []string `json:"programmingLanguages"`
	CourseworkExperience string   `json:"courseworkExperience"`
	SkillReflection      string   `json:"skillReflection"`
}

// AggregatedUserData combines everything known about one user test:
// the stored responses, the graded follow-up results, and the
// consistency score. Recomputed on each match request, never persisted.
type AggregatedUserData struct {
	UserTestID      int              `json:"user_test_id"`
	UserResponses   UserResponses    `json:"user_responses"`
	FollowUpResults []QuestionResult `json:"follow_up_results"`
	Score           float64          `json:"score"`
}

type ProfileService interface {
	Aggregate(userTestID int) (*AggregatedUserData, error)
	Synthesize(ctx context.Context, data *AggregatedUserData) (string, error)
	BuildUserEmbedding(ctx context.Context, userTestID int) (string, []float32, *AggregatedUserData, error)
}

type profileService struct {
	userRepo      repositories.UserTestRepository
	questionRepo  repositories.QuestionRepository
	followUpRepo  repositories.FollowUpRepository
	gemini        GeminiService
	promptBuilder *PromptBuilder
	temperature   float32
}

func NewProfileService(
	userRepo repositories.UserTestRepository,
	questionRepo repositories.QuestionRepository,
	followUpRepo repositories.FollowUpRepository,
	gemini GeminiService,
	cfg config.GeminiConfig,
) ProfileService {
	return &profileService{
		userRepo:      userRepo,
		questionRepo:  questionRepo,
		followUpRepo:  followUpRepo,
		gemini:        gemini,
		promptBuilder: NewPromptBuilder(),
		temperature:   cfg.Temperature,
	}
}

// Aggregate fetches the stored user responses and follow-up answers,
// grades each answer against its question, and computes the score.
func (p *profileService) Aggregate(userTestID int) (*AggregatedUserData, error) {
	user, err := p.userRepo.FindByID(userTestID)
	if err != nil {
		return nil, fmt.Errorf("no user responses found for user_test_id %d: %w", userTestID, err)
	}

	answers, err := p.followUpRepo.FindByUserTest(userTestID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch follow-up answers: %w", err)
	}

	results := make([]QuestionResult, 0, len(answers))
	for _, answer := range answers {
		result := QuestionResult{
			QuestionID:     answer.QuestionID,
			SelectedOption: answer.SelectedOption,
		}

		question, err := p.questionRepo.FindByID(answer.QuestionID)
		switch {
		case err == nil:
			result.Answer = question.Answer
			result.IsCorrect = question.Answer == answer.SelectedOption
		case errors.Is(err, repositories.ErrNotFound):
			// An orphaned answer counts as incorrect, not as a failure.
		default:
			return nil, fmt.Errorf("failed to fetch question %d: %w", answer.QuestionID, err)
		}

		results = append(results, result)
	}

	return &AggregatedUserData{
		UserTestID: userTestID,
		UserResponses: UserResponses{
			EducationLevel:       user.EducationLevel,
			CGPA:                 user.CGPA,
			Major:                user.Major,
			ProgrammingLanguages: splitLanguages(user.ProgrammingLanguages),
			CourseworkExperience: user.CourseworkExperience,
			SkillReflection:      user.SkillReflection,
		},
		FollowUpResults: results,
		Score:           CalculateScore(results),
	}, nil
}

// Synthesize turns aggregated user data into a natural-language profile
// via one generative call. API failures are not retried here.
func (p *profileService) Synthesize(ctx context.Context, data *AggregatedUserData) (string, error) {
	payload, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode user data: %w", err)
	}

	prompt := p.promptBuilder.BuildProfilePrompt(string(payload))

	text, err := p.gemini.GenerateText(ctx, prompt, p.temperature)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	return strings.TrimSpace(text), nil
}

// BuildUserEmbedding runs the aggregation -> synthesis -> embedding leg
// of the match pipeline. Aggregation failure short-circuits before any
// generative call is made.
func (p *profileService) BuildUserEmbedding(ctx context.Context, userTestID int) (string, []float32, *AggregatedUserData, error) {
	data, err := p.Aggregate(userTestID)
	if err != nil {
		return "", nil, nil, err
	}

	profileText, err := p.Synthesize(ctx, data)
	if err != nil {
		return "", nil, nil, err
	}

	embedding, err := p.gemini.GenerateEmbedding(ctx, profileText)
	if err != nil {
		return "", nil, nil, fmt.Errorf("failed to embed user profile: %w", err)
	}

	return profileText, embedding, data, nil
}

func splitLanguages(stored string) []string {
	parts := strings.Split(stored, ",")
	languages := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			languages = append(languages, p)
		}
	}
	return languages
}
