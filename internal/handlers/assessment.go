package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/aida-nabila/code-map/internal/models"
	"github.com/aida-nabila/code-map/internal/repositories"
	"github.com/aida-nabila/code-map/internal/services"
)

type AssessmentHandler struct {
	userRepo        repositories.UserTestRepository
	followUpRepo    repositories.FollowUpRepository
	questionService services.QuestionGeneratorService
}

func NewAssessmentHandler(
	userRepo repositories.UserTestRepository,
	followUpRepo repositories.FollowUpRepository,
	questionService services.QuestionGeneratorService,
) *AssessmentHandler {
	return &AssessmentHandler{
		userRepo:        userRepo,
		followUpRepo:    followUpRepo,
		questionService: questionService,
	}
}

// HandleSubmitTest handles POST /submit-test
func (h *AssessmentHandler) HandleSubmitTest(c *fiber.Ctx) error {
	var req models.SubmitTestRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	test := &models.UserTest{
		EducationLevel:       req.EducationLevel,
		CGPA:                 req.CGPA,
		Major:                req.Major,
		ProgrammingLanguages: strings.Join(req.ProgrammingLanguages, ","),
		CourseworkExperience: req.CourseworkExperience,
		SkillReflection:      req.SkillReflection,
	}

	if err := h.userRepo.Create(test); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save test responses",
		})
	}

	return c.JSON(models.SubmitTestResponse{
		Message: "Data saved successfully",
		ID:      test.ID,
	})
}

// HandleGenerateQuestions handles POST /generate-questions
func (h *AssessmentHandler) HandleGenerateQuestions(c *fiber.Ctx) error {
	var req models.SkillReflectionRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	questions, err := h.questionService.GenerateForUser(c.UserContext(), req.UserTestID)
	if err != nil {
		if errors.Is(err, services.ErrNoSkillReflection) {
			return c.JSON(fiber.Map{
				"error": "No skill reflection found for this user_test_id",
			})
		}

		return c.JSON(fiber.Map{
			"error": fmt.Sprintf("Internal Server Error: %v", err),
		})
	}

	if questions == nil {
		questions = []models.QuestionPayload{}
	}

	return c.JSON(models.GenerateQuestionsResponse{Questions: questions})
}

// HandleSubmitFollowUp handles POST /submit-follow-up
func (h *AssessmentHandler) HandleSubmitFollowUp(c *fiber.Ctx) error {
	var req models.FollowUpSubmissions

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	answers := make([]*models.FollowUpAnswer, 0, len(req.Responses))
	for _, resp := range req.Responses {
		answers = append(answers, &models.FollowUpAnswer{
			UserTestID:     resp.UserTestID,
			QuestionID:     resp.QuestionID,
			SelectedOption: resp.SelectedOption,
		})
	}

	if err := h.followUpRepo.CreateBatch(answers); err != nil {
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Follow-up answers saved successfully",
	})
}
