package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aida-nabila/code-map/internal/models"
	"github.com/aida-nabila/code-map/internal/services"
)

type MatchHandler struct {
	runtime        *services.Runtime
	profileService services.ProfileService
	matcherService services.MatcherService
}

func NewMatchHandler(
	runtime *services.Runtime,
	profileService services.ProfileService,
	matcherService services.MatcherService,
) *MatchHandler {
	return &MatchHandler{
		runtime:        runtime,
		profileService: profileService,
		matcherService: matcherService,
	}
}

// HandleHealth handles GET /health
func (h *MatchHandler) HandleHealth(c *fiber.Ctx) error {
	status := "starting"
	if h.runtime.Ready() {
		status = "ready"
	}

	return c.JSON(fiber.Map{
		"status": status,
	})
}

// HandleProfileMatch handles POST /user-profile-match. Pipeline failures
// are reported inside combined_data rather than as transport errors, so
// the response shape is uniform for the caller.
func (h *MatchHandler) HandleProfileMatch(c *fiber.Ctx) error {
	var req models.SkillReflectionRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if !h.runtime.Initialized() {
		return c.JSON(matchError("", services.ErrNotInitialized.Error()))
	}

	profileText, userEmbedding, combinedData, err := h.profileService.BuildUserEmbedding(c.UserContext(), req.UserTestID)
	if err != nil {
		return c.JSON(matchError("", err.Error()))
	}

	matches, err := h.matcherService.Match(c.UserContext(), req.UserTestID, userEmbedding)
	if err != nil {
		return c.JSON(matchError(profileText, err.Error()))
	}

	return c.JSON(models.UserProfileMatchResponse{
		ProfileText:  profileText,
		TopMatches:   matches,
		CombinedData: combinedData,
	})
}

func matchError(profileText, message string) models.UserProfileMatchResponse {
	return models.UserProfileMatchResponse{
		ProfileText:  profileText,
		TopMatches:   []models.JobMatch{},
		CombinedData: models.ErrorData{Error: message},
	}
}
