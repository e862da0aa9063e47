package handler

import (
	"github.com/Malay-Max/QuizWhiz-sub001/internal/domain"
	"github.com/Malay-Max/QuizWhiz-sub001/internal/dto"
	"github.com/Malay-Max/QuizWhiz-sub001/internal/service"
	"github.com/Malay-Max/QuizWhiz-sub001/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// AIHandler handles AI-assisted authoring HTTP requests
type AIHandler struct {
	service   service.AIService
	validator *validation.Validator
}

// NewAIHandler creates a new AIHandler instance
func NewAIHandler(service service.AIService) *AIHandler {
	return &AIHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// SuggestDistractors godoc
// @Summary Generate distractor options
// @Description Asks the language model for plausible-but-wrong options for a question
// @Tags ai
// @Accept json
// @Produce json
// @Param request body dto.SuggestDistractorsRequest true "Question and correct answer"
// @Success 200 {object} dto.Response{data=dto.SuggestDistractorsResponse}
// @Failure 400 {object} dto.Response
// @Failure 503 {object} dto.Response
// @Security BearerAuth
// @Router /ai/suggest-distractors [post]
func (h *AIHandler) SuggestDistractors(c *fiber.Ctx) error {
	var req dto.SuggestDistractorsRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewValidationError("Invalid request body")
	}
	if errs := h.validator.ValidateSuggestDistractorsRequest(req); len(errs) > 0 {
		return errs
	}

	resp, err := h.service.SuggestDistractors(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(resp))
}
