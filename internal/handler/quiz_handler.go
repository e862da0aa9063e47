package handler

import (
	"github.com/Malay-Max/QuizWhiz-sub001/internal/domain"
	"github.com/Malay-Max/QuizWhiz-sub001/internal/dto"
	"github.com/Malay-Max/QuizWhiz-sub001/internal/middleware"
	"github.com/Malay-Max/QuizWhiz-sub001/internal/service"
	"github.com/Malay-Max/QuizWhiz-sub001/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// QuizHandler handles quiz session HTTP requests
type QuizHandler struct {
	service   service.QuizService
	validator *validation.Validator
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizService) *QuizHandler {
	return &QuizHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// StartQuiz godoc
// @Summary Start a quiz session
// @Description Draws questions from the category subtree (or the whole pool for "random") and opens a timed session
// @Tags quiz
// @Accept json
// @Produce json
// @Param quiz body dto.StartQuizRequest true "Quiz parameters"
// @Success 201 {object} dto.Response{data=dto.StartQuizResponse}
// @Failure 400 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Security BearerAuth
// @Router /quizzes [post]
func (h *QuizHandler) StartQuiz(c *fiber.Ctx) error {
	var req dto.StartQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewValidationError("Invalid request body")
	}
	if errs := h.validator.ValidateStartQuizRequest(req); len(errs) > 0 {
		return errs
	}

	resp, err := h.service.StartQuiz(c.Context(), &req, middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(resp))
}

// SubmitAnswer godoc
// @Summary Submit an answer for the current question
// @Description Accepts the answer for the session's current question only; an empty selected_answer_id records a skip
// @Tags quiz
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param answer body dto.SubmitAnswerRequest true "Answer"
// @Success 200 {object} dto.Response{data=dto.SubmitAnswerResponse}
// @Failure 400 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Failure 409 {object} dto.Response
// @Security BearerAuth
// @Router /quizzes/{id}/answer [post]
func (h *QuizHandler) SubmitAnswer(c *fiber.Ctx) error {
	sessionID := c.Params("id")

	var req dto.SubmitAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewValidationError("Invalid request body")
	}
	if errs := h.validator.ValidateSubmitAnswerRequest(sessionID, req); len(errs) > 0 {
		return errs
	}

	resp, err := h.service.SubmitAnswer(c.Context(), sessionID, &req, middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(resp))
}

// PauseQuiz godoc
// @Summary Pause a running session
// @Tags quiz
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.Response{data=dto.SessionStatusResponse}
// @Failure 400 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Security BearerAuth
// @Router /quizzes/{id}/pause [post]
func (h *QuizHandler) PauseQuiz(c *fiber.Ctx) error {
	sessionID := c.Params("id")
	if errs := h.validator.ValidateID("id", sessionID); len(errs) > 0 {
		return errs
	}

	resp, err := h.service.PauseQuiz(c.Context(), sessionID, middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(resp))
}

// ResumeQuiz godoc
// @Summary Resume a paused session
// @Tags quiz
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.Response{data=dto.SessionStatusResponse}
// @Failure 400 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Security BearerAuth
// @Router /quizzes/{id}/resume [post]
func (h *QuizHandler) ResumeQuiz(c *fiber.Ctx) error {
	sessionID := c.Params("id")
	if errs := h.validator.ValidateID("id", sessionID); len(errs) > 0 {
		return errs
	}

	resp, err := h.service.ResumeQuiz(c.Context(), sessionID, middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(resp))
}

// GetStatus godoc
// @Summary Get session status
// @Description Returns the session's public projection; the correct answers stay hidden while the session runs
// @Tags quiz
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.Response{data=dto.SessionStatusResponse}
// @Failure 403 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Security BearerAuth
// @Router /quizzes/{id} [get]
func (h *QuizHandler) GetStatus(c *fiber.Ctx) error {
	sessionID := c.Params("id")
	if errs := h.validator.ValidateID("id", sessionID); len(errs) > 0 {
		return errs
	}

	resp, err := h.service.GetStatus(c.Context(), sessionID, middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(resp))
}

// GetResults godoc
// @Summary Get results of a completed session
// @Tags quiz
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.Response{data=dto.QuizResultsResponse}
// @Failure 400 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Security BearerAuth
// @Router /quizzes/{id}/results [get]
func (h *QuizHandler) GetResults(c *fiber.Ctx) error {
	sessionID := c.Params("id")
	if errs := h.validator.ValidateID("id", sessionID); len(errs) > 0 {
		return errs
	}

	resp, err := h.service.GetResults(c.Context(), sessionID, middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(resp))
}
