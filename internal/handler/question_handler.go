package handler

import (
	"encoding/json"

	"github.com/Malay-Max/QuizWhiz-sub001/internal/domain"
	"github.com/Malay-Max/QuizWhiz-sub001/internal/dto"
	"github.com/Malay-Max/QuizWhiz-sub001/internal/service"
	"github.com/Malay-Max/QuizWhiz-sub001/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// QuestionHandler handles question authoring HTTP requests
type QuestionHandler struct {
	questions service.QuestionService
	importer  service.ImportService
	validator *validation.Validator
}

// NewQuestionHandler creates a new QuestionHandler instance
func NewQuestionHandler(questions service.QuestionService, importer service.ImportService) *QuestionHandler {
	return &QuestionHandler{
		questions: questions,
		importer:  importer,
		validator: validation.NewValidator(),
	}
}

// AddQuestion godoc
// @Summary Add a question to a category
// @Tags questions
// @Accept json
// @Produce json
// @Param id path string true "Category ID"
// @Param question body dto.CreateQuestionRequest true "Question"
// @Success 201 {object} dto.Response{data=dto.QuestionResponse}
// @Failure 400 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Security BearerAuth
// @Router /categories/{id}/questions [post]
func (h *QuestionHandler) AddQuestion(c *fiber.Ctx) error {
	categoryID := c.Params("id")

	var req dto.CreateQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewValidationError("Invalid request body")
	}
	if errs := h.validator.ValidateCreateQuestionRequest(categoryID, req); len(errs) > 0 {
		return errs
	}

	resp, err := h.questions.AddQuestion(c.Context(), categoryID, &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(resp))
}

// ListQuestions godoc
// @Summary List questions in a category subtree
// @Tags questions
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} dto.Response{data=[]dto.QuestionResponse}
// @Failure 404 {object} dto.Response
// @Security BearerAuth
// @Router /categories/{id}/questions [get]
func (h *QuestionHandler) ListQuestions(c *fiber.Ctx) error {
	categoryID := c.Params("id")
	if errs := h.validator.ValidateID("id", categoryID); len(errs) > 0 {
		return errs
	}

	resp, err := h.questions.ListByCategory(c.Context(), categoryID)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(resp))
}

// GetQuestion godoc
// @Summary Get a question
// @Tags questions
// @Produce json
// @Param id path string true "Question ID"
// @Success 200 {object} dto.Response{data=dto.QuestionResponse}
// @Failure 404 {object} dto.Response
// @Security BearerAuth
// @Router /questions/{id} [get]
func (h *QuestionHandler) GetQuestion(c *fiber.Ctx) error {
	id := c.Params("id")
	if errs := h.validator.ValidateID("id", id); len(errs) > 0 {
		return errs
	}

	resp, err := h.questions.GetQuestion(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(resp))
}

// UpdateQuestion godoc
// @Summary Update a question
// @Description Sparse update; only supplied fields overwrite stored values
// @Tags questions
// @Accept json
// @Produce json
// @Param id path string true "Question ID"
// @Param question body dto.UpdateQuestionRequest true "Fields to update"
// @Success 200 {object} dto.Response{data=dto.QuestionResponse}
// @Failure 400 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Security BearerAuth
// @Router /questions/{id} [put]
func (h *QuestionHandler) UpdateQuestion(c *fiber.Ctx) error {
	id := c.Params("id")

	var req dto.UpdateQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewValidationError("Invalid request body")
	}
	if errs := h.validator.ValidateUpdateQuestionRequest(id, req); len(errs) > 0 {
		return errs
	}

	resp, err := h.questions.UpdateQuestion(c.Context(), id, &req)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(resp))
}

// DeleteQuestion godoc
// @Summary Delete a question
// @Tags questions
// @Produce json
// @Param id path string true "Question ID"
// @Success 200 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Security BearerAuth
// @Router /questions/{id} [delete]
func (h *QuestionHandler) DeleteQuestion(c *fiber.Ctx) error {
	id := c.Params("id")
	if errs := h.validator.ValidateID("id", id); len(errs) > 0 {
		return errs
	}

	if err := h.questions.DeleteQuestion(c.Context(), id); err != nil {
		return err
	}
	return c.JSON(dto.OK(nil))
}

// ImportQuestions godoc
// @Summary Batch import questions
// @Description Imports questions from the line-oriented text format or a JSON array, depending on Content-Type. Failures are isolated per item.
// @Tags questions
// @Accept json,plain
// @Produce json
// @Param id path string true "Category ID"
// @Success 201 {object} dto.Response{data=dto.ImportReport} "All items added"
// @Success 207 {object} dto.Response{data=dto.ImportReport} "Some items failed"
// @Failure 400 {object} dto.Response "No items added"
// @Security BearerAuth
// @Router /categories/{id}/questions/import [post]
func (h *QuestionHandler) ImportQuestions(c *fiber.Ctx) error {
	categoryID := c.Params("id")
	if errs := h.validator.ValidateID("id", categoryID); len(errs) > 0 {
		return errs
	}

	var (
		report *dto.ImportReport
		err    error
	)
	if c.Is("json") {
		var items []dto.ImportQuestionItem
		if jsonErr := json.Unmarshal(c.Body(), &items); jsonErr != nil {
			return domain.NewValidationError("Invalid JSON import payload")
		}
		report, err = h.importer.ImportJSON(c.Context(), categoryID, items)
	} else {
		report, err = h.importer.ImportText(c.Context(), categoryID, string(c.Body()))
	}
	if err != nil {
		return err
	}

	return c.Status(importStatus(report)).JSON(dto.OK(report))
}

// importStatus maps an import report to its HTTP status: 201 when every
// item was added, 207 for partial success, 400 when nothing made it in.
func importStatus(report *dto.ImportReport) int {
	switch {
	case report.Added > 0 && report.Failed == 0:
		return fiber.StatusCreated
	case report.Added > 0:
		return fiber.StatusMultiStatus
	default:
		return fiber.StatusBadRequest
	}
}

// ExportQuestions godoc
// @Summary Export a category subtree as text
// @Description Streams every question under the category in the line-oriented text format
// @Tags questions
// @Produce plain
// @Param id path string true "Category ID"
// @Success 200 {string} string "Exported questions"
// @Failure 404 {object} dto.Response
// @Security BearerAuth
// @Router /categories/{id}/questions/export [get]
func (h *QuestionHandler) ExportQuestions(c *fiber.Ctx) error {
	categoryID := c.Params("id")
	if errs := h.validator.ValidateID("id", categoryID); len(errs) > 0 {
		return errs
	}

	payload, err := h.importer.Export(c.Context(), categoryID)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.SendString(payload)
}
