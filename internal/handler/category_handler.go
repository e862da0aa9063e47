package handler

import (
	"github.com/Malay-Max/QuizWhiz-sub001/internal/domain"
	"github.com/Malay-Max/QuizWhiz-sub001/internal/dto"
	"github.com/Malay-Max/QuizWhiz-sub001/internal/service"
	"github.com/Malay-Max/QuizWhiz-sub001/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// CategoryHandler handles category-related HTTP requests
type CategoryHandler struct {
	service   service.CategoryService
	validator *validation.Validator
}

// NewCategoryHandler creates a new CategoryHandler instance
func NewCategoryHandler(service service.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// CreateCategory godoc
// @Summary Create a category
// @Description Creates a category, optionally nested under a parent
// @Tags categories
// @Accept json
// @Produce json
// @Param category body dto.CreateCategoryRequest true "Category"
// @Success 201 {object} dto.Response{data=dto.CreateCategoryResponse}
// @Failure 400 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Security BearerAuth
// @Router /categories [post]
func (h *CategoryHandler) CreateCategory(c *fiber.Ctx) error {
	var req dto.CreateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewValidationError("Invalid request body")
	}
	if errs := h.validator.ValidateCreateCategoryRequest(req); len(errs) > 0 {
		return errs
	}

	resp, err := h.service.CreateCategory(c.Context(), req.Name, req.ParentID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(resp))
}

// ListCategories godoc
// @Summary List the category tree
// @Description Returns all categories as a forest of nested nodes
// @Tags categories
// @Produce json
// @Success 200 {object} dto.Response{data=[]dto.CategoryResponse}
// @Security BearerAuth
// @Router /categories [get]
func (h *CategoryHandler) ListCategories(c *fiber.Ctx) error {
	tree, err := h.service.ListCategories(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(tree))
}

// GetCategory godoc
// @Summary Get one category
// @Description Returns a category subtree rooted at the given id
// @Tags categories
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} dto.Response{data=dto.CategoryResponse}
// @Failure 404 {object} dto.Response
// @Security BearerAuth
// @Router /categories/{id} [get]
func (h *CategoryHandler) GetCategory(c *fiber.Ctx) error {
	id := c.Params("id")
	if errs := h.validator.ValidateID("id", id); len(errs) > 0 {
		return errs
	}

	node, err := h.service.GetCategory(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(node))
}

// RenameCategory godoc
// @Summary Rename a category
// @Tags categories
// @Accept json
// @Produce json
// @Param id path string true "Category ID"
// @Param category body dto.UpdateCategoryRequest true "New name"
// @Success 200 {object} dto.Response
// @Failure 400 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Security BearerAuth
// @Router /categories/{id} [put]
func (h *CategoryHandler) RenameCategory(c *fiber.Ctx) error {
	id := c.Params("id")

	var req dto.UpdateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewValidationError("Invalid request body")
	}
	if errs := h.validator.ValidateRenameCategoryRequest(id, req); len(errs) > 0 {
		return errs
	}

	if err := h.service.RenameCategory(c.Context(), id, req.Name); err != nil {
		return err
	}
	return c.JSON(dto.OK(nil))
}

// DeleteCategory godoc
// @Summary Delete a category subtree
// @Description Deletes the category, all of its descendants, and every question in them
// @Tags categories
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} dto.Response{data=dto.DeleteCategoryResponse}
// @Failure 404 {object} dto.Response
// @Security BearerAuth
// @Router /categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c *fiber.Ctx) error {
	id := c.Params("id")
	if errs := h.validator.ValidateID("id", id); len(errs) > 0 {
		return errs
	}

	resp, err := h.service.DeleteCategory(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(resp))
}
