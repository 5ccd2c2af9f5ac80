package handlers

import (
	"strings"

	"smartspend/internal/adapters/http/middleware"
	"smartspend/internal/adapters/persistence/models"
	"smartspend/internal/core/services"
	"smartspend/internal/pkg/pagination"
	"smartspend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// CategoryHandler handles category endpoints
type CategoryHandler struct {
	categoryService *services.CategoryService
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categoryService *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CategoryRequest represents create/update request body
type CategoryRequest struct {
	Name            string `json:"name"`
	TransactionType string `json:"transaction_type"`
	IsDefault       bool   `json:"is_default"`
}

func (r *CategoryRequest) validate() string {
	if strings.TrimSpace(r.Name) == "" {
		return "Name is required"
	}
	if r.TransactionType != models.TypeIncome && r.TransactionType != models.TypeExpense {
		return "Transaction type must be INCOME or EXPENSE"
	}
	return ""
}

// Create handles category creation
// @Summary Create category
// @Tags Categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CategoryRequest true "Category data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /categories [post]
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	actor, ok := middleware.Actor(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if msg := req.validate(); msg != "" {
		return response.BadRequest(c, msg)
	}

	category, err := h.categoryService.Create(c.Context(), actor, &services.CategoryInput{
		Name:            strings.TrimSpace(req.Name),
		TransactionType: req.TransactionType,
		IsDefault:       req.IsDefault,
	})
	if err != nil {
		return response.FromDomainError(c, err, "Failed to create category")
	}

	return response.Created(c, "Category created successfully", fiber.Map{
		"category": category,
	})
}

// List handles category listing
// @Summary List categories
// @Description Shared defaults plus the caller's own categories
// @Tags Categories
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Success 200 {object} response.Response
// @Router /categories [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	actor, ok := middleware.Actor(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	params := pagination.GetParams(c)

	result, err := h.categoryService.List(c.Context(), actor, params.Offset, params.Limit)
	if err != nil {
		return response.FromDomainError(c, err, "Failed to list categories")
	}

	return response.Success(c, "Categories retrieved successfully",
		pagination.NewResponse(result.Categories, params, result.Total))
}

// GetByID handles single category retrieval
// @Summary Get category
// @Tags Categories
// @Produce json
// @Security BearerAuth
// @Param id path string true "Category ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /categories/{id} [get]
func (h *CategoryHandler) GetByID(c *fiber.Ctx) error {
	category, err := h.categoryService.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return response.FromDomainError(c, err, "Failed to get category")
	}

	return response.Success(c, "Category retrieved successfully", fiber.Map{
		"category": category,
	})
}

// Update handles category update
// @Summary Update category
// @Tags Categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Category ID"
// @Param body body CategoryRequest true "Category data"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /categories/{id} [put]
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	actor, ok := middleware.Actor(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if msg := req.validate(); msg != "" {
		return response.BadRequest(c, msg)
	}

	category, err := h.categoryService.Update(c.Context(), actor, c.Params("id"), &services.CategoryInput{
		Name:            strings.TrimSpace(req.Name),
		TransactionType: req.TransactionType,
	})
	if err != nil {
		return response.FromDomainError(c, err, "Failed to update category")
	}

	return response.Success(c, "Category updated successfully", fiber.Map{
		"category": category,
	})
}

// Delete handles category deletion
// @Summary Delete category
// @Tags Categories
// @Produce json
// @Security BearerAuth
// @Param id path string true "Category ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /categories/{id} [delete]
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	actor, ok := middleware.Actor(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	if err := h.categoryService.Delete(c.Context(), actor, c.Params("id")); err != nil {
		return response.FromDomainError(c, err, "Failed to delete category")
	}

	return response.Success(c, "Category deleted successfully", nil)
}
