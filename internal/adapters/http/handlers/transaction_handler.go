package handlers

import (
	"errors"
	"time"

	"smartspend/internal/adapters/http/middleware"
	"smartspend/internal/adapters/persistence/models"
	"smartspend/internal/core/services"
	"smartspend/internal/pkg/pagination"
	"smartspend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// TransactionHandler handles transaction endpoints
type TransactionHandler struct {
	transactionService *services.TransactionService
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(transactionService *services.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// TransactionRequest represents create/update request body
type TransactionRequest struct {
	CategoryID      string    `json:"category_id"`
	TransactionType string    `json:"transaction_type"`
	Amount          float64   `json:"amount"`
	Description     string    `json:"description"`
	TransactionDate time.Time `json:"transaction_date"`
}

func (r *TransactionRequest) validate() string {
	if r.CategoryID == "" {
		return "Category is required"
	}
	if r.TransactionType != models.TypeIncome && r.TransactionType != models.TypeExpense {
		return "Transaction type must be INCOME or EXPENSE"
	}
	if r.Amount <= 0 {
		return "Amount must be greater than zero"
	}
	if r.TransactionDate.IsZero() {
		return "Transaction date is required"
	}
	return ""
}

func (r *TransactionRequest) toInput() *services.TransactionInput {
	return &services.TransactionInput{
		CategoryID:      r.CategoryID,
		TransactionType: r.TransactionType,
		Amount:          r.Amount,
		Description:     r.Description,
		TransactionDate: r.TransactionDate,
	}
}

// Create handles transaction creation
// @Summary Create transaction
// @Tags Transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body TransactionRequest true "Transaction data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /transactions [post]
func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	actor, ok := middleware.Actor(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req TransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if msg := req.validate(); msg != "" {
		return response.BadRequest(c, msg)
	}

	tx, err := h.transactionService.Create(c.Context(), actor, req.toInput())
	if err != nil {
		if errors.Is(err, services.ErrCategoryNotVisible) {
			return response.BadRequest(c, "Category not found or not accessible")
		}
		return response.FromDomainError(c, err, "Failed to create transaction")
	}

	return response.Created(c, "Transaction created successfully", fiber.Map{
		"transaction": tx,
	})
}

// List handles transaction listing
// @Summary List transactions
// @Description The caller's transactions, newest first
// @Tags Transactions
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Success 200 {object} response.Response
// @Router /transactions [get]
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	actor, ok := middleware.Actor(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	params := pagination.GetParams(c)

	result, err := h.transactionService.List(c.Context(), actor, params.Offset, params.Limit)
	if err != nil {
		return response.FromDomainError(c, err, "Failed to list transactions")
	}

	return response.Success(c, "Transactions retrieved successfully",
		pagination.NewResponse(result.Transactions, params, result.Total))
}

// GetByID handles single transaction retrieval
// @Summary Get transaction
// @Tags Transactions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Transaction ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /transactions/{id} [get]
func (h *TransactionHandler) GetByID(c *fiber.Ctx) error {
	actor, ok := middleware.Actor(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	tx, err := h.transactionService.GetByID(c.Context(), actor, c.Params("id"))
	if err != nil {
		return response.FromDomainError(c, err, "Failed to get transaction")
	}

	return response.Success(c, "Transaction retrieved successfully", fiber.Map{
		"transaction": tx,
	})
}

// Update handles transaction update
// @Summary Update transaction
// @Tags Transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Transaction ID"
// @Param body body TransactionRequest true "Transaction data"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /transactions/{id} [put]
func (h *TransactionHandler) Update(c *fiber.Ctx) error {
	actor, ok := middleware.Actor(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req TransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if msg := req.validate(); msg != "" {
		return response.BadRequest(c, msg)
	}

	tx, err := h.transactionService.Update(c.Context(), actor, c.Params("id"), req.toInput())
	if err != nil {
		if errors.Is(err, services.ErrCategoryNotVisible) {
			return response.BadRequest(c, "Category not found or not accessible")
		}
		return response.FromDomainError(c, err, "Failed to update transaction")
	}

	return response.Success(c, "Transaction updated successfully", fiber.Map{
		"transaction": tx,
	})
}

// Delete handles transaction deletion
// @Summary Delete transaction
// @Tags Transactions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Transaction ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /transactions/{id} [delete]
func (h *TransactionHandler) Delete(c *fiber.Ctx) error {
	actor, ok := middleware.Actor(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	if err := h.transactionService.Delete(c.Context(), actor, c.Params("id")); err != nil {
		return response.FromDomainError(c, err, "Failed to delete transaction")
	}

	return response.Success(c, "Transaction deleted successfully", nil)
}
