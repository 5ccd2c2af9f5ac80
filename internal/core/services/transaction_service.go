package services

import (
	"context"
	"errors"
	"time"

	"smartspend/internal/adapters/persistence/models"
	"smartspend/internal/adapters/persistence/repositories"
	"smartspend/internal/core/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Transaction errors
var ErrCategoryNotVisible = errors.New("category not found or not accessible")

// TransactionService handles transaction business logic. Transactions have
// no shared variant: mutation is owner-only.
type TransactionService struct {
	transactionRepo repositories.TransactionRepository
	categoryRepo    repositories.CategoryRepository
}

// NewTransactionService creates a new transaction service
func NewTransactionService(
	transactionRepo repositories.TransactionRepository,
	categoryRepo repositories.CategoryRepository,
) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
	}
}

// TransactionInput represents create/update input
type TransactionInput struct {
	CategoryID      string    `json:"category_id"`
	TransactionType string    `json:"transaction_type"`
	Amount          float64   `json:"amount"`
	Description     string    `json:"description"`
	TransactionDate time.Time `json:"transaction_date"`
}

// ListTransactionsOutput represents paginated transaction list output
type ListTransactionsOutput struct {
	Transactions []*models.TransactionResponse `json:"transactions"`
	Total        int64                         `json:"total"`
}

// Create records a transaction for the acting account. The category must be
// visible to the actor: a shared default or the actor's own.
func (s *TransactionService) Create(ctx context.Context, actor domain.Actor, input *TransactionInput) (*models.TransactionResponse, error) {
	if err := s.checkCategoryVisible(ctx, actor, input.CategoryID); err != nil {
		return nil, err
	}

	tx := &models.Transaction{
		ID:              uuid.New().String(),
		UserID:          actor.ID,
		CategoryID:      input.CategoryID,
		TransactionType: input.TransactionType,
		Amount:          input.Amount,
		Description:     input.Description,
		TransactionDate: input.TransactionDate,
		CreatedBy:       actor.ID,
	}

	if err := s.transactionRepo.Create(ctx, tx); err != nil {
		return nil, domain.Transient(err)
	}

	created, err := s.transactionRepo.GetByID(ctx, tx.ID)
	if err != nil {
		return tx.ToResponse(), nil
	}
	return created.ToResponse(), nil
}

// GetByID returns a transaction if the actor may see it.
func (s *TransactionService) GetByID(ctx context.Context, actor domain.Actor, id string) (*models.TransactionResponse, error) {
	tx, err := s.getTransaction(ctx, id)
	if err != nil {
		return nil, err
	}

	if !actor.IsAdmin() && tx.CreatedBy != actor.ID {
		return nil, domain.ErrForbidden
	}

	return tx.ToResponse(), nil
}

// List returns the actor's transactions, or everything for admins.
func (s *TransactionService) List(ctx context.Context, actor domain.Actor, offset, limit int) (*ListTransactionsOutput, error) {
	var (
		txs   []*models.Transaction
		total int64
		err   error
	)

	if actor.IsAdmin() {
		txs, total, err = s.transactionRepo.ListAll(ctx, offset, limit)
	} else {
		txs, total, err = s.transactionRepo.ListByUser(ctx, actor.ID, offset, limit)
	}
	if err != nil {
		return nil, domain.Transient(err)
	}

	responses := make([]*models.TransactionResponse, 0, len(txs))
	for _, tx := range txs {
		responses = append(responses, tx.ToResponse())
	}

	return &ListTransactionsOutput{Transactions: responses, Total: total}, nil
}

// Update updates a transaction owned by the actor.
func (s *TransactionService) Update(ctx context.Context, actor domain.Actor, id string, input *TransactionInput) (*models.TransactionResponse, error) {
	tx, err := s.getTransaction(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := domain.CanMutate(actor, tx.CreatedBy, false); err != nil {
		return nil, err
	}

	if input.CategoryID != "" && input.CategoryID != tx.CategoryID {
		if err := s.checkCategoryVisible(ctx, actor, input.CategoryID); err != nil {
			return nil, err
		}
		tx.CategoryID = input.CategoryID
	}

	tx.TransactionType = input.TransactionType
	tx.Amount = input.Amount
	tx.Description = input.Description
	tx.TransactionDate = input.TransactionDate
	tx.UpdatedBy = actor.ID
	tx.Category = nil

	if err := s.transactionRepo.Update(ctx, tx); err != nil {
		return nil, domain.Transient(err)
	}

	updated, err := s.transactionRepo.GetByID(ctx, tx.ID)
	if err != nil {
		return tx.ToResponse(), nil
	}
	return updated.ToResponse(), nil
}

// Delete deletes a transaction owned by the actor.
func (s *TransactionService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	tx, err := s.getTransaction(ctx, id)
	if err != nil {
		return err
	}

	if err := domain.CanMutate(actor, tx.CreatedBy, false); err != nil {
		return err
	}

	if err := s.transactionRepo.Delete(ctx, id); err != nil {
		return domain.Transient(err)
	}

	return nil
}

func (s *TransactionService) getTransaction(ctx context.Context, id string) (*models.Transaction, error) {
	tx, err := s.transactionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.Transient(err)
	}
	return tx, nil
}

func (s *TransactionService) checkCategoryVisible(ctx context.Context, actor domain.Actor, categoryID string) error {
	category, err := s.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotVisible
		}
		return domain.Transient(err)
	}

	if !category.IsDefault && category.CreatedBy != actor.ID && !actor.IsAdmin() {
		return ErrCategoryNotVisible
	}
	return nil
}
