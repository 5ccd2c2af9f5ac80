package services

import (
	"context"
	"errors"

	"smartspend/internal/adapters/persistence/models"
	"smartspend/internal/adapters/persistence/repositories"
	"smartspend/internal/core/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CategoryService handles category business logic. Every operation takes the
// acting account explicitly; write paths go through the ownership rules.
type CategoryService struct {
	categoryRepo repositories.CategoryRepository
}

// NewCategoryService creates a new category service
func NewCategoryService(categoryRepo repositories.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// CategoryInput represents create/update input
type CategoryInput struct {
	Name            string `json:"name"`
	TransactionType string `json:"transaction_type"`
	IsDefault       bool   `json:"is_default"`
}

// ListCategoriesOutput represents paginated category list output
type ListCategoriesOutput struct {
	Categories []*models.CategoryResponse `json:"categories"`
	Total      int64                      `json:"total"`
}

// Create creates a category. The stored is_default is forced from the
// actor's role: requesting a shared category does nothing for a non-admin.
func (s *CategoryService) Create(ctx context.Context, actor domain.Actor, input *CategoryInput) (*models.CategoryResponse, error) {
	category := &models.Category{
		ID:              uuid.New().String(),
		Name:            input.Name,
		TransactionType: input.TransactionType,
		IsDefault:       domain.EffectiveDefault(actor),
		CreatedBy:       actor.ID,
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, domain.Transient(err)
	}

	return category.ToResponse(), nil
}

// GetByID returns a single category
func (s *CategoryService) GetByID(ctx context.Context, id string) (*models.CategoryResponse, error) {
	category, err := s.getCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	return category.ToResponse(), nil
}

// List returns the categories visible to the actor: shared defaults plus
// the actor's own. Admins see everything.
func (s *CategoryService) List(ctx context.Context, actor domain.Actor, offset, limit int) (*ListCategoriesOutput, error) {
	var (
		categories []*models.Category
		total      int64
		err        error
	)

	if actor.IsAdmin() {
		categories, total, err = s.categoryRepo.ListAll(ctx, offset, limit)
	} else {
		categories, total, err = s.categoryRepo.ListVisible(ctx, actor.ID, offset, limit)
	}
	if err != nil {
		return nil, domain.Transient(err)
	}

	responses := make([]*models.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		responses = append(responses, c.ToResponse())
	}

	return &ListCategoriesOutput{Categories: responses, Total: total}, nil
}

// Update updates a category the actor is allowed to mutate.
func (s *CategoryService) Update(ctx context.Context, actor domain.Actor, id string, input *CategoryInput) (*models.CategoryResponse, error) {
	category, err := s.getCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := domain.CanMutate(actor, category.CreatedBy, category.IsDefault); err != nil {
		return nil, err
	}

	category.Name = input.Name
	category.TransactionType = input.TransactionType
	category.UpdatedBy = actor.ID

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, domain.Transient(err)
	}

	return category.ToResponse(), nil
}

// Delete deletes a category the actor is allowed to mutate.
func (s *CategoryService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	category, err := s.getCategory(ctx, id)
	if err != nil {
		return err
	}

	if err := domain.CanMutate(actor, category.CreatedBy, category.IsDefault); err != nil {
		return err
	}

	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return domain.Transient(err)
	}

	return nil
}

func (s *CategoryService) getCategory(ctx context.Context, id string) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.Transient(err)
	}
	return category, nil
}
