package service

import (
	"context"
	"time"

	"shopadmin/internal/apperr"
	"shopadmin/internal/model"
	"shopadmin/internal/repository"
	"shopadmin/internal/validation"

	"github.com/google/uuid"
)

type CreateCategoryRequest struct {
	Name string `json:"name" form:"name" validate:"required,max=255"`
}

type UpdateCategoryRequest struct {
	Name *string `json:"name" form:"name" validate:"omitempty,max=255"`
}

type CategoryResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt string    `json:"created_at"`
	UpdatedAt string    `json:"updated_at"`
}

type CategoryService interface {
	List(ctx context.Context) ([]CategoryResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*CategoryResponse, error)
	Create(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateCategoryRequest) (*CategoryResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type categoryService struct {
	categories repository.CategoryRepository
	products   repository.ProductRepository
	notifier   CatalogNotifier
}

func NewCategoryService(categories repository.CategoryRepository, products repository.ProductRepository, notifier CatalogNotifier) CategoryService {
	return &categoryService{categories: categories, products: products, notifier: notifier}
}

func mapCategory(category *model.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:        category.ID,
		Name:      category.Name,
		CreatedAt: category.CreatedAt.Format(time.RFC3339),
		UpdatedAt: category.UpdatedAt.Format(time.RFC3339),
	}
}

func (s *categoryService) List(ctx context.Context) ([]CategoryResponse, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	responses := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		responses = append(responses, *mapCategory(&categories[i]))
	}
	return responses, nil
}

func (s *categoryService) Get(ctx context.Context, id uuid.UUID) (*CategoryResponse, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.NotFound("Category not found")
	}
	return mapCategory(category), nil
}

func (s *categoryService) Create(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error) {
	errs := validation.Struct(req)
	if errs == nil {
		errs = make(validation.Errors)
	}
	if req.Name != "" {
		if _, err := s.categories.FindByName(ctx, req.Name); err == nil {
			errs.Add("name", "The name has already been taken.")
		}
	}
	if len(errs) > 0 {
		return nil, apperr.Validation(errs)
	}

	category := &model.Category{Name: req.Name}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, apperr.Internal(err)
	}

	notify(s.notifier, "category.created", mapCategory(category))
	return mapCategory(category), nil
}

func (s *categoryService) Update(ctx context.Context, id uuid.UUID, req UpdateCategoryRequest) (*CategoryResponse, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.NotFound("Category not found")
	}

	errs := validation.Struct(req)
	if errs == nil {
		errs = make(validation.Errors)
	}
	// Renaming to the current name is a no-op, not a uniqueness violation.
	if req.Name != nil && *req.Name != category.Name {
		if existing, err := s.categories.FindByName(ctx, *req.Name); err == nil && existing.ID != category.ID {
			errs.Add("name", "The name has already been taken.")
		}
	}
	if len(errs) > 0 {
		return nil, apperr.Validation(errs)
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if err := s.categories.Update(ctx, category); err != nil {
		return nil, apperr.Internal(err)
	}

	notify(s.notifier, "category.updated", mapCategory(category))
	return mapCategory(category), nil
}

func (s *categoryService) Delete(ctx context.Context, id uuid.UUID) error {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return apperr.NotFound("Category not found")
	}

	// Refuse to orphan products; the store schema does not cascade.
	count, err := s.products.CountByCategory(ctx, id)
	if err != nil {
		return apperr.Internal(err)
	}
	if count > 0 {
		return apperr.Conflict("Category is referenced by existing products")
	}

	if err := s.categories.Delete(ctx, id); err != nil {
		return apperr.Internal(err)
	}

	notify(s.notifier, "category.deleted", map[string]interface{}{"id": category.ID})
	return nil
}
