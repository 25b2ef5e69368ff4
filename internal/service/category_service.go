package service

import (
	"github.com/tokogitar/tokogitar/internal/models"
	"github.com/tokogitar/tokogitar/internal/repository"
)

// CategoryService covers category browsing and back office CRUD.
type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService creates the category service.
func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// List returns all categories ordered by sort weight.
func (s *CategoryService) List() ([]models.Category, error) {
	return s.categoryRepo.List()
}

// GetByID returns one category.
func (s *CategoryService) GetByID(id uint) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	return category, nil
}

// CategoryInput carries the writable category fields.
type CategoryInput struct {
	Slug      string `json:"slug"`
	Name      string `json:"name" binding:"required"`
	SortOrder int    `json:"sort_order"`
}

func (s *CategoryService) resolveSlug(input *CategoryInput, excludeID uint) error {
	if input.Slug == "" {
		input.Slug = Slugify(input.Name)
	} else {
		input.Slug = Slugify(input.Slug)
	}
	existing, err := s.categoryRepo.GetBySlug(input.Slug)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != excludeID {
		return ErrSlugTaken
	}
	return nil
}

// CreateCategory creates a category.
func (s *CategoryService) CreateCategory(input CategoryInput) (*models.Category, error) {
	if err := s.resolveSlug(&input, 0); err != nil {
		return nil, err
	}
	category := &models.Category{
		Slug:      input.Slug,
		Name:      input.Name,
		SortOrder: input.SortOrder,
	}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

// UpdateCategory updates a category.
func (s *CategoryService) UpdateCategory(id uint, input CategoryInput) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	if err := s.resolveSlug(&input, id); err != nil {
		return nil, err
	}
	category.Slug = input.Slug
	category.Name = input.Name
	category.SortOrder = input.SortOrder
	if err := s.categoryRepo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory removes a category that no product references.
func (s *CategoryService) DeleteCategory(id uint) error {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}
	count, err := s.categoryRepo.CountProducts(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryInUse
	}
	return s.categoryRepo.Delete(id)
}
