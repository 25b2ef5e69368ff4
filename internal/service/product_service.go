package service

import (
	"regexp"
	"strings"

	"github.com/tokogitar/tokogitar/internal/models"
	"github.com/tokogitar/tokogitar/internal/repository"
)

// ProductService covers storefront catalog reads and back office CRUD.
type ProductService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewProductService creates the product service.
func NewProductService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) *ProductService {
	return &ProductService{productRepo: productRepo, categoryRepo: categoryRepo}
}

// ListPublic returns active products for the storefront.
func (s *ProductService) ListPublic(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	filter.OnlyActive = true
	filter.WithCategory = true
	return s.productRepo.List(filter)
}

// GetBySlug returns one active product for a storefront detail page.
func (s *ProductService) GetBySlug(slug string) (*models.Product, error) {
	product, err := s.productRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// ListAdmin returns products for the back office, inactive included.
func (s *ProductService) ListAdmin(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	filter.WithCategory = true
	return s.productRepo.List(filter)
}

// GetByID returns one product for the back office.
func (s *ProductService) GetByID(id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// ProductInput carries the writable product fields.
type ProductInput struct {
	CategoryID  uint     `json:"category_id" binding:"required"`
	Slug        string   `json:"slug"`
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	PriceAmount int64    `json:"price_amount" binding:"required"`
	Stock       int      `json:"stock"`
	WeightGrams int      `json:"weight_grams" binding:"required"`
	Images      []string `json:"images"`
	IsActive    *bool    `json:"is_active"`
	SortOrder   int      `json:"sort_order"`
}

func (s *ProductService) validateInput(input *ProductInput, excludeID uint) error {
	if input.PriceAmount <= 0 || input.WeightGrams <= 0 || input.Stock < 0 {
		return ErrQuantityInvalid
	}
	category, err := s.categoryRepo.GetByID(input.CategoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}
	if input.Slug == "" {
		input.Slug = Slugify(input.Name)
	} else {
		input.Slug = Slugify(input.Slug)
	}
	existing, err := s.productRepo.GetBySlug(input.Slug)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != excludeID {
		return ErrSlugTaken
	}
	return nil
}

// CreateProduct creates a catalog item.
func (s *ProductService) CreateProduct(input ProductInput) (*models.Product, error) {
	if err := s.validateInput(&input, 0); err != nil {
		return nil, err
	}
	product := &models.Product{
		CategoryID:  input.CategoryID,
		Slug:        input.Slug,
		Name:        input.Name,
		Description: input.Description,
		PriceAmount: input.PriceAmount,
		Stock:       input.Stock,
		WeightGrams: input.WeightGrams,
		Images:      models.StringArray(input.Images),
		IsActive:    true,
		SortOrder:   input.SortOrder,
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct updates a catalog item.
func (s *ProductService) UpdateProduct(id uint, input ProductInput) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if err := s.validateInput(&input, id); err != nil {
		return nil, err
	}
	product.CategoryID = input.CategoryID
	product.Slug = input.Slug
	product.Name = input.Name
	product.Description = input.Description
	product.PriceAmount = input.PriceAmount
	product.Stock = input.Stock
	product.WeightGrams = input.WeightGrams
	product.Images = models.StringArray(input.Images)
	product.SortOrder = input.SortOrder
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct soft deletes a catalog item.
func (s *ProductService) DeleteProduct(id uint) error {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	return s.productRepo.Delete(id)
}

var slugStripPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases a name and collapses everything non-alphanumeric to
// single dashes.
func Slugify(raw string) string {
	slug := strings.ToLower(strings.TrimSpace(raw))
	slug = slugStripPattern.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}
