package service

import (
	"time"

	"github.com/tokogitar/tokogitar/internal/models"
	"github.com/tokogitar/tokogitar/internal/repository"
)

// CartService manages the customer's open cart.
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartService creates the cart service.
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// CartLine is one priced row of the cart view.
type CartLine struct {
	ProductID   uint   `json:"product_id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	UnitPrice   int64  `json:"unit_price"`
	Quantity    int    `json:"quantity"`
	LineTotal   int64  `json:"line_total"`
	WeightGrams int    `json:"weight_grams"`
	Stock       int    `json:"stock"`
	Image       string `json:"image"`
}

// CartView is the aggregated cart payload.
type CartView struct {
	CartID           uint       `json:"cart_id"`
	Lines            []CartLine `json:"items"`
	Subtotal         int64      `json:"subtotal"`
	TotalWeightGrams int        `json:"total_weight_grams"`
}

// GetCart returns the priced cart for a customer.
func (s *CartService) GetCart(userID uint) (*CartView, error) {
	cart, err := s.cartRepo.GetOrCreateByUser(userID)
	if err != nil {
		return nil, err
	}
	items, err := s.cartRepo.ListItems(cart.ID)
	if err != nil {
		return nil, err
	}

	view := &CartView{CartID: cart.ID, Lines: make([]CartLine, 0, len(items))}
	for _, item := range items {
		if item.Product == nil || !item.Product.IsActive {
			continue
		}
		line := CartLine{
			ProductID:   item.ProductID,
			Name:        item.Product.Name,
			Slug:        item.Product.Slug,
			UnitPrice:   item.Product.PriceAmount,
			Quantity:    item.Quantity,
			LineTotal:   item.Product.PriceAmount * int64(item.Quantity),
			WeightGrams: item.Product.WeightGrams,
			Stock:       item.Product.Stock,
		}
		if len(item.Product.Images) > 0 {
			line.Image = item.Product.Images[0]
		}
		view.Lines = append(view.Lines, line)
		view.Subtotal += line.LineTotal
		view.TotalWeightGrams += item.Product.WeightGrams * item.Quantity
	}
	return view, nil
}

// UpsertItem sets the quantity of one product in the cart.
func (s *CartService) UpsertItem(userID, productID uint, quantity int) (*CartView, error) {
	if quantity <= 0 {
		return nil, ErrQuantityInvalid
	}
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, ErrProductNotFound
	}
	if product.Stock < quantity {
		return nil, ErrStockInsufficient
	}

	cart, err := s.cartRepo.GetOrCreateByUser(userID)
	if err != nil {
		return nil, err
	}
	item := &models.CartItem{
		CartID:    cart.ID,
		ProductID: productID,
		Quantity:  quantity,
		UpdatedAt: time.Now(),
	}
	if err := s.cartRepo.UpsertItem(item); err != nil {
		return nil, err
	}
	return s.GetCart(userID)
}

// RemoveItem removes one product from the cart.
func (s *CartService) RemoveItem(userID, productID uint) (*CartView, error) {
	cart, err := s.cartRepo.GetOrCreateByUser(userID)
	if err != nil {
		return nil, err
	}
	if err := s.cartRepo.DeleteItem(cart.ID, productID); err != nil {
		return nil, err
	}
	return s.GetCart(userID)
}
