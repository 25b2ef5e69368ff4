package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/tokogitar/tokogitar/internal/constants"
	"github.com/tokogitar/tokogitar/internal/logger"
	"github.com/tokogitar/tokogitar/internal/models"
	"github.com/tokogitar/tokogitar/internal/queue"
	"github.com/tokogitar/tokogitar/internal/repository"

	"gorm.io/gorm"
)

// OrderService creates orders from carts and walks them through the
// fulfilment lifecycle.
type OrderService struct {
	orderRepo    repository.OrderRepository
	productRepo  repository.ProductRepository
	cartRepo     repository.CartRepository
	shipmentRepo repository.ShipmentRepository
	cartService  *CartService
	queueClient  *queue.Client
}

// NewOrderService creates the order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	cartRepo repository.CartRepository,
	shipmentRepo repository.ShipmentRepository,
	cartService *CartService,
	queueClient *queue.Client,
) *OrderService {
	return &OrderService{
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		cartRepo:     cartRepo,
		shipmentRepo: shipmentRepo,
		cartService:  cartService,
		queueClient:  queueClient,
	}
}

// CheckoutInput is the checkout form. The shipping selection must come from
// a rate quote the customer was shown.
type CheckoutInput struct {
	RecipientName  string
	RecipientPhone string
	Address        string
	AreaID         string
	PostalCode     string
	CourierCode    string
	CourierService string
	ShippingCost   int64
}

// Checkout turns the cart into a PENDING order inside one transaction:
// price snapshots, conditional stock deduction, shipment row and cart clear
// all commit or roll back together.
func (s *OrderService) Checkout(userID uint, input CheckoutInput) (*models.Order, error) {
	if strings.TrimSpace(input.RecipientName) == "" ||
		strings.TrimSpace(input.RecipientPhone) == "" ||
		strings.TrimSpace(input.Address) == "" ||
		strings.TrimSpace(input.AreaID) == "" {
		return nil, ErrDestinationIncomplete
	}
	if strings.TrimSpace(input.CourierCode) == "" || strings.TrimSpace(input.CourierService) == "" || input.ShippingCost <= 0 {
		return nil, ErrShippingRateInvalid
	}

	view, err := s.cartService.GetCart(userID)
	if err != nil {
		return nil, err
	}
	if len(view.Lines) == 0 {
		return nil, ErrCartEmpty
	}

	order := &models.Order{
		OrderNo:      generateOrderNo(),
		UserID:       userID,
		Status:       constants.OrderStatusPending,
		ShippingCost: input.ShippingCost,
	}

	items := make([]models.OrderItem, 0, len(view.Lines))
	totalWeight := 0
	for _, line := range view.Lines {
		item := models.OrderItem{
			ProductID:   line.ProductID,
			ProductName: line.Name,
			UnitPrice:   line.UnitPrice,
			Quantity:    line.Quantity,
			TotalPrice:  line.LineTotal,
			WeightGrams: line.WeightGrams,
		}
		items = append(items, item)
		order.ItemsAmount += item.TotalPrice
		totalWeight += line.WeightGrams * line.Quantity
	}
	order.TotalAmount = order.ItemsAmount + order.ShippingCost

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		for _, item := range items {
			affected, err := s.productRepo.WithTx(tx).DecrementStock(item.ProductID, item.Quantity)
			if err != nil {
				return err
			}
			if affected == 0 {
				return ErrStockInsufficient
			}
		}

		if err := s.orderRepo.WithTx(tx).Create(order, items); err != nil {
			return err
		}

		shipment := &models.Shipment{
			OrderID:          order.ID,
			RecipientName:    strings.TrimSpace(input.RecipientName),
			RecipientPhone:   strings.TrimSpace(input.RecipientPhone),
			Address:          strings.TrimSpace(input.Address),
			AreaID:           strings.TrimSpace(input.AreaID),
			PostalCode:       strings.TrimSpace(input.PostalCode),
			CourierCode:      strings.TrimSpace(input.CourierCode),
			CourierService:   strings.TrimSpace(input.CourierService),
			ShippingCost:     input.ShippingCost,
			TotalWeightGrams: totalWeight,
			Status:           constants.ShipmentStatusPending,
		}
		if err := s.shipmentRepo.WithTx(tx).Create(shipment); err != nil {
			return err
		}

		return s.cartRepo.WithTx(tx).ClearItems(view.CartID)
	})
	if err != nil {
		return nil, err
	}

	created, err := s.orderRepo.GetByID(order.ID)
	if err != nil {
		logger.Warnw("order_reload_after_create_failed", "order_id", order.ID, "error", err)
		return order, nil
	}
	return created, nil
}

// GetOrderForUser fetches one order owned by the customer.
func (s *OrderService) GetOrderForUser(orderID, userID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListOrdersForUser lists the customer's orders.
func (s *OrderService) ListOrdersForUser(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.ListByUser(filter)
}

// ListOrdersAdmin lists orders for the back office.
func (s *OrderService) ListOrdersAdmin(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.ListAdmin(filter)
}

// GetOrderAdmin fetches any order for the back office.
func (s *OrderService) GetOrderAdmin(orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ConfirmDelivery lets the buyer close a DIKIRIM order as SELESAI.
func (s *OrderService) ConfirmDelivery(orderID, userID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Status != constants.OrderStatusDikirim {
		return nil, ErrOrderStatusInvalid
	}

	now := time.Now()
	if err := s.orderRepo.UpdateStatus(order.ID, constants.OrderStatusSelesai, map[string]interface{}{
		"completed_at": now,
	}); err != nil {
		return nil, err
	}
	s.notifyStatus(order.ID, constants.OrderStatusSelesai)
	return s.orderRepo.GetByID(order.ID)
}

// CancelOrder cancels an order from PENDING or DIKEMAS and restocks items.
func (s *OrderService) CancelOrder(orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Status != constants.OrderStatusPending && order.Status != constants.OrderStatusDikemas {
		return nil, ErrOrderStatusInvalid
	}

	now := time.Now()
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		for _, item := range order.Items {
			if err := tx.Model(&models.Product{}).
				Where("id = ?", item.ProductID).
				Update("stock", gorm.Expr("stock + ?", item.Quantity)).Error; err != nil {
				return err
			}
		}
		return s.orderRepo.WithTx(tx).UpdateStatus(order.ID, constants.OrderStatusDibatalkan, map[string]interface{}{
			"canceled_at": now,
		})
	})
	if err != nil {
		return nil, err
	}
	s.notifyStatus(order.ID, constants.OrderStatusDibatalkan)
	return s.orderRepo.GetByID(order.ID)
}

func (s *OrderService) notifyStatus(orderID uint, status string) {
	if err := s.queueClient.EnqueueOrderStatusEmail(queue.OrderStatusEmailPayload{
		OrderID: orderID,
		Status:  status,
	}); err != nil {
		logger.Warnw("order_status_email_enqueue_failed", "order_id", orderID, "status", status, "error", err)
	}
}

func generateOrderNo() string {
	now := time.Now().Format("20060102150405")
	return fmt.Sprintf("INV%s%s", now, randNumeric(6))
}

func randNumeric(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			b.WriteString("0")
			continue
		}
		fmt.Fprintf(&b, "%d", n.Int64())
	}
	return b.String()
}
