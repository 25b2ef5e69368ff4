package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/tokogitar/tokogitar/internal/constants"
	"github.com/tokogitar/tokogitar/internal/models"
	"github.com/tokogitar/tokogitar/internal/queue"
	"github.com/tokogitar/tokogitar/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupOrderServiceTest(t *testing.T) (*OrderService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:order_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Shipment{},
		&models.Payment{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	orderRepo := repository.NewOrderRepository(db)
	productRepo := repository.NewProductRepository(db)
	cartRepo := repository.NewCartRepository(db)
	shipmentRepo := repository.NewShipmentRepository(db)
	cartSvc := NewCartService(cartRepo, productRepo)
	queueClient, _ := queue.NewClient(nil)
	orderSvc := NewOrderService(orderRepo, productRepo, cartRepo, shipmentRepo, cartSvc, queueClient)

	return orderSvc, db
}

func seedCheckoutFixture(t *testing.T, db *gorm.DB, price int64, stock, quantity int) (*models.User, *models.Product) {
	t.Helper()
	user := &models.User{
		Name:         "Budi",
		Email:        fmt.Sprintf("budi_%d@example.com", time.Now().UnixNano()),
		PasswordHash: "hash",
		Role:         constants.RoleCustomer,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}

	category := &models.Category{Slug: fmt.Sprintf("akustik-%d", time.Now().UnixNano()), Name: "Gitar Akustik"}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}

	product := &models.Product{
		CategoryID:  category.ID,
		Slug:        fmt.Sprintf("yamaha-f310-%d", time.Now().UnixNano()),
		Name:        "Yamaha F310",
		PriceAmount: price,
		Stock:       stock,
		WeightGrams: 2800,
		IsActive:    true,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	cart := &models.Cart{UserID: user.ID}
	if err := db.Create(cart).Error; err != nil {
		t.Fatalf("create cart failed: %v", err)
	}
	if err := db.Create(&models.CartItem{CartID: cart.ID, ProductID: product.ID, Quantity: quantity}).Error; err != nil {
		t.Fatalf("create cart item failed: %v", err)
	}

	return user, product
}

func validCheckoutInput() CheckoutInput {
	return CheckoutInput{
		RecipientName:  "Budi Santoso",
		RecipientPhone: "+6281234567890",
		Address:        "Jl. Melati No. 5, Bandung",
		AreaID:         "IDNP6IDNC148IDND836",
		PostalCode:     "40115",
		CourierCode:    "jne",
		CourierService: "reg",
		ShippingCost:   15000,
	}
}

func TestCheckoutCreatesPendingOrderWithTotals(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	user, product := seedCheckoutFixture(t, db, 2_000_000, 5, 1)

	order, err := svc.Checkout(user.ID, validCheckoutInput())
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if order.Status != constants.OrderStatusPending {
		t.Fatalf("status want PENDING, got %s", order.Status)
	}
	if order.ItemsAmount != 2_000_000 {
		t.Fatalf("items amount want 2000000, got %d", order.ItemsAmount)
	}
	if order.ShippingCost != 15_000 {
		t.Fatalf("shipping cost want 15000, got %d", order.ShippingCost)
	}
	if order.TotalAmount != 2_015_000 {
		t.Fatalf("total amount want 2015000, got %d", order.TotalAmount)
	}
	if len(order.Items) != 1 {
		t.Fatalf("expected 1 order item, got %d", len(order.Items))
	}
	if order.Items[0].UnitPrice != 2_000_000 || order.Items[0].ProductName != "Yamaha F310" {
		t.Fatalf("unexpected price snapshot: %+v", order.Items[0])
	}
	if order.OrderNo == "" {
		t.Fatalf("expected order no to be generated")
	}

	var reloaded models.Product
	if err := db.First(&reloaded, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if reloaded.Stock != 4 {
		t.Fatalf("stock want 4 after deduction, got %d", reloaded.Stock)
	}

	var shipment models.Shipment
	if err := db.Where("order_id = ?", order.ID).First(&shipment).Error; err != nil {
		t.Fatalf("expected shipment row: %v", err)
	}
	if shipment.Status != constants.ShipmentStatusPending {
		t.Fatalf("shipment status want PENDING, got %s", shipment.Status)
	}
	if shipment.TotalWeightGrams != 2800 {
		t.Fatalf("shipment weight want 2800, got %d", shipment.TotalWeightGrams)
	}

	var itemCount int64
	if err := db.Model(&models.CartItem{}).Count(&itemCount).Error; err != nil {
		t.Fatalf("count cart items failed: %v", err)
	}
	if itemCount != 0 {
		t.Fatalf("expected cart cleared, got %d items", itemCount)
	}
}

func TestCheckoutInsufficientStockRollsBack(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	user, product := seedCheckoutFixture(t, db, 1_500_000, 1, 2)

	_, err := svc.Checkout(user.ID, validCheckoutInput())
	if !errors.Is(err, ErrStockInsufficient) {
		t.Fatalf("expected ErrStockInsufficient, got %v", err)
	}

	var reloaded models.Product
	if err := db.First(&reloaded, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if reloaded.Stock != 1 {
		t.Fatalf("stock should be untouched, got %d", reloaded.Stock)
	}
	var orderCount int64
	if err := db.Model(&models.Order{}).Count(&orderCount).Error; err != nil {
		t.Fatalf("count orders failed: %v", err)
	}
	if orderCount != 0 {
		t.Fatalf("expected no order rows, got %d", orderCount)
	}
	var itemCount int64
	if err := db.Model(&models.CartItem{}).Count(&itemCount).Error; err != nil {
		t.Fatalf("count cart items failed: %v", err)
	}
	if itemCount != 1 {
		t.Fatalf("cart should survive the rollback, got %d items", itemCount)
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	user := &models.User{Name: "Sari", Email: "sari@example.com", PasswordHash: "hash", Role: constants.RoleCustomer}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}

	_, err := svc.Checkout(user.ID, validCheckoutInput())
	if !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("expected ErrCartEmpty, got %v", err)
	}
}

func TestCheckoutRejectsIncompleteDestination(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	user, _ := seedCheckoutFixture(t, db, 1_000_000, 3, 1)

	input := validCheckoutInput()
	input.AreaID = ""
	if _, err := svc.Checkout(user.ID, input); !errors.Is(err, ErrDestinationIncomplete) {
		t.Fatalf("expected ErrDestinationIncomplete, got %v", err)
	}

	input = validCheckoutInput()
	input.ShippingCost = 0
	if _, err := svc.Checkout(user.ID, input); !errors.Is(err, ErrShippingRateInvalid) {
		t.Fatalf("expected ErrShippingRateInvalid, got %v", err)
	}
}

func TestConfirmDeliveryRequiresDikirim(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	user, _ := seedCheckoutFixture(t, db, 1_000_000, 3, 1)

	order, err := svc.Checkout(user.ID, validCheckoutInput())
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	if _, err := svc.ConfirmDelivery(order.ID, user.ID); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected ErrOrderStatusInvalid for PENDING order, got %v", err)
	}

	if err := db.Model(&models.Order{}).Where("id = ?", order.ID).
		Update("status", constants.OrderStatusDikirim).Error; err != nil {
		t.Fatalf("force status failed: %v", err)
	}

	confirmed, err := svc.ConfirmDelivery(order.ID, user.ID)
	if err != nil {
		t.Fatalf("confirm delivery failed: %v", err)
	}
	if confirmed.Status != constants.OrderStatusSelesai {
		t.Fatalf("status want SELESAI, got %s", confirmed.Status)
	}
	if confirmed.CompletedAt == nil {
		t.Fatalf("expected completed_at to be set")
	}
}

func TestCancelOrderRestocks(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	user, product := seedCheckoutFixture(t, db, 1_000_000, 3, 2)

	order, err := svc.Checkout(user.ID, validCheckoutInput())
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	canceled, err := svc.CancelOrder(order.ID)
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if canceled.Status != constants.OrderStatusDibatalkan {
		t.Fatalf("status want DIBATALKAN, got %s", canceled.Status)
	}
	if canceled.CanceledAt == nil {
		t.Fatalf("expected canceled_at to be set")
	}

	var reloaded models.Product
	if err := db.First(&reloaded, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if reloaded.Stock != 3 {
		t.Fatalf("stock want 3 after restock, got %d", reloaded.Stock)
	}

	if _, err := svc.CancelOrder(order.ID); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected ErrOrderStatusInvalid on second cancel, got %v", err)
	}
}
