package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/tokogitar/tokogitar/internal/config"
	"github.com/tokogitar/tokogitar/internal/constants"
	"github.com/tokogitar/tokogitar/internal/models"
	"github.com/tokogitar/tokogitar/internal/payment/midtrans"
	"github.com/tokogitar/tokogitar/internal/queue"
	"github.com/tokogitar/tokogitar/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

const testServerKey = "SB-Mid-server-testkey"

func setupPaymentServiceTest(t *testing.T) (*PaymentService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:payment_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
		&models.Shipment{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	cfg := &config.Config{}
	cfg.Midtrans.ServerKey = testServerKey
	cfg.Midtrans.BaseURL = "https://app.sandbox.midtrans.com"

	orderRepo := repository.NewOrderRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	userRepo := repository.NewUserRepository(db)
	queueClient, _ := queue.NewClient(nil)
	svc := NewPaymentService(cfg, orderRepo, paymentRepo, userRepo, queueClient)

	return svc, db
}

func seedPendingOrder(t *testing.T, db *gorm.DB, total int64) *models.Order {
	t.Helper()
	user := &models.User{
		Name:         "Budi",
		Email:        fmt.Sprintf("buyer_%d@example.com", time.Now().UnixNano()),
		PasswordHash: "hash",
		Role:         constants.RoleCustomer,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	order := &models.Order{
		OrderNo:      fmt.Sprintf("INV%d", time.Now().UnixNano()),
		UserID:       user.ID,
		Status:       constants.OrderStatusPending,
		ItemsAmount:  total - 15000,
		ShippingCost: 15000,
		TotalAmount:  total,
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	return order
}

func notificationBody(t *testing.T, orderNo, status, fraud, gross, serverKey string) []byte {
	t.Helper()
	payload := map[string]string{
		"order_id":           orderNo,
		"status_code":        "200",
		"gross_amount":       gross,
		"signature_key":      midtrans.Sign(orderNo, "200", gross, serverKey),
		"transaction_id":     "txn-" + orderNo,
		"transaction_status": status,
		"fraud_status":       fraud,
		"payment_type":       "qris",
	}
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal notification failed: %v", err)
	}
	return body
}

func TestIssueTokenReusesCachedToken(t *testing.T) {
	svc, db := setupPaymentServiceTest(t)
	order := seedPendingOrder(t, db, 400_000)
	if err := db.Model(&models.Order{}).Where("id = ?", order.ID).
		Update("snap_token", "cached-token").Error; err != nil {
		t.Fatalf("set snap token failed: %v", err)
	}

	result, err := svc.IssueToken(context.Background(), order.ID, order.UserID)
	if err != nil {
		t.Fatalf("issue token failed: %v", err)
	}
	if result.Token != "cached-token" {
		t.Fatalf("expected cached token, got %s", result.Token)
	}
	if result.OrderNo != order.OrderNo {
		t.Fatalf("order no mismatch: %s", result.OrderNo)
	}
}

func TestIssueTokenRejectsNonPendingOrder(t *testing.T) {
	svc, db := setupPaymentServiceTest(t)
	order := seedPendingOrder(t, db, 400_000)
	if err := db.Model(&models.Order{}).Where("id = ?", order.ID).
		Update("status", constants.OrderStatusDikemas).Error; err != nil {
		t.Fatalf("force status failed: %v", err)
	}

	if _, err := svc.IssueToken(context.Background(), order.ID, order.UserID); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected ErrOrderStatusInvalid, got %v", err)
	}

	if _, err := svc.IssueToken(context.Background(), order.ID, order.UserID+1); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound for wrong owner, got %v", err)
	}
}

func TestHandleNotificationSettlementMarksDikemas(t *testing.T) {
	svc, db := setupPaymentServiceTest(t)
	order := seedPendingOrder(t, db, 2_015_000)

	body := notificationBody(t, order.OrderNo, "settlement", "", "2015000.00", testServerKey)
	if err := svc.HandleNotification(body); err != nil {
		t.Fatalf("handle notification failed: %v", err)
	}

	var reloaded models.Order
	if err := db.First(&reloaded, order.ID).Error; err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if reloaded.Status != constants.OrderStatusDikemas {
		t.Fatalf("status want DIKEMAS, got %s", reloaded.Status)
	}
	if reloaded.PaidAt == nil {
		t.Fatalf("expected paid_at to be set")
	}

	var payment models.Payment
	if err := db.Where("order_id = ?", order.ID).First(&payment).Error; err != nil {
		t.Fatalf("expected payment row: %v", err)
	}
	if payment.TransactionStatus != "settlement" {
		t.Fatalf("transaction status want settlement, got %s", payment.TransactionStatus)
	}
	if payment.GrossAmount != 2_015_000 {
		t.Fatalf("gross amount want 2015000, got %d", payment.GrossAmount)
	}
	if payment.SettledAt == nil {
		t.Fatalf("expected settled_at to be set")
	}
}

func TestHandleNotificationRejectsBadSignature(t *testing.T) {
	svc, db := setupPaymentServiceTest(t)
	order := seedPendingOrder(t, db, 500_000)

	body := notificationBody(t, order.OrderNo, "settlement", "", "500000.00", "wrong-server-key")
	err := svc.HandleNotification(body)
	if !errors.Is(err, ErrWebhookSignature) {
		t.Fatalf("expected ErrWebhookSignature, got %v", err)
	}

	var reloaded models.Order
	if err := db.First(&reloaded, order.ID).Error; err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if reloaded.Status != constants.OrderStatusPending {
		t.Fatalf("order must stay PENDING, got %s", reloaded.Status)
	}
	var count int64
	if err := db.Model(&models.Payment{}).Count(&count).Error; err != nil {
		t.Fatalf("count payments failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no payment rows, got %d", count)
	}
}

func TestHandleNotificationRejectsUnconfiguredGateway(t *testing.T) {
	svc, db := setupPaymentServiceTest(t)
	order := seedPendingOrder(t, db, 500_000)
	svc.cfg.Midtrans.ServerKey = ""

	// With no server key a signature computed over the empty key would
	// otherwise verify, so the delivery must be refused up front.
	body := notificationBody(t, order.OrderNo, "settlement", "", "500000.00", "")
	err := svc.HandleNotification(body)
	if !errors.Is(err, midtrans.ErrConfigInvalid) {
		t.Fatalf("expected ErrConfigInvalid, got %v", err)
	}

	var reloaded models.Order
	if err := db.First(&reloaded, order.ID).Error; err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if reloaded.Status != constants.OrderStatusPending {
		t.Fatalf("order must stay PENDING, got %s", reloaded.Status)
	}
	var count int64
	if err := db.Model(&models.Payment{}).Count(&count).Error; err != nil {
		t.Fatalf("count payments failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no payment rows, got %d", count)
	}
}

func TestHandleNotificationUnknownOrder(t *testing.T) {
	svc, _ := setupPaymentServiceTest(t)

	body := notificationBody(t, "INV-UNKNOWN", "settlement", "", "100000.00", testServerKey)
	if err := svc.HandleNotification(body); !errors.Is(err, ErrWebhookOrderUnknown) {
		t.Fatalf("expected ErrWebhookOrderUnknown, got %v", err)
	}
}

func TestHandleNotificationReplayKeepsSinglePaymentRow(t *testing.T) {
	svc, db := setupPaymentServiceTest(t)
	order := seedPendingOrder(t, db, 2_015_000)

	body := notificationBody(t, order.OrderNo, "settlement", "", "2015000.00", testServerKey)
	if err := svc.HandleNotification(body); err != nil {
		t.Fatalf("first delivery failed: %v", err)
	}
	if err := svc.HandleNotification(body); err != nil {
		t.Fatalf("replay failed: %v", err)
	}

	var count int64
	if err := db.Model(&models.Payment{}).Where("order_id = ?", order.ID).Count(&count).Error; err != nil {
		t.Fatalf("count payments failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly one payment row, got %d", count)
	}

	var reloaded models.Order
	if err := db.First(&reloaded, order.ID).Error; err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if reloaded.Status != constants.OrderStatusDikemas {
		t.Fatalf("status want DIKEMAS after replay, got %s", reloaded.Status)
	}
}

func TestHandleNotificationExpireCancelsOrder(t *testing.T) {
	svc, db := setupPaymentServiceTest(t)
	order := seedPendingOrder(t, db, 750_000)

	body := notificationBody(t, order.OrderNo, "expire", "", "750000.00", testServerKey)
	if err := svc.HandleNotification(body); err != nil {
		t.Fatalf("handle notification failed: %v", err)
	}

	var reloaded models.Order
	if err := db.First(&reloaded, order.ID).Error; err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if reloaded.Status != constants.OrderStatusDibatalkan {
		t.Fatalf("status want DIBATALKAN, got %s", reloaded.Status)
	}
	if reloaded.CanceledAt == nil {
		t.Fatalf("expected canceled_at to be set")
	}
}

func TestHandleNotificationExpireRestocksItems(t *testing.T) {
	svc, db := setupPaymentServiceTest(t)
	order := seedPendingOrder(t, db, 4_015_000)

	// Checkout already deducted the two units from the catalog row.
	product := &models.Product{
		Slug:        fmt.Sprintf("gitar-%d", time.Now().UnixNano()),
		Name:        "Gitar Akustik",
		PriceAmount: 2_000_000,
		Stock:       3,
		WeightGrams: 3000,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	item := &models.OrderItem{
		OrderID:     order.ID,
		ProductID:   product.ID,
		ProductName: product.Name,
		UnitPrice:   product.PriceAmount,
		Quantity:    2,
		TotalPrice:  4_000_000,
		WeightGrams: product.WeightGrams,
	}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("create order item failed: %v", err)
	}

	body := notificationBody(t, order.OrderNo, "expire", "", "4015000.00", testServerKey)
	if err := svc.HandleNotification(body); err != nil {
		t.Fatalf("handle notification failed: %v", err)
	}

	var reloadedProduct models.Product
	if err := db.First(&reloadedProduct, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if reloadedProduct.Stock != 5 {
		t.Fatalf("stock want 5 after restock, got %d", reloadedProduct.Stock)
	}

	// A replayed delivery finds the order already canceled and must not
	// give the stock back twice.
	if err := svc.HandleNotification(body); err != nil {
		t.Fatalf("replay failed: %v", err)
	}
	if err := db.First(&reloadedProduct, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if reloadedProduct.Stock != 5 {
		t.Fatalf("replay must not restock again, got %d", reloadedProduct.Stock)
	}
}

func TestHandleNotificationNeverRegressesShippedOrder(t *testing.T) {
	svc, db := setupPaymentServiceTest(t)
	order := seedPendingOrder(t, db, 900_000)
	if err := db.Model(&models.Order{}).Where("id = ?", order.ID).
		Update("status", constants.OrderStatusDikirim).Error; err != nil {
		t.Fatalf("force status failed: %v", err)
	}

	body := notificationBody(t, order.OrderNo, "expire", "", "900000.00", testServerKey)
	if err := svc.HandleNotification(body); err != nil {
		t.Fatalf("handle notification failed: %v", err)
	}

	var reloaded models.Order
	if err := db.First(&reloaded, order.ID).Error; err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if reloaded.Status != constants.OrderStatusDikirim {
		t.Fatalf("shipped order must not move, got %s", reloaded.Status)
	}
}

func TestHandleNotificationCaptureChallengeKeepsPending(t *testing.T) {
	svc, db := setupPaymentServiceTest(t)
	order := seedPendingOrder(t, db, 300_000)

	body := notificationBody(t, order.OrderNo, "capture", "challenge", "300000.00", testServerKey)
	if err := svc.HandleNotification(body); err != nil {
		t.Fatalf("handle notification failed: %v", err)
	}

	var reloaded models.Order
	if err := db.First(&reloaded, order.ID).Error; err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if reloaded.Status != constants.OrderStatusPending {
		t.Fatalf("challenged capture must keep PENDING, got %s", reloaded.Status)
	}
	if reloaded.PaidAt != nil {
		t.Fatalf("challenged capture must not set paid_at")
	}
}
