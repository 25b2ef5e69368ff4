package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/tokogitar/tokogitar/internal/constants"
	"github.com/tokogitar/tokogitar/internal/models"
	"github.com/tokogitar/tokogitar/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupReportServiceTest(t *testing.T) (*ReportService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:report_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	return NewReportService(repository.NewReportRepository(db)), db
}

func seedReportOrder(t *testing.T, db *gorm.DB, status string, items, shipping int64, paid bool) *models.Order {
	t.Helper()
	user := &models.User{
		Name:         "Pembeli",
		Email:        fmt.Sprintf("report_%d@example.com", time.Now().UnixNano()),
		PasswordHash: "hash",
		Role:         constants.RoleCustomer,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	order := &models.Order{
		OrderNo:      fmt.Sprintf("INV%d", time.Now().UnixNano()),
		UserID:       user.ID,
		Status:       status,
		ItemsAmount:  items,
		ShippingCost: shipping,
		TotalAmount:  items + shipping,
	}
	if paid {
		now := time.Now()
		order.PaidAt = &now
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if err := db.Create(&models.OrderItem{
		OrderID:     order.ID,
		ProductID:   1,
		ProductName: "Yamaha F310",
		UnitPrice:   items,
		Quantity:    1,
		TotalPrice:  items,
	}).Error; err != nil {
		t.Fatalf("create order item failed: %v", err)
	}
	return order
}

func TestGetSalesReportSummary(t *testing.T) {
	svc, db := setupReportServiceTest(t)
	seedReportOrder(t, db, constants.OrderStatusDikemas, 2_000_000, 15_000, true)
	seedReportOrder(t, db, constants.OrderStatusSelesai, 1_450_000, 20_000, true)
	seedReportOrder(t, db, constants.OrderStatusPending, 500_000, 10_000, false)
	seedReportOrder(t, db, constants.OrderStatusDibatalkan, 750_000, 12_000, false)

	report, err := svc.GetSalesReport(repository.SalesReportFilter{})
	if err != nil {
		t.Fatalf("get sales report failed: %v", err)
	}
	if report.Summary.OrdersTotal != 4 {
		t.Fatalf("orders total want 4, got %d", report.Summary.OrdersTotal)
	}
	if report.Summary.OrdersPaid != 2 {
		t.Fatalf("orders paid want 2, got %d", report.Summary.OrdersPaid)
	}
	if report.Summary.OrdersCanceled != 1 {
		t.Fatalf("orders canceled want 1, got %d", report.Summary.OrdersCanceled)
	}
	wantRevenue := int64(2_015_000 + 1_470_000)
	if report.Summary.GrossRevenue != wantRevenue {
		t.Fatalf("gross revenue want %d, got %d", wantRevenue, report.Summary.GrossRevenue)
	}
	if len(report.Orders) != 2 {
		t.Fatalf("expected 2 settled order rows, got %d", len(report.Orders))
	}
	if len(report.TopProducts) == 0 {
		t.Fatalf("expected top product ranking")
	}
	if report.TopProducts[0].ProductName != "Yamaha F310" {
		t.Fatalf("unexpected top product: %+v", report.TopProducts[0])
	}
}

func TestGetSalesReportWindow(t *testing.T) {
	svc, db := setupReportServiceTest(t)
	order := seedReportOrder(t, db, constants.OrderStatusDikemas, 1_000_000, 15_000, true)

	past := time.Now().Add(-48 * time.Hour)
	if err := db.Model(&models.Order{}).Where("id = ?", order.ID).
		Update("created_at", past.Add(-24*time.Hour)).Error; err != nil {
		t.Fatalf("backdate order failed: %v", err)
	}

	report, err := svc.GetSalesReport(repository.SalesReportFilter{From: &past})
	if err != nil {
		t.Fatalf("get sales report failed: %v", err)
	}
	if report.Summary.OrdersTotal != 0 {
		t.Fatalf("backdated order must fall outside the window, got %d", report.Summary.OrdersTotal)
	}
}

func TestExportCSV(t *testing.T) {
	svc, db := setupReportServiceTest(t)
	order := seedReportOrder(t, db, constants.OrderStatusDikemas, 2_000_000, 15_000, true)

	report, err := svc.GetSalesReport(repository.SalesReportFilter{})
	if err != nil {
		t.Fatalf("get sales report failed: %v", err)
	}
	out, err := svc.ExportCSV(report)
	if err != nil {
		t.Fatalf("export csv failed: %v", err)
	}

	content := string(out)
	lines := strings.Split(strings.TrimSpace(content), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header plus one row, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "No. Pesanan,") {
		t.Fatalf("unexpected header: %s", lines[0])
	}
	if !strings.Contains(lines[1], order.OrderNo) {
		t.Fatalf("row should carry order no, got: %s", lines[1])
	}
	if !strings.Contains(lines[1], "2015000") {
		t.Fatalf("row should carry total amount, got: %s", lines[1])
	}
}

func TestExportHTML(t *testing.T) {
	svc, db := setupReportServiceTest(t)
	order := seedReportOrder(t, db, constants.OrderStatusSelesai, 1_450_000, 20_000, true)

	report, err := svc.GetSalesReport(repository.SalesReportFilter{})
	if err != nil {
		t.Fatalf("get sales report failed: %v", err)
	}
	out, err := svc.ExportHTML(report)
	if err != nil {
		t.Fatalf("export html failed: %v", err)
	}

	content := string(out)
	if !strings.Contains(content, "Laporan Penjualan") {
		t.Fatalf("expected report title in html")
	}
	if !strings.Contains(content, order.OrderNo) {
		t.Fatalf("expected order no in html")
	}
	if !strings.Contains(content, models.FormatIDR(1_470_000)) {
		t.Fatalf("expected formatted total in html")
	}
}
