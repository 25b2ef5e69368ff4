package repository

import (
	"time"

	"github.com/tokogitar/tokogitar/internal/constants"
	"github.com/tokogitar/tokogitar/internal/models"

	"gorm.io/gorm"
)

// ReportRepository aggregates sales figures. Aggregation only, business
// rules live in the service layer.
type ReportRepository interface {
	GetSalesSummary(filter SalesReportFilter) (SalesSummaryRow, error)
	GetSalesRows(filter SalesReportFilter) ([]SalesOrderRow, error)
	GetTopProducts(filter SalesReportFilter, limit int) ([]ProductSalesRow, error)
}

// SalesSummaryRow is the aggregate over the report window.
type SalesSummaryRow struct {
	OrdersTotal    int64
	OrdersPaid     int64
	OrdersCanceled int64
	GrossRevenue   int64
	ShippingTotal  int64
	ItemsSold      int64
}

// SalesOrderRow is one settled order line in the report.
type SalesOrderRow struct {
	OrderNo      string
	BuyerEmail   string
	Status       string
	ItemsAmount  int64
	ShippingCost int64
	TotalAmount  int64
	PaidAt       *time.Time
	CreatedAt    time.Time
}

// ProductSalesRow ranks a product by sold quantity.
type ProductSalesRow struct {
	ProductID   uint
	ProductName string
	Quantity    int64
	PaidAmount  int64
}

// GormReportRepository is the GORM implementation.
type GormReportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a report repository.
func NewReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

func (r *GormReportRepository) windowed(query *gorm.DB, column string, filter SalesReportFilter) *gorm.DB {
	if filter.From != nil {
		query = query.Where(column+" >= ?", filter.From)
	}
	if filter.To != nil {
		query = query.Where(column+" <= ?", filter.To)
	}
	return query
}

// paidStatuses are the order states that count as revenue.
func paidStatuses() []string {
	return []string{
		constants.OrderStatusDikemas,
		constants.OrderStatusDikirim,
		constants.OrderStatusSelesai,
	}
}

// GetSalesSummary computes window totals in a single pass per metric.
func (r *GormReportRepository) GetSalesSummary(filter SalesReportFilter) (SalesSummaryRow, error) {
	var row SalesSummaryRow

	base := r.windowed(r.db.Model(&models.Order{}), "orders.created_at", filter)
	if err := base.Session(&gorm.Session{}).Count(&row.OrdersTotal).Error; err != nil {
		return row, err
	}
	if err := base.Session(&gorm.Session{}).Where("status IN ?", paidStatuses()).Count(&row.OrdersPaid).Error; err != nil {
		return row, err
	}
	if err := base.Session(&gorm.Session{}).Where("status = ?", constants.OrderStatusDibatalkan).Count(&row.OrdersCanceled).Error; err != nil {
		return row, err
	}

	var revenue struct {
		Gross    int64
		Shipping int64
	}
	err := r.windowed(r.db.Model(&models.Order{}), "orders.created_at", filter).
		Select("COALESCE(SUM(total_amount),0) AS gross, COALESCE(SUM(shipping_cost),0) AS shipping").
		Where("status IN ?", paidStatuses()).
		Take(&revenue).Error
	if err != nil {
		return row, err
	}
	row.GrossRevenue = revenue.Gross
	row.ShippingTotal = revenue.Shipping

	var sold struct {
		Quantity int64
	}
	err = r.windowed(r.db.Model(&models.OrderItem{}), "order_items.created_at", filter).
		Select("COALESCE(SUM(order_items.quantity),0) AS quantity").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.status IN ?", paidStatuses()).
		Take(&sold).Error
	if err != nil {
		return row, err
	}
	row.ItemsSold = sold.Quantity

	return row, nil
}

// GetSalesRows returns per-order report lines, newest first.
func (r *GormReportRepository) GetSalesRows(filter SalesReportFilter) ([]SalesOrderRow, error) {
	var rows []SalesOrderRow
	err := r.windowed(r.db.Model(&models.Order{}), "orders.created_at", filter).
		Select("orders.order_no, users.email AS buyer_email, orders.status, orders.items_amount, orders.shipping_cost, orders.total_amount, orders.paid_at, orders.created_at").
		Joins("JOIN users ON users.id = orders.user_id").
		Order("orders.id desc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// GetTopProducts ranks products by sold quantity within the window.
func (r *GormReportRepository) GetTopProducts(filter SalesReportFilter, limit int) ([]ProductSalesRow, error) {
	if limit <= 0 {
		limit = 10
	}
	var rows []ProductSalesRow
	err := r.windowed(r.db.Model(&models.OrderItem{}), "order_items.created_at", filter).
		Select("order_items.product_id, order_items.product_name, SUM(order_items.quantity) AS quantity, SUM(order_items.total_price) AS paid_amount").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.status IN ?", paidStatuses()).
		Group("order_items.product_id, order_items.product_name").
		Order("quantity desc").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
