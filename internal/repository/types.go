package repository

import "time"

// ProductListFilter filters product list queries.
type ProductListFilter struct {
	Page         int
	PageSize     int
	CategoryID   uint
	Search       string
	OnlyActive   bool
	WithCategory bool
}

// OrderListFilter filters order list queries.
type OrderListFilter struct {
	Page        int
	PageSize    int
	UserID      uint
	Status      string
	OrderNo     string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// UserListFilter filters user list queries.
type UserListFilter struct {
	Page     int
	PageSize int
	Keyword  string
	Role     string
}

// SalesReportFilter bounds the sales report window.
type SalesReportFilter struct {
	From *time.Time
	To   *time.Time
}
