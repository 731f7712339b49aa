package port

import (
	"context"

	"docex/internal/domain"
)

// OrderListFilter narrows an order listing.
type OrderListFilter struct {
	Page       int
	PerPage    int
	CustomerID string
	Source     domain.OrderSource
}

// OrderRepository is the spreadsheet-backed store of sales orders.
type OrderRepository interface {
	ListOrders(ctx context.Context, filter OrderListFilter) ([]domain.Order, int, error)
	GetOrder(ctx context.Context, orderID int) (*domain.Order, error)
	ListOrderDetails(ctx context.Context, orderID int) ([]domain.OrderDetail, error)
	AddOrder(ctx context.Context, order *domain.Order) (int, error)
	AddOrderDetails(ctx context.Context, orderID int, details []domain.OrderDetail) ([]int, error)
}

// ReferenceRepository reads the read-only reference sheets.
type ReferenceRepository interface {
	ListProducts(ctx context.Context, page, perPage int) ([]domain.Product, int, error)
	GetProductByNumber(ctx context.Context, productNumber string) (*domain.Product, error)
	GetCustomer(ctx context.Context, customerID int) (*domain.Customer, error)
	SearchCustomers(ctx context.Context, query string, limit int) ([]domain.Customer, error)
}

// StatsRepository reports aggregate workbook counts.
type StatsRepository interface {
	GetStats(ctx context.Context, extractedOnly bool) (*domain.Stats, error)
}
