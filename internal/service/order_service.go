package service

import (
	"context"
	"fmt"

	"docex/internal/domain"
	"docex/internal/port"
)

// OrderWithDetails is a single order together with its line rows.
type OrderWithDetails struct {
	domain.Order
	LineItems []domain.OrderDetail `json:"line_items"`
}

// OrderService exposes order listing, lookup, and persistence of extracted
// invoices as orders.
type OrderService struct {
	orders port.OrderRepository
}

// NewOrderService creates an OrderService.
func NewOrderService(orders port.OrderRepository) *OrderService {
	return &OrderService{orders: orders}
}

// ListOrders returns one page of orders plus the total match count.
func (s *OrderService) ListOrders(ctx context.Context, filter port.OrderListFilter) ([]domain.Order, int, error) {
	if filter.Source == "" {
		filter.Source = domain.SourceExtracted
	}
	if !domain.ValidOrderSources[filter.Source] {
		return nil, 0, fmt.Errorf("%w: invalid source %q", domain.ErrValidation, filter.Source)
	}
	return s.orders.ListOrders(ctx, filter)
}

// GetOrder returns one order with its line items.
func (s *OrderService) GetOrder(ctx context.Context, orderID int) (*OrderWithDetails, error) {
	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	details, err := s.orders.ListOrderDetails(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return &OrderWithDetails{Order: *order, LineItems: details}, nil
}

// ListOrderDetails returns the line rows for one order.
func (s *OrderService) ListOrderDetails(ctx context.Context, orderID int) ([]domain.OrderDetail, error) {
	return s.orders.ListOrderDetails(ctx, orderID)
}

// SaveExtracted persists an extracted invoice as a new order plus detail
// rows and returns the allocated order id. Each call allocates a fresh id,
// so retrying after a partial failure produces a new order rather than a
// conflict.
func (s *OrderService) SaveExtracted(ctx context.Context, inv *domain.ExtractedInvoice, provider string) (int, error) {
	if inv == nil {
		return 0, fmt.Errorf("%w: no extraction to save", domain.ErrValidation)
	}

	order := &domain.Order{
		OrderDate:     inv.Header.Date,
		CustomerID:    inv.Header.CustomerID,
		SubTotal:      inv.Totals.Subtotal,
		TaxAmt:        inv.Totals.TaxAmount,
		Freight:       inv.Totals.Shipping,
		TotalDue:      inv.Totals.Total,
		Status:        domain.OrderStatusNew,
		InvoiceNumber: inv.Header.InvoiceNumber,
		CompanyName:   inv.Header.CompanyName,
		Confidence:    inv.Confidence,
		Provider:      provider,
	}

	orderID, err := s.orders.AddOrder(ctx, order)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrSaveFailed, err)
	}

	details := make([]domain.OrderDetail, 0, len(inv.LineItems))
	for _, li := range inv.LineItems {
		details = append(details, domain.OrderDetail{
			SalesOrderID:  orderID,
			ProductNumber: li.ItemNumber,
			ProductName:   li.Description,
			OrderQty:      li.Quantity,
			UnitPrice:     li.UnitPrice,
			LineTotal:     li.Total,
		})
	}
	if _, err := s.orders.AddOrderDetails(ctx, orderID, details); err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrSaveFailed, err)
	}

	return orderID, nil
}
