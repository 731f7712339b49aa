package xlsx

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"docex/internal/domain"
	"docex/internal/port"
)

// OrderRepo implements port.OrderRepository on top of the workbook Store.
type OrderRepo struct {
	store *Store

	// writeMu serializes the read-allocate-append cycle so two concurrent
	// saves cannot claim the same order id.
	writeMu sync.Mutex
}

// NewOrderRepo creates a workbook-backed OrderRepository.
func NewOrderRepo(store *Store) *OrderRepo {
	return &OrderRepo{store: store}
}

func (r *OrderRepo) ListOrders(_ context.Context, filter port.OrderListFilter) ([]domain.Order, int, error) {
	source := filter.Source
	if source == "" {
		source = domain.SourceExtracted
	}

	var orders []domain.Order

	if source == domain.SourceReference || source == domain.SourceAll {
		rows, err := r.store.referenceSheet(sheetOrders)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, ordersFromRows(rows, string(domain.SourceReference))...)
	}
	if source == domain.SourceExtracted || source == domain.SourceAll {
		rows, err := r.store.extractedSheet(sheetExtractedOrders, false)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, ordersFromRows(rows, string(domain.SourceExtracted))...)
	}

	if filter.CustomerID != "" {
		filtered := orders[:0]
		for _, o := range orders {
			if o.CustomerID == filter.CustomerID {
				filtered = append(filtered, o)
			}
		}
		orders = filtered
	}

	// Newest first
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].SalesOrderID > orders[j].SalesOrderID
	})

	total := len(orders)
	start := (filter.Page - 1) * filter.PerPage
	if start >= total {
		return []domain.Order{}, total, nil
	}
	end := start + filter.PerPage
	if end > total {
		end = total
	}
	return orders[start:end], total, nil
}

func (r *OrderRepo) GetOrder(ctx context.Context, orderID int) (*domain.Order, error) {
	all, _, err := r.ListOrders(ctx, port.OrderListFilter{
		Page: 1, PerPage: 1 << 30, Source: domain.SourceAll,
	})
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].SalesOrderID == orderID {
			return &all[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *OrderRepo) ListOrderDetails(_ context.Context, orderID int) ([]domain.OrderDetail, error) {
	// Extracted details take precedence over reference data for the same id.
	extRows, err := r.store.extractedSheet(sheetExtractedDetails, false)
	if err != nil {
		return nil, err
	}
	if details := detailsFromRows(extRows, orderID); len(details) > 0 {
		return details, nil
	}

	refRows, err := r.store.referenceSheet(sheetOrderDetails)
	if err != nil {
		return nil, err
	}
	return detailsFromRows(refRows, orderID), nil
}

func (r *OrderRepo) AddOrder(_ context.Context, order *domain.Order) (int, error) {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	refRows, err := r.store.referenceSheet(sheetOrders)
	if err != nil {
		return 0, err
	}
	extRows, err := r.store.extractedSheet(sheetExtractedOrders, true)
	if err != nil {
		return 0, err
	}

	newID := maxColumnInt(refRows, "SalesOrderID")
	if extMax := maxColumnInt(extRows, "SalesOrderID"); extMax > newID {
		newID = extMax
	}
	newID++

	order.SalesOrderID = newID
	if order.SalesOrderNumber == "" {
		order.SalesOrderNumber = fmt.Sprintf("EXT-%d", newID)
	}
	order.ExtractedAt = time.Now().Format(time.RFC3339)

	row := []interface{}{
		order.SalesOrderID, order.SalesOrderNumber, order.OrderDate, order.CustomerID,
		order.SubTotal, order.TaxAmt, order.Freight, order.TotalDue, order.Status,
		order.InvoiceNumber, order.CompanyName, order.ExtractedAt, order.Confidence, order.Provider,
	}
	if err := r.store.appendRow(sheetExtractedOrders, row); err != nil {
		return 0, fmt.Errorf("appending order: %w", err)
	}

	log.Info().Int("order_id", newID).Msg("added order to extracted workbook")
	return newID, nil
}

func (r *OrderRepo) AddOrderDetails(_ context.Context, orderID int, details []domain.OrderDetail) ([]int, error) {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	refRows, err := r.store.referenceSheet(sheetOrderDetails)
	if err != nil {
		return nil, err
	}
	extRows, err := r.store.extractedSheet(sheetExtractedDetails, true)
	if err != nil {
		return nil, err
	}

	nextID := maxColumnInt(refRows, "SalesOrderDetailID")
	if extMax := maxColumnInt(extRows, "SalesOrderDetailID"); extMax > nextID {
		nextID = extMax
	}

	ids := make([]int, 0, len(details))
	for i := range details {
		nextID++
		details[i].SalesOrderDetailID = nextID
		details[i].SalesOrderID = orderID

		row := []interface{}{
			details[i].SalesOrderDetailID, details[i].SalesOrderID,
			details[i].ProductID, details[i].ProductNumber, details[i].ProductName,
			details[i].OrderQty, details[i].UnitPrice, details[i].LineTotal,
		}
		if err := r.store.appendRow(sheetExtractedDetails, row); err != nil {
			return nil, fmt.Errorf("appending order detail: %w", err)
		}
		ids = append(ids, nextID)
	}

	log.Info().Int("order_id", orderID).Int("count", len(ids)).Msg("added order details")
	return ids, nil
}

func ordersFromRows(rows [][]string, source string) []domain.Order {
	if len(rows) < 2 {
		return nil
	}
	idx := columnIndex(rows[0])
	orders := make([]domain.Order, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}
		orders = append(orders, domain.Order{
			SalesOrderID:     parseInt(cellValue(row, idx, "SalesOrderID")),
			SalesOrderNumber: cellValue(row, idx, "SalesOrderNumber"),
			OrderDate:        cellValue(row, idx, "OrderDate"),
			CustomerID:       cellValue(row, idx, "CustomerID"),
			SubTotal:         parseFloat(cellValue(row, idx, "SubTotal")),
			TaxAmt:           parseFloat(cellValue(row, idx, "TaxAmt")),
			Freight:          parseFloat(cellValue(row, idx, "Freight")),
			TotalDue:         parseFloat(cellValue(row, idx, "TotalDue")),
			Status:           parseInt(cellValue(row, idx, "Status")),
			InvoiceNumber:    cellValue(row, idx, "InvoiceNumber"),
			CompanyName:      cellValue(row, idx, "CompanyName"),
			ExtractedAt:      cellValue(row, idx, "ExtractedAt"),
			Confidence:       parseFloat(cellValue(row, idx, "Confidence")),
			Provider:         cellValue(row, idx, "Provider"),
			Source:           source,
		})
	}
	return orders
}

func detailsFromRows(rows [][]string, orderID int) []domain.OrderDetail {
	if len(rows) < 2 {
		return nil
	}
	idx := columnIndex(rows[0])
	var details []domain.OrderDetail
	for _, row := range rows[1:] {
		if parseInt(cellValue(row, idx, "SalesOrderID")) != orderID {
			continue
		}
		details = append(details, domain.OrderDetail{
			SalesOrderDetailID: parseInt(cellValue(row, idx, "SalesOrderDetailID")),
			SalesOrderID:       orderID,
			ProductID:          cellValue(row, idx, "ProductID"),
			ProductNumber:      cellValue(row, idx, "ProductNumber"),
			ProductName:        cellValue(row, idx, "ProductName"),
			OrderQty:           parseInt(cellValue(row, idx, "OrderQty")),
			UnitPrice:          parseFloat(cellValue(row, idx, "UnitPrice")),
			LineTotal:          parseFloat(cellValue(row, idx, "LineTotal")),
		})
	}
	return details
}

func maxColumnInt(rows [][]string, column string) int {
	if len(rows) < 2 {
		return 0
	}
	idx := columnIndex(rows[0])
	max := 0
	for _, row := range rows[1:] {
		if v := parseInt(cellValue(row, idx, column)); v > max {
			max = v
		}
	}
	return max
}

func parseInt(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		// Tolerate numbers formatted as floats ("123.0") by some writers.
		if f, ferr := strconv.ParseFloat(s, 64); ferr == nil {
			return int(f)
		}
		return 0
	}
	return v
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
