package xlsx

import (
	"context"
	"os"

	"docex/internal/domain"
)

// StatsRepo implements port.StatsRepository by counting workbook rows.
type StatsRepo struct {
	store *Store
}

// NewStatsRepo creates a workbook-backed StatsRepository.
func NewStatsRepo(store *Store) *StatsRepo {
	return &StatsRepo{store: store}
}

func (r *StatsRepo) GetStats(_ context.Context, extractedOnly bool) (*domain.Stats, error) {
	extOrders, err := r.store.extractedSheet(sheetExtractedOrders, false)
	if err != nil {
		return nil, err
	}
	extDetails, err := r.store.extractedSheet(sheetExtractedDetails, false)
	if err != nil {
		return nil, err
	}

	stats := &domain.Stats{
		ExtractedOrders:       dataRowCount(extOrders),
		ExtractedOrderDetails: dataRowCount(extDetails),
		ReferenceFile:         r.store.referencePath,
		ExtractedFile:         r.store.extractedPath,
		ExtractedExists:       fileExists(r.store.extractedPath),
		ReferenceExists:       fileExists(r.store.referencePath),
	}

	if extractedOnly {
		stats.Orders = stats.ExtractedOrders
		stats.OrderDetails = stats.ExtractedOrderDetails
		return stats, nil
	}

	refOrders, err := r.store.referenceSheet(sheetOrders)
	if err != nil {
		return nil, err
	}
	refDetails, err := r.store.referenceSheet(sheetOrderDetails)
	if err != nil {
		return nil, err
	}
	products, err := r.store.referenceSheet(sheetProducts)
	if err != nil {
		return nil, err
	}
	customers, err := r.store.referenceSheet(sheetCustomers)
	if err != nil {
		return nil, err
	}

	stats.ReferenceOrders = dataRowCount(refOrders)
	stats.Orders = stats.ReferenceOrders + stats.ExtractedOrders
	stats.OrderDetails = dataRowCount(refDetails) + stats.ExtractedOrderDetails
	stats.Products = dataRowCount(products)
	stats.Customers = dataRowCount(customers)
	return stats, nil
}

// dataRowCount counts rows excluding the header.
func dataRowCount(rows [][]string) int {
	if len(rows) <= 1 {
		return 0
	}
	return len(rows) - 1
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
