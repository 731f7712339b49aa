package xlsx

import (
	"context"
	"strings"

	"docex/internal/domain"
)

// ReferenceRepo implements port.ReferenceRepository over the read-only
// reference workbook sheets.
type ReferenceRepo struct {
	store *Store
}

// NewReferenceRepo creates a workbook-backed ReferenceRepository.
func NewReferenceRepo(store *Store) *ReferenceRepo {
	return &ReferenceRepo{store: store}
}

func (r *ReferenceRepo) ListProducts(_ context.Context, page, perPage int) ([]domain.Product, int, error) {
	rows, err := r.store.referenceSheet(sheetProducts)
	if err != nil {
		return nil, 0, err
	}
	products := productsFromRows(rows)

	total := len(products)
	start := (page - 1) * perPage
	if start >= total {
		return []domain.Product{}, total, nil
	}
	end := start + perPage
	if end > total {
		end = total
	}
	return products[start:end], total, nil
}

func (r *ReferenceRepo) GetProductByNumber(_ context.Context, productNumber string) (*domain.Product, error) {
	rows, err := r.store.referenceSheet(sheetProducts)
	if err != nil {
		return nil, err
	}
	for _, p := range productsFromRows(rows) {
		if p.ProductNumber == productNumber {
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *ReferenceRepo) GetCustomer(_ context.Context, customerID int) (*domain.Customer, error) {
	rows, err := r.store.referenceSheet(sheetCustomers)
	if err != nil {
		return nil, err
	}
	for _, c := range customersFromRows(rows) {
		if c.CustomerID == customerID {
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *ReferenceRepo) SearchCustomers(_ context.Context, query string, limit int) ([]domain.Customer, error) {
	rows, err := r.store.referenceSheet(sheetCustomers)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(query)
	var matches []domain.Customer
	for _, c := range customersFromRows(rows) {
		if strings.Contains(strings.ToLower(c.Name), q) {
			matches = append(matches, c)
			if len(matches) >= limit {
				break
			}
		}
	}
	return matches, nil
}

func productsFromRows(rows [][]string) []domain.Product {
	if len(rows) < 2 {
		return nil
	}
	idx := columnIndex(rows[0])
	products := make([]domain.Product, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}
		products = append(products, domain.Product{
			ProductID:     parseInt(cellValue(row, idx, "ProductID")),
			ProductNumber: cellValue(row, idx, "ProductNumber"),
			Name:          cellValue(row, idx, "Name"),
			ListPrice:     parseFloat(cellValue(row, idx, "ListPrice")),
		})
	}
	return products
}

func customersFromRows(rows [][]string) []domain.Customer {
	if len(rows) < 2 {
		return nil
	}
	idx := columnIndex(rows[0])
	customers := make([]domain.Customer, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}
		customers = append(customers, domain.Customer{
			CustomerID:    parseInt(cellValue(row, idx, "CustomerID")),
			Name:          cellValue(row, idx, "Name"),
			AccountNumber: cellValue(row, idx, "AccountNumber"),
		})
	}
	return customers
}
