package xlsx_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docex/internal/domain"
	"docex/internal/repository/xlsx"
)

func TestListProducts(t *testing.T) {
	repo := xlsx.NewReferenceRepo(newTestStore(t, true))

	products, total, err := repo.ListProducts(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, products, 1)
	assert.Equal(t, "BK-M82S-38", products[0].ProductNumber)
	assert.Equal(t, 3399.99, products[0].ListPrice)
}

func TestListProducts_NoReferenceFile(t *testing.T) {
	repo := xlsx.NewReferenceRepo(newTestStore(t, false))

	products, total, err := repo.ListProducts(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, products)
}

func TestGetProductByNumber(t *testing.T) {
	repo := xlsx.NewReferenceRepo(newTestStore(t, true))
	ctx := context.Background()

	p, err := repo.GetProductByNumber(ctx, "BK-M82S-38")
	require.NoError(t, err)
	assert.Equal(t, 771, p.ProductID)

	_, err = repo.GetProductByNumber(ctx, "NO-SUCH")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetCustomer(t *testing.T) {
	repo := xlsx.NewReferenceRepo(newTestStore(t, true))
	ctx := context.Background()

	c, err := repo.GetCustomer(ctx, 29825)
	require.NoError(t, err)
	assert.Equal(t, "Professional Sales and Service", c.Name)
	assert.Equal(t, "AW00029825", c.AccountNumber)

	_, err = repo.GetCustomer(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSearchCustomers_CaseInsensitive(t *testing.T) {
	repo := xlsx.NewReferenceRepo(newTestStore(t, true))
	ctx := context.Background()

	matches, err := repo.SearchCustomers(ctx, "BIKE", 10)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "Remarkable Bike Store", matches[0].Name)

	matches, err = repo.SearchCustomers(ctx, "s", 1)
	require.NoError(t, err)
	assert.Len(t, matches, 1, "limit caps the matches")

	matches, err = repo.SearchCustomers(ctx, "zzz", 10)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestGetStats(t *testing.T) {
	store := newTestStore(t, true)
	statsRepo := xlsx.NewStatsRepo(store)
	orderRepo := xlsx.NewOrderRepo(store)
	ctx := context.Background()

	id, err := orderRepo.AddOrder(ctx, &domain.Order{OrderDate: "2024-01-15", TotalDue: 10})
	require.NoError(t, err)
	_, err = orderRepo.AddOrderDetails(ctx, id, []domain.OrderDetail{
		{ProductNumber: "A", OrderQty: 1, UnitPrice: 10, LineTotal: 10},
	})
	require.NoError(t, err)

	stats, err := statsRepo.GetStats(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.ReferenceOrders)
	assert.Equal(t, 1, stats.ExtractedOrders)
	assert.Equal(t, 3, stats.Orders)
	assert.Equal(t, 2, stats.OrderDetails)
	assert.Equal(t, 1, stats.Products)
	assert.Equal(t, 2, stats.Customers)
	assert.True(t, stats.ReferenceExists)
	assert.True(t, stats.ExtractedExists)

	extOnly, err := statsRepo.GetStats(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, 1, extOnly.Orders)
	assert.Equal(t, 1, extOnly.OrderDetails)
	assert.Zero(t, extOnly.ReferenceOrders)
}
