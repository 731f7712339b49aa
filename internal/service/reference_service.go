package service

import (
	"context"

	"docex/internal/domain"
	"docex/internal/port"
)

// ReferenceService exposes the read-only product and customer catalogs.
type ReferenceService struct {
	ref port.ReferenceRepository
}

// NewReferenceService creates a ReferenceService.
func NewReferenceService(ref port.ReferenceRepository) *ReferenceService {
	return &ReferenceService{ref: ref}
}

func (s *ReferenceService) ListProducts(ctx context.Context, page, perPage int) ([]domain.Product, int, error) {
	return s.ref.ListProducts(ctx, page, perPage)
}

func (s *ReferenceService) GetProductByNumber(ctx context.Context, productNumber string) (*domain.Product, error) {
	return s.ref.GetProductByNumber(ctx, productNumber)
}

func (s *ReferenceService) GetCustomer(ctx context.Context, customerID int) (*domain.Customer, error) {
	return s.ref.GetCustomer(ctx, customerID)
}

func (s *ReferenceService) SearchCustomers(ctx context.Context, query string, limit int) ([]domain.Customer, error) {
	return s.ref.SearchCustomers(ctx, query, limit)
}
