package service

import (
	"context"
	"fmt"

	"catalog/loader/internal/domain"
)

// LookupProduct finds the product carrying sku and returns its stored state.
func (s *Service) LookupProduct(ctx context.Context, sku string) (*domain.ProductDetails, error) {
	id, err := s.client.FetchProductBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}

	product, err := s.client.FetchProduct(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product %s: %w", id, err)
	}
	return product, nil
}
