package service

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// Purge deletes every product of the remote store with a single bulk delete.
func (s *Service) Purge(ctx context.Context) (int, error) {
	ids, err := s.client.FetchAllProductIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list products: %w", err)
	}
	if len(ids) == 0 {
		log.Info("🗑️ No products to delete")
		return 0, nil
	}

	count, err := s.client.BulkDeleteProducts(ctx, ids)
	if err != nil {
		return 0, fmt.Errorf("failed to delete %d products: %w", len(ids), err)
	}

	log.Infof("🗑️ Deleted %d products", count)
	return count, nil
}
