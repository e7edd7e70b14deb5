package service

import (
	"context"
	"fmt"

	"github.com/expensetracker/backend/internal/events"
	"github.com/expensetracker/backend/internal/model"
)

// SaveMerchantMapping records a user-chosen name for a raw token and
// relabels the owner's matching transactions. Returns how many rows were
// rewritten.
func (s *LedgerService) SaveMerchantMapping(ctx context.Context, ownerID, rawToken, displayName, categoryID string) (int, error) {
	updated, err := s.merchants.Save(ctx, ownerID, rawToken, displayName, categoryID)
	if err != nil {
		return 0, err
	}
	s.bus.Publish(events.Event{Type: events.TypeDataChanged, OwnerID: ownerID})
	return updated, nil
}

// ListMerchantMappings returns the owner's learned dictionary.
func (s *LedgerService) ListMerchantMappings(ctx context.Context, ownerID string) ([]*model.MerchantMapping, error) {
	return s.store.ListMerchantMappings(ctx, ownerID)
}

// DeleteMerchantMapping forgets a learned name. Already-relabeled
// transactions keep their display names; only future ingests change.
func (s *LedgerService) DeleteMerchantMapping(ctx context.Context, ownerID, rawToken string) error {
	if rawToken == "" {
		return fmt.Errorf("raw token is required")
	}
	return s.store.DeleteMerchantMapping(ctx, ownerID, rawToken)
}

// ListUnnamedMerchants returns the naming backlog, most frequent first.
func (s *LedgerService) ListUnnamedMerchants(ctx context.Context, ownerID string) ([]*model.UnnamedMerchant, error) {
	return s.merchants.Unnamed(ctx, ownerID)
}
