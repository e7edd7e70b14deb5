package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/expensetracker/backend/internal/model"
	"github.com/expensetracker/backend/internal/store"
)

// DetectSubscriptions re-runs recurring-payment detection over the owner's
// history and upserts the results. Re-running refreshes rather than
// duplicates: persistence is keyed by the stable merchant key and owner, so
// renaming a merchant between runs refreshes the same row.
func (s *LedgerService) DetectSubscriptions(ctx context.Context, ownerID string) ([]*model.Subscription, error) {
	txns, err := s.store.ListTransactions(ctx, ownerID, store.TransactionFilter{
		Direction: model.DirectionDebit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	detected := DetectRecurring(txns, time.Now())
	for _, sub := range detected {
		if err := s.store.UpsertSubscription(ctx, sub); err != nil {
			log.Printf("[Subscriptions] failed to upsert %q for owner %s: %v", sub.Merchant, ownerID, err)
		}
	}
	return detected, nil
}

// ListSubscriptions returns the persisted detection results.
func (s *LedgerService) ListSubscriptions(ctx context.Context, ownerID string) ([]*model.Subscription, error) {
	return s.store.ListSubscriptions(ctx, ownerID)
}

// MonthlySubscriptionCost sums detected subscriptions normalized onto a
// monthly basis.
func (s *LedgerService) MonthlySubscriptionCost(ctx context.Context, ownerID string) (float64, error) {
	subs, err := s.store.ListSubscriptions(ctx, ownerID)
	if err != nil {
		return 0, err
	}
	total := 0.0
	for _, sub := range subs {
		total += sub.MonthlyEquivalent()
	}
	return total, nil
}
