package service

import (
	"context"
	"fmt"
	"time"

	"github.com/expensetracker/backend/internal/model"
	"github.com/expensetracker/backend/internal/store"
)

// SpendingSummary aggregates debit totals in the date range, grouped by
// "category", "merchant", "account" or "day".
func (s *LedgerService) SpendingSummary(ctx context.Context, ownerID string, start, end time.Time, groupBy string) ([]*model.SpendingBucket, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("end date before start date")
	}
	return s.store.AggregateSpending(ctx, ownerID, start, end, groupBy)
}

// BurnRate reports average daily spend over the trailing window and a
// projected monthly total at that pace.
type BurnRate struct {
	WindowDays       int
	TotalSpent       float64
	DailyAverage     float64
	ProjectedMonthly float64
}

// ComputeBurnRate looks at the trailing windowDays of debits (default 30).
func (s *LedgerService) ComputeBurnRate(ctx context.Context, ownerID string, windowDays int) (*BurnRate, error) {
	if windowDays <= 0 {
		windowDays = 30
	}
	end := time.Now()
	start := end.AddDate(0, 0, -windowDays)

	txns, err := s.store.ListTransactions(ctx, ownerID, store.TransactionFilter{
		Start:     &start,
		End:       &end,
		Direction: model.DirectionDebit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	total := 0.0
	for _, txn := range txns {
		total += txn.Amount
	}
	daily := total / float64(windowDays)
	return &BurnRate{
		WindowDays:       windowDays,
		TotalSpent:       total,
		DailyAverage:     daily,
		ProjectedMonthly: daily * 30.44,
	}, nil
}
