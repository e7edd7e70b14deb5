package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/expensetracker/backend/internal/events"
	"github.com/expensetracker/backend/internal/model"
	"github.com/expensetracker/backend/internal/store"
)

// ManualTransactionInput is a user-entered transaction.
type ManualTransactionInput struct {
	Amount     float64
	Direction  model.Direction
	Merchant   string
	CategoryID string
	AccountID  string
	OccurredAt time.Time
}

// CreateManualTransaction stores a user-entered transaction. Manual entries
// bypass duplicate suppression: the user typing the same movement twice is an
// explicit statement that both exist.
func (s *LedgerService) CreateManualTransaction(ctx context.Context, ownerID string, input ManualTransactionInput) (*model.Transaction, error) {
	if input.Amount <= 0 {
		return nil, fmt.Errorf("amount must be positive")
	}
	merchant := strings.TrimSpace(input.Merchant)
	if merchant == "" {
		merchant = model.UnknownMerchant
	}
	direction := input.Direction
	if direction == "" {
		direction = model.DirectionDebit
	}
	occurredAt := input.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}

	txn := &model.Transaction{
		OwnerID:          ownerID,
		Amount:           input.Amount,
		Direction:        direction,
		DisplayMerchant:  merchant,
		OriginalMerchant: merchant,
		CategoryID:       input.CategoryID,
		AccountID:        input.AccountID,
		OccurredAt:       model.Day(occurredAt),
	}
	if err := s.store.CreateTransaction(ctx, txn); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	s.indexTransaction(ctx, txn)
	s.bus.Publish(events.Event{Type: events.TypeDataChanged, OwnerID: ownerID})
	return txn, nil
}

// ListTransactions returns the owner's transactions, newest first.
func (s *LedgerService) ListTransactions(ctx context.Context, ownerID string, filter store.TransactionFilter) ([]*model.Transaction, error) {
	return s.store.ListTransactions(ctx, ownerID, filter)
}

// GetTransaction returns one transaction by ID.
func (s *LedgerService) GetTransaction(ctx context.Context, txnID, ownerID string) (*model.Transaction, error) {
	return s.store.GetTransaction(ctx, txnID, ownerID)
}

// UpdateTransaction applies a user edit. The store preserves the immutable
// original merchant token regardless of what the edit carries.
func (s *LedgerService) UpdateTransaction(ctx context.Context, txn *model.Transaction) (*model.Transaction, error) {
	if err := s.store.UpdateTransaction(ctx, txn); err != nil {
		return nil, err
	}
	s.indexTransaction(ctx, txn)
	s.bus.Publish(events.Event{Type: events.TypeDataChanged, OwnerID: txn.OwnerID})
	return txn, nil
}

// DeleteTransaction removes a transaction and its search index entry.
func (s *LedgerService) DeleteTransaction(ctx context.Context, txnID, ownerID string) error {
	if err := s.store.DeleteTransaction(ctx, txnID, ownerID); err != nil {
		return err
	}
	if s.search != nil {
		if err := s.search.DeleteTransaction(ctx, txnID); err != nil {
			log.Printf("[Search] failed to deindex transaction %s: %v", txnID, err)
		}
	}
	s.bus.Publish(events.Event{Type: events.TypeDataChanged, OwnerID: ownerID})
	return nil
}

// ListAccounts returns the owner's discovered accounts.
func (s *LedgerService) ListAccounts(ctx context.Context, ownerID string) ([]*model.Account, error) {
	return s.store.ListAccounts(ctx, ownerID)
}

// ListCategories returns the owner's categories.
func (s *LedgerService) ListCategories(ctx context.Context, ownerID string) ([]*model.Category, error) {
	return s.store.ListCategories(ctx, ownerID)
}
