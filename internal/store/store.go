package store

import (
	"context"
	"errors"
	"time"

	"github.com/expensetracker/backend/internal/model"
)

//go:generate mockgen -source=store.go -destination=store_mock.go -package=store

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateKey is returned when a create collides with an existing
	// entity under a uniqueness constraint.
	ErrDuplicateKey = errors.New("duplicate key")
)

// TransactionFilter narrows ListTransactions. Zero values mean "no filter".
type TransactionFilter struct {
	Start      *time.Time
	End        *time.Time
	Direction  model.Direction
	CategoryID string
	AccountID  string
	Merchant   string
	Limit      int
}

// Store defines the interface for all database operations used by the service
type Store interface {
	// Transaction operations
	CreateTransaction(ctx context.Context, txn *model.Transaction) error
	GetTransaction(ctx context.Context, txnID, ownerID string) (*model.Transaction, error)
	UpdateTransaction(ctx context.Context, txn *model.Transaction) error
	DeleteTransaction(ctx context.Context, txnID, ownerID string) error
	ListTransactions(ctx context.Context, ownerID string, filter TransactionFilter) ([]*model.Transaction, error)
	// FindTransaction looks up by the duplicate-suppression key: same owner,
	// amount, calendar day, direction and display merchant.
	FindTransaction(ctx context.Context, ownerID string, amount float64, day time.Time, direction model.Direction, displayMerchant string) (*model.Transaction, error)

	// Merchant dictionary operations
	FindMerchantMapping(ctx context.Context, ownerID, rawKey string) (*model.MerchantMapping, error)
	UpsertMerchantMapping(ctx context.Context, mapping *model.MerchantMapping) error
	DeleteMerchantMapping(ctx context.Context, ownerID, rawKey string) error
	ListMerchantMappings(ctx context.Context, ownerID string) ([]*model.MerchantMapping, error)
	ListUnnamedMerchants(ctx context.Context, ownerID string) ([]*model.UnnamedMerchant, error)

	// Account operations
	FindAccount(ctx context.Context, ownerID, bankCode, last4 string) (*model.Account, error)
	FindAccountByBank(ctx context.Context, ownerID, bankCode string) (*model.Account, error)
	// CreateAccount returns ErrDuplicateKey when an account with the same
	// (owner, bank, last4) already exists.
	CreateAccount(ctx context.Context, account *model.Account) error
	ListAccounts(ctx context.Context, ownerID string) ([]*model.Account, error)

	// Category operations
	ListCategories(ctx context.Context, ownerID string) ([]*model.Category, error)
	CreateCategory(ctx context.Context, category *model.Category) error

	// Subscription operations
	UpsertSubscription(ctx context.Context, sub *model.Subscription) error
	ListSubscriptions(ctx context.Context, ownerID string) ([]*model.Subscription, error)

	// Analytics
	AggregateSpending(ctx context.Context, ownerID string, start, end time.Time, groupBy string) ([]*model.SpendingBucket, error)
}
