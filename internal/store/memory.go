package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/expensetracker/backend/internal/model"
)

// MemoryStore implements Store interface with in-memory storage
type MemoryStore struct {
	mu sync.RWMutex

	// Storage maps
	transactions     map[string]*model.Transaction
	merchantMappings map[string]*model.MerchantMapping
	accounts         map[string]*model.Account
	categories       map[string]*model.Category
	subscriptions    map[string]*model.Subscription
}

// NewMemoryStore creates a new in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		transactions:     make(map[string]*model.Transaction),
		merchantMappings: make(map[string]*model.MerchantMapping),
		accounts:         make(map[string]*model.Account),
		categories:       make(map[string]*model.Category),
		subscriptions:    make(map[string]*model.Subscription),
	}
}

func mappingKey(ownerID, rawToken string) string {
	return ownerID + "/" + strings.ToLower(rawToken)
}

func accountKey(ownerID, bankName, last4 string) string {
	return ownerID + "/" + strings.ToLower(bankName) + "/" + last4
}

func subscriptionKey(ownerID, merchant string) string {
	return ownerID + "/" + strings.ToLower(merchant)
}

// setDerived maintains the exact-match lookup fields on every write.
func setDerived(txn *model.Transaction) {
	txn.MerchantKey = strings.ToLower(txn.DisplayMerchant)
	txn.DayKey = model.Day(txn.OccurredAt).Format("2006-01-02")
}

// Transaction operations

func (m *MemoryStore) CreateTransaction(ctx context.Context, txn *model.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if txn.ID == "" {
		txn.ID = uuid.New().String()
	}
	now := time.Now()
	if txn.CreatedAt.IsZero() {
		txn.CreatedAt = now
	}
	txn.UpdatedAt = now
	setDerived(txn)

	m.transactions[txn.ID] = txn
	return nil
}

func (m *MemoryStore) GetTransaction(ctx context.Context, txnID, ownerID string) (*model.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	txn, ok := m.transactions[txnID]
	if !ok || txn.OwnerID != ownerID {
		return nil, ErrNotFound
	}
	return txn, nil
}

func (m *MemoryStore) UpdateTransaction(ctx context.Context, txn *model.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.transactions[txn.ID]
	if !ok || existing.OwnerID != txn.OwnerID {
		return ErrNotFound
	}

	// OriginalMerchant is write-once
	txn.OriginalMerchant = existing.OriginalMerchant
	txn.CreatedAt = existing.CreatedAt
	txn.UpdatedAt = time.Now()
	setDerived(txn)

	m.transactions[txn.ID] = txn
	return nil
}

func (m *MemoryStore) DeleteTransaction(ctx context.Context, txnID, ownerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	txn, ok := m.transactions[txnID]
	if !ok || txn.OwnerID != ownerID {
		return ErrNotFound
	}
	delete(m.transactions, txnID)
	return nil
}

func (m *MemoryStore) ListTransactions(ctx context.Context, ownerID string, filter TransactionFilter) ([]*model.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []*model.Transaction
	for _, txn := range m.transactions {
		if txn.OwnerID != ownerID {
			continue
		}
		if !matchesFilter(txn, filter) {
			continue
		}
		result = append(result, txn)
	}

	// Newest first, ID as tie-break for stable ordering
	sort.Slice(result, func(i, j int) bool {
		if !result[i].OccurredAt.Equal(result[j].OccurredAt) {
			return result[i].OccurredAt.After(result[j].OccurredAt)
		}
		return result[i].ID < result[j].ID
	})

	if filter.Limit > 0 && len(result) > filter.Limit {
		result = result[:filter.Limit]
	}
	return result, nil
}

func matchesFilter(txn *model.Transaction, filter TransactionFilter) bool {
	if filter.Start != nil && txn.OccurredAt.Before(*filter.Start) {
		return false
	}
	if filter.End != nil && txn.OccurredAt.After(*filter.End) {
		return false
	}
	if filter.Direction != "" && txn.Direction != filter.Direction {
		return false
	}
	if filter.CategoryID != "" && txn.CategoryID != filter.CategoryID {
		return false
	}
	if filter.AccountID != "" && txn.AccountID != filter.AccountID {
		return false
	}
	if filter.Merchant != "" &&
		!strings.EqualFold(txn.DisplayMerchant, filter.Merchant) &&
		!strings.EqualFold(txn.OriginalMerchant, filter.Merchant) {
		return false
	}
	return true
}

func (m *MemoryStore) FindTransaction(ctx context.Context, ownerID string, amount float64, day time.Time, direction model.Direction, displayMerchant string) (*model.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	dayKey := model.Day(day).Format("2006-01-02")
	merchantKey := strings.ToLower(displayMerchant)
	for _, txn := range m.transactions {
		if txn.OwnerID == ownerID &&
			txn.Amount == amount &&
			txn.DayKey == dayKey &&
			txn.Direction == direction &&
			txn.MerchantKey == merchantKey {
			return txn, nil
		}
	}
	return nil, ErrNotFound
}

// Merchant dictionary operations

func (m *MemoryStore) FindMerchantMapping(ctx context.Context, ownerID, rawKey string) (*model.MerchantMapping, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	mapping, ok := m.merchantMappings[mappingKey(ownerID, rawKey)]
	if !ok {
		return nil, ErrNotFound
	}
	return mapping, nil
}

func (m *MemoryStore) UpsertMerchantMapping(ctx context.Context, mapping *model.MerchantMapping) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := mappingKey(mapping.OwnerID, mapping.RawToken)
	now := time.Now()
	if existing, ok := m.merchantMappings[key]; ok {
		mapping.ID = existing.ID
		mapping.CreatedAt = existing.CreatedAt
	} else {
		if mapping.ID == "" {
			mapping.ID = uuid.New().String()
		}
		mapping.CreatedAt = now
	}
	mapping.UpdatedAt = now
	m.merchantMappings[key] = mapping
	return nil
}

func (m *MemoryStore) DeleteMerchantMapping(ctx context.Context, ownerID, rawKey string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := mappingKey(ownerID, rawKey)
	if _, ok := m.merchantMappings[key]; !ok {
		return ErrNotFound
	}
	delete(m.merchantMappings, key)
	return nil
}

func (m *MemoryStore) ListMerchantMappings(ctx context.Context, ownerID string) ([]*model.MerchantMapping, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []*model.MerchantMapping
	for _, mapping := range m.merchantMappings {
		if mapping.OwnerID == ownerID {
			result = append(result, mapping)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].RawToken < result[j].RawToken
	})
	return result, nil
}

func (m *MemoryStore) ListUnnamedMerchants(ctx context.Context, ownerID string) ([]*model.UnnamedMerchant, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	byToken := make(map[string]*model.UnnamedMerchant)
	lastSeen := make(map[string]time.Time)
	for _, txn := range m.transactions {
		if txn.OwnerID != ownerID {
			continue
		}
		if txn.OriginalMerchant == "" || txn.OriginalMerchant == model.UnknownMerchant {
			continue
		}
		// A transaction still carrying its raw token has never been relabeled
		if txn.DisplayMerchant != txn.OriginalMerchant {
			continue
		}
		if _, ok := m.merchantMappings[mappingKey(ownerID, txn.OriginalMerchant)]; ok {
			continue
		}
		entry, ok := byToken[txn.OriginalMerchant]
		if !ok {
			entry = &model.UnnamedMerchant{RawToken: txn.OriginalMerchant}
			byToken[txn.OriginalMerchant] = entry
		}
		entry.Count++
		if txn.OccurredAt.After(lastSeen[txn.OriginalMerchant]) {
			lastSeen[txn.OriginalMerchant] = txn.OccurredAt
			entry.LastAmount = txn.Amount
		}
	}

	result := make([]*model.UnnamedMerchant, 0, len(byToken))
	for _, entry := range byToken {
		result = append(result, entry)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].RawToken < result[j].RawToken
	})
	return result, nil
}

// Account operations

func (m *MemoryStore) FindAccount(ctx context.Context, ownerID, bankCode, last4 string) (*model.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	account, ok := m.accounts[accountKey(ownerID, bankCode, last4)]
	if !ok {
		return nil, ErrNotFound
	}
	return account, nil
}

func (m *MemoryStore) FindAccountByBank(ctx context.Context, ownerID, bankCode string) (*model.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result *model.Account
	for _, account := range m.accounts {
		if account.OwnerID != ownerID || !strings.EqualFold(account.BankName, bankCode) {
			continue
		}
		if result == nil || account.CreatedAt.Before(result.CreatedAt) {
			result = account
		}
	}
	if result == nil {
		return nil, ErrNotFound
	}
	return result, nil
}

func (m *MemoryStore) CreateAccount(ctx context.Context, account *model.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := accountKey(account.OwnerID, account.BankName, account.Last4)
	if _, ok := m.accounts[key]; ok {
		return ErrDuplicateKey
	}
	if account.ID == "" {
		account.ID = uuid.New().String()
	}
	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now()
	}
	m.accounts[key] = account
	return nil
}

func (m *MemoryStore) ListAccounts(ctx context.Context, ownerID string) ([]*model.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []*model.Account
	for _, account := range m.accounts {
		if account.OwnerID == ownerID {
			result = append(result, account)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result, nil
}

// Category operations

func (m *MemoryStore) ListCategories(ctx context.Context, ownerID string) ([]*model.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []*model.Category
	for _, category := range m.categories {
		if category.OwnerID == ownerID {
			result = append(result, category)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result, nil
}

func (m *MemoryStore) CreateCategory(ctx context.Context, category *model.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.categories {
		if existing.OwnerID == category.OwnerID && strings.EqualFold(existing.Name, category.Name) {
			return ErrDuplicateKey
		}
	}
	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	if category.CreatedAt.IsZero() {
		category.CreatedAt = time.Now()
	}
	m.categories[category.ID] = category
	return nil
}

// Subscription operations

func (m *MemoryStore) UpsertSubscription(ctx context.Context, sub *model.Subscription) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	merchantKey := sub.MerchantKey
	if merchantKey == "" {
		merchantKey = sub.Merchant
	}
	key := subscriptionKey(sub.OwnerID, merchantKey)
	if existing, ok := m.subscriptions[key]; ok {
		sub.ID = existing.ID
	} else if sub.ID == "" {
		sub.ID = uuid.New().String()
	}
	sub.UpdatedAt = time.Now()
	m.subscriptions[key] = sub
	return nil
}

func (m *MemoryStore) ListSubscriptions(ctx context.Context, ownerID string) ([]*model.Subscription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []*model.Subscription
	for _, sub := range m.subscriptions {
		if sub.OwnerID == ownerID {
			result = append(result, sub)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Merchant < result[j].Merchant
	})
	return result, nil
}

// Analytics

func (m *MemoryStore) AggregateSpending(ctx context.Context, ownerID string, start, end time.Time, groupBy string) ([]*model.SpendingBucket, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	buckets := make(map[string]*model.SpendingBucket)
	for _, txn := range m.transactions {
		if txn.OwnerID != ownerID || txn.Direction != model.DirectionDebit {
			continue
		}
		if txn.OccurredAt.Before(start) || txn.OccurredAt.After(end) {
			continue
		}
		key := bucketKey(txn, groupBy)
		bucket, ok := buckets[key]
		if !ok {
			bucket = &model.SpendingBucket{Key: key}
			buckets[key] = bucket
		}
		bucket.Total += txn.Amount
		bucket.Count++
	}

	result := make([]*model.SpendingBucket, 0, len(buckets))
	for _, bucket := range buckets {
		result = append(result, bucket)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Total != result[j].Total {
			return result[i].Total > result[j].Total
		}
		return result[i].Key < result[j].Key
	})
	return result, nil
}

func bucketKey(txn *model.Transaction, groupBy string) string {
	switch groupBy {
	case "merchant":
		return txn.DisplayMerchant
	case "account":
		return txn.AccountID
	case "day":
		return txn.DayKey
	default:
		return txn.CategoryID
	}
}
