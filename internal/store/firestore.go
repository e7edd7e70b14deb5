package store

import (
	"context"
	"encoding/base64"
	"fmt"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/expensetracker/backend/internal/model"
)

const (
	transactionsCollection  = "transactions"
	mappingsCollection      = "merchantMappings"
	accountsCollection      = "accounts"
	categoriesCollection    = "categories"
	subscriptionsCollection = "subscriptions"
)

// FirestoreStore implements the Store interface using Firestore
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore creates a new Firestore-backed store
func NewFirestoreStore(client *firestore.Client) Store {
	return &FirestoreStore{
		client: client,
	}
}

// docID builds a deterministic document ID from a natural key. Firestore has
// no unique indexes, so uniqueness is enforced by addressing documents with
// their natural key and using Create for insert-only paths. The key parts are
// base64-encoded because raw tokens may contain '/'.
func docID(ownerID string, parts ...string) string {
	key := strings.ToLower(strings.Join(parts, "/"))
	return ownerID + "_" + base64.RawURLEncoding.EncodeToString([]byte(key))
}

func translateErr(err error) error {
	if status.Code(err) == codes.NotFound {
		return ErrNotFound
	}
	return err
}

// Transaction operations

func (s *FirestoreStore) CreateTransaction(ctx context.Context, txn *model.Transaction) error {
	if txn.ID == "" {
		txn.ID = s.client.Collection(transactionsCollection).NewDoc().ID
	}
	now := time.Now()
	if txn.CreatedAt.IsZero() {
		txn.CreatedAt = now
	}
	txn.UpdatedAt = now
	setDerived(txn)

	_, err := s.client.Collection(transactionsCollection).Doc(txn.ID).Set(ctx, txn)
	return err
}

func (s *FirestoreStore) GetTransaction(ctx context.Context, txnID, ownerID string) (*model.Transaction, error) {
	doc, err := s.client.Collection(transactionsCollection).Doc(txnID).Get(ctx)
	if err != nil {
		return nil, translateErr(err)
	}
	var txn model.Transaction
	if err := doc.DataTo(&txn); err != nil {
		return nil, fmt.Errorf("failed to parse transaction: %w", err)
	}
	if txn.OwnerID != ownerID {
		return nil, ErrNotFound
	}
	return &txn, nil
}

func (s *FirestoreStore) UpdateTransaction(ctx context.Context, txn *model.Transaction) error {
	existing, err := s.GetTransaction(ctx, txn.ID, txn.OwnerID)
	if err != nil {
		return err
	}

	// OriginalMerchant is write-once
	txn.OriginalMerchant = existing.OriginalMerchant
	txn.CreatedAt = existing.CreatedAt
	txn.UpdatedAt = time.Now()
	setDerived(txn)

	_, err = s.client.Collection(transactionsCollection).Doc(txn.ID).Set(ctx, txn)
	return err
}

func (s *FirestoreStore) DeleteTransaction(ctx context.Context, txnID, ownerID string) error {
	if _, err := s.GetTransaction(ctx, txnID, ownerID); err != nil {
		return err
	}
	_, err := s.client.Collection(transactionsCollection).Doc(txnID).Delete(ctx)
	return err
}

func (s *FirestoreStore) ListTransactions(ctx context.Context, ownerID string, filter TransactionFilter) ([]*model.Transaction, error) {
	// NOTE: Field names must match Go struct field names (PascalCase) as
	// that's how Firestore serializes the model structs
	query := s.client.Collection(transactionsCollection).Query.
		Where("OwnerID", "==", ownerID)

	if filter.Start != nil {
		query = query.Where("OccurredAt", ">=", *filter.Start)
	}
	if filter.End != nil {
		query = query.Where("OccurredAt", "<=", *filter.End)
	}
	if filter.Direction != "" {
		query = query.Where("Direction", "==", string(filter.Direction))
	}
	if filter.CategoryID != "" {
		query = query.Where("CategoryID", "==", filter.CategoryID)
	}
	if filter.AccountID != "" {
		query = query.Where("AccountID", "==", filter.AccountID)
	}
	if filter.Merchant != "" {
		query = query.Where("MerchantKey", "==", strings.ToLower(filter.Merchant))
	}
	query = query.OrderBy("OccurredAt", firestore.Desc)
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	result := make([]*model.Transaction, 0, len(docs))
	for _, doc := range docs {
		var txn model.Transaction
		if err := doc.DataTo(&txn); err != nil {
			return nil, fmt.Errorf("failed to parse transaction: %w", err)
		}
		result = append(result, &txn)
	}
	return result, nil
}

func (s *FirestoreStore) FindTransaction(ctx context.Context, ownerID string, amount float64, day time.Time, direction model.Direction, displayMerchant string) (*model.Transaction, error) {
	dayKey := model.Day(day).Format("2006-01-02")
	docs, err := s.client.Collection(transactionsCollection).Query.
		Where("OwnerID", "==", ownerID).
		Where("Amount", "==", amount).
		Where("DayKey", "==", dayKey).
		Where("Direction", "==", string(direction)).
		Where("MerchantKey", "==", strings.ToLower(displayMerchant)).
		Limit(1).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	if len(docs) == 0 {
		return nil, ErrNotFound
	}
	var txn model.Transaction
	if err := docs[0].DataTo(&txn); err != nil {
		return nil, fmt.Errorf("failed to parse transaction: %w", err)
	}
	return &txn, nil
}

// Merchant dictionary operations

func (s *FirestoreStore) FindMerchantMapping(ctx context.Context, ownerID, rawKey string) (*model.MerchantMapping, error) {
	doc, err := s.client.Collection(mappingsCollection).Doc(docID(ownerID, rawKey)).Get(ctx)
	if err != nil {
		return nil, translateErr(err)
	}
	var mapping model.MerchantMapping
	if err := doc.DataTo(&mapping); err != nil {
		return nil, fmt.Errorf("failed to parse merchant mapping: %w", err)
	}
	return &mapping, nil
}

func (s *FirestoreStore) UpsertMerchantMapping(ctx context.Context, mapping *model.MerchantMapping) error {
	ref := s.client.Collection(mappingsCollection).Doc(docID(mapping.OwnerID, mapping.RawToken))
	now := time.Now()
	if existing, err := s.FindMerchantMapping(ctx, mapping.OwnerID, mapping.RawToken); err == nil {
		mapping.ID = existing.ID
		mapping.CreatedAt = existing.CreatedAt
	} else {
		if mapping.ID == "" {
			mapping.ID = ref.ID
		}
		mapping.CreatedAt = now
	}
	mapping.UpdatedAt = now

	_, err := ref.Set(ctx, mapping)
	return err
}

func (s *FirestoreStore) DeleteMerchantMapping(ctx context.Context, ownerID, rawKey string) error {
	if _, err := s.FindMerchantMapping(ctx, ownerID, rawKey); err != nil {
		return err
	}
	_, err := s.client.Collection(mappingsCollection).Doc(docID(ownerID, rawKey)).Delete(ctx)
	return err
}

func (s *FirestoreStore) ListMerchantMappings(ctx context.Context, ownerID string) ([]*model.MerchantMapping, error) {
	docs, err := s.client.Collection(mappingsCollection).Query.
		Where("OwnerID", "==", ownerID).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list merchant mappings: %w", err)
	}

	result := make([]*model.MerchantMapping, 0, len(docs))
	for _, doc := range docs {
		var mapping model.MerchantMapping
		if err := doc.DataTo(&mapping); err != nil {
			return nil, fmt.Errorf("failed to parse merchant mapping: %w", err)
		}
		result = append(result, &mapping)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].RawToken < result[j].RawToken
	})
	return result, nil
}

// ListUnnamedMerchants aggregates client-side: Firestore has no group-by, and
// the per-user transaction volume makes a full scan acceptable here.
func (s *FirestoreStore) ListUnnamedMerchants(ctx context.Context, ownerID string) ([]*model.UnnamedMerchant, error) {
	mappings, err := s.ListMerchantMappings(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	mapped := make(map[string]bool, len(mappings))
	for _, mapping := range mappings {
		mapped[strings.ToLower(mapping.RawToken)] = true
	}

	txns, err := s.ListTransactions(ctx, ownerID, TransactionFilter{})
	if err != nil {
		return nil, err
	}

	byToken := make(map[string]*model.UnnamedMerchant)
	lastSeen := make(map[string]time.Time)
	for _, txn := range txns {
		if txn.OriginalMerchant == "" || txn.OriginalMerchant == model.UnknownMerchant {
			continue
		}
		if txn.DisplayMerchant != txn.OriginalMerchant {
			continue
		}
		if mapped[strings.ToLower(txn.OriginalMerchant)] {
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

func (s *FirestoreStore) FindAccount(ctx context.Context, ownerID, bankCode, last4 string) (*model.Account, error) {
	doc, err := s.client.Collection(accountsCollection).Doc(docID(ownerID, bankCode, last4)).Get(ctx)
	if err != nil {
		return nil, translateErr(err)
	}
	var account model.Account
	if err := doc.DataTo(&account); err != nil {
		return nil, fmt.Errorf("failed to parse account: %w", err)
	}
	return &account, nil
}

func (s *FirestoreStore) FindAccountByBank(ctx context.Context, ownerID, bankCode string) (*model.Account, error) {
	docs, err := s.client.Collection(accountsCollection).Query.
		Where("OwnerID", "==", ownerID).
		Where("BankName", "==", bankCode).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	if len(docs) == 0 {
		return nil, ErrNotFound
	}

	var result *model.Account
	for _, doc := range docs {
		var account model.Account
		if err := doc.DataTo(&account); err != nil {
			return nil, fmt.Errorf("failed to parse account: %w", err)
		}
		if result == nil || account.CreatedAt.Before(result.CreatedAt) {
			result = &account
		}
	}
	return result, nil
}

// CreateAccount uses Create on a deterministic document ID so a concurrent
// insert of the same (owner, bank, last4) surfaces as ErrDuplicateKey.
func (s *FirestoreStore) CreateAccount(ctx context.Context, account *model.Account) error {
	ref := s.client.Collection(accountsCollection).Doc(docID(account.OwnerID, account.BankName, account.Last4))
	if account.ID == "" {
		account.ID = ref.ID
	}
	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now()
	}
	_, err := ref.Create(ctx, account)
	if status.Code(err) == codes.AlreadyExists {
		return ErrDuplicateKey
	}
	return err
}

func (s *FirestoreStore) ListAccounts(ctx context.Context, ownerID string) ([]*model.Account, error) {
	docs, err := s.client.Collection(accountsCollection).Query.
		Where("OwnerID", "==", ownerID).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	result := make([]*model.Account, 0, len(docs))
	for _, doc := range docs {
		var account model.Account
		if err := doc.DataTo(&account); err != nil {
			return nil, fmt.Errorf("failed to parse account: %w", err)
		}
		result = append(result, &account)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result, nil
}

// Category operations

func (s *FirestoreStore) ListCategories(ctx context.Context, ownerID string) ([]*model.Category, error) {
	docs, err := s.client.Collection(categoriesCollection).Query.
		Where("OwnerID", "==", ownerID).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	result := make([]*model.Category, 0, len(docs))
	for _, doc := range docs {
		var category model.Category
		if err := doc.DataTo(&category); err != nil {
			return nil, fmt.Errorf("failed to parse category: %w", err)
		}
		result = append(result, &category)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result, nil
}

func (s *FirestoreStore) CreateCategory(ctx context.Context, category *model.Category) error {
	ref := s.client.Collection(categoriesCollection).Doc(docID(category.OwnerID, category.Name))
	if category.ID == "" {
		category.ID = ref.ID
	}
	if category.CreatedAt.IsZero() {
		category.CreatedAt = time.Now()
	}
	_, err := ref.Create(ctx, category)
	if status.Code(err) == codes.AlreadyExists {
		return ErrDuplicateKey
	}
	return err
}

// Subscription operations

func (s *FirestoreStore) UpsertSubscription(ctx context.Context, sub *model.Subscription) error {
	merchantKey := sub.MerchantKey
	if merchantKey == "" {
		merchantKey = sub.Merchant
	}
	ref := s.client.Collection(subscriptionsCollection).Doc(docID(sub.OwnerID, merchantKey))
	if sub.ID == "" {
		sub.ID = ref.ID
	}
	sub.UpdatedAt = time.Now()
	_, err := ref.Set(ctx, sub)
	return err
}

func (s *FirestoreStore) ListSubscriptions(ctx context.Context, ownerID string) ([]*model.Subscription, error) {
	docs, err := s.client.Collection(subscriptionsCollection).Query.
		Where("OwnerID", "==", ownerID).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	result := make([]*model.Subscription, 0, len(docs))
	for _, doc := range docs {
		var sub model.Subscription
		if err := doc.DataTo(&sub); err != nil {
			return nil, fmt.Errorf("failed to parse subscription: %w", err)
		}
		result = append(result, &sub)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Merchant < result[j].Merchant
	})
	return result, nil
}

// Analytics

// AggregateSpending fetches the debit transactions in range and buckets them
// client-side. Firestore has no server-side aggregation over arbitrary keys.
func (s *FirestoreStore) AggregateSpending(ctx context.Context, ownerID string, start, end time.Time, groupBy string) ([]*model.SpendingBucket, error) {
	txns, err := s.ListTransactions(ctx, ownerID, TransactionFilter{
		Start:     &start,
		End:       &end,
		Direction: model.DirectionDebit,
	})
	if err != nil {
		return nil, err
	}

	buckets := make(map[string]*model.SpendingBucket)
	for _, txn := range txns {
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
