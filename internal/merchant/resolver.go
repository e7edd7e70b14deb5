package merchant

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/expensetracker/backend/internal/model"
	"github.com/expensetracker/backend/internal/store"
)

// relabelChunkSize bounds how many transactions one relabel pass rewrites
// before logging progress; failures within a chunk never abort the rest.
const relabelChunkSize = 200

// Resolution is the outcome of resolving one raw merchant token.
type Resolution struct {
	DisplayName string
	CategoryID  string
	// NeedsNaming is true when neither the user dictionary nor the built-in
	// knowledge base recognized the token, so the UI should prompt for a name.
	NeedsNaming bool
}

// Resolver turns raw SMS merchant tokens into display names using, in order,
// the user's learned dictionary and the built-in knowledge base.
type Resolver struct {
	store store.Store
}

// NewResolver creates a resolver backed by the given store.
func NewResolver(s store.Store) *Resolver {
	return &Resolver{store: s}
}

// Resolve maps a raw token for the given owner. Handles (user@bank tokens)
// skip the built-in base: brand substrings inside a handle are coincidental.
func (r *Resolver) Resolve(ctx context.Context, ownerID, rawToken string, isHandle bool) (*Resolution, error) {
	if rawToken == "" || rawToken == model.UnknownMerchant {
		return &Resolution{DisplayName: model.UnknownMerchant, NeedsNaming: false}, nil
	}

	mapping, err := r.store.FindMerchantMapping(ctx, ownerID, rawToken)
	if err == nil {
		return &Resolution{
			DisplayName: mapping.DisplayName,
			CategoryID:  mapping.CategoryID,
		}, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up merchant mapping: %w", err)
	}

	if !isHandle {
		if known, ok := LookupKnown(rawToken); ok {
			categoryID, err := r.ensureCategory(ctx, ownerID, known.Category)
			if err != nil {
				return nil, err
			}
			return &Resolution{DisplayName: known.Name, CategoryID: categoryID}, nil
		}
		if category := GuessCategory(rawToken); category != "" {
			categoryID, err := r.ensureCategory(ctx, ownerID, category)
			if err != nil {
				return nil, err
			}
			return &Resolution{DisplayName: rawToken, CategoryID: categoryID, NeedsNaming: true}, nil
		}
	}

	return &Resolution{DisplayName: rawToken, NeedsNaming: true}, nil
}

// Save records a user-chosen name for a raw token and retroactively relabels
// every stored transaction that still carries it. Relabeling is best-effort:
// a row that fails to update is logged and skipped so one bad document
// cannot wedge the whole correction.
func (r *Resolver) Save(ctx context.Context, ownerID, rawToken, displayName, categoryID string) (int, error) {
	if strings.TrimSpace(rawToken) == "" {
		return 0, fmt.Errorf("raw token must not be empty")
	}
	if strings.TrimSpace(displayName) == "" {
		return 0, fmt.Errorf("display name must not be empty")
	}

	err := r.store.UpsertMerchantMapping(ctx, &model.MerchantMapping{
		OwnerID:     ownerID,
		RawToken:    rawToken,
		DisplayName: displayName,
		CategoryID:  categoryID,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to save merchant mapping: %w", err)
	}

	return r.relabel(ctx, ownerID, rawToken, displayName, categoryID)
}

// relabel rewrites the display merchant (and category, when the row has
// none) of all transactions matching the raw token, in bounded chunks.
func (r *Resolver) relabel(ctx context.Context, ownerID, rawToken, displayName, categoryID string) (int, error) {
	txns, err := r.store.ListTransactions(ctx, ownerID, store.TransactionFilter{})
	if err != nil {
		return 0, fmt.Errorf("failed to list transactions for relabel: %w", err)
	}

	var matches []*model.Transaction
	for _, txn := range txns {
		if strings.EqualFold(txn.OriginalMerchant, rawToken) || strings.EqualFold(txn.DisplayMerchant, rawToken) {
			matches = append(matches, txn)
		}
	}

	updated := 0
	for start := 0; start < len(matches); start += relabelChunkSize {
		end := start + relabelChunkSize
		if end > len(matches) {
			end = len(matches)
		}
		for _, txn := range matches[start:end] {
			txn.DisplayMerchant = displayName
			if categoryID != "" {
				txn.CategoryID = categoryID
			}
			if err := r.store.UpdateTransaction(ctx, txn); err != nil {
				log.Printf("[Merchant] relabel skipped transaction %s: %v", txn.ID, err)
				continue
			}
			updated++
		}
		if len(matches) > relabelChunkSize {
			log.Printf("[Merchant] relabel %q progress: %d/%d", rawToken, end, len(matches))
		}
	}
	return updated, nil
}

// RelabelOne applies an existing mapping to a single transaction, leaving
// its original token untouched.
func (r *Resolver) RelabelOne(ctx context.Context, txn *model.Transaction) error {
	mapping, err := r.store.FindMerchantMapping(ctx, txn.OwnerID, txn.OriginalMerchant)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		return err
	}
	txn.DisplayMerchant = mapping.DisplayName
	if mapping.CategoryID != "" {
		txn.CategoryID = mapping.CategoryID
	}
	return r.store.UpdateTransaction(ctx, txn)
}

// Unnamed returns the backlog of raw tokens still awaiting a user-chosen
// name, most frequent first, with a best-effort suggested name attached.
func (r *Resolver) Unnamed(ctx context.Context, ownerID string) ([]*model.UnnamedMerchant, error) {
	return r.store.ListUnnamedMerchants(ctx, ownerID)
}

// ensureCategory returns the ID of the owner's category with the given name,
// creating it on first use. A duplicate-key race with a concurrent creator
// resolves by re-reading.
func (r *Resolver) ensureCategory(ctx context.Context, ownerID, name string) (string, error) {
	categories, err := r.store.ListCategories(ctx, ownerID)
	if err != nil {
		return "", fmt.Errorf("failed to list categories: %w", err)
	}
	for _, category := range categories {
		if strings.EqualFold(category.Name, name) {
			return category.ID, nil
		}
	}

	category := &model.Category{OwnerID: ownerID, Name: name}
	err = r.store.CreateCategory(ctx, category)
	if err == nil {
		return category.ID, nil
	}
	if !errors.Is(err, store.ErrDuplicateKey) {
		return "", fmt.Errorf("failed to create category %q: %w", name, err)
	}

	categories, err = r.store.ListCategories(ctx, ownerID)
	if err != nil {
		return "", fmt.Errorf("failed to re-list categories: %w", err)
	}
	for _, category := range categories {
		if strings.EqualFold(category.Name, name) {
			return category.ID, nil
		}
	}
	return "", fmt.Errorf("category %q vanished after duplicate-key create", name)
}
