// Package account infers logical bank accounts from SMS sender IDs and
// extracted card/account digits.
package account

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/expensetracker/backend/internal/model"
	"github.com/expensetracker/backend/internal/store"
)

// Resolver maps (sender, last4) pairs onto stored accounts, creating them on
// first sight.
type Resolver struct {
	store       store.Store
	stripPrefix stripPrefixFunc
}

type stripPrefixFunc func(senderID string) string

// NewResolver creates a resolver. stripPrefix removes the short routing/class
// header from a sender ID ("AD-HDFCBK" yields "HDFCBK"); the stripped sender
// is the bank-name key, so unlisted banks still get accounts.
func NewResolver(s store.Store, stripPrefix func(senderID string) string) *Resolver {
	return &Resolver{store: s, stripPrefix: stripPrefix}
}

// Resolve returns the account ID for a message's sender and extracted last-4
// digits, creating the account when it does not exist yet. Messages without
// digits reuse any existing account for the bank before falling back to a
// generic sentinel account, so digit-less alerts still attach somewhere
// stable.
//
// Account resolution is fail-open: an empty account ID with a nil error means
// the transaction should be stored unattached rather than dropped.
func (r *Resolver) Resolve(ctx context.Context, ownerID, senderID, last4 string) (string, error) {
	bankName := strings.ToUpper(r.stripPrefix(senderID))
	if bankName == "" {
		return "", nil
	}

	name := fmt.Sprintf("%s Account - %s", bankName, last4)
	if last4 == "" {
		existing, err := r.store.FindAccountByBank(ctx, ownerID, bankName)
		if err == nil {
			return existing.ID, nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return "", fmt.Errorf("failed to look up account by bank: %w", err)
		}
		last4 = model.GenericLast4
		name = fmt.Sprintf("%s Main Account", bankName)
	}

	existing, err := r.store.FindAccount(ctx, ownerID, bankName, last4)
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return "", fmt.Errorf("failed to look up account: %w", err)
	}

	account := &model.Account{
		OwnerID:  ownerID,
		BankName: bankName,
		Last4:    last4,
		Name:     name,
	}
	err = r.store.CreateAccount(ctx, account)
	if err == nil {
		return account.ID, nil
	}
	if !errors.Is(err, store.ErrDuplicateKey) {
		return "", fmt.Errorf("failed to create account: %w", err)
	}

	// Lost a create race: the concurrent winner's account must exist now.
	existing, err = r.store.FindAccount(ctx, ownerID, bankName, last4)
	if err == nil {
		return existing.ID, nil
	}
	// Retried once and still nothing; store the transaction unattached
	// rather than losing it.
	log.Printf("[Account] lookup after duplicate-key create failed for %s/%s: %v", bankName, last4, err)
	return "", nil
}
