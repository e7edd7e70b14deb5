package account

import (
	"context"
	"fmt"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/expensetracker/backend/internal/model"
	"github.com/expensetracker/backend/internal/sms"
	"github.com/expensetracker/backend/internal/store"
)

func newResolver(s store.Store) *Resolver {
	return NewResolver(s, sms.DefaultPatterns().StripSenderPrefix)
}

func TestResolveCreatesThenReuses(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	r := newResolver(s)

	first, err := r.Resolve(ctx, "u1", "AD-HDFCBK", "1234")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if first == "" {
		t.Fatal("got empty account ID, want created account")
	}

	account, err := s.FindAccount(ctx, "u1", "HDFCBK", "1234")
	if err != nil {
		t.Fatalf("FindAccount: %v", err)
	}
	if account.Name != "HDFCBK Account - 1234" {
		t.Errorf("Name = %q, want %q", account.Name, "HDFCBK Account - 1234")
	}

	second, err := r.Resolve(ctx, "u1", "AD-HDFCBK", "1234")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if second != first {
		t.Errorf("second Resolve = %q, want reuse of %q", second, first)
	}

	accounts, err := s.ListAccounts(ctx, "u1")
	if err != nil {
		t.Fatalf("ListAccounts: %v", err)
	}
	if len(accounts) != 1 {
		t.Errorf("len(accounts) = %d, want 1", len(accounts))
	}
}

func TestResolveWithoutDigitsReusesExistingBankAccount(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	r := newResolver(s)

	seeded, err := r.Resolve(ctx, "u1", "AD-HDFCBK", "1234")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	// A digit-less alert from the same bank attaches to the existing
	// account instead of minting a generic one.
	id, err := r.Resolve(ctx, "u1", "AD-HDFCBK", "")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if id != seeded {
		t.Errorf("Resolve without digits = %q, want existing account %q", id, seeded)
	}

	accounts, err := s.ListAccounts(ctx, "u1")
	if err != nil {
		t.Fatalf("ListAccounts: %v", err)
	}
	if len(accounts) != 1 {
		t.Errorf("len(accounts) = %d, want 1", len(accounts))
	}
}

func TestResolveWithoutDigitsUsesGenericAccount(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	r := newResolver(s)

	id, err := r.Resolve(ctx, "u1", "VM-ICICIB", "")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if id == "" {
		t.Fatal("got empty account ID, want generic sentinel account")
	}

	account, err := s.FindAccount(ctx, "u1", "ICICIB", model.GenericLast4)
	if err != nil {
		t.Fatalf("FindAccount: %v", err)
	}
	if account.Name != "ICICIB Main Account" {
		t.Errorf("Name = %q, want %q", account.Name, "ICICIB Main Account")
	}

	// Digit-less alerts from the same bank keep landing on the same account.
	again, err := r.Resolve(ctx, "u1", "VM-ICICIB", "")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if again != id {
		t.Errorf("second Resolve = %q, want %q", again, id)
	}
}

func TestResolveUnlistedSenderStillCreatesAccount(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	r := newResolver(s)

	id, err := r.Resolve(ctx, "u1", "JM-NEWBANK", "1234")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if id == "" {
		t.Fatal("got empty account ID, want account keyed on stripped sender")
	}

	account, err := s.FindAccount(ctx, "u1", "NEWBANK", "1234")
	if err != nil {
		t.Fatalf("FindAccount: %v", err)
	}
	if account.Name != "NEWBANK Account - 1234" {
		t.Errorf("Name = %q, want %q", account.Name, "NEWBANK Account - 1234")
	}
}

func TestResolveEmptySenderFailsOpen(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	r := newResolver(s)

	id, err := r.Resolve(ctx, "u1", "", "1234")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if id != "" {
		t.Errorf("id = %q, want empty for empty sender", id)
	}

	accounts, err := s.ListAccounts(ctx, "u1")
	if err != nil {
		t.Fatalf("ListAccounts: %v", err)
	}
	if len(accounts) != 0 {
		t.Errorf("len(accounts) = %d, want none created", len(accounts))
	}
}

func TestResolveLostCreateRace(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	mock := store.NewMockStore(ctrl)
	r := newResolver(mock)

	winner := &model.Account{ID: "acc-9", OwnerID: "u1", BankName: "HDFCBK", Last4: "1234"}
	gomock.InOrder(
		mock.EXPECT().FindAccount(ctx, "u1", "HDFCBK", "1234").Return(nil, store.ErrNotFound),
		mock.EXPECT().CreateAccount(ctx, gomock.Any()).Return(store.ErrDuplicateKey),
		mock.EXPECT().FindAccount(ctx, "u1", "HDFCBK", "1234").Return(winner, nil),
	)

	id, err := r.Resolve(ctx, "u1", "AD-HDFCBK", "1234")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if id != "acc-9" {
		t.Errorf("id = %q, want the concurrent winner's account", id)
	}
}

func TestResolveRaceRetryMissFailsOpen(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	mock := store.NewMockStore(ctrl)
	r := newResolver(mock)

	gomock.InOrder(
		mock.EXPECT().FindAccount(ctx, "u1", "HDFCBK", "1234").Return(nil, store.ErrNotFound),
		mock.EXPECT().CreateAccount(ctx, gomock.Any()).Return(store.ErrDuplicateKey),
		mock.EXPECT().FindAccount(ctx, "u1", "HDFCBK", "1234").Return(nil, store.ErrNotFound),
	)

	id, err := r.Resolve(ctx, "u1", "AD-HDFCBK", "1234")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if id != "" {
		t.Errorf("id = %q, want empty fail-open result", id)
	}
}

func TestResolveLookupFault(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	mock := store.NewMockStore(ctrl)
	r := newResolver(mock)

	mock.EXPECT().FindAccount(ctx, "u1", "HDFCBK", "1234").Return(nil, fmt.Errorf("backend unavailable"))

	if _, err := r.Resolve(ctx, "u1", "AD-HDFCBK", "1234"); err == nil {
		t.Error("expected error for store fault")
	}
}
