package service

import (
	"context"

	"github.com/expensetracker/backend/internal/auth"
	"github.com/expensetracker/backend/internal/events"
	"github.com/expensetracker/backend/internal/store"
)

// testContextWithUser creates a context with authenticated user claims for testing
func testContextWithUser(userID string) context.Context {
	return auth.WithUserClaims(context.Background(), &auth.UserClaims{
		UID:   userID,
		Email: userID + "@test.local",
	})
}

// newTestService wires a service over a fresh in-memory store.
func newTestService() (*LedgerService, *store.MemoryStore) {
	mem := store.NewMemoryStore()
	return NewLedgerService(mem, events.NewBus(16), nil), mem
}
