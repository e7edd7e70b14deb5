// Package service implements the SMS ingestion pipeline and the operations
// exposed over the HTTP API.
package service

import (
	"github.com/expensetracker/backend/internal/account"
	"github.com/expensetracker/backend/internal/events"
	"github.com/expensetracker/backend/internal/export"
	"github.com/expensetracker/backend/internal/merchant"
	"github.com/expensetracker/backend/internal/search"
	"github.com/expensetracker/backend/internal/sms"
	"github.com/expensetracker/backend/internal/store"
)

// LedgerService owns the ingestion pipeline and transaction operations.
type LedgerService struct {
	store      store.Store
	patterns   *sms.PatternSet
	classifier *sms.Classifier
	extractor  *sms.Extractor
	merchants  *merchant.Resolver
	accounts   *account.Resolver
	exporter   *export.Exporter
	bus        *events.Bus

	// search is optional; nil disables indexing and full-text search.
	search *search.AlgoliaClient
}

// NewLedgerService wires the pipeline over the given store. searchClient may
// be nil.
func NewLedgerService(s store.Store, bus *events.Bus, searchClient *search.AlgoliaClient) *LedgerService {
	patterns := sms.DefaultPatterns()
	return &LedgerService{
		store:      s,
		patterns:   patterns,
		classifier: sms.NewClassifier(patterns),
		extractor:  sms.NewExtractor(patterns),
		merchants:  merchant.NewResolver(s),
		accounts:   account.NewResolver(s, patterns.StripSenderPrefix),
		exporter:   export.NewExporter(s),
		bus:        bus,
		search:     searchClient,
	}
}

// Events exposes the service's event bus so the embedding application can
// subscribe to new-merchant prompts and data-changed notifications.
func (s *LedgerService) Events() *events.Bus {
	return s.bus
}
