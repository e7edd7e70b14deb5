package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/expensetracker/backend/internal/events"
	"github.com/expensetracker/backend/internal/model"
	"github.com/expensetracker/backend/internal/sms"
	"github.com/expensetracker/backend/internal/store"
)

// bulkScanWorkers bounds the concurrency of a historical inbox scan.
const bulkScanWorkers = 4

// InboundMessage is one raw SMS handed to the pipeline.
type InboundMessage struct {
	Text   string
	Sender string
	// ReceivedAt, when set, wins over any date embedded in the text.
	ReceivedAt *time.Time
}

// IngestInput carries one message plus per-call pipeline options.
type IngestInput struct {
	Message InboundMessage
	// SuppressPrompts disables new-merchant naming events, used during bulk
	// scans where flooding the user with prompts would be hostile.
	SuppressPrompts bool
	// SkipDuplicateCheck forces insertion even when a matching transaction
	// exists. Exposed for explicit user overrides only.
	SkipDuplicateCheck bool
}

// IngestStatus is the terminal state of one pipeline run.
type IngestStatus string

const (
	IngestCreated   IngestStatus = "created"
	IngestDuplicate IngestStatus = "duplicate"
	IngestRejected  IngestStatus = "rejected"
)

// IngestResult reports what the pipeline did with one message.
type IngestResult struct {
	Status      IngestStatus
	Transaction *model.Transaction
	Reject      *sms.RejectError
	// NeedsNaming is true when the stored transaction's merchant token has
	// no user-chosen name yet.
	NeedsNaming bool
}

// IngestSMS runs the full pipeline for one message: normalize, classify,
// extract, resolve merchant and account, suppress duplicates, persist.
// Rejections are reported in the result, not as errors; the error return is
// reserved for storage faults.
func (s *LedgerService) IngestSMS(ctx context.Context, ownerID string, input IngestInput) (*IngestResult, error) {
	if ownerID == "" {
		return &IngestResult{
			Status: IngestRejected,
			Reject: &sms.RejectError{Code: sms.RejectNoUser, Message: "no authenticated user"},
		}, nil
	}

	text := sms.Normalize(input.Message.Text)
	sender := strings.TrimSpace(input.Message.Sender)

	cls := s.classifier.Classify(text, sender)
	if !cls.Accept {
		return &IngestResult{
			Status: IngestRejected,
			Reject: &sms.RejectError{Code: classifyRejectCode(cls), Message: cls.Reason},
		}, nil
	}

	parsed, rej := s.extractor.Extract(text, cls.KnownBank, input.Message.ReceivedAt)
	if rej != nil {
		return &IngestResult{Status: IngestRejected, Reject: rej}, nil
	}

	resolution, err := s.merchants.Resolve(ctx, ownerID, parsed.Merchant, parsed.IsHandle)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve merchant: %w", err)
	}

	accountID, err := s.accounts.Resolve(ctx, ownerID, sender, parsed.AccountLast4)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve account: %w", err)
	}

	if !input.SkipDuplicateCheck {
		existing, err := s.store.FindTransaction(ctx, ownerID, parsed.Amount, parsed.Date, parsed.Direction, resolution.DisplayName)
		if err == nil {
			return &IngestResult{Status: IngestDuplicate, Transaction: existing}, nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("failed duplicate check: %w", err)
		}
	}

	txn := &model.Transaction{
		OwnerID:          ownerID,
		Amount:           parsed.Amount,
		Direction:        parsed.Direction,
		DisplayMerchant:  resolution.DisplayName,
		OriginalMerchant: parsed.Merchant,
		CategoryID:       resolution.CategoryID,
		AccountID:        accountID,
		OccurredAt:       model.Day(parsed.Date),
		SourceText:       text,
	}
	if err := s.store.CreateTransaction(ctx, txn); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	s.indexTransaction(ctx, txn)
	s.bus.Publish(events.Event{Type: events.TypeDataChanged, OwnerID: ownerID})
	if resolution.NeedsNaming && !input.SuppressPrompts {
		s.bus.Publish(events.Event{
			Type:          events.TypeNewMerchant,
			OwnerID:       ownerID,
			RawToken:      parsed.Merchant,
			SuggestedName: resolution.DisplayName,
			Amount:        parsed.Amount,
			TransactionID: txn.ID,
		})
	}

	return &IngestResult{
		Status:      IngestCreated,
		Transaction: txn,
		NeedsNaming: resolution.NeedsNaming,
	}, nil
}

// classifyRejectCode maps a classifier outcome onto a stable reject code.
func classifyRejectCode(cls sms.ClassifyResult) sms.RejectCode {
	reason := strings.ToLower(cls.Reason)
	switch {
	case strings.Contains(reason, "promotional"):
		return sms.RejectPromotionalSender
	case strings.Contains(reason, "spam"), strings.Contains(reason, "otp"):
		return sms.RejectSpamContent
	case cls.IsTransaction:
		return sms.RejectLowConfidence
	default:
		return sms.RejectNotTransactional
	}
}

// BulkScanResult summarizes a historical scan.
type BulkScanResult struct {
	Created    int
	Duplicates int
	Rejected   int
	Failed     int
}

// BulkScan ingests a batch of historical messages with bounded concurrency.
// Prompts are suppressed; each message is an independent unit of work and a
// failed row never aborts the rest.
func (s *LedgerService) BulkScan(ctx context.Context, ownerID string, messages []InboundMessage) (*BulkScanResult, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("owner is required")
	}

	var (
		mu     sync.Mutex
		result BulkScanResult
		wg     sync.WaitGroup
	)
	work := make(chan InboundMessage)

	for i := 0; i < bulkScanWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for msg := range work {
				res, err := s.IngestSMS(ctx, ownerID, IngestInput{
					Message:         msg,
					SuppressPrompts: true,
				})
				mu.Lock()
				switch {
				case err != nil:
					result.Failed++
					log.Printf("[Ingest] bulk scan row failed: %v", err)
				case res.Status == IngestCreated:
					result.Created++
				case res.Status == IngestDuplicate:
					result.Duplicates++
				default:
					result.Rejected++
				}
				mu.Unlock()
			}
		}()
	}

	for _, msg := range messages {
		work <- msg
	}
	close(work)
	wg.Wait()

	if result.Created > 0 {
		s.bus.Publish(events.Event{Type: events.TypeDataChanged, OwnerID: ownerID})
	}
	return &result, nil
}

// indexTransaction pushes the transaction into the search index when search
// is configured. Indexing failures are logged, never fatal.
func (s *LedgerService) indexTransaction(ctx context.Context, txn *model.Transaction) {
	if s.search == nil {
		return
	}
	if err := s.search.SyncTransaction(ctx, txn); err != nil {
		log.Printf("[Search] failed to index transaction %s: %v", txn.ID, err)
	}
}
