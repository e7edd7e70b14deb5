// Package export writes transaction history out as CSV, either to an HTTP
// response or to a GCS bucket for scheduled backups.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"cloud.google.com/go/storage"

	"github.com/expensetracker/backend/internal/model"
	"github.com/expensetracker/backend/internal/store"
)

var csvHeader = []string{"date", "merchant", "original_merchant", "amount", "direction", "category_id", "account_id"}

// Exporter streams a user's transactions as CSV.
type Exporter struct {
	store store.Store
}

// NewExporter creates an exporter over the given store.
func NewExporter(s store.Store) *Exporter {
	return &Exporter{store: s}
}

// WriteCSV writes the owner's transactions in the date range to w, newest
// first.
func (e *Exporter) WriteCSV(ctx context.Context, w io.Writer, ownerID string, start, end time.Time) (int, error) {
	txns, err := e.store.ListTransactions(ctx, ownerID, store.TransactionFilter{
		Start: &start,
		End:   &end,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to list transactions for export: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return 0, fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, txn := range txns {
		record := []string{
			model.Day(txn.OccurredAt).Format("2006-01-02"),
			txn.DisplayMerchant,
			txn.OriginalMerchant,
			strconv.FormatFloat(txn.Amount, 'f', 2, 64),
			string(txn.Direction),
			txn.CategoryID,
			txn.AccountID,
		}
		if err := cw.Write(record); err != nil {
			return 0, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return 0, fmt.Errorf("failed to flush CSV: %w", err)
	}
	return len(txns), nil
}

// UploadCSV exports the date range to a GCS object and returns its gs:// URI.
// Application Default Credentials are assumed to be configured.
func (e *Exporter) UploadCSV(ctx context.Context, bucketName, ownerID string, start, end time.Time) (string, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return "", fmt.Errorf("create storage client: %w", err)
	}
	defer client.Close()

	objectName := fmt.Sprintf("exports/%s/transactions-%s-%s.csv",
		ownerID, start.Format("20060102"), end.Format("20060102"))

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	w := client.Bucket(bucketName).Object(objectName).NewWriter(ctx)
	if _, err := e.WriteCSV(ctx, w, ownerID, start, end); err != nil {
		_ = w.Close()
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finalize upload: %w", err)
	}

	return fmt.Sprintf("gs://%s/%s", bucketName, objectName), nil
}
