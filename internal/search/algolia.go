// Package search provides full-text transaction search backed by Algolia.
package search

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/algolia/algoliasearch-client-go/v4/algolia/search"

	"github.com/expensetracker/backend/internal/model"
)

// Config holds Algolia configuration.
type Config struct {
	AppID     string
	APIKey    string
	IndexName string
}

// Params defines the input for an Algolia search.
type Params struct {
	Query     string
	OwnerID   string
	Category  string
	Direction model.Direction
	// Amount range (rupees)
	AmountMin float64
	AmountMax float64
	// Date range
	StartDate *time.Time
	EndDate   *time.Time
	// Pagination (offset-based)
	Page     int
	PageSize int
}

// Result is one search hit.
type Result struct {
	ID         string
	Merchant   string
	Category   string
	Amount     float64
	Direction  model.Direction
	OccurredAt time.Time
}

// Response holds results from Algolia.
type Response struct {
	Results    []*Result
	TotalCount int
	TotalPages int
	Page       int
}

// AlgoliaClient wraps the Algolia search API client.
type AlgoliaClient struct {
	client    *search.APIClient
	indexName string
}

// NewAlgoliaClient creates a new Algolia search client.
func NewAlgoliaClient(cfg Config) (*AlgoliaClient, error) {
	if cfg.AppID == "" || cfg.APIKey == "" {
		return nil, fmt.Errorf("algolia AppID and APIKey are required")
	}
	if cfg.IndexName == "" {
		cfg.IndexName = "transactions"
	}

	client, err := search.NewClient(cfg.AppID, cfg.APIKey)
	if err != nil {
		return nil, fmt.Errorf("creating algolia client: %w", err)
	}

	return &AlgoliaClient{
		client:    client,
		indexName: cfg.IndexName,
	}, nil
}

// SyncTransaction pushes one transaction into the index. Failures are
// returned for the caller to log; indexing lag is acceptable, the store is
// the source of truth.
func (c *AlgoliaClient) SyncTransaction(ctx context.Context, txn *model.Transaction) error {
	record := map[string]any{
		"objectID":  txn.ID,
		"OwnerID":   txn.OwnerID,
		"Merchant":  txn.DisplayMerchant,
		"Original":  txn.OriginalMerchant,
		"Category":  txn.CategoryID,
		"Amount":    txn.Amount,
		"Direction": string(txn.Direction),
		"DateUnix":  txn.OccurredAt.Unix(),
	}
	_, err := c.client.SaveObject(c.client.NewApiSaveObjectRequest(c.indexName, record))
	if err != nil {
		return fmt.Errorf("algolia save object: %w", err)
	}
	return nil
}

// DeleteTransaction removes a transaction from the index.
func (c *AlgoliaClient) DeleteTransaction(ctx context.Context, txnID string) error {
	_, err := c.client.DeleteObject(c.client.NewApiDeleteObjectRequest(c.indexName, txnID))
	if err != nil {
		return fmt.Errorf("algolia delete object: %w", err)
	}
	return nil
}

// Search performs a full-text search via Algolia.
func (c *AlgoliaClient) Search(ctx context.Context, params Params) (*Response, error) {
	pageSize := params.PageSize
	if pageSize <= 0 {
		pageSize = 25
	}
	if pageSize > 100 {
		pageSize = 100
	}

	page := params.Page
	if page < 0 {
		page = 0
	}

	searchParams := search.SearchParamsObjectAsSearchParams(
		search.NewSearchParamsObject().
			SetQuery(params.Query).
			SetHitsPerPage(int32(pageSize)).
			SetPage(int32(page)).
			SetFilters(buildFilters(params)),
	)

	resp, err := c.client.SearchSingleIndex(c.client.NewApiSearchSingleIndexRequest(c.indexName).WithSearchParams(searchParams))
	if err != nil {
		return nil, fmt.Errorf("algolia search: %w", err)
	}

	results := make([]*Result, 0, len(resp.Hits))
	for _, hit := range resp.Hits {
		if result := hitToResult(hit.AdditionalProperties); result != nil {
			results = append(results, result)
		}
	}

	totalCount := 0
	if resp.NbHits != nil {
		totalCount = int(*resp.NbHits)
	}
	totalPages := 0
	if resp.NbPages != nil {
		totalPages = int(*resp.NbPages)
	}

	return &Response{
		Results:    results,
		TotalCount: totalCount,
		TotalPages: totalPages,
		Page:       page,
	}, nil
}

// buildFilters constructs Algolia filter string from search params.
// OwnerID is always enforced for security.
func buildFilters(params Params) string {
	var parts []string

	if params.OwnerID != "" {
		parts = append(parts, fmt.Sprintf("OwnerID:%q", params.OwnerID))
	}

	if params.Category != "" {
		parts = append(parts, fmt.Sprintf("Category:%q", params.Category))
	}

	if params.Direction != "" {
		parts = append(parts, fmt.Sprintf("Direction:%q", string(params.Direction)))
	}

	if params.AmountMin > 0 {
		parts = append(parts, fmt.Sprintf("Amount >= %f", params.AmountMin))
	}
	if params.AmountMax > 0 {
		parts = append(parts, fmt.Sprintf("Amount <= %f", params.AmountMax))
	}

	if params.StartDate != nil {
		parts = append(parts, fmt.Sprintf("DateUnix >= %d", params.StartDate.Unix()))
	}
	if params.EndDate != nil {
		parts = append(parts, fmt.Sprintf("DateUnix <= %d", params.EndDate.Unix()))
	}

	return strings.Join(parts, " AND ")
}

// hitToResult converts an Algolia hit to a Result.
func hitToResult(props map[string]any) *Result {
	result := &Result{}

	if v, ok := props["objectID"].(string); ok {
		result.ID = v
	}
	if v, ok := props["Merchant"].(string); ok {
		result.Merchant = v
	}
	if v, ok := props["Category"].(string); ok {
		result.Category = v
	}
	if v, ok := props["Amount"].(float64); ok {
		result.Amount = v
	}
	if v, ok := props["Direction"].(string); ok {
		result.Direction = model.Direction(v)
	}
	if v, ok := props["DateUnix"].(float64); ok && v > 0 {
		result.OccurredAt = time.Unix(int64(v), 0)
	}

	if result.ID == "" {
		log.Printf("algolia: skipping hit with no objectID")
		return nil
	}

	return result
}
