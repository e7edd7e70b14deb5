package search

import (
	"strings"
	"testing"
	"time"

	"github.com/expensetracker/backend/internal/model"
)

func TestBuildFilters(t *testing.T) {
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

	got := buildFilters(Params{
		OwnerID:   "u1",
		Category:  "dining",
		Direction: model.DirectionDebit,
		AmountMin: 100,
		AmountMax: 500,
		StartDate: &start,
		EndDate:   &end,
	})

	wantParts := []string{
		`OwnerID:"u1"`,
		`Category:"dining"`,
		`Direction:"debit"`,
		"Amount >= 100",
		"Amount <= 500",
		"DateUnix >= 1704067200",
		"DateUnix <= 1709251200",
	}
	for _, part := range wantParts {
		if !strings.Contains(got, part) {
			t.Errorf("filters %q missing %q", got, part)
		}
	}
	if strings.Count(got, " AND ") != len(wantParts)-1 {
		t.Errorf("filters %q, want %d clauses joined with AND", got, len(wantParts))
	}
}

func TestBuildFiltersOwnerOnly(t *testing.T) {
	got := buildFilters(Params{OwnerID: "u1"})
	if got != `OwnerID:"u1"` {
		t.Errorf("filters = %q, want owner clause only", got)
	}
}

func TestNewAlgoliaClientValidation(t *testing.T) {
	if _, err := NewAlgoliaClient(Config{APIKey: "key"}); err == nil {
		t.Error("expected error for missing app ID")
	}
	if _, err := NewAlgoliaClient(Config{AppID: "app"}); err == nil {
		t.Error("expected error for missing API key")
	}
}
