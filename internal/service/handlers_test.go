package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/expensetracker/backend/internal/auth"
	"github.com/expensetracker/backend/internal/model"
	"github.com/expensetracker/backend/internal/store"
)

func newTestServer(t *testing.T) (*httptest.Server, *store.MemoryStore) {
	t.Helper()
	svc, mem := newTestService()
	mux := http.NewServeMux()
	svc.RegisterRoutes(mux)
	srv := httptest.NewServer(auth.DebugMiddleware()(mux))
	t.Cleanup(srv.Close)
	return srv, mem
}

// do issues a request as the given user and decodes the JSON response into
// out when it is non-nil.
func do(t *testing.T, srv *httptest.Server, userID, method, path string, body, out any) int {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, srv.URL+path, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("X-Debug-Impersonate-User", userID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s %s response: %v", method, path, err)
		}
	}
	return resp.StatusCode
}

func TestIngestEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	var created ingestResponse
	status := do(t, srv, "u1", http.MethodPost, "/v1/sms/ingest",
		ingestRequest{Text: bankDebitSMS, Sender: "AD-HDFCBK"}, &created)
	if status != http.StatusCreated {
		t.Fatalf("status = %d, want 201", status)
	}
	if created.Status != IngestCreated || created.Transaction == nil {
		t.Fatalf("response = %+v, want created with transaction", created)
	}
	if created.Transaction.DisplayMerchant != "Starbucks" {
		t.Errorf("DisplayMerchant = %q, want %q", created.Transaction.DisplayMerchant, "Starbucks")
	}

	var dup ingestResponse
	status = do(t, srv, "u1", http.MethodPost, "/v1/sms/ingest",
		ingestRequest{Text: bankDebitSMS, Sender: "AD-HDFCBK"}, &dup)
	if status != http.StatusOK {
		t.Fatalf("duplicate status = %d, want 200", status)
	}
	if dup.Status != IngestDuplicate {
		t.Errorf("Status = %q, want duplicate", dup.Status)
	}

	var rejected ingestResponse
	status = do(t, srv, "u1", http.MethodPost, "/v1/sms/ingest",
		ingestRequest{Text: "Congratulations! Click here to claim your prize", Sender: "AX-OFFERS"}, &rejected)
	if status != http.StatusOK {
		t.Fatalf("reject status = %d, want 200", status)
	}
	if rejected.Status != IngestRejected || rejected.RejectCode == "" {
		t.Errorf("response = %+v, want rejection with code", rejected)
	}
}

func TestIngestEndpointValidation(t *testing.T) {
	srv, _ := newTestServer(t)

	status := do(t, srv, "u1", http.MethodPost, "/v1/sms/ingest", ingestRequest{Sender: "AD-HDFCBK"}, nil)
	if status != http.StatusBadRequest {
		t.Errorf("missing text status = %d, want 400", status)
	}

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/v1/sms/ingest", strings.NewReader("{not json"))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("X-Debug-Impersonate-User", "u1")
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("malformed JSON status = %d, want 400", resp.StatusCode)
	}
}

func TestTransactionEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)

	var created model.Transaction
	status := do(t, srv, "u1", http.MethodPost, "/v1/transactions", ManualTransactionInput{
		Amount:     120,
		Merchant:   "Chai Stall",
		OccurredAt: time.Date(2024, time.January, 10, 0, 0, 0, 0, time.Local),
	}, &created)
	if status != http.StatusCreated {
		t.Fatalf("create status = %d, want 201", status)
	}
	if created.ID == "" || created.DisplayMerchant != "Chai Stall" {
		t.Fatalf("created = %+v", created)
	}

	var listed []*model.Transaction
	if status := do(t, srv, "u1", http.MethodGet, "/v1/transactions", nil, &listed); status != http.StatusOK {
		t.Fatalf("list status = %d, want 200", status)
	}
	if len(listed) != 1 {
		t.Fatalf("listed = %d, want 1", len(listed))
	}

	var fetched model.Transaction
	if status := do(t, srv, "u1", http.MethodGet, "/v1/transactions/"+created.ID, nil, &fetched); status != http.StatusOK {
		t.Fatalf("get status = %d, want 200", status)
	}
	if fetched.ID != created.ID {
		t.Errorf("fetched ID = %q, want %q", fetched.ID, created.ID)
	}

	update := fetched
	update.DisplayMerchant = "Tea Corner"
	var updated model.Transaction
	if status := do(t, srv, "u1", http.MethodPut, "/v1/transactions/"+created.ID, update, &updated); status != http.StatusOK {
		t.Fatalf("update status = %d, want 200", status)
	}
	if updated.DisplayMerchant != "Tea Corner" {
		t.Errorf("DisplayMerchant = %q, want %q", updated.DisplayMerchant, "Tea Corner")
	}
	if updated.OriginalMerchant != "Chai Stall" {
		t.Errorf("OriginalMerchant = %q, want write-once value kept", updated.OriginalMerchant)
	}

	// Other users never see the row.
	if status := do(t, srv, "u2", http.MethodGet, "/v1/transactions/"+created.ID, nil, nil); status != http.StatusNotFound {
		t.Errorf("cross-user get status = %d, want 404", status)
	}

	if status := do(t, srv, "u1", http.MethodDelete, "/v1/transactions/"+created.ID, nil, nil); status != http.StatusNoContent {
		t.Errorf("delete status = %d, want 204", status)
	}
	if status := do(t, srv, "u1", http.MethodGet, "/v1/transactions/"+created.ID, nil, nil); status != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", status)
	}
}

func TestMerchantMappingEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)

	for day := 1; day <= 2; day++ {
		var res ingestResponse
		status := do(t, srv, "u1", http.MethodPost, "/v1/sms/ingest", ingestRequest{
			Text:   fmt.Sprintf("Rs 120.00 debited from A/c XX1234 at XQZ ENTERPRISES on 0%d-02-24", day),
			Sender: "AD-HDFCBK",
		}, &res)
		if status != http.StatusCreated {
			t.Fatalf("ingest status = %d, want 201", status)
		}
	}

	var backlog []*model.UnnamedMerchant
	if status := do(t, srv, "u1", http.MethodGet, "/v1/merchants/unnamed", nil, &backlog); status != http.StatusOK {
		t.Fatalf("unnamed status = %d, want 200", status)
	}
	if len(backlog) != 1 || backlog[0].Count != 2 {
		t.Fatalf("backlog = %+v, want one token seen twice", backlog)
	}

	var saved saveMappingResponse
	status := do(t, srv, "u1", http.MethodPost, "/v1/merchants/mappings", saveMappingRequest{
		RawToken:    backlog[0].RawToken,
		DisplayName: "Corner Shop",
	}, &saved)
	if status != http.StatusOK {
		t.Fatalf("save mapping status = %d, want 200", status)
	}
	if saved.Relabeled != 2 {
		t.Errorf("Relabeled = %d, want 2", saved.Relabeled)
	}

	var mappings []*model.MerchantMapping
	if status := do(t, srv, "u1", http.MethodGet, "/v1/merchants/mappings", nil, &mappings); status != http.StatusOK {
		t.Fatalf("list mappings status = %d, want 200", status)
	}
	if len(mappings) != 1 || mappings[0].DisplayName != "Corner Shop" {
		t.Errorf("mappings = %+v, want the saved entry", mappings)
	}

	status = do(t, srv, "u1", http.MethodDelete, "/v1/merchants/mappings?rawToken="+
		strings.ReplaceAll(backlog[0].RawToken, " ", "%20"), nil, nil)
	if status != http.StatusNoContent {
		t.Errorf("delete mapping status = %d, want 204", status)
	}
}

func TestSubscriptionEndpoints(t *testing.T) {
	srv, mem := newTestServer(t)
	ctx := testContextWithUser("u1")

	now := time.Now()
	for _, offset := range []int{-70, -40, -10} {
		txn := debitAt("u1", "NETFLIX", 199, model.Day(now.AddDate(0, 0, offset)))
		if err := mem.CreateTransaction(ctx, txn); err != nil {
			t.Fatalf("CreateTransaction: %v", err)
		}
	}

	var detect detectResponse
	if status := do(t, srv, "u1", http.MethodPost, "/v1/subscriptions/detect", nil, &detect); status != http.StatusOK {
		t.Fatalf("detect status = %d, want 200", status)
	}
	if len(detect.Subscriptions) != 1 {
		t.Fatalf("detected = %d, want 1", len(detect.Subscriptions))
	}
	if detect.MonthlyCost != detect.Subscriptions[0].MonthlyEquivalent() {
		t.Errorf("MonthlyCost = %v, want %v", detect.MonthlyCost, detect.Subscriptions[0].MonthlyEquivalent())
	}

	var subs []*model.Subscription
	if status := do(t, srv, "u1", http.MethodGet, "/v1/subscriptions", nil, &subs); status != http.StatusOK {
		t.Fatalf("list status = %d, want 200", status)
	}
	if len(subs) != 1 {
		t.Errorf("persisted = %d, want 1", len(subs))
	}
}

func TestSpendingEndpoint(t *testing.T) {
	srv, mem := newTestServer(t)
	ctx := testContextWithUser("u1")

	today := model.Day(time.Now())
	seed := []*model.Transaction{
		{OwnerID: "u1", Amount: 300, Direction: model.DirectionDebit, DisplayMerchant: "Zomato", CategoryID: "dining", OccurredAt: today.AddDate(0, 0, -1)},
		{OwnerID: "u1", Amount: 200, Direction: model.DirectionDebit, DisplayMerchant: "Swiggy", CategoryID: "dining", OccurredAt: today.AddDate(0, 0, -2)},
	}
	for _, txn := range seed {
		if err := mem.CreateTransaction(ctx, txn); err != nil {
			t.Fatalf("CreateTransaction: %v", err)
		}
	}

	var buckets []*model.SpendingBucket
	if status := do(t, srv, "u1", http.MethodGet, "/v1/analytics/spending?groupBy=category", nil, &buckets); status != http.StatusOK {
		t.Fatalf("spending status = %d, want 200", status)
	}
	if len(buckets) != 1 || buckets[0].Total != 500 {
		t.Errorf("buckets = %+v, want dining 500", buckets)
	}

	if status := do(t, srv, "u1", http.MethodGet, "/v1/analytics/spending?start=bogus", nil, nil); status != http.StatusBadRequest {
		t.Errorf("bogus date status = %d, want 400", status)
	}

	var rate BurnRate
	if status := do(t, srv, "u1", http.MethodGet, "/v1/analytics/burnrate?windowDays=7", nil, &rate); status != http.StatusOK {
		t.Fatalf("burnrate status = %d, want 200", status)
	}
	if rate.WindowDays != 7 || rate.TotalSpent != 500 {
		t.Errorf("rate = %+v, want 500 over 7 days", rate)
	}
}

func TestExportEndpoint(t *testing.T) {
	srv, mem := newTestServer(t)
	ctx := testContextWithUser("u1")

	txn := debitAt("u1", "Zomato", 342, model.Day(time.Now()))
	if err := mem.CreateTransaction(ctx, txn); err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/v1/export", nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("X-Debug-Impersonate-User", "u1")
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "text/csv" {
		t.Errorf("Content-Type = %q, want text/csv", ct)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if !strings.Contains(string(body), "Zomato") {
		t.Errorf("body = %q, want transaction row", body)
	}
}

func TestSearchEndpointUnconfigured(t *testing.T) {
	srv, _ := newTestServer(t)

	if status := do(t, srv, "u1", http.MethodGet, "/v1/search?q=zomato", nil, nil); status != http.StatusNotImplemented {
		t.Errorf("status = %d, want 501 when search is not configured", status)
	}
}

func TestUnauthenticatedRequest(t *testing.T) {
	svc, _ := newTestService()
	mux := http.NewServeMux()
	svc.RegisterRoutes(mux)
	// No auth middleware: requests carry no claims.
	srv := httptest.NewServer(mux)
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL + "/v1/transactions")
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
}
