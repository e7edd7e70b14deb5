package service

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/expensetracker/backend/internal/auth"
	"github.com/expensetracker/backend/internal/model"
	"github.com/expensetracker/backend/internal/search"
	"github.com/expensetracker/backend/internal/store"
)

// RegisterRoutes mounts the JSON API onto mux. Authentication middleware is
// applied outside; handlers only read the claims already on the context.
func (s *LedgerService) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/sms/ingest", s.handleIngest)
	mux.HandleFunc("POST /v1/sms/scan", s.handleBulkScan)

	mux.HandleFunc("GET /v1/transactions", s.handleListTransactions)
	mux.HandleFunc("POST /v1/transactions", s.handleCreateTransaction)
	mux.HandleFunc("GET /v1/transactions/{id}", s.handleGetTransaction)
	mux.HandleFunc("PUT /v1/transactions/{id}", s.handleUpdateTransaction)
	mux.HandleFunc("DELETE /v1/transactions/{id}", s.handleDeleteTransaction)

	mux.HandleFunc("GET /v1/accounts", s.handleListAccounts)
	mux.HandleFunc("GET /v1/categories", s.handleListCategories)

	mux.HandleFunc("GET /v1/merchants/mappings", s.handleListMappings)
	mux.HandleFunc("POST /v1/merchants/mappings", s.handleSaveMapping)
	mux.HandleFunc("DELETE /v1/merchants/mappings", s.handleDeleteMapping)
	mux.HandleFunc("GET /v1/merchants/unnamed", s.handleUnnamedMerchants)

	mux.HandleFunc("GET /v1/subscriptions", s.handleListSubscriptions)
	mux.HandleFunc("POST /v1/subscriptions/detect", s.handleDetectSubscriptions)

	mux.HandleFunc("GET /v1/analytics/spending", s.handleSpending)
	mux.HandleFunc("GET /v1/analytics/burnrate", s.handleBurnRate)

	mux.HandleFunc("GET /v1/search", s.handleSearch)
	mux.HandleFunc("GET /v1/export", s.handleExport)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[HTTP] failed to encode response: %v", err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, auth.ErrUnauthenticated):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
	case errors.Is(err, auth.ErrPermissionDenied):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: err.Error()})
	case errors.Is(err, store.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	case errors.Is(err, store.ErrDuplicateKey):
		writeJSON(w, http.StatusConflict, errorResponse{Error: "already exists"})
	default:
		log.Printf("[HTTP] internal error: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func writeBadRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
}

// owner resolves the authenticated user or writes a 401.
func owner(w http.ResponseWriter, r *http.Request) (string, bool) {
	claims, err := auth.RequireAuth(r.Context())
	if err != nil {
		writeError(w, err)
		return "", false
	}
	return claims.UID, true
}

// SMS pipeline

type ingestRequest struct {
	Text               string     `json:"text"`
	Sender             string     `json:"sender"`
	ReceivedAt         *time.Time `json:"receivedAt,omitempty"`
	SuppressPrompts    bool       `json:"suppressPrompts,omitempty"`
	SkipDuplicateCheck bool       `json:"skipDuplicateCheck,omitempty"`
}

type ingestResponse struct {
	Status      IngestStatus       `json:"status"`
	Transaction *model.Transaction `json:"transaction,omitempty"`
	RejectCode  string             `json:"rejectCode,omitempty"`
	Reason      string             `json:"reason,omitempty"`
	NeedsNaming bool               `json:"needsNaming,omitempty"`
}

func (s *LedgerService) handleIngest(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}
	var req ingestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if req.Text == "" {
		writeBadRequest(w, "text is required")
		return
	}

	result, err := s.IngestSMS(r.Context(), ownerID, IngestInput{
		Message: InboundMessage{
			Text:       req.Text,
			Sender:     req.Sender,
			ReceivedAt: req.ReceivedAt,
		},
		SuppressPrompts:    req.SuppressPrompts,
		SkipDuplicateCheck: req.SkipDuplicateCheck,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	resp := ingestResponse{
		Status:      result.Status,
		Transaction: result.Transaction,
		NeedsNaming: result.NeedsNaming,
	}
	if result.Reject != nil {
		resp.RejectCode = string(result.Reject.Code)
		resp.Reason = result.Reject.Message
	}
	status := http.StatusOK
	if result.Status == IngestCreated {
		status = http.StatusCreated
	}
	writeJSON(w, status, resp)
}

type bulkScanRequest struct {
	Messages []InboundMessage `json:"messages"`
}

func (s *LedgerService) handleBulkScan(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}
	var req bulkScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if len(req.Messages) == 0 {
		writeBadRequest(w, "messages are required")
		return
	}

	result, err := s.BulkScan(r.Context(), ownerID, req.Messages)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Transactions

func (s *LedgerService) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}
	filter := store.TransactionFilter{
		Direction:  model.Direction(r.URL.Query().Get("direction")),
		CategoryID: r.URL.Query().Get("categoryId"),
		AccountID:  r.URL.Query().Get("accountId"),
		Merchant:   r.URL.Query().Get("merchant"),
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			writeBadRequest(w, "invalid limit")
			return
		}
		filter.Limit = limit
	}
	var parseErr bool
	filter.Start, parseErr = parseDateParam(r, "start")
	if parseErr {
		writeBadRequest(w, "invalid start date, want YYYY-MM-DD")
		return
	}
	filter.End, parseErr = parseDateParam(r, "end")
	if parseErr {
		writeBadRequest(w, "invalid end date, want YYYY-MM-DD")
		return
	}

	txns, err := s.ListTransactions(r.Context(), ownerID, filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, txns)
}

// parseDateParam reads a YYYY-MM-DD query parameter. The bool reports a
// parse failure, not absence.
func parseDateParam(r *http.Request, name string) (*time.Time, bool) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil, false
	}
	t, err := time.ParseInLocation("2006-01-02", v, time.Local)
	if err != nil {
		return nil, true
	}
	return &t, false
}

func (s *LedgerService) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}
	var req ManualTransactionInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	txn, err := s.CreateManualTransaction(r.Context(), ownerID, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, txn)
}

func (s *LedgerService) handleGetTransaction(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}
	txn, err := s.GetTransaction(r.Context(), r.PathValue("id"), ownerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, txn)
}

func (s *LedgerService) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}
	var txn model.Transaction
	if err := json.NewDecoder(r.Body).Decode(&txn); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	txn.ID = r.PathValue("id")
	txn.OwnerID = ownerID

	updated, err := s.UpdateTransaction(r.Context(), &txn)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *LedgerService) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}
	if err := s.DeleteTransaction(r.Context(), r.PathValue("id"), ownerID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *LedgerService) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}
	accounts, err := s.ListAccounts(r.Context(), ownerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, accounts)
}

func (s *LedgerService) handleListCategories(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}
	categories, err := s.ListCategories(r.Context(), ownerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

// Merchant dictionary

func (s *LedgerService) handleListMappings(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}
	mappings, err := s.ListMerchantMappings(r.Context(), ownerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mappings)
}

type saveMappingRequest struct {
	RawToken    string `json:"rawToken"`
	DisplayName string `json:"displayName"`
	CategoryID  string `json:"categoryId,omitempty"`
}

type saveMappingResponse struct {
	Relabeled int `json:"relabeled"`
}

func (s *LedgerService) handleSaveMapping(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}
	var req saveMappingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if req.RawToken == "" || req.DisplayName == "" {
		writeBadRequest(w, "rawToken and displayName are required")
		return
	}

	relabeled, err := s.SaveMerchantMapping(r.Context(), ownerID, req.RawToken, req.DisplayName, req.CategoryID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saveMappingResponse{Relabeled: relabeled})
}

func (s *LedgerService) handleDeleteMapping(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}
	rawToken := r.URL.Query().Get("rawToken")
	if rawToken == "" {
		writeBadRequest(w, "rawToken query parameter is required")
		return
	}
	if err := s.DeleteMerchantMapping(r.Context(), ownerID, rawToken); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *LedgerService) handleUnnamedMerchants(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}
	unnamed, err := s.ListUnnamedMerchants(r.Context(), ownerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, unnamed)
}

// Subscriptions

func (s *LedgerService) handleListSubscriptions(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}
	subs, err := s.ListSubscriptions(r.Context(), ownerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, subs)
}

type detectResponse struct {
	Subscriptions []*model.Subscription `json:"subscriptions"`
	MonthlyCost   float64               `json:"monthlyCost"`
}

func (s *LedgerService) handleDetectSubscriptions(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}
	subs, err := s.DetectSubscriptions(r.Context(), ownerID)
	if err != nil {
		writeError(w, err)
		return
	}
	monthly := 0.0
	for _, sub := range subs {
		monthly += sub.MonthlyEquivalent()
	}
	writeJSON(w, http.StatusOK, detectResponse{Subscriptions: subs, MonthlyCost: monthly})
}

// Analytics

func (s *LedgerService) handleSpending(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}
	start, bad := parseDateParam(r, "start")
	if bad {
		writeBadRequest(w, "invalid start date, want YYYY-MM-DD")
		return
	}
	end, bad := parseDateParam(r, "end")
	if bad {
		writeBadRequest(w, "invalid end date, want YYYY-MM-DD")
		return
	}
	now := time.Now()
	if end == nil {
		end = &now
	}
	if start == nil {
		monthAgo := now.AddDate(0, -1, 0)
		start = &monthAgo
	}

	buckets, err := s.SpendingSummary(r.Context(), ownerID, *start, *end, r.URL.Query().Get("groupBy"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, buckets)
}

func (s *LedgerService) handleBurnRate(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}
	windowDays := 0
	if v := r.URL.Query().Get("windowDays"); v != "" {
		d, err := strconv.Atoi(v)
		if err != nil || d <= 0 {
			writeBadRequest(w, "invalid windowDays")
			return
		}
		windowDays = d
	}
	rate, err := s.ComputeBurnRate(r.Context(), ownerID, windowDays)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rate)
}

// Search

func (s *LedgerService) handleSearch(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}
	if s.search == nil {
		writeJSON(w, http.StatusNotImplemented, errorResponse{Error: "search is not configured"})
		return
	}

	params := search.Params{
		Query:   r.URL.Query().Get("q"),
		OwnerID: ownerID,
	}
	if v := r.URL.Query().Get("page"); v != "" {
		params.Page, _ = strconv.Atoi(v)
	}

	resp, err := s.search.Search(r.Context(), params)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Export

func (s *LedgerService) handleExport(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}
	start, bad := parseDateParam(r, "start")
	if bad {
		writeBadRequest(w, "invalid start date, want YYYY-MM-DD")
		return
	}
	end, bad := parseDateParam(r, "end")
	if bad {
		writeBadRequest(w, "invalid end date, want YYYY-MM-DD")
		return
	}
	now := time.Now()
	if end == nil {
		end = &now
	}
	if start == nil {
		yearAgo := now.AddDate(-1, 0, 0)
		start = &yearAgo
	}

	if bucket := r.URL.Query().Get("bucket"); bucket != "" {
		uri, err := s.exporter.UploadCSV(r.Context(), bucket, ownerID, *start, *end)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"uri": uri})
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="transactions.csv"`)
	if _, err := s.exporter.WriteCSV(r.Context(), w, ownerID, *start, *end); err != nil {
		log.Printf("[HTTP] export failed mid-stream: %v", err)
	}
}
