package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/geocoder89/fintrack/internal/cache"
	"github.com/geocoder89/fintrack/internal/domain/transaction"
	"github.com/geocoder89/fintrack/internal/http/handlers"
	"github.com/geocoder89/fintrack/internal/http/middlewares"
	"github.com/geocoder89/fintrack/internal/observability"
	"github.com/geocoder89/fintrack/internal/repo/memory"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

// Make sure Gin does not spam the console during the test

func init() {
	gin.SetMode(gin.TestMode)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// Fake store implementation of handlers.TransactionsStore for error paths.

type fakeTransactionsStore struct {
	createFn    func(ctx context.Context, userID string, req transaction.CreateTransactionRequest) (transaction.Transaction, error)
	listFn      func(ctx context.Context, userID string) ([]transaction.Transaction, error)
	updateFn    func(ctx context.Context, id, userID string, req transaction.UpdateTransactionRequest) (transaction.Transaction, error)
	deleteFn    func(ctx context.Context, id, userID string) error
	summarizeFn func(ctx context.Context, userID string) (transaction.Summary, error)
}

func (f *fakeTransactionsStore) Create(ctx context.Context, userID string, req transaction.CreateTransactionRequest) (transaction.Transaction, error) {
	if f.createFn != nil {
		return f.createFn(ctx, userID, req)
	}

	return transaction.Transaction{}, nil
}

func (f *fakeTransactionsStore) ListByUser(ctx context.Context, userID string) ([]transaction.Transaction, error) {
	if f.listFn != nil {
		return f.listFn(ctx, userID)
	}

	return []transaction.Transaction{}, nil
}

func (f *fakeTransactionsStore) Update(ctx context.Context, id, userID string, req transaction.UpdateTransactionRequest) (transaction.Transaction, error) {
	if f.updateFn != nil {
		return f.updateFn(ctx, id, userID, req)
	}

	return transaction.Transaction{}, nil
}

func (f *fakeTransactionsStore) Delete(ctx context.Context, id, userID string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id, userID)
	}

	return nil
}

func (f *fakeTransactionsStore) Summarize(ctx context.Context, userID string) (transaction.Summary, error) {
	if f.summarizeFn != nil {
		return f.summarizeFn(ctx, userID)
	}

	return transaction.Summary{}, nil
}

// test middleware that plants an authenticated user on the context

func asUser(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middlewares.CtxUserID, userID)
		c.Next()
	}
}

func newTransactionsHandler(store handlers.TransactionsStore) *handlers.TransactionsHandler {
	metrics := observability.NewProm(prometheus.NewRegistry())
	summaries := cache.NewMemory(time.Minute)

	return handlers.NewTransactionsHandler(store, summaries, metrics, testLogger(), "memory")
}

func mountTransactionRoutes(h *handlers.TransactionsHandler, userID string) *gin.Engine {
	r := gin.New()

	g := r.Group("/api/transactions")
	g.Use(asUser(userID))
	{
		g.POST("", h.Create)
		g.GET("", h.List)
		g.GET("/summary", h.Summary)
		g.PUT("/:id", h.Update)
		g.DELETE("/:id", h.Delete)
	}

	return r
}

func doJSON(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))

	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func TestCreateThenListRoundtrip(t *testing.T) {
	userID := uuid.NewString()
	h := newTransactionsHandler(memory.NewTransactionsRepo())
	r := mountTransactionRoutes(h, userID)

	w := doJSON(r, http.MethodPost, "/api/transactions", `{"amount":100,"category":"food","type":"expense"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("create got status %d, want %d, body=%s", w.Code, http.StatusOK, w.Body.String())
	}

	var created transaction.Transaction

	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to unmarshal created transaction: %v", err)
	}

	if created.ID == "" || created.Date.IsZero() {
		t.Fatalf("expected server-assigned id and date, got %+v", created)
	}

	if created.UserID != userID {
		t.Fatalf("created transaction owned by %q, want %q", created.UserID, userID)
	}

	w2 := doJSON(r, http.MethodGet, "/api/transactions", "")

	if w2.Code != http.StatusOK {
		t.Fatalf("list got status %d, want %d", w2.Code, http.StatusOK)
	}

	var list []transaction.Transaction

	if err := json.Unmarshal(w2.Body.Bytes(), &list); err != nil {
		t.Fatalf("failed to unmarshal list: %v", err)
	}

	if len(list) != 1 {
		t.Fatalf("got %d transactions, want 1", len(list))
	}

	if list[0].Amount != 100 || list[0].Category != "food" || list[0].Type != "expense" {
		t.Fatalf("listed transaction does not match created one: %+v", list[0])
	}
}

func TestCreateValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "missing amount", body: `{"category":"food","type":"expense"}`},
		{name: "missing category", body: `{"amount":10,"type":"expense"}`},
		{name: "bad type", body: `{"amount":10,"category":"food","type":"transfer"}`},
		{name: "amount wrong type", body: `{"amount":"ten","category":"food","type":"expense"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTransactionsHandler(memory.NewTransactionsRepo())
			r := mountTransactionRoutes(h, uuid.NewString())

			w := doJSON(r, http.MethodPost, "/api/transactions", tt.body)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, http.StatusBadRequest, w.Body.String())
			}

			var resp struct {
				Message string `json:"message"`
			}

			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to unmarshal error: %v", err)
			}

			if resp.Message == "" {
				t.Fatalf("expected a non-empty message, body=%s", w.Body.String())
			}
		})
	}
}

func TestUpdate_NotFoundAndCrossUserLookAlike(t *testing.T) {
	repo := memory.NewTransactionsRepo()

	owner := uuid.NewString()
	other := uuid.NewString()

	created, err := repo.Create(context.Background(), owner, transaction.CreateTransactionRequest{
		Amount: 100, Category: "food", Type: "expense",
	})

	if err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	h := newTransactionsHandler(repo)
	r := mountTransactionRoutes(h, other)

	// someone else's id and a bogus id must answer identically
	wForeign := doJSON(r, http.MethodPut, "/api/transactions/"+created.ID, `{"amount":1}`)
	wMissing := doJSON(r, http.MethodPut, "/api/transactions/"+uuid.NewString(), `{"amount":1}`)

	for _, w := range []*httptest.ResponseRecorder{wForeign, wMissing} {
		if w.Code != http.StatusNotFound {
			t.Fatalf("got status %d, want %d, body=%s", w.Code, http.StatusNotFound, w.Body.String())
		}
	}

	if wForeign.Body.String() != wMissing.Body.String() {
		t.Fatalf("foreign and missing ids must be indistinguishable: %s vs %s", wForeign.Body.String(), wMissing.Body.String())
	}
}

func TestUpdate_ZeroAmountQuirk(t *testing.T) {
	repo := memory.NewTransactionsRepo()
	userID := uuid.NewString()

	created, err := repo.Create(context.Background(), userID, transaction.CreateTransactionRequest{
		Amount: 100, Category: "food", Type: "expense",
	})

	if err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	h := newTransactionsHandler(repo)
	r := mountTransactionRoutes(h, userID)

	w := doJSON(r, http.MethodPut, "/api/transactions/"+created.ID, `{"amount":0}`)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want %d, body=%s", w.Code, http.StatusOK, w.Body.String())
	}

	var updated transaction.Transaction

	if err := json.Unmarshal(w.Body.Bytes(), &updated); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}

	if updated.Amount != 100 {
		t.Fatalf("zero amount should not overwrite, got %v", updated.Amount)
	}
}

func TestDelete(t *testing.T) {
	repo := memory.NewTransactionsRepo()
	userID := uuid.NewString()

	created, err := repo.Create(context.Background(), userID, transaction.CreateTransactionRequest{
		Amount: 100, Category: "food", Type: "expense",
	})

	if err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	h := newTransactionsHandler(repo)
	r := mountTransactionRoutes(h, userID)

	w := doJSON(r, http.MethodDelete, "/api/transactions/"+created.ID, "")

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want %d, body=%s", w.Code, http.StatusOK, w.Body.String())
	}

	var resp struct {
		Message string `json:"message"`
	}

	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}

	if resp.Message != "Transaction deleted" {
		t.Fatalf("got message %q, want %q", resp.Message, "Transaction deleted")
	}

	// deleting again answers 404 like any unknown id
	w2 := doJSON(r, http.MethodDelete, "/api/transactions/"+created.ID, "")

	if w2.Code != http.StatusNotFound {
		t.Fatalf("got status %d, want %d", w2.Code, http.StatusNotFound)
	}
}

func TestStoreFailuresBecome500(t *testing.T) {
	boom := errors.New("store is down")

	store := &fakeTransactionsStore{
		createFn: func(ctx context.Context, userID string, req transaction.CreateTransactionRequest) (transaction.Transaction, error) {
			return transaction.Transaction{}, boom
		},
		listFn: func(ctx context.Context, userID string) ([]transaction.Transaction, error) {
			return nil, boom
		},
		summarizeFn: func(ctx context.Context, userID string) (transaction.Summary, error) {
			return transaction.Summary{}, boom
		},
	}

	h := newTransactionsHandler(store)
	r := mountTransactionRoutes(h, uuid.NewString())

	tests := []struct {
		name   string
		method string
		path   string
		body   string
	}{
		{name: "create", method: http.MethodPost, path: "/api/transactions", body: `{"amount":1,"category":"x","type":"income"}`},
		{name: "list", method: http.MethodGet, path: "/api/transactions", body: ""},
		{name: "summary", method: http.MethodGet, path: "/api/transactions/summary", body: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(r, tt.method, tt.path, tt.body)

			if w.Code != http.StatusInternalServerError {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, http.StatusInternalServerError, w.Body.String())
			}

			var resp struct {
				Message string `json:"message"`
			}

			_ = json.Unmarshal(w.Body.Bytes(), &resp)

			if resp.Message != "Server error" {
				t.Fatalf("internal detail must not leak, got %q", resp.Message)
			}
		})
	}
}

func TestSummary_UsesCacheUntilInvalidated(t *testing.T) {
	repo := memory.NewTransactionsRepo()
	userID := uuid.NewString()

	if _, err := repo.Create(context.Background(), userID, transaction.CreateTransactionRequest{
		Amount: 1200, Category: "salary", Type: "income",
	}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	h := newTransactionsHandler(repo)
	r := mountTransactionRoutes(h, userID)

	readSummary := func() transaction.Summary {
		t.Helper()

		w := doJSON(r, http.MethodGet, "/api/transactions/summary", "")

		if w.Code != http.StatusOK {
			t.Fatalf("summary got status %d, body=%s", w.Code, w.Body.String())
		}

		var s transaction.Summary

		if err := json.Unmarshal(w.Body.Bytes(), &s); err != nil {
			t.Fatalf("failed to unmarshal summary: %v", err)
		}

		return s
	}

	s := readSummary()

	if s.Income != 1200 || s.Expense != 0 {
		t.Fatalf("unexpected summary: %+v", s)
	}

	// a write must invalidate the cached totals
	w := doJSON(r, http.MethodPost, "/api/transactions", `{"amount":300,"category":"rent","type":"expense"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("create got status %d, body=%s", w.Code, w.Body.String())
	}

	s = readSummary()

	if s.Income != 1200 || s.Expense != 300 {
		t.Fatalf("summary should reflect the new transaction, got %+v", s)
	}
}
