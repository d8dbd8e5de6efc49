package memory

import (
	"context"
	"sync"

	"github.com/geocoder89/fintrack/internal/domain/transaction"
)

// In-memory mirror of the postgres transactions repo. Same ownership and
// not-found semantics, used by handler tests and local development.
type TransactionsRepo struct {
	mu    sync.RWMutex
	items map[string]transaction.Transaction
}

func NewTransactionsRepo() *TransactionsRepo {
	return &TransactionsRepo{
		items: make(map[string]transaction.Transaction),
	}
}

func (r *TransactionsRepo) Create(ctx context.Context, userID string, req transaction.CreateTransactionRequest) (transaction.Transaction, error) {
	t := transaction.NewFromCreateRequest(userID, req)

	r.mu.Lock()
	r.items[t.ID] = t
	r.mu.Unlock()

	return t, nil
}

func (r *TransactionsRepo) ListByUser(ctx context.Context, userID string) ([]transaction.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	output := make([]transaction.Transaction, 0)

	for _, t := range r.items {
		if t.UserID == userID {
			output = append(output, t)
		}
	}

	return output, nil
}

func (r *TransactionsRepo) Update(ctx context.Context, id, userID string, req transaction.UpdateTransactionRequest) (transaction.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.items[id]

	// a foreign transaction looks exactly like a missing one
	if !ok || t.UserID != userID {
		return transaction.Transaction{}, transaction.ErrNotFound
	}

	t.ApplyPatch(req)
	r.items[id] = t

	return t, nil
}

func (r *TransactionsRepo) Delete(ctx context.Context, id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.items[id]

	if !ok || t.UserID != userID {
		return transaction.ErrNotFound
	}

	delete(r.items, id)

	return nil
}

func (r *TransactionsRepo) Summarize(ctx context.Context, userID string) (transaction.Summary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var s transaction.Summary

	for _, t := range r.items {
		if t.UserID != userID {
			continue
		}

		switch t.Type {
		case transaction.TypeIncome:
			s.Income += t.Amount
		case transaction.TypeExpense:
			s.Expense += t.Amount
		}
	}

	return s, nil
}
