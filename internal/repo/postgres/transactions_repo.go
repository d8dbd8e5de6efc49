package postgres

import (
	"context"
	"errors"

	"github.com/geocoder89/fintrack/internal/domain/transaction"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TransactionsRepo struct {
	pool *pgxpool.Pool
}

// constructor function

func NewTransactionsRepo(pool *pgxpool.Pool) *TransactionsRepo {
	return &TransactionsRepo{
		pool: pool,
	}
}

func (r *TransactionsRepo) Create(ctx context.Context, userID string, req transaction.CreateTransactionRequest) (transaction.Transaction, error) {
	t := transaction.NewFromCreateRequest(userID, req)

	_, err := r.pool.Exec(ctx,
		`INSERT INTO transactions(id, user_id, amount, category, type, date) VALUES($1,$2,$3,$4,$5,$6)`,
		t.ID, t.UserID, t.Amount, t.Category, t.Type, t.Date)

	if err != nil {
		return transaction.Transaction{}, err
	}

	return t, nil
}

func (r *TransactionsRepo) ListByUser(ctx context.Context, userID string) ([]transaction.Transaction, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, amount, category, type, date
		 FROM transactions
		 WHERE user_id = $1
		 ORDER BY date ASC, id ASC`,
		userID)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	output := make([]transaction.Transaction, 0)

	for rows.Next() {
		var t transaction.Transaction

		err = rows.Scan(&t.ID, &t.UserID, &t.Amount, &t.Category, &t.Type, &t.Date)

		if err != nil {
			return nil, err
		}

		output = append(output, t)
	}

	err = rows.Err()

	if err != nil {
		return nil, err
	}

	return output, nil
}

// Update patches only the fields the request carries: a zero amount or an
// empty category/type keeps the stored value. The user_id filter makes a
// foreign transaction indistinguishable from a missing one.
func (r *TransactionsRepo) Update(ctx context.Context, id, userID string, req transaction.UpdateTransactionRequest) (transaction.Transaction, error) {
	var t transaction.Transaction

	err := r.pool.QueryRow(
		ctx,
		`UPDATE transactions
			SET amount   = CASE WHEN $3::double precision <> 0 THEN $3 ELSE amount END,
					category = COALESCE(NULLIF($4, ''), category),
					type     = COALESCE(NULLIF($5, ''), type)
		WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, amount, category, type, date`,
		id,
		userID,
		req.Amount,
		req.Category,
		req.Type,
	).Scan(
		&t.ID,
		&t.UserID,
		&t.Amount,
		&t.Category,
		&t.Type,
		&t.Date,
	)

	if err != nil {
		// covers missing ids and transactions owned by someone else
		if errors.Is(err, pgx.ErrNoRows) {
			return transaction.Transaction{}, transaction.ErrNotFound
		}

		return transaction.Transaction{}, err
	}

	return t, nil
}

func (r *TransactionsRepo) Delete(ctx context.Context, id, userID string) error {
	query, err := r.pool.Exec(ctx, `
		DELETE FROM transactions WHERE id = $1 AND user_id = $2
	`, id, userID)

	if err != nil {

		return err
	}

	// if no rows were deleted as a result return a not found error
	if query.RowsAffected() == 0 {
		return transaction.ErrNotFound
	}

	return nil
}

func (r *TransactionsRepo) Summarize(ctx context.Context, userID string) (transaction.Summary, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT type, COALESCE(SUM(amount), 0)
		 FROM transactions
		 WHERE user_id = $1
		 GROUP BY type`,
		userID)

	if err != nil {
		return transaction.Summary{}, err
	}

	defer rows.Close()

	var s transaction.Summary

	for rows.Next() {
		var kind string
		var total float64

		err = rows.Scan(&kind, &total)

		if err != nil {
			return transaction.Summary{}, err
		}

		switch kind {
		case transaction.TypeIncome:
			s.Income = total
		case transaction.TypeExpense:
			s.Expense = total
		}
	}

	err = rows.Err()

	if err != nil {
		return transaction.Summary{}, err
	}

	return s, nil
}
