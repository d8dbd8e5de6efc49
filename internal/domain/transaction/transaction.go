package transaction

import (
	"errors"
	"time"
)

const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

type Transaction struct {
	ID       string    `json:"id"`
	UserID   string    `json:"userId"`
	Amount   float64   `json:"amount"`
	Category string    `json:"category"`
	Type     string    `json:"type"`
	Date     time.Time `json:"date"`
}

// Covers both "no such transaction" and "belongs to someone else" so a
// caller probing ids cannot tell the two apart.
var ErrNotFound = errors.New("transaction not found")

type CreateTransactionRequest struct {
	Amount   float64 `json:"amount" binding:"required"`
	Category string  `json:"category" binding:"required"`
	Type     string  `json:"type" binding:"required,oneof=income expense"`
}

// Partial update. Zero values mean "field not provided": a zero amount or
// empty category/type leaves the stored value unchanged.
type UpdateTransactionRequest struct {
	Amount   float64 `json:"amount" binding:"omitempty"`
	Category string  `json:"category" binding:"omitempty"`
	Type     string  `json:"type" binding:"omitempty,oneof=income expense"`
}

// Income/expense totals for the pie chart view.
type Summary struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

// ApplyPatch overwrites only the fields the patch actually carries.
func (t *Transaction) ApplyPatch(req UpdateTransactionRequest) {
	if req.Amount != 0 {
		t.Amount = req.Amount
	}

	if req.Category != "" {
		t.Category = req.Category
	}

	if req.Type != "" {
		t.Type = req.Type
	}
}
