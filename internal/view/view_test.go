package view_test

import (
	"testing"

	"github.com/geocoder89/fintrack/internal/domain/transaction"
	"github.com/geocoder89/fintrack/internal/view"
)

func seedModel() *view.Model {
	m := view.New()

	m.SetTransactions([]transaction.Transaction{
		{ID: "a", Amount: 1200, Category: "salary", Type: transaction.TypeIncome},
		{ID: "b", Amount: 300, Category: "rent", Type: transaction.TypeExpense},
		{ID: "c", Amount: 50, Category: "food", Type: transaction.TypeExpense},
	})

	return m
}

func TestTotals(t *testing.T) {
	m := seedModel()

	income, expense := m.Totals()

	if income != 1200 {
		t.Fatalf("got income %v, want 1200", income)
	}
	if expense != 350 {
		t.Fatalf("got expense %v, want 350", expense)
	}
}

func TestPieData(t *testing.T) {
	m := seedModel()

	pie := m.PieData()

	if len(pie.Values) != 2 || len(pie.Labels) != 2 {
		t.Fatalf("pie chart should have exactly two slices, got %+v", pie)
	}

	if pie.Labels[0] != "Income" || pie.Labels[1] != "Expenses" {
		t.Fatalf("unexpected labels: %v", pie.Labels)
	}

	if pie.Values[0] != 1200 || pie.Values[1] != 350 {
		t.Fatalf("unexpected values: %v", pie.Values)
	}
}

func TestAppendAndRemove(t *testing.T) {
	m := seedModel()

	m.Append(transaction.Transaction{ID: "d", Amount: 20, Category: "coffee", Type: transaction.TypeExpense})

	if len(m.Transactions) != 4 {
		t.Fatalf("got %d transactions, want 4", len(m.Transactions))
	}

	if !m.RemoveByID("b") {
		t.Fatalf("expected RemoveByID to find b")
	}

	if m.RemoveByID("nope") {
		t.Fatalf("RemoveByID should report false for an unknown id")
	}

	_, expense := m.Totals()

	if expense != 70 {
		t.Fatalf("got expense %v after removal, want 70", expense)
	}
}

func TestErrorAndForm(t *testing.T) {
	m := view.New()

	m.SetError("Failed to fetch transactions")

	if m.Error != "Failed to fetch transactions" {
		t.Fatalf("unexpected error: %q", m.Error)
	}

	m.ClearError()

	if m.Error != "" {
		t.Fatalf("error should be cleared")
	}

	m.Amount = "42"
	m.Category = "food"
	m.Type = transaction.TypeIncome

	m.ClearForm()

	if m.Amount != "" || m.Category != "" || m.Type != transaction.TypeExpense {
		t.Fatalf("form should reset to defaults, got %+v", m)
	}
}
