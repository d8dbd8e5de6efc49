package view

import "github.com/geocoder89/fintrack/internal/domain/transaction"

// Model is the dashboard's state: the fetched list, the entry form and a
// single flat error string. All mutations go through the methods below so
// the state stays serializable and predictable.
type Model struct {
	Transactions []transaction.Transaction `json:"transactions"`

	// form fields
	Amount   string `json:"amount"`
	Category string `json:"category"`
	Type     string `json:"type"`

	Error string `json:"error"`
}

func New() *Model {
	return &Model{
		Transactions: make([]transaction.Transaction, 0),
		Type:         transaction.TypeExpense,
	}
}

// SetTransactions replaces the list after a fetch.
func (m *Model) SetTransactions(list []transaction.Transaction) {
	if list == nil {
		list = make([]transaction.Transaction, 0)
	}

	m.Transactions = list
}

// Append adds a freshly created transaction without re-fetching.
func (m *Model) Append(t transaction.Transaction) {
	m.Transactions = append(m.Transactions, t)
}

// RemoveByID drops a deleted transaction from the local list.
func (m *Model) RemoveByID(id string) bool {
	for i, t := range m.Transactions {
		if t.ID == id {
			m.Transactions = append(m.Transactions[:i], m.Transactions[i+1:]...)
			return true
		}
	}

	return false
}

func (m *Model) SetError(msg string) {
	m.Error = msg
}

func (m *Model) ClearError() {
	m.Error = ""
}

// ClearForm resets the entry form to its defaults after a submit.
func (m *Model) ClearForm() {
	m.Amount = ""
	m.Category = ""
	m.Type = transaction.TypeExpense
}

// Totals sums the in-memory list by type.
func (m *Model) Totals() (income, expense float64) {
	for _, t := range m.Transactions {
		switch t.Type {
		case transaction.TypeIncome:
			income += t.Amount
		case transaction.TypeExpense:
			expense += t.Amount
		}
	}

	return income, expense
}

// PieData is the two-slice chart input derived from Totals.
type PieData struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
	Colors []string  `json:"colors"`
}

func (m *Model) PieData() PieData {
	income, expense := m.Totals()

	return PieData{
		Labels: []string{"Income", "Expenses"},
		Values: []float64{income, expense},
		Colors: []string{"#4ade80", "#f87171"},
	}
}
