package models

import "github.com/shopspring/decimal"

// Payment channels accepted on inflows and outflows.
const (
	PaymentMethodBank = "Bank"
	PaymentMethodMomo = "Momo"
	PaymentMethodHand = "Hand in Hand"
)

// Inflow represents a receipt of funds: a pot of money whose remaining
// balance shrinks as outflows are traced back to it. RemainingBalance is a
// derived value maintained transactionally by the ledger engine; a negative
// balance means the pot has been overdrawn by a revision.
type Inflow struct {
	ID               string          `json:"id"`
	Date             string          `json:"date"` // YYYY-MM-DD
	Source           string          `json:"source"`
	Product          string          `json:"product"`
	Amount           decimal.Decimal `json:"amount"`
	RemainingBalance decimal.Decimal `json:"remainingBalance"`
	Description      string          `json:"description,omitempty"`
	PaymentMethod    string          `json:"paymentMethod,omitempty"`
	AccountNumber    string          `json:"accountNumber,omitempty"`
	Notes            string          `json:"notes,omitempty"`
	Currency         string          `json:"currency,omitempty"` // RWF or USD, stored flat
	BankAccountName  string          `json:"bankAccountName,omitempty"`
}
