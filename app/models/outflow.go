package models

import "github.com/shopspring/decimal"

// OutflowCategories are the expense categories the ledger accepts.
var OutflowCategories = []string{
	"Cost of Goods", "Office", "Marketing", "Rent", "Taxes", "Wages", "Misc",
}

// CategoryNeedsDetail reports whether the category requires a specific
// expense name (item-level detail for COGS and Misc entries).
func CategoryNeedsDetail(category string) bool {
	return category == "Cost of Goods" || category == "Misc"
}

// ValidOutflowCategory reports whether category is one of OutflowCategories.
func ValidOutflowCategory(category string) bool {
	for _, c := range OutflowCategories {
		if c == category {
			return true
		}
	}
	return false
}

// Outflow represents an expenditure debited from exactly one inflow.
// InflowID is a weak reference by id; the inflow keeps no back-pointer.
type Outflow struct {
	ID            string          `json:"id"`
	Date          string          `json:"date"` // YYYY-MM-DD
	Purpose       string          `json:"purpose"`
	Category      string          `json:"category"`
	Amount        decimal.Decimal `json:"amount"`
	Seller        string          `json:"seller"`
	InflowID      string          `json:"inflowId"`
	ExpenseName   string          `json:"expenseName,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	PaymentMethod string          `json:"paymentMethod,omitempty"`
	AccountNumber string          `json:"accountNumber,omitempty"`
}
